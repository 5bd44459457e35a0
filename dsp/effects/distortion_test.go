package effects

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-rocket/internal/testutil"
)

func TestShapeCurves(t *testing.T) {
	tests := []struct {
		mode DistortionMode
		in   float64
		want float64
	}{
		{DistortionSoft, 0.5, math.Tanh(0.5)},
		{DistortionHard, 3, 1},
		{DistortionHard, -3, -1},
		{DistortionHard, 0.25, 0.25},
		{DistortionTube, 1, 0.5},
		{DistortionTube, -3, -0.75},
		{DistortionFuzz, 1, math.Tanh(2)},
		{DistortionFuzz, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			if got := Shape(tt.mode, tt.in); math.Abs(got-tt.want) > 1e-12 {
				t.Fatalf("Shape(%v, %v) = %v, want %v", tt.mode, tt.in, got, tt.want)
			}
		})
	}
}

func TestDistortionDriveGainAndMakeup(t *testing.T) {
	d, err := NewDistortion(
		WithDistortionMode(DistortionHard),
		WithDistortionDrive(0.5),
		WithDistortionOversampling(false),
	)
	if err != nil {
		t.Fatalf("NewDistortion() error = %v", err)
	}
	if d.Gain() != 11 {
		t.Fatalf("Gain() = %v, want 11", d.Gain())
	}

	buf := [][]float64{{0.01, 0.5, -0.5}}
	d.Process(buf)

	makeup := 1 / math.Sqrt(11)
	want := []float64{0.11 * makeup, makeup, -makeup}
	testutil.RequireSliceNearlyEqual(t, buf[0], want, 1e-12)
}

func TestDistortionOversampledSmallSignalIsNearlyLinear(t *testing.T) {
	d, err := NewDistortion(WithDistortionDrive(0))
	if err != nil {
		t.Fatalf("NewDistortion() error = %v", err)
	}
	if !d.Oversampling() {
		t.Fatal("oversampling should default to on")
	}

	in := testutil.DeterministicSine(1000, 48000, 0.05, 4800)
	buf := testutil.Planar(in, 2)
	d.Process(buf)

	for ch := range buf {
		testutil.RequireFinite(t, buf[ch])
		got := testutil.RMS(buf[ch][480:])
		want := testutil.RMS(in[480:])
		if math.Abs(got/want-1) > 0.02 {
			t.Fatalf("ch=%d: RMS ratio = %v, want about 1", ch, got/want)
		}
	}
}

func TestDistortionOversamplingReducesAliasing(t *testing.T) {
	// A 7 kHz tone through hard clipping puts its 5th harmonic at 35 kHz,
	// which folds back to 13 kHz at 48 kHz.
	const (
		sr     = 48000.0
		n      = 9600
		folded = 13000.0
	)

	measure := func(oversample bool) float64 {
		d, err := NewDistortion(
			WithDistortionMode(DistortionHard),
			WithDistortionDrive(1),
			WithDistortionOversampling(oversample),
		)
		if err != nil {
			t.Fatalf("NewDistortion() error = %v", err)
		}
		buf := [][]float64{testutil.DeterministicSine(7000, sr, 0.8, n)}
		d.Process(buf)
		return toneMagnitude(buf[0][n/2:], folded, sr)
	}

	plain := measure(false)
	over := measure(true)
	if over >= plain*0.5 {
		t.Fatalf("aliased component: oversampled %v, plain %v", over, plain)
	}
}

func TestDistortionSettersClamp(t *testing.T) {
	d, err := NewDistortion()
	if err != nil {
		t.Fatalf("NewDistortion() error = %v", err)
	}
	d.SetDrive(4)
	if d.Drive() != 1 {
		t.Fatalf("Drive() = %v, want 1", d.Drive())
	}
	d.SetMode(DistortionMode(9))
	if d.Mode() != DistortionSoft {
		t.Fatalf("Mode() = %v, want Soft", d.Mode())
	}
	if _, err := NewDistortion(WithDistortionDrive(-1)); err == nil {
		t.Fatal("expected error for negative drive")
	}
}

// toneMagnitude correlates x with a complex exponential at freq.
func toneMagnitude(x []float64, freq, sampleRate float64) float64 {
	var re, im float64
	for i, v := range x {
		w := 2 * math.Pi * freq * float64(i) / sampleRate
		re += v * math.Cos(w)
		im += v * math.Sin(w)
	}
	return math.Hypot(re, im) / float64(len(x))
}
