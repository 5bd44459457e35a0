package dynamics

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-rocket/internal/testutil"
)

func TestGainComputer(t *testing.T) {
	g := NewGainComputer(-30, 6)

	tests := []struct {
		name    string
		levelDB float64
		wantDB  float64
	}{
		{"below threshold", -40, 0},
		{"at threshold", -30, 0},
		{"12 dB over", -18, -10},
		{"30 dB over", 0, -25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gain := g.Gain(math.Pow(10, tt.levelDB/20))
			gotDB := 20 * math.Log10(gain)
			if math.Abs(gotDB-tt.wantDB) > 0.5 {
				t.Fatalf("gain = %.3f dB, want %.3f dB", gotDB, tt.wantDB)
			}
		})
	}

	if got := g.Gain(0); got != 1 {
		t.Fatalf("Gain(0) = %v, want 1", got)
	}
}

func TestEnvelopeAttackFasterThanRelease(t *testing.T) {
	var e Envelope
	e.SetTimes(2, 80, 48000)

	for range 480 {
		e.Next(1)
	}
	if e.Level() < 0.99 {
		t.Fatalf("level after 10 ms attack = %v, want near 1", e.Level())
	}
	for range 480 {
		e.Next(0)
	}
	if e.Level() < 0.8 {
		t.Fatalf("level after 10 ms release = %v, want slow decay", e.Level())
	}
	e.Reset()
	if e.Level() != 0 {
		t.Fatal("Reset should clear the level")
	}
}

func TestDeEsserPassesLowFrequencies(t *testing.T) {
	d, err := NewDeEsser(48000)
	if err != nil {
		t.Fatal(err)
	}

	in := testutil.DeterministicSine(200, 48000, 1, 9600)
	buf := testutil.Planar(in, 2)
	d.Process(buf)

	for ch := range buf {
		testutil.RequireSliceNearlyEqual(t, buf[ch], in, 1e-12)
	}
	if d.MinGain() != 1 {
		t.Fatalf("MinGain() = %v, want 1", d.MinGain())
	}
}

func TestDeEsserReducesSibilance(t *testing.T) {
	d, err := NewDeEsser(48000)
	if err != nil {
		t.Fatal(err)
	}
	d.SetThreshold(-30)

	in := testutil.DeterministicSine(16000, 48000, 1, 9600)
	buf := [][]float64{append([]float64(nil), in...)}
	d.Process(buf)

	testutil.RequireFinite(t, buf[0])
	ratio := testutil.RMS(buf[0][4800:]) / testutil.RMS(in[4800:])
	if ratio > 0.8 {
		t.Fatalf("sibilant band RMS ratio = %v, want reduction", ratio)
	}
	if d.MinGain() >= 0.5 {
		t.Fatalf("MinGain() = %v, want strong band reduction", d.MinGain())
	}
}

func TestDeEsserClampsParameters(t *testing.T) {
	d, err := NewDeEsser(48000)
	if err != nil {
		t.Fatal(err)
	}
	d.SetFrequency(50)
	if d.Frequency() != 1000 {
		t.Fatalf("Frequency() = %v, want 1000", d.Frequency())
	}
	d.SetThreshold(math.NaN())
	if d.Threshold() != -30 {
		t.Fatalf("Threshold() = %v, want -30", d.Threshold())
	}
	if _, err := NewDeEsser(0); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
}
