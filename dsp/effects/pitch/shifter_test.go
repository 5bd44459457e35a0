package pitch

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-rocket/internal/testutil"
)

func TestRingSize(t *testing.T) {
	tests := []struct {
		sr   float64
		want int
	}{
		{48000, 5760},
		{44100, 5292},
		{8000, 2048},
		{2e6, 131072},
	}
	for _, tt := range tests {
		if got := RingSize(tt.sr); got != tt.want {
			t.Errorf("RingSize(%v) = %d, want %d", tt.sr, got, tt.want)
		}
	}
}

func TestShifterZeroSemitonesIsBypassed(t *testing.T) {
	s, err := NewShifter(48000)
	if err != nil {
		t.Fatal(err)
	}
	s.SetSemitones(0.0005)
	if !s.Bypassed() {
		t.Fatal("shift below 0.001 semitones should bypass")
	}

	in := testutil.Planar(testutil.DeterministicNoise(1, 1, 1024), 2)
	buf := testutil.ClonePlanar(in)
	s.Process(buf)
	testutil.RequireBitExact(t, buf, in)
}

func TestShifterOutputIsConvexCombination(t *testing.T) {
	s, err := NewShifter(48000)
	if err != nil {
		t.Fatal(err)
	}
	s.SetSemitones(-7)

	buf := testutil.Planar(testutil.DeterministicNoise(2, 0.8, 48000), 2)
	s.Process(buf)
	for ch := range buf {
		testutil.RequireFinite(t, buf[ch])
		for i, v := range buf[ch] {
			if math.Abs(v) > 0.8+1e-12 {
				t.Fatalf("ch=%d i=%d: |%v| exceeds input peak", ch, i, v)
			}
		}
	}
}

func TestShifterHeadsStayInsideGuardedWindow(t *testing.T) {
	for _, st := range []float64{-24, -12, 5, 12, 24} {
		s, err := NewShifter(48000)
		if err != nil {
			t.Fatal(err)
		}
		s.SetSemitones(st)
		lo := float64(guardSamples)
		hi := float64(s.Size() - guardSamples)

		buf := [][]float64{make([]float64, 64)}
		for range 400 {
			s.Process(buf)
			a, b := s.Delays()
			for _, d := range []float64{a, b} {
				if d < lo || d > hi {
					t.Fatalf("st=%v: delay %v outside [%v, %v]", st, d, lo, hi)
				}
			}
			sep := math.Mod(b-a+s.window, s.window)
			if math.Abs(sep-s.window/2) > 1e-6 {
				t.Fatalf("st=%v: head separation %v, want %v", st, sep, s.window/2)
			}
		}
	}
}

func TestShifterOctaveUpMovesEnergy(t *testing.T) {
	s, err := NewShifter(48000)
	if err != nil {
		t.Fatal(err)
	}
	s.SetSemitones(12)
	if math.Abs(s.Speed()-2) > 1e-12 {
		t.Fatalf("Speed() = %v, want 2", s.Speed())
	}

	buf := [][]float64{testutil.DeterministicSine(500, 48000, 0.5, 48000)}
	s.Process(buf)

	tail := buf[0][24000:]
	up := toneMagnitude(tail, 1000, 48000)
	orig := toneMagnitude(tail, 500, 48000)
	if up <= orig {
		t.Fatalf("energy at 1 kHz (%v) should exceed energy at 500 Hz (%v)", up, orig)
	}
}

func TestShifterClampsSemitones(t *testing.T) {
	s, err := NewShifter(48000)
	if err != nil {
		t.Fatal(err)
	}
	s.SetSemitones(40)
	if s.Semitones() != MaxSemitones {
		t.Fatalf("Semitones() = %v, want %v", s.Semitones(), MaxSemitones)
	}
	s.SetSemitones(math.NaN())
	if s.Semitones() != 0 || !s.Bypassed() {
		t.Fatalf("NaN should reset to a bypassed 0, got %v", s.Semitones())
	}
}

func toneMagnitude(x []float64, freq, sampleRate float64) float64 {
	var re, im float64
	for i, v := range x {
		w := 2 * math.Pi * freq * float64(i) / sampleRate
		re += v * math.Cos(w)
		im += v * math.Sin(w)
	}
	return math.Hypot(re, im) / float64(len(x))
}
