package testutil

import (
	"math"
	"testing"
)

func TestDeterministicSine(t *testing.T) {
	s := DeterministicSine(1000, 48000, 0.5, 48)
	if len(s) != 48 {
		t.Fatalf("len = %d, want 48", len(s))
	}
	if s[0] != 0 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}
	if math.Abs(s[12]-0.5) > 1e-12 {
		t.Fatalf("quarter period = %v, want 0.5", s[12])
	}
}

func TestDeterministicNoiseReproducible(t *testing.T) {
	a := DeterministicNoise(7, 1, 256)
	b := DeterministicNoise(7, 1, 256)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("index %d differs: %v vs %v", i, a[i], b[i])
		}
		if a[i] < -1 || a[i] > 1 {
			t.Fatalf("index %d out of range: %v", i, a[i])
		}
	}
}

func TestImpulse(t *testing.T) {
	x := Impulse(8, 3)
	for i, v := range x {
		want := 0.0
		if i == 3 {
			want = 1
		}
		if v != want {
			t.Fatalf("Impulse[%d] = %v, want %v", i, v, want)
		}
	}
	if got := Impulse(4, 9); got[0] != 0 || len(got) != 4 {
		t.Fatal("out-of-range position should yield silence")
	}
}

func TestPlanarCopies(t *testing.T) {
	src := DC(0.25, 4)
	buf := Planar(src, 2)
	buf[0][0] = 9
	if buf[1][0] != 0.25 || src[0] != 0.25 {
		t.Fatal("Planar channels must not share storage")
	}
	clone := ClonePlanar(buf)
	clone[1][1] = -1
	if buf[1][1] != 0.25 {
		t.Fatal("ClonePlanar must deep-copy")
	}
}

func TestRMS(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		want float64
	}{
		{"empty", nil, 0},
		{"dc", DC(-0.5, 10), 0.5},
		{"sine", DeterministicSine(1000, 48000, 1, 4800), 1 / math.Sqrt2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RMS(tt.in); math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("RMS = %v, want %v", got, tt.want)
			}
		})
	}
}
