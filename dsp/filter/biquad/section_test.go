package biquad

import (
	"math"
	"testing"
)

const eps = 1e-12

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestProcessSample_Passthrough(t *testing.T) {
	s := NewSection(Identity)
	input := []float64{1, 0, -1, 0.5, 0.25}
	for i, x := range input {
		if y := s.ProcessSample(x); !almostEqual(y, x, eps) {
			t.Errorf("sample %d: got %v, want %v", i, y, x)
		}
	}
}

func TestProcessSample_DFIIT(t *testing.T) {
	// Hand-traced impulse response for B0=0.25, B1=0.5, B2=0.25, A1=-0.2, A2=0.04.
	s := NewSection(Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04})

	want := []float64{0.25, 0.55, 0.35, 0.048}
	input := []float64{1, 0, 0, 0}
	for i, x := range input {
		if y := s.ProcessSample(x); !almostEqual(y, want[i], eps) {
			t.Fatalf("sample %d: got %v, want %v", i, y, want[i])
		}
	}
}

func TestProcessBlockMatchesProcessSample(t *testing.T) {
	c := Coefficients{B0: 0.2, B1: 0.3, B2: 0.1, A1: -0.5, A2: 0.2}

	for _, n := range []int{1, 2, 7, 64} {
		ref := NewSection(c)
		blk := NewSection(c)

		buf := make([]float64, n)
		want := make([]float64, n)
		for i := range buf {
			buf[i] = math.Sin(float64(i) * 0.37)
			want[i] = ref.ProcessSample(buf[i])
		}

		blk.ProcessBlock(buf)
		for i := range buf {
			if !almostEqual(buf[i], want[i], 1e-12) {
				t.Fatalf("n=%d sample %d: got %v, want %v", n, i, buf[i], want[i])
			}
		}
		if blk.State() != ref.State() {
			t.Fatalf("n=%d: state mismatch %v vs %v", n, blk.State(), ref.State())
		}
	}
}

func TestReset(t *testing.T) {
	s := NewSection(Coefficients{B0: 0.5, B1: 0.5, A1: -0.3})
	s.ProcessSample(1)
	s.Reset()
	if s.State() != [2]float64{} {
		t.Fatalf("state after reset = %v", s.State())
	}
}

func TestKernelName(t *testing.T) {
	if KernelName() == "" {
		t.Fatal("expected a selected kernel")
	}
}
