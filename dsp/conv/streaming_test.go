package conv

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-rocket/internal/testutil"
)

func TestNewStreamingValidation(t *testing.T) {
	if _, err := NewStreaming(nil, 64); !errors.Is(err, ErrEmptyKernel) {
		t.Fatalf("err = %v, want ErrEmptyKernel", err)
	}
	if _, err := NewStreaming([]float64{1}, 0); !errors.Is(err, ErrInvalidBlockSize) {
		t.Fatalf("err = %v, want ErrInvalidBlockSize", err)
	}
}

func TestStreamingMatchesDirectWithVaryingBlocks(t *testing.T) {
	kernel := testutil.DeterministicNoise(3, 1, 100)
	input := testutil.DeterministicNoise(9, 1, 1000)

	want, err := Direct(input, kernel)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s, err := NewStreaming(kernel, 64)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := make([]float64, len(input))
	sizes := []int{64, 1, 17, 64, 33, 5}
	pos := 0
	for k := 0; pos < len(input); k++ {
		n := min(sizes[k%len(sizes)], len(input)-pos)
		if err := s.ProcessBlockTo(got[pos:pos+n], input[pos:pos+n]); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		pos += n
	}

	testutil.RequireSliceNearlyEqual(t, got, want[:len(input)], 1e-9)
}

func TestStreamingInPlace(t *testing.T) {
	s, err := NewStreaming([]float64{0, 0.5}, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	buf := []float64{1, 2, 3, 4}
	if err := s.ProcessBlockTo(buf, buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []float64{0, 0.5, 1, 1.5}
	for i := range want {
		if math.Abs(buf[i]-want[i]) > 1e-12 {
			t.Fatalf("buf[%d] = %v, want %v", i, buf[i], want[i])
		}
	}
}

func TestStreamingRejectsOversizedBlock(t *testing.T) {
	s, err := NewStreaming([]float64{1}, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	buf := make([]float64, 5)
	if err := s.ProcessBlockTo(buf, buf); !errors.Is(err, ErrInvalidBlockSize) {
		t.Fatalf("err = %v, want ErrInvalidBlockSize", err)
	}
}

func TestStreamingReset(t *testing.T) {
	s, err := NewStreaming([]float64{0, 0, 1}, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	buf := []float64{0, 0, 0, 1}
	_ = s.ProcessBlockTo(buf, buf)
	s.Reset()

	out := make([]float64, 4)
	_ = s.ProcessBlockTo(out, make([]float64, 4))
	for i, v := range out {
		if v != 0 {
			t.Fatalf("out[%d] = %v after reset, want 0", i, v)
		}
	}
}
