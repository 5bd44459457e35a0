package core

import "testing"

func TestEnsureLenReuse(t *testing.T) {
	buf := make([]float64, 4, 8)

	out := EnsureLen(buf, 6)
	if len(out) != 6 {
		t.Fatalf("len = %d, want 6", len(out))
	}

	if cap(out) != cap(buf) {
		t.Fatalf("cap = %d, want %d", cap(out), cap(buf))
	}
}

func TestCrossfade(t *testing.T) {
	dry := []float64{1, 1, 1}

	tests := []struct {
		name string
		mix  float64
		want float64
	}{
		{name: "dry", mix: 0, want: 1},
		{name: "half", mix: 0.5, want: 0.5},
		{name: "wet", mix: 1, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wet := []float64{0, 0, 0}
			Crossfade(wet, dry, tt.mix)
			for i, v := range wet {
				if v != tt.want {
					t.Fatalf("wet[%d] = %v, want %v", i, v, tt.want)
				}
			}
		})
	}
}

func TestCrossfadeCurve(t *testing.T) {
	dry := []float64{1, 1, 1, 1}
	wet := []float64{0, 0, 0, 0}
	weights := []float64{0, 0.25, 0.5, 1}
	scratch := make([]float64, 4)

	CrossfadeCurve(wet, dry, weights, scratch)

	want := []float64{1, 0.75, 0.5, 0}
	for i := range want {
		if wet[i] != want[i] {
			t.Fatalf("wet[%d] = %v, want %v", i, wet[i], want[i])
		}
	}
}

func TestApplyGainCurve(t *testing.T) {
	buf := []float64{2, 2, 2}
	ApplyGainCurve(buf, []float64{1, 0.5, 0, 9})

	want := []float64{2, 1, 0}
	for i := range want {
		if buf[i] != want[i] {
			t.Fatalf("buf[%d] = %v, want %v", i, buf[i], want[i])
		}
	}
}

func TestZero(t *testing.T) {
	buf := []float64{1, 2, 3}
	Zero(buf)

	for i, v := range buf {
		if v != 0 {
			t.Fatalf("buf[%d] = %v, want 0", i, v)
		}
	}
}
