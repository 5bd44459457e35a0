package core

import vecmath "github.com/cwbudde/algo-vecmath"

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}

// Zero sets all values in buf to 0.
func Zero(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}
}

// CopyInto copies src into dst and returns the number of copied elements.
func CopyInto(dst, src []float64) int {
	n := len(dst)
	if len(src) < n {
		n = len(src)
	}
	copy(dst[:n], src[:n])
	return n
}

// Crossfade blends dst (wet) with dry using a constant mix:
// dst = dry*(1-mix) + dst*mix. dry must be at least as long as dst.
func Crossfade(dst, dry []float64, mix float64) {
	inv := 1 - mix
	for i := range dst {
		dst[i] = dry[i]*inv + dst[i]*mix
	}
}

// CrossfadeCurve blends dst (wet) with dry using one mix weight per sample.
// scratch receives the wet-dry difference and must be as long as dst.
func CrossfadeCurve(dst, dry, weights, scratch []float64) {
	n := len(dst)
	diff := scratch[:n]
	for i := range diff {
		diff[i] = dst[i] - dry[i]
	}
	vecmath.MulBlockInPlace(diff, weights[:n])
	for i := range dst {
		dst[i] = dry[i] + diff[i]
	}
}

// ApplyGainCurve multiplies buf by a per-sample gain curve in place.
func ApplyGainCurve(buf, gains []float64) {
	vecmath.MulBlockInPlace(buf, gains[:len(buf)])
}

// Scale multiplies src by gains into dst.
func Scale(dst, src, gains []float64) {
	vecmath.MulBlock(dst, src, gains[:len(dst)])
}
