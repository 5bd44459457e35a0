package resample

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidTaps indicates an unusable half-band filter length.
var ErrInvalidTaps = errors.New("resample: invalid tap count")

// Quality controls default anti-aliasing filter settings.
type Quality int

const (
	// QualityFast prioritizes lower CPU usage.
	QualityFast Quality = iota
	// QualityBalanced is the default quality/performance trade-off.
	QualityBalanced
	// QualityBest prioritizes stopband attenuation.
	QualityBest
)

// Profile exposes default filter parameters for each quality mode.
type Profile struct {
	Taps       int
	KaiserBeta float64
}

// QualityProfile returns the default profile used by quality mode q.
func QualityProfile(q Quality) Profile {
	switch q {
	case QualityFast:
		return Profile{Taps: 23, KaiserBeta: 5.0}
	case QualityBest:
		return Profile{Taps: 95, KaiserBeta: 9.0}
	default:
		return Profile{Taps: 47, KaiserBeta: 7.5}
	}
}

// HalfBand is a 2x oversampler: Upsample doubles the rate of one input
// sample, Downsample folds two oversampled samples back to one. Both
// directions use the same half-band lowpass at a quarter of the
// oversampled rate.
type HalfBand struct {
	taps  []float64
	even  []float64 // taps[0], taps[2], ...
	odd   []float64 // taps[1], taps[3], ...
	upIn  []float64 // newest first
	downA []float64
	downB []float64
}

// NewHalfBand designs a half-band oversampler for quality q.
func NewHalfBand(q Quality) (*HalfBand, error) {
	p := QualityProfile(q)
	return NewHalfBandTaps(p.Taps, p.KaiserBeta)
}

// NewHalfBandTaps designs a half-band oversampler with an explicit odd tap
// count and Kaiser window beta.
func NewHalfBandTaps(taps int, beta float64) (*HalfBand, error) {
	if taps < 3 || taps%2 == 0 {
		return nil, fmt.Errorf("%w: must be odd and >= 3: %d", ErrInvalidTaps, taps)
	}
	if beta < 0 || math.IsNaN(beta) || math.IsInf(beta, 0) {
		return nil, fmt.Errorf("resample: kaiser beta must be >= 0 and finite: %f", beta)
	}

	h := designHalfBand(taps, beta)

	hb := &HalfBand{taps: h}
	for i, v := range h {
		if i%2 == 0 {
			hb.even = append(hb.even, v)
		} else {
			hb.odd = append(hb.odd, v)
		}
	}
	hb.upIn = make([]float64, len(hb.even))
	hb.downA = make([]float64, len(hb.even))
	hb.downB = make([]float64, len(hb.even))

	return hb, nil
}

// Taps returns the prototype filter coefficients.
func (hb *HalfBand) Taps() []float64 {
	return append([]float64(nil), hb.taps...)
}

// Latency returns the round-trip group delay in base-rate samples
// (Upsample followed by Downsample).
func (hb *HalfBand) Latency() float64 {
	return float64(len(hb.taps)-1) / 2
}

// Upsample returns the two oversampled values for input x.
func (hb *HalfBand) Upsample(x float64) (float64, float64) {
	push(hb.upIn, x)
	return 2 * dot(hb.even, hb.upIn), 2 * dot(hb.odd, hb.upIn)
}

// Downsample filters two consecutive oversampled values (a then b) and
// returns one base-rate sample.
func (hb *HalfBand) Downsample(a, b float64) float64 {
	push(hb.downA, a)
	push(hb.downB, b)
	return dot(hb.even, hb.downB) + dot(hb.odd, hb.downA)
}

// Reset clears filter history.
func (hb *HalfBand) Reset() {
	clear(hb.upIn)
	clear(hb.downA)
	clear(hb.downB)
}

func push(hist []float64, x float64) {
	copy(hist[1:], hist[:len(hist)-1])
	hist[0] = x
}

func dot(a, b []float64) float64 {
	var sum float64
	for i, v := range a {
		sum += v * b[i]
	}
	return sum
}

// designHalfBand returns a unity-DC-gain Kaiser-windowed sinc lowpass with
// cutoff at a quarter of the sample rate.
func designHalfBand(n int, beta float64) []float64 {
	const fc = 0.25

	taps := make([]float64, n)
	center := 0.5 * float64(n-1)

	var sum float64
	for i := range n {
		t := float64(i) - center
		taps[i] = 2 * fc * sinc(2*fc*t) * kaiserWindow(i, n, beta)
		sum += taps[i]
	}
	for i := range taps {
		taps[i] /= sum
	}

	return taps
}

func sinc(x float64) float64 {
	if math.Abs(x) < 1e-12 {
		return 1
	}

	pix := math.Pi * x

	return math.Sin(pix) / pix
}

func kaiserWindow(i, n int, beta float64) float64 {
	if n <= 1 || beta == 0 {
		return 1
	}

	t := 2*float64(i)/float64(n-1) - 1
	a := math.Sqrt(math.Max(0, 1-t*t))

	return i0(beta*a) / i0(beta)
}

func i0(x float64) float64 {
	// Power series approximation.
	sum := 1.0
	term := 1.0

	x2 := (x * x) / 4
	for k := 1; k < 64; k++ {
		term *= x2 / float64(k*k)

		sum += term
		if term < 1e-16*sum {
			break
		}
	}

	return sum
}
