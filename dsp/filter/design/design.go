package design

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-rocket/dsp/filter/biquad"
)

// ButterworthQ is the quality factor of a maximally flat second-order section.
const ButterworthQ = 1 / math.Sqrt2

const (
	minFreqHz       = 1.0
	maxNyquistRatio = 0.49
	minQ            = 0.05
)

// Lowpass designs a lowpass biquad at freq (Hz) with quality factor q.
func Lowpass(freq, q, sampleRate float64) biquad.Coefficients {
	cw, alpha, ok := prewarp(freq, q, sampleRate)
	if !ok {
		return biquad.Identity
	}

	b1 := 1 - cw
	return normalizeBiquad(b1/2, b1, b1/2, 1+alpha, -2*cw, 1-alpha)
}

// Highpass designs a highpass biquad at freq (Hz) with quality factor q.
func Highpass(freq, q, sampleRate float64) biquad.Coefficients {
	cw, alpha, ok := prewarp(freq, q, sampleRate)
	if !ok {
		return biquad.Identity
	}

	b1 := 1 + cw
	return normalizeBiquad(b1/2, -b1, b1/2, 1+alpha, -2*cw, 1-alpha)
}

// Peak designs a peaking EQ biquad. gain is the linear amplitude ratio at freq.
func Peak(freq, gain, q, sampleRate float64) biquad.Coefficients {
	cw, alpha, ok := prewarp(freq, q, sampleRate)
	if !ok {
		return biquad.Identity
	}

	a := shelfAmplitude(gain)
	return normalizeBiquad(
		1+alpha*a, -2*cw, 1-alpha*a,
		1+alpha/a, -2*cw, 1-alpha/a,
	)
}

// LowShelf designs a low-shelf biquad. gain is the linear amplitude ratio
// of the shelf.
func LowShelf(freq, gain, q, sampleRate float64) biquad.Coefficients {
	cw, alpha, ok := prewarp(freq, q, sampleRate)
	if !ok {
		return biquad.Identity
	}

	a := shelfAmplitude(gain)
	beta := 2 * math.Sqrt(a) * alpha

	return normalizeBiquad(
		a*((a+1)-(a-1)*cw+beta),
		2*a*((a-1)-(a+1)*cw),
		a*((a+1)-(a-1)*cw-beta),
		(a+1)+(a-1)*cw+beta,
		-2*((a-1)+(a+1)*cw),
		(a+1)+(a-1)*cw-beta,
	)
}

// HighShelf designs a high-shelf biquad. gain is the linear amplitude ratio
// of the shelf.
func HighShelf(freq, gain, q, sampleRate float64) biquad.Coefficients {
	cw, alpha, ok := prewarp(freq, q, sampleRate)
	if !ok {
		return biquad.Identity
	}

	a := shelfAmplitude(gain)
	beta := 2 * math.Sqrt(a) * alpha

	return normalizeBiquad(
		a*((a+1)+(a-1)*cw+beta),
		-2*a*((a-1)+(a+1)*cw),
		a*((a+1)+(a-1)*cw-beta),
		(a+1)-(a-1)*cw+beta,
		2*((a-1)-(a+1)*cw),
		(a+1)-(a-1)*cw-beta,
	)
}

// MagnitudeAt evaluates |H(e^jw)| of c at freq (Hz).
func MagnitudeAt(c biquad.Coefficients, freq, sampleRate float64) float64 {
	return cmplx.Abs(c.Response(freq, sampleRate))
}

// prewarp returns cos(w0) and the RBJ alpha term, with freq clamped into
// [1 Hz, 0.49*sampleRate] and non-positive q replaced by ButterworthQ.
func prewarp(freq, q, sampleRate float64) (cw, alpha float64, ok bool) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return 0, 0, false
	}

	if math.IsNaN(freq) {
		return 0, 0, false
	}
	freq = math.Min(math.Max(freq, minFreqHz), sampleRate*maxNyquistRatio)

	if !(q > 0) || math.IsInf(q, 0) {
		q = ButterworthQ
	}
	q = math.Max(q, minQ)

	w0 := 2 * math.Pi * freq / sampleRate
	return math.Cos(w0), math.Sin(w0) / (2 * q), true
}

// shelfAmplitude converts a linear gain into the RBJ "A" term (sqrt of gain).
func shelfAmplitude(gain float64) float64 {
	if !(gain > 0) || math.IsInf(gain, 0) {
		return 1
	}
	return math.Sqrt(gain)
}

func normalizeBiquad(b0, b1, b2, a0, a1, a2 float64) biquad.Coefficients {
	if a0 == 0 || math.IsNaN(a0) || math.IsInf(a0, 0) {
		return biquad.Identity
	}

	return biquad.Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}
