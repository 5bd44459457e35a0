// Package resample provides a 2x polyphase half-band oversampler for
// wrapping nonlinear processors.
//
// Quality modes:
//   - QualityFast: 23 taps, lower CPU
//   - QualityBalanced: 47 taps, default mode
//   - QualityBest: 95 taps, higher stopband attenuation
//
// Typical use around a waveshaper:
//
//	a, b := hb.Upsample(x)
//	y := hb.Downsample(shape(a), shape(b))
package resample
