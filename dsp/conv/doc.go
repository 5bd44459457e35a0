// Package conv provides FFT-based streaming convolution for fixed impulse
// responses and a direct reference convolution.
//
// [Streaming] implements overlap-add with an FFT size chosen from the
// kernel length and the largest block the caller will pass. Blocks may be
// shorter than that maximum; the overlap tail is carried between calls, so
// the output is the exact linear convolution of the concatenated input.
package conv
