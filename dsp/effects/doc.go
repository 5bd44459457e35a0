// Package effects provides the per-channel DSP kernels behind the chain
// modules that do not belong to a more specific family.
//
// Subpackages:
//   - github.com/cwbudde/algo-rocket/dsp/effects/dynamics
//   - github.com/cwbudde/algo-rocket/dsp/effects/modulation
//   - github.com/cwbudde/algo-rocket/dsp/effects/pitch
//
// Effects in this package:
//   - BitCrusher: sample-and-hold rate reduction and floor quantization.
//   - Distortion: soft, hard, tube and fuzz curves with optional 2x oversampling.
//   - Reverb: stereo Freeverb network with width, freeze and an optional
//     convolution plate stage plus pre-delay.
//   - StereoDelay: digital, ping-pong and tape feedback delay with wow.
//
// Kernels process planar buffers ([][]float64, one slice per channel, at
// most two channels) in place. Constructors validate their configuration and
// return an error; per-block setters clamp silently so they are safe to call
// from the audio path. Nothing in a Process method allocates.
package effects
