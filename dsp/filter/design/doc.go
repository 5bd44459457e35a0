// Package design provides RBJ-cookbook biquad coefficient designers.
//
// The functions in this package produce coefficients consumable by
// dsp/filter/biquad. Frequencies outside (0, Nyquist) are pulled back into
// range instead of failing, so designers can be called from the audio path
// with automated parameter values. Gains are linear amplitude ratios.
package design
