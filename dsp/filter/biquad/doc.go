// Package biquad provides biquad (second-order IIR) filter runtime primitives.
//
// A [Section] implements Direct Form II Transposed processing for a single
// second-order section defined by [Coefficients]. A [Bank] holds a fixed
// number of sections of which only the first N are active, which lets a
// filter change its slope without allocating.
//
// Block processing is dispatched to the best kernel for the running CPU,
// selected once on first use.
package biquad
