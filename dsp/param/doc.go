// Package param describes the engine's automatable parameters.
//
// A Layout lists every parameter Spec the engine recognizes, each with a
// plain-unit range, a default and an optional skew or choice list. A Store
// keeps the current plain value of every parameter in an atomic slot so a
// control goroutine can write while the audio goroutine reads. Smoother turns
// a stepped control value into a linear per-sample ramp.
package param
