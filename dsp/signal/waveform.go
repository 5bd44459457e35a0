package signal

import (
	"fmt"
	"math"
)

// Waveform selects an oscillator shape.
type Waveform int

const (
	WaveSine Waveform = iota
	WaveTriangle
	WaveSquare
	WaveSawUp
	WaveSawDown
)

// String implements fmt.Stringer.
func (w Waveform) String() string {
	switch w {
	case WaveSine:
		return "sine"
	case WaveTriangle:
		return "triangle"
	case WaveSquare:
		return "square"
	case WaveSawUp:
		return "saw-up"
	case WaveSawDown:
		return "saw-down"
	default:
		return fmt.Sprintf("waveform(%d)", int(w))
	}
}

// Shape evaluates w at normalized phase p in [0, 1) and returns a value in [-1, 1].
// Unknown waveforms evaluate as sine.
func Shape(w Waveform, p float64) float64 {
	switch w {
	case WaveTriangle:
		return 2*math.Abs(2*p-1) - 1
	case WaveSquare:
		if p < 0.5 {
			return 1
		}
		return -1
	case WaveSawUp:
		return 2*p - 1
	case WaveSawDown:
		return 1 - 2*p
	default:
		return math.Sin(2 * math.Pi * p)
	}
}

// Oscillator advances a normalized phase and evaluates a waveform.
// The phase stays in [0, 1) after every step.
type Oscillator struct {
	phase float64
}

// Next returns the waveform value at the current phase, then advances the
// phase by freqHz/sampleRate.
func (o *Oscillator) Next(w Waveform, freqHz, sampleRate float64) float64 {
	v := Shape(w, o.phase)
	o.phase += freqHz / sampleRate
	if o.phase >= 1 || o.phase < 0 {
		o.phase -= math.Floor(o.phase)
	}
	return v
}

// Phase returns the normalized phase in [0, 1).
func (o *Oscillator) Phase() float64 { return o.phase }

// Reset rewinds the phase to 0.
func (o *Oscillator) Reset() { o.phase = 0 }
