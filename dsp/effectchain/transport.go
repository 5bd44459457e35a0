package effectchain

import (
	"github.com/cwbudde/algo-rocket/dsp/core"
	"github.com/cwbudde/algo-rocket/dsp/param"
)

// DefaultTempo is used when the host reports no usable tempo.
const DefaultTempo = 120.0

// Transport is the host's playback state for one block.
type Transport struct {
	BPM             float64
	Playing         bool
	PositionSeconds float64
}

// Tempo returns BPM, or DefaultTempo when BPM is not positive and finite.
func (t Transport) Tempo() float64 {
	if t.BPM <= 0 || !core.IsFinite(t.BPM) {
		return DefaultTempo
	}
	return t.BPM
}

// DivisionSamples returns the length of rhythm division index in samples.
func (t Transport) DivisionSamples(index int, sampleRate float64) float64 {
	return param.DivisionBeats(index) * 60 / t.Tempo() * sampleRate
}

// DivisionRateHz returns how often rhythm division index repeats per second.
func (t Transport) DivisionRateHz(index int) float64 {
	return t.Tempo() / 60 / param.DivisionBeats(index)
}
