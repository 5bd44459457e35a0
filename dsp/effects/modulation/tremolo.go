package modulation

import (
	"fmt"

	"github.com/cwbudde/algo-rocket/dsp/core"
	"github.com/cwbudde/algo-rocket/dsp/signal"
)

const (
	defaultTremoloRateHz = 4.0
	defaultTremoloDepth  = 0.7
	minTremoloRateHz     = 0.01
	maxTremoloRateHz     = 100.0
)

// Tremolo multiplies the signal by 1 - depth + depth*m, where m is the LFO
// mapped to [0, 1]. Rates above the 20 Hz control range are allowed so
// tempo-synced divisions at fast tempos stay exact.
type Tremolo struct {
	sampleRate float64
	rateHz     float64
	depth      float64
	wave       signal.Waveform

	lfo signal.Oscillator
}

// NewTremolo creates a tremolo for sampleRate.
func NewTremolo(sampleRate float64) (*Tremolo, error) {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("tremolo sample rate must be > 0 and finite: %f", sampleRate)
	}
	return &Tremolo{
		sampleRate: sampleRate,
		rateHz:     defaultTremoloRateHz,
		depth:      defaultTremoloDepth,
		wave:       signal.WaveSine,
	}, nil
}

// SetRateHz sets the LFO rate in Hz.
func (t *Tremolo) SetRateHz(rate float64) {
	t.rateHz = core.SafeClamp(rate, minTremoloRateHz, maxTremoloRateHz, defaultTremoloRateHz)
}

// SetDepth sets modulation depth in [0, 1].
func (t *Tremolo) SetDepth(depth float64) {
	t.depth = core.SafeClamp(depth, 0, 1, defaultTremoloDepth)
}

// SetWaveform selects the LFO shape. Unknown shapes fall back to sine.
func (t *Tremolo) SetWaveform(w signal.Waveform) {
	if w < signal.WaveSine || w > signal.WaveSawDown {
		w = signal.WaveSine
	}
	t.wave = w
}

// RateHz returns the LFO rate.
func (t *Tremolo) RateHz() float64 { return t.rateHz }

// Depth returns the modulation depth.
func (t *Tremolo) Depth() float64 { return t.depth }

// Waveform returns the LFO shape.
func (t *Tremolo) Waveform() signal.Waveform { return t.wave }

// Phase returns the normalized LFO phase.
func (t *Tremolo) Phase() float64 { return t.lfo.Phase() }

// Reset rewinds the LFO.
func (t *Tremolo) Reset() { t.lfo.Reset() }

// Process modulates buf in place.
func (t *Tremolo) Process(buf [][]float64) {
	channels := min(len(buf), core.MaxChannels)
	if channels == 0 {
		return
	}
	for i := range buf[0] {
		m := 0.5 + 0.5*t.lfo.Next(t.wave, t.rateHz, t.sampleRate)
		gain := 1 - t.depth + t.depth*m
		for ch := 0; ch < channels; ch++ {
			buf[ch][i] *= gain
		}
	}
}
