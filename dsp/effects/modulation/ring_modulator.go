package modulation

import (
	"fmt"

	"github.com/cwbudde/algo-rocket/dsp/core"
	"github.com/cwbudde/algo-rocket/dsp/signal"
)

const (
	defaultRingModCarrierHz = 200.0
	defaultRingModDepth     = 0.5
	minRingModCarrierHz     = 10.0
	maxRingModCarrierHz     = 4000.0
)

// RingModulator multiplies the input by a sine carrier blended with unity:
//
//	gain = 1 - depth + depth*sin(2*pi*carrierHz*t)
//
// At depth 1 this is classic ring modulation; smaller depths leave part of
// the input untouched.
type RingModulator struct {
	sampleRate float64
	carrierHz  float64
	depth      float64

	carrier signal.Oscillator
}

// NewRingModulator creates a ring modulator for sampleRate.
func NewRingModulator(sampleRate float64) (*RingModulator, error) {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("ring modulator sample rate must be > 0 and finite: %f", sampleRate)
	}
	return &RingModulator{
		sampleRate: sampleRate,
		carrierHz:  defaultRingModCarrierHz,
		depth:      defaultRingModDepth,
	}, nil
}

// SetCarrierHz sets the carrier frequency, clamped to [10, 4000] Hz.
func (r *RingModulator) SetCarrierHz(hz float64) {
	r.carrierHz = core.SafeClamp(hz, minRingModCarrierHz, maxRingModCarrierHz, defaultRingModCarrierHz)
}

// SetDepth sets the carrier depth in [0, 1].
func (r *RingModulator) SetDepth(depth float64) {
	r.depth = core.SafeClamp(depth, 0, 1, defaultRingModDepth)
}

// CarrierHz returns the carrier frequency.
func (r *RingModulator) CarrierHz() float64 { return r.carrierHz }

// Depth returns the carrier depth.
func (r *RingModulator) Depth() float64 { return r.depth }

// Phase returns the normalized carrier phase.
func (r *RingModulator) Phase() float64 { return r.carrier.Phase() }

// Reset rewinds the carrier.
func (r *RingModulator) Reset() { r.carrier.Reset() }

// Process modulates buf in place.
func (r *RingModulator) Process(buf [][]float64) {
	channels := min(len(buf), core.MaxChannels)
	if channels == 0 {
		return
	}
	for i := range buf[0] {
		gain := 1 - r.depth + r.depth*r.carrier.Next(signal.WaveSine, r.carrierHz, r.sampleRate)
		for ch := 0; ch < channels; ch++ {
			buf[ch][i] *= gain
		}
	}
}
