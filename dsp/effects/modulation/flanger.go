package modulation

import (
	"fmt"

	"github.com/cwbudde/algo-rocket/dsp/core"
	"github.com/cwbudde/algo-rocket/dsp/delay"
	"github.com/cwbudde/algo-rocket/dsp/signal"
)

const (
	flangerBaseDelayMs = 1.0
	flangerSweepMs     = 9.0

	defaultFlangerRateHz   = 0.25
	defaultFlangerDepth    = 0.5
	defaultFlangerFeedback = 0.3
	minFlangerRateHz       = 0.01
	maxFlangerRateHz       = 5.0
	maxFlangerFeedback     = 0.95
)

// Flanger is a short modulated delay with feedback. The delay sweeps from
// 1 ms up to 1+9*depth ms following a unipolar sine LFO, so full depth
// covers 1-10 ms. Output is the
// input plus the delayed tap.
type Flanger struct {
	sampleRate float64
	rateHz     float64
	depth      float64
	feedback   float64

	lfo   signal.Oscillator
	lines [core.MaxChannels]*delay.Line
}

// NewFlanger creates a flanger for sampleRate.
func NewFlanger(sampleRate float64) (*Flanger, error) {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("flanger sample rate must be > 0 and finite: %f", sampleRate)
	}

	f := &Flanger{
		sampleRate: sampleRate,
		rateHz:     defaultFlangerRateHz,
		depth:      defaultFlangerDepth,
		feedback:   defaultFlangerFeedback,
	}
	for ch := range f.lines {
		line, err := delay.ForDuration((flangerBaseDelayMs+flangerSweepMs)/1000, sampleRate)
		if err != nil {
			return nil, fmt.Errorf("flanger: %w", err)
		}
		f.lines[ch] = line
	}
	return f, nil
}

// SetRateHz sets the LFO rate, clamped to [0.01, 5] Hz.
func (f *Flanger) SetRateHz(rate float64) {
	f.rateHz = core.SafeClamp(rate, minFlangerRateHz, maxFlangerRateHz, defaultFlangerRateHz)
}

// SetDepth sets sweep depth in [0, 1].
func (f *Flanger) SetDepth(depth float64) {
	f.depth = core.SafeClamp(depth, 0, 1, defaultFlangerDepth)
}

// SetFeedback sets feedback in [0, 0.95].
func (f *Flanger) SetFeedback(fb float64) {
	f.feedback = core.SafeClamp(fb, 0, maxFlangerFeedback, defaultFlangerFeedback)
}

// RateHz returns the LFO rate.
func (f *Flanger) RateHz() float64 { return f.rateHz }

// Depth returns the sweep depth.
func (f *Flanger) Depth() float64 { return f.depth }

// Feedback returns the feedback gain.
func (f *Flanger) Feedback() float64 { return f.feedback }

// Phase returns the normalized LFO phase.
func (f *Flanger) Phase() float64 { return f.lfo.Phase() }

// Reset clears delay lines and rewinds the LFO.
func (f *Flanger) Reset() {
	for _, line := range f.lines {
		line.Reset()
	}
	f.lfo.Reset()
}

// delayMs maps a unipolar LFO value to the tap delay.
func (f *Flanger) delayMs(lfo float64) float64 {
	return flangerBaseDelayMs + f.depth*flangerSweepMs*lfo
}

// Process flanges buf in place.
func (f *Flanger) Process(buf [][]float64) {
	channels := min(len(buf), core.MaxChannels)
	if channels == 0 {
		return
	}

	msToSamples := f.sampleRate / 1000
	for i := range buf[0] {
		lfo := 0.5 + 0.5*f.lfo.Next(signal.WaveSine, f.rateHz, f.sampleRate)
		d := f.delayMs(lfo) * msToSamples
		for ch := 0; ch < channels; ch++ {
			line := f.lines[ch]
			x := buf[ch][i]
			tap := line.ReadFractional(d)
			line.Write(x + tap*f.feedback)
			buf[ch][i] = x + tap
		}
	}
}
