package modulation

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-rocket/dsp/core"
	"github.com/cwbudde/algo-rocket/dsp/signal"
)

const (
	phaserStages          = 6
	phaserSweepOctaves    = 2.0
	phaserMinFreqHz       = 20.0
	phaserNyquistFraction = 0.45

	defaultPhaserRateHz   = 0.3
	defaultPhaserDepth    = 0.6
	defaultPhaserFeedback = 0.2
	defaultPhaserCenterHz = 400.0
	minPhaserRateHz       = 0.01
	maxPhaserRateHz       = 5.0
	maxPhaserFeedback     = 0.95
	minPhaserCenterHz     = 100.0
	maxPhaserCenterHz     = 2000.0
)

type phaserAllpassStage struct {
	x1 float64
	y1 float64
}

func (s *phaserAllpassStage) process(x, a float64) float64 {
	y := a*x + s.x1 - a*s.y1
	s.x1 = x
	s.y1 = core.FlushDenormals(y)
	return y
}

// Phaser sweeps a six-stage first-order allpass cascade around a center
// frequency. The break frequency moves up to two octaves either side of the
// center at full depth. The cascade output is fed back by feedback and
// averaged with the input to form the notches.
type Phaser struct {
	sampleRate float64
	rateHz     float64
	depth      float64
	feedback   float64
	centerHz   float64

	lfo    signal.Oscillator
	stages [core.MaxChannels][phaserStages]phaserAllpassStage
	last   [core.MaxChannels]float64
}

// NewPhaser creates a phaser for sampleRate.
func NewPhaser(sampleRate float64) (*Phaser, error) {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("phaser sample rate must be > 0 and finite: %f", sampleRate)
	}
	return &Phaser{
		sampleRate: sampleRate,
		rateHz:     defaultPhaserRateHz,
		depth:      defaultPhaserDepth,
		feedback:   defaultPhaserFeedback,
		centerHz:   defaultPhaserCenterHz,
	}, nil
}

// SetRateHz sets the LFO rate, clamped to [0.01, 5] Hz.
func (p *Phaser) SetRateHz(rate float64) {
	p.rateHz = core.SafeClamp(rate, minPhaserRateHz, maxPhaserRateHz, defaultPhaserRateHz)
}

// SetDepth sets sweep depth in [0, 1].
func (p *Phaser) SetDepth(depth float64) {
	p.depth = core.SafeClamp(depth, 0, 1, defaultPhaserDepth)
}

// SetFeedback sets feedback in [-0.95, 0.95].
func (p *Phaser) SetFeedback(fb float64) {
	p.feedback = core.SafeClamp(fb, -maxPhaserFeedback, maxPhaserFeedback, defaultPhaserFeedback)
}

// SetCenterHz sets the sweep center, clamped to [100, 2000] Hz.
func (p *Phaser) SetCenterHz(hz float64) {
	p.centerHz = core.SafeClamp(hz, minPhaserCenterHz, maxPhaserCenterHz, defaultPhaserCenterHz)
}

// RateHz returns the LFO rate.
func (p *Phaser) RateHz() float64 { return p.rateHz }

// Depth returns the sweep depth.
func (p *Phaser) Depth() float64 { return p.depth }

// Feedback returns the feedback gain.
func (p *Phaser) Feedback() float64 { return p.feedback }

// CenterHz returns the sweep center.
func (p *Phaser) CenterHz() float64 { return p.centerHz }

// Phase returns the normalized LFO phase.
func (p *Phaser) Phase() float64 { return p.lfo.Phase() }

// Reset clears allpass state and rewinds the LFO.
func (p *Phaser) Reset() {
	p.stages = [core.MaxChannels][phaserStages]phaserAllpassStage{}
	p.last = [core.MaxChannels]float64{}
	p.lfo.Reset()
}

// Process phases buf in place.
func (p *Phaser) Process(buf [][]float64) {
	channels := min(len(buf), core.MaxChannels)
	if channels == 0 {
		return
	}

	for i := range buf[0] {
		lfo := p.lfo.Next(signal.WaveSine, p.rateHz, p.sampleRate)
		freq := p.centerHz * math.Exp2(phaserSweepOctaves*p.depth*lfo)
		a := allpassCoefficient(freq, p.sampleRate)

		for ch := 0; ch < channels; ch++ {
			x := buf[ch][i]
			y := x + p.last[ch]*p.feedback
			for s := range p.stages[ch] {
				y = p.stages[ch][s].process(y, a)
			}
			p.last[ch] = y
			buf[ch][i] = 0.5 * (x + y)
		}
	}
}

// allpassCoefficient returns the first-order allpass coefficient whose
// 90 degree phase point sits at freqHz.
func allpassCoefficient(freqHz, sampleRate float64) float64 {
	freqHz = core.Clamp(freqHz, phaserMinFreqHz, phaserNyquistFraction*sampleRate)
	g := math.Tan(math.Pi * freqHz / sampleRate)
	return (g - 1) / (g + 1)
}
