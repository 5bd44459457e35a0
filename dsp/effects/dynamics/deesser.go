package dynamics

import (
	"fmt"

	"github.com/cwbudde/algo-rocket/dsp/core"
	"github.com/cwbudde/algo-rocket/dsp/filter/biquad"
	"github.com/cwbudde/algo-rocket/dsp/filter/design"
)

const (
	defaultDeEsserFreqHz   = 6000.0
	defaultDeEsserThreshDB = -30.0
	minDeEsserFreqHz       = 1000.0
	maxDeEsserFreqHz       = 12000.0
	minDeEsserThreshDB     = -60.0
	maxDeEsserThreshDB     = 0.0

	// DeEsserRatio is the fixed compression ratio of the sibilance band.
	DeEsserRatio = 6.0
	// DeEsserAttackMs is the fixed detector attack time.
	DeEsserAttackMs = 2.0
	// DeEsserReleaseMs is the fixed detector release time.
	DeEsserReleaseMs = 80.0
)

// DeEsser reduces sibilance without a crossover. Each channel is copied and
// highpassed at Frequency(); the copy is compressed against Threshold() and
// the difference between the highpassed copy and its compressed version is
// subtracted from the input:
//
//	out = x - (hp - g*hp)
//
// Below threshold g is 1 and the input passes unchanged.
type DeEsser struct {
	sampleRate float64
	freqHz     float64

	computer GainComputer
	filters  [core.MaxChannels]biquad.Section
	envs     [core.MaxChannels]Envelope
	minGain  float64
}

// NewDeEsser creates a de-esser for sampleRate.
func NewDeEsser(sampleRate float64) (*DeEsser, error) {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("de-esser sample rate must be positive and finite: %f", sampleRate)
	}

	d := &DeEsser{
		sampleRate: sampleRate,
		computer:   NewGainComputer(defaultDeEsserThreshDB, DeEsserRatio),
		minGain:    1,
	}
	for ch := range d.envs {
		d.envs[ch].SetTimes(DeEsserAttackMs, DeEsserReleaseMs, sampleRate)
	}
	d.SetFrequency(defaultDeEsserFreqHz)
	return d, nil
}

// SetFrequency sets the highpass detection corner, clamped to
// [1000, 12000] Hz.
func (d *DeEsser) SetFrequency(hz float64) {
	hz = core.SafeClamp(hz, minDeEsserFreqHz, maxDeEsserFreqHz, defaultDeEsserFreqHz)
	if hz == d.freqHz {
		return
	}
	d.freqHz = hz
	c := design.Highpass(hz, design.ButterworthQ, d.sampleRate)
	for ch := range d.filters {
		d.filters[ch].Coefficients = c
	}
}

// SetThreshold sets the threshold, clamped to [-60, 0] dBFS.
func (d *DeEsser) SetThreshold(dB float64) {
	d.computer.SetThreshold(core.SafeClamp(dB, minDeEsserThreshDB, maxDeEsserThreshDB, defaultDeEsserThreshDB))
}

// Frequency returns the detection corner in Hz.
func (d *DeEsser) Frequency() float64 { return d.freqHz }

// Threshold returns the threshold in dBFS.
func (d *DeEsser) Threshold() float64 { return d.computer.Threshold() }

// MinGain returns the smallest band gain applied since the last Reset.
func (d *DeEsser) MinGain() float64 { return d.minGain }

// Reset clears filter and envelope state.
func (d *DeEsser) Reset() {
	for ch := range d.filters {
		d.filters[ch].Reset()
		d.envs[ch].Reset()
	}
	d.minGain = 1
}

// Process de-esses buf in place.
func (d *DeEsser) Process(buf [][]float64) {
	for ch := 0; ch < len(buf) && ch < core.MaxChannels; ch++ {
		f := &d.filters[ch]
		env := &d.envs[ch]
		for i, x := range buf[ch] {
			hp := f.ProcessSample(x)
			g := d.computer.Gain(env.Next(hp))
			if g < d.minGain {
				d.minGain = g
			}
			buf[ch][i] = x - (hp - g*hp)
		}
	}
}
