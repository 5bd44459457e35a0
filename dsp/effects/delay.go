package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-rocket/dsp/core"
	"github.com/cwbudde/algo-rocket/dsp/delay"
	"github.com/cwbudde/algo-rocket/dsp/filter/biquad"
	"github.com/cwbudde/algo-rocket/dsp/filter/design"
)

// DelayMode selects the feedback topology of StereoDelay.
type DelayMode int

const (
	// DelayDigital feeds each channel back into itself.
	DelayDigital DelayMode = iota
	// DelayPingPong feeds each channel into the opposite line.
	DelayPingPong
	// DelayTape adds a one-pole lowpass and tanh saturation to the feedback.
	DelayTape
)

const (
	// MaxDelaySeconds is the longest delay time StereoDelay accepts.
	MaxDelaySeconds = 2.0

	defaultDelayFeedback = 0.35
	defaultDelayTapeTone = 0.6
	maxDelayFeedback     = 0.95
	delayWowRange        = 0.10
	delayTapeDrive       = 1.7
	minFeedbackHPHz      = 20.0
	maxFeedbackLPHz      = 20000.0
)

// String returns the display name of the mode.
func (m DelayMode) String() string {
	switch m {
	case DelayDigital:
		return "Digital"
	case DelayPingPong:
		return "PingPong"
	case DelayTape:
		return "Tape"
	default:
		return fmt.Sprintf("DelayMode(%d)", int(m))
	}
}

// StereoDelay is a feedback delay with one line per channel.
//
// Each output sample is the input plus the delayed tap, so the caller's
// dry/wet crossfade scales only the echoes. The feedback path runs through a
// highpass and a lowpass section; tape mode additionally smooths and
// saturates it. A sine "wow" LFO scales the delay time by up to +-10 %.
type StereoDelay struct {
	sampleRate   float64
	delaySamples float64
	maxDelay     float64
	feedback     float64
	mode         DelayMode
	tapeCoeff    float64
	hpHz, lpHz   float64

	wowDepth float64
	wowInc   float64
	wowPhase float64

	lines  [core.MaxChannels]*delay.Line
	hp     [core.MaxChannels]biquad.Section
	lp     [core.MaxChannels]biquad.Section
	tapeLP [core.MaxChannels]float64
}

// NewStereoDelay creates a delay for sampleRate holding at least
// MaxDelaySeconds plus wow headroom per channel.
func NewStereoDelay(sampleRate float64) (*StereoDelay, error) {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("delay sample rate must be > 0 and finite: %f", sampleRate)
	}

	d := &StereoDelay{sampleRate: sampleRate}
	for ch := range d.lines {
		line, err := delay.ForDuration(MaxDelaySeconds*(1+delayWowRange), sampleRate)
		if err != nil {
			return nil, fmt.Errorf("delay: %w", err)
		}
		d.lines[ch] = line
	}
	d.maxDelay = d.lines[0].MaxFractionalDelay()
	d.SetDelaySamples(0.35 * sampleRate)
	d.SetFeedback(defaultDelayFeedback)
	d.SetTapeTone(defaultDelayTapeTone)
	d.SetFeedbackFilter(minFeedbackHPHz, maxFeedbackLPHz)
	return d, nil
}

// SetDelaySamples sets the delay time in samples, clamped to
// [1, MaxDelaySeconds*sampleRate].
func (d *StereoDelay) SetDelaySamples(samples float64) {
	d.delaySamples = core.SafeClamp(samples, 1, MaxDelaySeconds*d.sampleRate, 1)
}

// SetTimeMs sets the delay time in milliseconds.
func (d *StereoDelay) SetTimeMs(ms float64) {
	d.SetDelaySamples(ms * 0.001 * d.sampleRate)
}

// SetFeedback sets feedback gain, clamped to [0, 0.95].
func (d *StereoDelay) SetFeedback(fb float64) {
	d.feedback = core.SafeClamp(fb, 0, maxDelayFeedback, defaultDelayFeedback)
}

// SetMode sets the topology. Unknown modes fall back to DelayDigital.
func (d *StereoDelay) SetMode(mode DelayMode) {
	if mode < DelayDigital || mode > DelayTape {
		mode = DelayDigital
	}
	d.mode = mode
}

// SetTapeTone sets tape brightness in [0, 1]; lower is darker.
func (d *StereoDelay) SetTapeTone(tone float64) {
	tone = core.SafeClamp(tone, 0, 1, defaultDelayTapeTone)
	d.tapeCoeff = core.Clamp(0.02+(1-tone)*0.20, 0, 1)
}

// SetFeedbackFilter sets the feedback highpass and lowpass corners in Hz.
// Coefficients are only redesigned when a corner changes.
func (d *StereoDelay) SetFeedbackFilter(hpHz, lpHz float64) {
	if hpHz != d.hpHz {
		d.hpHz = hpHz
		c := design.Highpass(hpHz, design.ButterworthQ, d.sampleRate)
		for ch := range d.hp {
			d.hp[ch].Coefficients = c
		}
	}
	if lpHz != d.lpHz {
		d.lpHz = lpHz
		c := design.Lowpass(lpHz, design.ButterworthQ, d.sampleRate)
		for ch := range d.lp {
			d.lp[ch].Coefficients = c
		}
	}
}

// SetWow sets wow depth in [0, 1] and rate in Hz.
func (d *StereoDelay) SetWow(depth, rateHz float64) {
	d.wowDepth = core.SafeClamp(depth, 0, 1, 0)
	rateHz = core.SafeClamp(rateHz, 0, d.sampleRate/2, 0)
	d.wowInc = 2 * math.Pi * rateHz / d.sampleRate
}

// DelaySamples returns the nominal delay time in samples.
func (d *StereoDelay) DelaySamples() float64 { return d.delaySamples }

// Feedback returns the feedback gain.
func (d *StereoDelay) Feedback() float64 { return d.feedback }

// Mode returns the topology.
func (d *StereoDelay) Mode() DelayMode { return d.mode }

// TapeCoefficient returns the one-pole coefficient used in tape mode.
func (d *StereoDelay) TapeCoefficient() float64 { return d.tapeCoeff }

// WowPhase returns the wow LFO phase in [0, 2pi).
func (d *StereoDelay) WowPhase() float64 { return d.wowPhase }

// Reset clears lines, filters and LFO phase.
func (d *StereoDelay) Reset() {
	for ch := range d.lines {
		d.lines[ch].Reset()
		d.hp[ch].Reset()
		d.lp[ch].Reset()
	}
	d.tapeLP = [core.MaxChannels]float64{}
	d.wowPhase = 0
}

// Process adds the delayed signal to buf in place.
func (d *StereoDelay) Process(buf [][]float64) {
	channels := min(len(buf), core.MaxChannels)
	if channels == 0 {
		return
	}

	var taps, fb [core.MaxChannels]float64
	for i := range buf[0] {
		t := d.delaySamples
		if d.wowDepth > 0 {
			t *= 1 + d.wowDepth*delayWowRange*math.Sin(d.wowPhase)
		}
		t = core.Clamp(t, 1, d.maxDelay)

		for ch := 0; ch < channels; ch++ {
			taps[ch] = d.lines[ch].ReadFractional(t)
		}

		for ch := 0; ch < channels; ch++ {
			src := ch
			if d.mode == DelayPingPong && channels > 1 {
				src = 1 - ch
			}
			v := taps[src] * d.feedback
			if d.mode == DelayTape {
				d.tapeLP[ch] += d.tapeCoeff * (v - d.tapeLP[ch])
				d.tapeLP[ch] = core.FlushDenormals(d.tapeLP[ch])
				v = math.Tanh(d.tapeLP[ch] * delayTapeDrive)
			}
			fb[ch] = d.lp[ch].ProcessSample(d.hp[ch].ProcessSample(v))
		}

		for ch := 0; ch < channels; ch++ {
			x := buf[ch][i]
			d.lines[ch].Write(x + fb[ch])
			buf[ch][i] = x + taps[ch]
		}

		d.wowPhase += d.wowInc
		if d.wowPhase >= 2*math.Pi {
			d.wowPhase -= 2 * math.Pi
		}
	}
}
