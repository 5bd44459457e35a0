package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-rocket/dsp/conv"
	"github.com/cwbudde/algo-rocket/dsp/core"
	"github.com/cwbudde/algo-rocket/dsp/delay"
	"github.com/cwbudde/algo-rocket/dsp/signal"
)

const (
	reverbNumCombs     = 8
	reverbNumAllpasses = 4
	reverbStereoSpread = 23
	reverbTuningRate   = 44100.0

	reverbFixedGain  = 0.015
	reverbScaleDamp  = 0.4
	reverbScaleRoom  = 0.28
	reverbOffsetRoom = 0.7
	reverbAllpassFB  = 0.5

	defaultReverbSize    = 0.5
	defaultReverbDamping = 0.5
	defaultReverbWidth   = 1.0

	// MaxReverbPreDelayMs is the longest supported pre-delay.
	MaxReverbPreDelayMs = 250.0
)

var (
	reverbCombTuning    = [reverbNumCombs]int{1116, 1188, 1277, 1356, 1422, 1491, 1557, 1617}
	reverbAllpassTuning = [reverbNumAllpasses]int{556, 441, 341, 225}
)

// ReverbAlgorithm selects the reverb topology.
type ReverbAlgorithm int

const (
	// ReverbHall runs the comb/allpass network only.
	ReverbHall ReverbAlgorithm = iota
	// ReverbPlate convolves with a synthetic plate response before the network.
	ReverbPlate
)

// String returns the display name of the algorithm.
func (a ReverbAlgorithm) String() string {
	switch a {
	case ReverbHall:
		return "Hall"
	case ReverbPlate:
		return "Plate"
	default:
		return fmt.Sprintf("ReverbAlgorithm(%d)", int(a))
	}
}

type reverbAllpass struct {
	buffer []float64
	index  int
}

func (a *reverbAllpass) process(input float64) float64 {
	bufOut := a.buffer[a.index]
	a.buffer[a.index] = input + bufOut*reverbAllpassFB
	a.index++
	if a.index >= len(a.buffer) {
		a.index = 0
	}
	return bufOut - input
}

func (a *reverbAllpass) reset() {
	clear(a.buffer)
	a.index = 0
}

type reverbComb struct {
	buffer      []float64
	index       int
	filterStore float64
}

func (c *reverbComb) process(input, feedback, dampA, dampB float64) float64 {
	output := c.buffer[c.index]
	c.filterStore = core.FlushDenormals(output*dampB + c.filterStore*dampA)
	c.buffer[c.index] = input + c.filterStore*feedback
	c.index++
	if c.index >= len(c.buffer) {
		c.index = 0
	}
	return output
}

func (c *reverbComb) reset() {
	clear(c.buffer)
	c.index = 0
	c.filterStore = 0
}

// reverbTank is one channel of the Freeverb network.
type reverbTank struct {
	combs   [reverbNumCombs]reverbComb
	allpass [reverbNumAllpasses]reverbAllpass
}

func newReverbTank(scale float64, spread int) reverbTank {
	var t reverbTank
	for i, n := range reverbCombTuning {
		t.combs[i].buffer = make([]float64, max(1, int(math.Round(float64(n+spread)*scale))))
	}
	for i, n := range reverbAllpassTuning {
		t.allpass[i].buffer = make([]float64, max(1, int(math.Round(float64(n+spread)*scale))))
	}
	return t
}

func (t *reverbTank) process(x, feedback, dampA, dampB float64) float64 {
	var acc float64
	for i := range t.combs {
		acc += t.combs[i].process(x, feedback, dampA, dampB)
	}
	for i := range t.allpass {
		acc = t.allpass[i].process(acc)
	}
	return acc
}

func (t *reverbTank) reset() {
	for i := range t.combs {
		t.combs[i].reset()
	}
	for i := range t.allpass {
		t.allpass[i].reset()
	}
}

// ReverbOption mutates reverb construction parameters.
type ReverbOption func(*reverbConfig) error

type reverbConfig struct {
	plateLength int
	plateSeed   uint64
}

// WithReverbPlate overrides the plate impulse length and noise seed.
func WithReverbPlate(length int, seed uint64) ReverbOption {
	return func(cfg *reverbConfig) error {
		if length <= 0 {
			return fmt.Errorf("reverb plate length must be > 0: %d", length)
		}
		cfg.plateLength = length
		cfg.plateSeed = seed
		return nil
	}
}

// Reverb is a stereo Freeverb-style reverb that outputs the wet signal only.
//
// Processing order per block: pre-delay, plate convolution (ReverbPlate
// only), then the comb/allpass tanks. Both channels feed the tanks as a
// mono sum; width blends the left and right tank outputs. Freeze sets comb
// feedback to 1, removes damping and mutes the tank input.
type Reverb struct {
	sampleRate float64

	size     float64
	damping  float64
	width    float64
	freeze   bool
	algo     ReverbAlgorithm
	preDelay int

	feedback float64
	dampA    float64
	dampB    float64
	gain     float64
	wet1     float64
	wet2     float64

	tanks     [core.MaxChannels]reverbTank
	preDelays [core.MaxChannels]*delay.Line
	plates    [core.MaxChannels]*conv.Streaming
}

// NewReverb creates a reverb for sampleRate that accepts blocks of up to
// maxBlockSize samples.
func NewReverb(sampleRate float64, maxBlockSize int, opts ...ReverbOption) (*Reverb, error) {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("reverb sample rate must be > 0 and finite: %f", sampleRate)
	}
	if maxBlockSize <= 0 {
		return nil, fmt.Errorf("reverb block size must be > 0: %d", maxBlockSize)
	}

	cfg := reverbConfig{plateLength: signal.PlateLength, plateSeed: signal.PlateSeed}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	ir, err := signal.PlateImpulse(cfg.plateLength, cfg.plateSeed)
	if err != nil {
		return nil, fmt.Errorf("reverb: %w", err)
	}

	r := &Reverb{sampleRate: sampleRate}
	scale := sampleRate / reverbTuningRate
	for ch := range r.tanks {
		r.tanks[ch] = newReverbTank(scale, ch*reverbStereoSpread)

		line, err := delay.ForDuration(MaxReverbPreDelayMs/1000, sampleRate)
		if err != nil {
			return nil, fmt.Errorf("reverb: pre-delay: %w", err)
		}
		r.preDelays[ch] = line

		plate, err := conv.NewStreaming(ir, maxBlockSize)
		if err != nil {
			return nil, fmt.Errorf("reverb: plate: %w", err)
		}
		r.plates[ch] = plate
	}

	r.size = defaultReverbSize
	r.damping = defaultReverbDamping
	r.width = defaultReverbWidth
	r.update()
	return r, nil
}

// SetSize sets room size in [0, 1].
func (r *Reverb) SetSize(v float64) {
	r.size = core.SafeClamp(v, 0, 1, defaultReverbSize)
	r.update()
}

// SetDamping sets high-frequency damping in [0, 1].
func (r *Reverb) SetDamping(v float64) {
	r.damping = core.SafeClamp(v, 0, 1, defaultReverbDamping)
	r.update()
}

// SetWidth sets stereo width in [0, 1].
func (r *Reverb) SetWidth(v float64) {
	r.width = core.SafeClamp(v, 0, 1, defaultReverbWidth)
	r.update()
}

// SetFreeze holds the current tail indefinitely.
func (r *Reverb) SetFreeze(freeze bool) {
	r.freeze = freeze
	r.update()
}

// SetAlgorithm selects hall or plate. Switching to plate clears the
// convolution tail.
func (r *Reverb) SetAlgorithm(algo ReverbAlgorithm) {
	if algo != ReverbPlate {
		algo = ReverbHall
	}
	if algo == ReverbPlate && r.algo != ReverbPlate {
		for _, p := range r.plates {
			p.Reset()
		}
	}
	r.algo = algo
}

// SetPreDelayMs sets the pre-delay in milliseconds, clamped to [0, 250].
func (r *Reverb) SetPreDelayMs(ms float64) {
	ms = core.SafeClamp(ms, 0, MaxReverbPreDelayMs, 0)
	r.preDelay = int(math.Round(ms * r.sampleRate / 1000))
}

// Size returns the room size.
func (r *Reverb) Size() float64 { return r.size }

// Damping returns the damping amount.
func (r *Reverb) Damping() float64 { return r.damping }

// Width returns the stereo width.
func (r *Reverb) Width() float64 { return r.width }

// Frozen reports whether freeze is active.
func (r *Reverb) Frozen() bool { return r.freeze }

// Algorithm returns the active topology.
func (r *Reverb) Algorithm() ReverbAlgorithm { return r.algo }

// PreDelaySamples returns the pre-delay in samples.
func (r *Reverb) PreDelaySamples() int { return r.preDelay }

// Reset clears tanks, pre-delay lines and convolution state.
func (r *Reverb) Reset() {
	for ch := range r.tanks {
		r.tanks[ch].reset()
		r.preDelays[ch].Reset()
		r.plates[ch].Reset()
	}
}

// Process replaces buf with the reverb output. Blocks must not exceed the
// block size given to NewReverb.
func (r *Reverb) Process(buf [][]float64) {
	channels := min(len(buf), core.MaxChannels)
	if channels == 0 {
		return
	}

	if r.preDelay > 0 {
		for ch := 0; ch < channels; ch++ {
			line := r.preDelays[ch]
			for i, x := range buf[ch] {
				buf[ch][i] = line.Read(r.preDelay)
				line.Write(x)
			}
		}
	}

	if r.algo == ReverbPlate {
		for ch := 0; ch < channels; ch++ {
			// Oversized blocks and FFT failures silence the block rather than
			// leaving a partial or unconvolved signal in the tank.
			if err := r.plates[ch].ProcessBlockTo(buf[ch], buf[ch]); err != nil {
				core.Zero(buf[ch])
			}
		}
	}

	left := buf[0]
	right := left
	if channels > 1 {
		right = buf[1]
	}
	for i := range left {
		x := (left[i] + right[i]) * r.gain
		outL := r.tanks[0].process(x, r.feedback, r.dampA, r.dampB)
		outR := r.tanks[1].process(x, r.feedback, r.dampA, r.dampB)
		left[i] = outL*r.wet1 + outR*r.wet2
		if channels > 1 {
			right[i] = outR*r.wet1 + outL*r.wet2
		}
	}
}

func (r *Reverb) update() {
	if r.freeze {
		r.feedback = 1
		r.dampA = 0
		r.gain = 0
	} else {
		r.feedback = r.size*reverbScaleRoom + reverbOffsetRoom
		r.dampA = r.damping * reverbScaleDamp
		r.gain = reverbFixedGain
	}
	r.dampB = 1 - r.dampA
	r.wet1 = r.width/2 + 0.5
	r.wet2 = (1 - r.width) / 2
}
