package param

import "github.com/cwbudde/algo-rocket/dsp/core"

// Smoother ramps linearly from its current value to a target over a fixed
// number of samples. A new target restarts the ramp from wherever the
// previous one had got to.
type Smoother struct {
	current   float64
	target    float64
	step      float64
	length    int
	remaining int
}

// NewSmoother creates a smoother whose ramps last rampMs at sampleRate.
func NewSmoother(sampleRate, rampMs float64) *Smoother {
	s := &Smoother{}
	s.SetRamp(sampleRate, rampMs)
	return s
}

// SetRamp changes the ramp length. A ramp in progress jumps to its target.
func (s *Smoother) SetRamp(sampleRate, rampMs float64) {
	n := 0
	if sampleRate > 0 && rampMs > 0 && core.IsFinite(sampleRate*rampMs) {
		n = int(sampleRate * rampMs * 0.001)
	}
	s.length = n
	s.Reset(s.target)
}

// Reset jumps to v with no ramp.
func (s *Smoother) Reset(v float64) {
	s.current = v
	s.target = v
	s.step = 0
	s.remaining = 0
}

// SetTarget starts a ramp toward v. Repeating the current target is a no-op.
func (s *Smoother) SetTarget(v float64) {
	if v == s.target {
		return
	}
	s.target = v
	if s.length == 0 {
		s.current = v
		s.remaining = 0
		return
	}
	s.remaining = s.length
	s.step = (v - s.current) / float64(s.length)
}

// Next advances one sample and returns the new value.
func (s *Smoother) Next() float64 {
	if s.remaining <= 0 {
		return s.target
	}
	s.remaining--
	if s.remaining == 0 {
		s.current = s.target
	} else {
		s.current += s.step
	}
	return s.current
}

// Fill writes the next len(dst) values into dst.
func (s *Smoother) Fill(dst []float64) {
	for i := range dst {
		dst[i] = s.Next()
	}
}

// Current returns the most recent value.
func (s *Smoother) Current() float64 { return s.current }

// Target returns the value being ramped toward.
func (s *Smoother) Target() float64 { return s.target }

// IsSmoothing reports whether a ramp is in progress.
func (s *Smoother) IsSmoothing() bool { return s.remaining > 0 }
