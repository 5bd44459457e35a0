package pitch

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-rocket/dsp/core"
)

const (
	ringSeconds  = 0.12
	minRingSize  = 2048
	maxRingSize  = 131072
	guardSamples = 32

	// MaxSemitones bounds the shift in either direction.
	MaxSemitones = 24.0
	// BypassSemitones is the magnitude below which Process leaves the buffer untouched.
	BypassSemitones = 0.001
)

// Shifter is a two-head granular pitch shifter.
//
// Input is written continuously into a ring of about 120 ms. Two read heads
// trail the write head by delays half a sweep window apart; both delays
// change by 1-2^(semitones/12) per sample, so the heads read at the shifted
// rate. The readable window keeps a 32-sample guard on either side of the
// write head: a head leaving it is moved by the window length to the
// opposite edge. Each head is weighted by a half-sine of its position in the
// window, zero at both edges, and the pair is normalized by the weight sum.
type Shifter struct {
	semitones float64
	speed     float64

	ring     [core.MaxChannels][]float64
	size     int
	window   float64
	writePos int
	delayA   float64
	delayB   float64
}

// RingSize returns the ring length used at sampleRate.
func RingSize(sampleRate float64) int {
	n := int(math.Round(sampleRate * ringSeconds))
	return min(max(n, minRingSize), maxRingSize)
}

// NewShifter creates a shifter for sampleRate.
func NewShifter(sampleRate float64) (*Shifter, error) {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("pitch shifter sample rate must be positive and finite: %f", sampleRate)
	}

	s := &Shifter{size: RingSize(sampleRate), speed: 1}
	s.window = float64(s.size - 2*guardSamples)
	for ch := range s.ring {
		s.ring[ch] = make([]float64, s.size)
	}
	s.Reset()
	return s, nil
}

// SetSemitones sets the shift, clamped to [-24, 24].
func (s *Shifter) SetSemitones(st float64) {
	s.semitones = core.SafeClamp(st, -MaxSemitones, MaxSemitones, 0)
	s.speed = math.Exp2(s.semitones / 12)
}

// Semitones returns the shift in semitones.
func (s *Shifter) Semitones() float64 { return s.semitones }

// Speed returns the read rate relative to the write rate.
func (s *Shifter) Speed() float64 { return s.speed }

// Bypassed reports whether the shift is too small to process.
func (s *Shifter) Bypassed() bool { return math.Abs(s.semitones) < BypassSemitones }

// Size returns the ring length in samples.
func (s *Shifter) Size() int { return s.size }

// Delays returns how far each read head trails the write head, in samples.
func (s *Shifter) Delays() (float64, float64) { return s.delayA, s.delayB }

// Reset clears the ring and restores the initial head layout.
func (s *Shifter) Reset() {
	for ch := range s.ring {
		clear(s.ring[ch])
	}
	s.writePos = 0
	s.delayA = guardSamples
	s.delayB = guardSamples + s.window/2
}

// Process shifts buf in place. It is a no-op while Bypassed.
func (s *Shifter) Process(buf [][]float64) {
	channels := min(len(buf), core.MaxChannels)
	if channels == 0 || s.Bypassed() {
		return
	}

	step := 1 - s.speed
	for i := range buf[0] {
		wA := s.weight(s.delayA)
		wB := s.weight(s.delayB)
		norm := 1.0
		if sum := wA + wB; sum > 1e-4 {
			norm = 1 / sum
		}

		for ch := 0; ch < channels; ch++ {
			ring := s.ring[ch]
			ring[s.writePos] = buf[ch][i]
			y := wA*s.read(ring, s.delayA) + wB*s.read(ring, s.delayB)
			buf[ch][i] = y * norm
		}

		s.writePos++
		if s.writePos >= s.size {
			s.writePos = 0
		}
		s.delayA = s.advance(s.delayA, step)
		s.delayB = s.advance(s.delayB, step)
	}
}

func (s *Shifter) weight(d float64) float64 {
	return math.Sin(math.Pi * (d - guardSamples) / s.window)
}

func (s *Shifter) advance(d, step float64) float64 {
	d += step
	if d < guardSamples {
		d += s.window
	} else if d > guardSamples+s.window {
		d -= s.window
	}
	return d
}

// read interpolates the ring d samples behind the write head.
func (s *Shifter) read(ring []float64, d float64) float64 {
	pos := float64(s.writePos) - d
	if pos < 0 {
		pos += float64(s.size)
	}
	i0 := int(pos)
	i1 := i0 + 1
	if i1 >= s.size {
		i1 = 0
	}
	frac := pos - float64(i0)
	return ring[i0] + frac*(ring[i1]-ring[i0])
}
