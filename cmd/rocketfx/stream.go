package main

import (
	"context"

	"github.com/gopxl/beep"

	"github.com/cwbudde/algo-rocket/dsp/effectchain"
	"github.com/cwbudde/algo-rocket/dsp/param"
)

// chainStreamer runs a beep stream through a chain. beep frames are always
// stereo, so mono sources arrive with both channels equal.
type chainStreamer struct {
	ctx        context.Context
	src        beep.Streamer
	chain      *effectchain.Chain
	auto       *automation
	transport  effectchain.Transport
	sampleRate float64

	frames int
	planar [][]float64
	err    error
}

func newChainStreamer(
	ctx context.Context,
	src beep.Streamer,
	chain *effectchain.Chain,
	auto *automation,
	transport effectchain.Transport,
) *chainStreamer {
	block := chain.Config().BlockSize
	return &chainStreamer{
		ctx:        ctx,
		src:        src,
		chain:      chain,
		auto:       auto,
		transport:  transport,
		sampleRate: chain.Config().SampleRate,
		planar:     [][]float64{make([]float64, block), make([]float64, block)},
	}
}

func (s *chainStreamer) Stream(samples [][2]float64) (int, bool) {
	if s.err != nil {
		return 0, false
	}
	if err := s.ctx.Err(); err != nil {
		s.err = err
		return 0, false
	}

	n, ok := s.src.Stream(samples)
	block := len(s.planar[0])
	for off := 0; off < n; off += block {
		end := min(off+block, n)
		s.processFrames(samples[off:end])
	}
	if !ok {
		s.err = s.src.Err()
	}
	return n, ok
}

func (s *chainStreamer) processFrames(frames [][2]float64) {
	n := len(frames)
	left, right := s.planar[0][:n], s.planar[1][:n]
	for i, f := range frames {
		left[i], right[i] = f[0], f[1]
	}

	if s.auto != nil {
		if v, ok := s.auto.valueAt(s.seconds()); ok {
			// Values come from a 7-bit controller and are always in range.
			_ = s.chain.Store().Set(param.Amount, v)
		}
	}
	s.transport.PositionSeconds = s.seconds()
	s.chain.Process([][]float64{left, right}, s.transport)

	for i := range frames {
		frames[i] = [2]float64{left[i], right[i]}
	}
	s.frames += n
}

func (s *chainStreamer) seconds() float64 {
	return float64(s.frames) / s.sampleRate
}

func (s *chainStreamer) Err() error { return s.err }

// Frames returns how many frames have been processed.
func (s *chainStreamer) Frames() int { return s.frames }

// sliceStreamer plays planar buffers as a beep stream. A single channel is
// duplicated to both sides.
type sliceStreamer struct {
	left, right []float64
	pos         int
}

func newSliceStreamer(left, right []float64) *sliceStreamer {
	if right == nil {
		right = left
	}
	return &sliceStreamer{left: left, right: right}
}

func (s *sliceStreamer) Stream(samples [][2]float64) (int, bool) {
	if s.pos >= len(s.left) {
		return 0, false
	}
	n := min(len(samples), len(s.left)-s.pos)
	for i := range n {
		samples[i] = [2]float64{s.left[s.pos+i], s.right[s.pos+i]}
	}
	s.pos += n
	return n, true
}

func (s *sliceStreamer) Err() error { return nil }

func (s *sliceStreamer) Len() int { return len(s.left) }
