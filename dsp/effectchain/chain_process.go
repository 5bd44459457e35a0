package effectchain

import (
	"github.com/cwbudde/algo-rocket/dsp/core"
	"github.com/cwbudde/algo-rocket/dsp/param"
)

// Process runs one host block in place. Channels beyond the prepared count
// are left untouched; blocks longer than the prepared block size are split
// into chunks. Process does nothing before a successful Prepare.
func (c *Chain) Process(buf [][]float64, transport Transport) {
	if !c.prepared || len(buf) == 0 {
		return
	}
	channels := min(len(buf), c.cfg.Channels)
	n := len(buf[0])
	for ch := 1; ch < channels; ch++ {
		n = min(n, len(buf[ch]))
	}

	c.ctx.Transport = transport
	for off := 0; off < n; off += c.cfg.BlockSize {
		end := min(off+c.cfg.BlockSize, n)
		for ch := 0; ch < channels; ch++ {
			c.views[ch] = buf[ch][off:end]
		}
		c.processBlock(c.views[:channels])
	}
}

func (c *Chain) processBlock(buf [][]float64) {
	n := len(buf[0])
	ctx := &c.ctx

	ramp := c.macroRamp[:n]
	c.macro.SetTarget(c.store.Value(param.Amount, 0))
	start := c.macro.Current()
	c.macro.Fill(ramp)
	c.matrix.SetMacroValue(0.5 * (start + ramp[n-1]))

	for ch := range buf {
		copy(c.dry[ch][:n], buf[ch])
	}

	gen := c.renderGenerators(len(buf), n)
	genToChain := ctx.Bool(param.GenToChain)
	if genToChain {
		mixInto(buf, gen, 1)
	}

	for _, id := range *c.order.Load() {
		if m, ok := c.byID[id]; ok {
			m.Process(buf, ctx)
		}
	}

	if !genToChain {
		mixInto(buf, gen, ctx.Num(param.GenMix))
	}

	c.applyGlobalMix(buf, ramp)
	c.applyPopGuard(buf)
}

// renderGenerators fills the scratch buffers with every generator's output.
func (c *Chain) renderGenerators(channels, n int) [][]float64 {
	for ch := 0; ch < channels; ch++ {
		c.genViews[ch] = c.gen[ch][:n]
		core.Zero(c.genViews[ch])
	}
	gen := c.genViews[:channels]
	for _, m := range c.generators {
		m.Process(gen, &c.ctx)
	}
	return gen
}

func mixInto(dst, src [][]float64, gain float64) {
	if gain == 0 {
		return
	}
	for ch := range dst {
		d, s := dst[ch], src[ch]
		for i := range d {
			d[i] += gain * s[i]
		}
	}
}

// applyGlobalMix blends buf against the block's input with a per-sample
// weight: the smoothed global_mix value modulated by the per-sample macro.
func (c *Chain) applyGlobalMix(buf [][]float64, macro []float64) {
	n := len(buf[0])
	weights := c.mixCurve[:n]
	c.globalMix.SetTarget(c.store.Value(param.GlobalMix, 1))
	wet := true
	for i := range weights {
		w := core.Clamp01(c.matrix.ModulateWith(param.GlobalMix, c.globalMix.Next(), macro[i]))
		weights[i] = w
		wet = wet && w >= 1
	}
	if wet {
		return
	}
	for ch := range buf {
		core.CrossfadeCurve(buf[ch], c.dry[ch][:n], weights, c.scratch[:n])
	}
}

// applyPopGuard fades the first half of the guard out and the second half
// back in.
func (c *Chain) applyPopGuard(buf [][]float64) {
	remaining := int(c.popGuard.Load())
	if remaining <= 0 {
		return
	}
	n := min(remaining, len(buf[0]))
	gains := c.gains[:n]
	for i := range gains {
		gains[i] = popGuardGain(remaining - i)
	}
	for ch := range buf {
		core.ApplyGainCurve(buf[ch][:n], gains)
	}
	// A guard re-armed by another goroutine meanwhile starts over next block.
	c.popGuard.CompareAndSwap(int64(remaining), int64(remaining-n))
}

// popGuardGain returns the gain for a sample with left samples of the guard
// still to go, counting the current one.
func popGuardGain(left int) float64 {
	const half = PopGuardSamples / 2
	if left > half {
		return float64(left-half) / half
	}
	return 1 - float64(left)/half
}
