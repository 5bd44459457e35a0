package biquad

import (
	"sync"

	"github.com/cwbudde/algo-vecmath/cpu"
)

// blockKernel filters buf in place with one section and returns the new state.
type blockKernel func(c Coefficients, d0, d1 float64, buf []float64) (float64, float64)

type kernelEntry struct {
	name     string
	level    cpu.SIMDLevel
	priority int
	fn       blockKernel
}

// kernels lists the available implementations, highest priority first.
// The generic entry must stay last: it is the fallback on every CPU.
var kernels = []kernelEntry{
	{name: "generic-unrolled2", level: cpu.SIMDNone, priority: 0, fn: processBlockUnrolled2},
}

var (
	selectedKernel *kernelEntry
	selectOnce     sync.Once
)

func activeKernel() *kernelEntry {
	selectOnce.Do(func() {
		features := cpu.DetectFeatures()
		for i := range kernels {
			if cpu.Supports(features, kernels[i].level) {
				selectedKernel = &kernels[i]
				return
			}
		}
		selectedKernel = &kernels[len(kernels)-1]
	})
	return selectedKernel
}

// KernelName reports which block kernel ProcessBlock dispatches to.
func KernelName() string {
	return activeKernel().name
}

// processBlockUnrolled2 is a 2x-unrolled scalar DF2T loop.
func processBlockUnrolled2(c Coefficients, d0, d1 float64, buf []float64) (float64, float64) {
	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2

	i := 0
	n := len(buf)
	for ; i+1 < n; i += 2 {
		x0 := buf[i]
		y0 := b0*x0 + d0
		d0n := b1*x0 - a1*y0 + d1
		d1n := b2*x0 - a2*y0

		x1 := buf[i+1]
		y1 := b0*x1 + d0n
		d0 = b1*x1 - a1*y1 + d1n
		d1 = b2*x1 - a2*y1

		buf[i] = y0
		buf[i+1] = y1
	}

	if i < n {
		x := buf[i]
		y := b0*x + d0
		d0 = b1*x - a1*y + d1
		d1 = b2*x - a2*y
		buf[i] = y
	}

	return d0, d1
}
