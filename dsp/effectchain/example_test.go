package effectchain_test

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-rocket/dsp/core"
	"github.com/cwbudde/algo-rocket/dsp/effectchain"
)

func ExampleTransport_DivisionSamples() {
	tr := effectchain.Transport{BPM: 120}
	fmt.Printf("%.0f\n", tr.DivisionSamples(2, 48000))
	fmt.Printf("%.0f\n", effectchain.Transport{}.DivisionRateHz(3))
	// Output:
	// 24000
	// 4
}

func ExampleChain_SetModuleOrder() {
	log := logrus.New()
	log.SetOutput(io.Discard)

	c := effectchain.New(effectchain.WithLogger(log))
	c.SetModuleOrder([]string{"pitch", "noise", "bogus", "reverb", "pitch"})
	fmt.Println(c.ModuleOrder()[:4])
	// Output: [pitch reverb delay lpf]
}

func ExampleChain_Process() {
	log := logrus.New()
	log.SetOutput(io.Discard)

	c := effectchain.New(effectchain.WithLogger(log))
	if err := c.Prepare(core.ApplyProcessorOptions(core.WithSampleRate(48000), core.WithBlockSize(256))); err != nil {
		fmt.Println(err)
		return
	}
	_ = c.Store().Set("bitcrusher_enabled", 1)
	_ = c.Store().Set("bitcrusher_bits", 2)

	buf := [][]float64{{0.3, 0.6}, {-0.3, 0.9}}
	c.Process(buf, effectchain.Transport{})
	fmt.Println(buf)
	// Output: [[0.25 0.5] [-0.5 0.75]]
}
