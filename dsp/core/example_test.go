package core_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-rocket/dsp/core"
)

func ExampleApplyProcessorOptions() {
	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(44100),
		core.WithBlockSize(256),
		core.WithChannels(1),
	)

	fmt.Printf("sampleRate=%.0f blockSize=%d channels=%d\n", cfg.SampleRate, cfg.BlockSize, cfg.Channels)

	// Output:
	// sampleRate=44100 blockSize=256 channels=1
}

func ExampleSafeClamp() {
	fmt.Println(core.SafeClamp(math.NaN(), 20, 20000, 1000))
	fmt.Println(core.SafeClamp(50000, 20, 20000, 1000))

	// Output:
	// 1000
	// 20000
}
