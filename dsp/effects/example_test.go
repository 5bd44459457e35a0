package effects_test

import (
	"fmt"

	"github.com/cwbudde/algo-rocket/dsp/effects"
)

func ExampleBitCrusher() {
	bc, err := effects.NewBitCrusher(effects.WithBitCrusherBits(2))
	if err != nil {
		panic(err)
	}

	buf := [][]float64{{0.9, 0.3, -0.1, -0.8}}
	bc.Process(buf)
	fmt.Println(buf[0])
	// Output:
	// [0.75 0.25 -0.25 -1]
}

func ExampleShape() {
	for _, mode := range []effects.DistortionMode{
		effects.DistortionSoft, effects.DistortionHard, effects.DistortionTube, effects.DistortionFuzz,
	} {
		fmt.Printf("%s %.3f\n", mode, effects.Shape(mode, 2))
	}
	// Output:
	// Soft 0.964
	// Hard 1.000
	// Tube 0.667
	// Fuzz 0.000
}
