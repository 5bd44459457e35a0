package signal_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-rocket/dsp/core"
	"github.com/cwbudde/algo-rocket/dsp/signal"
)

func ExampleGenerator_Sine() {
	g := signal.NewGenerator([]core.ProcessorOption{core.WithSampleRate(1000)})
	x, err := g.Sine(250, 1, 5)
	if err != nil {
		panic(err)
	}
	for i := range x {
		if math.Abs(x[i]) < 1e-12 {
			x[i] = 0
		}
	}

	fmt.Printf("%.0f %.0f %.0f %.0f %.0f\n", x[0], x[1], x[2], x[3], x[4])

	// Output:
	// 0 1 0 -1 0
}

func ExampleShape() {
	for _, w := range []signal.Waveform{signal.WaveTriangle, signal.WaveSawUp, signal.WaveSquare} {
		fmt.Printf("%s %.1f\n", w, signal.Shape(w, 0.25))
	}

	// Output:
	// triangle 0.0
	// saw-up -0.5
	// square 1.0
}
