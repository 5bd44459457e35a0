package effectchain

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-rocket/dsp/core"
	"github.com/cwbudde/algo-rocket/internal/testutil"
)

const (
	testSampleRate = 48000.0
	testBlockSize  = 512
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func testConfig() core.ProcessorConfig {
	return core.ApplyProcessorOptions(
		core.WithSampleRate(testSampleRate),
		core.WithBlockSize(testBlockSize),
		core.WithChannels(2),
	)
}

func newTestChain(t *testing.T) *Chain {
	t.Helper()

	c := New(WithLogger(quietLogger()))
	if err := c.Prepare(testConfig()); err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	return c
}

func set(t *testing.T, c *Chain, values map[string]float64) {
	t.Helper()

	for id, v := range values {
		if err := c.Store().Set(id, v); err != nil {
			t.Fatalf("Set(%q): %v", id, err)
		}
	}
}

func noiseBlock(seed int64, n int) [][]float64 {
	return testutil.Planar(testutil.DeterministicNoise(seed, 0.5, n), 2)
}
