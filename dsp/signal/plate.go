package signal

import (
	"fmt"
	"math"
)

const (
	// PlateSeed is the noise seed of the default plate impulse response.
	PlateSeed = 12345
	// PlateLength is the default plate impulse response length in samples.
	PlateLength = 4096

	plateDecayNepers = 6.907755278982137 // ln(1000): -60 dB
)

// PlateImpulse synthesizes a dense, exponentially decaying noise impulse
// response of length samples. The envelope falls 60 dB over the response and
// the result has unit energy.
func PlateImpulse(length int, seed uint64) ([]float64, error) {
	if length <= 0 {
		return nil, fmt.Errorf("plate impulse length must be > 0: %d", length)
	}

	ir := make([]float64, length)
	n := NewNoise(seed)
	k := plateDecayNepers / float64(length)
	for i := range ir {
		ir[i] = n.Next() * math.Exp(-k*float64(i))
	}
	NormalizeEnergy(ir)

	return ir, nil
}
