package signal

import "math/rand/v2"

// Noise is a streaming, seeded white noise source. Two sources built from
// the same seed produce identical sequences.
type Noise struct {
	seed uint64
	src  *rand.PCG
	rng  *rand.Rand
}

// NewNoise returns a noise source for seed.
func NewNoise(seed uint64) *Noise {
	src := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	return &Noise{seed: seed, src: src, rng: rand.New(src)}
}

// Next returns the next sample in [-1, 1).
func (n *Noise) Next() float64 {
	return n.rng.Float64()*2 - 1
}

// Fill writes len(buf) samples scaled by amplitude into buf.
func (n *Noise) Fill(buf []float64, amplitude float64) {
	for i := range buf {
		buf[i] = n.Next() * amplitude
	}
}

// Reset rewinds the sequence to its start.
func (n *Noise) Reset() {
	n.src.Seed(n.seed, n.seed^0x9e3779b97f4a7c15)
}
