package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-rocket/dsp/core"
)

const (
	defaultBitCrusherBits = 8.0
	defaultBitCrusherHold = 1
	minBitCrusherBits     = 2.0
	maxBitCrusherBits     = 16.0
	maxBitCrusherHold     = 16
	bitCrusherSoftDrive   = 1.5
)

// BitCrusherOption mutates bit crusher construction parameters.
type BitCrusherOption func(*bitCrusherConfig) error

type bitCrusherConfig struct {
	bits float64
	hold int
	soft bool
}

// WithBitCrusherBits sets the effective bit depth in [2, 16].
func WithBitCrusherBits(bits float64) BitCrusherOption {
	return func(cfg *bitCrusherConfig) error {
		if bits < minBitCrusherBits || bits > maxBitCrusherBits || !core.IsFinite(bits) {
			return fmt.Errorf("bit crusher bits must be in [%g, %g]: %f",
				minBitCrusherBits, maxBitCrusherBits, bits)
		}
		cfg.bits = bits
		return nil
	}
}

// WithBitCrusherHold sets how many input samples share one held value, in [1, 16].
func WithBitCrusherHold(hold int) BitCrusherOption {
	return func(cfg *bitCrusherConfig) error {
		if hold < 1 || hold > maxBitCrusherHold {
			return fmt.Errorf("bit crusher hold must be in [1, %d]: %d", maxBitCrusherHold, hold)
		}
		cfg.hold = hold
		return nil
	}
}

// WithBitCrusherSoft selects tanh saturation of the quantized value instead
// of a hard clamp.
func WithBitCrusherSoft(soft bool) BitCrusherOption {
	return func(cfg *bitCrusherConfig) error {
		cfg.soft = soft
		return nil
	}
}

// BitCrusher reduces the effective sample rate and amplitude resolution.
//
// A hold counter shared by all channels captures a new input sample every
// Hold() samples; the held value is clamped to [-1, 1] and quantized with
// floor(x/step)*step, step = 2^-bits. In soft mode the quantized value is
// passed through tanh(q*1.5) instead.
type BitCrusher struct {
	bits float64
	step float64
	hold int
	soft bool

	counter int
	held    [core.MaxChannels]float64
}

// NewBitCrusher creates a bit crusher with optional configuration overrides.
func NewBitCrusher(opts ...BitCrusherOption) (*BitCrusher, error) {
	cfg := bitCrusherConfig{bits: defaultBitCrusherBits, hold: defaultBitCrusherHold}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	bc := &BitCrusher{soft: cfg.soft}
	bc.SetBits(cfg.bits)
	bc.SetHold(cfg.hold)
	return bc, nil
}

// SetBits sets the bit depth, clamped to [2, 16].
func (bc *BitCrusher) SetBits(bits float64) {
	bc.bits = core.SafeClamp(bits, minBitCrusherBits, maxBitCrusherBits, defaultBitCrusherBits)
	bc.step = math.Exp2(-bc.bits)
}

// SetHold sets the hold length in samples, clamped to [1, 16].
func (bc *BitCrusher) SetHold(hold int) {
	bc.hold = min(max(hold, 1), maxBitCrusherHold)
}

// SetSoft toggles soft saturation.
func (bc *BitCrusher) SetSoft(soft bool) { bc.soft = soft }

// Bits returns the bit depth.
func (bc *BitCrusher) Bits() float64 { return bc.bits }

// Step returns the quantization step 2^-bits.
func (bc *BitCrusher) Step() float64 { return bc.step }

// Hold returns the hold length in samples.
func (bc *BitCrusher) Hold() int { return bc.hold }

// Soft reports whether soft saturation is active.
func (bc *BitCrusher) Soft() bool { return bc.soft }

// Reset clears the hold state.
func (bc *BitCrusher) Reset() {
	bc.counter = 0
	bc.held = [core.MaxChannels]float64{}
}

// Process crushes buf in place. All channels share one hold counter.
func (bc *BitCrusher) Process(buf [][]float64) {
	if len(buf) == 0 {
		return
	}
	channels := min(len(buf), core.MaxChannels)
	n := len(buf[0])
	for i := 0; i < n; i++ {
		if bc.counter == 0 {
			for ch := 0; ch < channels; ch++ {
				bc.held[ch] = bc.crush(buf[ch][i])
			}
		}
		bc.counter++
		if bc.counter >= bc.hold {
			bc.counter = 0
		}
		for ch := 0; ch < channels; ch++ {
			buf[ch][i] = bc.held[ch]
		}
	}
}

func (bc *BitCrusher) crush(x float64) float64 {
	x = core.SafeClamp(x, -1, 1, 0)
	q := math.Floor(x/bc.step) * bc.step
	if bc.soft {
		return math.Tanh(q * bitCrusherSoftDrive)
	}
	return q
}
