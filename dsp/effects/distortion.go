package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-rocket/dsp/core"
	"github.com/cwbudde/algo-rocket/dsp/resample"
)

// DistortionMode selects the waveshaping curve.
type DistortionMode int

const (
	// DistortionSoft uses tanh(x).
	DistortionSoft DistortionMode = iota
	// DistortionHard clamps to [-1, 1].
	DistortionHard
	// DistortionTube uses the asymptotic curve x/(1+|x|).
	DistortionTube
	// DistortionFuzz uses tanh(2*sin(x*pi/2)).
	DistortionFuzz
)

const (
	defaultDistortionDrive = 0.3
	distortionDriveRange   = 20.0
)

// String returns the display name of the mode.
func (m DistortionMode) String() string {
	switch m {
	case DistortionSoft:
		return "Soft"
	case DistortionHard:
		return "Hard"
	case DistortionTube:
		return "Tube"
	case DistortionFuzz:
		return "Fuzz"
	default:
		return fmt.Sprintf("DistortionMode(%d)", int(m))
	}
}

func validDistortionMode(m DistortionMode) bool {
	return m >= DistortionSoft && m <= DistortionFuzz
}

// DistortionOption mutates distortion construction parameters.
type DistortionOption func(*distortionConfig) error

type distortionConfig struct {
	mode       DistortionMode
	drive      float64
	oversample bool
	quality    resample.Quality
}

// WithDistortionMode sets the waveshaping curve.
func WithDistortionMode(mode DistortionMode) DistortionOption {
	return func(cfg *distortionConfig) error {
		if !validDistortionMode(mode) {
			return fmt.Errorf("distortion mode is invalid: %d", mode)
		}
		cfg.mode = mode
		return nil
	}
}

// WithDistortionDrive sets drive in [0, 1].
func WithDistortionDrive(drive float64) DistortionOption {
	return func(cfg *distortionConfig) error {
		if drive < 0 || drive > 1 || !core.IsFinite(drive) {
			return fmt.Errorf("distortion drive must be in [0, 1]: %f", drive)
		}
		cfg.drive = drive
		return nil
	}
}

// WithDistortionOversampling enables or disables the 2x stage.
func WithDistortionOversampling(enabled bool) DistortionOption {
	return func(cfg *distortionConfig) error {
		cfg.oversample = enabled
		return nil
	}
}

// WithDistortionQuality selects the half-band filter used when oversampling.
func WithDistortionQuality(q resample.Quality) DistortionOption {
	return func(cfg *distortionConfig) error {
		cfg.quality = q
		return nil
	}
}

// Distortion drives the signal into a static nonlinearity. The input is
// multiplied by 1+20*drive and the shaped output scaled by 1/sqrt of that
// gain. With oversampling on, each channel is upsampled 2x through a
// half-band filter, shaped at the higher rate and folded back down.
type Distortion struct {
	mode       DistortionMode
	drive      float64
	gain       float64
	makeup     float64
	oversample bool

	halfBands [core.MaxChannels]*resample.HalfBand
}

// NewDistortion creates a distortion with optional configuration overrides.
func NewDistortion(opts ...DistortionOption) (*Distortion, error) {
	cfg := distortionConfig{
		mode:       DistortionSoft,
		drive:      defaultDistortionDrive,
		oversample: true,
		quality:    resample.QualityBalanced,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	d := &Distortion{mode: cfg.mode, oversample: cfg.oversample}
	for ch := range d.halfBands {
		hb, err := resample.NewHalfBand(cfg.quality)
		if err != nil {
			return nil, fmt.Errorf("distortion: oversampler: %w", err)
		}
		d.halfBands[ch] = hb
	}
	d.SetDrive(cfg.drive)
	return d, nil
}

// SetMode sets the curve. Unknown modes fall back to DistortionSoft.
func (d *Distortion) SetMode(mode DistortionMode) {
	if !validDistortionMode(mode) {
		mode = DistortionSoft
	}
	d.mode = mode
}

// SetDrive sets drive, clamped to [0, 1].
func (d *Distortion) SetDrive(drive float64) {
	d.drive = core.SafeClamp(drive, 0, 1, defaultDistortionDrive)
	d.gain = 1 + d.drive*distortionDriveRange
	d.makeup = 1 / math.Sqrt(d.gain)
}

// SetOversampling toggles the 2x stage. Turning it on clears the filter
// history so stale samples do not leak into the first block.
func (d *Distortion) SetOversampling(enabled bool) {
	if enabled && !d.oversample {
		for _, hb := range d.halfBands {
			hb.Reset()
		}
	}
	d.oversample = enabled
}

// Mode returns the active curve.
func (d *Distortion) Mode() DistortionMode { return d.mode }

// Drive returns drive in [0, 1].
func (d *Distortion) Drive() float64 { return d.drive }

// Gain returns the input gain derived from drive.
func (d *Distortion) Gain() float64 { return d.gain }

// Oversampling reports whether the 2x stage is active.
func (d *Distortion) Oversampling() bool { return d.oversample }

// Latency returns the group delay in samples at the base rate.
func (d *Distortion) Latency() float64 {
	if !d.oversample {
		return 0
	}
	return d.halfBands[0].Latency()
}

// Reset clears oversampler history.
func (d *Distortion) Reset() {
	for _, hb := range d.halfBands {
		hb.Reset()
	}
}

// Process shapes buf in place.
func (d *Distortion) Process(buf [][]float64) {
	for ch := 0; ch < len(buf) && ch < core.MaxChannels; ch++ {
		data := buf[ch]
		if !d.oversample {
			for i, x := range data {
				data[i] = Shape(d.mode, x*d.gain) * d.makeup
			}
			continue
		}

		hb := d.halfBands[ch]
		for i, x := range data {
			a, b := hb.Upsample(x)
			data[i] = hb.Downsample(Shape(d.mode, a*d.gain), Shape(d.mode, b*d.gain)) * d.makeup
		}
	}
}

// Shape evaluates the curve of mode at x.
func Shape(mode DistortionMode, x float64) float64 {
	switch mode {
	case DistortionHard:
		return core.Clamp(x, -1, 1)
	case DistortionTube:
		return x / (1 + math.Abs(x))
	case DistortionFuzz:
		return math.Tanh(math.Sin(x*math.Pi/2) * 2)
	default:
		return math.Tanh(x)
	}
}
