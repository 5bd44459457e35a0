package effectchain

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-rocket/dsp/core"
	"github.com/cwbudde/algo-rocket/dsp/effects"
	"github.com/cwbudde/algo-rocket/dsp/effects/dynamics"
	"github.com/cwbudde/algo-rocket/dsp/effects/pitch"
)

type distortionModule struct {
	moduleBase
	fx *effects.Distortion
}

func newDistortionModule() *distortionModule {
	return &distortionModule{moduleBase: newModuleBase("distortion", KindEffect)}
}

func (m *distortionModule) Prepare(cfg core.ProcessorConfig) error {
	if err := m.prepareBase(cfg); err != nil {
		return err
	}
	fx, err := effects.NewDistortion()
	if err != nil {
		return fmt.Errorf("effectchain: prepare distortion: %w", err)
	}
	m.fx = fx
	return nil
}

func (m *distortionModule) Reset() {
	if m.fx != nil {
		m.fx.Reset()
	}
}

func (m *distortionModule) Process(buf [][]float64, ctx *ProcessContext) {
	mix, ok := m.active(buf, ctx)
	if !ok {
		return
	}

	m.fx.SetMode(effects.DistortionMode(ctx.Choice("distortion_algo")))
	m.fx.SetDrive(ctx.Num("distortion_drive"))
	m.fx.SetOversampling(ctx.Bool("distortion_oversample"))

	m.captureDry(buf, mix)
	m.fx.Process(buf)
	m.blend(buf, mix)
}

type bitCrusherModule struct {
	moduleBase
	fx *effects.BitCrusher
}

func newBitCrusherModule() *bitCrusherModule {
	return &bitCrusherModule{moduleBase: newModuleBase("bitcrusher", KindEffect)}
}

func (m *bitCrusherModule) Prepare(cfg core.ProcessorConfig) error {
	if err := m.prepareBase(cfg); err != nil {
		return err
	}
	fx, err := effects.NewBitCrusher()
	if err != nil {
		return fmt.Errorf("effectchain: prepare bitcrusher: %w", err)
	}
	m.fx = fx
	return nil
}

func (m *bitCrusherModule) Reset() {
	if m.fx != nil {
		m.fx.Reset()
	}
}

func (m *bitCrusherModule) Process(buf [][]float64, ctx *ProcessContext) {
	mix, ok := m.active(buf, ctx)
	if !ok {
		return
	}

	m.fx.SetBits(ctx.Num("bitcrusher_bits"))
	m.fx.SetHold(int(math.Round(ctx.Num("bitcrusher_downsample"))))
	m.fx.SetSoft(ctx.Bool("bitcrusher_soft"))

	m.captureDry(buf, mix)
	m.fx.Process(buf)
	m.blend(buf, mix)
}

type deEsserModule struct {
	moduleBase
	fx *dynamics.DeEsser
}

func newDeEsserModule() *deEsserModule {
	return &deEsserModule{moduleBase: newModuleBase("deesser", KindEffect)}
}

func (m *deEsserModule) Prepare(cfg core.ProcessorConfig) error {
	if err := m.prepareBase(cfg); err != nil {
		return err
	}
	fx, err := dynamics.NewDeEsser(cfg.SampleRate)
	if err != nil {
		return fmt.Errorf("effectchain: prepare deesser: %w", err)
	}
	m.fx = fx
	return nil
}

func (m *deEsserModule) Reset() {
	if m.fx != nil {
		m.fx.Reset()
	}
}

func (m *deEsserModule) Process(buf [][]float64, ctx *ProcessContext) {
	mix, ok := m.active(buf, ctx)
	if !ok {
		return
	}

	m.fx.SetFrequency(ctx.Num("deesser_freq"))
	m.fx.SetThreshold(ctx.Num("deesser_threshold"))

	m.captureDry(buf, mix)
	m.fx.Process(buf)
	m.blend(buf, mix)
}

type pitchModule struct {
	moduleBase
	fx *pitch.Shifter
}

func newPitchModule() *pitchModule {
	return &pitchModule{moduleBase: newModuleBase("pitch", KindEffect)}
}

func (m *pitchModule) Prepare(cfg core.ProcessorConfig) error {
	if err := m.prepareBase(cfg); err != nil {
		return err
	}
	fx, err := pitch.NewShifter(cfg.SampleRate)
	if err != nil {
		return fmt.Errorf("effectchain: prepare pitch: %w", err)
	}
	m.fx = fx
	return nil
}

func (m *pitchModule) Reset() {
	if m.fx != nil {
		m.fx.Reset()
	}
}

// Process leaves buf untouched while the shift rounds to zero, whatever the mix.
func (m *pitchModule) Process(buf [][]float64, ctx *ProcessContext) {
	mix, ok := m.active(buf, ctx)
	if !ok {
		return
	}

	m.fx.SetSemitones(ctx.Num("pitch_semitones"))
	if m.fx.Bypassed() {
		return
	}

	m.captureDry(buf, mix)
	m.fx.Process(buf)
	m.blend(buf, mix)
}
