package effectchain

import (
	"fmt"

	"github.com/cwbudde/algo-rocket/dsp/core"
	"github.com/cwbudde/algo-rocket/dsp/effects/modulation"
	"github.com/cwbudde/algo-rocket/dsp/signal"
)

type flangerModule struct {
	moduleBase
	fx *modulation.Flanger
}

func newFlangerModule() *flangerModule {
	return &flangerModule{moduleBase: newModuleBase("flanger", KindEffect)}
}

func (m *flangerModule) Prepare(cfg core.ProcessorConfig) error {
	if err := m.prepareBase(cfg); err != nil {
		return err
	}
	fx, err := modulation.NewFlanger(cfg.SampleRate)
	if err != nil {
		return fmt.Errorf("effectchain: prepare flanger: %w", err)
	}
	m.fx = fx
	return nil
}

func (m *flangerModule) Reset() {
	if m.fx != nil {
		m.fx.Reset()
	}
}

func (m *flangerModule) Process(buf [][]float64, ctx *ProcessContext) {
	mix, ok := m.active(buf, ctx)
	if !ok {
		return
	}

	m.fx.SetRateHz(ctx.Num("flanger_rate"))
	m.fx.SetDepth(ctx.Num("flanger_depth"))
	m.fx.SetFeedback(ctx.Num("flanger_feedback"))

	m.captureDry(buf, mix)
	m.fx.Process(buf)
	m.blend(buf, mix)
}

type phaserModule struct {
	moduleBase
	fx *modulation.Phaser
}

func newPhaserModule() *phaserModule {
	return &phaserModule{moduleBase: newModuleBase("phaser", KindEffect)}
}

func (m *phaserModule) Prepare(cfg core.ProcessorConfig) error {
	if err := m.prepareBase(cfg); err != nil {
		return err
	}
	fx, err := modulation.NewPhaser(cfg.SampleRate)
	if err != nil {
		return fmt.Errorf("effectchain: prepare phaser: %w", err)
	}
	m.fx = fx
	return nil
}

func (m *phaserModule) Reset() {
	if m.fx != nil {
		m.fx.Reset()
	}
}

func (m *phaserModule) Process(buf [][]float64, ctx *ProcessContext) {
	mix, ok := m.active(buf, ctx)
	if !ok {
		return
	}

	m.fx.SetRateHz(ctx.Num("phaser_rate"))
	m.fx.SetDepth(ctx.Num("phaser_depth"))
	m.fx.SetFeedback(ctx.Num("phaser_feedback"))
	m.fx.SetCenterHz(ctx.Num("phaser_center"))

	m.captureDry(buf, mix)
	m.fx.Process(buf)
	m.blend(buf, mix)
}

type tremoloModule struct {
	moduleBase
	fx *modulation.Tremolo
}

func newTremoloModule() *tremoloModule {
	return &tremoloModule{moduleBase: newModuleBase("tremolo", KindEffect)}
}

func (m *tremoloModule) Prepare(cfg core.ProcessorConfig) error {
	if err := m.prepareBase(cfg); err != nil {
		return err
	}
	fx, err := modulation.NewTremolo(cfg.SampleRate)
	if err != nil {
		return fmt.Errorf("effectchain: prepare tremolo: %w", err)
	}
	m.fx = fx
	return nil
}

func (m *tremoloModule) Reset() {
	if m.fx != nil {
		m.fx.Reset()
	}
}

// rateHz resolves the LFO rate, following the host tempo when synced.
func (m *tremoloModule) rateHz(ctx *ProcessContext) float64 {
	if ctx.Bool("tremolo_sync") {
		return ctx.Transport.DivisionRateHz(ctx.Choice("tremolo_division"))
	}
	return ctx.Num("tremolo_rate")
}

func (m *tremoloModule) Process(buf [][]float64, ctx *ProcessContext) {
	mix, ok := m.active(buf, ctx)
	if !ok {
		return
	}

	m.fx.SetRateHz(m.rateHz(ctx))
	m.fx.SetDepth(ctx.Num("tremolo_depth"))
	m.fx.SetWaveform(signal.Waveform(ctx.Choice("tremolo_wave")))

	m.captureDry(buf, mix)
	m.fx.Process(buf)
	m.blend(buf, mix)
}

type ringModModule struct {
	moduleBase
	fx *modulation.RingModulator
}

func newRingModModule() *ringModModule {
	return &ringModModule{moduleBase: newModuleBase("ringmod", KindEffect)}
}

func (m *ringModModule) Prepare(cfg core.ProcessorConfig) error {
	if err := m.prepareBase(cfg); err != nil {
		return err
	}
	fx, err := modulation.NewRingModulator(cfg.SampleRate)
	if err != nil {
		return fmt.Errorf("effectchain: prepare ringmod: %w", err)
	}
	m.fx = fx
	return nil
}

func (m *ringModModule) Reset() {
	if m.fx != nil {
		m.fx.Reset()
	}
}

func (m *ringModModule) Process(buf [][]float64, ctx *ProcessContext) {
	mix, ok := m.active(buf, ctx)
	if !ok {
		return
	}

	m.fx.SetCarrierHz(ctx.Num("ringmod_freq"))
	m.fx.SetDepth(ctx.Num("ringmod_depth"))

	m.captureDry(buf, mix)
	m.fx.Process(buf)
	m.blend(buf, mix)
}
