package effectchain

import (
	"fmt"

	"github.com/cwbudde/algo-rocket/dsp/core"
	"github.com/cwbudde/algo-rocket/dsp/effects"
)

type delayModule struct {
	moduleBase
	fx *effects.StereoDelay
}

func newDelayModule() *delayModule {
	return &delayModule{moduleBase: newModuleBase("delay", KindEffect)}
}

func (m *delayModule) Prepare(cfg core.ProcessorConfig) error {
	if err := m.prepareBase(cfg); err != nil {
		return err
	}
	fx, err := effects.NewStereoDelay(cfg.SampleRate)
	if err != nil {
		return fmt.Errorf("effectchain: prepare delay: %w", err)
	}
	m.fx = fx
	return nil
}

func (m *delayModule) Reset() {
	if m.fx != nil {
		m.fx.Reset()
	}
}

// delaySamples resolves the delay time for this block, in samples.
func (m *delayModule) delaySamples(ctx *ProcessContext) float64 {
	if ctx.Bool("delay_sync") {
		return ctx.Transport.DivisionSamples(ctx.Choice("delay_division"), m.cfg.SampleRate)
	}
	return ctx.Num("delay_time") * 0.001 * m.cfg.SampleRate
}

func (m *delayModule) Process(buf [][]float64, ctx *ProcessContext) {
	mix, ok := m.active(buf, ctx)
	if !ok {
		return
	}

	m.fx.SetDelaySamples(m.delaySamples(ctx))
	m.fx.SetFeedback(ctx.Num("delay_feedback"))
	m.fx.SetMode(effects.DelayMode(ctx.Choice("delay_mode")))
	m.fx.SetTapeTone(ctx.Num("delay_tape_tone"))
	m.fx.SetFeedbackFilter(ctx.Num("delay_hp"), ctx.Num("delay_lp"))
	m.fx.SetWow(ctx.Num("delay_wow_depth"), ctx.Num("delay_wow_rate"))

	m.captureDry(buf, mix)
	m.fx.Process(buf)
	m.blend(buf, mix)
}

type reverbModule struct {
	moduleBase
	fx *effects.Reverb
}

func newReverbModule() *reverbModule {
	return &reverbModule{moduleBase: newModuleBase("reverb", KindEffect)}
}

func (m *reverbModule) Prepare(cfg core.ProcessorConfig) error {
	if err := m.prepareBase(cfg); err != nil {
		return err
	}
	fx, err := effects.NewReverb(cfg.SampleRate, cfg.BlockSize)
	if err != nil {
		return fmt.Errorf("effectchain: prepare reverb: %w", err)
	}
	m.fx = fx
	return nil
}

func (m *reverbModule) Reset() {
	if m.fx != nil {
		m.fx.Reset()
	}
}

func (m *reverbModule) Process(buf [][]float64, ctx *ProcessContext) {
	mix, ok := m.active(buf, ctx)
	if !ok {
		return
	}

	m.fx.SetAlgorithm(effects.ReverbAlgorithm(ctx.Choice("reverb_algo")))
	m.fx.SetSize(ctx.Num("reverb_size"))
	m.fx.SetDamping(ctx.Num("reverb_damping"))
	m.fx.SetWidth(ctx.Num("reverb_width"))
	m.fx.SetFreeze(ctx.Bool("reverb_freeze"))
	m.fx.SetPreDelayMs(ctx.Num("reverb_predelay"))

	m.captureDry(buf, mix)
	m.fx.Process(buf)
	m.blend(buf, mix)
}
