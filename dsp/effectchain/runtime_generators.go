package effectchain

import (
	"github.com/cwbudde/algo-rocket/dsp/core"
	"github.com/cwbudde/algo-rocket/dsp/filter/biquad"
	"github.com/cwbudde/algo-rocket/dsp/filter/design"
	"github.com/cwbudde/algo-rocket/dsp/signal"
)

// NoiseSeed seeds the noise generator so renders are reproducible.
const NoiseSeed = 0x5eed

// noiseModule adds band-limited white noise. Like the tone generator it
// renders one mono signal and adds it to every channel.
type noiseModule struct {
	moduleBase
	src    *signal.Noise
	hp, lp biquad.Section
}

func newNoiseModule() *noiseModule {
	return &noiseModule{
		moduleBase: newModuleBase("noise", KindGenerator),
		src:        signal.NewNoise(NoiseSeed),
	}
}

func (m *noiseModule) Prepare(cfg core.ProcessorConfig) error {
	if err := m.prepareBase(cfg); err != nil {
		return err
	}
	m.Reset()
	return nil
}

func (m *noiseModule) Reset() {
	m.src.Reset()
	m.hp.Reset()
	m.lp.Reset()
}

func (m *noiseModule) Process(buf [][]float64, ctx *ProcessContext) {
	if _, ok := m.active(buf, ctx); !ok {
		return
	}
	level := ctx.Num("noise_level")
	if level < minMix {
		return
	}

	sr := m.cfg.SampleRate
	m.hp.Coefficients = design.Highpass(core.Clamp(ctx.Num("noise_hp"), 20, 0.49*sr), design.ButterworthQ, sr)
	m.lp.Coefficients = design.Lowpass(core.Clamp(ctx.Num("noise_lp"), 20, 0.49*sr), design.ButterworthQ, sr)

	channels := min(len(buf), core.MaxChannels)
	for i := range buf[0] {
		v := m.lp.ProcessSample(m.hp.ProcessSample(m.src.Next())) * level
		for ch := 0; ch < channels; ch++ {
			buf[ch][i] += v
		}
	}
}

// toneWaves maps the tone_wave choice onto oscillator shapes.
var toneWaves = [...]signal.Waveform{signal.WaveSine, signal.WaveTriangle, signal.WaveSawUp, signal.WaveSquare}

type toneModule struct {
	moduleBase
	osc signal.Oscillator
}

func newToneModule() *toneModule {
	return &toneModule{moduleBase: newModuleBase("tone", KindGenerator)}
}

func (m *toneModule) Prepare(cfg core.ProcessorConfig) error {
	if err := m.prepareBase(cfg); err != nil {
		return err
	}
	m.Reset()
	return nil
}

func (m *toneModule) Reset() { m.osc.Reset() }

func (m *toneModule) Process(buf [][]float64, ctx *ProcessContext) {
	if _, ok := m.active(buf, ctx); !ok {
		return
	}
	level := ctx.Num("tone_level")
	if level < minMix {
		return
	}

	sr := m.cfg.SampleRate
	freq := core.Clamp(ctx.Num("tone_freq"), 1, 0.49*sr)
	wave := toneWaves[min(max(ctx.Choice("tone_wave"), 0), len(toneWaves)-1)]

	channels := min(len(buf), core.MaxChannels)
	for i := range buf[0] {
		v := m.osc.Next(wave, freq, sr) * level
		for ch := 0; ch < channels; ch++ {
			buf[ch][i] += v
		}
	}
}
