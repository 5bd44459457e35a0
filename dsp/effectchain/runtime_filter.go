package effectchain

import (
	"github.com/cwbudde/algo-rocket/dsp/core"
	"github.com/cwbudde/algo-rocket/dsp/filter/biquad"
	"github.com/cwbudde/algo-rocket/dsp/filter/design"
)

// slopeStages maps the slope choice (6/12/24/96 dB per octave) to the number
// of cascaded biquad stages.
var slopeStages = [...]int{1, 2, 4, 16}

// SlopeStages returns how many biquad stages a slope index activates.
// Out-of-range indices are clamped.
func SlopeStages(index int) int {
	return slopeStages[min(max(index, 0), len(slopeStages)-1)]
}

// MaxFilterStages is the bank capacity of the low- and high-pass modules.
const MaxFilterStages = 16

type filterModule struct {
	moduleBase

	highpass  bool
	cutoffKey string
	slopeKey  string
	banks     [core.MaxChannels]*biquad.Bank
}

func newFilterModule(id string, highpass bool) *filterModule {
	return &filterModule{
		moduleBase: newModuleBase(id, KindEffect),
		highpass:   highpass,
		cutoffKey:  id + "_cutoff",
		slopeKey:   id + "_slope",
	}
}

func (m *filterModule) Prepare(cfg core.ProcessorConfig) error {
	if err := m.prepareBase(cfg); err != nil {
		return err
	}
	for ch := range m.banks {
		bank, err := biquad.NewBank(MaxFilterStages)
		if err != nil {
			return err
		}
		m.banks[ch] = bank
	}
	return nil
}

func (m *filterModule) Reset() {
	for _, b := range m.banks {
		if b != nil {
			b.Reset()
		}
	}
}

// ActiveStages returns the number of stages currently cascaded.
func (m *filterModule) ActiveStages() int { return m.banks[0].Active() }

func (m *filterModule) Process(buf [][]float64, ctx *ProcessContext) {
	mix, ok := m.active(buf, ctx)
	if !ok {
		return
	}

	sr := m.cfg.SampleRate
	cutoff := core.Clamp(ctx.Num(m.cutoffKey), 20, 0.49*sr)
	stages := SlopeStages(ctx.Choice(m.slopeKey))
	var c biquad.Coefficients
	if m.highpass {
		c = design.Highpass(cutoff, design.ButterworthQ, sr)
	} else {
		c = design.Lowpass(cutoff, design.ButterworthQ, sr)
	}

	m.captureDry(buf, mix)
	for ch := 0; ch < min(len(buf), core.MaxChannels); ch++ {
		bank := m.banks[ch]
		bank.SetActive(stages)
		bank.SetCoefficients(c)
		bank.ProcessBlock(buf[ch])
	}
	m.blend(buf, mix)
}

const (
	eqLow = iota
	eqMid
	eqMid2
	eqHigh
	eqBands
)

const eqShelfQ = 0.707

type eqModule struct {
	moduleBase
	banks [core.MaxChannels]*biquad.Bank
}

func newEQModule() *eqModule {
	return &eqModule{moduleBase: newModuleBase("eq", KindEffect)}
}

func (m *eqModule) Prepare(cfg core.ProcessorConfig) error {
	if err := m.prepareBase(cfg); err != nil {
		return err
	}
	for ch := range m.banks {
		bank, err := biquad.NewBank(eqBands)
		if err != nil {
			return err
		}
		m.banks[ch] = bank
	}
	return nil
}

func (m *eqModule) Reset() {
	for _, b := range m.banks {
		if b != nil {
			b.Reset()
		}
	}
}

func (m *eqModule) Process(buf [][]float64, ctx *ProcessContext) {
	mix, ok := m.active(buf, ctx)
	if !ok {
		return
	}

	sr := m.cfg.SampleRate
	nyq := 0.49 * sr
	var bands [eqBands]biquad.Coefficients
	bands[eqLow] = design.LowShelf(
		core.Clamp(ctx.Num("eq_low_freq"), 20, nyq),
		core.DBToLinear(ctx.Num("eq_low_gain")), eqShelfQ, sr)
	bands[eqMid] = design.Peak(
		core.Clamp(ctx.Num("eq_mid_freq"), 20, nyq),
		core.DBToLinear(ctx.Num("eq_mid_gain")), ctx.Num("eq_mid_q"), sr)
	bands[eqMid2] = design.Peak(
		core.Clamp(ctx.Num("eq_mid2_freq"), 20, nyq),
		core.DBToLinear(ctx.Num("eq_mid2_gain")), ctx.Num("eq_mid2_q"), sr)
	bands[eqHigh] = design.HighShelf(
		core.Clamp(ctx.Num("eq_high_freq"), 20, nyq),
		core.DBToLinear(ctx.Num("eq_high_gain")), eqShelfQ, sr)

	m.captureDry(buf, mix)
	for ch := 0; ch < min(len(buf), core.MaxChannels); ch++ {
		for i, c := range bands {
			m.banks[ch].SetSection(i, c)
		}
		m.banks[ch].ProcessBlock(buf[ch])
	}
	m.blend(buf, mix)
}
