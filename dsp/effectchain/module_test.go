package effectchain

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-rocket/dsp/filter/design"
	"github.com/cwbudde/algo-rocket/dsp/param"
	"github.com/cwbudde/algo-rocket/internal/testutil"
)

func TestDisabledOrZeroMixModulesAreNoOps(t *testing.T) {
	t.Parallel()

	for _, id := range param.EffectIDs {
		t.Run(id, func(t *testing.T) {
			t.Parallel()

			c := newTestChain(t)
			m, ok := c.Module(id)
			if !ok {
				t.Fatalf("module %q missing", id)
			}

			in := noiseBlock(1, testBlockSize)
			buf := testutil.ClonePlanar(in)
			m.Process(buf, &c.ctx)
			testutil.RequireBitExact(t, buf, in)

			set(t, c, map[string]float64{id + "_enabled": 1, id + "_mix": 0})
			m.Process(buf, &c.ctx)
			testutil.RequireBitExact(t, buf, in)
		})
	}
}

func TestDisabledGeneratorsAddNothing(t *testing.T) {
	t.Parallel()

	c := newTestChain(t)
	for _, id := range param.GeneratorIDs {
		m, _ := c.Module(id)
		buf := [][]float64{make([]float64, 64), make([]float64, 64)}
		m.Process(buf, &c.ctx)
		for ch := range buf {
			for i, v := range buf[ch] {
				if v != 0 {
					t.Fatalf("%s: ch=%d i=%d = %v while disabled", id, ch, i, v)
				}
			}
		}
	}
}

func TestEnabledEffectsStayFinite(t *testing.T) {
	t.Parallel()

	for _, id := range param.EffectIDs {
		t.Run(id, func(t *testing.T) {
			t.Parallel()

			c := newTestChain(t)
			set(t, c, map[string]float64{id + "_enabled": 1, id + "_mix": 1, "pitch_semitones": 7})
			m, _ := c.Module(id)
			for block := range 8 {
				buf := noiseBlock(int64(block), testBlockSize)
				m.Process(buf, &c.ctx)
				testutil.RequireFinite(t, buf[0])
				testutil.RequireFinite(t, buf[1])
			}
		})
	}
}

func TestSlopeStages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		index int
		want  int
	}{
		{0, 1}, {1, 2}, {2, 4}, {3, 16}, {-1, 1}, {9, 16},
	}
	for _, tt := range tests {
		if got := SlopeStages(tt.index); got != tt.want {
			t.Errorf("SlopeStages(%d) = %d, want %d", tt.index, got, tt.want)
		}
	}
	for i := 1; i < len(param.FilterSlopes); i++ {
		if SlopeStages(i) < SlopeStages(i-1) {
			t.Fatalf("stage count decreases from index %d to %d", i-1, i)
		}
	}
}

func TestFilterModuleLeavesInactiveStagesUntouched(t *testing.T) {
	t.Parallel()

	c := newTestChain(t)
	set(t, c, map[string]float64{"lpf_enabled": 1, "lpf_mix": 1, "lpf_slope": 3, "lpf_cutoff": 1000})
	m, _ := c.Module("lpf")
	f := m.(*filterModule)

	f.Process(noiseBlock(2, 64), &c.ctx)
	if f.ActiveStages() != 16 {
		t.Fatalf("ActiveStages = %d, want 16", f.ActiveStages())
	}

	set(t, c, map[string]float64{"lpf_slope": 0, "lpf_cutoff": 5000})
	f.Process(noiseBlock(3, 64), &c.ctx)
	if f.ActiveStages() != 1 {
		t.Fatalf("ActiveStages = %d, want 1", f.ActiveStages())
	}

	wantActive := design.Lowpass(5000, design.ButterworthQ, testSampleRate)
	wantIdle := design.Lowpass(1000, design.ButterworthQ, testSampleRate)
	for ch := range f.banks {
		if got := f.banks[ch].Section(0).Coefficients; got != wantActive {
			t.Fatalf("ch=%d: active stage = %+v, want %+v", ch, got, wantActive)
		}
		for i := 1; i < MaxFilterStages; i++ {
			if got := f.banks[ch].Section(i).Coefficients; got != wantIdle {
				t.Fatalf("ch=%d: idle stage %d was modified", ch, i)
			}
		}
	}
}

func TestTransportTempo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		bpm  float64
		want float64
	}{
		{140, 140}, {0, 120}, {-10, 120}, {math.NaN(), 120}, {math.Inf(1), 120},
	}
	for _, tt := range tests {
		if got := (Transport{BPM: tt.bpm}).Tempo(); got != tt.want {
			t.Errorf("Tempo(%v) = %v, want %v", tt.bpm, got, tt.want)
		}
	}
}

func TestDelaySyncQuarterNoteAt120(t *testing.T) {
	t.Parallel()

	c := newTestChain(t)
	set(t, c, map[string]float64{"delay_sync": 1, "delay_division": 2})
	c.ctx.Transport = Transport{BPM: 120}

	m, _ := c.Module("delay")
	if got := m.(*delayModule).delaySamples(&c.ctx); got != 0.5*testSampleRate {
		t.Fatalf("synced quarter note = %v samples, want %v", got, 0.5*testSampleRate)
	}

	set(t, c, map[string]float64{"delay_sync": 0, "delay_time": 250})
	if got := m.(*delayModule).delaySamples(&c.ctx); math.Abs(got-12000) > 1e-9 {
		t.Fatalf("free 250 ms = %v samples, want 12000", got)
	}
}

func TestTremoloSyncRate(t *testing.T) {
	t.Parallel()

	c := newTestChain(t)
	set(t, c, map[string]float64{"tremolo_sync": 1, "tremolo_division": 3})
	c.ctx.Transport = Transport{BPM: 120}

	m, _ := c.Module("tremolo")
	if got := m.(*tremoloModule).rateHz(&c.ctx); got != 4 {
		t.Fatalf("eighth notes at 120 BPM = %v Hz, want 4", got)
	}
}

func TestPitchModuleBypassIgnoresMix(t *testing.T) {
	t.Parallel()

	c := newTestChain(t)
	set(t, c, map[string]float64{"pitch_enabled": 1, "pitch_mix": 0.5, "pitch_semitones": 0})
	m, _ := c.Module("pitch")

	in := noiseBlock(4, testBlockSize)
	buf := testutil.ClonePlanar(in)
	m.Process(buf, &c.ctx)
	testutil.RequireBitExact(t, buf, in)
}

func TestModuleMixBlendsAgainstDry(t *testing.T) {
	t.Parallel()

	c := newTestChain(t)
	set(t, c, map[string]float64{
		"ringmod_enabled": 1, "ringmod_mix": 0.5, "ringmod_depth": 1, "ringmod_freq": 100,
	})
	m, _ := c.Module("ringmod")

	in := [][]float64{testutil.DC(1, 64)}
	buf := testutil.ClonePlanar(in)
	m.Process(buf, &c.ctx)
	for i, v := range buf[0] {
		want := 0.5 + 0.5*math.Sin(2*math.Pi*100*float64(i)/testSampleRate)
		if math.Abs(v-want) > 1e-9 {
			t.Fatalf("i=%d: %v, want %v", i, v, want)
		}
	}
}

func TestToneGeneratorRoutes(t *testing.T) {
	t.Parallel()

	c := newTestChain(t)
	set(t, c, map[string]float64{
		"tone_enabled": 1, "tone_level": 0.5, "tone_freq": 1000,
		param.GenToChain: 0, param.GenMix: 0,
	})
	buf := [][]float64{make([]float64, testBlockSize), make([]float64, testBlockSize)}
	c.Process(buf, Transport{})
	for _, v := range buf[0] {
		if v != 0 {
			t.Fatalf("gen_mix 0 after the chain should add nothing, got %v", v)
		}
	}

	set(t, c, map[string]float64{param.GenToChain: 1})
	c.Process(buf, Transport{})
	if rms := testutil.RMS(buf[0]); math.Abs(rms-0.5/math.Sqrt2) > 0.01 {
		t.Fatalf("tone RMS = %v, want about %v", rms, 0.5/math.Sqrt2)
	}
	testutil.RequireSliceNearlyEqual(t, buf[1], buf[0], 0)
}

func TestNoiseGeneratorIsReproducible(t *testing.T) {
	t.Parallel()

	render := func() [][]float64 {
		c := newTestChain(t)
		set(t, c, map[string]float64{"noise_enabled": 1, "noise_level": 0.8})
		buf := [][]float64{make([]float64, 2048), make([]float64, 2048)}
		c.Process(buf, Transport{})
		return buf
	}
	a, b := render(), render()
	testutil.RequireBitExact(t, a, b)
	if testutil.RMS(a[0]) == 0 {
		t.Fatal("noise generator produced silence")
	}
}
