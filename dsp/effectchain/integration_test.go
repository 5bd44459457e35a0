package effectchain

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-rocket/dsp/modmatrix"
	"github.com/cwbudde/algo-rocket/dsp/param"
	"github.com/cwbudde/algo-rocket/internal/testutil"
)

func TestLowPassAttenuatesSineBurst(t *testing.T) {
	t.Parallel()

	c := newTestChain(t)
	set(t, c, map[string]float64{
		"lpf_enabled": 1,
		"lpf_cutoff":  500,
		"lpf_slope":   3,
		"lpf_mix":     1,
	})

	sine := testutil.DeterministicSine(1000, testSampleRate, 0.8, testBlockSize)
	buf := testutil.Planar(sine, 2)
	c.Process(buf, Transport{BPM: 120})

	testutil.RequireFinite(t, buf[0])
	in, out := testutil.RMS(sine), testutil.RMS(buf[0])
	if out >= 0.1*in {
		t.Fatalf("output RMS %.4f is not below 10%% of input RMS %.4f", out, in)
	}
}

func TestMacroSweepsModulatedCutoff(t *testing.T) {
	t.Parallel()

	render := func(amount float64) float64 {
		c := newTestChain(t)
		set(t, c, map[string]float64{
			"lpf_enabled": 1,
			"lpf_cutoff":  20000,
			param.Amount:  amount,
		})
		// A negative amount inverts the range: macro 0 sits at the top
		// (20 kHz) and macro 1 closes down to normalized 0.2.
		err := c.Matrix().Add(modmatrix.Assignment{
			Target: "lpf_cutoff", Amount: -1, UseRange: true, Min: 0.2, Max: 1,
		})
		if err != nil {
			t.Fatal(err)
		}
		if hz := c.Matrix().ModulateWith("lpf_cutoff", 20000, 0); math.Abs(hz-20000) > 1e-6 {
			t.Fatalf("cutoff at macro 0 = %v Hz, want 20000", hz)
		}
		c.Reset()

		buf := noiseBlock(11, 4*testBlockSize)
		c.Process(buf, Transport{})
		return testutil.RMS(buf[0][2*testBlockSize:])
	}

	open, closed := render(0), render(1)
	if closed >= 0.5*open {
		t.Fatalf("full macro RMS %.4f, macro off RMS %.4f: cutoff did not follow the macro", closed, open)
	}
}

func TestFullChainRenderIsDeterministic(t *testing.T) {
	t.Parallel()

	render := func() [][]float64 {
		c := newTestChain(t)
		set(t, c, map[string]float64{
			"reverb_enabled":     1,
			"delay_enabled":      1,
			"delay_mode":         1,
			"delay_sync":         1,
			"phaser_enabled":     1,
			"distortion_enabled": 1,
			"distortion_algo":    2,
			"eq_enabled":         1,
			"eq_mid_gain":        6,
			"tremolo_enabled":    1,
			"tremolo_sync":       1,
			"deesser_enabled":    1,
			"pitch_enabled":      1,
			"pitch_semitones":    -5,
			"noise_enabled":      1,
			"tone_enabled":       1,
			param.GenToChain:     0,
			param.GenMix:         0.3,
			param.Amount:         0.7,
			param.GlobalMix:      0.8,
		})
		if err := c.Matrix().Add(modmatrix.Assignment{Target: "reverb_size", Amount: 0.5}); err != nil {
			t.Fatal(err)
		}
		c.SetModuleOrder([]string{"pitch", "distortion", "delay"})

		buf := noiseBlock(3, 3000)
		c.Process(buf, Transport{BPM: 96, Playing: true})
		return buf
	}

	a, b := render(), render()
	testutil.RequireFinite(t, a[0])
	testutil.RequireFinite(t, a[1])
	testutil.RequireBitExact(t, a, b)
}
