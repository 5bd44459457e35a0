package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-rocket/dsp/core"
	"github.com/cwbudde/algo-rocket/dsp/signal"
)

type renderFlags struct {
	engine     engineFlags
	output     string
	tail       time.Duration
	automation string
	cc         uint8
	saveState  string
	source     sourceFlags
}

// sourceFlags describe a generated test signal used instead of an input file.
type sourceFlags struct {
	tone       float64
	noise      bool
	seconds    float64
	sampleRate float64
	peak       float64
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.Float64Var(&f.tone, "tone", 0, "render a sine test tone of this frequency in Hz")
	fs.BoolVar(&f.noise, "noise", false, "render white noise (added to --tone when both are set)")
	fs.Float64Var(&f.seconds, "seconds", 2, "length of the test signal")
	fs.Float64Var(&f.sampleRate, "sample-rate", 48000, "sample rate of the test signal")
	fs.Float64Var(&f.peak, "peak", 0.5, "peak level of the test signal")
}

func (f *sourceFlags) enabled() bool { return f.tone > 0 || f.noise }

// build renders the test signal into a mono buffer normalized to the peak
// level.
func (f *sourceFlags) build() ([]float64, beep.Format, error) {
	format := beep.Format{SampleRate: beep.SampleRate(f.sampleRate), NumChannels: 2, Precision: 2}
	n := int(f.seconds * f.sampleRate)
	g := signal.NewGenerator([]core.ProcessorOption{core.WithSampleRate(f.sampleRate)})

	out := make([]float64, max(n, 0))
	if f.tone > 0 {
		sine, err := g.Sine(f.tone, 1, n)
		if err != nil {
			return nil, format, fmt.Errorf("rocketfx: test tone: %w", err)
		}
		copy(out, sine)
	}
	if f.noise {
		noise, err := g.WhiteNoise(1, n)
		if err != nil {
			return nil, format, fmt.Errorf("rocketfx: test noise: %w", err)
		}
		for i := range out {
			out[i] += noise[i]
		}
	}
	out, err := signal.Normalize(out, f.peak)
	if err != nil {
		return nil, format, fmt.Errorf("rocketfx: test signal: %w", err)
	}
	return out, format, nil
}

func newRenderCmd(a *app) *cobra.Command {
	f := &renderFlags{}
	cmd := &cobra.Command{
		Use:   "render [in.wav ...]",
		Short: "Render WAV files through the effect chain",
		Long: `Render one or more WAV files through the effect chain. With a single
input -o names the output file; with several inputs -o is a directory and
the files are processed concurrently. --tone or --noise render a generated
test signal instead of an input file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRender(cmd, f, args)
		},
	}
	f.engine.register(cmd)
	f.source.register(cmd)
	fs := cmd.Flags()
	fs.StringVarP(&f.output, "output", "o", "", "output file, or directory for several inputs")
	fs.DurationVar(&f.tail, "tail", 2*time.Second, "silence appended so reverb and delay can ring out")
	fs.StringVar(&f.automation, "automation", "", "MIDI file whose control changes drive the Amount macro")
	fs.Uint8Var(&f.cc, "cc", 1, "controller number read from --automation")
	fs.StringVar(&f.saveState, "save-state", "", "write the chain state as JSON to this file")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func (a *app) runRender(cmd *cobra.Command, f *renderFlags, args []string) error {
	var auto *automation
	if f.automation != "" {
		var err error
		if auto, err = loadAutomation(f.automation, f.cc); err != nil {
			return err
		}
	}

	if f.saveState != "" {
		chain, err := f.engine.build(cmd, a.log, f.source.sampleRate)
		if err != nil {
			return err
		}
		if err := writeState(f.saveState, chain.Snapshot()); err != nil {
			return err
		}
	}

	if f.source.enabled() {
		if len(args) > 0 {
			return fmt.Errorf("%w: input files cannot be combined with --tone or --noise", errBadFlag)
		}
		mono, format, err := f.source.build()
		if err != nil {
			return err
		}
		return a.renderStream(cmd, f, auto, newSliceStreamer(mono, nil), format, "test-signal", f.output)
	}

	switch len(args) {
	case 0:
		return fmt.Errorf("%w: no input files", errBadFlag)
	case 1:
		return a.renderFile(cmd, f, auto, args[0], f.output)
	}

	if err := os.MkdirAll(f.output, 0o755); err != nil {
		return fmt.Errorf("rocketfx: %w", err)
	}
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(runtime.NumCPU())
	cmd.SetContext(ctx)
	for _, in := range args {
		out := filepath.Join(f.output, filepath.Base(in))
		g.Go(func() error {
			return a.renderFile(cmd, f, auto, in, out)
		})
	}
	return g.Wait()
}

func (a *app) renderFile(cmd *cobra.Command, f *renderFlags, auto *automation, in, out string) error {
	file, err := os.Open(in)
	if err != nil {
		return fmt.Errorf("rocketfx: %w", err)
	}
	defer file.Close()

	stream, format, err := wav.Decode(file)
	if err != nil {
		return fmt.Errorf("rocketfx: decode %s: %w", in, err)
	}
	defer stream.Close()

	return a.renderStream(cmd, f, auto, stream, format, in, out)
}

func (a *app) renderStream(
	cmd *cobra.Command,
	f *renderFlags,
	auto *automation,
	src beep.Streamer,
	format beep.Format,
	name, out string,
) error {
	log := a.log.WithField("input", name)
	chain, err := f.engine.build(cmd, log, float64(format.SampleRate))
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	src = beep.Seq(src, beep.Silence(format.SampleRate.N(f.tail)))
	cs := newChainStreamer(ctx, src, chain, auto, f.engine.transport())

	file, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("rocketfx: %w", err)
	}
	defer file.Close()

	outFormat := beep.Format{
		SampleRate:  format.SampleRate,
		NumChannels: 2,
		Precision:   max(format.Precision, 2),
	}
	start := time.Now()
	if err := wav.Encode(file, cs, outFormat); err != nil {
		return fmt.Errorf("rocketfx: encode %s: %w", out, err)
	}
	if err := cs.Err(); err != nil {
		return fmt.Errorf("rocketfx: render %s: %w", name, err)
	}

	log.WithFields(logrus.Fields{
		"output":  out,
		"frames":  cs.Frames(),
		"audio":   format.SampleRate.D(cs.Frames()).Round(time.Millisecond).String(),
		"elapsed": time.Since(start).Round(time.Millisecond).String(),
	}).Info("rendered")
	return nil
}

func writeState(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("rocketfx: encode state: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("rocketfx: write state: %w", err)
	}
	return nil
}
