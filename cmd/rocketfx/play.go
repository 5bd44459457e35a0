package main

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
	"github.com/hajimehoshi/oto/v2"
	"github.com/spf13/cobra"
)

const bytesPerFrame = 2 * 4

type playFlags struct {
	engine     engineFlags
	source     sourceFlags
	automation string
	cc         uint8
	tail       time.Duration
}

func newPlayCmd(a *app) *cobra.Command {
	f := &playFlags{}
	cmd := &cobra.Command{
		Use:   "play [in.wav]",
		Short: "Play a WAV file or test signal through the effect chain",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runPlay(cmd, f, args)
		},
	}
	f.engine.register(cmd)
	f.source.register(cmd)
	fs := cmd.Flags()
	fs.StringVar(&f.automation, "automation", "", "MIDI file whose control changes drive the Amount macro")
	fs.Uint8Var(&f.cc, "cc", 1, "controller number read from --automation")
	fs.DurationVar(&f.tail, "tail", 2*time.Second, "silence appended so reverb and delay can ring out")
	return cmd
}

func (a *app) runPlay(cmd *cobra.Command, f *playFlags, args []string) error {
	var (
		src    beep.Streamer
		format beep.Format
	)
	switch {
	case len(args) == 1:
		file, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("rocketfx: %w", err)
		}
		defer file.Close()
		stream, fm, err := wav.Decode(file)
		if err != nil {
			return fmt.Errorf("rocketfx: decode %s: %w", args[0], err)
		}
		defer stream.Close()
		src, format = stream, fm
	case f.source.enabled():
		mono, fm, err := f.source.build()
		if err != nil {
			return err
		}
		src, format = newSliceStreamer(mono, nil), fm
	default:
		return fmt.Errorf("%w: give an input file, --tone or --noise", errBadFlag)
	}

	var auto *automation
	if f.automation != "" {
		var err error
		if auto, err = loadAutomation(f.automation, f.cc); err != nil {
			return err
		}
	}

	chain, err := f.engine.build(cmd, a.log, float64(format.SampleRate))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	otoCtx, ready, err := oto.NewContext(int(format.SampleRate), 2, oto.FormatFloat32LE)
	if err != nil {
		return fmt.Errorf("rocketfx: open audio device: %w", err)
	}
	<-ready

	src = beep.Seq(src, beep.Silence(format.SampleRate.N(f.tail)))
	cs := newChainStreamer(ctx, src, chain, auto, f.engine.transport())
	player := otoCtx.NewPlayer(newPCMReader(cs, chain.Config().BlockSize))
	defer player.Close()

	a.log.WithField("sampleRate", int(format.SampleRate)).Info("playing")
	player.Play()

	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			a.log.Info("interrupted")
			return nil
		case <-ticker.C:
		}
	}
	if err := player.Err(); err != nil {
		return fmt.Errorf("rocketfx: playback: %w", err)
	}
	return cs.Err()
}

// pcmReader turns a beep stream into interleaved little-endian float32 PCM.
type pcmReader struct {
	src    beep.Streamer
	frames [][2]float64
	done   bool
}

func newPCMReader(src beep.Streamer, block int) *pcmReader {
	return &pcmReader{src: src, frames: make([][2]float64, block)}
}

func (r *pcmReader) Read(p []byte) (int, error) {
	if r.done {
		return 0, io.EOF
	}
	want := min(len(p)/bytesPerFrame, len(r.frames))
	if want == 0 {
		return 0, nil
	}
	n, ok := r.src.Stream(r.frames[:want])
	if !ok {
		r.done = true
	}
	if n == 0 {
		return 0, io.EOF
	}
	for i, f := range r.frames[:n] {
		binary.LittleEndian.PutUint32(p[i*bytesPerFrame:], math.Float32bits(float32(f[0])))
		binary.LittleEndian.PutUint32(p[i*bytesPerFrame+4:], math.Float32bits(float32(f[1])))
	}
	return n * bytesPerFrame, nil
}
