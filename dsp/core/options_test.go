package core

import (
	"errors"
	"testing"
)

func TestApplyProcessorOptions(t *testing.T) {
	cfg := ApplyProcessorOptions(WithSampleRate(96000), WithBlockSize(2048), WithChannels(1))
	if cfg.SampleRate != 96000 {
		t.Fatalf("sample rate = %v, want 96000", cfg.SampleRate)
	}
	if cfg.BlockSize != 2048 {
		t.Fatalf("block size = %d, want 2048", cfg.BlockSize)
	}
	if cfg.Channels != 1 {
		t.Fatalf("channels = %d, want 1", cfg.Channels)
	}
}

func TestInvalidOptionsIgnored(t *testing.T) {
	cfg := ApplyProcessorOptions(WithSampleRate(0), WithBlockSize(-1), WithChannels(0))
	def := DefaultProcessorConfig()
	if cfg != def {
		t.Fatalf("cfg = %#v, want %#v", cfg, def)
	}
}

func TestWithChannelsCapped(t *testing.T) {
	cfg := ApplyProcessorOptions(WithChannels(8))
	if cfg.Channels != MaxChannels {
		t.Fatalf("channels = %d, want %d", cfg.Channels, MaxChannels)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  ProcessorConfig
		ok   bool
	}{
		{name: "default", cfg: DefaultProcessorConfig(), ok: true},
		{name: "zero rate", cfg: ProcessorConfig{SampleRate: 0, BlockSize: 64, Channels: 1}},
		{name: "zero block", cfg: ProcessorConfig{SampleRate: 48000, BlockSize: 0, Channels: 1}},
		{name: "three channels", cfg: ProcessorConfig{SampleRate: 48000, BlockSize: 64, Channels: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("err = %v, want ErrInvalidConfig", err)
			}
		})
	}
}
