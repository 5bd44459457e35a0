package main

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-rocket/dsp/modmatrix"
	"github.com/cwbudde/algo-rocket/dsp/param"
)

func TestParseSet(t *testing.T) {
	t.Parallel()

	layout := param.DefaultLayout()
	tests := []struct {
		in     string
		wantID string
		want   float64
	}{
		{"reverb_enabled=on", "reverb_enabled", 1},
		{"reverb_freeze = false", "reverb_freeze", 0},
		{"lpf_slope=96 dB/oct", "lpf_slope", 3},
		{"delay_mode=pingpong", "delay_mode", 1},
		{"delay_mode=2", "delay_mode", 2},
		{"delay_time=250", "delay_time", 250},
		{"pitch_semitones=-7.5", "pitch_semitones", -7.5},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			id, v, err := parseSet(layout, tt.in)
			if err != nil {
				t.Fatalf("parseSet: %v", err)
			}
			if id != tt.wantID || v != tt.want {
				t.Fatalf("got %s=%v, want %s=%v", id, v, tt.wantID, tt.want)
			}
		})
	}
}

func TestParseSetErrors(t *testing.T) {
	t.Parallel()

	layout := param.DefaultLayout()
	tests := []struct {
		in   string
		want error
	}{
		{"reverb_enabled", errBadFlag},
		{"ghost=1", param.ErrUnknownParameter},
		{"lpf_slope=steep", errBadFlag},
		{"reverb_enabled=maybe", errBadFlag},
	}
	for _, tt := range tests {
		if _, _, err := parseSet(layout, tt.in); !errors.Is(err, tt.want) {
			t.Errorf("parseSet(%q) err = %v, want %v", tt.in, err, tt.want)
		}
	}
}

func TestParseAssign(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    modmatrix.Assignment
		wantErr bool
	}{
		{in: "reverb_size:0.5", want: modmatrix.Assignment{Target: "reverb_size", Amount: 0.5}},
		{
			in:   "lpf_cutoff:-1:0.1:0.9",
			want: modmatrix.Assignment{Target: "lpf_cutoff", Amount: -1, UseRange: true, Min: 0.1, Max: 0.9},
		},
		{in: "lpf_cutoff", wantErr: true},
		{in: "lpf_cutoff:1:0", wantErr: true},
		{in: "lpf_cutoff:x", wantErr: true},
	}
	for _, tt := range tests {
		got, err := parseAssign(tt.in)
		if tt.wantErr {
			if !errors.Is(err, errBadFlag) {
				t.Errorf("parseAssign(%q) err = %v, want errBadFlag", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("parseAssign(%q) = %+v, %v; want %+v", tt.in, got, err, tt.want)
		}
	}
}
