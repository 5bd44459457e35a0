package main

import (
	"path/filepath"
	"testing"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func TestAutomationValueAt(t *testing.T) {
	t.Parallel()

	a := &automation{points: []automationPoint{
		{seconds: 0.5, value: 0.2},
		{seconds: 1, value: 0.4},
		{seconds: 1, value: 0.6},
		{seconds: 2, value: 1},
	}}
	tests := []struct {
		t      float64
		want   float64
		wantOK bool
	}{
		{0, 0, false},
		{0.5, 0.2, true},
		{0.75, 0.2, true},
		{1, 0.6, true},
		{1.5, 0.6, true},
		{10, 1, true},
	}
	for _, tt := range tests {
		got, ok := a.valueAt(tt.t)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("valueAt(%v) = %v, %v; want %v, %v", tt.t, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestLoadAutomation(t *testing.T) {
	t.Parallel()

	var tr smf.Track
	tr.Add(0, midi.ControlChange(0, 1, 0))
	tr.Add(0, midi.ControlChange(0, 7, 100))
	tr.Add(960, midi.ControlChange(3, 1, 127))
	tr.Close(0)

	s := smf.New()
	if err := s.Add(tr); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "sweep.mid")
	if err := s.WriteFile(path); err != nil {
		t.Fatal(err)
	}

	a, err := loadAutomation(path, 1)
	if err != nil {
		t.Fatalf("loadAutomation: %v", err)
	}
	if len(a.points) != 2 {
		t.Fatalf("points = %+v, want two CC 1 points", a.points)
	}
	// 960 ticks per quarter at the default 120 BPM is half a second.
	if v, _ := a.valueAt(0.25); v != 0 {
		t.Fatalf("value at 0.25s = %v, want 0", v)
	}
	if v, _ := a.valueAt(0.5); v != 1 {
		t.Fatalf("value at 0.5s = %v, want 1", v)
	}

	if _, err := loadAutomation(path, 64); err == nil {
		t.Fatal("expected an error for a controller with no messages")
	}
}
