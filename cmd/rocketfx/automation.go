package main

import (
	"cmp"
	"fmt"
	"slices"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

type automationPoint struct {
	seconds float64
	value   float64
}

// automation is a step curve of macro values read from a MIDI file.
type automation struct {
	points []automationPoint
}

// loadAutomation collects every control change for controller cc on any
// channel and track of the standard MIDI file at path. Values are scaled
// from 0..127 to 0..1.
func loadAutomation(path string, cc uint8) (*automation, error) {
	s, err := smf.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rocketfx: read automation: %w", err)
	}

	var points []automationPoint
	for _, track := range s.Tracks {
		var ticks int64
		for _, ev := range track {
			ticks += int64(ev.Delta)
			var channel, controller, value uint8
			if !midi.Message(ev.Message).GetControlChange(&channel, &controller, &value) || controller != cc {
				continue
			}
			points = append(points, automationPoint{
				seconds: float64(s.TimeAt(ticks)) / 1e6,
				value:   float64(value) / 127,
			})
		}
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("rocketfx: %s has no messages for controller %d", path, cc)
	}
	slices.SortStableFunc(points, func(a, b automationPoint) int {
		return cmp.Compare(a.seconds, b.seconds)
	})
	return &automation{points: points}, nil
}

// valueAt returns the most recent value at or before t. It reports false
// before the first point.
func (a *automation) valueAt(t float64) (float64, bool) {
	i, found := slices.BinarySearchFunc(a.points, t, func(p automationPoint, t float64) int {
		return cmp.Compare(p.seconds, t)
	})
	if found {
		// Several points may share a time; the last one wins.
		for i+1 < len(a.points) && a.points[i+1].seconds == t {
			i++
		}
		return a.points[i].value, true
	}
	if i == 0 {
		return 0, false
	}
	return a.points[i-1].value, true
}
