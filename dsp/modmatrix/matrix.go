// Package modmatrix maps the engine's single macro control onto parameters.
//
// Each Assignment binds one target parameter to the macro, either as a
// signed offset or as an interpolation toward a range. All arithmetic is done
// in the target's normalized domain, so a range of [0, 1] spans the whole
// parameter regardless of its plain units.
package modmatrix

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sync/atomic"

	"github.com/cwbudde/algo-rocket/dsp/core"
	"github.com/cwbudde/algo-rocket/dsp/param"
)

// ErrUnknownTarget is returned when an assignment names a parameter the
// layout does not know.
var ErrUnknownTarget = errors.New("modmatrix: unknown target")

// Assignment maps the macro onto one target parameter.
type Assignment struct {
	Target string  `json:"target"`
	Amount float64 `json:"amount"`
	// UseRange selects ranged interpolation toward [Min, Max] instead of a
	// direct offset. Min and Max are normalized.
	UseRange bool    `json:"useRange"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
}

func (a Assignment) sanitize() Assignment {
	a.Amount = core.SafeClamp(a.Amount, -1, 1, 0)
	a.Min = core.SafeClamp(a.Min, 0, 1, 0)
	a.Max = core.SafeClamp(a.Max, 0, 1, 1)
	return a
}

type assignmentSet struct {
	list  []Assignment
	index map[string]int
}

func newAssignmentSet(list []Assignment) *assignmentSet {
	set := &assignmentSet{list: list, index: make(map[string]int, len(list))}
	for i, a := range list {
		set.index[a.Target] = i
	}
	return set
}

// Matrix holds the assignments and the current macro value.
//
// Assignments are published as immutable snapshots, so Add, Remove and
// SetAssignments may run on a control goroutine while the audio goroutine
// calls Modulate. SetMacroValue and Modulate belong to the audio goroutine.
type Matrix struct {
	layout *param.Layout
	set    atomic.Pointer[assignmentSet]
	macro  float64
}

// New creates an empty matrix over layout.
func New(layout *param.Layout) *Matrix {
	m := &Matrix{layout: layout}
	m.set.Store(newAssignmentSet(nil))
	return m
}

// SetMacroValue sets the macro, clamped to [0, 1]. NaN becomes 0.
func (m *Matrix) SetMacroValue(v float64) {
	m.macro = core.SafeClamp(v, 0, 1, 0)
}

// MacroValue returns the current macro.
func (m *Matrix) MacroValue() float64 { return m.macro }

// Modulate returns the effective plain value of id for the current macro.
// Without an assignment for id, base is returned unchanged.
func (m *Matrix) Modulate(id string, base float64) float64 {
	return m.ModulateWith(id, base, m.macro)
}

// ModulateWith is Modulate with an explicit macro value.
func (m *Matrix) ModulateWith(id string, base, macro float64) float64 {
	set := m.set.Load()
	i, ok := set.index[id]
	if !ok {
		return base
	}
	spec, ok := m.layout.Lookup(id)
	if !ok {
		return base
	}

	a := set.list[i]
	macro = core.SafeClamp(macro, 0, 1, 0)
	norm := spec.Normalize(base)
	if a.UseRange {
		lo, hi := a.Min, a.Max
		if a.Amount < 0 {
			lo, hi = hi, lo
		}
		target := lo + macro*(hi-lo)
		norm += math.Abs(a.Amount) * (target - norm)
	} else {
		norm = core.Clamp01(norm + a.Amount*macro)
	}
	return spec.Denormalize(norm)
}

// Add binds a to its target, replacing any existing assignment for it.
func (m *Matrix) Add(a Assignment) error {
	if !m.layout.Has(a.Target) {
		return fmt.Errorf("%w: %q", ErrUnknownTarget, a.Target)
	}
	a = a.sanitize()

	cur := m.set.Load()
	list := make([]Assignment, 0, len(cur.list)+1)
	for _, existing := range cur.list {
		if existing.Target != a.Target {
			list = append(list, existing)
		}
	}
	m.set.Store(newAssignmentSet(append(list, a)))
	return nil
}

// Remove drops the assignment for target. It reports whether one existed.
func (m *Matrix) Remove(target string) bool {
	cur := m.set.Load()
	if _, ok := cur.index[target]; !ok {
		return false
	}
	list := slices.DeleteFunc(slices.Clone(cur.list), func(a Assignment) bool {
		return a.Target == target
	})
	m.set.Store(newAssignmentSet(list))
	return true
}

// Clear drops every assignment.
func (m *Matrix) Clear() {
	m.set.Store(newAssignmentSet(nil))
}

// Lookup returns the assignment for target.
func (m *Matrix) Lookup(target string) (Assignment, bool) {
	set := m.set.Load()
	i, ok := set.index[target]
	if !ok {
		return Assignment{}, false
	}
	return set.list[i], true
}

// Assignments returns a copy of the current assignments in insertion order.
func (m *Matrix) Assignments() []Assignment {
	return slices.Clone(m.set.Load().list)
}

// SetAssignments replaces every assignment. Records naming unknown targets
// are dropped and returned; later records for a target replace earlier ones.
func (m *Matrix) SetAssignments(list []Assignment) (dropped []string) {
	kept := make([]Assignment, 0, len(list))
	pos := make(map[string]int, len(list))
	for _, a := range list {
		if !m.layout.Has(a.Target) {
			dropped = append(dropped, a.Target)
			continue
		}
		a = a.sanitize()
		if i, ok := pos[a.Target]; ok {
			kept = slices.Delete(kept, i, i+1)
			for id, j := range pos {
				if j > i {
					pos[id] = j - 1
				}
			}
		}
		pos[a.Target] = len(kept)
		kept = append(kept, a)
	}
	m.set.Store(newAssignmentSet(kept))
	return dropped
}
