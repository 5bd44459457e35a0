package param

import (
	"fmt"
	"math"
	"sync/atomic"
)

// Store holds the current plain value of every parameter in a Layout.
//
// Each value lives in its own atomic slot: writers never block the reader and
// a single read never observes a torn value. Reads of several parameters are
// not a transaction.
type Store struct {
	layout *Layout
	values []atomic.Uint64
}

// NewStore creates a store initialized to each parameter's default.
func NewStore(layout *Layout) *Store {
	s := &Store{layout: layout, values: make([]atomic.Uint64, layout.Len())}
	s.ResetDefaults()
	return s
}

// Layout returns the layout backing the store.
func (s *Store) Layout() *Layout { return s.layout }

// ResetDefaults writes every parameter's default value.
func (s *Store) ResetDefaults() {
	for i, spec := range s.layout.specs {
		s.values[i].Store(math.Float64bits(spec.Default))
	}
}

// Set writes a plain value. The value is sanitized against the parameter's
// spec, so non-finite input stores the default.
func (s *Store) Set(id string, plain float64) error {
	i, ok := s.layout.indexOf(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownParameter, id)
	}
	s.values[i].Store(math.Float64bits(s.layout.specs[i].Sanitize(plain)))
	return nil
}

// SetNormalized writes a value given in [0, 1].
func (s *Store) SetNormalized(id string, norm float64) error {
	i, ok := s.layout.indexOf(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownParameter, id)
	}
	s.values[i].Store(math.Float64bits(s.layout.specs[i].Denormalize(norm)))
	return nil
}

// Get returns the plain value of id.
func (s *Store) Get(id string) (float64, bool) {
	i, ok := s.layout.indexOf(id)
	if !ok {
		return 0, false
	}
	return math.Float64frombits(s.values[i].Load()), true
}

// Value returns the plain value of id, or def if id is unknown.
func (s *Store) Value(id string, def float64) float64 {
	if v, ok := s.Get(id); ok {
		return v
	}
	return def
}

// Normalized returns the value of id mapped to [0, 1].
func (s *Store) Normalized(id string) (float64, bool) {
	i, ok := s.layout.indexOf(id)
	if !ok {
		return 0, false
	}
	return s.layout.specs[i].Normalize(math.Float64frombits(s.values[i].Load())), true
}

// Snapshot copies every plain value into a map keyed by id.
func (s *Store) Snapshot() map[string]float64 {
	out := make(map[string]float64, len(s.values))
	for i, spec := range s.layout.specs {
		out[spec.ID] = math.Float64frombits(s.values[i].Load())
	}
	return out
}

// Apply writes every known id in values and backfills the rest with their
// defaults. It returns the ids that were backfilled and the ids in values the
// layout does not know.
func (s *Store) Apply(values map[string]float64) (backfilled, unknown []string) {
	for i, spec := range s.layout.specs {
		v, ok := values[spec.ID]
		if !ok {
			v = spec.Default
			backfilled = append(backfilled, spec.ID)
		}
		s.values[i].Store(math.Float64bits(spec.Sanitize(v)))
	}
	for id := range values {
		if !s.layout.Has(id) {
			unknown = append(unknown, id)
		}
	}
	return backfilled, unknown
}
