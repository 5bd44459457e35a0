package param

import (
	"errors"
	"fmt"
	"slices"
)

// ErrUnknownParameter is returned for ids that are not part of a Layout.
var ErrUnknownParameter = errors.New("param: unknown parameter")

// Layout is an ordered, immutable set of parameter specs.
type Layout struct {
	specs []Spec
	index map[string]int
}

// NewLayout validates specs and builds a layout. Ids must be unique.
func NewLayout(specs ...Spec) (*Layout, error) {
	l := &Layout{
		specs: make([]Spec, 0, len(specs)),
		index: make(map[string]int, len(specs)),
	}
	for _, s := range specs {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if _, dup := l.index[s.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", errInvalidSpec, s.ID)
		}
		l.index[s.ID] = len(l.specs)
		l.specs = append(l.specs, s)
	}
	return l, nil
}

// Len returns the number of parameters.
func (l *Layout) Len() int { return len(l.specs) }

// IDs returns every parameter id in declaration order.
func (l *Layout) IDs() []string {
	ids := make([]string, len(l.specs))
	for i, s := range l.specs {
		ids[i] = s.ID
	}
	return ids
}

// Specs returns a copy of the specs in declaration order.
func (l *Layout) Specs() []Spec { return slices.Clone(l.specs) }

// Lookup returns the spec for id.
func (l *Layout) Lookup(id string) (Spec, bool) {
	i, ok := l.index[id]
	if !ok {
		return Spec{}, false
	}
	return l.specs[i], true
}

// Has reports whether id is part of the layout.
func (l *Layout) Has(id string) bool {
	_, ok := l.index[id]
	return ok
}

func (l *Layout) indexOf(id string) (int, bool) {
	i, ok := l.index[id]
	return i, ok
}
