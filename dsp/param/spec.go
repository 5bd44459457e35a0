package param

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-rocket/dsp/core"
)

// Kind classifies how a parameter's plain value is interpreted.
type Kind int

const (
	// KindFloat is a continuous value in [Min, Max].
	KindFloat Kind = iota
	// KindBool is 0 or 1.
	KindBool
	// KindChoice is an index into Choices.
	KindChoice
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindChoice:
		return "choice"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

var errInvalidSpec = errors.New("param: invalid spec")

// Spec describes one parameter.
type Spec struct {
	ID      string
	Name    string
	Unit    string
	Kind    Kind
	Min     float64
	Max     float64
	Default float64
	// Skew shapes the normalized mapping: normalized = linear^Skew.
	// Values below 1 give more resolution to the low end. Zero means 1.
	Skew    float64
	Choices []string
}

// Float returns a continuous parameter spec.
func Float(id, name, unit string, lo, hi, def float64) Spec {
	return Spec{ID: id, Name: name, Unit: unit, Kind: KindFloat, Min: lo, Max: hi, Default: def, Skew: 1}
}

// Bool returns an on/off parameter spec.
func Bool(id, name string, def bool) Spec {
	d := 0.0
	if def {
		d = 1
	}
	return Spec{ID: id, Name: name, Kind: KindBool, Min: 0, Max: 1, Default: d, Skew: 1}
}

// Choice returns a discrete parameter spec whose plain value is an index into choices.
func Choice(id, name string, choices []string, def int) Spec {
	return Spec{
		ID:      id,
		Name:    name,
		Kind:    KindChoice,
		Min:     0,
		Max:     float64(len(choices) - 1),
		Default: float64(def),
		Skew:    1,
		Choices: choices,
	}
}

// WithSkew returns a copy of s with the given skew.
func (s Spec) WithSkew(skew float64) Spec {
	s.Skew = skew
	return s
}

// Validate checks the spec for internal consistency.
func (s Spec) Validate() error {
	switch {
	case s.ID == "":
		return fmt.Errorf("%w: empty id", errInvalidSpec)
	case !core.IsFinite(s.Min) || !core.IsFinite(s.Max) || s.Max <= s.Min:
		return fmt.Errorf("%w: %s: range [%g, %g]", errInvalidSpec, s.ID, s.Min, s.Max)
	case s.Default < s.Min || s.Default > s.Max || !core.IsFinite(s.Default):
		return fmt.Errorf("%w: %s: default %g outside [%g, %g]", errInvalidSpec, s.ID, s.Default, s.Min, s.Max)
	case s.Skew < 0 || !core.IsFinite(s.Skew):
		return fmt.Errorf("%w: %s: skew %g", errInvalidSpec, s.ID, s.Skew)
	case s.Kind == KindChoice && len(s.Choices) < 2:
		return fmt.Errorf("%w: %s: choice needs at least two entries", errInvalidSpec, s.ID)
	}
	return nil
}

// Sanitize maps an arbitrary plain value onto a legal one: non-finite input
// becomes the default, the value is clamped to range, bools snap to 0 or 1
// and choices to the nearest index.
func (s Spec) Sanitize(plain float64) float64 {
	v := core.SafeClamp(plain, s.Min, s.Max, s.Default)
	switch s.Kind {
	case KindBool:
		if v > 0.5 {
			return 1
		}
		return 0
	case KindChoice:
		return math.Round(v)
	default:
		return v
	}
}

// Normalize maps a plain value to [0, 1].
func (s Spec) Normalize(plain float64) float64 {
	v := s.Sanitize(plain)
	lin := (v - s.Min) / (s.Max - s.Min)
	if sk := s.skew(); sk != 1 && lin > 0 {
		return math.Pow(lin, sk)
	}
	return lin
}

// Denormalize maps a normalized value back to plain units.
func (s Spec) Denormalize(norm float64) float64 {
	n := core.SafeClamp(norm, 0, 1, s.Normalize(s.Default))
	if sk := s.skew(); sk != 1 && n > 0 {
		n = math.Pow(n, 1/sk)
	}
	return s.Sanitize(s.Min + n*(s.Max-s.Min))
}

// Format renders a plain value for display.
func (s Spec) Format(plain float64) string {
	v := s.Sanitize(plain)
	switch s.Kind {
	case KindBool:
		if v > 0 {
			return "on"
		}
		return "off"
	case KindChoice:
		return s.Choices[int(v)]
	}
	if s.Unit == "" {
		return fmt.Sprintf("%g", v)
	}
	return fmt.Sprintf("%g %s", v, s.Unit)
}

func (s Spec) skew() float64 {
	if s.Skew == 0 {
		return 1
	}
	return s.Skew
}
