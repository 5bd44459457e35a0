package effectchain

import (
	"fmt"

	"github.com/cwbudde/algo-rocket/dsp/core"
	"github.com/cwbudde/algo-rocket/dsp/modmatrix"
	"github.com/cwbudde/algo-rocket/dsp/param"
)

// Kind separates in-place effects from generators.
type Kind int

const (
	// KindEffect modules transform the block in place.
	KindEffect Kind = iota
	// KindGenerator modules add signal into a scratch buffer.
	KindGenerator
)

// String returns the kind name.
func (k Kind) String() string {
	if k == KindGenerator {
		return "generator"
	}
	return "effect"
}

const (
	// minMix is the effective mix below which a module skips processing.
	minMix = 0.001
	// fullWet is the mix at or above which no dry blend is computed.
	fullWet = 0.999
)

// Module is the contract every effect and generator implements.
//
// Prepare sizes every internal buffer for cfg and fully resets; Process must
// not allocate. Reset clears transient state without allocating and may be
// called repeatedly. Process leaves buf untouched when the module is disabled
// or its effective mix is below 0.001.
type Module interface {
	ID() string
	Kind() Kind
	Prepare(cfg core.ProcessorConfig) error
	Reset()
	Enabled(ctx *ProcessContext) bool
	Mix(ctx *ProcessContext) float64
	Process(buf [][]float64, ctx *ProcessContext)
}

// ProcessContext carries what modules read during one block.
type ProcessContext struct {
	Params     *param.Store
	Matrix     *modmatrix.Matrix
	Transport  Transport
	SampleRate float64
}

// Num returns the effective plain value of a parameter: the stored value,
// modulated by the matrix, then sanitized against its spec. Unknown ids
// return 0.
func (c *ProcessContext) Num(id string) float64 {
	spec, ok := c.Params.Layout().Lookup(id)
	if !ok {
		return 0
	}
	v := c.Params.Value(id, spec.Default)
	if c.Matrix != nil {
		v = c.Matrix.Modulate(id, v)
	}
	return spec.Sanitize(v)
}

// Bool returns whether a parameter's effective value is on.
func (c *ProcessContext) Bool(id string) bool { return c.Num(id) > 0.5 }

// Choice returns a parameter's effective value as an index.
func (c *ProcessContext) Choice(id string) int { return int(c.Num(id)) }

// moduleBase carries the identity and mix bookkeeping shared by all modules.
type moduleBase struct {
	id         string
	kind       Kind
	enabledKey string
	mixKey     string

	cfg core.ProcessorConfig
	dry [core.MaxChannels][]float64
}

func newModuleBase(id string, kind Kind) moduleBase {
	b := moduleBase{id: id, kind: kind, enabledKey: id + "_enabled"}
	if kind == KindEffect {
		b.mixKey = id + "_mix"
	}
	return b
}

func (m *moduleBase) ID() string { return m.id }

func (m *moduleBase) Kind() Kind { return m.kind }

func (m *moduleBase) Enabled(ctx *ProcessContext) bool { return ctx.Bool(m.enabledKey) }

// Mix returns the effective wet amount. Generators have no mix and return 1.
func (m *moduleBase) Mix(ctx *ProcessContext) float64 {
	if m.mixKey == "" {
		return 1
	}
	return ctx.Num(m.mixKey)
}

func (m *moduleBase) prepareBase(cfg core.ProcessorConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("effectchain: prepare %s: %w", m.id, err)
	}
	m.cfg = cfg
	for ch := range m.dry {
		m.dry[ch] = core.EnsureLen(m.dry[ch], cfg.BlockSize)
	}
	return nil
}

// active reports whether the module should process this block and returns
// its effective mix.
func (m *moduleBase) active(buf [][]float64, ctx *ProcessContext) (float64, bool) {
	if len(buf) == 0 || len(buf[0]) == 0 || !m.Enabled(ctx) {
		return 0, false
	}
	mix := m.Mix(ctx)
	return mix, mix >= minMix
}

// captureDry saves buf for a later blend when mix is below fullWet.
func (m *moduleBase) captureDry(buf [][]float64, mix float64) {
	if mix >= fullWet {
		return
	}
	for ch := 0; ch < min(len(buf), core.MaxChannels); ch++ {
		core.CopyInto(m.dry[ch], buf[ch])
	}
}

// blend crossfades buf against the captured dry signal.
func (m *moduleBase) blend(buf [][]float64, mix float64) {
	if mix >= fullWet {
		return
	}
	for ch := 0; ch < min(len(buf), core.MaxChannels); ch++ {
		core.Crossfade(buf[ch], m.dry[ch], mix)
	}
}
