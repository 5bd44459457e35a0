package effectchain

import (
	"fmt"
	"slices"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-rocket/dsp/core"
	"github.com/cwbudde/algo-rocket/dsp/filter/biquad"
	"github.com/cwbudde/algo-rocket/dsp/modmatrix"
	"github.com/cwbudde/algo-rocket/dsp/param"
)

const (
	// MacroSmoothingMs is the ramp length of the Amount macro.
	MacroSmoothingMs = 50.0
	// GlobalMixSmoothingMs is the ramp length of the global dry/wet amount.
	GlobalMixSmoothingMs = 20.0
	// PopGuardSamples is the length of the fade-out plus fade-in applied after
	// a state restore.
	PopGuardSamples = 512
)

// Option configures a Chain.
type Option func(*Chain)

// WithLogger sets the logger for lifecycle events. Process never logs.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Chain) {
		if l != nil {
			c.log = l
		}
	}
}

// WithStore makes the chain read parameters from s instead of a fresh store.
// The store must use param.DefaultLayout.
func WithStore(s *param.Store) Option {
	return func(c *Chain) {
		if s != nil {
			c.store = s
		}
	}
}

// Chain owns every module and runs the per-block pipeline.
type Chain struct {
	log    logrus.FieldLogger
	store  *param.Store
	matrix *modmatrix.Matrix

	modules    []Module
	byID       map[string]Module
	generators []Module
	order      atomic.Pointer[[]string]

	cfg      core.ProcessorConfig
	prepared bool
	ctx      ProcessContext

	macro     *param.Smoother
	globalMix *param.Smoother
	macroRamp []float64
	mixCurve  []float64
	gains     []float64
	scratch   []float64
	dry       [core.MaxChannels][]float64
	gen       [core.MaxChannels][]float64
	views     [core.MaxChannels][]float64
	genViews  [core.MaxChannels][]float64

	popGuard atomic.Int64
}

// New builds a chain holding one instance of every module. The chain must be
// prepared before it processes audio.
func New(opts ...Option) *Chain {
	c := &Chain{log: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(c)
	}
	if c.store == nil {
		c.store = param.NewStore(param.DefaultLayout())
	}
	c.matrix = modmatrix.New(c.store.Layout())
	c.ctx = ProcessContext{Params: c.store, Matrix: c.matrix}
	c.macro = param.NewSmoother(core.DefaultProcessorConfig().SampleRate, MacroSmoothingMs)
	c.globalMix = param.NewSmoother(core.DefaultProcessorConfig().SampleRate, GlobalMixSmoothingMs)

	c.modules = defaultRegistry().build()
	c.byID = make(map[string]Module, len(c.modules))
	for _, m := range c.modules {
		c.byID[m.ID()] = m
		if m.Kind() == KindGenerator {
			c.generators = append(c.generators, m)
		}
	}
	def := c.defaultOrder()
	c.order.Store(&def)
	return c
}

// Store returns the parameter store the chain reads.
func (c *Chain) Store() *param.Store { return c.store }

// Matrix returns the chain's modulation matrix.
func (c *Chain) Matrix() *modmatrix.Matrix { return c.matrix }

// Config returns the configuration from the last successful Prepare.
func (c *Chain) Config() core.ProcessorConfig { return c.cfg }

// Module returns the module with the given id.
func (c *Chain) Module(id string) (Module, bool) {
	m, ok := c.byID[id]
	return m, ok
}

// ModuleIDs returns every module id in construction order.
func (c *Chain) ModuleIDs() []string {
	ids := make([]string, len(c.modules))
	for i, m := range c.modules {
		ids[i] = m.ID()
	}
	return ids
}

// Prepare sizes every buffer for cfg and resets all state. An invalid cfg is
// rejected before anything changes, so a prepared chain keeps running with
// its previous configuration. It must not run concurrently with Process.
func (c *Chain) Prepare(cfg core.ProcessorConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("effectchain: prepare: %w", err)
	}
	for _, m := range c.modules {
		if err := m.Prepare(cfg); err != nil {
			c.prepared = false
			return err
		}
	}

	n := cfg.BlockSize
	c.macroRamp = core.EnsureLen(c.macroRamp, n)
	c.mixCurve = core.EnsureLen(c.mixCurve, n)
	c.gains = core.EnsureLen(c.gains, n)
	c.scratch = core.EnsureLen(c.scratch, n)
	for ch := range c.dry {
		c.dry[ch] = core.EnsureLen(c.dry[ch], n)
		c.gen[ch] = core.EnsureLen(c.gen[ch], n)
	}
	c.macro.SetRamp(cfg.SampleRate, MacroSmoothingMs)
	c.globalMix.SetRamp(cfg.SampleRate, GlobalMixSmoothingMs)

	c.cfg = cfg
	c.ctx.SampleRate = cfg.SampleRate
	c.prepared = true
	c.Reset()

	c.log.WithFields(logrus.Fields{
		"sampleRate":   cfg.SampleRate,
		"blockSize":    cfg.BlockSize,
		"channels":     cfg.Channels,
		"biquadKernel": biquad.KernelName(),
	}).Info("effect chain prepared")
	return nil
}

// Reset clears every module's transient state and snaps the smoothers to
// the current parameter values. The pop guard is left as it is.
func (c *Chain) Reset() {
	for _, m := range c.modules {
		m.Reset()
	}
	c.macro.Reset(c.store.Value(param.Amount, 0))
	c.globalMix.Reset(c.store.Value(param.GlobalMix, 1))
}

// TriggerPopGuard arms a PopGuardSamples fade-out/fade-in on the next blocks.
// It is safe to call from any goroutine.
func (c *Chain) TriggerPopGuard() {
	c.popGuard.Store(PopGuardSamples)
}

// PopGuardRemaining returns how many samples of the pop guard are left.
func (c *Chain) PopGuardRemaining() int {
	return int(c.popGuard.Load())
}

// ModuleOrder returns the current effect order.
func (c *Chain) ModuleOrder() []string {
	return slices.Clone(*c.order.Load())
}

// SetModuleOrder replaces the effect order. Unknown ids, generator ids and
// repeats are skipped; effects the candidate omits are appended in
// construction order.
func (c *Chain) SetModuleOrder(ids []string) {
	next := c.validateOrder(ids)
	c.order.Store(&next)
	c.log.WithField("order", next).Debug("module order changed")
}

// MoveModule moves the entry at index from to index to. Out-of-range indices
// leave the order unchanged.
func (c *Chain) MoveModule(from, to int) {
	cur := *c.order.Load()
	if from < 0 || from >= len(cur) || to < 0 || to >= len(cur) || from == to {
		return
	}
	next := slices.Clone(cur)
	id := next[from]
	next = slices.Delete(next, from, from+1)
	next = slices.Insert(next, to, id)
	c.order.Store(&next)
	c.log.WithFields(logrus.Fields{"module": id, "from": from, "to": to}).Debug("module moved")
}

func (c *Chain) defaultOrder() []string {
	order := make([]string, 0, len(c.modules))
	for _, m := range c.modules {
		if m.Kind() == KindEffect {
			order = append(order, m.ID())
		}
	}
	return order
}

func (c *Chain) validateOrder(ids []string) []string {
	next := make([]string, 0, len(c.modules))
	seen := make(map[string]bool, len(c.modules))
	for _, id := range ids {
		m, ok := c.byID[id]
		if !ok || m.Kind() != KindEffect || seen[id] {
			continue
		}
		seen[id] = true
		next = append(next, id)
	}
	for _, id := range c.defaultOrder() {
		if !seen[id] {
			next = append(next, id)
		}
	}
	return next
}
