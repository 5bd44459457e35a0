package effectchain

import (
	"errors"
	"fmt"
)

type factory func() Module

// registry lists module factories in construction order.
type registry struct {
	ids       []string
	factories map[string]factory
}

var errDuplicateModule = errors.New("duplicate module id")

func newRegistry() *registry {
	return &registry{factories: make(map[string]factory)}
}

func (r *registry) register(id string, f factory) error {
	if id == "" {
		return errors.New("empty module id")
	}
	if f == nil {
		return errors.New("nil factory")
	}
	if _, exists := r.factories[id]; exists {
		return fmt.Errorf("%w: %s", errDuplicateModule, id)
	}
	r.factories[id] = f
	r.ids = append(r.ids, id)
	return nil
}

func (r *registry) mustRegister(id string, f factory) {
	if err := r.register(id, f); err != nil {
		panic("effectchain registry: " + err.Error())
	}
}

// build instantiates every registered module in construction order.
func (r *registry) build() []Module {
	modules := make([]Module, 0, len(r.ids))
	for _, id := range r.ids {
		modules = append(modules, r.factories[id]())
	}
	return modules
}

// defaultRegistry returns the engine's closed module set: effects first,
// then generators.
func defaultRegistry() *registry {
	r := newRegistry()
	r.mustRegister("reverb", func() Module { return newReverbModule() })
	r.mustRegister("delay", func() Module { return newDelayModule() })
	r.mustRegister("lpf", func() Module { return newFilterModule("lpf", false) })
	r.mustRegister("hpf", func() Module { return newFilterModule("hpf", true) })
	r.mustRegister("flanger", func() Module { return newFlangerModule() })
	r.mustRegister("phaser", func() Module { return newPhaserModule() })
	r.mustRegister("bitcrusher", func() Module { return newBitCrusherModule() })
	r.mustRegister("distortion", func() Module { return newDistortionModule() })
	r.mustRegister("eq", func() Module { return newEQModule() })
	r.mustRegister("tremolo", func() Module { return newTremoloModule() })
	r.mustRegister("ringmod", func() Module { return newRingModModule() })
	r.mustRegister("deesser", func() Module { return newDeEsserModule() })
	r.mustRegister("pitch", func() Module { return newPitchModule() })
	r.mustRegister("noise", func() Module { return newNoiseModule() })
	r.mustRegister("tone", func() Module { return newToneModule() })
	return r
}
