package effectchain

import (
	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-rocket/dsp/modmatrix"
)

// State is the persistable part of a chain: effect order, modulation
// assignments and plain parameter values.
type State struct {
	Order       []string               `json:"order"`
	Assignments []modmatrix.Assignment `json:"assignments"`
	Params      map[string]float64     `json:"params"`
}

// RestoreReport lists what Restore had to repair.
type RestoreReport struct {
	// Backfilled are parameters missing from the state, set to their defaults.
	Backfilled []string
	// UnknownParams are parameter ids the layout does not know.
	UnknownParams []string
	// DroppedAssignments are assignment targets the layout does not know.
	DroppedAssignments []string
}

// Snapshot captures the chain's current state.
func (c *Chain) Snapshot() State {
	return State{
		Order:       c.ModuleOrder(),
		Assignments: c.matrix.Assignments(),
		Params:      c.store.Snapshot(),
	}
}

// Restore applies s as a whole. Known parameters are written and missing ones
// backfilled with defaults; assignments to unknown targets are dropped; the
// order is validated like SetModuleOrder. All modules are then reset and the
// pop guard armed. Restore must not run concurrently with Process.
func (c *Chain) Restore(s State) RestoreReport {
	var r RestoreReport
	r.Backfilled, r.UnknownParams = c.store.Apply(s.Params)
	r.DroppedAssignments = c.matrix.SetAssignments(s.Assignments)
	c.SetModuleOrder(s.Order)
	c.Reset()
	c.TriggerPopGuard()

	entry := c.log.WithFields(logrus.Fields{
		"backfilled":  len(r.Backfilled),
		"assignments": len(s.Assignments) - len(r.DroppedAssignments),
	})
	if len(r.UnknownParams) > 0 || len(r.DroppedAssignments) > 0 {
		entry.WithFields(logrus.Fields{
			"unknownParams":      r.UnknownParams,
			"droppedAssignments": r.DroppedAssignments,
		}).Warn("state restored with unknown ids")
		return r
	}
	entry.Info("state restored")
	return r
}
