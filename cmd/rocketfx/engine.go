package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-rocket/dsp/core"
	"github.com/cwbudde/algo-rocket/dsp/effectchain"
	"github.com/cwbudde/algo-rocket/dsp/modmatrix"
	"github.com/cwbudde/algo-rocket/dsp/param"
)

var errBadFlag = errors.New("rocketfx: bad flag value")

// engineFlags are the chain settings shared by render and play.
type engineFlags struct {
	state   string
	sets    []string
	assigns []string
	order   string
	amount  float64
	bpm     float64
	block   int
}

func (f *engineFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.state, "state", "", "JSON state file applied before the other flags")
	fs.StringArrayVar(&f.sets, "set", nil, "parameter value as id=value (repeatable)")
	fs.StringArrayVar(&f.assigns, "assign", nil, "macro assignment as target:amount[:min:max] (repeatable)")
	fs.StringVar(&f.order, "order", "", "comma-separated effect order")
	fs.Float64Var(&f.amount, "amount", 0, "Amount macro value in [0, 1]")
	fs.Float64Var(&f.bpm, "bpm", effectchain.DefaultTempo, "host tempo for synced delay and tremolo")
	fs.IntVar(&f.block, "block", 512, "processing block size in samples")
}

// build creates and prepares a chain for sampleRate from the flags.
func (f *engineFlags) build(cmd *cobra.Command, log logrus.FieldLogger, sampleRate float64) (*effectchain.Chain, error) {
	c := effectchain.New(effectchain.WithLogger(log))

	if f.state != "" {
		s, err := loadState(f.state)
		if err != nil {
			return nil, err
		}
		applyState(c, s, log)
	}
	for _, kv := range f.sets {
		id, v, err := parseSet(c.Store().Layout(), kv)
		if err != nil {
			return nil, err
		}
		if err := c.Store().Set(id, v); err != nil {
			return nil, fmt.Errorf("rocketfx: --set %s: %w", kv, err)
		}
	}
	if cmd.Flags().Changed("amount") {
		if err := c.Store().Set(param.Amount, f.amount); err != nil {
			return nil, err
		}
	}
	for _, spec := range f.assigns {
		a, err := parseAssign(spec)
		if err != nil {
			return nil, err
		}
		if err := c.Matrix().Add(a); err != nil {
			return nil, fmt.Errorf("rocketfx: --assign %s: %w", spec, err)
		}
	}
	if f.order != "" {
		c.SetModuleOrder(strings.Split(f.order, ","))
	}

	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(sampleRate),
		core.WithBlockSize(f.block),
		core.WithChannels(2),
	)
	if err := c.Prepare(cfg); err != nil {
		return nil, err
	}
	return c, nil
}

func (f *engineFlags) transport() effectchain.Transport {
	return effectchain.Transport{BPM: f.bpm, Playing: true}
}

func loadState(path string) (effectchain.State, error) {
	var s effectchain.State
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("rocketfx: read state: %w", err)
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("rocketfx: decode state %s: %w", path, err)
	}
	return s, nil
}

// applyState loads s into a chain that has not started yet. Unlike
// Chain.Restore it leaves the pop guard alone, so offline renders start at
// full level.
func applyState(c *effectchain.Chain, s effectchain.State, log logrus.FieldLogger) {
	backfilled, unknown := c.Store().Apply(s.Params)
	dropped := c.Matrix().SetAssignments(s.Assignments)
	c.SetModuleOrder(s.Order)

	entry := log.WithField("backfilled", len(backfilled))
	if len(unknown) > 0 || len(dropped) > 0 {
		entry = entry.WithFields(logrus.Fields{"unknownParams": unknown, "droppedAssignments": dropped})
	}
	entry.Info("state loaded")
}

// parseSet parses id=value. Booleans accept on/off and true/false, choices
// accept their names, and everything also takes a plain number.
func parseSet(layout *param.Layout, kv string) (string, float64, error) {
	id, raw, ok := strings.Cut(kv, "=")
	if !ok {
		return "", 0, fmt.Errorf("%w: --set %q: want id=value", errBadFlag, kv)
	}
	id, raw = strings.TrimSpace(id), strings.TrimSpace(raw)
	spec, ok := layout.Lookup(id)
	if !ok {
		return "", 0, fmt.Errorf("%w: %q", param.ErrUnknownParameter, id)
	}

	switch spec.Kind {
	case param.KindBool:
		switch strings.ToLower(raw) {
		case "on", "true", "yes":
			return id, 1, nil
		case "off", "false", "no":
			return id, 0, nil
		}
	case param.KindChoice:
		for i, name := range spec.Choices {
			if strings.EqualFold(name, raw) {
				return id, float64(i), nil
			}
		}
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return "", 0, fmt.Errorf("%w: --set %s: %q is not a value of %s", errBadFlag, kv, raw, spec.Kind)
	}
	return id, v, nil
}

// parseAssign parses target:amount for a direct assignment or
// target:amount:min:max for a ranged one.
func parseAssign(s string) (modmatrix.Assignment, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 4 {
		return modmatrix.Assignment{}, fmt.Errorf("%w: --assign %q: want target:amount[:min:max]", errBadFlag, s)
	}
	nums := make([]float64, len(parts)-1)
	for i, p := range parts[1:] {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return modmatrix.Assignment{}, fmt.Errorf("%w: --assign %q: %w", errBadFlag, s, err)
		}
		nums[i] = v
	}

	a := modmatrix.Assignment{Target: strings.TrimSpace(parts[0]), Amount: nums[0]}
	if len(nums) == 3 {
		a.UseRange = true
		a.Min, a.Max = nums[1], nums[2]
	}
	return a, nil
}
