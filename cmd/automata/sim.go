package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/vovakirdan/tui-automata/internal/config"
	"github.com/vovakirdan/tui-automata/internal/core"
	"github.com/vovakirdan/tui-automata/internal/registry"
	"github.com/vovakirdan/tui-automata/internal/runner"
	"github.com/vovakirdan/tui-automata/internal/sims/ants"
	"github.com/vovakirdan/tui-automata/internal/sims/life"
	"github.com/vovakirdan/tui-automata/internal/storage"
)

// Seed selection flags shared by run, step and stream.
var (
	flagConfig  string
	flagPreset  string
	flagPattern string
	flagFrom    int64
)

// runtimeConfig sizes the sim to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
	}
}

// applySeedFlags hands the seed flags to the sim packages before creation.
func applySeedFlags(simID string) {
	switch simID {
	case "ants":
		ants.SetConfigPath(flagConfig)
		ants.SetPreset(flagPreset)
	case "life":
		life.SetConfigPath(flagConfig)
		life.SetPattern(flagPattern)
	}
}

// prepareSim creates and seeds a sim, restoring checkpoint from when it is
// non-zero.
func prepareSim(simID string, cfg core.RuntimeConfig, store *storage.Store, from int64) (registry.Sim, error) {
	if !registry.Exists(simID) {
		return nil, fmt.Errorf("unknown simulation %q (run 'automata list')", simID)
	}
	applySeedFlags(simID)

	sim, err := registry.Create(simID)
	if err != nil {
		return nil, err
	}
	if err := sim.Reset(cfg); err != nil {
		return nil, err
	}
	if from == 0 {
		return sim, nil
	}

	if store == nil {
		return nil, fmt.Errorf("checkpoint %d: no database", from)
	}
	cp, err := store.Checkpoint(from)
	if err != nil {
		return nil, err
	}
	if cp.SimID != simID {
		return nil, fmt.Errorf("checkpoint %d belongs to %q, not %q", from, cp.SimID, simID)
	}
	if err := sim.Restore(cp.Payload); err != nil {
		return nil, fmt.Errorf("checkpoint %d: %w", from, err)
	}
	return sim, nil
}

// runConfig returns the run settings the sim was configured with.
func runConfig(sim registry.Sim) config.RunConfig {
	switch s := sim.(type) {
	case *ants.Sim:
		return s.Config().Run
	case *life.Sim:
		return s.Config().Run
	}
	return config.DefaultRunConfig()
}

// resolveSpeed picks the flag over the sim's configured speed.
func resolveSpeed(flag string, sim registry.Sim) (config.SpeedPreset, error) {
	if flag == "" && sim != nil {
		flag = string(runConfig(sim).Speed)
	}
	return config.ParseSpeed(flag)
}

// recorderStore keeps a missing database from becoming a non-nil interface.
func recorderStore(store *storage.Store) runner.Store {
	if store == nil {
		return nil
	}
	return store
}
