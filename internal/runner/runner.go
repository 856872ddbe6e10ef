package runner

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-automata/internal/core"
	"github.com/vovakirdan/tui-automata/internal/registry"
	"github.com/vovakirdan/tui-automata/internal/sims"
)

// Stop reasons reported in Result.
const (
	ReasonMaxTicks = "max_ticks"
	ReasonHighway  = "highway"
	ReasonExtinct  = "extinct"
	ReasonPaused   = "paused"
	ReasonCanceled = "canceled"
)

// Options controls a headless run.
type Options struct {
	MaxTicks            uint64 // Ticks to run from the starting state, 0 means until stopped
	ProgressEvery       uint64 // Ticks between progress log lines, 0 disables
	StopOnHighway       bool
	NoInitialCheckpoint bool // Do not checkpoint the starting state
}

// Result summarizes a headless run.
type Result struct {
	SimID       string
	Start       uint64
	Tick        uint64
	Population  int
	Highway     uint64 // 0 when never detected
	Reason      string
	Checkpoints int
}

// Ticks returns how many ticks this run applied.
func (r Result) Ticks() uint64 {
	return r.Tick - r.Start
}

// Run steps sim until a stop condition holds or ctx is done. The sim must
// already be Reset or Restored. A canceled context is reported through the
// result reason, not as an error.
func Run(ctx context.Context, sim registry.Sim, rec *Recorder, logger *log.Logger, opts Options) (Result, error) {
	if logger == nil {
		logger = log.Default()
	}
	if rec == nil {
		rec = NewRecorder(nil, logger)
	}

	st := sim.State()
	res := Result{SimID: sim.ID(), Start: st.Tick, Tick: st.Tick, Population: st.Population}
	saved := rec.Saved()

	if !opts.NoInitialCheckpoint {
		if _, err := rec.Checkpoint(sim, LabelAuto); err != nil {
			return res, err
		}
	}

	progress := sims.Cadence{Every: opts.ProgressEvery}
	in := core.NewInputFrame()

	for {
		if opts.MaxTicks > 0 && res.Ticks() >= opts.MaxTicks {
			res.Reason = ReasonMaxTicks
			break
		}
		if ctx.Err() != nil {
			res.Reason = ReasonCanceled
			break
		}

		step := sim.Step(in)
		res.Tick, res.Population = step.State.Tick, step.State.Population
		if err := rec.Observe(sim, step); err != nil {
			res.Checkpoints = rec.Saved() - saved
			return res, err
		}

		if step.Has(core.EventHighway) {
			res.Highway = step.State.Tick
			if opts.StopOnHighway {
				res.Reason = ReasonHighway
				break
			}
		}
		if step.State.Halted {
			res.Reason = ReasonExtinct
			break
		}
		if !step.Advanced {
			res.Reason = ReasonPaused
			break
		}
		if progress.Due(step.State.Tick) {
			logger.Info("progress", "sim", sim.ID(), "tick", step.State.Tick, "population", step.State.Population)
		}
	}

	res.Checkpoints = rec.Saved() - saved
	logger.Info("run finished",
		"sim", res.SimID,
		"tick", res.Tick,
		"population", res.Population,
		"reason", res.Reason,
		"checkpoints", res.Checkpoints,
	)
	return res, nil
}
