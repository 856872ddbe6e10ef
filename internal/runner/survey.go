package runner

import (
	"context"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-automata/internal/automata/langton"
	"github.com/vovakirdan/tui-automata/internal/config"
	"github.com/vovakirdan/tui-automata/internal/core"
	"github.com/vovakirdan/tui-automata/internal/sims/ants"
)

// SurveyResult is the outcome of one preset in a survey.
type SurveyResult struct {
	Preset     string
	Tick       uint64
	Population int
	Highway    uint64 // 0 when no highway appeared within the limit
}

// Detected reports whether the preset reached a highway.
func (r SurveyResult) Detected() bool {
	return r.Highway > 0
}

// Survey runs each preset headless for at most maxTicks ticks, stopping a
// preset at its first highway. Results keep the order of presets; an empty
// list means every known preset. workers <= 0 uses one per CPU.
func Survey(ctx context.Context, presets []string, maxTicks uint64, workers int, store Store, logger *log.Logger) ([]SurveyResult, error) {
	if logger == nil {
		logger = log.Default()
	}
	if len(presets) == 0 {
		presets = langton.Presets()
	}
	for _, name := range presets {
		if _, err := langton.LookupPreset(name); err != nil {
			return nil, err
		}
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]SurveyResult, len(presets))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, name := range presets {
		g.Go(func() error {
			cfg := config.DefaultAntsConfig()
			cfg.Preset = name
			cfg.Run.CheckpointEvery = 0
			cfg.Run.PauseOnHighway = false

			sim := ants.NewWithConfig(cfg)
			if err := sim.Reset(core.DefaultConfig()); err != nil {
				return err
			}

			plog := logger.With("preset", name)
			res, err := Run(ctx, sim, NewRecorder(store, plog), plog, Options{
				MaxTicks:            maxTicks,
				StopOnHighway:       true,
				NoInitialCheckpoint: true,
			})
			if err != nil {
				return err
			}
			if res.Reason == ReasonCanceled {
				return ctx.Err()
			}

			results[i] = SurveyResult{
				Preset:     name,
				Tick:       res.Tick,
				Population: res.Population,
				Highway:    res.Highway,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
