// Package runner drives simulations without a terminal and persists what
// they report: checkpoints, highway detections and progress.
package runner

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-automata/internal/core"
	"github.com/vovakirdan/tui-automata/internal/registry"
)

// Checkpoint labels.
const (
	LabelAuto   = "auto"
	LabelManual = "manual"
	LabelImport = "import"
)

// Store is the persistence the recorder needs. *storage.Store implements it.
type Store interface {
	SaveCheckpoint(simID, label string, step uint64, payload []byte) (int64, error)
	SaveDetection(seed string, tick uint64) (int64, error)
}

// seeded is implemented by sims that can name the seed they run.
type seeded interface {
	Seed() string
}

// Recorder reacts to step events on behalf of a driver.
// A nil store keeps the last checkpoint in memory only.
type Recorder struct {
	store  Store
	logger *log.Logger

	last     []byte
	lastTick uint64
	saved    int
}

// NewRecorder creates a recorder. logger may be nil.
func NewRecorder(store Store, logger *log.Logger) *Recorder {
	if logger == nil {
		logger = log.Default()
	}
	return &Recorder{store: store, logger: logger}
}

// Checkpoint encodes the sim and stores it under label.
func (r *Recorder) Checkpoint(sim registry.Sim, label string) (int64, error) {
	data, err := sim.Checkpoint()
	if err != nil {
		return 0, fmt.Errorf("runner: checkpoint %s: %w", sim.ID(), err)
	}
	tick := sim.State().Tick
	r.last, r.lastTick = data, tick
	r.saved++

	if r.store == nil {
		r.logger.Debug("checkpoint", "sim", sim.ID(), "tick", tick, "label", label, "bytes", len(data))
		return 0, nil
	}
	id, err := r.store.SaveCheckpoint(sim.ID(), label, tick, data)
	if err != nil {
		return 0, fmt.Errorf("runner: checkpoint %s: %w", sim.ID(), err)
	}
	r.logger.Debug("checkpoint", "sim", sim.ID(), "tick", tick, "label", label, "id", id)
	return id, nil
}

// Observe handles the events of one step result.
func (r *Recorder) Observe(sim registry.Sim, res core.StepResult) error {
	for _, ev := range res.Events {
		switch ev {
		case core.EventCheckpointDue:
			if _, err := r.Checkpoint(sim, LabelAuto); err != nil {
				return err
			}
		case core.EventCheckpointUser:
			if _, err := r.Checkpoint(sim, LabelManual); err != nil {
				return err
			}
		case core.EventHighway:
			if err := r.detection(sim, res.State.Tick); err != nil {
				return err
			}
		case core.EventExtinct:
			r.logger.Info("population died out", "sim", sim.ID(), "tick", res.State.Tick)
		}
	}
	return nil
}

func (r *Recorder) detection(sim registry.Sim, tick uint64) error {
	seed := sim.ID()
	if s, ok := sim.(seeded); ok {
		seed = s.Seed()
	}
	r.logger.Info("highway detected", "sim", sim.ID(), "seed", seed, "tick", tick)
	if r.store == nil {
		return nil
	}
	if _, err := r.store.SaveDetection(seed, tick); err != nil {
		return fmt.Errorf("runner: detection %s: %w", seed, err)
	}
	return nil
}

// Last returns the most recent checkpoint blob and its tick.
func (r *Recorder) Last() ([]byte, uint64) {
	return r.last, r.lastTick
}

// Saved returns how many checkpoints have been taken.
func (r *Recorder) Saved() int {
	return r.saved
}
