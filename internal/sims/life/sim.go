// Package life drives Conway's Game of Life from a configured set of
// patterns and halts when the population dies out.
package life

import (
	"fmt"

	"github.com/vovakirdan/tui-automata/internal/automata/conway"
	"github.com/vovakirdan/tui-automata/internal/config"
	"github.com/vovakirdan/tui-automata/internal/core"
	"github.com/vovakirdan/tui-automata/internal/registry"
	"github.com/vovakirdan/tui-automata/internal/sims"
)

const (
	simID       = "life"
	followSlack = 2
	helpLine    = " space pause  n step  0/1/2 speed  ctrl+s checkpoint  r restart  q quit"
)

var (
	configPath      string
	patternOverride string
)

// SetConfigPath sets the config file path used by sims created with New.
func SetConfigPath(path string) {
	configPath = path
}

// SetPattern replaces the configured seed with a single named pattern at the
// origin.
func SetPattern(name string) {
	patternOverride = name
}

// Sim implements registry.Sim for the Game of Life.
type Sim struct {
	cfg    config.LifeConfig
	loaded bool
	rc     core.RuntimeConfig

	life    *conway.Life
	paused  bool
	extinct bool
	err     error

	checkpoints sims.Cadence
	canvas      sims.Canvas
}

// New creates a sim that loads its config on Reset.
func New() *Sim {
	return &Sim{}
}

// NewWithConfig creates a sim with an explicit config.
func NewWithConfig(cfg config.LifeConfig) *Sim {
	return &Sim{cfg: cfg, loaded: true}
}

func init() {
	registry.Register(simID, func() registry.Sim {
		return New()
	})
}

// ID returns the sim identifier.
func (s *Sim) ID() string {
	return simID
}

// Title returns the display name.
func (s *Sim) Title() string {
	return "Game of Life"
}

// Reset loads the config if needed and reseeds the population.
func (s *Sim) Reset(rc core.RuntimeConfig) error {
	s.rc = rc
	if !s.loaded {
		cfg, err := config.LoadLife(configPath)
		if err != nil {
			s.err = err
			return err
		}
		if patternOverride != "" {
			cfg.Patterns = []config.PatternConfig{{Name: patternOverride}}
			cfg.Cells = nil
		}
		s.cfg = cfg
		s.loaded = true
	}

	l, err := BuildLife(s.cfg)
	if err != nil {
		s.err = err
		return err
	}

	s.install(l)
	s.err = nil
	s.checkpoints = sims.Cadence{Every: s.cfg.Run.CheckpointEvery}
	s.canvas.Fit(rc.ScreenW, rc.ScreenH)
	return nil
}

func (s *Sim) install(l *conway.Life) {
	s.life = l
	s.extinct = l.Population() == 0
	s.paused = false
	s.canvas.Recenter()
}

// BuildLife seeds a population from the configured patterns and cells.
// An empty config falls back to the default seed.
func BuildLife(cfg config.LifeConfig) (*conway.Life, error) {
	var cells []core.Cell
	for _, p := range cfg.Patterns {
		pc, err := conway.Pattern(p.Name, p.X, p.Y)
		if err != nil {
			return nil, err
		}
		cells = append(cells, pc...)
	}
	for _, xy := range cfg.Cells {
		cells = append(cells, core.C(xy[0], xy[1]))
	}
	return conway.New(cells...), nil
}

// Step handles input and advances by at most one generation.
func (s *Sim) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) {
		//nolint:errcheck // Reset stores the error for State
		s.Reset(s.rc)
	}
	if s.life == nil {
		return core.StepResult{State: s.State()}
	}

	var events []core.Event
	if in.Has(core.ActionPause) {
		s.paused = !s.paused
	}
	if in.Has(core.ActionCheckpoint) {
		events = append(events, core.EventCheckpointUser)
	}

	advance := !s.extinct && (!s.paused || in.Has(core.ActionStep))
	if advance {
		s.life.Next()
		if s.life.Population() == 0 {
			s.extinct = true
			events = append(events, core.EventExtinct)
		}
		if s.checkpoints.Due(s.life.Generation()) {
			events = append(events, core.EventCheckpointDue)
		}
	}

	return core.StepResult{
		State:    s.State(),
		Advanced: advance,
		Events:   events,
	}
}

// State returns the current status.
func (s *Sim) State() core.SimState {
	if s.life == nil {
		st := core.SimState{Halted: true}
		if s.err != nil {
			st.Status = s.err.Error()
		}
		return st
	}
	st := core.SimState{
		Tick:       s.life.Generation(),
		Population: s.life.Population(),
		Paused:     s.paused,
		Halted:     s.extinct,
	}
	if s.extinct {
		st.Status = "extinct"
	}
	return st
}

// Render draws the live cells and the status lines.
func (s *Sim) Render(dst *core.Screen) {
	s.canvas.Fit(dst.Width(), dst.Height())
	if s.life != nil {
		if b, ok := s.life.Bounds(); ok {
			s.canvas.View.Follow(b.Center(), followSlack)
		}
		s.canvas.View.DrawBoard(dst, s.life.Board(), core.ColorCell)
	}
	sims.DrawHUD(dst, s.canvas.HUD, s.Title(), s.State())
	dst.DrawTextColored(0, s.canvas.Help, helpLine, core.ColorMuted)
}

// Frame returns the streaming view of the population.
func (s *Sim) Frame() core.Frame {
	f := core.Frame{Sim: simID, Status: s.State().Status}
	if s.life == nil {
		return f
	}
	f.Tick = s.life.Generation()
	f.Population = s.life.Population()
	f.Cells = core.CellPairs(s.life.Cells())
	if b, ok := s.life.Bounds(); ok {
		f.Bounds = &b
	}
	return f
}

// Checkpoint encodes the population.
func (s *Sim) Checkpoint() ([]byte, error) {
	if s.life == nil {
		return nil, fmt.Errorf("life: no population to checkpoint")
	}
	return conway.Save(s.life.Snapshot())
}

// Restore decodes a checkpoint and swaps it in.
func (s *Sim) Restore(data []byte) error {
	l, err := conway.LoadLife(data)
	if err != nil {
		return err
	}
	s.install(l)
	s.err = nil
	return nil
}

// Life returns the running population. Callers must not mutate it.
func (s *Sim) Life() *conway.Life {
	return s.life
}

// Config returns the active config.
func (s *Sim) Config() config.LifeConfig {
	return s.cfg
}
