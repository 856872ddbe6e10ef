// Package ants drives a Langton's Ant colony: it seeds the colony from
// config, latches the first highway detection and draws the board.
package ants

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-automata/internal/automata/langton"
	"github.com/vovakirdan/tui-automata/internal/config"
	"github.com/vovakirdan/tui-automata/internal/core"
	"github.com/vovakirdan/tui-automata/internal/registry"
	"github.com/vovakirdan/tui-automata/internal/sims"
)

const (
	simID       = "ants"
	followSlack = 3
	helpLine    = " space pause  n step  0/1/2 speed  ctrl+s checkpoint  r restart  q quit"
)

// Package-level overrides applied by New (set from CLI flags).
var (
	configPath     string
	presetOverride string
)

// SetConfigPath sets the config file path used by sims created with New.
func SetConfigPath(path string) {
	configPath = path
}

// SetPreset forces a named preset, ignoring any custom colony in the config.
func SetPreset(name string) {
	presetOverride = name
}

// Sim implements registry.Sim for Langton's Ant.
type Sim struct {
	cfg    config.AntsConfig
	loaded bool
	rc     core.RuntimeConfig

	seed     string
	colony   *langton.Colony
	detector *langton.Detector
	history  langton.History // Ant 0 headings since the colony was installed
	highway  uint64          // Tick of the first detection, 0 if none
	paused   bool
	err      error

	checkpoints sims.Cadence
	canvas      sims.Canvas
}

// New creates a sim that loads its config on Reset, honouring SetConfigPath
// and SetPreset.
func New() *Sim {
	return &Sim{}
}

// NewWithConfig creates a sim with an explicit config.
func NewWithConfig(cfg config.AntsConfig) *Sim {
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
	return "Langton's Ants"
}

// Reset loads the config if needed and reseeds the colony.
func (s *Sim) Reset(rc core.RuntimeConfig) error {
	s.rc = rc
	if !s.loaded {
		cfg, err := config.LoadAnts(configPath)
		if err != nil {
			s.err = err
			return err
		}
		if presetOverride != "" {
			cfg.Preset = presetOverride
			cfg.Ants = nil
			cfg.Swarm = nil
		}
		s.cfg = cfg
		s.loaded = true
	}

	colony, seed, err := BuildColony(s.cfg)
	if err != nil {
		s.err = err
		return err
	}

	s.install(colony)
	s.seed = seed
	s.err = nil
	s.checkpoints = sims.Cadence{Every: s.cfg.Run.CheckpointEvery}
	s.canvas.Fit(rc.ScreenW, rc.ScreenH)
	return nil
}

// install swaps in a colony and clears everything derived from the old one.
func (s *Sim) install(c *langton.Colony) {
	s.colony = c
	s.detector = langton.NewDetector()
	s.history = langton.History{}
	s.highway = 0
	s.paused = false
	s.canvas.Recenter()
}

// BuildColony seeds a colony from config. The returned label names the seed
// for logs and detection records.
func BuildColony(cfg config.AntsConfig) (*langton.Colony, string, error) {
	if !cfg.Custom() {
		c, err := langton.NewColonyFromPreset(cfg.Preset)
		if err != nil {
			return nil, "", err
		}
		return c, cfg.Preset, nil
	}

	board := core.NewBoard()
	for _, xy := range cfg.Board {
		board.Add(core.C(xy[0], xy[1]))
	}

	var ants []*langton.Ant
	for i, a := range cfg.Ants {
		heading := langton.Up
		if a.Heading != "" {
			d, err := langton.ParseDirection(a.Heading)
			if err != nil {
				return nil, "", fmt.Errorf("ants: ant %d: %w", i, err)
			}
			heading = d
		}
		turnRight := a.TurnRight == nil || *a.TurnRight
		ants = append(ants, langton.NewAnt(a.X, a.Y, heading, turnRight))
	}

	label := "custom"
	if sw := cfg.Swarm; sw != nil {
		span := int64(sw.Span())
		if span == 0 {
			return nil, "", fmt.Errorf("ants: swarm range [%d,%d] is empty or too wide", sw.Min, sw.Max)
		}
		rng := rand.New(rand.NewSource(sw.Seed))
		for i := 0; i < sw.Count; i++ {
			x := sw.Min + int(rng.Int63n(span))
			y := sw.Min + int(rng.Int63n(span))
			ants = append(ants, langton.NewAnt(x, y, langton.Up, rng.Intn(2) == 1))
		}
		label = fmt.Sprintf("swarm-%d-%d", sw.Count, sw.Seed)
	}

	return langton.NewColony(board, ants...), label, nil
}

// Step handles input and advances the colony by at most one tick.
func (s *Sim) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) {
		//nolint:errcheck // Reset stores the error for State
		s.Reset(s.rc)
	}
	if s.colony == nil {
		return core.StepResult{State: s.State()}
	}

	var events []core.Event
	if in.Has(core.ActionPause) {
		s.paused = !s.paused
	}
	if in.Has(core.ActionCheckpoint) {
		events = append(events, core.EventCheckpointUser)
	}

	advance := !s.paused || in.Has(core.ActionStep)
	if advance {
		s.colony.Next()
		tick := s.colony.Tick()
		heading := s.colony.Ant(0).Heading
		s.history.Append(heading)

		if !s.detector.Found() && s.detector.Feed(heading) {
			s.highway = tick
			events = append(events, core.EventHighway)
			if s.cfg.Run.PauseOnHighway {
				s.paused = true
			}
		}
		if s.checkpoints.Due(tick) {
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
	if s.colony == nil {
		st := core.SimState{Halted: true}
		if s.err != nil {
			st.Status = s.err.Error()
		}
		return st
	}
	st := core.SimState{
		Tick:       s.colony.Tick(),
		Population: s.colony.Board().Len(),
		Paused:     s.paused,
	}
	if s.highway > 0 {
		st.Status = fmt.Sprintf("highway at tick %d", s.highway)
	}
	return st
}

// Render draws the board, the ants and the status lines.
func (s *Sim) Render(dst *core.Screen) {
	s.canvas.Fit(dst.Width(), dst.Height())
	if s.colony != nil {
		s.canvas.View.Follow(s.colony.Ant(0).Pos, followSlack)
		s.canvas.View.DrawBoard(dst, s.colony.Board(), core.ColorCell)
		for _, a := range s.colony.Ants() {
			color := core.ColorAntLeft
			if a.TurnRight {
				color = core.ColorAntRight
			}
			s.canvas.View.DrawCell(dst, a.Pos, sims.GlyphAnt, color)
		}
	}
	sims.DrawHUD(dst, s.canvas.HUD, s.Title()+" ["+s.seed+"]", s.State())
	dst.DrawTextColored(0, s.canvas.Help, helpLine, core.ColorMuted)
}

// Frame returns the streaming view of the colony.
func (s *Sim) Frame() core.Frame {
	f := core.Frame{Sim: simID, Status: s.State().Status}
	if s.colony == nil {
		return f
	}
	f.Tick = s.colony.Tick()
	f.Population = s.colony.Board().Len()
	f.Cells = core.CellPairs(s.colony.Board().Cells())
	for _, a := range s.colony.Ants() {
		f.Ants = append(f.Ants, core.AntView{
			X:         a.Pos.X,
			Y:         a.Pos.Y,
			Heading:   a.Heading.String(),
			Code:      string(a.Code()),
			TurnRight: a.TurnRight,
		})
	}
	return f
}

// Checkpoint encodes the colony.
func (s *Sim) Checkpoint() ([]byte, error) {
	if s.colony == nil {
		return nil, fmt.Errorf("ants: no colony to checkpoint")
	}
	return langton.Save(s.colony.Snapshot())
}

// Restore decodes a checkpoint into a fresh colony and swaps it in.
// Highway detection starts over from the restored tick.
func (s *Sim) Restore(data []byte) error {
	c, err := langton.LoadColony(data)
	if err != nil {
		return err
	}
	s.install(c)
	s.err = nil
	return nil
}

// Colony returns the running colony. Callers must not mutate it.
func (s *Sim) Colony() *langton.Colony {
	return s.colony
}

// HighwayTick returns the tick of the first highway detection, or 0.
func (s *Sim) HighwayTick() uint64 {
	return s.highway
}

// History returns the headings of ant 0 since the colony was seeded or
// restored, one code per tick.
func (s *Sim) History() string {
	return s.history.String()
}

// Seed returns the label of the seed the colony was built from.
func (s *Sim) Seed() string {
	return s.seed
}

// Config returns the active config.
func (s *Sim) Config() config.AntsConfig {
	return s.cfg
}
