// Package config provides YAML-based simulation configuration loading and
// the speed presets used by interactive runs.
package config

import (
	"fmt"
	"math"
)

// AntsConfig contains all configuration for the Langton's Ant simulation.
// A named preset is used unless Ants or Swarm describe a custom colony.
type AntsConfig struct {
	Preset string       `yaml:"preset"`
	Board  [][2]int     `yaml:"board,omitempty,flow"` // Black cells for a custom colony
	Ants   []AntConfig  `yaml:"ants,omitempty"`
	Swarm  *SwarmConfig `yaml:"swarm,omitempty"`
	Run    RunConfig    `yaml:"run"`
}

// AntConfig describes one ant of a custom colony.
type AntConfig struct {
	X         int    `yaml:"x"`
	Y         int    `yaml:"y"`
	Heading   string `yaml:"heading"`    // right, up, left, down or 0-3; empty means up
	TurnRight *bool  `yaml:"turn_right"` // nil means true
}

// SwarmConfig scatters Count ants with random positions and biases.
type SwarmConfig struct {
	Count int   `yaml:"count"`
	Seed  int64 `yaml:"seed"`
	Min   int   `yaml:"min"` // Lower coordinate bound, inclusive
	Max   int   `yaml:"max"` // Upper coordinate bound, inclusive
}

// Span returns how many coordinates [Min, Max] holds, or 0 when the range
// is empty or has more than math.MaxInt64 values.
func (s SwarmConfig) Span() uint64 {
	if s.Max < s.Min {
		return 0
	}
	d := uint64(s.Max) - uint64(s.Min)
	if d >= math.MaxInt64 {
		return 0
	}
	return d + 1
}

// Custom reports whether the config describes its own colony instead of a preset.
func (c AntsConfig) Custom() bool {
	return len(c.Ants) > 0 || c.Swarm != nil
}

// Validate checks the parts of the config that do not depend on the engine.
func (c AntsConfig) Validate() error {
	if !c.Custom() && c.Preset == "" {
		return fmt.Errorf("config: ants: preset, ants or swarm is required")
	}
	if s := c.Swarm; s != nil {
		if s.Count <= 0 {
			return fmt.Errorf("config: ants: swarm count must be positive, got %d", s.Count)
		}
		if s.Span() == 0 {
			return fmt.Errorf("config: ants: swarm range [%d,%d] is empty or too wide", s.Min, s.Max)
		}
	}
	return c.Run.Validate()
}

// LifeConfig contains all configuration for the Game of Life simulation.
type LifeConfig struct {
	Patterns []PatternConfig `yaml:"patterns"`
	Cells    [][2]int        `yaml:"cells,omitempty,flow"` // Extra live cells
	Run      RunConfig       `yaml:"run"`
}

// PatternConfig places a named pattern at an anchor.
type PatternConfig struct {
	Name string `yaml:"name"`
	X    int    `yaml:"x"`
	Y    int    `yaml:"y"`
}

// Validate checks the parts of the config that do not depend on the engine.
func (c LifeConfig) Validate() error {
	for i, p := range c.Patterns {
		if p.Name == "" {
			return fmt.Errorf("config: life: pattern %d has no name", i)
		}
	}
	return c.Run.Validate()
}

// RunConfig controls how a simulation is driven, independent of its rules.
type RunConfig struct {
	Speed           SpeedPreset `yaml:"speed"`            // slow, normal or fast
	CheckpointEvery uint64      `yaml:"checkpoint_every"` // Ticks between automatic checkpoints, 0 disables
	ProgressEvery   uint64      `yaml:"progress_every"`   // Ticks between progress log lines, 0 disables
	PauseOnHighway  bool        `yaml:"pause_on_highway"` // Ants only
	MaxTicks        uint64      `yaml:"max_ticks"`        // Headless limit, 0 means unbounded
}

// Validate checks the run settings.
func (r RunConfig) Validate() error {
	if r.Speed != "" {
		if _, err := ParseSpeed(string(r.Speed)); err != nil {
			return err
		}
	}
	return nil
}
