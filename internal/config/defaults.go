package config

import (
	_ "embed"
)

//go:embed defaults/ants.yaml
var defaultAntsYAML []byte

//go:embed defaults/life.yaml
var defaultLifeYAML []byte

// DefaultRunConfig returns the run settings shared by both simulations.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Speed:           SpeedNormal,
		CheckpointEvery: 250,
		ProgressEvery:   1000,
	}
}

// DefaultAntsConfig returns the default Langton's Ant configuration.
func DefaultAntsConfig() AntsConfig {
	run := DefaultRunConfig()
	run.PauseOnHighway = true
	return AntsConfig{
		Preset: "4pix",
		Run:    run,
	}
}

// DefaultLifeConfig returns the default Game of Life configuration.
func DefaultLifeConfig() LifeConfig {
	return LifeConfig{
		Patterns: []PatternConfig{
			{Name: "glider-gun", X: 0, Y: 0},
		},
		Run: DefaultRunConfig(),
	}
}
