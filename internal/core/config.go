package core

// RuntimeConfig contains configuration passed to sims at initialization.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Upper bound on ticks per second for interactive runs
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// SimState is the inspectable status of a running simulation.
type SimState struct {
	Tick       uint64 // Ticks (generations) applied so far
	Population int    // Black or live cells on the board
	Paused     bool   // Whether the driver is holding the simulation
	Halted     bool   // Nothing left to simulate (e.g. extinct life)
	Status     string // Short human-readable note for HUDs and logs
}

// Event is something noteworthy that happened during a step.
type Event string

const (
	EventHighway        Event = "highway"         // Highway pattern first detected
	EventExtinct        Event = "extinct"         // Live-cell set became empty
	EventCheckpointDue  Event = "checkpoint_due"  // Periodic checkpoint tick reached
	EventCheckpointUser Event = "checkpoint_user" // User asked for a checkpoint
)

// StepResult is returned by Sim.Step() after each simulation tick.
type StepResult struct {
	State    SimState
	Advanced bool // False when the step was skipped (paused or halted)
	Events   []Event
}

// Has reports whether the result carries the given event.
func (r StepResult) Has(e Event) bool {
	for _, ev := range r.Events {
		if ev == e {
			return true
		}
	}
	return false
}
