// Package registry provides a global registry for simulation factories.
// Simulations register themselves in init() functions, allowing the platform
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-automata/internal/core"
)

// Sim is the interface every driveable simulation implements.
// Sims wrap a pure engine and own the driver-side state around it (pause,
// checkpoint cadence, detection latches). The platform handles input
// mapping, timing, and terminal output.
type Sim interface {
	// ID returns a unique identifier (e.g., "ants", "life").
	// Used for CLI commands and checkpoint storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset reseeds the simulation from its configured start state.
	// The RuntimeConfig provides screen dimensions.
	Reset(cfg core.RuntimeConfig) error

	// Step handles one frame of input and advances the engine by at most one
	// tick. Pausing and single-stepping are driven by the input frame.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into the provided screen buffer.
	// The screen is pre-cleared before this call.
	Render(dst *core.Screen)

	// State returns the current status.
	State() core.SimState

	// Frame returns a between-ticks view for streaming.
	Frame() core.Frame

	// Checkpoint encodes the full engine state.
	Checkpoint() ([]byte, error)

	// Restore replaces the engine state with a decoded checkpoint.
	// On error the running state is left untouched.
	Restore(data []byte) error
}

// SimInfo contains metadata about a registered simulation.
type SimInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a simulation.
type Factory func() Sim

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a simulation factory to the registry.
// Typically called from a sim package's init() function.
// Panics if a sim with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: sim %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns information about all registered sims, sorted by ID.
func List() []SimInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]SimInfo, 0, len(factories))
	for id := range factories {
		result = append(result, SimInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new sim by its ID.
// Returns an error if the ID is not registered.
func Create(id string) (Sim, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown sim %q", id)
	}

	return f(), nil
}

// Exists checks if a sim with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
