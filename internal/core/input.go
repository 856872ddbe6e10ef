package core

// Action represents a semantic viewer action, abstracted from physical key presses.
type Action int

const (
	ActionNone       Action = iota
	ActionPause             // Space - toggle pause
	ActionStep              // N - advance a single tick while paused
	ActionSpeedSlow         // 0 - super slow
	ActionSpeedNormal       // 1 - normal
	ActionSpeedFast         // 2 - fast
	ActionCheckpoint        // Ctrl+S - checkpoint now
	ActionRestart           // R - reseed from the configured start state
	ActionBack              // B, Escape - back to menu
	ActionConfirm           // Enter - confirm selection in menu
	ActionUp                // W, Up arrow
	ActionDown              // S, Down arrow
	ActionQuit              // Q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionPause:
		return "Pause"
	case ActionStep:
		return "Step"
	case ActionSpeedSlow:
		return "SpeedSlow"
	case ActionSpeedNormal:
		return "SpeedNormal"
	case ActionSpeedFast:
		return "SpeedFast"
	case ActionCheckpoint:
		return "Checkpoint"
	case ActionRestart:
		return "Restart"
	case ActionBack:
		return "Back"
	case ActionConfirm:
		return "Confirm"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame holds all actions triggered during one simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}
