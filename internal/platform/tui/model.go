package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-automata/internal/config"
	"github.com/vovakirdan/tui-automata/internal/core"
	"github.com/vovakirdan/tui-automata/internal/registry"
	"github.com/vovakirdan/tui-automata/internal/runner"
)

// Options configures a viewer.
type Options struct {
	Store  runner.Store // nil keeps checkpoints in memory only
	Logger *log.Logger
	Speed  config.SpeedPreset
}

// Model is the Bubble Tea model for viewing a running simulation.
// The sim must already be Reset or Restored.
type Model struct {
	sim        registry.Sim
	screen     *core.Screen
	recorder   *runner.Recorder
	logger     *log.Logger
	config     core.RuntimeConfig
	throttle   *config.Throttle
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	state      core.SimState
	notice     *string // Last platform message, shared across model copies
	quitting   bool
	back       bool
}

// NewModel creates a new Bubble Tea model for the given sim.
func NewModel(sim registry.Sim, cfg core.RuntimeConfig, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return Model{
		sim:        sim,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		recorder:   runner.NewRecorder(opts.Store, logger),
		logger:     logger,
		config:     cfg,
		throttle:   config.NewThrottle(opts.Speed, cfg.TickRate),
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		state:      sim.State(),
		notice:     new(string),
	}
}

// Init checkpoints a fresh start and begins the tick loop.
func (m Model) Init() tea.Cmd {
	if m.state.Tick == 0 {
		m.checkpoint(runner.LabelAuto)
	}
	return tickCmd(m.interval())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionBack:
		m.back = true
		return m, tea.Quit
	case core.ActionSpeedSlow:
		m.throttle.SetSpeed(config.SpeedSlow)
	case core.ActionSpeedNormal:
		m.throttle.SetSpeed(config.SpeedNormal)
	case core.ActionSpeedFast:
		m.throttle.SetSpeed(config.SpeedFast)
	case core.ActionRestart:
		m.restart()
	case core.ActionPause, core.ActionStep, core.ActionCheckpoint:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events. The sim keeps running; it
// refits its viewport on the next render.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick advances the sim once and reacts to its events.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	res := m.sim.Step(m.inputFrame)
	m.state = res.State
	if res.Advanced {
		m.throttle.Advance()
	}

	if err := m.recorder.Observe(m.sim, res); err != nil {
		m.logger.Error("persist step events", "sim", m.sim.ID(), "err", err)
		*m.notice = err.Error()
	}
	switch {
	case res.Has(core.EventCheckpointUser):
		m.saveScreenshot()
		*m.notice = fmt.Sprintf("checkpoint saved at tick %d", res.State.Tick)
	case res.Has(core.EventHighway):
		*m.notice = fmt.Sprintf("highway detected at tick %d", res.State.Tick)
	case res.Has(core.EventExtinct):
		*m.notice = "population died out"
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.interval())
}

// restart reseeds the sim and checkpoints the fresh start.
func (m *Model) restart() {
	if err := m.sim.Reset(m.config); err != nil {
		*m.notice = err.Error()
		return
	}
	m.state = m.sim.State()
	m.throttle.Reset()
	*m.notice = ""
	m.checkpoint(runner.LabelAuto)
}

func (m *Model) checkpoint(label string) {
	if _, err := m.recorder.Checkpoint(m.sim, label); err != nil {
		m.logger.Error("checkpoint", "sim", m.sim.ID(), "err", err)
		*m.notice = err.Error()
	}
}

// interval returns the delay before the next tick. Held sims poll at the
// frame cap so single steps stay responsive.
func (m Model) interval() time.Duration {
	if m.state.Paused || m.state.Halted {
		return frameInterval(m.config.TickRate)
	}
	return m.throttle.Interval()
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.render()

	dir := filepath.Join(os.Getenv("HOME"), ".automata", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%d_%s.txt", m.sim.ID(), m.state.Tick, timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, simulation continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// render draws the sim and the viewer overlay into the screen buffer.
func (m Model) render() {
	m.screen.Clear()
	m.sim.Render(m.screen)

	h := m.screen.Height()
	if h < 2 {
		return
	}
	label := fmt.Sprintf(" %s %d/s ", m.throttle.Speed(), m.throttle.Rate())
	if *m.notice != "" {
		label = " " + *m.notice + " |" + label
	}
	x := max(m.screen.Width()-len(label), 0)
	m.screen.DrawTextColored(x, h-1, label, core.ColorHUD)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.back {
		return ""
	}
	m.render()
	return RenderScreen(m.screen)
}

// WentBack reports whether the viewer was left with the back key.
func (m Model) WentBack() bool {
	return m.back
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// Run starts the Bubble Tea program for sim.
func Run(sim registry.Sim, cfg core.RuntimeConfig, opts Options) error {
	_, err := RunViewer(sim, cfg, opts)
	return err
}

// RunViewer runs the viewer and returns its final state, so callers can tell
// a quit from a return to the menu.
func RunViewer(sim registry.Sim, cfg core.RuntimeConfig, opts Options) (Model, error) {
	model := NewModel(sim, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return model, err
	}
	if m, ok := final.(Model); ok {
		return m, nil
	}
	return model, nil
}
