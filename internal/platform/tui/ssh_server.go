package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tui-automata/internal/config"
	"github.com/vovakirdan/tui-automata/internal/core"
	"github.com/vovakirdan/tui-automata/internal/registry"
	"github.com/vovakirdan/tui-automata/internal/runner"
	"github.com/vovakirdan/tui-automata/internal/storage"
)

// SessionStore is everything an SSH session persists to.
type SessionStore interface {
	runner.Store
	CheckpointStore
	Checkpoint(id int64) (*storage.Checkpoint, error)
}

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.automata/host_key.
	HostKeyPath string

	// DBPath is the path to the checkpoint database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate caps frames per second for each session.
	TickRate int

	// Speed is the starting speed preset of each viewer.
	Speed config.SpeedPreset
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.automata/automata.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
		Speed:       config.SpeedNormal,
	}
}

// SSHServer wraps a Wish SSH server that hands every session a viewer.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "automata-ssh",
	})

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open checkpoint database", "error", err)
		// Continue without storage
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".automata", "host_key")
	}

	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
	}

	var store SessionStore
	if s.store != nil {
		store = s.store
	}
	model := NewSessionModel(store, cfg, s.config.Speed, s.logger.With("user", sshSession.User()))

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

type sessionView int

const (
	viewMenu sessionView = iota
	viewSim
	viewCheckpoints
)

// SessionModel manages the full session flow: menu -> viewer -> menu, with
// a detour through the checkpoint browser.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	store       SessionStore
	config      core.RuntimeConfig
	speed       config.SpeedPreset
	logger      *log.Logger
	view        sessionView
	menu        MenuModel
	viewer      Model
	checkpoints CheckpointsModel
	notice      string
	quitting    bool
}

// NewSessionModel creates a new session model. store may be nil.
func NewSessionModel(store SessionStore, cfg core.RuntimeConfig, speed config.SpeedPreset, logger *log.Logger) SessionModel {
	return SessionModel{
		store:  store,
		config: cfg,
		speed:  speed,
		logger: logger,
		menu:   NewMenuModel(cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.view {
	case viewSim:
		return m.updateViewer(msg)
	case viewCheckpoints:
		return m.updateCheckpoints(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsCheckpoints() {
		m.checkpoints = NewCheckpointsModel(m.store, "", m.config.ScreenW, m.config.ScreenH)
		m.view = viewCheckpoints
		return m, m.checkpoints.Init()
	}

	if selected := m.menu.Selected(); selected != nil {
		return m.startSim(selected.SimID, nil)
	}

	return m, cmd
}

// updateViewer handles updates while a sim is running.
func (m SessionModel) updateViewer(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.viewer.Update(msg)
	if viewer, ok := newModel.(Model); ok {
		m.viewer = viewer
	}

	if m.viewer.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.viewer.WentBack() {
		return m.backToMenu()
	}

	return m, cmd
}

// updateCheckpoints handles updates in the checkpoint browser.
func (m SessionModel) updateCheckpoints(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.checkpoints.Update(msg)
	if browser, ok := newModel.(CheckpointsModel); ok {
		m.checkpoints = browser
	}

	if m.checkpoints.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.checkpoints.IsGoingBack() {
		return m.backToMenu()
	}
	if chosen := m.checkpoints.Chosen(); chosen != nil {
		if m.store == nil {
			return m.backToMenu()
		}
		cp, err := m.store.Checkpoint(chosen.ID)
		if err != nil {
			m.logger.Error("load checkpoint", "id", chosen.ID, "error", err)
			m.notice = err.Error()
			return m.backToMenu()
		}
		return m.startSim(cp.SimID, cp.Payload)
	}

	return m, cmd
}

// startSim creates a sim, optionally restores a checkpoint into it and
// switches to the viewer.
func (m SessionModel) startSim(simID string, payload []byte) (tea.Model, tea.Cmd) {
	sim, err := registry.Create(simID)
	if err == nil {
		err = sim.Reset(m.config)
	}
	if err == nil && payload != nil {
		err = sim.Restore(payload)
	}
	if err != nil {
		m.logger.Error("start sim", "sim", simID, "error", err)
		m.notice = err.Error()
		return m.backToMenu()
	}

	opts := Options{Logger: m.logger, Speed: m.speed}
	if m.store != nil {
		opts.Store = m.store
	}
	m.viewer = NewModel(sim, m.config, opts)
	m.view = viewSim
	m.logger.Info("sim started", "sim", simID, "tick", sim.State().Tick)
	return m, m.viewer.Init()
}

func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.view = viewMenu
	m.menu = NewMenuModel(m.config)
	return m, m.menu.Init()
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewSim:
		return m.viewer.View()
	case viewCheckpoints:
		return m.checkpoints.View()
	}

	if m.notice != "" {
		return m.menu.View() + "\n" + centerText(m.notice, m.config.ScreenW)
	}
	return m.menu.View()
}
