package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-automata/internal/core"
	"github.com/vovakirdan/tui-automata/internal/registry"
	"github.com/vovakirdan/tui-automata/internal/runner"
)

// Config holds the stream server settings.
type Config struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string

	// TickRate is the number of ticks broadcast per second.
	TickRate int

	// Runtime is handed to the sim on restart.
	Runtime core.RuntimeConfig
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Address:  ":8080",
		TickRate: 20,
		Runtime:  core.DefaultConfig(),
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Server drives one sim and broadcasts every tick to its clients.
type Server struct {
	config   Config
	sim      registry.Sim
	recorder *runner.Recorder
	hub      *Hub
	logger   *log.Logger

	mu      sync.Mutex
	pending core.InputFrame
	latest  []byte
}

// NewServer creates a server around a sim that has already been Reset or
// Restored. store may be nil.
func NewServer(sim registry.Sim, cfg Config, store runner.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = DefaultConfig().TickRate
	}
	s := &Server{
		config:   cfg,
		sim:      sim,
		recorder: runner.NewRecorder(store, logger),
		logger:   logger,
		pending:  core.NewInputFrame(),
	}
	s.hub = NewHub(logger, s.command)
	s.latest = s.encode(sim.Frame())
	return s
}

// Handler returns the HTTP routes: /ws for the live feed and /frame for the
// latest frame as a single JSON document.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWs)
	mux.HandleFunc("/frame", s.serveFrame)
	return mux
}

// Drive runs the hub and the tick loop until ctx is done.
func (s *Server) Drive(ctx context.Context) error {
	if s.sim.State().Tick == 0 {
		if _, err := s.recorder.Checkpoint(s.sim, runner.LabelAuto); err != nil {
			return err
		}
	}

	go s.hub.Run(ctx)

	ticker := time.NewTicker(time.Second / time.Duration(s.config.TickRate))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := s.step(); err != nil {
				return err
			}
		}
	}
}

// Run listens on the configured address and drives the sim until ctx is
// done, then shuts the HTTP server down.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("stream listening", "address", s.config.Address, "sim", s.sim.ID())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("stream: listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return s.Drive(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("shutting down...")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// command queues a client action for the next tick.
func (s *Server) command(a core.Action) {
	s.mu.Lock()
	s.pending.Set(a)
	s.mu.Unlock()
}

// step applies pending commands, advances the sim once and broadcasts the
// resulting frame.
func (s *Server) step() error {
	s.mu.Lock()
	in := s.pending.Clone()
	s.pending.Clear()
	s.mu.Unlock()

	if in.Has(core.ActionRestart) {
		delete(in.Actions, core.ActionRestart)
		if err := s.sim.Reset(s.config.Runtime); err != nil {
			return fmt.Errorf("stream: restart %s: %w", s.sim.ID(), err)
		}
		if _, err := s.recorder.Checkpoint(s.sim, runner.LabelAuto); err != nil {
			return err
		}
		s.logger.Info("restarted", "sim", s.sim.ID())
	}

	res := s.sim.Step(in)
	if err := s.recorder.Observe(s.sim, res); err != nil {
		return err
	}

	frame := s.sim.Frame()
	frame.Events = res.Events
	msg := s.encode(frame)

	s.mu.Lock()
	s.latest = msg
	s.mu.Unlock()

	if res.Advanced || len(res.Events) > 0 {
		s.hub.Broadcast(msg)
	}
	return nil
}

func (s *Server) encode(frame core.Frame) []byte {
	msg, err := json.Marshal(frame)
	if err != nil {
		s.logger.Error("encode frame", "sim", s.sim.ID(), "error", err)
		return nil
	}
	return msg
}

// serveWs upgrades the connection and attaches the client to the hub.
func (s *Server) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "error", err)
		return
	}
	client := NewClient(s.hub, conn)
	if !client.Register() {
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}

func (s *Server) serveFrame(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	msg := s.latest
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	//nolint:errcheck // Client may have gone away
	w.Write(msg)
}
