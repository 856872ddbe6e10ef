package runner

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-automata/internal/config"
	"github.com/vovakirdan/tui-automata/internal/core"
	"github.com/vovakirdan/tui-automata/internal/sims/ants"
	"github.com/vovakirdan/tui-automata/internal/sims/life"
)

type savedCheckpoint struct {
	simID, label string
	step         uint64
	size         int
}

type memStore struct {
	mu          sync.Mutex
	checkpoints []savedCheckpoint
	detections  map[string]uint64
	fail        error
}

func newMemStore() *memStore {
	return &memStore{detections: make(map[string]uint64)}
}

func (m *memStore) SaveCheckpoint(simID, label string, step uint64, payload []byte) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return 0, m.fail
	}
	m.checkpoints = append(m.checkpoints, savedCheckpoint{simID, label, step, len(payload)})
	return int64(len(m.checkpoints)), nil
}

func (m *memStore) SaveDetection(seed string, tick uint64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return 0, m.fail
	}
	m.detections[seed] = tick
	return int64(len(m.detections)), nil
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func antsSim(t *testing.T, preset string, pause bool) *ants.Sim {
	t.Helper()
	cfg := config.DefaultAntsConfig()
	cfg.Preset = preset
	cfg.Run.PauseOnHighway = pause
	s := ants.NewWithConfig(cfg)
	if err := s.Reset(core.DefaultConfig()); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}
	return s
}

func TestRunStopsOnHighway(t *testing.T) {
	store := newMemStore()
	sim := antsSim(t, "s8", false)

	res, err := Run(context.Background(), sim, NewRecorder(store, quietLogger()), quietLogger(), Options{
		ProgressEvery: 1000,
		StopOnHighway: true,
	})
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if res.Reason != ReasonHighway || res.Highway != 3405 || res.Tick != 3405 {
		t.Errorf("Run() = %+v", res)
	}
	if store.detections["s8"] != 3405 {
		t.Errorf("detections = %v", store.detections)
	}

	// Initial checkpoint plus every 250 ticks up to 3250.
	if res.Checkpoints != 14 || len(store.checkpoints) != 14 {
		t.Fatalf("checkpoints: result %d, stored %d", res.Checkpoints, len(store.checkpoints))
	}
	first, last := store.checkpoints[0], store.checkpoints[13]
	if first.step != 0 || first.label != LabelAuto || first.simID != "ants" {
		t.Errorf("first checkpoint = %+v", first)
	}
	if last.step != 3250 {
		t.Errorf("last checkpoint step = %d", last.step)
	}
}

func TestRunPausedByHighway(t *testing.T) {
	sim := antsSim(t, "s8", true)

	res, err := Run(context.Background(), sim, nil, quietLogger(), Options{NoInitialCheckpoint: true})
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if res.Reason != ReasonPaused || res.Tick != 3405 || res.Highway != 3405 {
		t.Errorf("Run() = %+v", res)
	}
}

func TestRunMaxTicks(t *testing.T) {
	sim := antsSim(t, "4pix", true)
	rec := NewRecorder(nil, quietLogger())

	res, err := Run(context.Background(), sim, rec, quietLogger(), Options{MaxTicks: 100})
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if res.Reason != ReasonMaxTicks || res.Tick != 100 || res.Ticks() != 100 {
		t.Errorf("Run() = %+v", res)
	}
	if data, tick := rec.Last(); len(data) == 0 || tick != 0 {
		t.Errorf("Last() tick = %d, %d bytes", tick, len(data))
	}

	// Continue from where the first run stopped.
	res, err = Run(context.Background(), sim, rec, quietLogger(), Options{MaxTicks: 50, NoInitialCheckpoint: true})
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if res.Start != 100 || res.Tick != 150 {
		t.Errorf("second Run() = %+v", res)
	}
}

func TestRunExtinct(t *testing.T) {
	cfg := config.DefaultLifeConfig()
	cfg.Patterns = nil
	cfg.Cells = [][2]int{{0, 0}}
	sim := life.NewWithConfig(cfg)
	if err := sim.Reset(core.DefaultConfig()); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}

	res, err := Run(context.Background(), sim, nil, quietLogger(), Options{MaxTicks: 10})
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if res.Reason != ReasonExtinct || res.Tick != 1 || res.Population != 0 {
		t.Errorf("Run() = %+v", res)
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := Run(ctx, antsSim(t, "empty", false), nil, quietLogger(), Options{})
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if res.Reason != ReasonCanceled || res.Tick != 0 {
		t.Errorf("Run() = %+v", res)
	}
}

func TestRunStoreError(t *testing.T) {
	store := newMemStore()
	store.fail = errors.New("disk full")

	_, err := Run(context.Background(), antsSim(t, "empty", false), NewRecorder(store, quietLogger()), quietLogger(), Options{MaxTicks: 10})
	if !errors.Is(err, store.fail) {
		t.Errorf("Run() error = %v, want wrapped store error", err)
	}
}

func TestObserveManualCheckpoint(t *testing.T) {
	store := newMemStore()
	rec := NewRecorder(store, quietLogger())
	sim := antsSim(t, "1pix", false)

	in := core.NewInputFrame()
	in.Set(core.ActionCheckpoint)
	if err := rec.Observe(sim, sim.Step(in)); err != nil {
		t.Fatalf("Observe() failed: %v", err)
	}
	if len(store.checkpoints) != 1 || store.checkpoints[0].label != LabelManual || store.checkpoints[0].step != 1 {
		t.Errorf("checkpoints = %+v", store.checkpoints)
	}
}

func TestSurvey(t *testing.T) {
	store := newMemStore()
	results, err := Survey(context.Background(), []string{"s8", "1pix"}, 4000, 2, store, quietLogger())
	if err != nil {
		t.Fatalf("Survey() failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d", len(results))
	}

	s8, pix := results[0], results[1]
	if s8.Preset != "s8" || !s8.Detected() || s8.Highway != 3405 {
		t.Errorf("s8 = %+v", s8)
	}
	if pix.Preset != "1pix" || pix.Detected() || pix.Tick != 4000 {
		t.Errorf("1pix = %+v", pix)
	}
	if store.detections["s8"] != 3405 || len(store.checkpoints) != 0 {
		t.Errorf("store: detections=%v checkpoints=%d", store.detections, len(store.checkpoints))
	}
}

func TestSurveyUnknownPreset(t *testing.T) {
	if _, err := Survey(context.Background(), []string{"s8", "bogus"}, 10, 1, nil, quietLogger()); err == nil {
		t.Error("Survey() should reject unknown presets")
	}
}
