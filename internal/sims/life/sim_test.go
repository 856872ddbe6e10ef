package life

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-automata/internal/config"
	"github.com/vovakirdan/tui-automata/internal/core"
)

func newSim(t *testing.T, cfg config.LifeConfig) *Sim {
	t.Helper()
	s := NewWithConfig(cfg)
	if err := s.Reset(core.DefaultConfig()); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}
	return s
}

func withPatterns(ps ...config.PatternConfig) config.LifeConfig {
	cfg := config.DefaultLifeConfig()
	cfg.Patterns = ps
	return cfg
}

func TestBuildLifeDefaultSeed(t *testing.T) {
	l, err := BuildLife(config.LifeConfig{})
	if err != nil {
		t.Fatalf("BuildLife() failed: %v", err)
	}
	if l.Population() != 4 {
		t.Errorf("Population() = %d, want the 2x2 block", l.Population())
	}
}

func TestBuildLifePatternsAndCells(t *testing.T) {
	cfg := config.LifeConfig{
		Patterns: []config.PatternConfig{
			{Name: "blinker", X: 0, Y: 0},
			{Name: "block", X: 10, Y: 10},
		},
		Cells: [][2]int{{-20, -20}},
	}
	l, err := BuildLife(cfg)
	if err != nil {
		t.Fatalf("BuildLife() failed: %v", err)
	}
	if l.Population() != 8 {
		t.Errorf("Population() = %d, want 8", l.Population())
	}
	if !l.Alive(core.C(-20, -20)) || !l.Alive(core.C(11, 11)) {
		t.Error("configured cells missing")
	}

	cfg.Patterns[0].Name = "spaceship"
	if _, err := BuildLife(cfg); err == nil {
		t.Error("BuildLife() should reject unknown patterns")
	}
}

func TestExtinctHalts(t *testing.T) {
	cfg := withPatterns()
	cfg.Cells = [][2]int{{0, 0}, {5, 5}}
	s := newSim(t, cfg)

	res := s.Step(core.NewInputFrame())
	if !res.Has(core.EventExtinct) || !res.State.Halted {
		t.Fatalf("lone cells should die out: %+v", res)
	}
	if res.State.Status != "extinct" {
		t.Errorf("Status = %q", res.State.Status)
	}

	res = s.Step(core.NewInputFrame())
	if res.Advanced || res.Has(core.EventExtinct) {
		t.Error("extinct sim must not advance or repeat the event")
	}
	if res.State.Tick != 1 {
		t.Errorf("Tick = %d, want 1", res.State.Tick)
	}
}

func TestCheckpointCadence(t *testing.T) {
	cfg := withPatterns(config.PatternConfig{Name: "blinker"})
	cfg.Run.CheckpointEvery = 10
	s := newSim(t, cfg)

	var dues []uint64
	for i := 0; i < 35; i++ {
		if res := s.Step(core.NewInputFrame()); res.Has(core.EventCheckpointDue) {
			dues = append(dues, res.State.Tick)
		}
	}
	if len(dues) != 3 || dues[0] != 10 || dues[2] != 30 {
		t.Errorf("checkpoint ticks = %v", dues)
	}
}

func TestCheckpointRestore(t *testing.T) {
	s := newSim(t, withPatterns(config.PatternConfig{Name: "r-pentomino"}))
	for i := 0; i < 40; i++ {
		s.Step(core.NewInputFrame())
	}
	data, err := s.Checkpoint()
	if err != nil {
		t.Fatalf("Checkpoint() failed: %v", err)
	}
	want := s.Life().Board().Clone()

	for i := 0; i < 10; i++ {
		s.Step(core.NewInputFrame())
	}
	if err := s.Restore(data); err != nil {
		t.Fatalf("Restore() failed: %v", err)
	}
	if s.State().Tick != 40 || !s.Life().Board().Equal(want) {
		t.Errorf("restore mismatch at tick %d", s.State().Tick)
	}
	if err := s.Restore(nil); err == nil {
		t.Error("Restore() should reject an empty checkpoint")
	}
	if s.State().Tick != 40 {
		t.Error("failed restore changed the running state")
	}
}

func TestRenderAndFrame(t *testing.T) {
	s := newSim(t, withPatterns(config.PatternConfig{Name: "blinker"}))
	s.Step(core.NewInputFrame())

	scr := core.NewScreen(80, 24)
	s.Render(scr)
	if !strings.Contains(scr.Row(0), "Game of Life") {
		t.Errorf("HUD row = %q", scr.Row(0))
	}
	if !strings.Contains(scr.String(), "██") {
		t.Error("cells not drawn")
	}

	f := s.Frame()
	if f.Sim != "life" || f.Tick != 1 || f.Population != 3 || f.Bounds == nil {
		t.Errorf("Frame() = %+v", f)
	}
}

func TestRestoreClearsPause(t *testing.T) {
	s := newSim(t, withPatterns(config.PatternConfig{Name: "r-pentomino"}))
	for i := 0; i < 5; i++ {
		s.Step(core.NewInputFrame())
	}
	data, err := s.Checkpoint()
	if err != nil {
		t.Fatalf("Checkpoint() failed: %v", err)
	}
	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	s.Step(pause)
	if !s.State().Paused {
		t.Fatal("sim should be paused")
	}

	if err := s.Restore(data); err != nil {
		t.Fatalf("Restore() failed: %v", err)
	}
	if s.State().Paused {
		t.Error("restored sim is still paused")
	}
	if res := s.Step(core.NewInputFrame()); !res.Advanced || res.State.Tick != 6 {
		t.Errorf("step after restore: advanced=%v tick=%d", res.Advanced, res.State.Tick)
	}
}
