package registry

import (
	"testing"

	"github.com/vovakirdan/tui-automata/internal/core"
)

type fakeSim struct{ id string }

func (f *fakeSim) ID() string                           { return f.id }
func (f *fakeSim) Title() string                        { return "Fake " + f.id }
func (f *fakeSim) Reset(core.RuntimeConfig) error       { return nil }
func (f *fakeSim) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (f *fakeSim) Render(*core.Screen)                  {}
func (f *fakeSim) State() core.SimState                 { return core.SimState{} }
func (f *fakeSim) Frame() core.Frame                    { return core.Frame{Sim: f.id} }
func (f *fakeSim) Checkpoint() ([]byte, error)          { return nil, nil }
func (f *fakeSim) Restore([]byte) error                 { return nil }

func TestRegisterAndCreate(t *testing.T) {
	Register("zz-fake", func() Sim { return &fakeSim{id: "zz-fake"} })
	Register("aa-fake", func() Sim { return &fakeSim{id: "aa-fake"} })

	if !Exists("zz-fake") {
		t.Fatal("Exists() should report registered sim")
	}

	s, err := Create("aa-fake")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if s.ID() != "aa-fake" {
		t.Errorf("ID() = %q", s.ID())
	}

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID > list[i].ID {
			t.Errorf("List() not sorted: %v", list)
		}
	}
	found := false
	for _, info := range list {
		if info.ID == "zz-fake" && info.Title == "Fake zz-fake" {
			found = true
		}
	}
	if !found {
		t.Errorf("List() missing zz-fake: %v", list)
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("no-such-sim"); err == nil {
		t.Error("Create() should fail for unknown IDs")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("dup-fake", func() Sim { return &fakeSim{id: "dup-fake"} })
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register() should panic")
		}
	}()
	Register("dup-fake", func() Sim { return &fakeSim{id: "dup-fake"} })
}
