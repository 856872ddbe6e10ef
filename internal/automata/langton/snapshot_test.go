package langton

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-automata/internal/core"
)

func TestPresetsCatalogue(t *testing.T) {
	want := []string{"1pix", "2pix", "4pix", "empty", "s8"}
	got := Presets()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("Presets() = %v, expected %v", got, want)
	}

	sizes := map[string]int{"empty": 0, "1pix": 1, "2pix": 2, "4pix": 4, "s8": 8}
	for name, n := range sizes {
		p, err := LookupPreset(name)
		if err != nil {
			t.Fatalf("LookupPreset(%q): %v", name, err)
		}
		if len(p.Board) != n {
			t.Errorf("%s: %d cells, expected %d", name, len(p.Board), n)
		}
		if p.Ant != (Ant{Pos: core.C(50, 50), Heading: Up, TurnRight: true}) {
			t.Errorf("%s: ant = %v", name, &p.Ant)
		}
	}
}

func TestLookupPresetCopiesBoard(t *testing.T) {
	p, _ := LookupPreset("s8")
	p.Board[0] = core.C(0, 0)

	again, _ := LookupPreset("s8")
	if again.Board[0] != core.C(47, 47) {
		t.Error("LookupPreset should not expose the frozen seed")
	}
}

func TestUnknownPreset(t *testing.T) {
	_, err := NewColonyFromPreset("s9")
	if !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("error = %v, expected ErrUnknownPreset", err)
	}
}

func TestPreset4pixAfter100(t *testing.T) {
	c, h, _ := runPreset(t, "4pix", 100)

	want := core.NewBoard(
		core.C(47, 47), core.C(47, 48), core.C(47, 49), core.C(47, 53),
		core.C(48, 47), core.C(48, 50), core.C(49, 46), core.C(49, 50),
		core.C(49, 51), core.C(49, 53), core.C(50, 46), core.C(50, 48),
		core.C(50, 49), core.C(50, 50), core.C(50, 52), core.C(50, 54),
		core.C(51, 47), core.C(51, 54), core.C(52, 50), core.C(52, 53),
		core.C(53, 47), core.C(53, 51), core.C(53, 52), core.C(53, 53),
	)
	if !c.Board().Equal(want) {
		t.Errorf("board = %v\nexpected %v", c.Board().Cells(), want.Cells())
	}
	if ant := c.Ant(0); ant.Pos != core.C(50, 52) || ant.Heading != Up {
		t.Errorf("ant = %v, expected (50,52) up", &ant)
	}
	if got := h.String()[90:]; got != "2323032101" {
		t.Errorf("last headings = %q, expected %q", got, "2323032101")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	c, _, _ := runPreset(t, "4pix", 100)
	c.ants = append(c.ants, NewAnt(-3, 7, Left, false))

	data, err := Save(c.Snapshot())
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	restored, err := LoadColony(data)
	if err != nil {
		t.Fatalf("LoadColony: %v", err)
	}

	if !restored.Board().Equal(c.Board()) {
		t.Error("board mismatch after round trip")
	}
	if restored.Tick() != 100 {
		t.Errorf("Tick() = %d, expected 100", restored.Tick())
	}
	got, want := restored.Ants(), c.Ants()
	if len(got) != len(want) {
		t.Fatalf("ants = %d, expected %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ant %d = %v, expected %v", i, &got[i], &want[i])
		}
	}

	// Both colonies keep evolving identically.
	for i := 0; i < 50; i++ {
		c.Next()
		restored.Next()
	}
	if !restored.Board().Equal(c.Board()) || restored.Ant(0) != c.Ant(0) {
		t.Error("restored colony diverged")
	}
}

func TestSnapshotIsolated(t *testing.T) {
	c := NewColony(core.NewBoard(core.C(1, 1)))
	snap := c.Snapshot()
	c.Next()

	if len(snap.Board) != 1 || snap.Step != 0 {
		t.Errorf("snapshot changed after Next(): %+v", snap)
	}
}

func TestLoadCorrupt(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"garbage", "\x00\x01not yaml: ["},
		{"wrong version", "version: 9\nstep: 1\nants: [{x: 0, y: 0, heading: up, turn_right: true}]\n"},
		{"bad heading", "version: 1\nstep: 1\nants: [{x: 0, y: 0, heading: sideways, turn_right: true}]\n"},
		{"unknown field", "version: 1\nstep: 1\nfood: 3\nants: [{x: 0, y: 0, heading: up, turn_right: true}]\n"},
		{"no ants", "version: 1\nstep: 1\nboard: [[0, 0]]\n"},
		{"duplicate cell", "version: 1\nstep: 1\nboard: [[0, 0], [0, 0]]\nants: [{x: 0, y: 0, heading: up, turn_right: true}]\n"},
		{"short cell", "version: 1\nstep: 1\nboard: [[0]]\nants: [{x: 0, y: 0, heading: up, turn_right: true}]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := LoadColony([]byte(tt.data))
			if !errors.Is(err, ErrCorruptSnapshot) {
				t.Errorf("error = %v, expected ErrCorruptSnapshot", err)
			}
			if c != nil {
				t.Error("no colony should be returned on error")
			}
		})
	}
}
