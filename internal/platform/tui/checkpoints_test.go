package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-automata/internal/storage"
)

type fakeCheckpointStore struct {
	rows    map[string][]storage.Checkpoint
	deleted []int64
}

func (f *fakeCheckpointStore) ListCheckpoints(simID string, _ int) ([]storage.Checkpoint, error) {
	return f.rows[simID], nil
}

func (f *fakeCheckpointStore) DeleteCheckpoint(id int64) error {
	f.deleted = append(f.deleted, id)
	rows := f.rows["ants"][:0]
	for _, c := range f.rows["ants"] {
		if c.ID != id {
			rows = append(rows, c)
		}
	}
	f.rows["ants"] = rows
	return nil
}

func newFakeCheckpointStore() *fakeCheckpointStore {
	now := time.Now()
	return &fakeCheckpointStore{rows: map[string][]storage.Checkpoint{
		"ants": {
			{ID: 7, SimID: "ants", Label: "manual", Step: 500, Size: 2048, CreatedAt: now},
			{ID: 3, SimID: "ants", Label: "auto", Step: 250, Size: 900, CreatedAt: now},
		},
	}}
}

func updateBrowser(t *testing.T, m CheckpointsModel, msg tea.Msg) CheckpointsModel {
	t.Helper()
	next, _ := m.Update(msg)
	b, ok := next.(CheckpointsModel)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return b
}

func TestCheckpointsBrowserResume(t *testing.T) {
	m := NewCheckpointsModel(newFakeCheckpointStore(), "ants", 100, 30)
	if len(m.table.Rows()) != 2 {
		t.Fatalf("rows = %d, want 2", len(m.table.Rows()))
	}

	m = updateBrowser(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	c := m.Chosen()
	if c == nil || c.ID != 7 || c.SimID != "ants" || c.Step != 500 {
		t.Errorf("Chosen() = %+v", c)
	}
}

func TestCheckpointsBrowserDelete(t *testing.T) {
	store := newFakeCheckpointStore()
	m := NewCheckpointsModel(store, "ants", 60, 30)

	m = updateBrowser(t, m, runeKey("d"))
	if len(store.deleted) != 1 || store.deleted[0] != 7 {
		t.Errorf("deleted = %v", store.deleted)
	}
	if len(m.table.Rows()) != 1 {
		t.Errorf("rows after delete = %d", len(m.table.Rows()))
	}

	m = updateBrowser(t, m, runeKey("b"))
	if !m.IsGoingBack() || m.Chosen() != nil {
		t.Error("b should go back without choosing")
	}
}

func TestCheckpointsBrowserWithoutStore(t *testing.T) {
	m := NewCheckpointsModel(nil, "", 80, 24)
	m = updateBrowser(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Chosen() != nil {
		t.Error("nothing to choose without a store")
	}
	if m.View() == "" {
		t.Error("browser should render a placeholder")
	}
}

func TestFormatSize(t *testing.T) {
	tests := map[int]string{
		512:     "512B",
		2048:    "2.0K",
		3 << 20: "3.0M",
	}
	for n, want := range tests {
		if got := formatSize(n); got != want {
			t.Errorf("formatSize(%d) = %q, want %q", n, got, want)
		}
	}
}
