package conway

import (
	"bytes"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-automata/internal/core"
)

// SnapshotVersion is the current snapshot schema version.
const SnapshotVersion = 1

// Snapshot captures the population between generations.
type Snapshot struct {
	Version    int      `yaml:"version"`
	Generation uint64   `yaml:"generation"`
	Cells      [][2]int `yaml:"cells,flow"`
}

// Snapshot returns a copy of the current state with cells sorted.
func (l *Life) Snapshot() Snapshot {
	cells := l.live.Cells()
	out := make([][2]int, len(cells))
	for i, c := range cells {
		out[i] = [2]int{c.X, c.Y}
	}
	return Snapshot{Version: SnapshotVersion, Generation: l.generation, Cells: out}
}

// Restore builds a new Life from snap.
func Restore(snap Snapshot) (*Life, error) {
	if snap.Version != SnapshotVersion {
		return nil, errors.Wrapf(ErrCorruptSnapshot, "unsupported version %d", snap.Version)
	}
	board := core.NewBoard()
	for _, xy := range snap.Cells {
		c := core.C(xy[0], xy[1])
		if board.Has(c) {
			return nil, errors.Wrapf(ErrCorruptSnapshot, "duplicate cell %v", c)
		}
		board.Add(c)
	}
	l := FromBoard(board)
	l.generation = snap.Generation
	return l, nil
}

// Save encodes snap as YAML.
func Save(snap Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(snap); err != nil {
		return nil, errors.Wrap(err, "conway: encode snapshot")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "conway: encode snapshot")
	}
	return buf.Bytes(), nil
}

// Load decodes a blob produced by Save.
func Load(data []byte) (Snapshot, error) {
	var snap Snapshot
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&snap); err != nil {
		return Snapshot{}, errors.Wrapf(ErrCorruptSnapshot, "decode: %v", err)
	}
	if snap.Version != SnapshotVersion {
		return Snapshot{}, errors.Wrapf(ErrCorruptSnapshot, "unsupported version %d", snap.Version)
	}
	return snap, nil
}

// LoadLife decodes a blob and restores a Life from it.
func LoadLife(data []byte) (*Life, error) {
	snap, err := Load(data)
	if err != nil {
		return nil, err
	}
	return Restore(snap)
}
