package langton

import (
	"bytes"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-automata/internal/core"
)

// SnapshotVersion is the current snapshot schema version.
const SnapshotVersion = 1

// AntState is the serialisable form of an Ant.
type AntState struct {
	X         int       `yaml:"x"`
	Y         int       `yaml:"y"`
	Heading   Direction `yaml:"heading"`
	TurnRight bool      `yaml:"turn_right"`
}

// Snapshot captures the complete colony state between ticks.
type Snapshot struct {
	Version int        `yaml:"version"`
	Step    uint64     `yaml:"step"`
	Board   [][2]int   `yaml:"board,flow"`
	Ants    []AntState `yaml:"ants"`
}

// Snapshot returns a consistent copy of the colony state.
// Board cells are emitted sorted so equal colonies produce equal snapshots.
func (c *Colony) Snapshot() Snapshot {
	cells := c.board.Cells()
	board := make([][2]int, len(cells))
	for i, cell := range cells {
		board[i] = [2]int{cell.X, cell.Y}
	}
	ants := make([]AntState, len(c.ants))
	for i, a := range c.ants {
		ants[i] = AntState{X: a.Pos.X, Y: a.Pos.Y, Heading: a.Heading, TurnRight: a.TurnRight}
	}
	return Snapshot{
		Version: SnapshotVersion,
		Step:    c.tick,
		Board:   board,
		Ants:    ants,
	}
}

// Restore builds a new colony from snap. Nothing is shared with snap.
func Restore(snap Snapshot) (*Colony, error) {
	if snap.Version != SnapshotVersion {
		return nil, errors.Wrapf(ErrCorruptSnapshot, "unsupported version %d", snap.Version)
	}
	if len(snap.Ants) == 0 {
		return nil, errors.Wrap(ErrCorruptSnapshot, "no ants")
	}
	board := core.NewBoard()
	for _, xy := range snap.Board {
		cell := core.C(xy[0], xy[1])
		if board.Has(cell) {
			return nil, errors.Wrapf(ErrCorruptSnapshot, "duplicate cell %v", cell)
		}
		board.Add(cell)
	}
	ants := make([]*Ant, len(snap.Ants))
	for i, s := range snap.Ants {
		if !s.Heading.Valid() {
			return nil, errors.Wrapf(ErrCorruptSnapshot, "ant %d: invalid heading %d", i, uint8(s.Heading))
		}
		ants[i] = NewAnt(s.X, s.Y, s.Heading, s.TurnRight)
	}
	c := NewColony(board, ants...)
	c.tick = snap.Step
	return c, nil
}

// Save encodes snap as YAML.
func Save(snap Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(snap); err != nil {
		return nil, errors.Wrap(err, "langton: encode snapshot")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "langton: encode snapshot")
	}
	return buf.Bytes(), nil
}

// Load decodes a blob produced by Save. Unknown fields are rejected.
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

// LoadColony decodes a blob and restores a colony from it.
func LoadColony(data []byte) (*Colony, error) {
	snap, err := Load(data)
	if err != nil {
		return nil, err
	}
	return Restore(snap)
}
