package langton

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/vovakirdan/tui-automata/internal/core"
)

// Preset is a named, frozen colony seed.
type Preset struct {
	Name        string
	Description string
	Board       []core.Cell
	Ant         Ant
}

// Colony builds a fresh colony from the preset.
func (p Preset) Colony() *Colony {
	ant := p.Ant
	return NewColony(core.NewBoard(p.Board...), &ant)
}

// seedAnt is shared by every preset.
var seedAnt = Ant{Pos: core.C(50, 50), Heading: Up, TurnRight: true}

var presets = map[string]Preset{
	"empty": {
		Name:        "empty",
		Description: "single ant on a blank board",
	},
	"1pix": {
		Name:        "1pix",
		Description: "one black cell south-west of the ant",
		Board:       []core.Cell{{X: 45, Y: 45}},
	},
	"2pix": {
		Name:        "2pix",
		Description: "two black cells on the ant's diagonal",
		Board:       []core.Cell{{X: 45, Y: 45}, {X: 55, Y: 55}},
	},
	"4pix": {
		Name:        "4pix",
		Description: "four black cells at the corners of a 7x7 square",
		Board:       []core.Cell{{X: 47, Y: 47}, {X: 53, Y: 53}, {X: 47, Y: 53}, {X: 53, Y: 47}},
	},
	"s8": {
		Name:        "s8",
		Description: "eight black cells around a 7x7 square, reaches the highway",
		Board: []core.Cell{
			{X: 47, Y: 47}, {X: 47, Y: 50}, {X: 47, Y: 53},
			{X: 50, Y: 47}, {X: 50, Y: 53},
			{X: 53, Y: 47}, {X: 53, Y: 50}, {X: 53, Y: 53},
		},
	},
}

func init() {
	for name, p := range presets {
		p.Ant = seedAnt
		presets[name] = p
	}
}

// Presets returns the preset names, sorted.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupPreset returns the preset with the given name.
// The board slice is a copy the caller may modify.
func LookupPreset(name string) (Preset, error) {
	p, ok := presets[name]
	if !ok {
		return Preset{}, errors.Wrapf(ErrUnknownPreset, "%q", name)
	}
	p.Board = append([]core.Cell(nil), p.Board...)
	return p, nil
}

// NewColonyFromPreset builds a colony from a named preset.
func NewColonyFromPreset(name string) (*Colony, error) {
	p, err := LookupPreset(name)
	if err != nil {
		return nil, err
	}
	return p.Colony(), nil
}
