package conway

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/vovakirdan/tui-automata/internal/core"
)

var (
	// ErrUnknownPattern is returned for pattern names not in the catalogue.
	ErrUnknownPattern = errors.New("conway: unknown pattern")

	// ErrCorruptSnapshot is returned when a snapshot blob cannot be restored.
	ErrCorruptSnapshot = errors.New("conway: corrupt snapshot")
)

func offsets(x, y int, rel ...[2]int) []core.Cell {
	out := make([]core.Cell, len(rel))
	for i, d := range rel {
		out[i] = core.C(x+d[0], y+d[1])
	}
	return out
}

// Block is a size x size square with its lower-left corner at (x, y).
// Size 2 is the classic still life.
func Block(x, y, size int) []core.Cell {
	out := make([]core.Cell, 0, size*size)
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			out = append(out, core.C(x+i, y+j))
		}
	}
	return out
}

// Blinker is a horizontal period-2 oscillator on row y+1.
func Blinker(x, y int) []core.Cell {
	return offsets(x, y, [2]int{0, 1}, [2]int{1, 1}, [2]int{2, 1})
}

// Beacon is two blocks touching at a corner.
func Beacon(x, y int) []core.Cell {
	return append(Block(x, y, 2), Block(x+2, y+2, 2)...)
}

// Toad is two offset blinkers.
func Toad(x, y int) []core.Cell {
	return append(Blinker(x, y), Blinker(x-1, y+1)...)
}

// Pentadecathlon is the period-15 oscillator in its 3x8 phase.
func Pentadecathlon(x, y int) []core.Cell {
	var out []core.Cell
	for i := 0; i < 3; i++ {
		for j := 0; j < 8; j++ {
			if i == 1 && (j == 1 || j == 6) {
				continue
			}
			out = append(out, core.C(x+i, y+j))
		}
	}
	return out
}

// RPentomino is the five-cell methuselah centred on (x, y).
func RPentomino(x, y int) []core.Cell {
	return offsets(x, y,
		[2]int{-1, 0}, [2]int{0, 0}, [2]int{0, 1}, [2]int{0, -1}, [2]int{1, -1})
}

// GosperGliderGun emits a glider every 30 generations.
func GosperGliderGun(x, y int) []core.Cell {
	out := Block(x, y, 2)
	out = append(out, Block(x+34, y-1, 2)...)
	out = append(out, offsets(x, y,
		[2]int{10, 0}, [2]int{10, 1}, [2]int{10, 2},
		[2]int{11, -1}, [2]int{11, 3},
		[2]int{12, -2}, [2]int{13, -2},
		[2]int{12, 4}, [2]int{13, 4},
		[2]int{14, 1},
		[2]int{15, -1}, [2]int{15, 3},
		[2]int{16, 0}, [2]int{16, 1}, [2]int{16, 2},
		[2]int{17, 1},
	)...)
	out = append(out, offsets(x, y,
		[2]int{20, -2}, [2]int{20, -1}, [2]int{20, 0},
		[2]int{21, -2}, [2]int{21, -1}, [2]int{21, 0},
		[2]int{22, -3}, [2]int{22, 1},
		[2]int{24, -3}, [2]int{24, -4},
		[2]int{24, 1}, [2]int{24, 2},
	)...)
	return out
}

var patterns = map[string]func(x, y int) []core.Cell{
	"block":          func(x, y int) []core.Cell { return Block(x, y, 2) },
	"blinker":        Blinker,
	"beacon":         Beacon,
	"toad":           Toad,
	"pentadecathlon": Pentadecathlon,
	"r-pentomino":    RPentomino,
	"glider-gun":     GosperGliderGun,
}

// Patterns returns the names accepted by Pattern, sorted.
func Patterns() []string {
	names := make([]string, 0, len(patterns))
	for name := range patterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Pattern builds a named pattern anchored at (x, y).
func Pattern(name string, x, y int) ([]core.Cell, error) {
	f, ok := patterns[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownPattern, "%q", name)
	}
	return f(x, y), nil
}
