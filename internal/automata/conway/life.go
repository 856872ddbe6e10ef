// Package conway implements Conway's Game of Life on an unbounded lattice.
//
// The population is a sparse cell set. Births are searched only inside the
// current bounds grown by one cell, since a dead cell needs three live
// neighbours to be born.
package conway

import (
	"github.com/vovakirdan/tui-automata/internal/core"
)

// Life owns a live-cell set and its tight bounds.
type Life struct {
	live       *core.Board
	bounds     core.Bounds
	hasBounds  bool
	generation uint64
}

// DefaultSeed is the population used when New is called without cells.
func DefaultSeed() []core.Cell {
	return Block(0, 0, 2)
}

// New creates a Life seeded with cells, or DefaultSeed when none are given.
func New(cells ...core.Cell) *Life {
	if len(cells) == 0 {
		cells = DefaultSeed()
	}
	return FromBoard(core.NewBoard(cells...))
}

// FromBoard takes ownership of board as the live-cell set.
func FromBoard(board *core.Board) *Life {
	if board == nil {
		board = core.NewBoard()
	}
	l := &Life{live: board}
	l.recomputeBounds()
	return l
}

// Next advances the population by one generation. An empty population is
// left untouched and the generation counter does not move.
func (l *Life) Next() {
	if !l.hasBounds {
		return
	}

	var deaths, births []core.Cell

	l.live.Each(func(c core.Cell) {
		n := l.live.CountNeighbors(c)
		if n != 2 && n != 3 {
			deaths = append(deaths, c)
		}
	})

	scan := l.bounds.Expand(1)
	for y := scan.Min.Y; y <= scan.Max.Y; y++ {
		for x := scan.Min.X; x <= scan.Max.X; x++ {
			c := core.C(x, y)
			if l.live.Has(c) {
				continue
			}
			if l.live.CountNeighbors(c) == 3 {
				births = append(births, c)
			}
		}
	}

	for _, c := range deaths {
		l.live.Remove(c)
	}
	for _, c := range births {
		l.live.Add(c)
	}

	l.recomputeBounds()
	l.generation++
}

func (l *Life) recomputeBounds() {
	l.bounds, l.hasBounds = l.live.Bounds()
}

// Set makes c alive or dead between generations.
func (l *Life) Set(c core.Cell, alive bool) {
	switch {
	case alive && !l.live.Has(c):
		l.live.Add(c)
		if l.hasBounds {
			l.bounds = l.bounds.Extend(c)
		} else {
			l.bounds, l.hasBounds = core.BoundsOf(c), true
		}
	case !alive && l.live.Has(c):
		l.live.Remove(c)
		if c.X == l.bounds.Min.X || c.X == l.bounds.Max.X ||
			c.Y == l.bounds.Min.Y || c.Y == l.bounds.Max.Y {
			l.recomputeBounds()
		}
	}
}

// Insert makes every cell in cells alive.
func (l *Life) Insert(cells ...core.Cell) {
	for _, c := range cells {
		l.Set(c, true)
	}
}

// Alive reports whether c is alive.
func (l *Life) Alive(c core.Cell) bool {
	return l.live.Has(c)
}

// Cells returns the live cells sorted row-major.
func (l *Life) Cells() []core.Cell {
	return l.live.Cells()
}

// Board returns the live-cell set. Callers must treat it as read-only.
func (l *Life) Board() *core.Board {
	return l.live
}

// Population returns the number of live cells.
func (l *Life) Population() int {
	return l.live.Len()
}

// Bounds returns the tightest box around the live cells.
// The second result is false when the population is empty.
func (l *Life) Bounds() (core.Bounds, bool) {
	return l.bounds, l.hasBounds
}

// Generation returns how many generations have been computed.
func (l *Life) Generation() uint64 {
	return l.generation
}
