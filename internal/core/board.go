package core

import (
	"fmt"
	"sort"
)

// Board is a sparse set of cells on the unbounded lattice.
// Membership is the only source of truth: a present cell is black (ants) or
// alive (life), an absent cell is white or dead.
type Board struct {
	cells map[Cell]struct{}
}

// NewBoard creates a board holding the given cells. Duplicates collapse.
func NewBoard(cells ...Cell) *Board {
	b := &Board{cells: make(map[Cell]struct{}, len(cells))}
	for _, c := range cells {
		b.cells[c] = struct{}{}
	}
	return b
}

// Has reports whether c is on the board.
func (b *Board) Has(c Cell) bool {
	_, ok := b.cells[c]
	return ok
}

// Add inserts c. Adding a present cell is a no-op.
func (b *Board) Add(c Cell) {
	b.cells[c] = struct{}{}
}

// Remove deletes c from the board.
// The cell must be present; removing an absent cell means the caller's view
// of the board is wrong, so it panics instead of silently continuing.
func (b *Board) Remove(c Cell) {
	if _, ok := b.cells[c]; !ok {
		panic(fmt.Sprintf("core: remove of absent cell %v", c))
	}
	delete(b.cells, c)
}

// Flip toggles c and reports whether it is present afterwards.
func (b *Board) Flip(c Cell) bool {
	if b.Has(c) {
		b.Remove(c)
		return false
	}
	b.Add(c)
	return true
}

// Len returns the number of cells on the board.
func (b *Board) Len() int {
	return len(b.cells)
}

// Each calls fn for every cell, in no particular order.
func (b *Board) Each(fn func(Cell)) {
	for c := range b.cells {
		fn(c)
	}
}

// Cells returns the board contents sorted row-major, for deterministic output.
func (b *Board) Cells() []Cell {
	out := make([]Cell, 0, len(b.cells))
	for c := range b.cells {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	out := &Board{cells: make(map[Cell]struct{}, len(b.cells))}
	for c := range b.cells {
		out.cells[c] = struct{}{}
	}
	return out
}

// Equal reports whether both boards hold exactly the same cells.
func (b *Board) Equal(o *Board) bool {
	if b.Len() != o.Len() {
		return false
	}
	for c := range b.cells {
		if !o.Has(c) {
			return false
		}
	}
	return true
}

// Bounds returns the tightest box around all cells.
// The second result is false when the board is empty.
func (b *Board) Bounds() (Bounds, bool) {
	var (
		bounds Bounds
		ok     bool
	)
	for c := range b.cells {
		if !ok {
			bounds, ok = BoundsOf(c), true
			continue
		}
		bounds = bounds.Extend(c)
	}
	return bounds, ok
}

// CountNeighbors counts present cells in the Moore neighbourhood of c.
func (b *Board) CountNeighbors(c Cell) int {
	count := 0
	for _, n := range c.Neighbors() {
		if b.Has(n) {
			count++
		}
	}
	return count
}
