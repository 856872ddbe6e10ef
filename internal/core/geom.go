// Package core provides fundamental types shared by the automata engines and
// the terminal platform. It has no external dependencies so that engine code
// stays pure and testable.
package core

import "fmt"

// Cell identifies a point on the unbounded integer lattice.
// Cells are comparable values and can be used directly as map keys.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// C is shorthand for constructing a Cell.
func C(x, y int) Cell {
	return Cell{X: x, Y: y}
}

// Add returns the cell translated by (dx, dy).
func (c Cell) Add(dx, dy int) Cell {
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

// Less orders cells by Y, then X (row-major).
func (c Cell) Less(o Cell) bool {
	if c.Y != o.Y {
		return c.Y < o.Y
	}
	return c.X < o.X
}

// String formats the cell as "(x,y)".
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// neighborOffsets lists the Moore neighbourhood, excluding the centre.
var neighborOffsets = [8]Cell{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Neighbors returns the 8 cells adjacent to c.
func (c Cell) Neighbors() [8]Cell {
	var out [8]Cell
	for i, o := range neighborOffsets {
		out[i] = c.Add(o.X, o.Y)
	}
	return out
}

// Bounds is an inclusive axis-aligned box on the lattice.
type Bounds struct {
	Min Cell `json:"min"`
	Max Cell `json:"max"`
}

// BoundsOf returns the tightest box around a single cell.
func BoundsOf(c Cell) Bounds {
	return Bounds{Min: c, Max: c}
}

// Extend returns the smallest box containing both b and c.
func (b Bounds) Extend(c Cell) Bounds {
	return Bounds{
		Min: Cell{X: min(b.Min.X, c.X), Y: min(b.Min.Y, c.Y)},
		Max: Cell{X: max(b.Max.X, c.X), Y: max(b.Max.Y, c.Y)},
	}
}

// Expand grows the box by n cells in every direction.
func (b Bounds) Expand(n int) Bounds {
	return Bounds{Min: b.Min.Add(-n, -n), Max: b.Max.Add(n, n)}
}

// Contains reports whether c lies inside the box (inclusive).
func (b Bounds) Contains(c Cell) bool {
	return c.X >= b.Min.X && c.X <= b.Max.X && c.Y >= b.Min.Y && c.Y <= b.Max.Y
}

// Width returns the number of columns covered.
func (b Bounds) Width() int {
	return b.Max.X - b.Min.X + 1
}

// Height returns the number of rows covered.
func (b Bounds) Height() int {
	return b.Max.Y - b.Min.Y + 1
}

// Center returns the (rounded down) middle cell of the box.
func (b Bounds) Center() Cell {
	return Cell{X: floorDiv(b.Min.X+b.Max.X, 2), Y: floorDiv(b.Min.Y+b.Max.Y, 2)}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Rect represents a screen-space rectangle used by the renderers.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
