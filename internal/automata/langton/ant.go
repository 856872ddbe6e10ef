package langton

import (
	"fmt"

	"github.com/vovakirdan/tui-automata/internal/core"
)

// Color is the state of the cell an ant stands on.
type Color bool

const (
	White Color = false
	Black Color = true
)

// String returns "white" or "black".
func (c Color) String() string {
	if c == Black {
		return "black"
	}
	return "white"
}

// Ant is a single mobile agent.
type Ant struct {
	Pos       core.Cell
	Heading   Direction
	TurnRight bool // true: white turns right, black turns left
}

// NewAnt creates an ant at (x, y) with the given heading and turn bias.
func NewAnt(x, y int, heading Direction, turnRight bool) *Ant {
	heading.mustValid()
	return &Ant{Pos: core.C(x, y), Heading: heading, TurnRight: turnRight}
}

// DefaultAnt is the canonical ant: origin, heading up, turning right on white.
func DefaultAnt() *Ant {
	return NewAnt(0, 0, Up, true)
}

// Next turns the ant a quarter turn according to the color under it and its
// bias, then moves one cell along the new heading.
func (a *Ant) Next(color Color) {
	// white & right-bias and black & left-bias both rotate clockwise
	if (color == White) == a.TurnRight {
		a.Heading = a.Heading.TurnRight()
	} else {
		a.Heading = a.Heading.TurnLeft()
	}
	dx, dy := a.Heading.Vector()
	a.Pos = a.Pos.Add(dx, dy)
}

// Code returns the heading code of the ant ('0'..'3').
func (a *Ant) Code() byte {
	return a.Heading.Code()
}

func (a *Ant) String() string {
	bias := "left"
	if a.TurnRight {
		bias = "right"
	}
	return fmt.Sprintf("Ant{%v %s white-turns-%s}", a.Pos, a.Heading, bias)
}
