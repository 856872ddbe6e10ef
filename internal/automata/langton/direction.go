// Package langton implements a multi-agent Langton's Ant on an unbounded
// lattice: ants, the colony that shares one board, named seed presets and the
// highway detector.
//
// Headings are exact quarter-turn codes; no floating point is involved.
package langton

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Direction is an ant heading in quarter turns counter-clockwise from +x.
type Direction uint8

const (
	Right Direction = iota // 0, moves (+1, 0)
	Up                     // 1, moves (0, +1)
	Left                   // 2, moves (-1, 0)
	Down                   // 3, moves (0, -1)
)

var directionNames = [4]string{"right", "up", "left", "down"}

var directionVectors = [4][2]int{
	{1, 0},
	{0, 1},
	{-1, 0},
	{0, -1},
}

// Valid reports whether d is one of the four cardinal headings.
func (d Direction) Valid() bool {
	return d <= Down
}

func (d Direction) mustValid() {
	if !d.Valid() {
		panic(fmt.Sprintf("langton: invalid direction %d", uint8(d)))
	}
}

// TurnLeft rotates the heading by +90 degrees.
func (d Direction) TurnLeft() Direction {
	d.mustValid()
	return (d + 1) % 4
}

// TurnRight rotates the heading by -90 degrees.
func (d Direction) TurnRight() Direction {
	d.mustValid()
	return (d + 3) % 4
}

// Vector returns the unit move for the heading.
func (d Direction) Vector() (dx, dy int) {
	d.mustValid()
	v := directionVectors[d]
	return v[0], v[1]
}

// Code returns the single-character heading code '0'..'3'.
func (d Direction) Code() byte {
	d.mustValid()
	return '0' + byte(d)
}

// String returns right, up, left or down.
func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
	return directionNames[d]
}

// ParseDirection accepts a heading name ("up") or code ("1").
func ParseDirection(s string) (Direction, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range directionNames {
		if s == name || (len(s) == 1 && s[0] == '0'+byte(i)) {
			return Direction(i), nil
		}
	}
	return 0, errors.Wrapf(ErrInvalidDirection, "parse %q", s)
}

// MarshalYAML encodes the heading by name.
func (d Direction) MarshalYAML() (any, error) {
	if !d.Valid() {
		return nil, errors.Wrapf(ErrInvalidDirection, "marshal %d", uint8(d))
	}
	return d.String(), nil
}

// UnmarshalYAML accepts anything ParseDirection does.
func (d *Direction) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseDirection(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
