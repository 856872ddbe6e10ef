package langton

import (
	"testing"

	"github.com/vovakirdan/tui-automata/internal/core"
)

func TestAntRule(t *testing.T) {
	tests := []struct {
		name      string
		color     Color
		turnRight bool
		want      Direction
	}{
		{"white right-bias", White, true, Right},
		{"white left-bias", White, false, Left},
		{"black right-bias", Black, true, Left},
		{"black left-bias", Black, false, Right},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAnt(0, 0, Up, tt.turnRight)
			a.Next(tt.color)
			if a.Heading != tt.want {
				t.Errorf("heading = %v, expected %v", a.Heading, tt.want)
			}
			dx, dy := tt.want.Vector()
			if a.Pos != core.C(dx, dy) {
				t.Errorf("pos = %v, expected %v", a.Pos, core.C(dx, dy))
			}
		})
	}
}

func TestColonySingleTick(t *testing.T) {
	c := NewColony(nil, NewAnt(0, 0, Up, true))
	c.Next()

	if !c.Board().Equal(core.NewBoard(core.C(0, 0))) {
		t.Errorf("board = %v, expected [(0,0)]", c.Board().Cells())
	}
	ant := c.Ant(0)
	if ant.Heading != Right {
		t.Errorf("heading = %v, expected right", ant.Heading)
	}
	if ant.Pos != core.C(1, 0) {
		t.Errorf("pos = %v, expected (1,0)", ant.Pos)
	}
	if c.Tick() != 1 {
		t.Errorf("Tick() = %d, expected 1", c.Tick())
	}
}

func TestColonyDefaultAnt(t *testing.T) {
	c := NewColony(nil)
	if c.Len() != 1 {
		t.Fatalf("Len() = %d, expected 1", c.Len())
	}
	if got := c.Ant(0); got != *DefaultAnt() {
		t.Errorf("default ant = %v, expected %v", &got, DefaultAnt())
	}
}

func TestColonyFirstSquare(t *testing.T) {
	// The first four moves of a lone ant draw a 2x2 square and return home.
	c := NewColony(nil)
	var h History
	for i := 0; i < 4; i++ {
		c.Next()
		h.Append(c.Ant(0).Heading)
	}

	want := core.NewBoard(core.C(0, -1), core.C(0, 0), core.C(1, -1), core.C(1, 0))
	if !c.Board().Equal(want) {
		t.Errorf("board = %v, expected %v", c.Board().Cells(), want.Cells())
	}
	if h.String() != "0321" {
		t.Errorf("history = %q, expected %q", h.String(), "0321")
	}
	if ant := c.Ant(0); ant.Pos != core.C(0, 0) || ant.Heading != Up {
		t.Errorf("ant = %v, expected back at origin heading up", &ant)
	}
}

func TestColonyTwoAnts(t *testing.T) {
	c := NewColony(nil, NewAnt(0, 0, Up, true), NewAnt(2, 0, Down, false))
	for i := 0; i < 200; i++ {
		c.Next()
	}

	if c.Board().Len() != 62 {
		t.Errorf("population = %d, expected 62", c.Board().Len())
	}
	ants := c.Ants()
	if ants[0].Pos != core.C(-16, 14) || ants[0].Heading != Down {
		t.Errorf("ant 0 = %v, expected (-16,14) down", &ants[0])
	}
	if ants[1].Pos != core.C(-18, 14) || ants[1].Heading != Down {
		t.Errorf("ant 1 = %v, expected (-18,14) down", &ants[1])
	}
}

func TestColonyParity(t *testing.T) {
	initial := []core.Cell{core.C(1, 1), core.C(-2, 3), core.C(4, -1), core.C(0, 2)}
	c := NewColony(core.NewBoard(initial...),
		NewAnt(0, 0, Up, true),
		NewAnt(3, 3, Left, false),
		NewAnt(-2, 1, Down, true),
	)

	visits := make(map[core.Cell]int)
	for i := 0; i < 5000; i++ {
		for _, a := range c.Ants() {
			visits[a.Pos]++
		}
		c.Next()
	}

	start := core.NewBoard(initial...)
	touched := core.NewBoard()
	for cell := range visits {
		touched.Add(cell)
	}
	start.Each(touched.Add)
	c.Board().Each(touched.Add)

	touched.Each(func(cell core.Cell) {
		want := start.Has(cell) != (visits[cell]%2 == 1)
		if got := c.Board().Has(cell); got != want {
			t.Errorf("cell %v: present = %v, expected %v (visits %d)", cell, got, want, visits[cell])
		}
	})
}

func TestAntsReturnsCopies(t *testing.T) {
	c := NewColony(nil)
	ants := c.Ants()
	ants[0].Pos = core.C(99, 99)
	if c.Ant(0).Pos == core.C(99, 99) {
		t.Error("mutating Ants() result should not affect the colony")
	}
}
