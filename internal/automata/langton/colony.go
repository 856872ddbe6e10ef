package langton

import (
	"github.com/vovakirdan/tui-automata/internal/core"
)

// Colony owns a shared board and an ordered list of ants.
// Ants are advanced strictly in list order, each reading and then flipping
// the board before the next ant moves.
type Colony struct {
	board *core.Board
	ants  []*Ant
	tick  uint64
}

// NewColony creates a colony. A nil board means an empty one; no ants means
// a single DefaultAnt. The colony takes ownership of both.
func NewColony(board *core.Board, ants ...*Ant) *Colony {
	if board == nil {
		board = core.NewBoard()
	}
	if len(ants) == 0 {
		ants = []*Ant{DefaultAnt()}
	}
	return &Colony{board: board, ants: ants}
}

// Next advances every ant by one step.
func (c *Colony) Next() {
	for _, ant := range c.ants {
		p := ant.Pos
		color := White
		if c.board.Has(p) {
			color = Black
		}
		ant.Next(color)
		if color == White {
			c.board.Add(p)
		} else {
			c.board.Remove(p)
		}
	}
	c.tick++
}

// Board returns the shared board. Callers must treat it as read-only.
func (c *Colony) Board() *core.Board {
	return c.board
}

// Ants returns copies of the ants in turn order.
func (c *Colony) Ants() []Ant {
	out := make([]Ant, len(c.ants))
	for i, a := range c.ants {
		out[i] = *a
	}
	return out
}

// Ant returns a copy of the i-th ant.
func (c *Colony) Ant(i int) Ant {
	return *c.ants[i]
}

// Len returns the number of ants.
func (c *Colony) Len() int {
	return len(c.ants)
}

// Tick returns how many times Next has been applied.
func (c *Colony) Tick() uint64 {
	return c.tick
}
