package core

// AntView is the read-only projection of one ant.
type AntView struct {
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Heading   string `json:"heading"`
	Code      string `json:"code"`
	TurnRight bool   `json:"turn_right"`
}

// Frame is a between-ticks view of a simulation for external consumers.
type Frame struct {
	Sim        string    `json:"sim"`
	Tick       uint64    `json:"tick"`
	Population int       `json:"population"`
	Cells      [][2]int  `json:"cells"`
	Ants       []AntView `json:"ants,omitempty"`
	Bounds     *Bounds   `json:"bounds,omitempty"`
	Events     []Event   `json:"events,omitempty"`
	Status     string    `json:"status,omitempty"`
}

// CellPairs flattens cells into [x, y] pairs.
func CellPairs(cells []Cell) [][2]int {
	out := make([][2]int, len(cells))
	for i, c := range cells {
		out[i] = [2]int{c.X, c.Y}
	}
	return out
}
