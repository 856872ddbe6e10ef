// Package sims holds the pieces shared by the simulation adapters: the
// lattice viewport, screen layout and periodic cadence.
package sims

import (
	"fmt"

	"github.com/vovakirdan/tui-automata/internal/core"
)

// CellWidth is the number of screen columns used per lattice cell, so cells
// look roughly square in a terminal.
const CellWidth = 2

// Glyphs used by the renderers.
const (
	GlyphCell = "██"
	GlyphAnt  = "@@"
)

// Layout splits the screen into a HUD row, the world area and a help row.
func Layout(w, h int) (hud int, world core.Rect, help int) {
	if h < 3 {
		return 0, core.NewRect(0, 0, w, max(h, 0)), h - 1
	}
	return 0, core.NewRect(0, 1, w, h-2), h - 1
}

// Canvas tracks where a sim draws on a screen of changing size.
type Canvas struct {
	HUD  int
	Help int
	View *Viewport
}

// Fit lays the canvas out for a w x h screen. An existing viewport keeps its
// centre.
func (c *Canvas) Fit(w, h int) {
	hud, world, help := Layout(w, h)
	c.HUD, c.Help = hud, help
	if c.View == nil {
		c.View = NewViewport(world)
		return
	}
	if c.View.Area() != world {
		c.View.SetArea(world)
	}
}

// Recenter makes the next Follow centre on its target.
func (c *Canvas) Recenter() {
	if c.View != nil {
		c.View.placed = false
	}
}

// Viewport maps lattice cells onto a screen region. Lattice y grows down the
// screen.
type Viewport struct {
	origin core.Cell // Lattice cell drawn at the top-left of the area
	area   core.Rect
	placed bool
}

// NewViewport creates a viewport drawing into area.
func NewViewport(area core.Rect) *Viewport {
	return &Viewport{area: area}
}

// SetArea changes the screen region, keeping the current centre.
func (v *Viewport) SetArea(area core.Rect) {
	center := v.Visible().Center()
	v.area = area
	if v.placed {
		v.CenterOn(center)
	}
}

// Area returns the screen region.
func (v *Viewport) Area() core.Rect {
	return v.area
}

// Cols returns the number of lattice columns visible.
func (v *Viewport) Cols() int {
	return v.area.W / CellWidth
}

// Rows returns the number of lattice rows visible.
func (v *Viewport) Rows() int {
	return v.area.H
}

// CenterOn places c in the middle of the area.
func (v *Viewport) CenterOn(c core.Cell) {
	v.origin = core.C(c.X-v.Cols()/2, c.Y-v.Rows()/2)
	v.placed = true
}

// Follow recentres on c when it comes within margin cells of an edge.
func (v *Viewport) Follow(c core.Cell, margin int) {
	if !v.placed {
		v.CenterOn(c)
		return
	}
	inner := v.Visible()
	m := min(margin, (v.Cols()-1)/2, (v.Rows()-1)/2)
	if m > 0 {
		inner = core.Bounds{
			Min: inner.Min.Add(m, m),
			Max: inner.Max.Add(-m, -m),
		}
	}
	if !inner.Contains(c) {
		v.CenterOn(c)
	}
}

// Visible returns the lattice box currently shown.
func (v *Viewport) Visible() core.Bounds {
	return core.Bounds{
		Min: v.origin,
		Max: v.origin.Add(v.Cols()-1, v.Rows()-1),
	}
}

// Project returns the screen position of the left column of c.
func (v *Viewport) Project(c core.Cell) (x, y int, ok bool) {
	dx, dy := c.X-v.origin.X, c.Y-v.origin.Y
	if dx < 0 || dy < 0 || dx >= v.Cols() || dy >= v.Rows() {
		return 0, 0, false
	}
	return v.area.X + dx*CellWidth, v.area.Y + dy, true
}

// DrawCell draws a two-column glyph at c if it is visible.
func (v *Viewport) DrawCell(dst *core.Screen, c core.Cell, glyph string, color core.Color) {
	if x, y, ok := v.Project(c); ok {
		dst.DrawTextColored(x, y, glyph, color)
	}
}

// DrawBoard draws every visible cell of b.
func (v *Viewport) DrawBoard(dst *core.Screen, b *core.Board, color core.Color) {
	vis := v.Visible()
	if b.Len() > vis.Width()*vis.Height() {
		// Denser than the window: scan the window instead of the board.
		for y := vis.Min.Y; y <= vis.Max.Y; y++ {
			for x := vis.Min.X; x <= vis.Max.X; x++ {
				if c := core.C(x, y); b.Has(c) {
					v.DrawCell(dst, c, GlyphCell, color)
				}
			}
		}
		return
	}
	b.Each(func(c core.Cell) {
		v.DrawCell(dst, c, GlyphCell, color)
	})
}

// DrawHUD writes the status line for a sim.
func DrawHUD(dst *core.Screen, row int, title string, st core.SimState) {
	state := "running"
	switch {
	case st.Halted:
		state = "halted"
	case st.Paused:
		state = "paused"
	}
	line := fmt.Sprintf(" %s | tick %d | pop %d | %s", title, st.Tick, st.Population, state)
	color := core.ColorHUD
	if st.Status != "" {
		line += " | " + st.Status
		color = core.ColorAlert
	}
	dst.DrawTextColored(0, row, line, color)
}

// Cadence decides when periodic work is due.
type Cadence struct {
	Every uint64 // 0 disables
}

// Due reports whether tick falls on the cadence.
func (c Cadence) Due(tick uint64) bool {
	return c.Every > 0 && tick%c.Every == 0
}
