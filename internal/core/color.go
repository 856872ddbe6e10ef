package core

// Color represents a foreground color for a screen cell.
// Values map to ANSI 256-color codes in the platform renderer.
type Color uint8

// Palette used by the automata renderers.
const (
	ColorDefault Color = iota
	ColorCell          // black/live lattice cell
	ColorAntRight      // ant that turns right on white
	ColorAntLeft       // ant that turns left on white
	ColorHUD           // status line
	ColorAlert         // highway detected, extinction
	ColorMuted         // help text, axes
)
