package tui

import "echomaze/pkg/engine/world"

// Cursor selects a cell on the end-of-round map. It moves freely through
// walls and stops at the maze edge.
type Cursor struct {
	pos    world.Position
	width  int
	height int
}

// NewCursor places a cursor in the middle of m.
func NewCursor(m *world.Maze) *Cursor {
	return &Cursor{
		pos:    world.Position{Row: m.Height() / 2, Col: m.Width() / 2},
		width:  m.Width(),
		height: m.Height(),
	}
}

// Move shifts the cursor one cell, if that stays on the map.
func (c *Cursor) Move(d world.Direction) {
	if !d.IsValid() {
		return
	}
	next := c.pos.Step(d)
	if next.Row < 0 || next.Row >= c.height || next.Col < 0 || next.Col >= c.width {
		return
	}
	c.pos = next
}

// Position returns the selected cell.
func (c *Cursor) Position() world.Position {
	return c.pos
}
