// Package world provides the grid maze primitives the rest of the game queries:
// directions, positions, cells with per-side walls, and the immutable Maze.
package world

import "fmt"

// Position is a (row, col) coordinate in the grid. Row 0 is the top row.
type Position struct {
	Row int
	Col int
}

// Step returns the position one cell away in the given direction.
// Invalid directions return p unchanged.
func (p Position) Step(d Direction) Position {
	rowDelta, colDelta := d.Delta()
	return Position{Row: p.Row + rowDelta, Col: p.Col + colDelta}
}

// String formats the position as "(row,col)".
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Cell represents a single cell in the maze with a wall flag per side.
// Cells are handed out by value so callers cannot alter the maze.
type Cell struct {
	Position

	walls [4]bool
}

// HasWall reports whether the side facing d is walled. Invalid directions
// are treated as walls.
func (c Cell) HasWall(d Direction) bool {
	if !d.IsValid() {
		return true
	}
	return c.walls[d]
}

// Openings returns the number of open sides.
func (c Cell) Openings() int {
	n := 0
	for _, w := range c.walls {
		if !w {
			n++
		}
	}
	return n
}

// IsDeadEnd returns true if exactly one side is open.
func (c Cell) IsDeadEnd() bool {
	return c.Openings() == 1
}
