package world

import (
	"fmt"
	"math"
	"strings"

	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"
)

// Maze is a rectangular grid of cells. Walls are fixed once the maze has been
// built; every query returns copies.
type Maze struct {
	rows  int
	cols  int
	cells []Cell
}

// newClosedMaze allocates a maze with every wall present.
func newClosedMaze(width, height int) (*Maze, error) {
	if width <= 0 || height <= 0 || width > math.MaxInt/height {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	m := &Maze{
		rows:  height,
		cols:  width,
		cells: make([]Cell, width*height),
	}
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			m.cells[row*width+col] = Cell{
				Position: Position{Row: row, Col: col},
				walls:    [4]bool{true, true, true, true},
			}
		}
	}
	return m, nil
}

// Width returns the number of columns
func (m *Maze) Width() int {
	return m.cols
}

// Height returns the number of rows
func (m *Maze) Height() int {
	return m.rows
}

// Size returns the total number of cells.
func (m *Maze) Size() int {
	return m.rows * m.cols
}

// InBounds checks if a position is within the maze
func (m *Maze) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < m.rows && p.Col >= 0 && p.Col < m.cols
}

// Cell returns the cell at p. The second result is false when p is out of bounds.
func (m *Maze) Cell(p Position) (Cell, bool) {
	if !m.InBounds(p) {
		return Cell{}, false
	}
	return m.cells[p.Row*m.cols+p.Col], true
}

// HasWall reports whether the side of p facing d is walled. Positions
// outside the maze are solid.
func (m *Maze) HasWall(p Position, d Direction) bool {
	c, ok := m.Cell(p)
	if !ok {
		return true
	}
	return c.HasWall(d)
}

// Neighbor returns the adjacent position in direction d, ignoring walls.
func (m *Maze) Neighbor(p Position, d Direction) (Position, bool) {
	if !d.IsValid() {
		return p, false
	}
	n := p.Step(d)
	if !m.InBounds(n) {
		return p, false
	}
	return n, true
}

// CanMove reports whether there is an open passage from p towards d.
func (m *Maze) CanMove(p Position, d Direction) bool {
	if !d.IsValid() || m.HasWall(p, d) {
		return false
	}
	_, ok := m.Neighbor(p, d)
	return ok
}

// ForEachCell iterates over all cells in row-major order
func (m *Maze) ForEachCell(fn func(c Cell)) {
	for _, c := range m.cells {
		fn(c)
	}
}

// OpenPassages counts the open walls shared between two cells. Each passage
// is counted once.
func (m *Maze) OpenPassages() int {
	n := 0
	m.ForEachCell(func(c Cell) {
		if !c.HasWall(East) && c.Col+1 < m.cols {
			n++
		}
		if !c.HasWall(South) && c.Row+1 < m.rows {
			n++
		}
	})
	return n
}

// DeadEnds returns the positions of all cells with a single opening.
func (m *Maze) DeadEnds() []Position {
	var ends []Position
	m.ForEachCell(func(c Cell) {
		if c.IsDeadEnd() {
			ends = append(ends, c.Position)
		}
	})
	return ends
}

// Reachable returns the number of cells reachable from start through open passages.
func (m *Maze) Reachable(start Position) int {
	if !m.InBounds(start) {
		return 0
	}

	visited := mapset.New[Position]()
	q := queue.New[Position]()
	visited.Put(start)
	q.Enqueue(start)

	for !q.Empty() {
		cur := q.Dequeue()
		for _, d := range AllDirections() {
			if !m.CanMove(cur, d) {
				continue
			}
			next := cur.Step(d)
			if visited.Has(next) {
				continue
			}
			visited.Put(next)
			q.Enqueue(next)
		}
	}

	return visited.Size()
}

// Validate checks the maze invariants: every shared wall agrees on both sides,
// the outer boundary is closed, and every cell is reachable from (0,0).
func (m *Maze) Validate() error {
	if m.rows <= 0 || m.cols <= 0 {
		return ErrInvalidDimensions
	}

	for _, c := range m.cells {
		for _, d := range AllDirections() {
			n, ok := m.Neighbor(c.Position, d)
			if !ok {
				if !c.HasWall(d) {
					return fmt.Errorf("cell %v: open %s side on the boundary", c.Position, d)
				}
				continue
			}
			if c.HasWall(d) != m.HasWall(n, d.Opposite()) {
				return fmt.Errorf("cell %v: %s wall disagrees with neighbour %v", c.Position, d, n)
			}
		}
	}

	if reached := m.Reachable(Position{}); reached != m.Size() {
		return fmt.Errorf("only %d of %d cells reachable", reached, m.Size())
	}

	return nil
}

// String provides a textual representation of the maze.
func (m *Maze) String() string {
	var b strings.Builder

	// Top boundary
	b.WriteString("+" + strings.Repeat("---+", m.cols) + "\n")

	for row := 0; row < m.rows; row++ {
		b.WriteString("|")
		for col := 0; col < m.cols; col++ {
			if m.HasWall(Position{Row: row, Col: col}, East) {
				b.WriteString("   |")
			} else {
				b.WriteString("    ")
			}
		}
		b.WriteString("\n+")
		for col := 0; col < m.cols; col++ {
			if m.HasWall(Position{Row: row, Col: col}, South) {
				b.WriteString("---+")
			} else {
				b.WriteString("   +")
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}
