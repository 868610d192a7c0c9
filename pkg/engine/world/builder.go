package world

import "fmt"

// Builder carves passages into a fully walled maze. It is the only way to
// remove walls; once Build is called the maze is sealed.
type Builder struct {
	maze   *Maze
	sealed bool
}

// NewBuilder creates a builder for a width x height maze with all walls present.
func NewBuilder(width, height int) (*Builder, error) {
	m, err := newClosedMaze(width, height)
	if err != nil {
		return nil, err
	}
	return &Builder{maze: m}, nil
}

// Width returns the number of columns of the maze under construction.
func (b *Builder) Width() int {
	return b.maze.cols
}

// Height returns the number of rows of the maze under construction.
func (b *Builder) Height() int {
	return b.maze.rows
}

// HasWall reports the current wall state while building.
func (b *Builder) HasWall(p Position, d Direction) bool {
	return b.maze.HasWall(p, d)
}

// Neighbor returns the in-bounds neighbour of p in direction d.
func (b *Builder) Neighbor(p Position, d Direction) (Position, bool) {
	return b.maze.Neighbor(p, d)
}

// Open removes the wall between p and its neighbour in direction d, on both
// sides, so shared walls always agree.
func (b *Builder) Open(p Position, d Direction) error {
	if b.sealed {
		return ErrBuilderSealed
	}
	if !d.IsValid() {
		return fmt.Errorf("%w: %d", ErrInvalidDirectionForContext, d)
	}
	if !b.maze.InBounds(p) {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, p)
	}
	n, ok := b.maze.Neighbor(p, d)
	if !ok {
		return fmt.Errorf("%w: %v %s", ErrBoundaryWall, p, d)
	}

	b.maze.cells[p.Row*b.maze.cols+p.Col].walls[d] = false
	b.maze.cells[n.Row*b.maze.cols+n.Col].walls[d.Opposite()] = false
	return nil
}

// Build seals the builder and returns the finished maze.
func (b *Builder) Build() *Maze {
	b.sealed = true
	return b.maze
}
