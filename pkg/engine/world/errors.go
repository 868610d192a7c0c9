package world

import "errors"

var (
	// ErrInvalidDimensions is returned when a maze is requested with a
	// non-positive width or height.
	ErrInvalidDimensions = errors.New("invalid maze dimensions")

	// ErrInvalidDirectionForContext is returned when an operation receives a
	// direction that is not one of the four cardinal directions, or one that
	// does not fit the slot it was given in.
	ErrInvalidDirectionForContext = errors.New("invalid direction for context")

	// ErrOutOfBounds is returned when a position lies outside the maze.
	ErrOutOfBounds = errors.New("position out of bounds")

	// ErrBoundaryWall is returned when a builder is asked to open an outer wall.
	ErrBoundaryWall = errors.New("cannot open boundary wall")

	// ErrBuilderSealed is returned when a builder is used after Build.
	ErrBuilderSealed = errors.New("maze builder already sealed")
)
