// Package sonar implements the drone: a point that travels in a straight
// line from the player and reports the side openings of every cell it passes.
package sonar

import (
	"errors"
	"fmt"

	"echomaze/pkg/engine/world"
	"echomaze/pkg/game/cue"
)

// ErrInvariantViolation is reported when a run exceeds its step cap. A
// straight path through a bounded maze always ends at a wall, so hitting
// the cap means the maze itself is broken.
var ErrInvariantViolation = errors.New("drone exceeded step cap")

// Run is one drone flight. It is advanced one cell per Next call and cannot
// be restarted.
type Run struct {
	maze  *world.Maze
	dir   world.Direction
	start world.Position
	cell  world.Position

	steps int
	limit int
	done  bool
	err   error
}

// Launch starts a drone at start travelling in dir. Nothing is emitted
// until the first Next call.
func Launch(m *world.Maze, start world.Position, dir world.Direction) (*Run, error) {
	if !dir.IsValid() {
		return nil, fmt.Errorf("%w: drone direction %d", world.ErrInvalidDirectionForContext, dir)
	}
	if !m.InBounds(start) {
		return nil, fmt.Errorf("%w: drone start %s", world.ErrOutOfBounds, start)
	}
	return &Run{
		maze:  m,
		dir:   dir,
		start: start,
		cell:  start,
		limit: m.Size(),
	}, nil
}

// Next emits the cues for the current cell and then advances. It returns
// false once the drone has stopped at a wall, been cancelled or hit the
// step cap. Each batch holds one or two cues.
func (r *Run) Next() ([]cue.Event, bool) {
	if r.done {
		return nil, false
	}
	if r.steps >= r.limit {
		r.err = fmt.Errorf("%w: %d steps from %s heading %s", ErrInvariantViolation, r.steps, r.start, r.dir)
		r.done = true
		return nil, false
	}

	batch := r.sides()
	r.steps++

	if r.maze.CanMove(r.cell, r.dir) {
		r.cell = r.cell.Step(r.dir)
	} else {
		r.done = true
	}

	return batch, true
}

// sides reports the walls either side of the current cell.
func (r *Run) sides() []cue.Event {
	left, right := r.dir.Anticlockwise(), r.dir.Clockwise()
	leftOpen := !r.maze.HasWall(r.cell, left)
	rightOpen := !r.maze.HasWall(r.cell, right)

	var out []cue.Event
	if leftOpen {
		out = append(out, cue.New(cue.PitchDown, r.cell, left))
	}
	if rightOpen {
		out = append(out, cue.New(cue.PitchUp, r.cell, right))
	}
	if len(out) == 0 {
		out = append(out, cue.New(cue.Beep, r.cell, r.dir))
	}
	return out
}

// Cancel stops the run; later Next calls return false.
func (r *Run) Cancel() {
	r.done = true
}

// Done reports whether the run has finished.
func (r *Run) Done() bool {
	return r.done
}

// Err returns ErrInvariantViolation if the run was cut off by the step cap.
func (r *Run) Err() error {
	return r.err
}

// Visited returns the number of cells the drone has reported on.
func (r *Run) Visited() int {
	return r.steps
}

// Direction returns the direction of travel.
func (r *Run) Direction() world.Direction {
	return r.dir
}

// Start returns the launch cell.
func (r *Run) Start() world.Position {
	return r.start
}

// Collect drains a run, returning one batch per visited cell.
func Collect(r *Run) ([][]cue.Event, error) {
	var batches [][]cue.Event
	for {
		batch, ok := r.Next()
		if !ok {
			break
		}
		batches = append(batches, batch)
	}
	return batches, r.Err()
}
