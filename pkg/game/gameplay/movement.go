// Package gameplay provides core game logic for player movement and wall probing.
package gameplay

import (
	"errors"
	"fmt"

	"echomaze/pkg/engine/world"
	"echomaze/pkg/game/cue"
	"echomaze/pkg/game/state"
)

// Outcome reports whether a move changed the player's cell
type Outcome int

// Move outcomes
const (
	Blocked Outcome = iota
	Moved
)

// String returns the outcome name
func (o Outcome) String() string {
	if o == Moved {
		return "moved"
	}
	return "blocked"
}

// MoveResult describes one resolved move attempt.
type MoveResult struct {
	Outcome   Outcome
	Direction world.Direction
	From      world.Position
	To        world.Position

	// Cues is empty for a blocked move: silence is the signal.
	Cues []cue.Event
}

// AttemptMove moves the player one cell in dir if no wall is in the way.
// A move East or West clicks, North or South whooshes. After a successful
// move a marker on the new cell is recalled. Walls are never changed.
func AttemptMove(m *world.Maze, p *state.Player, dir world.Direction) MoveResult {
	res := MoveResult{
		Outcome:   Blocked,
		Direction: dir,
		From:      p.Cell,
		To:        p.Cell,
	}

	if !m.CanMove(p.Cell, dir) {
		return res
	}

	to := p.Cell.Step(dir)
	p.Cell = to
	res.Outcome = Moved
	res.To = to

	kind := cue.Whoosh
	if dir.IsHorizontal() {
		kind = cue.Click
	}
	res.Cues = append(res.Cues, cue.New(kind, to, dir))

	if p.Markers != nil {
		if recall, ok := p.Markers.OnArrive(to); ok {
			res.Cues = append(res.Cues, recall)
		}
	}

	return res
}

// ResolveTick resolves the directional intents that arrived in one input
// tick. The horizontal slot is resolved before the vertical one, so a
// diagonal press becomes up to two orthogonal moves with their own cues.
// A slot holding a direction of the wrong axis is rejected and does not move.
func ResolveTick(m *world.Maze, p *state.Player, horizontal, vertical *world.Direction) ([]MoveResult, error) {
	var (
		results []MoveResult
		errs    []error
	)

	if horizontal != nil {
		if horizontal.IsHorizontal() {
			results = append(results, AttemptMove(m, p, *horizontal))
		} else {
			errs = append(errs, fmt.Errorf("%w: %s in horizontal slot", world.ErrInvalidDirectionForContext, *horizontal))
		}
	}

	if vertical != nil {
		if vertical.IsVertical() {
			results = append(results, AttemptMove(m, p, *vertical))
		} else {
			errs = append(errs, fmt.Errorf("%w: %s in vertical slot", world.ErrInvalidDirectionForContext, *vertical))
		}
	}

	return results, errors.Join(errs...)
}

// Cues flattens the cues of several results, in order.
func Cues(results []MoveResult) []cue.Event {
	var out []cue.Event
	for _, r := range results {
		out = append(out, r.Cues...)
	}
	return out
}
