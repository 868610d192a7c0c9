package gameplay

import (
	"fmt"
	"math/rand"

	"github.com/leonelquinteros/gotext"

	"echomaze/pkg/engine/world"
	"echomaze/pkg/game/generator"
	"echomaze/pkg/game/locale"
	"echomaze/pkg/game/markers"
	"echomaze/pkg/game/state"
)

// BuildRound generates a maze with gen and places the player on a start
// cell drawn from the same seed, so a seed reproduces the whole round.
func BuildRound(gen generator.Generator, width, height int, seed int64, policy markers.RecallPolicy) (*state.Round, error) {
	m, err := gen.Generate(width, height, seed)
	if err != nil {
		return nil, fmt.Errorf("generate %s maze: %w", gen.Name(), err)
	}

	r := state.NewRound(m, StartCell(m, seed), policy)
	r.Seed = seed

	r.ClearMessages()
	logMessage(r, "%s", gotext.Get("ROUND_WELCOME"))
	logMessage(r, "%s", locale.Get("ROUND_SIZE", m.Width(), m.Height()))

	return r, nil
}

// StartCell picks a start cell uniformly from the seed.
func StartCell(m *world.Maze, seed int64) world.Position {
	rng := rand.New(rand.NewSource(seed))
	i := rng.Intn(m.Size())
	return world.Position{Row: i / m.Width(), Col: i % m.Width()}
}

// ResetRound puts a round back to its starting state on the same maze:
// the player returns to the start cell and all markers are dropped.
func ResetRound(r *state.Round) *state.Round {
	fresh := state.NewRound(r.Maze, r.Start, r.Player.Markers.Policy())
	fresh.Seed = r.Seed
	logMessage(fresh, "%s", gotext.Get("ROUND_RESET"))
	return fresh
}

// Guess is the outcome of the player's end-of-round guess.
type Guess struct {
	Actual  world.Position
	Guessed world.Position

	// Distance is the Manhattan distance in cells between the two.
	Distance int
}

// Correct reports whether the guess hit the final cell.
func (g Guess) Correct() bool {
	return g.Distance == 0
}

// EvaluateGuess compares a guessed cell with the round's frozen final cell.
func EvaluateGuess(r *state.Round, guessed world.Position) (Guess, error) {
	if r.Phase != state.Ended {
		return Guess{}, fmt.Errorf("guess before round end: phase %s", r.Phase)
	}
	if !r.Maze.InBounds(guessed) {
		return Guess{}, fmt.Errorf("%w: guess %s", world.ErrOutOfBounds, guessed)
	}
	return Guess{
		Actual:   r.Final,
		Guessed:  guessed,
		Distance: abs(r.Final.Row-guessed.Row) + abs(r.Final.Col-guessed.Col),
	}, nil
}

func logMessage(r *state.Round, format string, args ...interface{}) {
	r.AddMessage(fmt.Sprintf(format, args...))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
