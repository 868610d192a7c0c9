// Package generator builds mazes whose open passages connect every cell.
package generator

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"echomaze/pkg/engine/world"
)

// MaxCells bounds width*height so a bad configuration cannot exhaust memory.
const MaxCells = 1 << 16

var (
	// ErrTooLarge is returned when width*height exceeds MaxCells.
	ErrTooLarge = errors.New("maze too large")

	// ErrUnknownGenerator is returned by ByName for unregistered names.
	ErrUnknownGenerator = errors.New("unknown maze generator")
)

// Generator is an interface for maze generation algorithms
type Generator interface {
	Generate(width, height int, seed int64) (*world.Maze, error)
	Name() string
}

// treeCarver is implemented by the algorithms that carve a spanning tree into
// a fully walled builder.
type treeCarver interface {
	Generator
	carve(b *world.Builder, rng *rand.Rand) error
}

// Available generators
var (
	Frontier    = &FrontierGenerator{}
	Backtracker = &BacktrackerGenerator{}
	Wilson      = &WilsonGenerator{}
)

// DefaultGenerator is the default maze generator
var DefaultGenerator Generator = Frontier

var registry = map[string]treeCarver{
	Frontier.Name():    Frontier,
	Backtracker.Name(): Backtracker,
	Wilson.Name():      Wilson,
}

// ByName looks up a generator and wraps it so that extraLoopFraction of the
// walls left closed by the spanning tree are opened afterwards. A fraction of
// 0 returns the plain tree generator.
func ByName(name string, extraLoopFraction float64) (Generator, error) {
	tree, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGenerator, name)
	}
	return WithLoops(tree, extraLoopFraction), nil
}

// Names lists the registered generator names.
func Names() []string {
	return []string{Frontier.Name(), Backtracker.Name(), Wilson.Name()}
}

// Generate builds a pure spanning-tree maze with the default generator.
func Generate(width, height int, seed int64) (*world.Maze, error) {
	return DefaultGenerator.Generate(width, height, seed)
}

// build runs carve on a fresh builder seeded with seed, then opens the
// requested fraction of surplus passages.
func build(width, height int, seed int64, extraLoopFraction float64, carve func(*world.Builder, *rand.Rand) error) (*world.Maze, error) {
	if width > 0 && height > 0 && width > MaxCells/height {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d cells", ErrTooLarge, width, height, MaxCells)
	}

	b, err := world.NewBuilder(width, height)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(seed))
	if err := carve(b, rng); err != nil {
		return nil, err
	}
	if err := addLoops(b, rng, extraLoopFraction); err != nil {
		return nil, err
	}

	return b.Build(), nil
}

// randomPosition picks a uniformly random cell.
func randomPosition(b *world.Builder, rng *rand.Rand) world.Position {
	return world.Position{Row: rng.Intn(b.Height()), Col: rng.Intn(b.Width())}
}
