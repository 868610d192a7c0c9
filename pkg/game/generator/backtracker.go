package generator

import (
	"math/rand"

	"github.com/zyedidia/generic/mapset"

	"echomaze/pkg/engine/world"
)

// BacktrackerGenerator carves a maze with a randomized depth-first search.
// It produces long winding corridors with few branches.
type BacktrackerGenerator struct{}

// Name returns the name of this generator
func (g *BacktrackerGenerator) Name() string {
	return "backtracker"
}

// Generate creates a new spanning-tree maze
func (g *BacktrackerGenerator) Generate(width, height int, seed int64) (*world.Maze, error) {
	return build(width, height, seed, 0, g.carve)
}

func (g *BacktrackerGenerator) carve(b *world.Builder, rng *rand.Rand) error {
	visited := mapset.New[world.Position]()
	start := randomPosition(b, rng)
	visited.Put(start)
	stack := []world.Position{start}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]

		var options []world.Direction
		for _, d := range world.AllDirections() {
			if n, ok := b.Neighbor(cur, d); ok && !visited.Has(n) {
				options = append(options, d)
			}
		}

		if len(options) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		d := options[rng.Intn(len(options))]
		if err := b.Open(cur, d); err != nil {
			return err
		}
		next := cur.Step(d)
		visited.Put(next)
		stack = append(stack, next)
	}

	return nil
}
