package generator

import (
	"math"
	"math/rand"

	"echomaze/pkg/engine/world"
)

// loopGenerator opens surplus passages on top of a spanning tree.
type loopGenerator struct {
	tree     treeCarver
	fraction float64
}

// WithLoops wraps a tree generator so that, after the spanning tree is carved,
// the given fraction of the remaining closed interior walls is opened. The
// fraction is clamped to [0, 1]; 0 returns g unchanged.
func WithLoops(g Generator, fraction float64) Generator {
	fraction = clampFraction(fraction)
	tree, ok := g.(treeCarver)
	if !ok || fraction == 0 {
		return g
	}
	return &loopGenerator{tree: tree, fraction: fraction}
}

// Name returns the name of the underlying generator
func (g *loopGenerator) Name() string {
	return g.tree.Name()
}

// Generate creates a maze with surplus loops
func (g *loopGenerator) Generate(width, height int, seed int64) (*world.Maze, error) {
	return build(width, height, seed, g.fraction, g.tree.carve)
}

// addLoops opens floor(fraction * closed) interior walls chosen with rng.
func addLoops(b *world.Builder, rng *rand.Rand, fraction float64) error {
	fraction = clampFraction(fraction)
	if fraction == 0 {
		return nil
	}

	type wall struct {
		at  world.Position
		dir world.Direction
	}
	var closed []wall
	for row := 0; row < b.Height(); row++ {
		for col := 0; col < b.Width(); col++ {
			p := world.Position{Row: row, Col: col}
			for _, d := range []world.Direction{world.East, world.South} {
				if _, ok := b.Neighbor(p, d); ok && b.HasWall(p, d) {
					closed = append(closed, wall{at: p, dir: d})
				}
			}
		}
	}

	n := int(math.Floor(fraction * float64(len(closed))))
	rng.Shuffle(len(closed), func(i, j int) {
		closed[i], closed[j] = closed[j], closed[i]
	})
	for _, w := range closed[:n] {
		if err := b.Open(w.at, w.dir); err != nil {
			return err
		}
	}
	return nil
}

func clampFraction(f float64) float64 {
	if math.IsNaN(f) || f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
