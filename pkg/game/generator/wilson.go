package generator

import (
	"math/rand"

	"github.com/zyedidia/generic/mapset"

	"echomaze/pkg/engine/world"
)

// WilsonGenerator builds a uniform spanning tree with loop-erased random walks.
type WilsonGenerator struct{}

// Name returns the name of this generator
func (g *WilsonGenerator) Name() string {
	return "wilson"
}

// Generate creates a new spanning-tree maze
func (g *WilsonGenerator) Generate(width, height int, seed int64) (*world.Maze, error) {
	return build(width, height, seed, 0, g.carve)
}

func (g *WilsonGenerator) carve(b *world.Builder, rng *rand.Rand) error {
	inTree := mapset.New[world.Position]()
	inTree.Put(randomPosition(b, rng))

	for row := 0; row < b.Height(); row++ {
		for col := 0; col < b.Width(); col++ {
			start := world.Position{Row: row, Col: col}
			if inTree.Has(start) {
				continue
			}

			// Walk until the tree is hit. Overwriting the exit direction of a
			// revisited cell erases the loop through it.
			exits := make(map[world.Position]world.Direction)
			cur := start
			for !inTree.Has(cur) {
				d := randomStep(b, rng, cur)
				exits[cur] = d
				cur = cur.Step(d)
			}

			for cur = start; !inTree.Has(cur); {
				d := exits[cur]
				if err := b.Open(cur, d); err != nil {
					return err
				}
				inTree.Put(cur)
				cur = cur.Step(d)
			}
		}
	}

	return nil
}

// randomStep picks a random in-bounds direction from p.
func randomStep(b *world.Builder, rng *rand.Rand, p world.Position) world.Direction {
	var options []world.Direction
	for _, d := range world.AllDirections() {
		if _, ok := b.Neighbor(p, d); ok {
			options = append(options, d)
		}
	}
	return options[rng.Intn(len(options))]
}
