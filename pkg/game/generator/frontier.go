package generator

import (
	"math/rand"

	"github.com/zyedidia/generic/mapset"

	"echomaze/pkg/engine/world"
)

// FrontierGenerator grows a spanning tree from a random cell. Each step picks
// one edge uniformly from the frontier (edges from the region to a cell
// outside it) and opens it.
type FrontierGenerator struct{}

// frontierEdge is a wall between a region cell and a neighbour.
type frontierEdge struct {
	from world.Position
	dir  world.Direction
}

// Name returns the name of this generator
func (g *FrontierGenerator) Name() string {
	return "frontier"
}

// Generate creates a new spanning-tree maze
func (g *FrontierGenerator) Generate(width, height int, seed int64) (*world.Maze, error) {
	return build(width, height, seed, 0, g.carve)
}

func (g *FrontierGenerator) carve(b *world.Builder, rng *rand.Rand) error {
	total := b.Width() * b.Height()
	region := mapset.New[world.Position]()
	var frontier []frontierEdge

	addEdges := func(p world.Position) {
		for _, d := range world.AllDirections() {
			n, ok := b.Neighbor(p, d)
			if ok && !region.Has(n) {
				frontier = append(frontier, frontierEdge{from: p, dir: d})
			}
		}
	}

	start := randomPosition(b, rng)
	region.Put(start)
	addEdges(start)

	for region.Size() < total && len(frontier) > 0 {
		i := rng.Intn(len(frontier))
		e := frontier[i]
		frontier[i] = frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]

		// Edges go stale once their far cell joins the region.
		to := e.from.Step(e.dir)
		if region.Has(to) {
			continue
		}

		if err := b.Open(e.from, e.dir); err != nil {
			return err
		}
		region.Put(to)
		addEdges(to)
	}

	return nil
}
