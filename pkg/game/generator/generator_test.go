// Package generator tests maze generation: spanning-tree shape, wall symmetry,
// reachability, determinism per seed, and surplus loops.
package generator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zyedidia/generic/mapset"

	"echomaze/pkg/engine/world"
)

// hasCycle walks the open-passage graph depth first and reports whether a
// non-parent edge leads back to a visited cell.
func hasCycle(m *world.Maze) bool {
	visited := mapset.New[world.Position]()
	type frame struct {
		at     world.Position
		parent world.Position
	}
	root := world.Position{}
	stack := []frame{{at: root, parent: world.Position{Row: -1, Col: -1}}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited.Has(f.at) {
			return true
		}
		visited.Put(f.at)
		for _, d := range world.AllDirections() {
			if !m.CanMove(f.at, d) {
				continue
			}
			next := f.at.Step(d)
			if next == f.parent {
				continue
			}
			stack = append(stack, frame{at: next, parent: f.at})
		}
	}
	return false
}

func TestGenerators_ProduceSpanningTrees(t *testing.T) {
	sizes := [][2]int{{1, 1}, {1, 7}, {5, 5}, {12, 8}, {20, 20}}
	for _, name := range Names() {
		g, err := ByName(name, 0)
		require.NoError(t, err)
		t.Run(name, func(t *testing.T) {
			for seed := int64(1); seed <= 5; seed++ {
				for _, s := range sizes {
					m, err := g.Generate(s[0], s[1], seed)
					require.NoError(t, err)
					require.NoError(t, m.Validate(), "%s %dx%d seed %d", name, s[0], s[1], seed)
					assert.Equal(t, m.Size()-1, m.OpenPassages(), "%dx%d seed %d", s[0], s[1], seed)
					assert.False(t, hasCycle(m), "%dx%d seed %d", s[0], s[1], seed)
				}
			}
		})
	}
}

func TestGenerators_WallsAreSymmetric(t *testing.T) {
	m, err := Generate(9, 6, 42)
	require.NoError(t, err)
	m.ForEachCell(func(c world.Cell) {
		for _, d := range world.AllDirections() {
			n, ok := m.Neighbor(c.Position, d)
			if !ok {
				assert.True(t, c.HasWall(d), "boundary %v %s", c.Position, d)
				continue
			}
			assert.Equal(t, c.HasWall(d), m.HasWall(n, d.Opposite()), "%v %s", c.Position, d)
		}
	})
}

func TestGenerators_Deterministic(t *testing.T) {
	for _, name := range Names() {
		for _, fraction := range []float64{0, 0.3} {
			g, err := ByName(name, fraction)
			require.NoError(t, err)
			a, err := g.Generate(10, 7, 99)
			require.NoError(t, err)
			b, err := g.Generate(10, 7, 99)
			require.NoError(t, err)
			assert.Equal(t, a.String(), b.String(), "%s fraction %v", name, fraction)
			assert.Equal(t, a, b)
		}
	}
}

func TestGenerators_SeedsDiffer(t *testing.T) {
	a, err := Generate(10, 10, 1)
	require.NoError(t, err)
	b, err := Generate(10, 10, 2)
	require.NoError(t, err)
	assert.NotEqual(t, a.String(), b.String())
}

func TestGenerate_InvalidDimensions(t *testing.T) {
	for _, name := range Names() {
		g, err := ByName(name, 0)
		require.NoError(t, err)
		_, err = g.Generate(0, 5, 1)
		assert.ErrorIs(t, err, world.ErrInvalidDimensions, name)
		_, err = g.Generate(5, -2, 1)
		assert.ErrorIs(t, err, world.ErrInvalidDimensions, name)
	}
}

func TestGenerate_TooLarge(t *testing.T) {
	_, err := Generate(MaxCells, 2, 1)
	assert.ErrorIs(t, err, ErrTooLarge)

	// width*height would wrap around.
	_, err = Generate(math.MaxInt, 2, 1)
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestByName_Unknown(t *testing.T) {
	_, err := ByName("prim's-cousin", 0)
	assert.ErrorIs(t, err, ErrUnknownGenerator)
}

func TestWithLoops_AddsPassages(t *testing.T) {
	const w, h = 10, 10
	tree, err := Generate(w, h, 7)
	require.NoError(t, err)

	closedAfterTree := 2*w*h - w - h - tree.OpenPassages()

	g, err := ByName("frontier", 0.5)
	require.NoError(t, err)
	looped, err := g.Generate(w, h, 7)
	require.NoError(t, err)

	require.NoError(t, looped.Validate())
	assert.Equal(t, tree.OpenPassages()+closedAfterTree/2, looped.OpenPassages())
	assert.True(t, hasCycle(looped))
}

func TestWithLoops_FullFractionOpensEverything(t *testing.T) {
	g, err := ByName("backtracker", 3)
	require.NoError(t, err)
	m, err := g.Generate(4, 3, 5)
	require.NoError(t, err)
	assert.Equal(t, 2*4*3-4-3, m.OpenPassages())
}

func TestWithLoops_ZeroFractionIsPlainTree(t *testing.T) {
	assert.Same(t, Wilson, WithLoops(Wilson, 0))
	assert.Same(t, Wilson, WithLoops(Wilson, -1))
}

func TestFrontier_HasDeadEnd(t *testing.T) {
	m, err := Generate(5, 5, 1)
	require.NoError(t, err)
	assert.NotEmpty(t, m.DeadEnds(), "every finite tree has leaves")
}
