package devtools

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"echomaze/pkg/engine/world"
	"echomaze/pkg/game/markers"
	"echomaze/pkg/game/state"
)

func endedRound(t *testing.T) *state.Round {
	t.Helper()
	b, err := world.NewBuilder(3, 1)
	require.NoError(t, err)
	require.NoError(t, b.Open(world.Position{}, world.East))
	require.NoError(t, b.Open(world.Position{Col: 1}, world.East))

	r := state.NewRound(b.Build(), world.Position{}, markers.MostRecent)
	r.Seed = 7
	r.Player.Markers.Place(world.Position{Col: 1})
	r.Player.Cell = world.Position{Col: 2}
	r.Freeze()
	return r
}

func TestWriteDump(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDump(&buf, endedRound(t)))
	out := buf.String()

	assert.Contains(t, out, "seed: 7\n")
	assert.Contains(t, out, "final_cell: 0,2\n")
	assert.Contains(t, out, "validation: ok\n")
	assert.Contains(t, out, "--- Overlay ---\nS1@\n")
	assert.Contains(t, out, "marker 1: 0,1\n")
	assert.Contains(t, out, "|           |\n")
}

func TestWriteDump_NoMaze(t *testing.T) {
	assert.Error(t, WriteDump(&bytes.Buffer{}, &state.Round{}))
}

func TestDumpRoundToFile(t *testing.T) {
	r := endedRound(t)
	dir := filepath.Join(t.TempDir(), "dumps")

	path, err := DumpRoundToFile(r, dir)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, "maze-"+r.ID.String()+".txt"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "=== MAZE DUMP ===")
}
