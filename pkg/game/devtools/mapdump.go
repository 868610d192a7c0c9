// Package devtools provides developer tools for testing and debugging.
package devtools

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"echomaze/pkg/engine/world"
	"echomaze/pkg/game/state"
)

// cellSymbol returns the single-character symbol for a cell in the overlay
// grid: the final cell wins, then markers, then the start.
func cellSymbol(r *state.Round, p world.Position) rune {
	if r.Phase == state.Ended && p == r.Final {
		return '@'
	}
	if m, ok := r.Player.Markers.At(p); ok {
		if m.ID <= 9 {
			return rune('0' + m.ID)
		}
		return '*'
	}
	if p == r.Start {
		return 'S'
	}
	return '.'
}

// writeOverlay writes one character per cell.
func writeOverlay(w io.Writer, r *state.Round) {
	for row := 0; row < r.Maze.Height(); row++ {
		for col := 0; col < r.Maze.Width(); col++ {
			fmt.Fprintf(w, "%c", cellSymbol(r, world.Position{Row: row, Col: col}))
		}
		fmt.Fprintln(w)
	}
}

// WriteDump writes a full debug dump of a round: metadata, legend, the maze
// with walls, the overlay grid and the marker list.
func WriteDump(w io.Writer, r *state.Round) error {
	if r == nil || r.Maze == nil {
		return fmt.Errorf("no maze")
	}
	m := r.Maze

	// --- Metadata ---
	fmt.Fprintln(w, "=== MAZE DUMP ===")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "--- Metadata ---")
	fmt.Fprintf(w, "round_id: %s\n", r.ID)
	fmt.Fprintf(w, "seed: %d\n", r.Seed)
	fmt.Fprintf(w, "width: %d\n", m.Width())
	fmt.Fprintf(w, "height: %d\n", m.Height())
	fmt.Fprintf(w, "coordinate_system: row,col (0-based, row=vertical, col=horizontal)\n")
	fmt.Fprintf(w, "phase: %s\n", r.Phase)
	fmt.Fprintf(w, "start_cell: %d,%d\n", r.Start.Row, r.Start.Col)
	if r.Phase == state.Ended {
		fmt.Fprintf(w, "final_cell: %d,%d\n", r.Final.Row, r.Final.Col)
	}
	fmt.Fprintf(w, "open_passages: %d\n", m.OpenPassages())
	fmt.Fprintf(w, "dead_ends: %d\n", len(m.DeadEnds()))
	if err := m.Validate(); err != nil {
		fmt.Fprintf(w, "validation: %v\n", err)
	} else {
		fmt.Fprintln(w, "validation: ok")
	}
	fmt.Fprintln(w)

	// --- Legend ---
	fmt.Fprintln(w, "--- Legend ---")
	fmt.Fprintln(w, "S start, @ final cell, 1-9 marker id (* above 9), . empty")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "--- Maze ---")
	fmt.Fprint(w, m.String())
	fmt.Fprintln(w)

	fmt.Fprintln(w, "--- Overlay ---")
	writeOverlay(w, r)
	fmt.Fprintln(w)

	// --- Markers ---
	fmt.Fprintln(w, "--- Markers ---")
	all := r.Player.Markers.All()
	if len(all) == 0 {
		fmt.Fprintln(w, "(none)")
	}
	for _, mk := range all {
		fmt.Fprintf(w, "marker %d: %d,%d\n", mk.ID, mk.Cell.Row, mk.Cell.Col)
	}

	return nil
}

// DumpRoundToFile writes the dump to maze-<round id>.txt in dir and returns
// the file's absolute path.
func DumpRoundToFile(r *state.Round, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	absPath, err := filepath.Abs(filepath.Join(dir, fmt.Sprintf("maze-%s.txt", r.ID)))
	if err != nil {
		return "", err
	}

	f, err := os.Create(absPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := WriteDump(f, r); err != nil {
		return "", err
	}
	return absPath, f.Close()
}
