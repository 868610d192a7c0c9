// Package markers records the positional markers a player drops and reports
// them again when the player returns to a marked cell.
package markers

import (
	"fmt"
	"strings"

	"echomaze/pkg/engine/world"
	"echomaze/pkg/game/cue"
)

// Marker is a numbered marker placed on a cell. IDs start at 1.
type Marker struct {
	ID   int
	Cell world.Position
}

// RecallPolicy decides which marker is reported when several share a cell.
type RecallPolicy int

const (
	// MostRecent reports the marker placed last on the cell.
	MostRecent RecallPolicy = iota
	// Earliest reports the first marker placed on the cell.
	Earliest
)

// String returns the policy's configuration name.
func (p RecallPolicy) String() string {
	switch p {
	case MostRecent:
		return "most-recent"
	case Earliest:
		return "earliest"
	default:
		return "unknown"
	}
}

// ParseRecallPolicy converts a configuration name to a RecallPolicy.
func ParseRecallPolicy(s string) (RecallPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "most-recent", "latest":
		return MostRecent, nil
	case "earliest", "first":
		return Earliest, nil
	}
	return MostRecent, fmt.Errorf("unknown recall policy %q", s)
}

// Registry stores the markers of one round. Markers are never removed.
type Registry struct {
	policy  RecallPolicy
	markers []Marker
	byCell  map[world.Position][]int // indexes into markers, in placement order
}

// NewRegistry creates an empty registry using policy for shared cells.
func NewRegistry(policy RecallPolicy) *Registry {
	return &Registry{
		policy: policy,
		byCell: make(map[world.Position][]int),
	}
}

// Place creates a marker at cell with the next sequential ID and returns the
// cue announcing it.
func (r *Registry) Place(cell world.Position) cue.Event {
	m := Marker{ID: len(r.markers) + 1, Cell: cell}
	r.byCell[cell] = append(r.byCell[cell], len(r.markers))
	r.markers = append(r.markers, m)
	return cue.NewMarker(m.ID, cell)
}

// At returns the marker reported for cell under the registry's policy.
func (r *Registry) At(cell world.Position) (Marker, bool) {
	idx := r.byCell[cell]
	if len(idx) == 0 {
		return Marker{}, false
	}
	if r.policy == Earliest {
		return r.markers[idx[0]], true
	}
	return r.markers[idx[len(idx)-1]], true
}

// OnArrive is called after the player enters cell. It returns the recall cue
// for the marker on that cell, if any.
func (r *Registry) OnArrive(cell world.Position) (cue.Event, bool) {
	m, ok := r.At(cell)
	if !ok {
		return cue.Event{}, false
	}
	return cue.NewMarker(m.ID, cell), true
}

// All returns the markers in placement order.
func (r *Registry) All() []Marker {
	return append([]Marker(nil), r.markers...)
}

// Len returns the number of markers placed.
func (r *Registry) Len() int {
	return len(r.markers)
}

// Policy returns the registry's recall policy.
func (r *Registry) Policy() RecallPolicy {
	return r.policy
}
