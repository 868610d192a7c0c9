// Package cue defines the audio events the game emits and the sink interface
// audio back ends implement. The game only decides which cue plays and when;
// sinks decide how it sounds.
package cue

import (
	"fmt"

	"echomaze/pkg/engine/world"
)

// Kind names a discrete audio cue
type Kind int

// Cue kinds
const (
	Click Kind = iota
	Whoosh
	Bell
	PitchDown
	PitchUp
	Beep
	Marker
)

var kindNames = [...]string{
	Click:     "click",
	Whoosh:    "whoosh",
	Bell:      "bell",
	PitchDown: "pitch-down",
	PitchUp:   "pitch-up",
	Beep:      "beep",
	Marker:    "marker",
}

// String returns the cue's wire name, e.g. "pitch-down".
func (k Kind) String() string {
	if k < Click || k > Marker {
		return "unknown"
	}
	return kindNames[k]
}

// Kinds returns every cue kind.
func Kinds() []Kind {
	return []Kind{Click, Whoosh, Bell, PitchDown, PitchUp, Beep, Marker}
}

// Event is a single cue handed to the audio collaborator.
type Event struct {
	Kind Kind

	// MarkerID is set only for Marker cues.
	MarkerID int

	// Cell and Direction describe where the cue originates so a sink can
	// spatialise it. They carry no gameplay meaning.
	Cell      world.Position
	Direction world.Direction
}

// New creates an event of the given kind at cell.
func New(kind Kind, cell world.Position, dir world.Direction) Event {
	return Event{Kind: kind, Cell: cell, Direction: dir}
}

// NewMarker creates a Marker cue carrying id.
func NewMarker(id int, cell world.Position) Event {
	return Event{Kind: Marker, MarkerID: id, Cell: cell}
}

// String formats the event for logs, e.g. "marker(3)" or "click".
func (e Event) String() string {
	if e.Kind == Marker {
		return fmt.Sprintf("%s(%d)", e.Kind, e.MarkerID)
	}
	return e.Kind.String()
}

// KindsOf extracts the kinds of a sequence of events, in order.
func KindsOf(events []Event) []Kind {
	kinds := make([]Kind, len(events))
	for i, e := range events {
		kinds[i] = e.Kind
	}
	return kinds
}
