// Package renderer holds the rendering interface shared by the game's front
// ends and the cue presentation helpers they have in common.
package renderer

import (
	"github.com/leonelquinteros/gotext"

	"echomaze/pkg/engine/world"
	"echomaze/pkg/game/cue"
	"echomaze/pkg/game/locale"
)

// Map icons
const (
	IconStart  = "S"
	IconFinish = "@"
	IconGuess  = "X"
	IconCursor = "+"
	IconMarker = "*" // marker IDs above 9
)

// CueName returns the translated name of a cue kind.
func CueName(k cue.Kind) string {
	switch k {
	case cue.Click:
		return gotext.Get("CUE_CLICK")
	case cue.Whoosh:
		return gotext.Get("CUE_WHOOSH")
	case cue.Bell:
		return gotext.Get("CUE_BELL")
	case cue.PitchDown:
		return gotext.Get("CUE_PITCH_DOWN")
	case cue.PitchUp:
		return gotext.Get("CUE_PITCH_UP")
	case cue.Beep:
		return gotext.Get("CUE_BEEP")
	case cue.Marker:
		return gotext.Get("CUE_MARKER_NAME")
	default:
		return k.String()
	}
}

// CueLabel describes one cue for the cue log, e.g. "bell (West)".
func CueLabel(e cue.Event) string {
	if e.Kind == cue.Marker {
		return locale.Get("CUE_MARKER", e.MarkerID)
	}
	label := CueName(e.Kind)
	if e.Direction.IsValid() {
		label += " (" + e.Direction.String() + ")"
	}
	return label
}

// CueStyle picks the style a cue kind is shown in.
func CueStyle(k cue.Kind) TextStyle {
	switch k {
	case cue.Click, cue.Beep:
		return StyleSubtle
	case cue.Whoosh, cue.Bell:
		return StyleAction
	case cue.PitchDown, cue.PitchUp:
		return StyleTimer
	case cue.Marker:
		return StyleMarker
	default:
		return StyleNormal
	}
}

// MarkerIcon is the single character shown for a marker on the map.
func MarkerIcon(id int) string {
	if id >= 1 && id <= 9 {
		return string(rune('0' + id))
	}
	return IconMarker
}

// CellIcon returns the icon and style for p on the end-of-round map, and
// false when the cell is blank.
func CellIcon(v EndView, p world.Position) (string, TextStyle, bool) {
	r := v.Round
	switch {
	case v.Guess == nil && p == v.Cursor:
		return IconCursor, StyleCursor, true
	case v.Guess != nil && p == v.Guess.Actual:
		return IconFinish, StylePlayer, true
	case v.Guess != nil && p == v.Guess.Guessed:
		return IconGuess, StyleDenied, true
	}

	if m, ok := r.Player.Markers.At(p); ok {
		return MarkerIcon(m.ID), StyleMarker, true
	}
	if p == r.Start {
		return IconStart, StyleStart, true
	}
	return "", StyleNormal, false
}
