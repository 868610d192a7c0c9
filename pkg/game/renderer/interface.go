package renderer

import (
	"time"

	"echomaze/pkg/engine/world"
	"echomaze/pkg/game/cue"
	"echomaze/pkg/game/gameplay"
	"echomaze/pkg/game/state"
)

// TextStyle represents different text styling options
type TextStyle int

const (
	StyleNormal TextStyle = iota
	StyleSubtle
	StyleAction
	StyleActionShort
	StyleDenied
	StylePlayer
	StyleStart
	StyleMarker
	StyleCursor
	StyleWall
	StyleTimer
)

// Frame is what the player sees while a round is running: no map, only
// the clock, the cues heard so far and the message log.
type Frame struct {
	Round       *state.Round
	Remaining   time.Duration
	DroneActive bool
	Cues        []cue.Event
}

// EndView is the end-of-round map. Guess is nil until the player confirms.
type EndView struct {
	Round  *state.Round
	Cursor world.Position
	Guess  *gameplay.Guess
}

// Renderer defines the interface for game rendering backends
type Renderer interface {
	// Init initializes the renderer (colors, etc.)
	Init()

	// Clear clears the display
	Clear()

	// RenderFrame renders the in-round screen
	RenderFrame(f Frame)

	// RenderEnd renders the revealed maze with the guess cursor or result
	RenderEnd(v EndView)

	// StyleText applies a style to text and returns the styled string
	StyleText(text string, style TextStyle) string

	// FormatText formats a message with the renderer's markup system
	FormatText(msg string, args ...any) string

	// ShowMessage displays a message to the user
	ShowMessage(msg string)

	// GetViewportSize returns the current viewport dimensions (rows, cols)
	GetViewportSize() (rows, cols int)
}

// Current holds the active renderer instance
var Current Renderer

// SetRenderer sets the active renderer
func SetRenderer(r Renderer) {
	Current = r
}

// Init initializes the current renderer
func Init() {
	if Current != nil {
		Current.Init()
	}
}

// Clear clears the display using the current renderer
func Clear() {
	if Current != nil {
		Current.Clear()
	}
}

// RenderFrame renders the in-round screen
func RenderFrame(f Frame) {
	if Current != nil {
		Current.RenderFrame(f)
	}
}

// RenderEnd renders the end-of-round map
func RenderEnd(v EndView) {
	if Current != nil {
		Current.RenderEnd(v)
	}
}

// StyleText applies a style to text
func StyleText(text string, style TextStyle) string {
	if Current != nil {
		return Current.StyleText(text, style)
	}
	return text
}

// FormatText formats a message with markup
func FormatText(msg string, args ...any) string {
	if Current != nil {
		return Current.FormatText(msg, args...)
	}
	return msg
}

// ShowMessage displays a message with the current renderer
func ShowMessage(msg string) {
	if Current != nil {
		Current.ShowMessage(msg)
	}
}

// GetViewportSize returns viewport dimensions
func GetViewportSize() (rows, cols int) {
	if Current != nil {
		return Current.GetViewportSize()
	}
	return 15, 30 // sensible defaults
}
