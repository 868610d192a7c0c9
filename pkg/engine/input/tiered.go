package input

import (
	"fmt"
	"sort"
	"time"

	"echomaze/pkg/engine/world"
)

// Device represents a physical input source.
type Device int

const (
	DeviceUnknown Device = iota
	DeviceKeyboard
	DeviceTerminal
)

// Action represents a high‑level intent in the game.
type Action int

const (
	ActionNone Action = iota

	ActionMove        // Move one cell in Intent.Direction
	ActionProbe       // Sound the four surrounding walls
	ActionSendDrone   // Launch the drone in Intent.Direction
	ActionPlaceMarker // Drop a numbered marker on the current cell

	// Meta
	ActionConfirm
	ActionQuit
)

// Intent is the 4th‑layer, high‑level description of what the player wants to do.
// Direction is only meaningful for ActionMove and ActionSendDrone.
type Intent struct {
	Action    Action
	Direction world.Direction
}

// Move returns a move intent.
func Move(d world.Direction) Intent {
	return Intent{Action: ActionMove, Direction: d}
}

// SendDrone returns a drone intent.
func SendDrone(d world.Direction) Intent {
	return Intent{Action: ActionSendDrone, Direction: d}
}

// Probe returns a probe intent.
func Probe() Intent {
	return Intent{Action: ActionProbe}
}

// PlaceMarker returns a marker intent.
func PlaceMarker() Intent {
	return Intent{Action: ActionPlaceMarker}
}

// String returns the intent's display name
func (i Intent) String() string {
	switch i.Action {
	case ActionMove, ActionSendDrone:
		return fmt.Sprintf("%s %s", ActionName(i.Action), i.Direction)
	default:
		return ActionName(i.Action)
	}
}

// RawInput is the 1st‑layer event emitted directly from an input device.
// Code is a device‑specific identifier (e.g. "w", "arrow_up", "space").
type RawInput struct {
	Device    Device
	Code      string
	Timestamp time.Time
}

// DebouncedInput is the 2nd‑layer representation after debouncing/deduplication.
// Terminal key repeat already arrives as discrete presses, so this is a thin
// layer kept so the bindings never see device timing.
type DebouncedInput struct {
	Device Device
	Code   string
}

// NewDebouncedInput converts a raw event to a debounced event.
func NewDebouncedInput(raw RawInput) DebouncedInput {
	return DebouncedInput{
		Device: raw.Device,
		Code:   raw.Code,
	}
}

// bindings maps raw codes to intents (3rd-layer bindings).
// Multiple codes may point to the same Intent.
var bindings = map[string]Intent{
	// Movement (arrows, WASD)
	"arrow_up":    Move(world.North),
	"w":           Move(world.North),
	"arrow_down":  Move(world.South),
	"s":           Move(world.South),
	"arrow_left":  Move(world.West),
	"a":           Move(world.West),
	"arrow_right": Move(world.East),
	"d":           Move(world.East),

	// Probe
	"space": Probe(),

	// Drone (IJKL cluster)
	"i": SendDrone(world.North),
	"j": SendDrone(world.West),
	"k": SendDrone(world.South),
	"l": SendDrone(world.East),

	// Marker
	"e": PlaceMarker(),

	"enter": {Action: ActionConfirm},

	// Quit
	"q":      {Action: ActionQuit},
	"escape": {Action: ActionQuit},
	"ctrl_c": {Action: ActionQuit},
}

// MapToIntent is the 3rd+4th layer: it applies the current bindings to a
// debounced input and returns a high‑level Intent.
func MapToIntent(ev DebouncedInput) Intent {
	if in, ok := bindings[ev.Code]; ok {
		return in
	}
	return Intent{Action: ActionNone}
}

// ActionName returns a human-friendly name for an action.
func ActionName(a Action) string {
	switch a {
	case ActionMove:
		return "Move"
	case ActionProbe:
		return "Probe"
	case ActionSendDrone:
		return "Send Drone"
	case ActionPlaceMarker:
		return "Place Marker"
	case ActionConfirm:
		return "Confirm"
	case ActionQuit:
		return "Quit"
	default:
		return "None"
	}
}

// GetBindingsByIntent returns the current bindings grouped by intent.
func GetBindingsByIntent() map[Intent][]string {
	result := make(map[Intent][]string)
	for code, in := range bindings {
		result[in] = append(result[in], code)
	}
	// Stable ordering so the help screen doesn't flicker.
	for in, codes := range result {
		sort.Strings(codes)
		result[in] = codes
	}
	return result
}
