package input

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"echomaze/pkg/engine/world"
)

func intentFor(code string) Intent {
	return MapToIntent(NewDebouncedInput(RawInput{Device: DeviceKeyboard, Code: code}))
}

func TestMapToIntent(t *testing.T) {
	tests := []struct {
		code string
		want Intent
	}{
		{"arrow_up", Move(world.North)},
		{"w", Move(world.North)},
		{"a", Move(world.West)},
		{"s", Move(world.South)},
		{"arrow_right", Move(world.East)},
		{"space", Probe()},
		{"i", SendDrone(world.North)},
		{"j", SendDrone(world.West)},
		{"k", SendDrone(world.South)},
		{"l", SendDrone(world.East)},
		{"e", PlaceMarker()},
		{"q", Intent{Action: ActionQuit}},
		{"ctrl_c", Intent{Action: ActionQuit}},
		{"z", Intent{Action: ActionNone}},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, intentFor(tt.code))
		})
	}
}

func TestGetBindingsByIntent(t *testing.T) {
	b := GetBindingsByIntent()
	assert.Equal(t, []string{"arrow_up", "w"}, b[Move(world.North)])
	assert.Equal(t, []string{"space"}, b[Probe()])
	assert.Equal(t, []string{"ctrl_c", "escape", "q"}, b[Intent{Action: ActionQuit}])
}

func TestIntent_String(t *testing.T) {
	assert.Equal(t, "Send Drone West", SendDrone(world.West).String())
	assert.Equal(t, "Probe", Probe().String())
}
