package menu

import (
	"bytes"
	"testing"

	"github.com/gookit/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"echomaze/pkg/engine/input"
	"echomaze/pkg/engine/world"
	"echomaze/pkg/game/config"
	"echomaze/pkg/game/generator"
	"echomaze/pkg/game/locale"
	"echomaze/pkg/game/renderer"
	"echomaze/pkg/game/renderer/tui"
)

// script feeds intents to a menu and reports end of input afterwards.
func script(intents ...input.Intent) NextIntent {
	return func() (input.Intent, bool) {
		if len(intents) == 0 {
			return input.Intent{}, false
		}
		in := intents[0]
		intents = intents[1:]
		return in, true
	}
}

var (
	up      = input.Move(world.North)
	down    = input.Move(world.South)
	confirm = input.Intent{Action: input.ActionConfirm}
	quit    = input.Intent{Action: input.ActionQuit}
)

func setup(t *testing.T) *bytes.Buffer {
	t.Helper()
	_, err := locale.Init("en")
	require.NoError(t, err)

	var buf bytes.Buffer
	r := tui.New(&buf)
	r.Init()
	prev := renderer.Current
	renderer.SetRenderer(r)
	t.Cleanup(func() { renderer.SetRenderer(prev) })
	return &buf
}

func TestRunMainMenu_AdjustAndPlay(t *testing.T) {
	buf := setup(t)
	cfg := config.Default()

	play := RunMainMenu(&cfg, script(
		down, confirm, // generator
		down, confirm, // size 20 -> 30
		down, confirm, confirm, // loops 0 -> 0.1 -> 0.25
		down, confirm, // recall
		up, up, up, up, confirm, // back to Play
	))

	assert.True(t, play)
	assert.Equal(t, generator.Names()[1], cfg.Generator)
	assert.Equal(t, 30, cfg.Width)
	assert.Equal(t, 30, cfg.Height)
	assert.Equal(t, 0.25, cfg.ExtraLoopFraction)
	assert.Equal(t, "earliest", cfg.RecallPolicy)
	require.NoError(t, cfg.Validate())

	out := color.ClearCode(buf.String())
	assert.Contains(t, out, "Size: 30x30")
	assert.Contains(t, out, "Loops: 25%")
	assert.Contains(t, out, "Start a round with these settings")
}

func TestRunMainMenu_Quit(t *testing.T) {
	setup(t)

	tests := []struct {
		name    string
		intents []input.Intent
	}{
		{"quit item via wrap", []input.Intent{up, confirm}},
		{"quit key", []input.Intent{down, quit}},
		{"input ended", []input.Intent{down}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			assert.False(t, RunMainMenu(&cfg, script(tt.intents...)))
		})
	}
}

func TestRunMainMenu_IgnoresGameplayIntents(t *testing.T) {
	setup(t)
	cfg := config.Default()

	play := RunMainMenu(&cfg, script(
		input.SendDrone(world.East),
		input.PlaceMarker(),
		input.Move(world.East),
		confirm,
	))

	assert.True(t, play)
	assert.Equal(t, config.Default(), cfg)
}

func TestNextChoice(t *testing.T) {
	assert.Equal(t, 15, nextChoice(sizeChoices, 10))
	assert.Equal(t, 10, nextChoice(sizeChoices, 30))
	assert.Equal(t, 10, nextChoice(sizeChoices, 42))
	assert.Equal(t, "b", nextChoice([]string{"a", "b"}, "a"))
}

func TestNextSelectable(t *testing.T) {
	items := []MenuItem{
		&MainMenuItem{Label: "a"},
		&MainMenuItem{Label: "b"},
		&MainMenuItem{Label: "c"},
	}
	assert.Equal(t, 1, nextSelectable(items, 0, 1))
	assert.Equal(t, 0, nextSelectable(items, 2, 1))
	assert.Equal(t, 2, nextSelectable(items, 0, -1))
}
