package tui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/gookit/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"echomaze/pkg/engine/input"
	"echomaze/pkg/engine/world"
	"echomaze/pkg/game/cue"
	"echomaze/pkg/game/gameplay"
	"echomaze/pkg/game/locale"
	"echomaze/pkg/game/markers"
	"echomaze/pkg/game/renderer"
	"echomaze/pkg/game/state"
)

func newTestRenderer(t *testing.T) (*TUIRenderer, *bytes.Buffer) {
	t.Helper()
	_, err := locale.Init("en")
	require.NoError(t, err)

	var buf bytes.Buffer
	r := New(&buf)
	r.Init()
	return r, &buf
}

// pairRound is a 2x1 maze with the single interior wall open.
func pairRound(t *testing.T) *state.Round {
	t.Helper()
	b, err := world.NewBuilder(2, 1)
	require.NoError(t, err)
	require.NoError(t, b.Open(world.Position{}, world.East))
	return state.NewRound(b.Build(), world.Position{}, markers.MostRecent)
}

func TestMazeString_Cursor(t *testing.T) {
	r, _ := newTestRenderer(t)
	round := pairRound(t)
	round.Player.Markers.Place(world.Position{Col: 1})

	got := color.ClearCode(r.MazeString(renderer.EndView{Round: round, Cursor: world.Position{}}))

	want := "+---+---+\n" +
		"| +   1 |\n" +
		"+---+---+\n"
	assert.Equal(t, want, got)
}

func TestMazeString_Guess(t *testing.T) {
	r, _ := newTestRenderer(t)
	round := pairRound(t)
	guess := &gameplay.Guess{Actual: world.Position{Col: 1}, Guessed: world.Position{}, Distance: 1}

	got := color.ClearCode(r.MazeString(renderer.EndView{Round: round, Guess: guess}))

	assert.Contains(t, got, "| X   @ |")
}

func TestMazeString_StartAndWalls(t *testing.T) {
	r, _ := newTestRenderer(t)
	b, err := world.NewBuilder(2, 2)
	require.NoError(t, err)
	require.NoError(t, b.Open(world.Position{}, world.South))
	require.NoError(t, b.Open(world.Position{Row: 1}, world.East))
	require.NoError(t, b.Open(world.Position{Row: 1, Col: 1}, world.North))
	round := state.NewRound(b.Build(), world.Position{}, markers.MostRecent)

	got := color.ClearCode(r.MazeString(renderer.EndView{Round: round, Cursor: world.Position{Row: 9}}))

	want := "+---+---+\n" +
		"| S |   |\n" +
		"+   +   +\n" +
		"|       |\n" +
		"+---+---+\n"
	assert.Equal(t, want, got)
}

func TestRenderEnd(t *testing.T) {
	r, buf := newTestRenderer(t)
	round := pairRound(t)

	r.RenderEnd(renderer.EndView{Round: round, Cursor: world.Position{Col: 1}})
	assert.Contains(t, color.ClearCode(buf.String()), "Your time is up.")
	assert.Contains(t, buf.String(), "Move the cursor")

	buf.Reset()
	r.RenderEnd(renderer.EndView{Round: round, Guess: &gameplay.Guess{Actual: world.Position{Col: 1}, Guessed: world.Position{}, Distance: 1}})
	assert.Contains(t, color.ClearCode(buf.String()), "You finished at (0,1), 1 cells from your guess.")

	buf.Reset()
	r.RenderEnd(renderer.EndView{Round: round, Guess: &gameplay.Guess{Actual: world.Position{}, Guessed: world.Position{}}})
	assert.Contains(t, color.ClearCode(buf.String()), "Correct!")
}

func TestRenderFrame(t *testing.T) {
	r, buf := newTestRenderer(t)
	round := pairRound(t)
	round.AddMessage("hello")
	round.Player.Markers.Place(world.Position{})

	r.RenderFrame(renderer.Frame{
		Round:       round,
		Remaining:   41200 * time.Millisecond,
		DroneActive: true,
		Cues: []cue.Event{
			cue.New(cue.Bell, world.Position{}, world.West),
			cue.NewMarker(3, world.Position{}),
		},
	})

	out := color.ClearCode(buf.String())
	assert.Contains(t, out, "Time left: 42s")
	assert.Contains(t, out, "Markers: 1")
	assert.Contains(t, out, "drone in flight")
	assert.Contains(t, out, "bell (West)")
	assert.Contains(t, out, "marker 3")
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "arrows/w/a/s/d: move")
	assert.Contains(t, out, "space: probe walls")
}

func TestFormatText(t *testing.T) {
	r, _ := newTestRenderer(t)

	assert.Equal(t, "q: quit", color.ClearCode(r.FormatText("ACTION{q}: GT{HELP_QUIT}")))
	assert.True(t, strings.HasPrefix(r.FormatText("BOGUS{x}"), "ERROR"))
}

func TestKeyNames(t *testing.T) {
	assert.Equal(t, "escape/q", keyNames(input.Intent{Action: input.ActionQuit}))
	assert.Equal(t, "i/j/k/l", keyNames(
		input.SendDrone(world.North), input.SendDrone(world.West),
		input.SendDrone(world.South), input.SendDrone(world.East)))
}

func TestCursor(t *testing.T) {
	b, err := world.NewBuilder(3, 2)
	require.NoError(t, err)
	c := NewCursor(b.Build())
	assert.Equal(t, world.Position{Row: 1, Col: 1}, c.Position())

	c.Move(world.South)
	assert.Equal(t, world.Position{Row: 1, Col: 1}, c.Position(), "edge stops the cursor")

	c.Move(world.North)
	c.Move(world.East)
	c.Move(world.East)
	assert.Equal(t, world.Position{Row: 0, Col: 2}, c.Position())

	c.Move(world.Direction(7))
	assert.Equal(t, world.Position{Row: 0, Col: 2}, c.Position())
}

func TestCueLog(t *testing.T) {
	l := NewCueLog(2)
	var s cue.Sink = l
	s.Play(cue.New(cue.Click, world.Position{}, world.East))
	s.Play(cue.New(cue.Whoosh, world.Position{}, world.South))
	s.Play(cue.New(cue.Bell, world.Position{}, world.West))

	assert.Equal(t, []cue.Kind{cue.Whoosh, cue.Bell}, cue.KindsOf(l.Recent()))

	l.Reset()
	assert.Empty(t, l.Recent())
}
