package round

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	log "github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"echomaze/pkg/engine/input"
	"echomaze/pkg/engine/world"
	"echomaze/pkg/game/cue"
	"echomaze/pkg/game/gameplay"
	"echomaze/pkg/game/markers"
	"echomaze/pkg/game/state"
)

var epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// corridorRound is a 4x1 open corridor with the player at the west end.
func corridorRound(t *testing.T) *state.Round {
	t.Helper()
	b, err := world.NewBuilder(4, 1)
	require.NoError(t, err)
	for col := 0; col < 3; col++ {
		require.NoError(t, b.Open(world.Position{Col: col}, world.East))
	}
	return state.NewRound(b.Build(), world.Position{}, markers.MostRecent)
}

// plazaRound is a 2x2 maze with every interior wall open, player at (0,0).
func plazaRound(t *testing.T) *state.Round {
	t.Helper()
	b, err := world.NewBuilder(2, 2)
	require.NoError(t, err)
	require.NoError(t, b.Open(world.Position{Row: 0, Col: 0}, world.East))
	require.NoError(t, b.Open(world.Position{Row: 0, Col: 0}, world.South))
	require.NoError(t, b.Open(world.Position{Row: 1, Col: 0}, world.East))
	require.NoError(t, b.Open(world.Position{Row: 0, Col: 1}, world.South))
	return state.NewRound(b.Build(), world.Position{}, markers.MostRecent)
}

func newController(t *testing.T, opts Options) (*Controller, *cue.Recorder, *logtest.Hook) {
	t.Helper()
	return newControllerFor(t, corridorRound(t), opts)
}

func newControllerFor(t *testing.T, r *state.Round, opts Options) (*Controller, *cue.Recorder, *logtest.Hook) {
	t.Helper()
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(log.DebugLevel)
	rec := &cue.Recorder{}
	opts.Sink = rec
	opts.Logger = logger
	return New(r, opts), rec, hook
}

func TestIntentsBeforeStartIgnored(t *testing.T) {
	c, rec, _ := newController(t, Options{})

	got := c.Dispatch(epoch, input.Move(world.East), input.Probe(), input.PlaceMarker())

	assert.Empty(t, got)
	assert.Empty(t, rec.Events())
	assert.Equal(t, world.Position{}, c.Round().Player.Cell)
	assert.Equal(t, 0, c.Round().Player.Markers.Len())
}

func TestStartTwice(t *testing.T) {
	c, _, _ := newController(t, Options{})
	require.NoError(t, c.Start(epoch))

	err := c.Start(epoch)
	assert.True(t, errors.Is(err, ErrAlreadyStarted))
}

func TestDispatch_CuesForwardedToSink(t *testing.T) {
	c, rec, _ := newController(t, Options{})
	require.NoError(t, c.Start(epoch))

	got := c.Dispatch(epoch, input.PlaceMarker(), input.Move(world.East))

	// Intents resolve in the order they arrived.
	want := []cue.Kind{cue.Marker, cue.Click}
	if diff := cmp.Diff(want, cue.KindsOf(got)); diff != "" {
		t.Errorf("cue kinds mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, got, rec.Events())
	assert.Equal(t, world.Position{}, c.Markers()[0].Cell)
	assert.Equal(t, world.Position{Col: 1}, c.Round().Player.Cell)
}

func TestDispatch_ArrivalOrder(t *testing.T) {
	tests := []struct {
		name    string
		round   func(t *testing.T) *state.Round
		intents []input.Intent
		want    []cue.Kind
		cell    world.Position
	}{
		{
			name:    "repeated moves each take a cell",
			round:   corridorRound,
			intents: []input.Intent{input.Move(world.East), input.Move(world.East)},
			want:    []cue.Kind{cue.Click, cue.Click},
			cell:    world.Position{Col: 2},
		},
		{
			name:    "opposing moves both resolve",
			round:   corridorRound,
			intents: []input.Intent{input.Move(world.East), input.Move(world.West)},
			want:    []cue.Kind{cue.Click, cue.Click},
			cell:    world.Position{},
		},
		{
			name:    "survey before move reports the start cell",
			round:   corridorRound,
			intents: []input.Intent{input.Probe(), input.Move(world.East)},
			want:    []cue.Kind{cue.Click, cue.Click, cue.Bell, cue.Click, cue.Click},
			cell:    world.Position{Col: 1},
		},
		{
			name:    "adjacent vertical then horizontal resolves horizontal first",
			round:   plazaRound,
			intents: []input.Intent{input.Move(world.South), input.Move(world.East)},
			want:    []cue.Kind{cue.Click, cue.Whoosh},
			cell:    world.Position{Row: 1, Col: 1},
		},
		{
			name:    "separated moves keep their order",
			round:   plazaRound,
			intents: []input.Intent{input.Move(world.South), input.PlaceMarker(), input.Move(world.East)},
			want:    []cue.Kind{cue.Whoosh, cue.Marker, cue.Click},
			cell:    world.Position{Row: 1, Col: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec, _ := newControllerFor(t, tt.round(t), Options{})
			require.NoError(t, c.Start(epoch))

			got := c.Dispatch(epoch, tt.intents...)

			if diff := cmp.Diff(tt.want, cue.KindsOf(got)); diff != "" {
				t.Errorf("cue kinds mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, got, rec.Events())
			assert.Equal(t, tt.cell, c.Round().Player.Cell)
		})
	}
}

func TestDispatch_MarkersRecalledOnReturn(t *testing.T) {
	c, _, _ := newController(t, Options{})
	require.NoError(t, c.Start(epoch))

	c.Dispatch(epoch, input.PlaceMarker(), input.Move(world.East))
	c.Dispatch(epoch, input.PlaceMarker(), input.Move(world.East), input.Move(world.East))
	require.Equal(t, world.Position{Col: 3}, c.Round().Player.Cell)

	// Unmarked cell: click only.
	back := c.Dispatch(epoch, input.Move(world.West))
	assert.Equal(t, []cue.Kind{cue.Click}, cue.KindsOf(back))

	back = c.Dispatch(epoch, input.Move(world.West))
	require.Equal(t, []cue.Kind{cue.Click, cue.Marker}, cue.KindsOf(back))
	assert.Equal(t, 2, back[1].MarkerID)
	assert.Equal(t, world.Position{Col: 1}, back[1].Cell)

	back = c.Dispatch(epoch, input.Move(world.West))
	require.Equal(t, []cue.Kind{cue.Click, cue.Marker}, cue.KindsOf(back))
	assert.Equal(t, 1, back[1].MarkerID)
	assert.Equal(t, world.Position{}, back[1].Cell)
}

func TestDispatch_ProbeAndMarkerRecall(t *testing.T) {
	c, _, _ := newController(t, Options{})
	require.NoError(t, c.Start(epoch))

	probe := c.Dispatch(epoch, input.Probe())
	assert.Equal(t, []cue.Kind{cue.Click, cue.Click, cue.Bell, cue.Click}, cue.KindsOf(probe))

	c.Dispatch(epoch, input.PlaceMarker())
	c.Dispatch(epoch, input.Move(world.East))
	back := c.Dispatch(epoch, input.Move(world.West))

	require.Len(t, back, 2)
	assert.Equal(t, cue.Marker, back[1].Kind)
	assert.Equal(t, 1, back[1].MarkerID)
}

func TestDrone_OneCellPerInterval(t *testing.T) {
	c, rec, _ := newController(t, Options{DroneInterval: 500 * time.Millisecond})
	require.NoError(t, c.Start(epoch))

	first := c.Dispatch(epoch, input.SendDrone(world.East))
	assert.Equal(t, []cue.Kind{cue.Beep}, cue.KindsOf(first))
	assert.True(t, c.DroneActive())

	// Not due yet.
	assert.Empty(t, c.Tick(epoch.Add(100*time.Millisecond)))

	// The player can keep acting while the drone flies.
	c.Dispatch(epoch.Add(200*time.Millisecond), input.Probe())

	for i := 1; i <= 3; i++ {
		step := c.Tick(epoch.Add(time.Duration(i) * 500 * time.Millisecond))
		assert.Equal(t, []cue.Kind{cue.Beep}, cue.KindsOf(step), "step %d", i)
	}
	assert.False(t, c.DroneActive())
	assert.Empty(t, c.Tick(epoch.Add(2*time.Second)))

	var beeps int
	for _, ev := range rec.Events() {
		if ev.Kind == cue.Beep {
			beeps++
		}
	}
	assert.Equal(t, 4, beeps)
}

func TestDrone_NewDispatchCancelsOld(t *testing.T) {
	c, _, hook := newController(t, Options{})
	require.NoError(t, c.Start(epoch))

	c.Dispatch(epoch, input.SendDrone(world.East))
	c.Tick(epoch.Add(DefaultDroneInterval))

	// A drone fired North from the start hits the wall at once.
	second := c.Dispatch(epoch.Add(600*time.Millisecond), input.SendDrone(world.North))
	assert.Equal(t, []cue.Kind{cue.PitchUp}, cue.KindsOf(second))

	assert.False(t, c.DroneActive())
	assert.Empty(t, c.Tick(epoch.Add(5*time.Second)))

	var cancelled bool
	for _, e := range hook.AllEntries() {
		if e.Message == "drone cancelled" {
			cancelled = true
		}
	}
	assert.True(t, cancelled)
}

func TestDrone_InvalidDirectionRejected(t *testing.T) {
	c, rec, hook := newController(t, Options{})
	require.NoError(t, c.Start(epoch))

	got := c.Dispatch(epoch, input.SendDrone(world.Direction(8)))

	assert.Empty(t, got)
	assert.Empty(t, rec.Events())
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "drone rejected", hook.LastEntry().Message)
	assert.Equal(t, log.DebugLevel, hook.LastEntry().Level)
}

func TestRoundEndsAfterTimeLimit(t *testing.T) {
	var ended []*state.Round
	c, rec, _ := newController(t, Options{
		TimeLimit: 60 * time.Second,
		OnEnd:     func(r *state.Round) { ended = append(ended, r) },
	})
	require.NoError(t, c.Start(epoch))

	c.Dispatch(epoch.Add(10*time.Second), input.Move(world.East))
	c.Dispatch(epoch.Add(20*time.Second), input.SendDrone(world.East))
	assert.Equal(t, 40*time.Second, c.Remaining(epoch.Add(20*time.Second)))

	_, ok := c.FinalCell()
	assert.False(t, ok)

	c.Tick(epoch.Add(60 * time.Second))
	assert.Equal(t, state.Ended, c.Phase())
	assert.False(t, c.DroneActive())

	final, ok := c.FinalCell()
	require.True(t, ok)
	assert.Equal(t, world.Position{Col: 1}, final)

	before := len(rec.Events())
	got := c.Dispatch(epoch.Add(61*time.Second), input.Move(world.East), input.Probe(), input.PlaceMarker())
	assert.Empty(t, got)
	assert.Len(t, rec.Events(), before)
	assert.Equal(t, world.Position{Col: 1}, c.Round().Player.Cell)
	assert.Empty(t, c.Tick(epoch.Add(62*time.Second)))

	// Ended is terminal and the hook fires once.
	assert.Error(t, c.Start(epoch.Add(63*time.Second)))
	assert.Len(t, ended, 1)
	assert.Equal(t, time.Duration(0), c.Remaining(epoch.Add(63*time.Second)))
}

func TestDispatchEndsRoundBeforeHandlingIntents(t *testing.T) {
	c, rec, _ := newController(t, Options{TimeLimit: time.Second})
	require.NoError(t, c.Start(epoch))

	got := c.Dispatch(epoch.Add(time.Second), input.Move(world.East))

	assert.Empty(t, got)
	assert.Empty(t, rec.Events())
	assert.Equal(t, state.Ended, c.Phase())
	final, _ := c.FinalCell()
	assert.Equal(t, world.Position{}, final)
}

func TestReplayOnSameMaze(t *testing.T) {
	c, _, _ := newController(t, Options{TimeLimit: time.Second})
	require.NoError(t, c.Start(epoch))
	c.Dispatch(epoch, input.PlaceMarker(), input.Move(world.East))
	c.Tick(epoch.Add(time.Second))
	require.Equal(t, state.Ended, c.Phase())

	again, rec, _ := newControllerFor(t, gameplay.ResetRound(c.Round()), Options{})
	require.NoError(t, again.Start(epoch.Add(2*time.Second)))

	assert.Same(t, c.Maze(), again.Maze())
	assert.Equal(t, world.Position{}, again.Round().Player.Cell)
	assert.Empty(t, again.Markers())

	got := again.Dispatch(epoch.Add(2*time.Second), input.Move(world.East))
	assert.Equal(t, []cue.Kind{cue.Click}, cue.KindsOf(got))
	assert.Equal(t, got, rec.Events())
}

func TestRemaining_NotStarted(t *testing.T) {
	c, _, _ := newController(t, Options{TimeLimit: 30 * time.Second})
	assert.Equal(t, 30*time.Second, c.Remaining(epoch))
	assert.Equal(t, 4, c.Maze().Width())
}
