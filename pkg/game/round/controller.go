// Package round runs one timed round: it owns the round state, turns player
// intents into cues, paces the drone and ends the round when time is up.
package round

import (
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"echomaze/pkg/engine/input"
	"echomaze/pkg/engine/world"
	"echomaze/pkg/game/cue"
	"echomaze/pkg/game/gameplay"
	"echomaze/pkg/game/markers"
	"echomaze/pkg/game/sonar"
	"echomaze/pkg/game/state"
)

const (
	// DefaultTimeLimit is the round length when Options leaves it unset.
	DefaultTimeLimit = 60 * time.Second
	// DefaultDroneInterval is the delay between drone cells, two cells a second.
	DefaultDroneInterval = 500 * time.Millisecond
)

// ErrAlreadyStarted is returned by Start once the round has left NotStarted.
var ErrAlreadyStarted = errors.New("round already started")

// Options configures a Controller. Zero values select the defaults.
type Options struct {
	TimeLimit     time.Duration
	DroneInterval time.Duration

	// Sink receives every cue the controller emits, in order.
	Sink cue.Sink

	// OnEnd is called once, when the round ends.
	OnEnd func(r *state.Round)

	Logger *log.Logger
}

// Controller drives a single round. It is not safe for concurrent use; the
// main loop owns it and calls Dispatch and Tick from one goroutine.
type Controller struct {
	round *state.Round
	opts  Options
	log   *log.Entry

	drone     *sonar.Run
	droneNext time.Time
}

// New creates a controller for r, which must not have started.
func New(r *state.Round, opts Options) *Controller {
	if opts.TimeLimit <= 0 {
		opts.TimeLimit = DefaultTimeLimit
	}
	if opts.DroneInterval <= 0 {
		opts.DroneInterval = DefaultDroneInterval
	}
	if opts.Sink == nil {
		opts.Sink = cue.Discard
	}
	if opts.Logger == nil {
		opts.Logger = log.StandardLogger()
	}

	return &Controller{
		round: r,
		opts:  opts,
		log: opts.Logger.WithFields(log.Fields{
			"component": "round",
			"round":     r.ID.String(),
		}),
	}
}

// Start moves the round to Running. The deadline is fixed here and no
// intent can move it.
func (c *Controller) Start(now time.Time) error {
	if c.round.Phase != state.NotStarted {
		return fmt.Errorf("%w: phase %s", ErrAlreadyStarted, c.round.Phase)
	}

	c.round.Phase = state.Running
	c.round.StartedAt = now
	c.round.Deadline = now.Add(c.opts.TimeLimit)

	c.log.WithFields(log.Fields{
		"size":     fmt.Sprintf("%dx%d", c.round.Maze.Width(), c.round.Maze.Height()),
		"seed":     c.round.Seed,
		"start":    c.round.Start.String(),
		"deadline": c.round.Deadline.Format(time.RFC3339),
	}).Info("round started")
	return nil
}

// Dispatch handles the intents of one input tick in arrival order and
// returns the cues they produced. A horizontal move directly followed by a
// vertical one (or the reverse) is resolved as one diagonal press,
// horizontal first. Outside Running nothing happens.
func (c *Controller) Dispatch(now time.Time, intents ...input.Intent) []cue.Event {
	c.checkTimer(now)
	if c.round.Phase != state.Running {
		return nil
	}

	var out []cue.Event
	for i := 0; i < len(intents); i++ {
		in := intents[i]
		switch in.Action {
		case input.ActionMove:
			horizontal, vertical := slot(in.Direction)
			if horizontal == nil && vertical == nil {
				c.log.WithField("dir", int(in.Direction)).Debug("move with invalid direction ignored")
				continue
			}
			if i+1 < len(intents) && intents[i+1].Action == input.ActionMove {
				nextH, nextV := slot(intents[i+1].Direction)
				switch {
				case horizontal != nil && nextV != nil:
					vertical = nextV
					i++
				case vertical != nil && nextH != nil:
					horizontal = nextH
					i++
				}
			}
			out = append(out, c.move(horizontal, vertical)...)

		case input.ActionProbe:
			probe := gameplay.Probe(c.round.Maze, c.round.Player)
			out = append(out, probe[:]...)

		case input.ActionSendDrone:
			out = append(out, c.launchDrone(now, in.Direction)...)

		case input.ActionPlaceMarker:
			ev := c.round.Player.Markers.Place(c.round.Player.Cell)
			c.log.WithFields(log.Fields{
				"marker": ev.MarkerID,
				"cell":   ev.Cell.String(),
			}).Debug("marker placed")
			out = append(out, ev)
		}
	}

	c.play(out)
	return out
}

// move resolves one tick's horizontal and vertical slots.
func (c *Controller) move(horizontal, vertical *world.Direction) []cue.Event {
	results, err := gameplay.ResolveTick(c.round.Maze, c.round.Player, horizontal, vertical)
	if err != nil {
		c.log.WithError(err).Debug("move rejected")
	}
	for _, res := range results {
		c.log.WithFields(log.Fields{
			"dir":     res.Direction.String(),
			"outcome": res.Outcome.String(),
			"cell":    res.To.String(),
		}).Debug("move")
	}
	return gameplay.Cues(results)
}

// slot places d in the horizontal or vertical slot of a tick. Invalid
// directions fit neither.
func slot(d world.Direction) (horizontal, vertical *world.Direction) {
	switch {
	case d.IsHorizontal():
		return &d, nil
	case d.IsVertical():
		return nil, &d
	default:
		return nil, nil
	}
}

// launchDrone replaces the active drone and emits the cues for its first
// cell straight away. Later cells follow from Tick.
func (c *Controller) launchDrone(now time.Time, dir world.Direction) []cue.Event {
	run, err := sonar.Launch(c.round.Maze, c.round.Player.Cell, dir)
	if err != nil {
		c.log.WithError(err).Debug("drone rejected")
		return nil
	}

	if c.drone != nil {
		c.log.WithField("visited", c.drone.Visited()).Debug("drone cancelled")
		c.drone.Cancel()
	}
	c.drone = run
	c.droneNext = now.Add(c.opts.DroneInterval)

	c.log.WithFields(log.Fields{
		"dir":  dir.String(),
		"cell": run.Start().String(),
	}).Debug("drone launched")

	return c.stepDrone()
}

// Tick checks the timer and advances the drone by one cell when its step
// is due. It never blocks.
func (c *Controller) Tick(now time.Time) []cue.Event {
	c.checkTimer(now)
	if c.round.Phase != state.Running || c.drone == nil || now.Before(c.droneNext) {
		return nil
	}

	c.droneNext = c.droneNext.Add(c.opts.DroneInterval)
	if c.droneNext.Before(now) {
		c.droneNext = now.Add(c.opts.DroneInterval)
	}

	out := c.stepDrone()
	c.play(out)
	return out
}

func (c *Controller) stepDrone() []cue.Event {
	batch, ok := c.drone.Next()
	if !ok {
		if err := c.drone.Err(); err != nil {
			c.log.WithError(err).Error("drone terminated")
		}
		c.drone = nil
		return nil
	}
	if c.drone.Done() {
		c.log.WithField("visited", c.drone.Visited()).Debug("drone stopped at wall")
		c.drone = nil
	}
	return batch
}

// checkTimer ends the round once now reaches the deadline.
func (c *Controller) checkTimer(now time.Time) {
	if c.round.Phase != state.Running || now.Before(c.round.Deadline) {
		return
	}

	if c.drone != nil {
		c.drone.Cancel()
		c.drone = nil
	}
	c.round.Freeze()

	c.log.WithFields(log.Fields{
		"final":   c.round.Final.String(),
		"markers": c.round.Player.Markers.Len(),
	}).Info("round ended")

	if c.opts.OnEnd != nil {
		c.opts.OnEnd(c.round)
	}
}

func (c *Controller) play(events []cue.Event) {
	for _, ev := range events {
		c.opts.Sink.Play(ev)
	}
}

// Phase returns the round's current phase.
func (c *Controller) Phase() state.Phase {
	return c.round.Phase
}

// Remaining returns the time left on the clock.
func (c *Controller) Remaining(now time.Time) time.Duration {
	switch c.round.Phase {
	case state.NotStarted:
		return c.opts.TimeLimit
	case state.Running:
		if left := c.round.Deadline.Sub(now); left > 0 {
			return left
		}
	}
	return 0
}

// FinalCell returns the player's frozen cell. ok is false until the round ends.
func (c *Controller) FinalCell() (cell world.Position, ok bool) {
	if c.round.Phase != state.Ended {
		return world.Position{}, false
	}
	return c.round.Final, true
}

// DroneActive reports whether a drone is still in flight.
func (c *Controller) DroneActive() bool {
	return c.drone != nil
}

// Maze returns the round's maze for rendering.
func (c *Controller) Maze() *world.Maze {
	return c.round.Maze
}

// Markers returns the markers placed so far.
func (c *Controller) Markers() []markers.Marker {
	return c.round.Player.Markers.All()
}

// Round returns the underlying round state.
func (c *Controller) Round() *state.Round {
	return c.round
}
