package state

import (
	"time"

	"github.com/google/uuid"

	"echomaze/pkg/engine/world"
	"echomaze/pkg/game/markers"
)

// Phase is the round's lifecycle stage
type Phase int

// Round phases
const (
	NotStarted Phase = iota
	Running
	Ended
)

// String returns the phase name
func (p Phase) String() string {
	switch p {
	case NotStarted:
		return "not-started"
	case Running:
		return "running"
	case Ended:
		return "ended"
	default:
		return "unknown"
	}
}

// Player is the player's state: where they stand and the markers they dropped.
type Player struct {
	// Cell is only changed by the movement engine.
	Cell world.Position

	Markers *markers.Registry
}

// NewPlayer creates a player standing on start.
func NewPlayer(start world.Position, policy markers.RecallPolicy) *Player {
	return &Player{
		Cell:    start,
		Markers: markers.NewRegistry(policy),
	}
}

// Round is the aggregate state of one round, passed explicitly to every
// component operation.
type Round struct {
	ID     uuid.UUID
	Seed   int64
	Maze   *world.Maze
	Player *Player
	Start  world.Position

	Phase     Phase
	StartedAt time.Time
	Deadline  time.Time

	// Final is the player's frozen cell, valid once Phase is Ended.
	Final world.Position

	Messages []string
}

// NewRound creates a round that has not started yet
func NewRound(maze *world.Maze, start world.Position, policy markers.RecallPolicy) *Round {
	return &Round{
		ID:       uuid.New(),
		Maze:     maze,
		Player:   NewPlayer(start, policy),
		Start:    start,
		Phase:    NotStarted,
		Messages: make([]string, 0),
	}
}

// Freeze ends the round and records the player's cell for the guess.
func (r *Round) Freeze() {
	r.Final = r.Player.Cell
	r.Phase = Ended
}

// AddMessage adds a message to the round's message log
func (r *Round) AddMessage(msg string) {
	const maxMessages = 5
	r.Messages = append(r.Messages, msg)

	// Keep only the last maxMessages
	if len(r.Messages) > maxMessages {
		r.Messages = r.Messages[len(r.Messages)-maxMessages:]
	}
}

// ClearMessages clears all messages
func (r *Round) ClearMessages() {
	r.Messages = make([]string, 0)
}
