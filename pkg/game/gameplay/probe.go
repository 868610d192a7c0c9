package gameplay

import (
	"echomaze/pkg/engine/world"
	"echomaze/pkg/game/cue"
	"echomaze/pkg/game/state"
)

// Probe checks the four walls around the player in West, North, East, South
// order: a click for a wall, a bell for an opening. It always returns four cues.
func Probe(m *world.Maze, p *state.Player) [4]cue.Event {
	var out [4]cue.Event
	for i, d := range world.ProbeOrder() {
		kind := cue.Bell
		if m.HasWall(p.Cell, d) {
			kind = cue.Click
		}
		out[i] = cue.New(kind, p.Cell, d)
	}
	return out
}
