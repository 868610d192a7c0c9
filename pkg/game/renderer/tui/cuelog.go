package tui

import (
	"sync"

	"echomaze/pkg/game/cue"
)

// DefaultCueLogSize is how many cues a CueLog keeps.
const DefaultCueLogSize = 64

// CueLog is a cue sink that remembers the most recent cues so the screen
// can show them as text.
type CueLog struct {
	mu      sync.Mutex
	size    int
	entries []cue.Event
}

// NewCueLog creates a log holding up to size cues.
func NewCueLog(size int) *CueLog {
	if size <= 0 {
		size = DefaultCueLogSize
	}
	return &CueLog{size: size}
}

// Play implements cue.Sink.
func (l *CueLog) Play(e cue.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, e)
	if len(l.entries) > l.size {
		l.entries = append(l.entries[:0:0], l.entries[len(l.entries)-l.size:]...)
	}
}

// Recent returns the logged cues, oldest first.
func (l *CueLog) Recent() []cue.Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]cue.Event(nil), l.entries...)
}

// Reset forgets every logged cue.
func (l *CueLog) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}
