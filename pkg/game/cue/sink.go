package cue

import "sync"

// Sink receives cues in the order the game emits them. Play must not block
// the caller for longer than it takes to queue the sound.
type Sink interface {
	Play(e Event)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(e Event)

// Play calls f(e).
func (f SinkFunc) Play(e Event) {
	f(e)
}

// Discard drops every cue.
var Discard Sink = SinkFunc(func(Event) {})

// Multi fans every cue out to each sink in order.
func Multi(sinks ...Sink) Sink {
	return SinkFunc(func(e Event) {
		for _, s := range sinks {
			s.Play(e)
		}
	})
}

// Recorder is a Sink that keeps every cue it receives.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Play records e.
func (r *Recorder) Play(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of the recorded cues.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Reset clears the recording.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
