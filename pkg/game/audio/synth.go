// Package audio plays cues as synthesised sound through ebiten's audio
// context.
package audio

import (
	"errors"
	"sync"
	"time"

	eaudio "github.com/hajimehoshi/ebiten/v2/audio"
	log "github.com/sirupsen/logrus"

	"echomaze/pkg/game/cue"
)

// DefaultCueGap separates cues that arrive together, such as the four
// probe cues, so each one can be heard.
const DefaultCueGap = 150 * time.Millisecond

const queueSize = 64

// ErrAlreadyOpen is returned when a second Synth is opened. ebiten allows
// one audio context per process.
var ErrAlreadyOpen = errors.New("audio context already open")

var (
	contextMu   sync.Mutex
	contextOpen bool
)

// Synth is a cue sink that plays every cue as sound. Play never blocks:
// cues are queued and played in order by a worker goroutine, and dropped
// if the queue is full.
type Synth struct {
	play func(pcm []byte)
	gap  time.Duration
	log  *log.Entry

	cache map[cue.Event][]byte

	queue chan cue.Event
	done  chan struct{}
	wg    sync.WaitGroup
	once  sync.Once
}

// NewSynth opens the audio device. Only one Synth may exist per process.
func NewSynth(logger *log.Logger) (*Synth, error) {
	contextMu.Lock()
	defer contextMu.Unlock()
	if contextOpen {
		return nil, ErrAlreadyOpen
	}
	contextOpen = true

	ctx := eaudio.NewContext(SampleRate)

	var (
		mu      sync.Mutex
		playing []*eaudio.Player
	)
	play := func(pcm []byte) {
		p := ctx.NewPlayerFromBytes(pcm)
		p.Play()

		mu.Lock()
		defer mu.Unlock()
		// Keep players referenced until they finish.
		live := playing[:0]
		for _, old := range playing {
			if old.IsPlaying() {
				live = append(live, old)
			} else {
				_ = old.Close()
			}
		}
		playing = append(live, p)
	}

	return newSynth(play, DefaultCueGap, logger), nil
}

func newSynth(play func(pcm []byte), gap time.Duration, logger *log.Logger) *Synth {
	if logger == nil {
		logger = log.StandardLogger()
	}
	s := &Synth{
		play:  play,
		gap:   gap,
		log:   logger.WithField("component", "audio"),
		cache: make(map[cue.Event][]byte),
		queue: make(chan cue.Event, queueSize),
		done:  make(chan struct{}),
	}
	s.wg.Add(1)
	go s.run()
	return s
}

// Play implements cue.Sink.
func (s *Synth) Play(e cue.Event) {
	select {
	case <-s.done:
		return
	default:
	}

	select {
	case s.queue <- e:
	default:
		s.log.WithField("cue", e.String()).Debug("audio queue full, cue dropped")
	}
}

func (s *Synth) run() {
	defer s.wg.Done()
	for {
		select {
		case <-s.done:
			return
		case e := <-s.queue:
			pcm := s.pcm(e)
			s.play(pcm)

			// Players run asynchronously; hold the next cue until this one
			// has finished.
			select {
			case <-s.done:
				return
			case <-time.After(Duration(pcm) + s.gap):
			}
		}
	}
}

// pcm renders e, reusing earlier renders of the same cue.
func (s *Synth) pcm(e cue.Event) []byte {
	key := cue.Event{Kind: e.Kind, MarkerID: e.MarkerID, Direction: e.Direction}
	if b, ok := s.cache[key]; ok {
		return b
	}
	b := Render(e)
	s.cache[key] = b
	return b
}

// Close stops the worker. Queued cues are discarded.
func (s *Synth) Close() error {
	s.once.Do(func() {
		close(s.done)
	})
	s.wg.Wait()
	return nil
}
