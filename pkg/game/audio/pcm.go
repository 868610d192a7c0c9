package audio

import (
	"encoding/binary"
	"math"
	"math/rand"
	"time"

	"echomaze/pkg/engine/world"
	"echomaze/pkg/game/cue"
)

// SampleRate is the output rate in Hz. Samples are 16 bit little endian stereo.
const SampleRate = 44100

const bytesPerFrame = 4

// wave produces one mono sample in [-1,1] for sample i of n.
type wave func(i, n int) float64

func seconds(s float64) int {
	return int(s * SampleRate)
}

func sine(freq float64) wave {
	return func(i, _ int) float64 {
		return math.Sin(2 * math.Pi * freq * float64(i) / SampleRate)
	}
}

func square(freq float64) wave {
	return func(i, n int) float64 {
		if math.Sin(2*math.Pi*freq*float64(i)/SampleRate) >= 0 {
			return 0.6
		}
		return -0.6
	}
}

// sweep glides linearly from one frequency to another.
func sweep(from, to float64) wave {
	return func(i, n int) float64 {
		t := float64(i) / SampleRate
		dur := float64(n) / SampleRate
		// Phase of a linear chirp.
		phase := 2 * math.Pi * (from*t + (to-from)*t*t/(2*dur))
		return math.Sin(phase)
	}
}

// noise is seeded so every render of a cue is identical.
func noise(seed int64) wave {
	rng := rand.New(rand.NewSource(seed))
	return func(_, _ int) float64 {
		return rng.Float64()*2 - 1
	}
}

func mix(a, b wave, gainB float64) wave {
	return func(i, n int) float64 {
		return (a(i, n) + gainB*b(i, n)) / (1 + gainB)
	}
}

// decay applies an exponential fade with the given time constant.
func decay(w wave, tau float64) wave {
	return func(i, n int) float64 {
		return w(i, n) * math.Exp(-float64(i)/SampleRate/tau)
	}
}

// swell rises and falls over the whole sample.
func swell(w wave) wave {
	return func(i, n int) float64 {
		return w(i, n) * math.Sin(math.Pi*float64(i)/float64(n))
	}
}

// lowpass smooths w with a one pole filter.
func lowpass(w wave, alpha float64) wave {
	var prev float64
	return func(i, n int) float64 {
		prev += alpha * (w(i, n) - prev)
		return prev
	}
}

// segment is a run of samples rendered from one wave.
type segment struct {
	w      wave
	frames int
	gain   float64
}

func silence(frames int) segment {
	return segment{w: func(int, int) float64 { return 0 }, frames: frames}
}

// pan returns left and right gains for a cue heard from direction d.
func pan(d world.Direction) (left, right float64) {
	switch d {
	case world.West:
		return 1, 0.35
	case world.East:
		return 0.35, 1
	default:
		return 1, 1
	}
}

// render writes the segments as interleaved stereo PCM.
func render(segments []segment, d world.Direction) []byte {
	total := 0
	for _, s := range segments {
		total += s.frames
	}

	left, right := pan(d)
	buf := make([]byte, total*bytesPerFrame)
	off := 0
	for _, s := range segments {
		for i := 0; i < s.frames; i++ {
			v := s.w(i, s.frames) * s.gain
			binary.LittleEndian.PutUint16(buf[off:], uint16(toInt16(v*left)))
			binary.LittleEndian.PutUint16(buf[off+2:], uint16(toInt16(v*right)))
			off += bytesPerFrame
		}
	}
	return buf
}

// Duration returns how long pcm takes to play.
func Duration(pcm []byte) time.Duration {
	frames := len(pcm) / bytesPerFrame
	return time.Duration(frames) * time.Second / SampleRate
}

func toInt16(v float64) int16 {
	v = math.Max(-1, math.Min(1, v))
	return int16(v * math.MaxInt16)
}

// Render synthesises the sound for one cue.
func Render(e cue.Event) []byte {
	return render(segments(e), e.Direction)
}

func segments(e cue.Event) []segment {
	switch e.Kind {
	case cue.Click:
		return []segment{{w: decay(noise(1), 0.003), frames: seconds(0.02), gain: 0.8}}
	case cue.Whoosh:
		return []segment{{w: swell(lowpass(noise(2), 0.08)), frames: seconds(0.18), gain: 1}}
	case cue.Bell:
		return []segment{{w: decay(mix(sine(880), sine(880*2.76), 0.4), 0.12), frames: seconds(0.4), gain: 0.7}}
	case cue.PitchDown:
		return []segment{{w: swell(sweep(700, 350)), frames: seconds(0.15), gain: 0.7}}
	case cue.PitchUp:
		return []segment{{w: swell(sweep(350, 700)), frames: seconds(0.15), gain: 0.7}}
	case cue.Beep:
		return []segment{{w: square(1000), frames: seconds(0.1), gain: 0.4}}
	case cue.Marker:
		return markerPips(e.MarkerID)
	default:
		return nil
	}
}

// markerPips counts out each decimal digit of id as short pips, with a
// longer pause between digits. A zero digit is one low tone.
func markerPips(id int) []segment {
	if id < 0 {
		id = -id
	}
	digits := []int{}
	for {
		digits = append([]int{id % 10}, digits...)
		id /= 10
		if id == 0 {
			break
		}
	}

	var out []segment
	for di, d := range digits {
		if di > 0 {
			out = append(out, silence(seconds(0.25)))
		}
		if d == 0 {
			out = append(out, segment{w: swell(sine(440)), frames: seconds(0.2), gain: 0.6})
			continue
		}
		for p := 0; p < d; p++ {
			if p > 0 {
				out = append(out, silence(seconds(0.06)))
			}
			out = append(out, segment{w: swell(sine(1200)), frames: seconds(0.06), gain: 0.6})
		}
	}
	return out
}
