// Package audio turns harvested key indices into sound.
//
// [Engine] synthesizes piano-ish tones through portaudio: one decaying
// triangle-wave voice per struck key, softened by a one-pole low-pass filter
// and a stereo ping-pong delay. [NullPlayer] satisfies [Player] for silent
// runs and tests.
package audio

import (
	"math"
	"sync"

	"github.com/gordonklaus/portaudio"
)

const (
	SampleRate = 44100
	BufferSize = 512

	// Keys is the playable range; harvested indices map 1:1 onto it.
	Keys = 88

	// Oldest voices are dropped past this point to bound callback work.
	maxVoices = 64
)

// Player consumes the key indices harvested each tick.
type Player interface {
	PlayKeys(keys []int)
	Close() error
}

// NullPlayer discards everything. Used for --silent mode and tests.
type NullPlayer struct{}

func (NullPlayer) PlayKeys([]int) {}
func (NullPlayer) Close() error   { return nil }

// KeyFrequency returns the equal-tempered frequency of a key, with A0 at
// index 0 (27.5 Hz) up to C8 at index 87.
func KeyFrequency(key int) float64 {
	return 27.5 * math.Pow(2, float64(key)/12.0)
}

// KeyNoteName returns the conventional name of a key, e.g. 48 -> "A4".
func KeyNoteName(key int) string {
	noteNames := []string{"A", "A#", "B", "C", "C#", "D", "D#", "E", "F", "F#", "G", "G#"}
	octave := key / 12
	name := noteNames[key%12]
	return name + string(rune('0'+octave))
}

type voice struct {
	phase float64
	freq  float64
	amp   float64
	decay float64 // per-sample amplitude factor
}

// Engine is a portaudio-backed Player. PlayKeys may be called from any
// goroutine; the voice list is the only state shared with the audio
// callback and is mutex-guarded.
type Engine struct {
	stream *portaudio.Stream
	volume float64

	mu     sync.Mutex
	voices []voice

	// Signal chain state, touched only by the callback.
	filterState [2]float64
	delayLine   [2][]float64
	delayHead   int
}

// NewEngine opens the default output device and starts streaming. The
// volume is a master gain in [0, 1].
func NewEngine(volume float64) (*Engine, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, err
	}

	// 0.35 second delay tail
	delayLen := int(float64(SampleRate) * 0.35)
	e := &Engine{
		volume:    volume,
		voices:    make([]voice, 0, maxVoices),
		delayLine: [2][]float64{make([]float64, delayLen), make([]float64, delayLen)},
	}

	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, e.process)
	if err != nil {
		portaudio.Terminate()
		return nil, err
	}
	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, err
	}

	e.stream = stream
	return e, nil
}

// PlayKeys starts one voice per key. Indices outside [0, 88) are ignored.
// Chord gain scales with 1/sqrt(n) so dense harvests do not clip.
func (e *Engine) PlayKeys(keys []int) {
	if len(keys) == 0 {
		return
	}
	gain := 0.9 / math.Sqrt(float64(len(keys)))

	e.mu.Lock()
	defer e.mu.Unlock()
	for _, key := range keys {
		if key < 0 || key >= Keys {
			continue
		}
		f := KeyFrequency(key)
		e.voices = append(e.voices, voice{
			freq:  f,
			amp:   gain,
			decay: decayFactor(f),
		})
	}
	if len(e.voices) > maxVoices {
		e.voices = e.voices[len(e.voices)-maxVoices:]
	}
}

// Close stops the stream and tears down portaudio.
func (e *Engine) Close() error {
	if e.stream != nil {
		e.stream.Stop()
		e.stream.Close()
	}
	return portaudio.Terminate()
}

// decayFactor gives the per-sample amplitude falloff for a voice. Low notes
// ring longer than high ones, roughly like piano strings.
func decayFactor(freq float64) float64 {
	tau := 1.4 - freq/4186.0 // seconds, ~1.4s at A0 down to ~0.4s at C8
	if tau < 0.25 {
		tau = 0.25
	}
	return math.Exp(-1.0 / (tau * SampleRate))
}

// Triangle wave: softer than a saw, no harsh buzz.
func triangle(phase float64) float64 {
	p := phase - math.Floor(phase)
	return 4.0*math.Abs(p-0.5) - 1.0
}

// One-pole low pass filter.
func lpf(sample, cutoff, dt, state float64) (float64, float64) {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	alpha := dt / (rc + dt)
	out := state + alpha*(sample-state)
	return out, out
}

func (e *Engine) process(out [][]float32) {
	const cutoff = 2400.0
	dt := 1.0 / float64(SampleRate)

	e.mu.Lock()
	defer e.mu.Unlock()

	for i := 0; i < len(out[0]); i++ {
		sampleL, sampleR := 0.0, 0.0

		for j := range e.voices {
			v := &e.voices[j]
			// Slight detune between channels widens the image.
			oscL := triangle(v.phase * 0.999)
			oscR := triangle(v.phase * 1.001)
			sampleL += oscL * v.amp
			sampleR += oscR * v.amp

			v.phase += v.freq * dt
			v.amp *= v.decay
		}

		var outL, outR float64
		outL, e.filterState[0] = lpf(sampleL, cutoff, dt, e.filterState[0])
		outR, e.filterState[1] = lpf(sampleR, cutoff, dt, e.filterState[1])

		// Ping-pong delay: each side feeds back a little of the other.
		delayL := e.delayLine[0][e.delayHead]
		delayR := e.delayLine[1][e.delayHead]
		mixL := outL + delayL*0.25 + delayR*0.1
		mixR := outR + delayR*0.25 + delayL*0.1
		e.delayLine[0][e.delayHead] = mixL * 0.5
		e.delayLine[1][e.delayHead] = mixR * 0.5
		e.delayHead = (e.delayHead + 1) % len(e.delayLine[0])

		out[0][i] = float32(mixL * e.volume)
		out[1][i] = float32(mixR * e.volume)
	}

	// Drop voices that have faded out.
	live := e.voices[:0]
	for _, v := range e.voices {
		if v.amp > 1e-4 {
			live = append(live, v)
		}
	}
	e.voices = live
}
