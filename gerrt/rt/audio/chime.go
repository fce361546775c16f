// Package audio plays the short chime that marks each assembly step.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gerkit/gerkit/gerrt/rt/core"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate    = beep.SampleRate(44100)
	chimeLength   = 180 * time.Millisecond
	baseFrequency = 440.0
	volume        = 0.25
)

// pentatonic steps keep consecutive chimes consonant
var scale = []float64{0, 2, 4, 7, 9}

// Chime is safe to use when audio is unavailable; Play is then a no-op.
type Chime struct {
	mu          sync.Mutex
	initialized bool
	log         core.Logger
}

// NewChime opens the audio device. Failure is logged and leaves the chime
// silent.
func NewChime(log core.Logger) *Chime {
	c := &Chime{log: core.OrNop(log)}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		c.log.Warnf("audio: disabled: %v", err)
		return c
	}
	c.initialized = true
	return c
}

// Silent returns a chime that never touches the audio device.
func Silent() *Chime { return &Chime{log: core.NewNopLogger()} }

func (c *Chime) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initialized
}

// Frequency of the n-th step, walking up a pentatonic scale.
func Frequency(step int) float64 {
	if step < 0 {
		step = 0
	}
	octave := step / len(scale)
	semis := scale[step%len(scale)] + 12*float64(octave%2)
	return baseFrequency * math.Pow(2, semis/12)
}

// Tone builds the finite streamer for one step.
func Tone(step int) (beep.Streamer, error) {
	sine, err := generators.SineTone(sampleRate, Frequency(step))
	if err != nil {
		return nil, err
	}
	return &effects.Volume{
		Streamer: beep.Take(sampleRate.N(chimeLength), sine),
		Base:     2,
		Volume:   math.Log2(volume),
	}, nil
}

func (c *Chime) Play(step int) {
	if !c.Enabled() {
		return
	}
	s, err := Tone(step)
	if err != nil {
		c.log.Warnf("audio: tone %d: %v", step, err)
		return
	}
	speaker.Play(s)
}

func (c *Chime) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	c.initialized = false
}
