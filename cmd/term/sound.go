// cmd/term/sound.go
package main

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// sound - короткие тоны на события матча. Без звуковой карты молча выключается.
type sound struct {
	enabled bool
}

func newSound(mute bool) (*sound, error) {
	if mute {
		return &sound{}, nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return &sound{}, err
	}
	return &sound{enabled: true}, nil
}

func (s *sound) tone(freq float64, d time.Duration) {
	if !s.enabled {
		return
	}
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(d), sine))
}

func (s *sound) kill()     { s.tone(880, 40*time.Millisecond) }
func (s *sound) baseHit()  { s.tone(220, 120*time.Millisecond) }
func (s *sound) waveDone() { s.tone(660, 200*time.Millisecond) }

func (s *sound) close() {
	if s.enabled {
		speaker.Close()
	}
}
