package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/tomz197/blastar/internal/config"
	"github.com/tomz197/blastar/internal/match"
)

// SampleRate is the output rate of the local speaker.
const SampleRate = beep.SampleRate(44100)

const musicVolume = 0.08

// Speaker plays effects and the music loop on the local audio device.
type Speaker struct {
	mu       sync.Mutex
	mixer    *beep.Mixer
	music    *beep.Ctrl
	settings config.Settings
	closed   bool
}

// NewSpeaker initializes the audio device and starts the mixer.
func NewSpeaker(settings config.Settings) (*Speaker, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}

	s := &Speaker{
		mixer: &beep.Mixer{},
		music: &beep.Ctrl{
			Streamer: newVolume(newMusicGenerator(SampleRate), musicVolume),
			Paused:   !settings.Music,
		},
		settings: settings,
	}
	s.mixer.Add(s.music)
	speaker.Play(s.mixer)
	return s, nil
}

// Play mixes in the effect for key.
func (s *Speaker) Play(key match.Sound) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || !s.settings.Sound {
		return
	}
	effect := Effect(key, SampleRate)
	if effect == nil {
		return
	}

	speaker.Lock()
	s.mixer.Add(effect)
	speaker.Unlock()
}

// Apply pauses or resumes the music loop and updates the effects toggle.
func (s *Speaker) Apply(settings config.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.settings = settings

	speaker.Lock()
	s.music.Paused = !settings.Music
	speaker.Unlock()
}

// Close silences everything and releases the device.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true

	speaker.Lock()
	s.music.Paused = true
	s.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
}
