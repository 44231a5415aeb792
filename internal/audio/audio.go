// Package audio plays the sound keys produced by a match.
package audio

import (
	"io"

	"github.com/tomz197/blastar/internal/config"
	"github.com/tomz197/blastar/internal/match"
)

// Player is the audio collaborator of a client session.
type Player interface {
	// Play starts the effect for key. Ignored while sound effects are off.
	Play(key match.Sound)
	// Apply updates the session toggles (music loop, sound effects).
	Apply(settings config.Settings)
	// Close stops all audio.
	Close()
}

// Nop discards everything.
type Nop struct{}

func (Nop) Play(match.Sound)      {}
func (Nop) Apply(config.Settings) {}
func (Nop) Close()                {}

// Bell rings the terminal bell for the loud cues. Used where no audio device
// is available (remote terminals). Music is not supported.
//
// Play writes directly to w, so it must be called from the goroutine that owns w.
type Bell struct {
	w     io.Writer
	sound bool
}

// NewBell creates a bell writing to w.
func NewBell(w io.Writer, settings config.Settings) *Bell {
	return &Bell{w: w, sound: settings.Sound}
}

// Play rings the bell for coin and explosion.
func (b *Bell) Play(key match.Sound) {
	if !b.sound {
		return
	}
	switch key {
	case match.SoundCoin, match.SoundExplosion:
		_, _ = io.WriteString(b.w, "\a")
	}
}

// Apply updates the sound toggle.
func (b *Bell) Apply(settings config.Settings) {
	b.sound = settings.Sound
}

// Close is a no-op.
func (b *Bell) Close() {}

var (
	_ Player = Nop{}
	_ Player = (*Bell)(nil)
	_ Player = (*Speaker)(nil)
)
