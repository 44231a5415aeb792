package config

// Settings holds the per-session toggles chosen on the menu.
// It is created at session start and passed by value to the match host
// and the audio player; nothing reads it from a global.
type Settings struct {
	Music bool // Background music loop
	Sound bool // Sound effects
}

// DefaultSettings returns the settings a new session starts with.
func DefaultSettings() Settings {
	return Settings{Music: true, Sound: true}
}

// ToggleMusic returns a copy with music flipped.
func (s Settings) ToggleMusic() Settings {
	s.Music = !s.Music
	return s
}

// ToggleSound returns a copy with sound effects flipped.
func (s Settings) ToggleSound() Settings {
	s.Sound = !s.Sound
	return s
}
