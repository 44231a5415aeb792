// Package config centralizes the tunables of the session hosts and clients.
package config

import "time"

// View resolution - the scene in logical units, one unit per 5 world units.
// Actual rendering scales to fit terminal size.
const (
	ViewScale  = 5.0
	ViewWidth  = 89  // Logical viewport width (445 / 5)
	ViewHeight = 154 // Logical viewport height in sub-pixels (768 / 5), so 77 terminal rows
)

// Max render resolution. Larger terminals get a centered, bordered play area.
const (
	MaxTermWidth  = 60
	MaxTermHeight = 52
)

// Player
const (
	PlayerSpeed       = 420.0 // World units per second while a direction key is held
	MaxUsernameLength = 16    // Maximum display length for player usernames
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Effects
const (
	BurstParticles = 10
	BurstLifetime  = 0.5 // Seconds
	BurstSpeed     = 60.0
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Server tick rate
const (
	ServerTickRate = 60
	ServerTickTime = time.Second / ServerTickRate
)
