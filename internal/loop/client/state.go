package client

import (
	"math/rand"
	"time"

	"github.com/tomz197/blastar/internal/config"
	"github.com/tomz197/blastar/internal/input"
)

// GameState represents the current screen of a client.
type GameState int

const (
	GameStateMenu     GameState = iota // Title screen with toggles
	GameStatePlaying                   // A match is running (active, paused or over)
	GameStateShutdown                  // Server is shutting down
)

// ClientState holds per-session state (input, settings, effects, etc.).
// Each client has its own instance, managed by the Client.
type ClientState struct {
	Input        input.Input
	GameState    GameState       // This client's screen
	Settings     config.Settings // Music and sound toggles for this session
	TargetX      float64         // Ship target in world units
	LastScore    int             // Score of the previous session
	HasLastScore bool
	Running      bool          // Client loop running
	delta        time.Duration // Frame delta time (client-side)

	particles []particle
	rng       *rand.Rand

	shutdownTimer float64 // Countdown before auto-disconnect on shutdown
	isInactive    bool    // Whether the client is in inactive warning state

	// Previous frame, to detect transitions that need a full clear
	prevGameState GameState
	wasInactive   bool
	wasPaused     bool
	wasOver       bool
}

// NewClientState creates a new initialized client state.
func NewClientState(settings config.Settings) *ClientState {
	return &ClientState{
		GameState: GameStateMenu,
		Settings:  settings,
		Running:   true,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}
