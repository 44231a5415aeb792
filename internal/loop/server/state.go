package server

import (
	"github.com/tomz197/blastar/internal/config"
	"github.com/tomz197/blastar/internal/match"
	"github.com/tomz197/blastar/internal/object"
)

// Snapshot is an immutable view of one client's match for rendering.
type Snapshot struct {
	Tick         uint64
	Playing      bool // A match is running for this client
	Visuals      []match.Visual
	State        match.State
	Score        int
	GroundHP     int
	MaxGroundHP  int
	Band         object.Band
	SessionEnded bool
	Players      int // Connected clients
}

// Player returns the ship's visual, if the snapshot has one.
func (s *Snapshot) Player() (match.Visual, bool) {
	return s.find(func(v match.Visual) bool { return v.Kind == object.KindPlayer })
}

// Visual returns the visual of the entity id.
func (s *Snapshot) Visual(id object.ID) (match.Visual, bool) {
	return s.find(func(v match.Visual) bool { return v.ID == id })
}

func (s *Snapshot) find(pred func(match.Visual) bool) (match.Visual, bool) {
	if s == nil {
		return match.Visual{}, false
	}
	for _, v := range s.Visuals {
		if pred(v) {
			return v, true
		}
	}
	return match.Visual{}, false
}

// CommandKind identifies a client request.
type CommandKind int

const (
	CommandStart    CommandKind = iota // Begin a new match
	CommandMove                        // Set the ship's target x
	CommandFire                        // Launch a projectile
	CommandPause                       // Toggle pause
	CommandSettings                    // Replace the session settings
)

func (k CommandKind) String() string {
	switch k {
	case CommandStart:
		return "start"
	case CommandMove:
		return "move"
	case CommandFire:
		return "fire"
	case CommandPause:
		return "pause"
	case CommandSettings:
		return "settings"
	default:
		return "unknown"
	}
}

// Command is a client request, applied at the next tick boundary.
type Command struct {
	Kind     CommandKind
	X        float64         // CommandMove
	Settings config.Settings // CommandStart, CommandSettings
}

// ClientCommand is a command from a specific client.
type ClientCommand struct {
	ClientID int
	Command  Command
}

// ClientEvent represents an event sent from server to client.
type ClientEvent struct {
	Type  ClientEventType
	Sound match.Sound // EventSound
	Score int         // EventGameOver, EventSessionEnded
	X, Y  float64     // EventBurst
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventSound ClientEventType = iota
	EventBurst                 // A hazard was destroyed at X, Y
	EventGameOver
	EventSessionEnded
	EventServerShutdown
)
