package match

import (
	"github.com/tomz197/blastar/internal/object"
)

// Sound is the key of a sound effect for the audio collaborator.
type Sound string

const (
	SoundLaserShot Sound = "laserShot" // Projectile fired
	SoundQuietHit  Sound = "quietHit"  // Non-lethal hit
	SoundCoin      Sound = "coin"      // Hazard destroyed by a hit
	SoundGroundHit Sound = "groundHit" // Hazard reached the ground
	SoundExplosion Sound = "explosion" // Ground took damage
	SoundPause     Sound = "pause"     // Pause toggled
)

// Outcome classifies what a collision did.
type Outcome int

const (
	OutcomeIgnored     Outcome = iota // Pair has no rule, an id is stale, or the match is over
	OutcomeHit                        // Projectile damaged a hazard
	OutcomeKill                       // Projectile destroyed a hazard
	OutcomeGroundHit                  // Hazard destroyed on the ground; ground damaged
	OutcomeGroundSpent                // Hazard destroyed on the ground after game over; no damage
)

func (o Outcome) String() string {
	switch o {
	case OutcomeHit:
		return "hit"
	case OutcomeKill:
		return "kill"
	case OutcomeGroundHit:
		return "ground hit"
	case OutcomeGroundSpent:
		return "ground spent"
	default:
		return "ignored"
	}
}

// CollisionResult is the effect of resolving one contact.
type CollisionResult struct {
	Outcome     Outcome
	Sounds      []Sound
	ScoreDelta  int
	GroundDelta int         // Zero or negative
	Destroyed   []object.ID // Entities removed by this resolution
	GameOver    bool        // This resolution closed the game-over latch
}

// FireResult is the effect of a fire request.
type FireResult struct {
	ID    object.ID // New projectile; zero when not fired
	Sound Sound
	OK    bool
}

// Visual is the render state of one live entity.
type Visual struct {
	ID       object.ID
	Kind     object.Kind
	X, Y     float64 // Center
	W, H     float64 // Bounding box
	Rotation float64 // Radians
	Opacity  float64 // 1 for everything but damaged hazards

	Stage         object.HazardStage // Hazards only
	StageProgress float64            // Progress of Stage in [0, 1]
}

// TickResult reports everything a tick changed.
type TickResult struct {
	Visuals      []Visual          // Every live entity after the tick
	Destroyed    []object.ID       // Removed since the previous tick
	Collisions   []CollisionResult // Contacts resolved during this tick, in detection order
	Sounds       []Sound           // Sounds produced by this tick's collisions
	State        State
	Score        int
	GroundHP     int
	Band         object.Band
	SessionEnded bool // Game over and the end delay has elapsed
}
