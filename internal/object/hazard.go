package object

import (
	"math"
	"time"

	"github.com/tomz197/blastar/internal/motion"
	"github.com/tomz197/blastar/internal/physics"
)

// SizeClass is the divisor applied to the base hazard size.
type SizeClass int

const (
	SizeHalf  SizeClass = 2
	SizeThird SizeClass = 3
)

// HazardStage is the position of a hazard's timeline cursor.
type HazardStage int

const (
	StageDescending HazardStage = iota // Moving from spawn to the hold height
	StageHolding                       // Spinning and growing in place
	StageFalling                       // Dropping onto the ground
	StageDone                          // Timeline finished or abandoned
)

func (s HazardStage) String() string {
	switch s {
	case StageDescending:
		return "descending"
	case StageHolding:
		return "holding"
	case StageFalling:
		return "falling"
	default:
		return "done"
	}
}

// HazardParams holds the randomized and fixed parameters of a new hazard.
type HazardParams struct {
	X       float64   // Horizontal position (fixed for the hazard's lifetime)
	SpawnY  float64   // Starting height, above the visible play area
	HoldY   float64   // Height where the hazard stops to spin
	GroundY float64   // Height the hazard falls to
	Size    float64   // Initial edge length
	Class   SizeClass // Size class the initial size was derived from
	HP      int

	Descend          time.Duration // Spawn -> hold
	GrowTo           float64       // Edge length reached while holding
	Grow             time.Duration
	Revolutions      int           // Full turns while holding
	RevolutionPeriod time.Duration // Time per turn
	Fall             time.Duration // Hold -> ground
}

// Timeline stage names.
const (
	stageDescend = "descend"
	stageHold    = "hold"
	stageFall    = "fall"
	stageRemove  = "remove"
)

// hazardRadiusRatio maps edge length to collision radius.
const hazardRadiusRatio = 1.0 / 3.0

// Hazard is a descending, spinning beachball that damages the ground on contact.
type Hazard struct {
	Body
	HP       int       // Remaining hit points, in [0, MaxHP]
	MaxHP    int       // Hit points at spawn
	Opacity  float64   // HP / MaxHP, for rendering only
	Size     float64   // Current edge length
	Class    SizeClass // Size class at spawn
	Rotation float64   // Radians, decreasing while spinning (clockwise)
	HoldY    float64

	timeline *motion.Timeline
	expired  bool // Timeline reached its terminate stage
}

// NewHazard creates a hazard at its spawn position with its motion timeline attached.
func NewHazard(id ID, p HazardParams) *Hazard {
	h := &Hazard{
		Body: Body{
			ID:   id,
			Kind: KindHazard,
			X:    p.X,
			Y:    p.SpawnY,
		},
		HP:      p.HP,
		MaxHP:   p.HP,
		Opacity: 1,
		Class:   p.Class,
		HoldY:   p.HoldY,
	}
	h.setSize(p.Size)
	h.timeline = h.buildTimeline(p)
	return h
}

func (h *Hazard) buildTimeline(p HazardParams) *motion.Timeline {
	var fromY, fromSize, fromRot float64

	descend := motion.Stage{
		Name:     stageDescend,
		Duration: p.Descend,
		Begin:    func() { fromY = h.Y },
		Step:     func(t float64) { h.Y = physics.Lerp(fromY, p.HoldY, t) },
	}

	grow := motion.Stage{
		Duration: p.Grow,
		Begin:    func() { fromSize = h.Size },
		Step:     func(t float64) { h.setSize(physics.Lerp(fromSize, p.GrowTo, t)) },
	}
	spin := motion.Stage{
		Duration: time.Duration(p.Revolutions) * p.RevolutionPeriod,
		Begin:    func() { fromRot = h.Rotation },
		Step: func(t float64) {
			h.Rotation = fromRot - 2*math.Pi*float64(p.Revolutions)*t
		},
	}

	var fallFrom float64
	fall := motion.Stage{
		Name:     stageFall,
		Duration: p.Fall,
		Begin:    func() { fallFrom = h.Y },
		Step:     func(t float64) { h.Y = physics.Lerp(fallFrom, p.GroundY, t) },
	}

	terminate := motion.Stage{
		Name:  stageRemove,
		Begin: func() { h.expired = true },
	}

	return motion.NewTimeline(descend, motion.Group(stageHold, grow, spin), fall, terminate)
}

func (h *Hazard) setSize(size float64) {
	h.Size = size
	h.Volume = Circle(size * hazardRadiusRatio)
}

// Hit applies one projectile hit of the given damage. The hit is lethal when the
// hazard had no more than damage hit points left before it landed. Hit points
// never drop below zero and opacity follows the remaining fraction.
func (h *Hazard) Hit(damage int) (lethal bool) {
	lethal = h.HP <= damage
	h.HP -= damage
	if h.HP < 0 {
		h.HP = 0
	}
	if h.MaxHP > 0 {
		h.Opacity = float64(h.HP) / float64(h.MaxHP)
	}
	return lethal
}

// Stage returns where the hazard is in its timeline.
func (h *Hazard) Stage() HazardStage {
	if h.timeline.Cancelled() {
		return StageDone
	}
	switch h.timeline.StageName() {
	case stageDescend:
		return StageDescending
	case stageHold:
		return StageHolding
	case stageFall:
		return StageFalling
	default:
		return StageDone
	}
}

// StageProgress returns the progress of the current stage in [0, 1].
// Renderers use it to warn before the fall.
func (h *Hazard) StageProgress() float64 {
	return h.timeline.Progress()
}

// Expired reports whether the timeline ran to its terminate stage.
func (h *Hazard) Expired() bool {
	return h.expired
}

// MarkDestroyed marks the hazard for removal and abandons its timeline.
func (h *Hazard) MarkDestroyed() {
	h.Body.MarkDestroyed()
	h.timeline.Cancel()
}

// Update advances the motion timeline.
func (h *Hazard) Update(ctx UpdateContext) (bool, error) {
	if h.IsDestroyed() {
		return true, nil
	}
	h.timeline.Advance(ctx.Delta)
	return h.expired, nil
}
