package object

import (
	"time"

	"github.com/tomz197/blastar/internal/physics"
)

// MuzzleOffset is how far above the ship's center projectiles appear.
const MuzzleOffset = 25.0

// Player is the ship sliding along the bottom of the play area.
// Only X changes; Y is fixed at creation.
type Player struct {
	Body
	TargetX float64       // Where the ship is gliding to
	Glide   time.Duration // Time to reach a new target

	fromX        float64
	glideElapsed time.Duration
}

// NewPlayer creates a ship at (x, y) with the given collision size.
func NewPlayer(id ID, x, y, width, height float64, glide time.Duration) *Player {
	return &Player{
		Body: Body{
			ID:     id,
			Kind:   KindPlayer,
			X:      x,
			Y:      y,
			Volume: Rect(width, height),
		},
		TargetX:      x,
		Glide:        glide,
		fromX:        x,
		glideElapsed: glide,
	}
}

// MoveTo starts a glide from the current position to x.
func (p *Player) MoveTo(x float64) {
	p.fromX = p.X
	p.TargetX = x
	p.glideElapsed = 0
	if p.Glide <= 0 {
		p.X = x
	}
}

// Gliding reports whether the ship is still moving toward its target.
func (p *Player) Gliding() bool {
	return p.glideElapsed < p.Glide && p.X != p.TargetX
}

// Muzzle returns the position where a new projectile appears.
func (p *Player) Muzzle() (float64, float64) {
	return p.X, p.Y + MuzzleOffset
}

// Update advances the glide toward the target.
func (p *Player) Update(ctx UpdateContext) (bool, error) {
	if p.Glide <= 0 || p.glideElapsed >= p.Glide {
		return false, nil
	}

	p.glideElapsed += ctx.Delta
	if p.glideElapsed >= p.Glide {
		p.glideElapsed = p.Glide
		p.X = p.TargetX
		return false, nil
	}

	t := float64(p.glideElapsed) / float64(p.Glide)
	p.X = physics.Lerp(p.fromX, p.TargetX, t)
	return false, nil
}
