package object

// ProjectileSize is the edge length of a projectile's square volume.
const ProjectileSize = 7.0

// Projectile is a shot fired upward by the player.
type Projectile struct {
	Body
	VY float64 // Upward speed in units per second
}

// NewProjectile creates a projectile at (x, y) traveling upward at speed.
func NewProjectile(id ID, x, y, speed float64) *Projectile {
	return &Projectile{
		Body: Body{
			ID:     id,
			Kind:   KindProjectile,
			X:      x,
			Y:      y,
			Volume: Rect(ProjectileSize, ProjectileSize),
		},
		VY: speed,
	}
}

// Update moves the projectile and removes it once it has left the play area.
func (p *Projectile) Update(ctx UpdateContext) (bool, error) {
	if p.IsDestroyed() {
		return true, nil
	}

	p.Y += p.VY * ctx.Delta.Seconds()

	if ctx.Bounds != nil && !Overlaps(p, ctx.Bounds) {
		return true, nil // Left the play area
	}
	return false, nil
}
