package client

import (
	"math"
	"math/rand"

	"github.com/tomz197/blastar/internal/draw"
	"github.com/tomz197/blastar/internal/loop/config"
)

// particle is a short-lived spark of a burst, in world coordinates.
type particle struct {
	X, Y        float64 // Position
	VX, VY      float64 // Velocity
	Lifetime    float64 // Seconds remaining
	MaxLifetime float64 // Initial lifetime (for fade calculation)
	Drag        float64 // Velocity decay (1.0 = no drag)
}

// spawnBurst appends count particles flying out of (x, y) in a circular pattern.
func spawnBurst(particles []particle, rng *rand.Rand, x, y float64, count int, speed, lifetime float64) []particle {
	for i := 0; i < count; i++ {
		// Random direction
		angle := rng.Float64() * 2 * math.Pi
		// Random speed variation (50% to 150%)
		spd := speed * (0.5 + rng.Float64())
		// Random lifetime variation (50% to 100%)
		life := lifetime * (0.5 + rng.Float64()*0.5)

		particles = append(particles, particle{
			X:           x,
			Y:           y,
			VX:          math.Cos(angle) * spd,
			VY:          math.Sin(angle) * spd,
			Lifetime:    life,
			MaxLifetime: life,
			Drag:        0.92,
		})
	}
	return particles
}

// updateParticles advances every particle by dt seconds and drops expired ones.
func updateParticles(particles []particle, dt float64) []particle {
	kept := particles[:0]
	for i := range particles {
		p := particles[i]
		p.Lifetime -= dt
		if p.Lifetime <= 0 {
			continue
		}

		dragFactor := math.Pow(p.Drag, dt*60) // Normalize drag to ~60fps
		p.VX *= dragFactor
		p.VY *= dragFactor
		p.X += p.VX * dt
		p.Y += p.VY * dt
		kept = append(kept, p)
	}
	return kept
}

// drawParticles plots each particle as a single pixel, dimming as it fades.
func drawParticles(c *draw.Canvas, particles []particle) {
	for _, p := range particles {
		color := draw.ColorBrightYellow
		if p.Lifetime < p.MaxLifetime/2 {
			color = draw.ColorRed
		}
		c.SetColor(color)
		v := toView(p.X, p.Y)
		c.SetFloat(v.X, v.Y)
	}
}

// burstSpeed is the base spark speed in world units per second.
const burstSpeed = config.BurstSpeed * config.ViewScale
