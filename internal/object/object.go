// Package object defines the simulated entities of a match.
//
// Every entity embeds a Body (identity, kind, position and collision volume).
// Kind-specific state lives on the concrete type: only *Hazard carries hit points.
// Callers discriminate variants with a type switch.
package object

import (
	"time"

	"github.com/tomz197/blastar/internal/physics"
)

// ID uniquely identifies an entity within a match.
type ID uint64

// Kind tags the variant of an entity.
type Kind int

const (
	KindPlayer Kind = iota + 1
	KindProjectile
	KindHazard
	KindGround
	KindBoundary
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindProjectile:
		return "projectile"
	case KindHazard:
		return "hazard"
	case KindGround:
		return "ground"
	case KindBoundary:
		return "boundary"
	default:
		return "unknown"
	}
}

// Shape selects how a Volume is interpreted.
type Shape int

const (
	ShapeRect   Shape = iota // Axis-aligned rectangle centered on the position
	ShapeCircle              // Circle centered on the position
)

// Volume is a collision volume centered on a body's position.
type Volume struct {
	Shape  Shape
	Radius float64 // ShapeCircle only
	Width  float64 // ShapeRect only
	Height float64 // ShapeRect only
}

// Circle returns a circular volume.
func Circle(radius float64) Volume {
	return Volume{Shape: ShapeCircle, Radius: radius}
}

// Rect returns a rectangular volume.
func Rect(width, height float64) Volume {
	return Volume{Shape: ShapeRect, Width: width, Height: height}
}

// Extent returns the width and height of the volume's bounding box.
func (v Volume) Extent() (w, h float64) {
	if v.Shape == ShapeCircle {
		return v.Radius * 2, v.Radius * 2
	}
	return v.Width, v.Height
}

// Body is the header shared by every entity.
type Body struct {
	ID        ID
	Kind      Kind
	X, Y      float64 // Center position (y grows upward)
	Volume    Volume
	destroyed bool
}

// Header returns the shared header (implements Object).
func (b *Body) Header() *Body {
	return b
}

// MarkDestroyed marks the body for removal (implements Destructible).
func (b *Body) MarkDestroyed() {
	b.destroyed = true
}

// IsDestroyed returns true if the body is marked for removal (implements Destructible).
func (b *Body) IsDestroyed() bool {
	return b.destroyed
}

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Delta  time.Duration
	Bounds *Boundary // Play area; nil disables bounds checks
}

// Destructible is implemented by objects that can be destroyed/marked for removal.
type Destructible interface {
	// MarkDestroyed marks the object for removal on next update cycle.
	MarkDestroyed()
	// IsDestroyed returns true if the object is marked for destruction.
	IsDestroyed() bool
}

// Object is a simulated entity.
type Object interface {
	Destructible

	// Header returns the identity and geometry shared by all entities.
	Header() *Body

	// Update advances the object by ctx.Delta. Returns true if the object should be removed.
	Update(ctx UpdateContext) (remove bool, err error)
}

// Overlaps reports whether the collision volumes of a and b intersect.
func Overlaps(a, b Object) bool {
	ba, bb := a.Header(), b.Header()
	va, vb := ba.Volume, bb.Volume

	switch {
	case va.Shape == ShapeCircle && vb.Shape == ShapeCircle:
		return physics.CirclesOverlap(ba.X, ba.Y, va.Radius, bb.X, bb.Y, vb.Radius)
	case va.Shape == ShapeCircle:
		return physics.CircleRectOverlap(ba.X, ba.Y, va.Radius, bb.X, bb.Y, vb.Width, vb.Height)
	case vb.Shape == ShapeCircle:
		return physics.CircleRectOverlap(bb.X, bb.Y, vb.Radius, ba.X, ba.Y, va.Width, va.Height)
	default:
		return physics.RectsOverlap(ba.X, ba.Y, va.Width, va.Height, bb.X, bb.Y, vb.Width, vb.Height)
	}
}
