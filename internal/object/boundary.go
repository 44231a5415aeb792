package object

import "github.com/tomz197/blastar/internal/physics"

// Boundary is the visible play area.
type Boundary struct {
	Body
}

// NewBoundary creates a play area of the given size centered on (x, y).
func NewBoundary(id ID, x, y, width, height float64) *Boundary {
	return &Boundary{
		Body: Body{
			ID:     id,
			Kind:   KindBoundary,
			X:      x,
			Y:      y,
			Volume: Rect(width, height),
		},
	}
}

// Contains reports whether o's bounding box lies entirely inside the play area.
func (b *Boundary) Contains(o Object) bool {
	ob := o.Header()
	w, h := ob.Volume.Extent()
	return physics.RectContains(b.X, b.Y, b.Volume.Width, b.Volume.Height, ob.X, ob.Y, w, h)
}

// ClampX limits x to the horizontal extent of the play area, keeping a margin on both sides.
func (b *Boundary) ClampX(x, margin float64) float64 {
	lo := b.X - b.Volume.Width/2 + margin
	hi := b.X + b.Volume.Width/2 - margin
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Top returns the y coordinate of the play area's upper edge.
func (b *Boundary) Top() float64 {
	return b.Y + b.Volume.Height/2
}

// Update is a no-op; the boundary is static.
func (b *Boundary) Update(UpdateContext) (bool, error) {
	return false, nil
}
