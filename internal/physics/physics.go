// Package physics provides collision detection and distance utilities.
package physics

import "math"

// Distance calculates the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// PointInCircle checks if a point is within radius of a target position.
func PointInCircle(px, py, cx, cy, radius float64) bool {
	return DistanceSquared(px, py, cx, cy) <= radius*radius
}

// CirclesOverlap checks if two circles overlap.
func CirclesOverlap(x1, y1, r1, x2, y2, r2 float64) bool {
	minDist := r1 + r2
	return DistanceSquared(x1, y1, x2, y2) < minDist*minDist
}

// RectsOverlap checks if two axis-aligned rectangles overlap.
// Rectangles are described by their center and full width/height.
func RectsOverlap(x1, y1, w1, h1, x2, y2, w2, h2 float64) bool {
	return math.Abs(x1-x2)*2 < w1+w2 && math.Abs(y1-y2)*2 < h1+h2
}

// CircleRectOverlap checks if a circle overlaps a center-anchored axis-aligned rectangle.
func CircleRectOverlap(cx, cy, r, rx, ry, w, h float64) bool {
	// Closest point on the rectangle to the circle center
	nx := clamp(cx, rx-w/2, rx+w/2)
	ny := clamp(cy, ry-h/2, ry+h/2)
	return DistanceSquared(cx, cy, nx, ny) < r*r
}

// RectContains reports whether the inner rectangle lies entirely inside the outer one.
func RectContains(ox, oy, ow, oh, ix, iy, iw, ih float64) bool {
	return ix-iw/2 >= ox-ow/2 && ix+iw/2 <= ox+ow/2 &&
		iy-ih/2 >= oy-oh/2 && iy+ih/2 <= oy+oh/2
}

// Lerp interpolates linearly between a and b by t in [0, 1].
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
