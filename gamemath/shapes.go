package gamemath

import "math"

// Rect is an axis-aligned box. X, Y is the bottom-left corner.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Left() float64   { return r.X }
func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Bottom() float64 { return r.Y }
func (r Rect) Top() float64    { return r.Y + r.H }
func (r Rect) Center() Vec     { return Vec{r.X + r.W/2, r.Y + r.H/2} }

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Vec) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Top()
}

// Overlaps reports a strict overlap. Touching edges do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Top() && o.Y < r.Top()
}

// Grow expands r by d on every side.
func (r Rect) Grow(d float64) Rect {
	return Rect{r.X - d, r.Y - d, r.W + 2*d, r.H + 2*d}
}

// RectAround builds a rect of size w, h centered on c.
func RectAround(c Vec, w, h float64) Rect {
	return Rect{c.X - w/2, c.Y - h/2, w, h}
}

// CircleOverlapsRect reports whether a circle intersects r.
func CircleOverlapsRect(c Vec, radius float64, r Rect) bool {
	nx := Clamp(c.X, r.X, r.Right())
	ny := Clamp(c.Y, r.Y, r.Top())
	dx, dy := c.X-nx, c.Y-ny
	return dx*dx+dy*dy <= radius*radius
}

// RayDownHits reports whether a downward ray from origin of the given length
// crosses r, and the distance to r's top when it does.
func RayDownHits(origin Vec, length float64, r Rect) (float64, bool) {
	if origin.X < r.X || origin.X > r.Right() {
		return 0, false
	}
	if origin.Y < r.Y {
		return 0, false
	}
	d := math.Max(0, origin.Y-r.Top())
	if d > length {
		return 0, false
	}
	return d, true
}

// ContactNormal returns the axis normal pointing from o toward r along the
// axis of least penetration. ok is false when the boxes do not touch.
func ContactNormal(r, o Rect, skin float64) (Vec, bool) {
	if !r.Grow(skin).Overlaps(o) {
		return Vec{}, false
	}
	penLeft := r.Right() - o.X
	penRight := o.Right() - r.X
	penDown := r.Top() - o.Y
	penUp := o.Top() - r.Y
	best := penUp
	n := Up
	if penDown < best {
		best, n = penDown, Down
	}
	if penRight < best {
		best, n = penRight, Vec{X: 1}
	}
	if penLeft < best {
		n = Vec{X: -1}
	}
	return n, true
}

// SlopeSurfaceY returns the height of a 45 degree ramp surface under x.
// upRight ramps rise toward +x.
func SlopeSurfaceY(ramp Rect, x float64, upRight bool) float64 {
	t := Clamp(x-ramp.X, 0, ramp.W) / ramp.W
	if upRight {
		return ramp.Y + ramp.H*t
	}
	return ramp.Y + ramp.H*(1-t)
}
