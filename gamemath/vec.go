package gamemath

import "math"

// Vec is a 2D vector in world units. Y points up.
type Vec struct {
	X, Y float64
}

var (
	Zero = Vec{}
	Up   = Vec{Y: 1}
	Down = Vec{Y: -1}
)

func V(x, y float64) Vec { return Vec{X: x, Y: y} }

func (v Vec) Add(o Vec) Vec             { return Vec{v.X + o.X, v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec             { return Vec{v.X - o.X, v.Y - o.Y} }
func (v Vec) Scale(s float64) Vec       { return Vec{v.X * s, v.Y * s} }
func (v Vec) Len() float64              { return math.Hypot(v.X, v.Y) }
func (v Vec) Dist(o Vec) float64        { return v.Sub(o).Len() }
func (v Vec) Lerp(o Vec, t float64) Vec { return v.Add(o.Sub(v).Scale(t)) }

// Normalized returns the unit vector, or the zero vector for a zero-length input.
func (v Vec) Normalized() Vec {
	l := v.Len()
	if l == 0 {
		return Vec{}
	}
	return Vec{v.X / l, v.Y / l}
}

// MoveTowards moves current toward target by at most maxDelta.
func MoveTowards(current, target, maxDelta float64) float64 {
	if math.Abs(target-current) <= maxDelta {
		return target
	}
	return current + Sign(target-current)*maxDelta
}

// MoveTowardsVec moves current toward target by at most maxDelta along the straight line.
func MoveTowardsVec(current, target Vec, maxDelta float64) Vec {
	d := target.Sub(current)
	dist := d.Len()
	if dist <= maxDelta || dist == 0 {
		return target
	}
	return current.Add(d.Scale(maxDelta / dist))
}

// Sign returns -1, 0 or 1.
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// SmoothDamp eases current toward target with a critically damped spring.
// velocity carries state between calls.
func SmoothDamp(current, target float64, velocity *float64, smoothTime, dt float64) float64 {
	smoothTime = math.Max(0.0001, smoothTime)
	omega := 2 / smoothTime
	x := omega * dt
	exp := 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)
	change := current - target
	temp := (*velocity + omega*change) * dt
	*velocity = (*velocity - omega*temp) * exp
	out := target + (change+temp)*exp
	if (target-current > 0) == (out > target) {
		out = target
		*velocity = (out - target) / dt
	}
	return out
}
