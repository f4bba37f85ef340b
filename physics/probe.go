package physics

import (
	"github.com/automoto/rippto-brawl/gamemath"
	"github.com/automoto/rippto-brawl/tags"
	"github.com/solarlune/resolv"
)

// The probes below answer the ground sensor's queries. Each one looks only
// at the ground layer: solids, ramps and one-way platforms that are at or
// below the feet and not currently dropped through.

// TouchingGround reports direct contact between the bottom of the collider
// and the ground layer. Side contact with a solid does not count.
func (b *Body) TouchingGround(skin float64) bool {
	body := b.Rect()
	r := gamemath.Rect{X: body.X + skin, Y: body.Y - skin, W: body.W - 2*skin, H: 2 * skin}
	for _, obj := range b.groundNear(r) {
		if b.world.isRamp(obj) {
			if b.onRampSurface(obj, skin) {
				return true
			}
			continue
		}
		if b.world.rectOf(obj).Overlaps(r) {
			return true
		}
	}
	return false
}

// GroundNormals appends the contact normal of every touching ground
// surface to buf.
func (b *Body) GroundNormals(skin float64, buf []gamemath.Vec) []gamemath.Vec {
	body := b.Rect()
	for _, obj := range b.groundNear(body.Grow(skin)) {
		if b.world.isRamp(obj) {
			if b.onRampSurface(obj, skin) {
				n := gamemath.Vec{X: -0.7071, Y: 0.7071}
				if obj.HasTags(tags.Slope45UpLeft) {
					n.X = -n.X
				}
				buf = append(buf, n)
			}
			continue
		}
		if n, ok := gamemath.ContactNormal(body, b.world.rectOf(obj), skin); ok {
			buf = append(buf, n)
		}
	}
	return buf
}

// BoxCast sweeps a box of the given size centered on center downward by
// distance.
func (b *Body) BoxCast(center, size gamemath.Vec, distance float64) bool {
	swept := gamemath.Rect{
		X: center.X - size.X/2,
		Y: center.Y - size.Y/2 - distance,
		W: size.X,
		H: size.Y + distance,
	}
	for _, obj := range b.groundNear(swept) {
		if b.world.isRamp(obj) {
			if b.world.surfaceAt(obj, center.X) >= swept.Y && b.world.rectOf(obj).Overlaps(swept) {
				return true
			}
			continue
		}
		if b.world.rectOf(obj).Overlaps(swept) {
			return true
		}
	}
	return false
}

// CircleCast sweeps a circle downward by distance.
func (b *Body) CircleCast(center gamemath.Vec, radius, distance float64) bool {
	end := gamemath.Vec{X: center.X, Y: center.Y - distance}
	mid := gamemath.Rect{X: center.X - radius, Y: end.Y, W: radius * 2, H: distance}
	area := gamemath.Rect{X: center.X - radius, Y: end.Y - radius, W: radius * 2, H: distance + radius*2}
	for _, obj := range b.groundNear(area) {
		if b.world.isRamp(obj) {
			if b.world.surfaceAt(obj, center.X) >= end.Y-radius && b.world.rectOf(obj).Overlaps(area) {
				return true
			}
			continue
		}
		s := b.world.rectOf(obj)
		if gamemath.CircleOverlapsRect(center, radius, s) ||
			gamemath.CircleOverlapsRect(end, radius, s) ||
			(distance > 0 && s.Overlaps(mid)) {
			return true
		}
	}
	return false
}

// Raycast casts a ray straight down from origin.
func (b *Body) Raycast(origin gamemath.Vec, distance float64) bool {
	area := gamemath.Rect{X: origin.X - 0.001, Y: origin.Y - distance, W: 0.002, H: distance}
	for _, obj := range b.groundNear(area) {
		if b.world.isRamp(obj) {
			s := b.world.surfaceAt(obj, origin.X)
			r := b.world.rectOf(obj)
			if origin.X >= r.X && origin.X <= r.Right() && s <= origin.Y && s >= origin.Y-distance {
				return true
			}
			continue
		}
		if _, ok := gamemath.RayDownHits(origin, distance, b.world.rectOf(obj)); ok {
			return true
		}
	}
	return false
}

// WallContact probes a box of the given depth and height beside the body
// against the wall layer. dir is -1 for left, 1 for right.
func (b *Body) WallContact(dir, distance, height float64) bool {
	r := b.Rect()
	c := r.Center()
	probe := gamemath.Rect{X: r.Right(), Y: c.Y - height/2, W: distance, H: height}
	if dir < 0 {
		probe.X = r.X - distance
	}
	return len(b.world.OverlapRect(probe, tags.ResolvWall)) > 0
}

// groundNear returns ground objects near r, without suppressed platforms
// and without platforms above the feet.
func (b *Body) groundNear(r gamemath.Rect) []*resolv.Object {
	feet := b.Rect().Y
	objs := b.world.query(r, groundTags...)
	out := objs[:0:0]
	for _, obj := range objs {
		if obj.HasTags(tags.ResolvPlatform) {
			if b.isIgnored(obj) || b.world.rectOf(obj).Top() > feet+1e-3 {
				continue
			}
		}
		out = append(out, obj)
	}
	return out
}

func (b *Body) onRampSurface(obj *resolv.Object, skin float64) bool {
	feet := b.Position()
	r := b.world.rectOf(obj)
	if feet.X < r.X || feet.X > r.Right() {
		return false
	}
	gap := feet.Y - b.world.surfaceAt(obj, feet.X)
	return gap <= skin && gap >= -rampStepUp
}

func (w *World) isRamp(obj *resolv.Object) bool {
	return obj.HasTags(tags.ResolvRamp)
}
