package physics

import (
	"math"

	"github.com/automoto/rippto-brawl/gamemath"
	"github.com/automoto/rippto-brawl/tags"
	"github.com/solarlune/resolv"
)

const (
	// rampStepUp is how far below a ramp surface the feet may be and still
	// be lifted onto it.
	rampStepUp = 0.35
	// rampStepDown keeps a body glued to a ramp while walking downhill.
	rampStepDown = 0.25
)

// Body is a fighter collider. Its position is the center of its feet.
type Body struct {
	world *World
	obj   *resolv.Object
	owner interface{}

	// OnGround is the object the last Move landed on, if any.
	OnGround *resolv.Object

	// platforms temporarily passed through, with seconds remaining
	ignored map[*resolv.Object]float64
}

// MoveResult reports which sides were blocked during Move.
type MoveResult struct {
	HitFloor   bool
	HitCeiling bool
	HitWall    bool
	WallDir    float64
}

func (b *Body) Owner() interface{} { return b.owner }

func (b *Body) Object() *resolv.Object { return b.obj }

func (b *Body) Size() (w, h float64) { return b.obj.W / PixelsPerUnit, b.obj.H / PixelsPerUnit }

func (b *Body) Position() gamemath.Vec {
	r := b.Rect()
	return gamemath.Vec{X: r.X + r.W/2, Y: r.Y}
}

func (b *Body) SetPosition(p gamemath.Vec) {
	w, _ := b.Size()
	b.obj.X, b.obj.Y = b.world.toSpace(p.X-w/2, p.Y)
	b.obj.Update()
}

func (b *Body) Rect() gamemath.Rect { return b.world.rectOf(b.obj) }

// Move advances the body by vel*dt, horizontal axis first, stopping at
// solids. One-way platforms only stop downward motion that starts above them.
func (b *Body) Move(vel gamemath.Vec, dt float64) MoveResult {
	var res MoveResult
	res.HitWall, res.WallDir = b.moveX(vel.X * dt)
	res.HitFloor, res.HitCeiling = b.moveY(vel.Y * dt)
	if vel.Y <= 0 && b.snapToRamp() {
		res.HitFloor = true
	}
	b.obj.Update()
	return res
}

func (b *Body) moveX(dx float64) (bool, float64) {
	if dx == 0 {
		return false, 0
	}
	r := b.Rect()
	moved := r
	moved.X += dx
	sweep := union(r, moved)

	blocked := false
	for _, obj := range b.world.query(sweep, tags.ResolvSolid) {
		s := b.world.rectOf(obj)
		if !s.Overlaps(moved) {
			continue
		}
		// standing on or hanging under it
		if r.Y >= s.Top()-1e-6 || r.Top() <= s.Y+1e-6 {
			continue
		}
		if dx > 0 && r.Right() <= s.X+1e-6 {
			moved.X = math.Min(moved.X, s.X-r.W)
			blocked = true
		} else if dx < 0 && r.X >= s.Right()-1e-6 {
			moved.X = math.Max(moved.X, s.Right())
			blocked = true
		}
	}
	b.obj.X, _ = b.world.toSpace(moved.X, 0)
	return blocked, gamemath.Sign(dx)
}

func (b *Body) moveY(dy float64) (floor, ceiling bool) {
	b.OnGround = nil
	r := b.Rect()
	moved := r
	moved.Y += dy
	sweep := union(r, moved)

	if dy <= 0 {
		// include surfaces we are resting on
		sweep.Y -= 1e-3
		sweep.H += 1e-3
	}

	for _, obj := range b.world.query(sweep, tags.ResolvSolid, tags.ResolvPlatform) {
		s := b.world.rectOf(obj)
		if b.isIgnored(obj) {
			continue
		}
		if moved.Right() <= s.X || moved.X >= s.Right() {
			continue
		}
		switch {
		case dy <= 0 && r.Y >= s.Top()-1e-6 && moved.Y <= s.Top():
			moved.Y = s.Top()
			floor = true
			b.OnGround = obj
		case dy > 0 && obj.HasTags(tags.ResolvSolid) && r.Top() <= s.Y+1e-6 && moved.Top() > s.Y:
			moved.Y = math.Min(moved.Y, s.Y-r.H)
			ceiling = true
		}
	}
	_, b.obj.Y = b.world.toSpace(0, moved.Y)
	return floor, ceiling
}

// snapToRamp lifts the feet onto a ramp surface they sank into, or keeps
// them on it while walking downhill.
func (b *Body) snapToRamp() bool {
	feet := b.Position()
	probe := gamemath.Rect{X: feet.X - 0.01, Y: feet.Y - rampStepDown, W: 0.02, H: rampStepDown + rampStepUp}
	for _, obj := range b.world.query(probe, tags.ResolvRamp) {
		r := b.world.rectOf(obj)
		if feet.X < r.X || feet.X > r.Right() {
			continue
		}
		surface := b.world.surfaceAt(obj, feet.X)
		gap := feet.Y - surface
		if gap <= rampStepDown && gap >= -rampStepUp {
			b.SetPosition(gamemath.Vec{X: feet.X, Y: surface})
			b.OnGround = obj
			return true
		}
	}
	return false
}

// TickIgnores counts down platform suppression.
func (b *Body) TickIgnores(dt float64) {
	for obj, left := range b.ignored {
		left -= dt
		if left <= 0 {
			delete(b.ignored, obj)
			continue
		}
		b.ignored[obj] = left
	}
}

// DropThrough suppresses collision with the one-way platform under the
// feet for duration seconds. It reports whether a platform was found.
func (b *Body) DropThrough(distance, duration float64) bool {
	feet := b.Position()
	w, _ := b.Size()
	area := gamemath.Rect{X: feet.X - w/2, Y: feet.Y - distance, W: w, H: distance + 1e-3}
	found := false
	for _, obj := range b.world.query(area, tags.ResolvPlatform) {
		s := b.world.rectOf(obj)
		if !s.Overlaps(area) || s.Top() > feet.Y+1e-3 {
			continue
		}
		b.ignored[obj] = duration
		found = true
	}
	return found
}

// Dropping reports whether any platform is currently suppressed.
func (b *Body) Dropping() bool { return len(b.ignored) > 0 }

func (b *Body) isIgnored(obj *resolv.Object) bool {
	_, ok := b.ignored[obj]
	return ok
}

func union(a, c gamemath.Rect) gamemath.Rect {
	x := math.Min(a.X, c.X)
	y := math.Min(a.Y, c.Y)
	return gamemath.Rect{
		X: x,
		Y: y,
		W: math.Max(a.Right(), c.Right()) - x,
		H: math.Max(a.Top(), c.Top()) - y,
	}
}
