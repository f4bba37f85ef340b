// Package physics wraps a resolv space holding the stage geometry and the
// fighter bodies. All coordinates are world units with Y pointing up; the
// space itself starts at the bottom-left corner of the world bounds and is
// measured in pixels, PixelsPerUnit to the unit.
package physics

import (
	"math"

	"github.com/automoto/rippto-brawl/gamemath"
	"github.com/automoto/rippto-brawl/tags"
	"github.com/solarlune/resolv"
)

// PixelsPerUnit scales world units into the resolv space. resolv places
// objects in cells by whole pixels, so anything under a pixel wide would
// land in no cell at all.
const PixelsPerUnit = 16

// groundTags are the surfaces every ground probe considers.
var groundTags = []string{tags.ResolvSolid, tags.ResolvPlatform, tags.ResolvRamp}

type World struct {
	space  *resolv.Space
	bounds gamemath.Rect
	probe  *resolv.Object
	bodies []*Body
}

// NewWorld builds an empty space covering bounds with square cells of
// cellSize world units. Anything outside bounds is invisible to queries, so
// bounds should enclose the blast zone.
func NewWorld(bounds gamemath.Rect, cellSize int) *World {
	if cellSize < 1 {
		cellSize = 1
	}
	cell := cellSize * PixelsPerUnit
	cols := int(math.Ceil(bounds.W / float64(cellSize)))
	rows := int(math.Ceil(bounds.H / float64(cellSize)))
	world := &World{
		space:  resolv.NewSpace(cols*cell, rows*cell, cell, cell),
		bounds: bounds,
	}
	world.probe = resolv.NewObject(0, 0, 1, 1, tags.ResolvProbe)
	world.space.Add(world.probe)
	return world
}

func (w *World) Space() *resolv.Space  { return w.space }
func (w *World) Bounds() gamemath.Rect { return w.bounds }
func (w *World) Bodies() []*Body       { return w.bodies }

// AddSolid adds a box that blocks from every side and counts as ground.
func (w *World) AddSolid(r gamemath.Rect) *resolv.Object {
	return w.addStatic(r, tags.ResolvSolid)
}

// AddWall adds a solid box that fighters can also wall slide and wall jump on.
func (w *World) AddWall(r gamemath.Rect) *resolv.Object {
	return w.addStatic(r, tags.ResolvSolid, tags.ResolvWall)
}

// AddPlatform adds a one-way platform that only blocks from above.
func (w *World) AddPlatform(r gamemath.Rect) *resolv.Object {
	return w.addStatic(r, tags.ResolvPlatform)
}

// AddRamp adds a 45 degree ramp filling r. upRight ramps rise toward +X.
func (w *World) AddRamp(r gamemath.Rect, upRight bool) *resolv.Object {
	slope := tags.Slope45UpLeft
	if upRight {
		slope = tags.Slope45UpRight
	}
	return w.addStatic(r, tags.ResolvRamp, slope)
}

// AddSensor adds a non-blocking box, used for pickups.
func (w *World) AddSensor(r gamemath.Rect, data interface{}, tag string) *resolv.Object {
	obj := w.addStatic(r, tag)
	obj.Data = data
	return obj
}

func (w *World) Remove(obj *resolv.Object) {
	if obj != nil && obj.Space != nil {
		w.space.Remove(obj)
	}
}

// AddBody registers a fighter collider with its feet centered on pos.
func (w *World) AddBody(pos gamemath.Vec, width, height float64, owner interface{}) *Body {
	pw, ph := width*PixelsPerUnit, height*PixelsPerUnit
	obj := resolv.NewObject(0, 0, pw, ph, tags.ResolvFighter)
	obj.SetShape(resolv.NewRectangle(0, 0, pw, ph))
	b := &Body{
		world:   w,
		obj:     obj,
		owner:   owner,
		ignored: make(map[*resolv.Object]float64),
	}
	obj.Data = b
	w.space.Add(obj)
	b.SetPosition(pos)
	w.bodies = append(w.bodies, b)
	return b
}

// RemoveBody takes a body out of the space. It is safe to call twice.
func (w *World) RemoveBody(b *Body) {
	for i, other := range w.bodies {
		if other == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			break
		}
	}
	w.Remove(b.obj)
}

// OverlapCircle returns every body, other than exclude, whose box
// intersects the circle.
func (w *World) OverlapCircle(center gamemath.Vec, radius float64, exclude *Body) []*Body {
	var hits []*Body
	area := gamemath.RectAround(center, radius*2, radius*2)
	for _, obj := range w.query(area, tags.ResolvFighter) {
		b, ok := obj.Data.(*Body)
		if !ok || b == exclude {
			continue
		}
		if gamemath.CircleOverlapsRect(center, radius, b.Rect()) {
			hits = append(hits, b)
		}
	}
	return hits
}

// OverlapRect returns the data of every object with tag whose box overlaps r.
func (w *World) OverlapRect(r gamemath.Rect, tag string) []*resolv.Object {
	var hits []*resolv.Object
	for _, obj := range w.query(r, tag) {
		if w.rectOf(obj).Overlaps(r) {
			hits = append(hits, obj)
		}
	}
	return hits
}

func (w *World) addStatic(r gamemath.Rect, objTags ...string) *resolv.Object {
	x, y := w.toSpace(r.X, r.Y)
	obj := resolv.NewObject(x, y, r.W*PixelsPerUnit, r.H*PixelsPerUnit, objTags...)
	obj.SetShape(resolv.NewRectangle(0, 0, obj.W, obj.H))
	w.space.Add(obj)
	return obj
}

// query is the broadphase: every object with any of objTags sharing a cell
// with r. Callers do their own narrowphase.
//
// resolv counts an object's last pixel as X+W-1, which drops the final
// fraction of a pixel from both the registered objects and the probe. The
// probe is grown by a pixel on each side to cover for it.
func (w *World) query(r gamemath.Rect, objTags ...string) []*resolv.Object {
	x, y := w.toSpace(r.X, r.Y)
	w.probe.X = x - 1
	w.probe.Y = y - 1
	w.probe.W = math.Max(r.W, 0)*PixelsPerUnit + 3
	w.probe.H = math.Max(r.H, 0)*PixelsPerUnit + 3
	w.probe.Update()
	check := w.probe.Check(0, 0, objTags...)
	if check == nil {
		return nil
	}
	return check.Objects
}

func (w *World) toSpace(x, y float64) (float64, float64) {
	return (x - w.bounds.X) * PixelsPerUnit, (y - w.bounds.Y) * PixelsPerUnit
}

func (w *World) rectOf(obj *resolv.Object) gamemath.Rect {
	return gamemath.Rect{
		X: obj.X/PixelsPerUnit + w.bounds.X,
		Y: obj.Y/PixelsPerUnit + w.bounds.Y,
		W: obj.W / PixelsPerUnit,
		H: obj.H / PixelsPerUnit,
	}
}

// surfaceAt is the walkable height of a ground object under x.
func (w *World) surfaceAt(obj *resolv.Object, x float64) float64 {
	r := w.rectOf(obj)
	switch {
	case obj.HasTags(tags.Slope45UpRight):
		return gamemath.SlopeSurfaceY(r, x, true)
	case obj.HasTags(tags.Slope45UpLeft):
		return gamemath.SlopeSurfaceY(r, x, false)
	}
	return r.Top()
}
