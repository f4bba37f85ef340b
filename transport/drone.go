// Package transport flies knocked-out fighters back onto the stage.
//
// A pickup is a resumable sequence driven by the fixed tick: the drone
// flies to a hover point above the fighter, carries it to the respawn
// anchor, holds for a moment and then hands it back to its stats.
package transport

import (
	"github.com/automoto/rippto-brawl/config"
	"github.com/automoto/rippto-brawl/gamemath"
	"github.com/automoto/rippto-brawl/stats"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

type Phase uint8

const (
	Approach Phase = iota
	Carry
	Hold
	Done
	Cancelled
)

var phaseNames = [...]string{"approach", "carry", "hold", "done", "cancelled"}

func (p Phase) String() string {
	if int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

var easings = map[string]ease.TweenFunc{
	"linear":      ease.Linear,
	"in_out_quad": ease.InOutQuad,
	"out_quad":    ease.OutQuad,
	"in_out_sine": ease.InOutSine,
	"out_cubic":   ease.OutCubic,
}

// Easing looks up a tween curve by config name. Unknown names are linear.
func Easing(name string) ease.TweenFunc {
	if f, ok := easings[name]; ok {
		return f
	}
	return ease.Linear
}

// Drone is one pickup sequence.
type Drone struct {
	cfg       config.TransportConfig
	passenger stats.Passenger
	anchor    gamemath.Vec
	lift      gamemath.Vec

	pos   gamemath.Vec
	phase Phase
	tx    *gween.Tween
	ty    *gween.Tween
	hold  float64
}

func newDrone(cfg config.TransportConfig, p stats.Passenger, anchor gamemath.Vec) *Drone {
	from := p.Position()
	d := &Drone{
		cfg:       cfg,
		passenger: p,
		anchor:    anchor,
		lift:      gamemath.Vec{Y: cfg.PickupHeight},
		pos:       from.Add(gamemath.Vec{Y: cfg.SpawnHeight}),
	}
	d.fly(Approach, from.Add(d.lift))
	return d
}

func (d *Drone) Position() gamemath.Vec     { return d.pos }
func (d *Drone) Phase() Phase               { return d.phase }
func (d *Drone) Anchor() gamemath.Vec       { return d.anchor }
func (d *Drone) Passenger() stats.Passenger { return d.passenger }

// Finished reports whether the sequence is over, completed or not.
func (d *Drone) Finished() bool { return d.phase >= Done }

// Destroy abandons the sequence. The dispatcher respawns a passenger that
// is still alive on its next update.
func (d *Drone) Destroy() {
	if !d.Finished() {
		d.phase = Cancelled
	}
}

// fly starts a straight leg to target at the configured speed. A leg with
// nowhere to go has no tweens and ends on the next update.
func (d *Drone) fly(phase Phase, target gamemath.Vec) {
	d.phase = phase
	d.tx, d.ty = nil, nil
	dist := d.pos.Dist(target)
	if dist == 0 || d.cfg.Speed <= 0 {
		d.pos = target
		return
	}
	dur := float32(dist / d.cfg.Speed)
	curve := Easing(d.cfg.Ease)
	d.tx = gween.New(float32(d.pos.X), float32(target.X), dur, curve)
	d.ty = gween.New(float32(d.pos.Y), float32(target.Y), dur, curve)
}

// step advances the current leg and reports whether it arrived.
func (d *Drone) step(dt float64) bool {
	if d.tx == nil {
		return true
	}
	x, doneX := d.tx.Update(float32(dt))
	y, doneY := d.ty.Update(float32(dt))
	d.pos = gamemath.Vec{X: float64(x), Y: float64(y)}
	return doneX && doneY
}

// Update advances the sequence by one tick.
func (d *Drone) Update(dt float64) {
	if d.Finished() {
		return
	}
	if !d.passenger.Alive() {
		d.phase = Cancelled
		return
	}

	switch d.phase {
	case Approach:
		if d.step(dt) {
			d.fly(Carry, d.anchor.Add(d.lift))
			d.passenger.Carry(d.pos.Sub(d.lift))
		}
	case Carry:
		arrived := d.step(dt)
		if arrived {
			d.pos = d.anchor.Add(d.lift)
		}
		d.passenger.Carry(d.pos.Sub(d.lift))
		if arrived {
			d.phase = Hold
			d.hold = d.cfg.DropDelay
		}
	case Hold:
		d.hold -= dt
		if d.hold <= 0 {
			d.phase = Done
			d.passenger.CompleteRespawn(d.anchor)
		}
	}
}
