// Package camera smooths a viewport over a fighter. It only reads the
// fighter and reacts to shake triggers.
package camera

import (
	"math"

	"github.com/automoto/rippto-brawl/config"
	"github.com/automoto/rippto-brawl/gamemath"
)

// Subject is what the camera reads from the followed fighter each tick.
type Subject struct {
	Pos         gamemath.Vec
	Vel         gamemath.Vec
	Grounded    bool
	Dashing     bool
	FastFalling bool
}

// ShakeKind names the preset shakes.
type ShakeKind uint8

const (
	LandShake ShakeKind = iota
	DashShake
	HitShake
)

type shake struct {
	intensity float64
	duration  float64
	elapsed   float64
	frame     int
}

// Camera is a follow camera with look-ahead, zoom and shake.
type Camera struct {
	cfg config.CameraConfig

	pos       gamemath.Vec
	vel       gamemath.Vec
	lookAhead gamemath.Vec
	zoom      float64

	shake  *shake
	offset gamemath.Vec
}

func New(cfg config.CameraConfig, start gamemath.Vec) *Camera {
	c := &Camera{cfg: cfg, zoom: cfg.DefaultZoom}
	c.Snap(start)
	return c
}

func (c *Camera) SetConfig(cfg config.CameraConfig) { c.cfg = cfg }

// Position is the smoothed camera center without shake.
func (c *Camera) Position() gamemath.Vec { return c.pos }

// View is the center to render from, shake included.
func (c *Camera) View() gamemath.Vec { return c.pos.Add(c.offset) }

func (c *Camera) Zoom() float64           { return c.zoom }
func (c *Camera) Offset() gamemath.Vec    { return c.offset }
func (c *Camera) LookAhead() gamemath.Vec { return c.lookAhead }
func (c *Camera) Shaking() bool           { return c.shake != nil }

// Snap jumps straight to target, dropping any smoothing state.
func (c *Camera) Snap(target gamemath.Vec) {
	c.pos = c.clamp(target.Add(c.cfg.Offset))
	c.vel = gamemath.Vec{}
	c.lookAhead = gamemath.Vec{}
}

// Update moves the camera one step toward s.
func (c *Camera) Update(s Subject, dt float64) {
	target := c.deadZone(s.Pos.Add(c.cfg.Offset))
	target = target.Add(c.updateLookAhead(s.Vel, dt))
	c.follow(s, target, dt)
	c.updateZoom(s, dt)
	c.updateShake(dt)
}

// deadZone keeps an axis still while the target stays near the center.
func (c *Camera) deadZone(desired gamemath.Vec) gamemath.Vec {
	dz := c.cfg.DeadZone
	if math.Abs(desired.X-c.pos.X) < dz.X*0.5 {
		desired.X = c.pos.X
	}
	if math.Abs(desired.Y-c.pos.Y) < dz.Y*0.5 {
		desired.Y = c.pos.Y
	}
	return desired
}

func (c *Camera) updateLookAhead(vel gamemath.Vec, dt float64) gamemath.Vec {
	want := gamemath.Vec{}
	if vel.Len() >= c.cfg.LookAheadThreshold {
		want = vel.Normalized().Scale(c.cfg.LookAheadDistance)
	}
	c.lookAhead = c.lookAhead.Lerp(want, factor(c.cfg.LookAheadSpeed, dt))
	return c.lookAhead
}

func (c *Camera) follow(s Subject, target gamemath.Vec, dt float64) {
	cfg := c.cfg
	if cfg.UseSmoothDamp {
		c.pos.X = gamemath.SmoothDamp(c.pos.X, target.X, &c.vel.X, cfg.SmoothTime, dt)
		c.pos.Y = gamemath.SmoothDamp(c.pos.Y, target.Y, &c.vel.Y, cfg.SmoothTime, dt)
	} else {
		sx, sy := cfg.FollowSpeedX, cfg.FollowSpeedY
		switch {
		case s.Dashing:
			sx, sy = cfg.DashFollowSpeed, cfg.DashFollowSpeed
		case s.Vel.Y < cfg.FallSpeed:
			sy = cfg.FallFollowSpeed
		}
		c.pos.X = lerp(c.pos.X, target.X, factor(sx, dt))
		c.pos.Y = lerp(c.pos.Y, target.Y, factor(sy, dt))
	}
	c.pos = c.clamp(c.pos)
}

func (c *Camera) updateZoom(s Subject, dt float64) {
	cfg := c.cfg
	want := cfg.DefaultZoom
	if s.Dashing {
		want += cfg.DashZoom
	}
	if s.Vel.Y > 0.1 && !s.Grounded {
		want += cfg.JumpZoom
	}
	if s.FastFalling {
		want += cfg.FastFallZoom
	}
	if speed := s.Vel.Len(); speed > cfg.SpeedZoomThreshold {
		extra := (speed - cfg.SpeedZoomThreshold) / 10 * cfg.SpeedZoom
		want += gamemath.Clamp(extra, 0, cfg.SpeedZoom)
	}
	want = gamemath.Clamp(want, cfg.MinZoom, cfg.MaxZoom)
	c.zoom = lerp(c.zoom, want, factor(cfg.ZoomSpeed, dt))
}

func (c *Camera) clamp(p gamemath.Vec) gamemath.Vec {
	if !c.cfg.BoundsEnabled {
		return p
	}
	b := c.cfg.Bounds
	return gamemath.Vec{
		X: gamemath.Clamp(p.X, b.X, b.Right()),
		Y: gamemath.Clamp(p.Y, b.Y, b.Top()),
	}
}

// Shake starts a shake unless a stronger one is already running.
func (c *Camera) Shake(intensity, duration float64) {
	if intensity <= 0 || duration <= 0 {
		return
	}
	if c.shake != nil && c.shake.intensity > intensity {
		return
	}
	c.shake = &shake{intensity: intensity, duration: duration}
}

// Trigger starts one of the configured shakes.
func (c *Camera) Trigger(k ShakeKind) {
	var s config.ShakeConfig
	switch k {
	case LandShake:
		s = c.cfg.LandShake
	case DashShake:
		s = c.cfg.DashShake
	case HitShake:
		s = c.cfg.HitShake
	}
	c.Shake(s.Intensity, s.Duration)
}

// updateShake oscillates the offset with a linearly decaying amplitude.
func (c *Camera) updateShake(dt float64) {
	sh := c.shake
	if sh == nil {
		c.offset = gamemath.Vec{}
		return
	}
	sh.elapsed += dt
	sh.frame++
	progress := math.Max(0, (sh.duration-sh.elapsed)/sh.duration)
	amp := sh.intensity * progress
	c.offset = gamemath.Vec{
		X: math.Sin(float64(sh.frame)*1.1) * amp,
		Y: math.Cos(float64(sh.frame)*1.3) * amp,
	}
	if sh.elapsed >= sh.duration {
		c.shake = nil
		c.offset = gamemath.Vec{}
	}
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

// factor turns a per-second speed into a clamped lerp step.
func factor(speed, dt float64) float64 {
	return gamemath.Clamp(speed*dt, 0, 1)
}
