// Package ground decides once per tick whether a fighter stands on
// something, trying a chain of increasingly forgiving probes.
package ground

import (
	"math"

	"github.com/automoto/rippto-brawl/config"
	"github.com/automoto/rippto-brawl/gamemath"
	"github.com/automoto/rippto-brawl/timer"
)

// Probe is the collision query surface the sensor needs. physics.Body
// implements it.
type Probe interface {
	TouchingGround(skin float64) bool
	GroundNormals(skin float64, buf []gamemath.Vec) []gamemath.Vec
	BoxCast(center, size gamemath.Vec, distance float64) bool
	CircleCast(center gamemath.Vec, radius, distance float64) bool
	Raycast(origin gamemath.Vec, distance float64) bool
}

// Method records which link of the chain confirmed ground.
type Method uint8

const (
	None Method = iota
	Contact
	Normal
	BoxCast
	CircleCast
	RestRay
	Hysteresis
)

func (m Method) String() string {
	switch m {
	case Contact:
		return "contact"
	case Normal:
		return "normal"
	case BoxCast:
		return "box_cast"
	case CircleCast:
		return "circle_cast"
	case RestRay:
		return "rest_ray"
	case Hysteresis:
		return "hysteresis"
	}
	return "none"
}

// Result is one tick's verdict.
type Result struct {
	Grounded bool
	Method   Method
	// Landed is true on the tick ground is newly confirmed.
	Landed bool
	// LeftGround is true on the tick ground is lost.
	LeftGround bool
}

// Sensor keeps the previous verdict for hysteresis and edge detection.
type Sensor struct {
	cfg        config.GroundConfig
	bodyWidth  float64
	coyoteTime float64

	wasGrounded bool
	normals     []gamemath.Vec
}

func NewSensor(cfg config.GroundConfig, bodyWidth, coyoteTime float64) *Sensor {
	return &Sensor{cfg: cfg, bodyWidth: bodyWidth, coyoteTime: coyoteTime}
}

// Grounded returns the last verdict.
func (s *Sensor) Grounded() bool { return s.wasGrounded }

// Reset forgets the previous verdict, as after a teleport.
func (s *Sensor) Reset() { s.wasGrounded = false }

// Sense evaluates the chain for a fighter whose feet are at feet and
// refreshes the coyote timer. A nil probe is never grounded.
func (s *Sensor) Sense(probe Probe, feet, vel gamemath.Vec, timers *timer.Bank) Result {
	var res Result
	if probe != nil {
		res.Method = s.evaluate(probe, feet, vel)
	}
	res.Grounded = res.Method != None
	res.Landed = res.Grounded && !s.wasGrounded
	res.LeftGround = !res.Grounded && s.wasGrounded
	s.wasGrounded = res.Grounded

	if res.Grounded {
		timers.Start(timer.Coyote, s.coyoteTime)
	}
	return res
}

func (s *Sensor) evaluate(p Probe, feet, vel gamemath.Vec) Method {
	c := s.cfg
	if p.TouchingGround(c.Skin) {
		return Contact
	}

	s.normals = p.GroundNormals(c.Skin, s.normals[:0])
	for _, n := range s.normals {
		if n.Y > c.MinNormalY {
			return Normal
		}
	}

	boxCenter := gamemath.Vec{X: feet.X, Y: feet.Y - c.CheckDistance*0.5}
	if p.BoxCast(boxCenter, gamemath.Vec{X: c.CheckWidth, Y: c.CheckDistance}, c.CheckDistance) {
		return BoxCast
	}

	radius := math.Max(c.MinCircleRadius, s.bodyWidth*c.CircleRadiusScale)
	if p.CircleCast(gamemath.Vec{X: feet.X, Y: feet.Y + radius}, radius, c.CheckDistance) {
		return CircleCast
	}

	if math.Abs(vel.Y) < c.RestSpeed && p.Raycast(feet, c.CheckDistance+c.RestProbeExtra) {
		return RestRay
	}

	if s.wasGrounded && math.Abs(vel.Y) < c.HysteresisSpeed {
		return Hysteresis
	}
	return None
}
