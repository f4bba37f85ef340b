// Package movement is the per-tick platform-fighter movement core:
// asymmetric gravity, the horizontal acceleration model, the jump budget
// with its forgiveness windows, dashing, sliding and wall interaction.
package movement

import (
	"math"

	"github.com/automoto/rippto-brawl/config"
	"github.com/automoto/rippto-brawl/gamemath"
	"github.com/automoto/rippto-brawl/ground"
	"github.com/automoto/rippto-brawl/input"
	"github.com/automoto/rippto-brawl/timer"
)

// dropProbeDistance is how far below the feet a one-way platform may be
// and still be dropped through.
const dropProbeDistance = 0.15

// WallSide is the side a wall touches, or NoWall.
type WallSide int8

const (
	WallLeft  WallSide = -1
	NoWall    WallSide = 0
	WallRight WallSide = 1
)

// State is the movement half of a fighter.
type State struct {
	Pos    gamemath.Vec
	Vel    gamemath.Vec
	Facing float64

	Grounded    bool
	JumpCount   int
	Dashes      int
	Dashing     bool
	DashDir     float64
	Sliding     bool
	FastFalling bool
	Wall        WallSide
	WallSliding bool

	// JumpSeq counts jumps for the cosmetic jump pulse.
	JumpSeq uint64
	// ImpactSpeed is the downward speed of the last floor hit.
	ImpactSpeed float64

	Timers timer.Bank
}

// Probes are the collision queries movement makes besides ground sensing.
type Probes interface {
	WallContact(dir, distance, height float64) bool
	Raycast(origin gamemath.Vec, distance float64) bool
	DropThrough(distance, duration float64) bool
}

// Env is the per-tick input from the rest of the fighter.
type Env struct {
	Ground       ground.Result
	Probes       Probes
	AttackLocked bool
}

// Events reports what happened during one Step.
type Events struct {
	Landed       bool
	LandingSpeed float64
	Jumped       bool
	WallJumped   bool
	DashStarted  bool
	SlideStarted bool
	Dropped      bool
}

// Sim owns a fighter's movement state.
type Sim struct {
	State
	cfg      config.MovementConfig
	prevAxis float64
}

func New(cfg config.MovementConfig, pos gamemath.Vec) *Sim {
	s := &Sim{cfg: cfg}
	s.Pos = pos
	s.Facing = 1
	s.Dashes = cfg.MaxDashes
	return s
}

func (s *Sim) Config() config.MovementConfig { return s.cfg }

// SetConfig swaps tunables between ticks.
func (s *Sim) SetConfig(cfg config.MovementConfig) {
	s.cfg = cfg
	if s.Dashes > cfg.MaxDashes {
		s.Dashes = cfg.MaxDashes
	}
	if s.JumpCount > cfg.MaxJumps {
		s.JumpCount = cfg.MaxJumps
	}
}

// Step resolves one fixed tick of movement. Timers must already have been
// ticked and ground sensed for this tick.
func (s *Sim) Step(in input.Intent, env Env, dt float64) Events {
	var ev Events
	c := s.cfg
	g := env.Ground
	s.Grounded = g.Grounded

	if g.Landed {
		s.JumpCount = 0
		s.Timers.Start(timer.LandingGrace, c.LandingGraceTime)
		ev.Landed = true
		ev.LandingSpeed = math.Max(s.ImpactSpeed, -s.Vel.Y)
	}
	if s.Grounded && !s.Dashing && s.Dashes < c.MaxDashes {
		s.Dashes = c.MaxDashes
	}
	s.forfeitGroundJump()

	hasInput := math.Abs(in.Axis) > c.InputDeadzone
	if hasInput && !env.AttackLocked && !s.Dashing && !s.Sliding {
		s.Facing = gamemath.Sign(in.Axis)
	}
	s.detectWall(env.Probes)

	if in.JumpPressed {
		s.Timers.Start(timer.JumpBuffer, c.JumpBufferTime)
	}
	dashWanted, dashDir := s.dashRequest(in)
	s.FastFalling = in.FastFallHeld && !s.Grounded && s.Vel.Y < 0

	if s.shouldSlide(in, env) {
		s.Sliding = true
		s.Timers.Start(timer.Slide, c.SlideDuration)
		ev.SlideStarted = true
	}

	s.applyGravity(dt)

	if s.Sliding {
		s.WallSliding = false
		s.updateSlide(dt)
		s.Timers.Clear(timer.JumpBuffer)
		s.prevAxis = in.Axis
		return ev
	}

	if in.DropHeld && s.Grounded && env.Probes != nil && !s.Timers.Active(timer.DropThrough) {
		if env.Probes.DropThrough(dropProbeDistance, c.DropDuration) {
			s.Timers.Start(timer.DropThrough, c.DropDuration)
			ev.Dropped = true
		}
	}

	if dashWanted && s.tryDash(dashDir) {
		ev.DashStarted = true
	}

	s.applyWallSlide()

	switch {
	case s.Dashing:
	case env.AttackLocked:
		s.Vel.X = gamemath.MoveTowards(s.Vel.X, 0, c.AttackLockDecel*dt)
	default:
		s.applyHorizontal(in.Axis, hasInput, dt)
	}

	s.resolveJump(env.Probes, &ev)
	s.applyFastFall(dt)
	s.updateDash()

	s.prevAxis = in.Axis
	return ev
}

// ApplyCollision stores the post-move position and cancels velocity into
// whatever blocked the move. It returns the position after the optional
// bounds clamp.
func (s *Sim) ApplyCollision(pos gamemath.Vec, hitFloor, hitCeiling, hitWall bool) gamemath.Vec {
	if hitFloor && s.Vel.Y < 0 {
		s.ImpactSpeed = -s.Vel.Y
		s.Vel.Y = 0
	}
	if hitCeiling && s.Vel.Y > 0 {
		s.Vel.Y = 0
	}
	if hitWall && !s.Dashing {
		s.Vel.X = 0
	}
	if s.cfg.BoundsEnabled {
		b := s.cfg.Bounds
		pos.X = gamemath.Clamp(pos.X, b.X, b.Right())
		pos.Y = gamemath.Clamp(pos.Y, b.Y, b.Top())
	}
	s.Pos = pos
	return pos
}

// Reset places the fighter at pos with no motion, as after a respawn.
// The jump count is left for the next landing to reset.
func (s *Sim) Reset(pos gamemath.Vec) {
	s.Pos = pos
	s.Vel = gamemath.Vec{}
	s.Dashing = false
	s.Sliding = false
	s.FastFalling = false
	s.Wall = NoWall
	s.WallSliding = false
	s.Timers.Reset()
	s.prevAxis = 0
}

// Halt zeroes velocity, used when the fighter is taken out of simulation.
func (s *Sim) Halt() {
	s.Vel = gamemath.Vec{}
	s.Dashing = false
	s.Sliding = false
	s.FastFalling = false
	s.WallSliding = false
}

// Impulse adds an instantaneous velocity change.
func (s *Sim) Impulse(v gamemath.Vec) {
	s.Vel = s.Vel.Add(v)
}

func (s *Sim) applyGravity(dt float64) {
	g := s.cfg.Gravity
	if s.Vel.Y > 0 {
		g *= s.cfg.UpwardGravityMult
	}
	s.Vel.Y += g * dt
}

func (s *Sim) applyFastFall(dt float64) {
	if !s.FastFalling {
		return
	}
	c := s.cfg
	extra := c.Gravity*c.FastFallGravityMult - c.Gravity
	s.Vel.Y += extra * dt
	if s.Vel.Y < c.FastFallTerminal {
		s.Vel.Y = c.FastFallTerminal
	}
}

func (s *Sim) applyHorizontal(axis float64, hasInput bool, dt float64) {
	c := s.cfg
	speed := c.AirSpeed
	if s.Grounded {
		speed = c.GroundSpeed
	}
	target := 0.0
	rate := c.Deceleration
	if hasInput {
		target = axis * speed
		rate = c.Acceleration
	} else if s.Grounded {
		s.Vel.X *= c.GroundFriction
	}
	s.Vel.X = gamemath.MoveTowards(s.Vel.X, target, rate*dt)
}

func (s *Sim) detectWall(p Probes) {
	s.Wall = NoWall
	if s.Grounded || p == nil {
		return
	}
	c := s.cfg
	left := p.WallContact(-1, c.WallCheckDistance, c.WallCheckHeight)
	right := p.WallContact(1, c.WallCheckDistance, c.WallCheckHeight)
	switch {
	case left && right:
		s.Wall = WallSide(s.Facing)
	case left:
		s.Wall = WallLeft
	case right:
		s.Wall = WallRight
	}
}

func (s *Sim) applyWallSlide() {
	s.WallSliding = s.Wall != NoWall && !s.Grounded && !s.Dashing && s.Vel.Y < 0
	if s.WallSliding && s.Vel.Y < -s.cfg.WallSlideSpeed {
		s.Vel.Y = -s.cfg.WallSlideSpeed
	}
}

// forfeitGroundJump spends the ground jump once coyote time runs out
// without it being used, keeping the air jumps available.
func (s *Sim) forfeitGroundJump() {
	if !s.cfg.ForfeitGroundJump || s.Grounded || s.JumpCount != 0 {
		return
	}
	if s.Timers.JustExpired(timer.Coyote) {
		s.JumpCount = 1
	}
}
