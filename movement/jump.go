package movement

import (
	"math"

	"github.com/automoto/rippto-brawl/gamemath"
	"github.com/automoto/rippto-brawl/timer"
)

// resolveJump consumes a buffered jump press if the fighter may jump.
// A wall jump takes priority and skips the budget check.
func (s *Sim) resolveJump(p Probes, ev *Events) {
	if !s.Timers.Active(timer.JumpBuffer) {
		return
	}
	c := s.cfg
	force := c.JumpForce()

	if s.Wall != NoWall && !s.Grounded {
		away := -float64(s.Wall)
		s.Vel = gamemath.Vec{X: c.WallJumpSpeedX * away, Y: force * c.WallJumpLift}
		s.Facing = away
		s.JumpCount = 1
		s.Dashing = false
		s.WallSliding = false
		s.consumeJumpWindows()
		s.JumpSeq++
		ev.WallJumped = true
		return
	}

	if s.JumpCount >= c.MaxJumps {
		return
	}
	if s.JumpCount == 0 && !s.firstJumpAllowed(p) {
		return
	}

	mult := 1.0
	if s.JumpCount > 0 {
		mult = c.AirJumpMultiplier
	}
	s.Vel.Y = force * mult
	s.JumpCount++
	s.consumeJumpWindows()
	s.JumpSeq++
	ev.Jumped = true
}

func (s *Sim) firstJumpAllowed(p Probes) bool {
	if s.Grounded || s.Timers.Active(timer.Coyote) || s.Timers.Active(timer.LandingGrace) {
		return true
	}
	return s.safetyProbe(p)
}

// safetyProbe catches a fighter that is effectively standing on something
// the sensor missed this tick.
func (s *Sim) safetyProbe(p Probes) bool {
	if p == nil {
		return false
	}
	c := s.cfg
	atRest := math.Abs(s.Vel.Y) < c.SafetyRestSpeed
	fallingSlowly := s.Vel.Y < 0 && s.Vel.Y > -c.SafetyFallSpeed
	if !atRest && !fallingSlowly {
		return false
	}
	return p.Raycast(s.Pos, c.SafetyProbe)
}

func (s *Sim) consumeJumpWindows() {
	s.Timers.Clear(timer.JumpBuffer, timer.Coyote, timer.LandingGrace)
}
