package movement

import (
	"math"

	"github.com/automoto/rippto-brawl/gamemath"
	"github.com/automoto/rippto-brawl/input"
	"github.com/automoto/rippto-brawl/timer"
)

// dashRequest reports a dash press or a directional double tap, and the
// direction to dash in.
func (s *Sim) dashRequest(in input.Intent) (bool, float64) {
	dir := s.Facing
	if math.Abs(in.Axis) > s.cfg.InputDeadzone {
		dir = gamemath.Sign(in.Axis)
	}
	wanted := in.DashPressed

	if in.LeftPressed {
		if s.Timers.Active(timer.TapLeft) {
			wanted, dir = true, -1
			s.Timers.Clear(timer.TapLeft)
		} else {
			s.Timers.Start(timer.TapLeft, s.cfg.DoubleTapWindow)
		}
		s.Timers.Clear(timer.TapRight)
	}
	if in.RightPressed {
		if s.Timers.Active(timer.TapRight) {
			wanted, dir = true, 1
			s.Timers.Clear(timer.TapRight)
		} else {
			s.Timers.Start(timer.TapRight, s.cfg.DoubleTapWindow)
		}
		s.Timers.Clear(timer.TapLeft)
	}
	return wanted, dir
}

// tryDash starts a dash if a charge is available and the cooldown has run
// out. A rejected dash changes nothing.
func (s *Sim) tryDash(dir float64) bool {
	if s.Dashing || s.Dashes <= 0 || s.Timers.Active(timer.DashCooldown) {
		return false
	}
	c := s.cfg
	s.Dashing = true
	s.DashDir = dir
	s.Facing = dir
	s.Vel = gamemath.Vec{X: dir * c.DashSpeed}
	s.Dashes--
	s.WallSliding = false
	s.Timers.Start(timer.DashCooldown, c.DashCooldown)
	s.Timers.Start(timer.DashDuration, c.DashDuration)
	return true
}

// updateDash holds dash speed for the duration. Vertical velocity stays
// under gravity.
func (s *Sim) updateDash() {
	if !s.Dashing {
		return
	}
	if !s.Timers.Active(timer.DashDuration) {
		s.Dashing = false
		return
	}
	s.Vel.X = s.DashDir * s.cfg.DashSpeed
}
