package movement

import (
	"math"

	"github.com/automoto/rippto-brawl/gamemath"
	"github.com/automoto/rippto-brawl/input"
	"github.com/automoto/rippto-brawl/timer"
)

// shouldSlide detects a grounded run being released.
func (s *Sim) shouldSlide(in input.Intent, env Env) bool {
	if !s.Grounded || s.Dashing || s.Sliding || env.AttackLocked {
		return false
	}
	c := s.cfg
	wasRunning := math.Abs(s.prevAxis) > c.RunThreshold
	released := math.Abs(in.Axis) <= c.InputDeadzone
	return wasRunning && released && math.Abs(s.Vel.X) >= c.SlideMinSpeed
}

func (s *Sim) updateSlide(dt float64) {
	s.Vel.X = gamemath.MoveTowards(s.Vel.X, 0, s.cfg.SlideDeceleration*dt)
	if !s.Timers.Active(timer.Slide) || math.Abs(s.Vel.X) < s.cfg.SlideStopSpeed {
		s.Sliding = false
		s.Timers.Clear(timer.Slide)
	}
}
