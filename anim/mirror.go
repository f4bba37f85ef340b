package anim

import "math"

// Snapshot is the read-only fighter state the cosmetic pass mirrors.
type Snapshot struct {
	Grounded    bool
	Dashing     bool
	Sliding     bool
	WallSliding bool
	VelX, VelY  float64
	JumpCount   int
	// JumpSeq increases by one for every jump; the mirror pulses Jump when
	// it changes.
	JumpSeq uint64
}

// Thresholds for deriving the exclusive locomotion flags.
type Thresholds struct {
	Run  float64
	Fall float64
}

// Mirror pushes snapshots to a binding. It may run at any rate and only
// keeps its own bookkeeping.
type Mirror struct {
	binding  *Binding
	th       Thresholds
	lastJump uint64
}

func NewMirror(b *Binding, th Thresholds) *Mirror {
	return &Mirror{binding: b, th: th}
}

// Apply pushes s. Dash beats jump, jump beats fall, fall beats run.
func (m *Mirror) Apply(s Snapshot) {
	b := m.binding
	jumped := s.JumpSeq != m.lastJump
	m.lastJump = s.JumpSeq

	dashing := s.Dashing
	rising := !dashing && !s.Grounded && s.VelY > 0
	falling := !dashing && !rising && !s.Grounded && s.VelY < m.th.Fall
	running := !dashing && !rising && !falling && s.Grounded && math.Abs(s.VelX) > m.th.Run

	b.SetBool(Grounded, s.Grounded)
	b.SetBool(Dashing, dashing)
	b.SetBool(Falling, falling)
	b.SetBool(Running, running)
	b.SetBool(Sliding, s.Sliding)
	b.SetBool(WallSliding, s.WallSliding)
	b.SetFloat(VerticalVelocity, s.VelY)
	b.SetFloat(HorizontalSpeed, math.Abs(s.VelX))
	b.SetInt(JumpNumber, s.JumpCount)
	if jumped && !dashing {
		b.Trigger(Jump)
	}
}
