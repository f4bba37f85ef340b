// Package input carries player and AI intent from the frame rate into the
// fixed simulation tick.
package input

// Intent is one tick's worth of fighter intent. The Pressed fields are
// edges and must be acted on at most once.
type Intent struct {
	Axis float64 // -1..1

	JumpPressed  bool
	DashPressed  bool
	LightPressed bool
	HeavyPressed bool
	// LeftPressed and RightPressed are directional press edges, used for
	// double-tap dashing.
	LeftPressed  bool
	RightPressed bool

	FastFallHeld bool
	DropHeld     bool
}

// ClearEdges drops every press edge, keeping the axis and holds.
func (i *Intent) ClearEdges() {
	i.JumpPressed = false
	i.DashPressed = false
	i.LightPressed = false
	i.HeavyPressed = false
	i.LeftPressed = false
	i.RightPressed = false
}

// Source produces an Intent snapshot once per frame.
type Source interface {
	Poll() Intent
}

// Latch bridges frames and ticks. Frames push snapshots; edges accumulate
// until the next tick consumes them, so a press is neither lost when a
// frame runs no tick nor replayed when a frame runs several.
type Latch struct {
	pending Intent
}

// Push merges a frame snapshot. Axis and holds take the latest value.
func (l *Latch) Push(in Intent) {
	p := &l.pending
	p.Axis = in.Axis
	p.FastFallHeld = in.FastFallHeld
	p.DropHeld = in.DropHeld
	p.JumpPressed = p.JumpPressed || in.JumpPressed
	p.DashPressed = p.DashPressed || in.DashPressed
	p.LightPressed = p.LightPressed || in.LightPressed
	p.HeavyPressed = p.HeavyPressed || in.HeavyPressed
	p.LeftPressed = p.LeftPressed || in.LeftPressed
	p.RightPressed = p.RightPressed || in.RightPressed
}

// Consume returns the pending intent and clears its edges.
func (l *Latch) Consume() Intent {
	out := l.pending
	l.pending.ClearEdges()
	return out
}

// Buttons is a held-state snapshot, as produced by sources that only know
// what is down right now.
type Buttons struct {
	Left, Right bool
	Jump, Dash  bool
	Light       bool
	Heavy       bool
	Down        bool
}

// Tracker turns consecutive Buttons snapshots into an Intent with edges by
// comparing against the previous frame.
type Tracker struct {
	prev Buttons
}

func (t *Tracker) Update(cur Buttons) Intent {
	in := Intent{
		JumpPressed:  cur.Jump && !t.prev.Jump,
		DashPressed:  cur.Dash && !t.prev.Dash,
		LightPressed: cur.Light && !t.prev.Light,
		HeavyPressed: cur.Heavy && !t.prev.Heavy,
		LeftPressed:  cur.Left && !t.prev.Left,
		RightPressed: cur.Right && !t.prev.Right,
		FastFallHeld: cur.Down,
		DropHeld:     cur.Down,
	}
	if cur.Left {
		in.Axis--
	}
	if cur.Right {
		in.Axis++
	}
	t.prev = cur
	return in
}
