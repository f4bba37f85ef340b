package fighter

import "github.com/automoto/rippto-brawl/gamemath"

// statsBody is the view of a fighter that knockouts and respawns drive.
type statsBody Fighter

func (b *statsBody) Position() gamemath.Vec { return b.body.Position() }
func (b *statsBody) Halt()                  { b.move.Halt() }

func (b *statsBody) Teleport(p gamemath.Vec) {
	b.body.SetPosition(p)
	b.move.Pos = p
}

// SetKinematic suspends physics. Resuming resets the movement and combat
// state as after a fresh spawn.
func (b *statsBody) SetKinematic(on bool) {
	if b.kinematic == on {
		return
	}
	b.kinematic = on
	if on {
		return
	}
	pos := b.body.Position()
	b.move.Reset(pos)
	b.sensor.Reset()
	b.combat.Reset()
	b.pendingHits = 0
}
