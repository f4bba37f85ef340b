package match

import (
	"github.com/automoto/rippto-brawl/anim"
	"github.com/automoto/rippto-brawl/camera"
	"github.com/automoto/rippto-brawl/gamemath"
	"github.com/yohamta/donburi/features/events"
)

// Shake asks the camera for a shake on behalf of a fighter.
type Shake struct {
	Slot int
	Kind camera.ShakeKind
}

// Hit is one landed attack.
type Hit struct {
	Attacker  int
	Target    int
	Attack    anim.Attack
	Damage    float64
	Knockback gamemath.Vec
	Combo     int
}

// KO is a fighter leaving the stage. CreditedTo is -1 for a self
// destruct.
type KO struct {
	Slot       int
	CreditedTo int
	Time       float64
}

type Respawn struct {
	Slot int
	Pos  gamemath.Vec
}

type SerumPicked struct {
	Slot  int
	Serum int
	Pos   gamemath.Vec
}

// Events published during a tick are delivered once the tick's systems
// have all run.
var (
	ShakeEvent   = events.NewEventType[Shake]()
	HitEvent     = events.NewEventType[Hit]()
	KOEvent      = events.NewEventType[KO]()
	RespawnEvent = events.NewEventType[Respawn]()
	SerumEvent   = events.NewEventType[SerumPicked]()
)
