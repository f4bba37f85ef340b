package components

import (
	"github.com/automoto/rippto-brawl/fighter"
	"github.com/yohamta/donburi"
)

type FighterData struct {
	Slot int
	*fighter.Fighter

	// LastHitBy is the slot that last damaged this fighter, -1 for none.
	LastHitBy int
	LastHitAt float64
}

var Fighter = donburi.NewComponentType[FighterData]()
