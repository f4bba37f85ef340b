package components

import (
	"github.com/automoto/rippto-brawl/pickup"
	"github.com/yohamta/donburi"
)

type SerumData struct {
	*pickup.Serum
}

var Serum = donburi.NewComponentType[SerumData]()
