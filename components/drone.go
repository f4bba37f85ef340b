package components

import (
	"github.com/automoto/rippto-brawl/transport"
	"github.com/yohamta/donburi"
)

type DroneData struct {
	*transport.Drone
}

var Drone = donburi.NewComponentType[DroneData]()
