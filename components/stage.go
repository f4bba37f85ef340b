package components

import (
	"github.com/automoto/rippto-brawl/physics"
	"github.com/automoto/rippto-brawl/pickup"
	"github.com/automoto/rippto-brawl/stage"
	"github.com/automoto/rippto-brawl/transport"
	"github.com/yohamta/donburi"
)

// StageData is the singleton holding the loaded stage and the systems
// that live as long as it does.
type StageData struct {
	*stage.Stage
	World      *physics.World
	Serums     *pickup.Spawner
	Dispatcher *transport.Dispatcher
}

var Stage = donburi.NewComponentType[StageData]()
