package components

import (
	"github.com/automoto/rippto-brawl/bot"
	"github.com/yohamta/donburi"
)

type BotData struct {
	*bot.Bot
}

var Bot = donburi.NewComponentType[BotData]()
