// Command brawl runs a local match in a window with debug box drawing.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/automoto/rippto-brawl/bot"
	"github.com/automoto/rippto-brawl/config"
	"github.com/automoto/rippto-brawl/match"
	"github.com/automoto/rippto-brawl/records"
	"github.com/automoto/rippto-brawl/stage"
	"github.com/hajimehoshi/ebiten/v2"
)

const (
	screenWidth  = 960
	screenHeight = 540
	appName      = "rippto_brawl"
)

func main() {
	stagePath := flag.String("stage", "", "TMX stage file (default: built-in arena)")
	configPath := flag.String("config", "", "YAML tunables, reloaded on save")
	versus := flag.Bool("versus", false, "Second player on the arrow keys instead of a bot")
	script := flag.String("bot", "", "tengo script for the bot opponent (default: built-in)")
	save := flag.Bool("records", true, "Save match records on exit")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.LoadFile(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	st, err := loadStage(*stagePath)
	if err != nil {
		log.Fatalf("Failed to load stage: %v", err)
	}

	m, err := match.New(cfg, st, match.Options{})
	if err != nil {
		log.Fatalf("Failed to start match: %v", err)
	}
	m.AddFighter("player1", &keyboard{keys: PlayerOneKeys}, nil)
	if *versus {
		m.AddFighter("player2", &keyboard{keys: PlayerTwoKeys}, nil)
	} else {
		prog, err := loadBot(*script)
		if err != nil {
			log.Fatalf("Failed to load bot: %v", err)
		}
		if _, err := m.AddBot("bot", prog); err != nil {
			log.Fatalf("Failed to add bot: %v", err)
		}
	}
	m.Follow(0)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if *configPath != "" {
		go func() {
			err := config.Watch(ctx, *configPath, func(c config.Config) {
				log.Printf("Reloaded %s", *configPath)
				m.QueueConfig(c)
			}, func(err error) {
				log.Printf("Warning: config reload failed: %v", err)
			})
			if err != nil {
				log.Printf("Warning: config watch stopped: %v", err)
			}
		}()
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Rippto Brawl")
	ebiten.SetTPS(cfg.Match.TickRate)

	g := newGame(ctx, m)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}

	if *save {
		saveRecords(m)
	}
}

func loadStage(path string) (*stage.Stage, error) {
	if path == "" {
		return stage.Default()
	}
	return stage.Load(os.DirFS("."), path)
}

func loadBot(path string) (*bot.Program, error) {
	if path == "" {
		return bot.Simple()
	}
	return bot.Load(os.DirFS("."), path)
}

func saveRecords(m *match.Match) {
	book, err := records.Open(appName)
	if err != nil {
		log.Printf("Warning: Could not open records: %v", err)
		return
	}
	book.Add(m.Scores(), m.Leader())
	if err := book.Save(); err != nil {
		log.Printf("Warning: Could not save records: %v", err)
	}
}
