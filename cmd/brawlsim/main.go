// Command brawlsim runs a headless bot match and prints the scoreboard.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/automoto/rippto-brawl/bot"
	"github.com/automoto/rippto-brawl/config"
	"github.com/automoto/rippto-brawl/match"
	"github.com/automoto/rippto-brawl/records"
	"github.com/automoto/rippto-brawl/stage"
)

func main() {
	seconds := flag.Float64("seconds", 60, "Match length in game seconds")
	seed := flag.Int64("seed", 0, "RNG seed (0 = config value)")
	stagePath := flag.String("stage", "", "TMX stage file (default: built-in arena)")
	bots := flag.String("bots", "", "Comma separated tengo scripts, one per fighter (default: two built-in bots)")
	configPath := flag.String("config", "", "YAML tunables")
	realtime := flag.Bool("realtime", false, "Run on the tick clock instead of as fast as possible")
	save := flag.Bool("records", false, "Merge the result into saved records")
	verbose := flag.Bool("v", false, "Log match events")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.LoadFile(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	st, err := stage.Default()
	if *stagePath != "" {
		st, err = stage.Load(os.DirFS("."), *stagePath)
	}
	if err != nil {
		log.Fatalf("Failed to load stage: %v", err)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	m, err := match.New(cfg, st, match.Options{Logger: logger, Seed: *seed})
	if err != nil {
		log.Fatalf("Failed to start match: %v", err)
	}
	progs, err := loadPrograms(*bots)
	if err != nil {
		log.Fatalf("Failed to load bots: %v", err)
	}
	for i, p := range progs {
		name := fmt.Sprintf("bot%d", i+1)
		if _, err := m.AddBot(name, p); err != nil {
			log.Fatalf("Failed to add %s: %v", name, err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	if *realtime {
		runCtx, cancel := context.WithTimeout(ctx, time.Duration(*seconds*float64(time.Second)))
		err := m.Run(runCtx)
		cancel()
		if err != nil && !errors.Is(err, context.DeadlineExceeded) {
			log.Println("Interrupted")
		}
	} else {
		simulate(ctx, m, *seconds)
	}
	m.Close()

	log.Printf("Simulated %.1fs (%d ticks) in %v", m.Time(), m.Ticks(), time.Since(start).Round(time.Millisecond))
	printScores(m)

	if *save {
		book, err := records.Open("rippto_brawl")
		if err != nil {
			log.Fatalf("Failed to open records: %v", err)
		}
		book.Add(m.Scores(), m.Leader())
		if err := book.Save(); err != nil {
			log.Fatalf("Failed to save records: %v", err)
		}
	}
}

// simulate runs as fast as possible, checking for interrupts once per
// simulated second.
func simulate(ctx context.Context, m *match.Match, seconds float64) {
	for elapsed := 0.0; elapsed < seconds; elapsed++ {
		if ctx.Err() != nil {
			log.Println("Interrupted")
			return
		}
		m.Simulate(min(1, seconds-elapsed))
	}
}

func loadPrograms(list string) ([]*bot.Program, error) {
	if list == "" {
		p, err := bot.Simple()
		if err != nil {
			return nil, err
		}
		return []*bot.Program{p, p}, nil
	}
	var out []*bot.Program
	for _, path := range strings.Split(list, ",") {
		p, err := bot.Load(os.DirFS("."), strings.TrimSpace(path))
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func printScores(m *match.Match) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "fighter\tKOs\tfalls\tdealt\ttaken\thits\tcombo\tserums")
	for _, s := range m.Scores() {
		fmt.Fprintf(w, "%s\t%d\t%d\t%.1f\t%.1f\t%d\t%d\t%d\n",
			s.Name, s.KOs, s.Falls, s.DamageDealt, s.DamageTaken, s.Hits, s.BestCombo, s.Serums)
	}
	w.Flush()

	switch leader := m.Leader(); leader {
	case -1:
		fmt.Println("Result: draw")
	case -2:
	default:
		fmt.Printf("Result: %s wins\n", m.Scores()[leader].Name)
	}
}
