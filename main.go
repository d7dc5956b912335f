package main

import (
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"crossway/engine"
	"crossway/experiments"
	"crossway/game"
	"crossway/searcher"
	"crossway/server"
)

func main() {
	var (
		serve    = flag.String("serve", "", "serve the HTTP API on this address, e.g. :8080")
		selfplay = flag.Int("selfplay", 0, "run a self-play series of this many games")
		size     = flag.Int("size", game.DefaultBoardSize, "board size")
		budget   = flag.Duration("budget", time.Second, "search budget per move")
		debug    = flag.Bool("debug", false, "enable debug logging")
	)
	flag.Parse()

	level := zerolog.InfoLevel
	if *debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	switch {
	case *serve != "":
		if err := server.NewServer().Run(*serve); err != nil {
			log.Fatal().Err(err).Msg("server stopped")
		}
	case *selfplay > 0:
		config1 := experiments.AgentConfig{ID: 1, Duration: *budget, Tactical: true, Seed: 1}
		config2 := experiments.AgentConfig{ID: 2, Duration: *budget, Tactical: false, Seed: 2}
		err := experiments.RunSelfPlay("experiments", "selfplay", *size, *selfplay, config1, config2, true)
		if err != nil {
			log.Fatal().Err(err).Msg("self-play failed")
		}
	default:
		runDemo(*size, *budget)
	}
}

// runDemo plays one game between the tactical searcher and a purely
// random-playout searcher and prints the result.
func runDemo(size int, budget time.Duration) {
	seed := uint64(time.Now().UnixNano())
	blue := engine.NewMCTSAgent(
		searcher.WithDuration(budget),
		searcher.WithRand(rand.New(rand.NewSource(seed))),
	)
	pink := engine.NewMCTSAgent(
		searcher.WithDuration(budget),
		searcher.WithTacticalPlayouts(false),
		searcher.WithRand(rand.New(rand.NewSource(seed+1))),
	)

	e := engine.LocalEngine(blue, pink, size)
	winner, records := e.Run()

	switch winner {
	case 1:
		log.Info().Msgf("blue wins in %d moves", len(records))
	case -1:
		log.Info().Msgf("pink wins in %d moves", len(records))
	default:
		log.Info().Msgf("draw after %d moves", len(records))
	}
}
