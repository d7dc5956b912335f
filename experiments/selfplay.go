package experiments

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/exp/rand"

	"crossway/engine"
	"crossway/game"
	"crossway/searcher"
)

const (
	DefaultGames     = 30
	DefaultBoardSize = game.DefaultBoardSize
)

// AgentConfig describes one searcher setup under comparison.
type AgentConfig struct {
	ID          int
	Exploration float64
	Duration    time.Duration
	MaxSims     int
	Tactical    bool
	Seed        uint64
}

func (c AgentConfig) build(seedOffset uint64) engine.Agent {
	options := []searcher.Option{
		searcher.WithTacticalPlayouts(c.Tactical),
		searcher.WithRand(rand.New(rand.NewSource(c.Seed + seedOffset))),
	}
	if c.Exploration > 0 {
		options = append(options, searcher.WithExplorationWeight(c.Exploration))
	}
	if c.Duration > 0 {
		options = append(options, searcher.WithDuration(c.Duration))
	}
	if c.MaxSims > 0 {
		options = append(options, searcher.WithMaxSimulations(c.MaxSims))
	}
	return engine.NewMCTSAgent(options...)
}

// GameRecord summarizes one finished game.
type GameRecord struct {
	ID             int
	Agent1         int // AgentConfig.ID playing blue
	Agent2         int // AgentConfig.ID playing pink
	StartingPlayer int
	Winner         int
	Moves          int
	Duration       time.Duration
}

// MoveRecord carries the per-turn search statistics of one game.
type MoveRecord struct {
	Game        int // GameRecord.ID
	Turn        int
	Player      int
	Simulations int
	Nodes       int
	Visits      int
	WinRate     float64
	Elapsed     time.Duration
}

// RunSelfPlay plays a series of games between two configurations,
// alternating colors, and writes the records under outDir. A random
// opening move can be injected to diversify otherwise deterministic
// matchups.
func RunSelfPlay(outDir, name string, boardSize, games int, config1, config2 AgentConfig, opening bool) error {
	if games <= 0 {
		games = DefaultGames
	}
	if boardSize <= 0 {
		boardSize = DefaultBoardSize
	}

	writer, err := NewWriter(outDir, name)
	if err != nil {
		return fmt.Errorf("setting up record writer: %w", err)
	}

	log.Info().Msgf("starting %s: %d games on a %dx%d board", name, games, boardSize, boardSize)
	bar := progressbar.Default(int64(games), "games")

	openingRNG := rand.New(rand.NewSource(config1.Seed ^ config2.Seed))
	gameRecords := []GameRecord{}
	moveRecords := []MoveRecord{}
	for i := 0; i < games; i++ {
		// Alternate seats so neither configuration always opens
		blue, pink := config1, config2
		if i%2 == 1 {
			blue, pink = pink, blue
		}

		start := time.Now()
		winner, records := runGame(boardSize, blue, pink, uint64(i), opening, openingRNG)

		gameRecords = append(gameRecords, GameRecord{
			ID:             i + 1,
			Agent1:         blue.ID,
			Agent2:         pink.ID,
			StartingPlayer: 1,
			Winner:         winner,
			Moves:          len(records),
			Duration:       time.Since(start),
		})
		for _, r := range records {
			moveRecords = append(moveRecords, MoveRecord{
				Game:        i + 1,
				Turn:        r.Turn,
				Player:      r.Player,
				Simulations: r.Stats.SimulationsRun,
				Nodes:       r.Stats.NodesExplored,
				Visits:      r.Stats.BestMoveVisits,
				WinRate:     r.Stats.BestMoveWinRate,
				Elapsed:     r.Stats.TimeElapsed,
			})
		}
		bar.Add(1)
	}

	if err := writer.WriteAgentConfigs([]AgentConfig{config1, config2}); err != nil {
		return err
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return err
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return err
	}

	log.Info().Msgf("finished %s: records written to %s", name, writer.BaseDir())
	return nil
}

func runGame(boardSize int, blue, pink AgentConfig, seedOffset uint64, opening bool, rng *rand.Rand) (int, []engine.MoveRecord) {
	e := engine.LocalEngine(blue.build(seedOffset), pink.build(seedOffset), boardSize)
	if opening {
		randomOpening(e.State, rng)
	}
	return e.Run()
}

// randomOpening applies one random move for the side to move, favoring
// the longer blocks so openings differ structurally, not just in
// placement.
func randomOpening(state *game.GameState, rng *rand.Rand) {
	moves := state.MovesFor(state.CurrentPlayer, true)
	if len(moves) == 0 {
		moves = state.LegalMoves()
	}
	if len(moves) == 0 {
		return
	}
	state.ApplyMove(moves[rng.Intn(len(moves))])
}
