package engine

import (
	"golang.org/x/exp/rand"

	"crossway/game"
	"crossway/searcher"
)

// MaxTurns caps a runaway game loop.
const MaxTurns = 500

// Agent produces a move for the state's current player.
type Agent interface {
	// FindMove reports false when the position offers no legal move.
	FindMove(state *game.GameState) (game.Move, bool)
}

// MCTSAgent adapts a searcher to the Agent interface and exposes the
// statistics of its latest search.
type MCTSAgent struct {
	Searcher *searcher.MCTS
}

func NewMCTSAgent(options ...searcher.Option) *MCTSAgent {
	return &MCTSAgent{Searcher: searcher.NewMCTS(options...)}
}

func (a *MCTSAgent) FindMove(state *game.GameState) (game.Move, bool) {
	return a.Searcher.Search(state)
}

func (a *MCTSAgent) Stats() searcher.Stats {
	return a.Searcher.Stats()
}

// RandomAgent plays a uniformly random legal move. It serves as the
// baseline opponent in experiments.
type RandomAgent struct {
	rng *rand.Rand
}

func NewRandomAgent(rng *rand.Rand) *RandomAgent {
	return &RandomAgent{rng: rng}
}

func (a *RandomAgent) FindMove(state *game.GameState) (game.Move, bool) {
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return game.Move{}, false
	}
	return moves[a.rng.Intn(len(moves))], true
}
