package engine

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"crossway/game"
	"crossway/searcher"
)

// Engine drives a local game between two agents on a shared state.
type Engine struct {
	State  *game.GameState
	Agents map[int]Agent
}

// MoveRecord logs one turn of a finished game. Stats is zero for
// agents that do not search.
type MoveRecord struct {
	Turn   int
	Player int
	Move   game.Move
	Stats  searcher.Stats
}

func LocalEngine(blue, pink Agent, boardSize int) *Engine {
	if blue == nil || pink == nil {
		panic("need two agents")
	}
	return &Engine{
		State:  game.NewGameState(boardSize),
		Agents: map[int]Agent{1: blue, -1: pink},
	}
}

// Run executes the game loop until a winner is found or the turn cap
// is reached, and returns the winner with the per-move log.
func (e *Engine) Run() (int, []MoveRecord) {
	log.Info().Msgf("player %d is starting on a %dx%d board",
		e.State.CurrentPlayer, e.State.Board.Size, e.State.Board.Size)

	var records []MoveRecord
	for turn := 1; !e.State.GameOver() && turn <= MaxTurns; turn++ {
		player := e.State.CurrentPlayer
		current := e.Agents[player]

		move, ok := current.FindMove(e.State)
		if !ok {
			log.Info().Msgf("player %d has no legal move, stopping", player)
			break
		}
		if v := e.State.ApplyMove(move); !v.OK() {
			panic(fmt.Sprintf("agent for player %d produced an illegal move: %s", player, v))
		}

		record := MoveRecord{Turn: turn, Player: player, Move: move}
		if agent, ok := current.(*MCTSAgent); ok {
			record.Stats = agent.Stats()
		}
		records = append(records, record)
		log.Debug().Msgf("turn %d: player %d played %s", turn, player, move)
	}

	winner, _ := e.State.Winner()
	log.Info().Msgf("game over: winner %d after %d moves", winner, len(records))
	return winner, records
}
