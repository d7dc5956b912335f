package searcher

import (
	"time"

	"golang.org/x/exp/rand"

	"crossway/game"
)

// DefaultDuration bounds a search when no explicit budget is configured.
const DefaultDuration = time.Second

type Option func(m *MCTS)

// MCTS picks moves by Monte-Carlo tree search over cloned game states,
// short-circuited by one-ply tactical checks at the root.
type MCTS struct {
	exploration float64
	duration    time.Duration
	maxSims     int
	tactical    bool
	rng         *rand.Rand
	stats       Stats
}

// Stats is a snapshot of the last Search call.
type Stats struct {
	SimulationsRun  int           `json:"simulations_run"`
	NodesExplored   int           `json:"nodes_explored"`
	TimeElapsed     time.Duration `json:"time_elapsed"`
	BestMoveVisits  int           `json:"best_move_visits"`
	BestMoveWinRate float64       `json:"best_move_win_rate"`
}

func WithExplorationWeight(c float64) Option {
	return func(m *MCTS) {
		if c > 0 {
			m.exploration = c
		}
	}
}

func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

func WithMaxSimulations(simulations int) Option {
	return func(m *MCTS) {
		if simulations > 0 {
			m.maxSims = simulations
		}
	}
}

// WithTacticalPlayouts toggles the heuristic playout policy and the
// root-level win/defense scans. Disabled, playouts are purely random.
func WithTacticalPlayouts(enabled bool) Option {
	return func(m *MCTS) {
		m.tactical = enabled
	}
}

// WithRand injects the random source so simulation sequences can be
// reproduced in tests.
func WithRand(rng *rand.Rand) Option {
	return func(m *MCTS) {
		if rng != nil {
			m.rng = rng
		}
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		exploration: DefaultExploration,
		duration:    DefaultDuration,
		tactical:    true,
		rng:         rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// Search returns the best move found for the state's current player
// under the configured budget. It reports false when the position has
// no legal moves. The input state is never mutated.
func (m *MCTS) Search(state *game.GameState) (game.Move, bool) {
	start := time.Now()
	m.stats = Stats{}

	moves := state.LegalMoves()
	if len(moves) == 0 {
		return game.Move{}, false
	}

	root := state.Clone()
	if m.tactical {
		if move, ok := winningMove(root, moves, 0); ok {
			m.stats = Stats{TimeElapsed: time.Since(start), BestMoveWinRate: Win}
			return move, true
		}
		if move, ok := defensiveMove(root, moves); ok {
			m.stats = Stats{TimeElapsed: time.Since(start)}
			return move, true
		}
	}

	t := newTree(root)
	sims := 0
	for {
		if m.maxSims > 0 && sims >= m.maxSims {
			break
		}
		// Always complete at least one simulation, however short the
		// clock. Time is polled between simulations only.
		if sims > 0 && time.Since(start) >= m.duration {
			break
		}
		m.simulateOnce(t)
		sims++
	}

	best := t.at(t.mostVisited(0))
	m.stats = Stats{
		SimulationsRun:  sims,
		NodesExplored:   len(t.nodes),
		TimeElapsed:     time.Since(start),
		BestMoveVisits:  best.visits,
		BestMoveWinRate: best.wins / float64(best.visits),
	}
	return best.move, true
}

// Stats reports the outcome of the most recent Search.
func (m *MCTS) Stats() Stats {
	return m.stats
}

func (m *MCTS) simulateOnce(t *tree) {
	// Selection
	h := int32(0)
	for {
		n := t.at(h)
		if len(n.untried) > 0 || len(n.children) == 0 {
			break
		}
		h = t.bestChild(h, m.exploration)
	}

	// Expansion: pop a random untried move before t.add can relocate
	// the arena out from under the node pointer.
	if n := t.at(h); len(n.untried) > 0 {
		i := m.rng.Intn(len(n.untried))
		move := n.untried[i]
		n.untried[i] = n.untried[len(n.untried)-1]
		n.untried = n.untried[:len(n.untried)-1]

		next := n.state.Clone()
		if v := next.ApplyMove(move); !v.OK() {
			panic("generated move rejected: " + v.String())
		}
		h = t.add(h, move, next)
	}

	// Simulation and backpropagation
	leaf := t.at(h)
	winner := m.playout(leaf.state)
	t.backup(h, scoreFor(winner, leaf.player))
}

// playout plays the state to completion (or the ply cap) and returns
// the absolute winner, zero meaning a draw or an undecided cutoff.
func (m *MCTS) playout(state *game.GameState) int {
	sim := state.Clone()
	for ply := 0; ply < MaxPlayoutMoves && !sim.GameOver(); ply++ {
		moves := sim.LegalMoves()
		if len(moves) == 0 {
			break
		}

		move, ok := game.Move{}, false
		if m.tactical {
			move, ok = winningMove(sim, moves, TacticalScanLimit)
		}
		if !ok {
			move = moves[m.rng.Intn(len(moves))]
		}
		if v := sim.ApplyMove(move); !v.OK() {
			panic("playout move rejected: " + v.String())
		}
	}
	if winner, over := sim.Winner(); over {
		return winner
	}
	return 0
}
