package searcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"crossway/game"
)

func horizontal(row, col, length int) []game.Position {
	path := make([]game.Position, length)
	for i := range path {
		path[i] = game.Position{Row: row, Col: col + i, Layer: game.GroundLayer}
	}
	return path
}

func vertical(row, col, length int) []game.Position {
	path := make([]game.Position, length)
	for i := range path {
		path[i] = game.Position{Row: row + i, Col: col, Layer: game.GroundLayer}
	}
	return path
}

func play(t *testing.T, state *game.GameState, player int, path []game.Position) {
	t.Helper()
	v := state.ApplyMove(game.NewMove(player, path))
	require.True(t, v.OK(), "Setup move rejected: %s", v)
}

func hasOneMoveWin(state *game.GameState, player int) bool {
	for _, move := range state.MovesFor(player, false) {
		probe := state.Clone()
		probe.CurrentPlayer = player
		if !probe.ApplyMove(move).OK() {
			continue
		}
		if winner, over := probe.Winner(); over && winner == player {
			return true
		}
	}
	return false
}

func TestSearchPlaysImmediateWin(t *testing.T) {
	state := game.NewGameState(4)
	play(t, state, 1, vertical(0, 0, 3))
	play(t, state, -1, horizontal(0, 1, 3))

	m := NewMCTS(WithRand(rand.New(rand.NewSource(1))))
	move, ok := m.Search(state)
	require.True(t, ok)
	require.Equal(t, 0, m.Stats().SimulationsRun,
		"A one-ply win bypasses the simulation budget")

	require.True(t, state.ApplyMove(move).OK())
	winner, over := state.Winner()
	require.True(t, over)
	require.Equal(t, 1, winner)
}

func TestPureSearchTakesImmediateWin(t *testing.T) {
	// Without the tactical short-circuits the tree itself must steer
	// into a one-ply win: the winning children replay Win on every
	// visit and collect the most visits.
	state := game.NewGameState(4)
	play(t, state, 1, vertical(0, 0, 3))
	play(t, state, -1, horizontal(0, 1, 3))

	m := NewMCTS(
		WithTacticalPlayouts(false),
		WithMaxSimulations(2000),
		WithDuration(time.Minute),
		WithRand(rand.New(rand.NewSource(9))),
	)
	move, ok := m.Search(state)
	require.True(t, ok)
	require.Equal(t, 1.0, m.Stats().BestMoveWinRate,
		"A winning child's recorded rate stays at one")

	require.True(t, state.ApplyMove(move).OK())
	winner, over := state.Winner()
	require.True(t, over, "Pure search must still take the win")
	require.Equal(t, 1, winner)
}

func TestSearchForcedDefense(t *testing.T) {
	// Pink threatens to reach the right edge along row 1 or row 3; both
	// threats run through column 3 or 4, so a single vertical block can
	// parry them together.
	state := game.NewGameState(5)
	play(t, state, 1, horizontal(0, 0, 3))
	play(t, state, -1, horizontal(2, 0, 3))
	state.SetBlocks(1, game.Inventory{})
	state.SetBlocks(-1, game.Inventory{})

	require.False(t, hasOneMoveWin(state, 1), "Blue must have no win of its own here")
	require.True(t, hasOneMoveWin(state, -1), "The setup must actually threaten")

	m := NewMCTS(WithRand(rand.New(rand.NewSource(1))))
	move, ok := m.Search(state)
	require.True(t, ok)
	require.Equal(t, 0, m.Stats().SimulationsRun,
		"A forced defense bypasses the simulation budget")

	require.True(t, state.ApplyMove(move).OK())
	require.False(t, state.GameOver())
	require.False(t, hasOneMoveWin(state, -1), "The defense removes every winning reply")
}

func TestSearchMaxSimulations(t *testing.T) {
	state := game.NewGameState(5)

	m := NewMCTS(
		WithMaxSimulations(60),
		WithDuration(time.Minute),
		WithTacticalPlayouts(false),
		WithRand(rand.New(rand.NewSource(7))),
	)
	move, ok := m.Search(state)
	require.True(t, ok)

	stats := m.Stats()
	require.Equal(t, 60, stats.SimulationsRun, "The cap is exact when the clock allows")
	require.Greater(t, stats.NodesExplored, 1)
	require.Greater(t, stats.BestMoveVisits, 0)
	require.GreaterOrEqual(t, stats.BestMoveWinRate, 0.0)
	require.LessOrEqual(t, stats.BestMoveWinRate, 1.0)
	require.True(t, state.Validate(move).OK(), "Search must return a legal move")
}

func TestSearchShortClock(t *testing.T) {
	state := game.NewGameState(game.DefaultBoardSize)

	m := NewMCTS(WithDuration(time.Millisecond), WithRand(rand.New(rand.NewSource(3))))
	move, ok := m.Search(state)
	require.True(t, ok)
	require.Greater(t, m.Stats().SimulationsRun, 0,
		"At least one simulation completes regardless of the clock")
	require.True(t, state.Validate(move).OK())
}

func TestSearchTerminalState(t *testing.T) {
	state := game.NewGameState(3)
	play(t, state, 1, vertical(0, 0, 3))
	require.True(t, state.GameOver())

	m := NewMCTS()
	_, ok := m.Search(state)
	require.False(t, ok, "A finished game has no move to offer")
	require.Equal(t, Stats{}, m.Stats())
}

func TestSearchReproducible(t *testing.T) {
	state := game.NewGameState(4)

	run := func(seed uint64) (game.Move, Stats) {
		m := NewMCTS(
			WithMaxSimulations(40),
			WithDuration(time.Minute),
			WithTacticalPlayouts(false),
			WithRand(rand.New(rand.NewSource(seed))),
		)
		move, ok := m.Search(state)
		require.True(t, ok)
		return move, m.Stats()
	}

	moveA, statsA := run(11)
	moveB, statsB := run(11)
	require.True(t, moveA.Equal(moveB), "Identical seeds replay the identical search")
	require.Equal(t, statsA.SimulationsRun, statsB.SimulationsRun)
	require.Equal(t, statsA.NodesExplored, statsB.NodesExplored)
	require.Equal(t, statsA.BestMoveVisits, statsB.BestMoveVisits)
	require.Equal(t, statsA.BestMoveWinRate, statsB.BestMoveWinRate)
}

func TestSearchLeavesInputUntouched(t *testing.T) {
	state := game.NewGameState(4)
	before := state.Clone()

	m := NewMCTS(WithMaxSimulations(20), WithDuration(time.Minute),
		WithTacticalPlayouts(false), WithRand(rand.New(rand.NewSource(5))))
	_, ok := m.Search(state)
	require.True(t, ok)

	require.Equal(t, before.CurrentPlayer, state.CurrentPlayer)
	require.Equal(t, len(before.History()), len(state.History()))
	require.Equal(t, before.Board.CountTiles(1), state.Board.CountTiles(1))
	require.Equal(t, before.Board.CountTiles(-1), state.Board.CountTiles(-1))
}

func TestWinningMoveProbeRestoresState(t *testing.T) {
	state := game.NewGameState(4)
	play(t, state, 1, vertical(0, 0, 3))
	play(t, state, -1, horizontal(0, 1, 3))
	history := len(state.History())

	move, ok := winningMove(state, state.LegalMoves(), 0)
	require.True(t, ok)
	require.Equal(t, 1, move.Player)
	require.Equal(t, history, len(state.History()), "Probing must undo every trial move")
	require.False(t, state.GameOver())
}

func TestDefensiveMoveWithoutThreat(t *testing.T) {
	state := game.NewGameState(5)

	_, ok := defensiveMove(state, state.LegalMoves())
	require.False(t, ok, "No threat means no forced defense")
}
