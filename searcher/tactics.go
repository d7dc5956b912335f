package searcher

import "crossway/game"

// winningMove scans at most limit candidates for a move that ends the
// game in the mover's favor. Candidates are probed by applying and
// undoing them on state, which is cheaper than cloning per candidate.
// A limit of zero scans every candidate.
func winningMove(state *game.GameState, moves []game.Move, limit int) (game.Move, bool) {
	if limit <= 0 || limit > len(moves) {
		limit = len(moves)
	}
	for _, move := range moves[:limit] {
		if !state.ApplyMove(move).OK() {
			continue
		}
		winner, over := state.Winner()
		won := over && winner == move.Player
		if !state.UndoLastMove() {
			panic("probe undo failed with non-empty history")
		}
		if won {
			return move, true
		}
	}
	return game.Move{}, false
}

// oneMoveWins lists every placement with which player would complete a
// bridge immediately, ignoring whose turn it is. Placements are tested
// on a single board copy via place/clear rather than state clones.
func oneMoveWins(state *game.GameState, player int) []game.Move {
	board := state.Board.Clone()
	var wins []game.Move
	for _, move := range state.MovesFor(player, false) {
		board.PlacePath(move.Path, player)
		won := board.CheckBridge(player)
		board.ClearPath(move.Path)
		if won {
			wins = append(wins, move)
		}
	}
	return wins
}

// defensiveMove looks for a reply that removes every one-ply winning
// answer the opponent currently holds. It reports false both when no
// threat exists and when no single move parries all threats.
func defensiveMove(state *game.GameState, moves []game.Move) (game.Move, bool) {
	opponent := -state.CurrentPlayer
	if len(oneMoveWins(state, opponent)) == 0 {
		return game.Move{}, false
	}

	for _, move := range moves {
		if !state.ApplyMove(move).OK() {
			continue
		}
		safe := !state.GameOver() && len(oneMoveWins(state, opponent)) == 0
		if !state.UndoLastMove() {
			panic("probe undo failed with non-empty history")
		}
		if safe {
			return move, true
		}
	}
	return game.Move{}, false
}
