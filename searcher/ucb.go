package searcher

import "math"

const (
	// DefaultExploration approximates sqrt(2) for the UCB1 bonus term.
	DefaultExploration = 1.41

	// MaxPlayoutMoves caps a single playout before calling it a draw.
	MaxPlayoutMoves = 100

	// TacticalScanLimit bounds the per-ply winning-move scan in playouts.
	TacticalScanLimit = 30
)

// Playout scores from a single node's perspective.
const (
	Win  = 1.0
	Draw = 0.5
	Loss = 0.0
)

func ucb1(wins float64, visits int, lnParent, exploration float64) float64 {
	if visits == 0 { // Unvisited children are always preferred
		return math.Inf(1)
	}
	return wins/float64(visits) + exploration*math.Sqrt(lnParent/float64(visits))
}

// scoreFor converts an absolute winner into a score for one player.
func scoreFor(winner, player int) float64 {
	switch winner {
	case player:
		return Win
	case 0:
		return Draw
	default:
		return Loss
	}
}
