package searcher

import (
	"math"

	"crossway/game"
)

// noParent marks the root's parent handle.
const noParent int32 = -1

type node struct {
	parent   int32
	children []int32
	move     game.Move
	state    *game.GameState
	untried  []game.Move
	player   int
	wins     float64
	visits   int
}

// tree is a flat arena of nodes addressed by index handles. Links are
// handles rather than pointers so appends may relocate the backing array
// without invalidating the structure.
type tree struct {
	nodes []node
}

func newTree(state *game.GameState) *tree {
	t := &tree{nodes: make([]node, 0, 1024)}
	t.nodes = append(t.nodes, node{
		parent:  noParent,
		state:   state,
		untried: copyMoves(state.LegalMoves()),
		player:  state.CurrentPlayer,
	})
	return t
}

func (t *tree) at(h int32) *node {
	return &t.nodes[h]
}

func (t *tree) add(parent int32, move game.Move, state *game.GameState) int32 {
	h := int32(len(t.nodes))
	t.nodes = append(t.nodes, node{
		parent:  parent,
		move:    move,
		state:   state,
		untried: copyMoves(state.LegalMoves()),
		// The turn does not flip past a game-ending move, so a winning
		// terminal child keeps the mover's perspective.
		player: state.CurrentPlayer,
	})
	t.nodes[parent].children = append(t.nodes[parent].children, h)
	return h
}

// bestChild descends by UCB1. Ties keep the earliest child, so an
// unvisited child (infinite score) wins over any visited sibling.
func (t *tree) bestChild(h int32, exploration float64) int32 {
	n := &t.nodes[h]
	lnN := math.Log(float64(n.visits))

	best := n.children[0]
	bestScore := math.Inf(-1)
	for _, child := range n.children {
		score := ucb1(t.nodes[child].wins, t.nodes[child].visits, lnN, exploration)
		if score > bestScore {
			best, bestScore = child, score
		}
	}
	return best
}

// mostVisited picks the final move among the root's children. Ties keep
// insertion order.
func (t *tree) mostVisited(h int32) int32 {
	n := &t.nodes[h]
	best := n.children[0]
	for _, child := range n.children[1:] {
		if t.nodes[child].visits > t.nodes[best].visits {
			best = child
		}
	}
	return best
}

// backup walks handles from a leaf to the root, flipping the score's
// perspective at each level.
func (t *tree) backup(h int32, score float64) {
	for h != noParent {
		n := &t.nodes[h]
		n.visits++
		n.wins += score
		score = Win - score
		h = n.parent
	}
}

func copyMoves(moves []game.Move) []game.Move {
	if len(moves) == 0 {
		return nil
	}
	out := make([]game.Move, len(moves))
	copy(out, moves)
	return out
}
