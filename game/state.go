package game

// GameState owns a board plus everything that changes as the game is
// played: turn owner, block inventories, move history and win status.
// It is mutated only through ApplyMove, UndoLastMove and Reset; searchers
// work on independent Clones.
type GameState struct {
	Board         *Board
	CurrentPlayer int // +1 or -1
	blocks        [2]Inventory
	history       []Move
	winner        int // meaningful only while over
	over          bool

	// Legal moves for the player to move, recomputed when dirty. Only the
	// three mutation entry points clear the flag.
	cache      []Move
	cacheDirty bool
}

func NewGameState(size int) *GameState {
	return &GameState{
		Board:         NewBoard(size),
		CurrentPlayer: 1,
		blocks:        [2]Inventory{DefaultInventory(), DefaultInventory()},
		cacheDirty:    true,
	}
}

// blockIndex maps a player value to its inventory slot.
func blockIndex(player int) int {
	if player == 1 {
		return 0
	}
	return 1
}

func (g *GameState) Blocks(player int) Inventory {
	return g.blocks[blockIndex(player)]
}

// SetBlocks overrides a player's remaining rationed blocks, for non-standard
// setups.
func (g *GameState) SetBlocks(player int, inv Inventory) {
	g.blocks[blockIndex(player)] = inv
	g.cacheDirty = true
}

func (g *GameState) History() []Move { return g.history }

// Winner returns the game result and whether the game is over. A winner of
// 0 on a finished game is a draw.
func (g *GameState) Winner() (int, bool) {
	return g.winner, g.over
}

func (g *GameState) GameOver() bool { return g.over }

// Validate checks a move against the current position without mutating
// anything.
func (g *GameState) Validate(m Move) Verdict {
	if g.over {
		return VerdictGameOver
	}
	if m.Player != g.CurrentPlayer {
		return VerdictWrongTurn
	}
	if !m.ValidPath() {
		return VerdictPathShape
	}
	if !g.blocks[blockIndex(m.Player)].Has(m.BlockSize()) {
		return VerdictInventory
	}

	path := m.sorted()
	mode := path[0].Layer
	for i, p := range path {
		if !g.Board.InBounds(p.Row, p.Col) {
			return VerdictOutOfBounds
		}
		ground, bridge := g.Board.Cell(p.Row, p.Col)
		if bridge != 0 {
			return VerdictLayerConflict
		}

		if mode == GroundLayer {
			if p.Layer != GroundLayer || ground != 0 {
				return VerdictLayerConflict
			}
			continue
		}

		// Bridge mode: anchored on the mover's own ground cell, spanning
		// empty or own ground, landing back on an own ground cell.
		if p.Layer != BridgeLayer {
			return VerdictLayerConflict
		}
		if i == 0 {
			if ground != m.Player {
				return VerdictLayerConflict
			}
		} else if ground != 0 && ground != m.Player {
			return VerdictLayerConflict
		}
	}

	if mode == BridgeLayer {
		end := path[len(path)-1]
		if ground, _ := g.Board.Cell(end.Row, end.Col); ground != m.Player {
			return VerdictLayerConflict
		}
	}
	return VerdictOK
}

// ApplyMove plays the move if it is legal. On success the board, inventory,
// history and turn owner are updated, the legal-move cache is invalidated,
// and the game may become terminal: by a completed bridge, or by a
// territory-count tie-break when the next player has no legal move left.
func (g *GameState) ApplyMove(m Move) Verdict {
	if v := g.Validate(m); !v.OK() {
		return v
	}

	g.blocks[blockIndex(m.Player)].Use(m.BlockSize())
	g.Board.PlacePath(m.Path, m.Player)
	g.history = append(g.history, m)
	g.cacheDirty = true

	if g.Board.CheckBridge(m.Player) {
		g.winner = m.Player
		g.over = true
		return VerdictOK
	}

	g.CurrentPlayer = -g.CurrentPlayer
	if len(g.LegalMoves()) == 0 {
		g.declareStalemate()
	}
	return VerdictOK
}

// declareStalemate ends the game when no legal move remains: the player
// occupying more cells wins, an exact tie is a draw.
func (g *GameState) declareStalemate() {
	blue := g.Board.CountTiles(1).Total
	pink := g.Board.CountTiles(-1).Total
	switch {
	case blue > pink:
		g.winner = 1
	case pink > blue:
		g.winner = -1
	default:
		g.winner = 0
	}
	g.over = true
	g.cacheDirty = true
}

// UndoLastMove reverts the most recent move: board cells cleared, inventory
// restored, turn returned to the mover, terminal status lifted. Reports
// whether there was a move to undo.
func (g *GameState) UndoLastMove() bool {
	if len(g.history) == 0 {
		return false
	}
	last := g.history[len(g.history)-1]
	g.history = g.history[:len(g.history)-1]

	g.Board.ClearPath(last.Path)
	g.blocks[blockIndex(last.Player)].Put(last.BlockSize())
	g.CurrentPlayer = last.Player
	g.winner = 0
	g.over = false
	g.cacheDirty = true
	return true
}

// Reset returns the state to an empty starting position.
func (g *GameState) Reset() {
	g.Board.Reset()
	g.CurrentPlayer = 1
	g.blocks = [2]Inventory{DefaultInventory(), DefaultInventory()}
	g.history = nil
	g.winner = 0
	g.over = false
	g.cacheDirty = true
}

// LegalMoves returns every legal move for the player to move. The result is
// cached until the next mutation; callers must not modify it.
func (g *GameState) LegalMoves() []Move {
	if !g.cacheDirty {
		return g.cache
	}
	if g.over {
		g.cache = nil
	} else {
		g.cache = g.MovesFor(g.CurrentPlayer, false)
	}
	g.cacheDirty = false
	return g.cache
}

func (g *GameState) Clone() *GameState {
	history := make([]Move, len(g.history))
	copy(history, g.history)
	return &GameState{
		Board:         g.Board.Clone(),
		CurrentPlayer: g.CurrentPlayer,
		blocks:        g.blocks,
		history:       history,
		winner:        g.winner,
		over:          g.over,
		cacheDirty:    true,
	}
}

// GameInfo is a summary of the game for callers that do not need the full
// board.
type GameInfo struct {
	CurrentPlayer  int                  `json:"current_player"`
	MoveCount      int                  `json:"move_count"`
	PlayerBlocks   map[string]Inventory `json:"player_blocks"`
	Winner         *int                 `json:"winner"`
	GameOver       bool                 `json:"is_game_over"`
	LegalMoveCount int                  `json:"legal_moves_count"`
	BoardSize      int                  `json:"board_size"`
}

func (g *GameState) Info() GameInfo {
	info := GameInfo{
		CurrentPlayer: g.CurrentPlayer,
		MoveCount:     len(g.history),
		PlayerBlocks: map[string]Inventory{
			"1":  g.Blocks(1),
			"-1": g.Blocks(-1),
		},
		GameOver:       g.over,
		LegalMoveCount: len(g.LegalMoves()),
		BoardSize:      g.Board.Size,
	}
	if g.over {
		w := g.winner
		info.Winner = &w
	}
	return info
}
