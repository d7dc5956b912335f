package game

import (
	"fmt"

	"github.com/bytedance/sonic"
)

type boardSnapshot struct {
	Size  int        `json:"size"`
	Cells [][][2]int8 `json:"cells"`
}

type stateSnapshot struct {
	Board         boardSnapshot        `json:"board"`
	CurrentPlayer int                  `json:"current_player"`
	PlayerBlocks  map[string]Inventory `json:"player_blocks"`
	MoveHistory   []Move               `json:"move_history"`
	Winner        *int                 `json:"winner"`
}

func (b *Board) snapshot() boardSnapshot {
	cells := make([][][2]int8, b.Size)
	for row := 0; row < b.Size; row++ {
		cells[row] = make([][2]int8, b.Size)
		copy(cells[row], b.cells[row*b.Size:(row+1)*b.Size])
	}
	return boardSnapshot{Size: b.Size, Cells: cells}
}

func boardFromSnapshot(snap boardSnapshot) (*Board, error) {
	if snap.Size < MinBoardSize {
		return nil, fmt.Errorf("board size %d below minimum %d", snap.Size, MinBoardSize)
	}
	if len(snap.Cells) != snap.Size {
		return nil, fmt.Errorf("board has %d rows, want %d", len(snap.Cells), snap.Size)
	}
	b := NewBoard(snap.Size)
	for row, cols := range snap.Cells {
		if len(cols) != snap.Size {
			return nil, fmt.Errorf("row %d has %d cells, want %d", row, len(cols), snap.Size)
		}
		copy(b.cells[row*snap.Size:(row+1)*snap.Size], cols)
	}
	return b, nil
}

func (g *GameState) MarshalJSON() ([]byte, error) {
	snap := stateSnapshot{
		Board:         g.Board.snapshot(),
		CurrentPlayer: g.CurrentPlayer,
		PlayerBlocks: map[string]Inventory{
			"1":  g.Blocks(1),
			"-1": g.Blocks(-1),
		},
		MoveHistory: g.history,
	}
	if snap.MoveHistory == nil {
		snap.MoveHistory = []Move{}
	}
	if g.over {
		w := g.winner
		snap.Winner = &w
	}
	return sonic.Marshal(snap)
}

func (g *GameState) UnmarshalJSON(data []byte) error {
	var snap stateSnapshot
	if err := sonic.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("decode state: %w", err)
	}
	board, err := boardFromSnapshot(snap.Board)
	if err != nil {
		return err
	}
	if snap.CurrentPlayer != 1 && snap.CurrentPlayer != -1 {
		return fmt.Errorf("current_player must be +1 or -1, got %d", snap.CurrentPlayer)
	}

	g.Board = board
	g.CurrentPlayer = snap.CurrentPlayer
	g.blocks = [2]Inventory{snap.PlayerBlocks["1"], snap.PlayerBlocks["-1"]}
	g.history = snap.MoveHistory
	if snap.Winner != nil {
		g.winner = *snap.Winner
		g.over = true
	} else {
		g.winner = 0
		g.over = false
	}
	g.cache = nil
	g.cacheDirty = true
	return nil
}

// DecodeState restores a GameState from a serialized snapshot.
func DecodeState(data []byte) (*GameState, error) {
	g := &GameState{}
	if err := g.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return g, nil
}

// Record is a complete game transcript for archiving and training data.
type Record struct {
	BoardSize  int        `json:"board_size"`
	Moves      []Move     `json:"moves"`
	Winner     *int       `json:"winner"`
	FinalState *GameState `json:"final_state"`
}

// ExportRecord serializes the game's move list and final state.
func (g *GameState) ExportRecord() ([]byte, error) {
	rec := Record{
		BoardSize:  g.Board.Size,
		Moves:      g.history,
		FinalState: g,
	}
	if rec.Moves == nil {
		rec.Moves = []Move{}
	}
	if g.over {
		w := g.winner
		rec.Winner = &w
	}
	return sonic.Marshal(rec)
}

// FromRecord rebuilds a game by replaying a transcript from the empty
// position. Replay stops at the first illegal move.
func FromRecord(data []byte) (*GameState, error) {
	var rec Record
	if err := sonic.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	if rec.BoardSize < MinBoardSize {
		return nil, fmt.Errorf("board size %d below minimum %d", rec.BoardSize, MinBoardSize)
	}
	g := NewGameState(rec.BoardSize)
	for i, m := range rec.Moves {
		if v := g.ApplyMove(m); !v.OK() {
			return nil, fmt.Errorf("replaying move %d: %s", i, v)
		}
	}
	return g, nil
}
