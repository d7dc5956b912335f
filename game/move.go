package game

import (
	"fmt"
	"sort"
	"time"
)

// Block size limits. Length-3 blocks are unlimited, 4s and 5s are rationed
// per player (see Inventory).
const (
	MinBlockSize = 3
	MaxBlockSize = 5
)

// Move is the placement of one straight block by one player. Path cells are
// all on the ground layer for a base move, or all on the bridge layer for a
// bridge move.
type Move struct {
	Player    int        `json:"player"` // +1 or -1
	Path      []Position `json:"path"`
	Timestamp float64    `json:"timestamp"` // Unix seconds
}

// NewMove builds a move stamped with the current time. A path length outside
// [MinBlockSize, MaxBlockSize] or a bad player value is a caller bug and
// panics; board-dependent legality is checked by GameState instead.
func NewMove(player int, path []Position) Move {
	if player != 1 && player != -1 {
		panic(fmt.Sprintf("player must be +1 or -1, got %d", player))
	}
	if len(path) < MinBlockSize || len(path) > MaxBlockSize {
		panic(fmt.Sprintf("path length must be between %d and %d, got %d",
			MinBlockSize, MaxBlockSize, len(path)))
	}
	return Move{
		Player:    player,
		Path:      path,
		Timestamp: float64(time.Now().UnixNano()) / 1e9,
	}
}

func (m Move) BlockSize() int { return len(m.Path) }

// IsBridge reports whether the move is placed on the bridge layer.
func (m Move) IsBridge() bool {
	return len(m.Path) > 0 && m.Path[0].Layer == BridgeLayer
}

func (m Move) Start() Position { return m.Path[0] }

func (m Move) End() Position { return m.Path[len(m.Path)-1] }

func (m Move) Direction() Direction {
	if len(m.Path) < 2 {
		return DirectionNone
	}
	switch {
	case m.Path[0].Row == m.Path[1].Row:
		return Horizontal
	case m.Path[0].Col == m.Path[1].Col:
		return Vertical
	default:
		return DirectionNone
	}
}

// ValidPath reports whether the path is straight, duplicate-free and
// contiguous with unit steps. Cell occupancy is not considered here.
func (m Move) ValidPath() bool {
	if len(m.Path) < MinBlockSize || len(m.Path) > MaxBlockSize {
		return false
	}

	sameRow, sameCol := true, true
	for _, p := range m.Path[1:] {
		sameRow = sameRow && p.Row == m.Path[0].Row
		sameCol = sameCol && p.Col == m.Path[0].Col
	}
	if !sameRow && !sameCol {
		return false
	}

	seen := make(map[Position]struct{}, len(m.Path))
	for _, p := range m.Path {
		if _, dup := seen[p]; dup {
			return false
		}
		seen[p] = struct{}{}
	}

	path := m.sorted()
	for i := 0; i+1 < len(path); i++ {
		if sameRow && path[i+1].Col-path[i].Col != 1 {
			return false
		}
		if !sameRow && path[i+1].Row-path[i].Row != 1 {
			return false
		}
	}
	return true
}

// sorted returns the path ordered along its axis so legality checks can
// treat the lowest coordinate as the start cell.
func (m Move) sorted() []Position {
	path := make([]Position, len(m.Path))
	copy(path, m.Path)
	if m.Direction() == Horizontal {
		sort.Slice(path, func(i, j int) bool { return path[i].Col < path[j].Col })
	} else {
		sort.Slice(path, func(i, j int) bool { return path[i].Row < path[j].Row })
	}
	return path
}

// Equal compares player and path, ignoring timestamps.
func (m Move) Equal(o Move) bool {
	if m.Player != o.Player || len(m.Path) != len(o.Path) {
		return false
	}
	for i := range m.Path {
		if m.Path[i] != o.Path[i] {
			return false
		}
	}
	return true
}

func (m Move) String() string {
	s, e := m.Start(), m.End()
	return fmt.Sprintf("Move(player=%d, size=%d, from=(%d,%d), to=(%d,%d), dir=%s, bridge=%t)",
		m.Player, m.BlockSize(), s.Row, s.Col, e.Row, e.Col, m.Direction(), m.IsBridge())
}
