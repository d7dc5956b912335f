package game

import "fmt"

// DefaultBoardSize matches the standard crossway board.
const DefaultBoardSize = 18

// MinBoardSize is the smallest board a length-3 block fits on.
const MinBoardSize = MinBlockSize

// Board is a size×size grid where every cell has a ground slot and a bridge
// slot. Slot values are 0 (empty), +1 or -1. A bridge slot may only be
// occupied while its ground slot is occupied.
type Board struct {
	Size  int
	cells [][2]int8 // row-major
}

func NewBoard(size int) *Board {
	if size < MinBoardSize {
		panic(fmt.Sprintf("board size must be at least %d, got %d", MinBoardSize, size))
	}
	return &Board{
		Size:  size,
		cells: make([][2]int8, size*size),
	}
}

func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.Size && col >= 0 && col < b.Size
}

// Cell returns the ground and bridge values at (row, col).
func (b *Board) Cell(row, col int) (ground, bridge int) {
	c := b.cells[row*b.Size+col]
	return int(c[0]), int(c[1])
}

func (b *Board) set(row, col, layer, value int) {
	b.cells[row*b.Size+col][layer] = int8(value)
}

// HasColor reports whether either layer of the cell holds the player's color.
func (b *Board) HasColor(row, col, player int) bool {
	if !b.InBounds(row, col) {
		return false
	}
	c := b.cells[row*b.Size+col]
	return int(c[0]) == player || int(c[1]) == player
}

// CanPlaceGround reports whether a base block may cover (row, col).
func (b *Board) CanPlaceGround(row, col int) bool {
	if !b.InBounds(row, col) {
		return false
	}
	c := b.cells[row*b.Size+col]
	return c[0] == 0 && c[1] == 0
}

// CanPlaceBridge reports whether the player may cover (row, col) with a
// bridge cell: the bridge slot is free and the ground below is empty or
// the player's own color.
func (b *Board) CanPlaceBridge(row, col, player int) bool {
	if !b.InBounds(row, col) {
		return false
	}
	c := b.cells[row*b.Size+col]
	if c[1] != 0 {
		return false
	}
	return c[0] == 0 || int(c[0]) == player
}

// PlacePath writes the player's color onto every path cell.
func (b *Board) PlacePath(path []Position, player int) {
	for _, p := range path {
		b.set(p.Row, p.Col, p.Layer, player)
	}
}

// ClearPath empties every path cell.
func (b *Board) ClearPath(path []Position) {
	for _, p := range path {
		b.set(p.Row, p.Col, p.Layer, 0)
	}
}

// CheckBridge reports whether the player connects their two assigned edges:
// top to bottom for player +1, left to right for player -1. It is a DFS
// flood fill over cells holding the player's color on either layer.
func (b *Board) CheckBridge(player int) bool {
	visited := make([]bool, b.Size*b.Size)
	stack := make([][2]int, 0, b.Size)

	if player == 1 {
		for col := 0; col < b.Size; col++ {
			if b.HasColor(0, col, player) {
				stack = append(stack, [2]int{0, col})
				visited[col] = true
			}
		}
	} else {
		for row := 0; row < b.Size; row++ {
			if b.HasColor(row, 0, player) {
				stack = append(stack, [2]int{row, 0})
				visited[row*b.Size] = true
			}
		}
	}

	dirs := [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		row, col := cur[0], cur[1]

		if player == 1 && row == b.Size-1 {
			return true
		}
		if player == -1 && col == b.Size-1 {
			return true
		}

		for _, d := range dirs {
			nr, nc := row+d[0], col+d[1]
			if b.InBounds(nr, nc) && !visited[nr*b.Size+nc] && b.HasColor(nr, nc, player) {
				visited[nr*b.Size+nc] = true
				stack = append(stack, [2]int{nr, nc})
			}
		}
	}
	return false
}

// TileCount is the per-layer occupancy of one player.
type TileCount struct {
	Ground int `json:"ground"`
	Bridge int `json:"bridge"`
	Total  int `json:"total"`
}

func (b *Board) CountTiles(player int) TileCount {
	var tc TileCount
	for _, c := range b.cells {
		if int(c[0]) == player {
			tc.Ground++
		}
		if int(c[1]) == player {
			tc.Bridge++
		}
	}
	tc.Total = tc.Ground + tc.Bridge
	return tc
}

func (b *Board) Clone() *Board {
	cells := make([][2]int8, len(b.cells))
	copy(cells, b.cells)
	return &Board{Size: b.Size, cells: cells}
}

func (b *Board) Reset() {
	for i := range b.cells {
		b.cells[i] = [2]int8{}
	}
}
