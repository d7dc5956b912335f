package game

import "time"

// Axis directions explored by the generator. Decreasing directions are
// omitted: a block read right-to-left is the same block read left-to-right.
var growDirections = [2][2]int{{0, 1}, {1, 0}}

// MovesFor enumerates every legal placement for the player from the current
// position, independent of whose turn it is. Each board cell is tried as
// the lowest-coordinate start of a block on whichever layer modes it
// permits, growing rightward and downward up to MaxBlockSize cells.
// excludeShort drops the unlimited length-3 blocks, which selfplay uses to
// force rationed-block openings.
func (g *GameState) MovesFor(player int, excludeShort bool) []Move {
	var moves []Move
	size := g.Board.Size
	inv := g.blocks[blockIndex(player)]
	stamp := float64(time.Now().UnixNano()) / 1e9

	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			ground, bridge := g.Board.Cell(row, col)
			if bridge != 0 {
				continue
			}

			var startLayers []int
			if ground == 0 {
				startLayers = append(startLayers, GroundLayer)
			}
			if ground == player {
				startLayers = append(startLayers, BridgeLayer)
			}

			for _, startLayer := range startLayers {
				for _, d := range growDirections {
					path := make([]Position, 1, MaxBlockSize)
					path[0] = Position{Row: row, Col: col, Layer: startLayer}
					r, c := row, col

					for len(path) < MaxBlockSize {
						r += d[0]
						c += d[1]
						if !g.Board.InBounds(r, c) {
							break
						}
						nextGround, nextBridge := g.Board.Cell(r, c)
						if nextBridge != 0 {
							break
						}
						if startLayer == GroundLayer {
							if nextGround != 0 {
								break
							}
							path = append(path, Position{Row: r, Col: c, Layer: GroundLayer})
						} else {
							if nextGround != 0 && nextGround != player {
								break
							}
							path = append(path, Position{Row: r, Col: c, Layer: BridgeLayer})
						}

						if len(path) < MinBlockSize {
							continue
						}
						if excludeShort && len(path) == MinBlockSize {
							continue
						}
						// A bridge must land back on the player's own tile.
						if startLayer == BridgeLayer && nextGround != player {
							continue
						}
						if !inv.Has(len(path)) {
							continue
						}

						cells := make([]Position, len(path))
						copy(cells, path)
						moves = append(moves, Move{Player: player, Path: cells, Timestamp: stamp})
					}
				}
			}
		}
	}
	return moves
}
