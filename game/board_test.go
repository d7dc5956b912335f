package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBoardBasics(t *testing.T) {
	t.Run("panicking below minimum size", func(t *testing.T) {
		require.Panics(t, func() { NewBoard(2) },
			"A length-3 block must fit on the board")
	})

	t.Run("starting empty", func(t *testing.T) {
		b := NewBoard(3)
		for row := 0; row < 3; row++ {
			for col := 0; col < 3; col++ {
				ground, bridge := b.Cell(row, col)
				require.Zero(t, ground)
				require.Zero(t, bridge)
			}
		}
	})

	t.Run("placing and clearing paths", func(t *testing.T) {
		b := NewBoard(5)
		path := hPath(2, 1, 3)
		b.PlacePath(path, -1)

		ground, _ := b.Cell(2, 2)
		require.Equal(t, -1, ground)
		require.True(t, b.HasColor(2, 1, -1))
		require.False(t, b.HasColor(2, 1, 1))

		b.ClearPath(path)
		ground, _ = b.Cell(2, 2)
		require.Zero(t, ground)
	})
}

func TestBoardPlacementRules(t *testing.T) {
	b := NewBoard(5)
	b.PlacePath(hPath(2, 0, 3), 1)

	t.Run("blocking occupied ground", func(t *testing.T) {
		require.False(t, b.CanPlaceGround(2, 0))
		require.True(t, b.CanPlaceGround(3, 0))
	})

	t.Run("bridging over own or empty ground", func(t *testing.T) {
		require.True(t, b.CanPlaceBridge(2, 1, 1), "Own ground carries a bridge")
		require.True(t, b.CanPlaceBridge(3, 1, 1), "Empty ground may be spanned")
		require.False(t, b.CanPlaceBridge(2, 1, -1), "Opponent ground blocks a bridge")
	})

	t.Run("blocking occupied bridge slots", func(t *testing.T) {
		b.PlacePath([]Position{{2, 0, BridgeLayer}, {2, 1, BridgeLayer}, {2, 2, BridgeLayer}}, 1)
		require.False(t, b.CanPlaceBridge(2, 1, 1))
		b.ClearPath([]Position{{2, 0, BridgeLayer}, {2, 1, BridgeLayer}, {2, 2, BridgeLayer}})
	})
}

func TestCheckBridge(t *testing.T) {
	t.Run("connecting top to bottom for blue", func(t *testing.T) {
		b := NewBoard(3)
		b.PlacePath(vPath(0, 1, 3), 1)
		require.True(t, b.CheckBridge(1))
		require.False(t, b.CheckBridge(-1))
	})

	t.Run("connecting left to right for pink", func(t *testing.T) {
		b := NewBoard(3)
		b.PlacePath(hPath(1, 0, 3), -1)
		require.True(t, b.CheckBridge(-1))
		require.False(t, b.CheckBridge(1))
	})

	t.Run("ignoring a broken path", func(t *testing.T) {
		b := NewBoard(5)
		b.PlacePath(vPath(0, 0, 3), 1) // rows 0-2
		require.False(t, b.CheckBridge(1), "Rows 3-4 are not covered")
	})

	t.Run("following bends", func(t *testing.T) {
		b := NewBoard(5)
		b.PlacePath(vPath(0, 0, 3), 1)
		b.PlacePath(hPath(2, 1, 3), 1)
		b.PlacePath(vPath(2, 3, 3), 1)
		require.True(t, b.CheckBridge(1), "An L-shaped chain still connects the edges")
	})

	t.Run("counting bridge cells as connections", func(t *testing.T) {
		b := NewBoard(5)
		b.PlacePath(vPath(0, 0, 3), 1)
		// Bridge over the opponent is represented only on layer 2.
		b.PlacePath([]Position{{3, 0, BridgeLayer}, {4, 0, BridgeLayer}}, 1)
		require.True(t, b.CheckBridge(1), "Either layer satisfies connectivity")
	})

	t.Run("staying independent of opponent cells", func(t *testing.T) {
		b := NewBoard(5)
		b.PlacePath(vPath(0, 2, 5), 1)
		require.True(t, b.CheckBridge(1))

		withNoise := b.Clone()
		withNoise.PlacePath(hPath(1, 3, 2), -1)
		withNoise.PlacePath(hPath(3, 0, 2), -1)
		require.True(t, withNoise.CheckBridge(1),
			"Opponent cells off the connecting path must not change the result")
		require.False(t, withNoise.CheckBridge(-1))
	})
}

func TestCountTiles(t *testing.T) {
	b := NewBoard(5)
	b.PlacePath(hPath(0, 0, 4), 1)
	b.PlacePath([]Position{{0, 0, BridgeLayer}, {0, 1, BridgeLayer}, {0, 2, BridgeLayer}}, 1)
	b.PlacePath(hPath(4, 0, 3), -1)

	blue := b.CountTiles(1)
	require.Equal(t, 4, blue.Ground)
	require.Equal(t, 3, blue.Bridge)
	require.Equal(t, 7, blue.Total)
	require.Equal(t, TileCount{Ground: 3, Total: 3}, b.CountTiles(-1))
}

func TestBoardClone(t *testing.T) {
	b := NewBoard(4)
	b.PlacePath(hPath(1, 0, 3), 1)

	clone := b.Clone()
	clone.PlacePath(hPath(2, 0, 3), -1)

	ground, _ := b.Cell(2, 0)
	require.Zero(t, ground, "Mutating a clone must not touch the original")
	require.True(t, clone.HasColor(1, 0, 1), "Clone keeps the original cells")
}
