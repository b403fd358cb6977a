package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRotateOffsets_转满一圈回到原形(t *testing.T) {
	for _, shape := range []Shape{ShapeSmallL, ShapeDomino, ShapeSingle, shapeStart} {
		for _, rot := range rotations {
			got := RotateOffsets(RotateOffsets(shape.Offsets, rot), 360-rot)
			assert.Equal(t, shape.Offsets, got, "shape=%s rot=%d", shape.ID, rot)
		}
	}
}

func TestRotateEdges_转满一圈回到原样(t *testing.T) {
	e := CellEdges{land, water, water, land}
	for _, rot := range rotations {
		assert.Equal(t, e, rotateEdges(rotateEdges(e, rot), 360-rot), "rot=%d", rot)
	}
	assert.Equal(t, CellEdges{land, land, water, water}, rotateEdges(e, Rotate90))
}

func TestRotateOffsets_结果归一到零点(t *testing.T) {
	got := RotateOffsets(ShapeSmallL.Offsets, Rotate90)
	minR, minC := got[0].Row, got[0].Col
	for _, o := range got {
		minR, minC = min(minR, o.Row), min(minC, o.Col)
	}
	assert.Equal(t, 0, minR)
	assert.Equal(t, 0, minC)
	assert.Len(t, got, 3)
}

func TestNewMatch_起始板块占据中央四格(t *testing.T) {
	s, err := NewMatch(Options{Players: 3, Seed: 1})
	require.NoError(t, err)
	assert.Len(t, s.Tiles.Placed, 1)
	for _, c := range []Cell{{2, 4}, {2, 5}, {3, 4}, {3, 5}} {
		pt, ok := s.Tiles.TileAt(c)
		require.True(t, ok, "cell %s", c.Key())
		assert.Equal(t, NoOwner, pt.Owner)
	}
	_, ok := s.Tiles.TileAt(Cell{Row: 0, Col: 0})
	assert.False(t, ok)
}

func TestNewMatch_人数越界失败(t *testing.T) {
	_, err := NewMatch(Options{Players: 1})
	assert.Error(t, err)
	_, err = NewMatch(Options{Players: MaxPlayers + 1})
	assert.Error(t, err)
}

func TestNewMatch_同一种子结果一致(t *testing.T) {
	a, err := NewMatch(Options{Players: 4, Seed: 42, Expansion: true})
	require.NoError(t, err)
	b, err := NewMatch(Options{Players: 4, Seed: 42, Expansion: true})
	require.NoError(t, err)
	assert.Equal(t, a.Clone(), b.Clone())
}

func TestPlaceTile_两人一时代放完进入行动阶段(t *testing.T) {
	s, err := NewMatch(Options{Players: 2, Seed: 3})
	require.NoError(t, err)
	require.Equal(t, PhaseTilePlacement, s.Phase)
	require.Equal(t, 0, s.Current)

	for seat := 0; seat < 2; seat++ {
		require.Equal(t, seat, s.Current)
		opts := ValidPlacements(s, seat)
		require.NotEmpty(t, opts, "seat %d has no placement", seat)
		pl := opts[0]
		require.True(t, CanPlaceTile(s, seat, pl.Anchor, pl.Rotation))
		s = mustApply(t, s, seat, PlaceTile{AnchorRow: pl.Anchor.Row, AnchorCol: pl.Anchor.Col, Rotation: pl.Rotation})
		assert.Nil(t, s.Players[seat].LTile)
		assert.True(t, s.Players[seat].PlacedTile)
	}

	assert.Equal(t, PhaseActions, s.Phase)
	assert.Equal(t, s.FirstPlayer, s.Current)
	for seat := 0; seat < 2; seat++ {
		p := s.Players[seat]
		assert.Equal(t, 1, piecesOf(s, seat, PieceCapital))
		assert.Equal(t, StartingWorkers, piecesOf(s, seat, PieceWorker))
		assert.NotNil(t, p.Civ, "era I civ activates on placement")
		assert.Equal(t, TotalCubes, s.CubeTotal(seat))
		assert.Equal(t, TotalCubes, p.Cubes+p.PledgedCubes())
	}
}

func TestPlaceTile_占用表与格子列表一致(t *testing.T) {
	s, err := NewMatch(Options{Players: 2, Seed: 11})
	require.NoError(t, err)
	for seat := 0; seat < 2; seat++ {
		pl := ValidPlacements(s, seat)[0]
		s = mustApply(t, s, seat, PlaceTile{AnchorRow: pl.Anchor.Row, AnchorCol: pl.Anchor.Col, Rotation: pl.Rotation})
	}

	total := 0
	for id, pt := range s.Tiles.Placed {
		assert.Equal(t, id, pt.ID)
		for _, c := range pt.Cells {
			assert.Equal(t, id, s.Tiles.Occupancy[c.Key()], "cell %s", c.Key())
		}
		total += len(pt.Cells)
	}
	assert.Len(t, s.Tiles.Occupancy, total)
	assert.Equal(t, 4+3+3, total)
}

func TestPlaceTile_重叠与越界被拒绝(t *testing.T) {
	s, err := NewMatch(Options{Players: 2, Seed: 5})
	require.NoError(t, err)

	_, err = Apply(s, 0, PlaceTile{AnchorRow: 2, AnchorCol: 4})
	assert.ErrorIs(t, err, ErrInvalidMove)
	_, err = Apply(s, 0, PlaceTile{AnchorRow: 5, AnchorCol: 9})
	assert.ErrorIs(t, err, ErrInvalidMove)
	// 不相邻
	_, err = Apply(s, 0, PlaceTile{AnchorRow: 0, AnchorCol: 0})
	assert.ErrorIs(t, err, ErrInvalidMove)
	// 不是自己的回合
	_, err = Apply(s, 1, PlaceTile{AnchorRow: 0, AnchorCol: 4})
	assert.ErrorIs(t, err, ErrInvalidMove)
	assert.Equal(t, "not your turn", RejectReason(err))
}

func TestReachableCells_按曼哈顿步数展开(t *testing.T) {
	assert.Len(t, ReachableCells(Cell{Row: 0, Col: 0}, 1), 2)
	assert.Len(t, ReachableCells(Cell{Row: 2, Col: 4}, 1), 4)
	assert.Len(t, ReachableCells(Cell{Row: 2, Col: 4}, 2), 12)
	assert.Len(t, ReachableCells(Cell{Row: 0, Col: 0}, Unlimited), BoardRows*BoardCols-1)
}

func TestPlaceTile_相接边地形不同被拒绝(t *testing.T) {
	s, err := NewMatch(Options{Players: 2, Seed: 5})
	require.NoError(t, err)
	allWater := CellEdges{water, water, water, water}
	s.Players[0].LTile = &TileTemplate{ID: 91, Edges: []CellEdges{allWater, allWater, allWater}}

	// 拐角右侧的 (3,3) 贴着起始板块 (3,4) 的陆地左边
	anchor := Cell{Row: 2, Col: 2}
	assert.False(t, CanPlaceTile(s, 0, anchor, Rotate0))
	got, err := Apply(s, 0, PlaceTile{AnchorRow: anchor.Row, AnchorCol: anchor.Col})
	require.ErrorIs(t, err, ErrInvalidMove)
	assert.Equal(t, "tile cannot be placed there", RejectReason(err))
	assert.Same(t, s, got)
	assert.Len(t, s.Tiles.Placed, 1)

	s.Players[0].LTile = &TileTemplate{ID: 92, Edges: []CellEdges{allLand, allLand, allLand}}
	assert.True(t, CanPlaceTile(s, 0, anchor, Rotate0))
	s = mustApply(t, s, 0, PlaceTile{AnchorRow: anchor.Row, AnchorCol: anchor.Col})
	assert.Len(t, s.Tiles.Placed, 2)
	assert.Equal(t, allLand, s.Edges[Cell{Row: 3, Col: 3}.Key()])
}

func TestPlaceTile_盖住首都时首都挪到相邻空格(t *testing.T) {
	s := actionState(t)
	s.Phase = PhaseTilePlacement
	s.Era = EraII
	s.TilesPlaced = 0
	s.Players[0].PlacedTile = false
	// 下边是水，与起始板块上边相接
	edges := CellEdges{land, land, water, land}
	s.Players[0].Dominoes[EraII] = &TileTemplate{ID: 93, Edges: []CellEdges{edges, edges}}
	s.capitalOf(0).Cell = Cell{Row: 1, Col: 4}
	s.pieceByID("worker-0-0").Cell = Cell{Row: 1, Col: 5}

	s = mustApply(t, s, 0, PlaceTile{AnchorRow: 1, AnchorCol: 4})
	capital := s.capitalOf(0)
	assert.Equal(t, Cell{Row: 0, Col: 4}, capital.Cell)
	assert.Equal(t, capital.Cell, s.pieceByID("worker-0-0").Cell, "被盖住的工人回到首都")
	assert.Equal(t, Cell{Row: 2, Col: 4}, s.pieceByID("worker-0-1").Cell)
	assert.Equal(t, PhaseTilePlacement, s.Phase)
}

func TestRelocateCapitalsOn_相邻格全被盖住时向下一个方向找(t *testing.T) {
	s := actionState(t)
	s.relocateCapitalsOn([]Cell{{2, 4}, {1, 4}, {3, 4}})
	assert.Equal(t, Cell{Row: 2, Col: 3}, s.capitalOf(0).Cell)
	assert.Equal(t, Cell{Row: 3, Col: 5}, s.capitalOf(1).Cell, "没被盖住的首都不动")
}
