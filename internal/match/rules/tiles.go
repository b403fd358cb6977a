package rules

import "strconv"

// Offset 板块内相对锚点的偏移。
type Offset struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Shape 板块形状。
type Shape struct {
	ID      string   `json:"id"`
	Offsets []Offset `json:"offsets"`
}

var (
	ShapeSmallL = Shape{ID: "SmallL", Offsets: []Offset{{0, 0}, {1, 0}, {1, 1}}}
	ShapeDomino = Shape{ID: "1x2", Offsets: []Offset{{0, 0}, {0, 1}}}
	ShapeSingle = Shape{ID: "1x1", Offsets: []Offset{{0, 0}}}
	shapeStart  = Shape{ID: "2x2", Offsets: []Offset{{0, 0}, {0, 1}, {1, 0}, {1, 1}}}
)

// L 形板块两臂相接的拐角格（首都落点）。
const smallLCorner = 1

// TileTemplate 玩家私有板块：每格的资源与四边地形，顺序与 Shape.Offsets 一致。
// 模板只读，状态之间可以共享指针。
type TileTemplate struct {
	ID        int          `json:"id"`
	Resources [][]Resource `json:"resources"`
	Edges     []CellEdges  `json:"edges"`
}

var allLand = CellEdges{land, land, land, land}

var lTileTemplates = []*TileTemplate{
	{ID: 1, Resources: [][]Resource{{ResourceWheat}, {ResourceWheat}, {ResourceRock}}, Edges: []CellEdges{{water, water, land, water}, {land, land, water, water}, {land, land, water, land}}},
	{ID: 2, Resources: [][]Resource{{ResourceWheat}, {ResourceGame}, {ResourceRock}}, Edges: []CellEdges{allLand, {land, land, water, land}, {land, water, water, land}}},
	{ID: 3, Resources: [][]Resource{{ResourceWheat}, {ResourceRock}, {ResourceRock}}, Edges: []CellEdges{allLand, {land, land, water, water}, {land, water, water, land}}},
	{ID: 4, Resources: [][]Resource{{ResourceRock}, {ResourceGame}, {ResourceWheat}}, Edges: []CellEdges{{water, water, land, water}, {land, land, land, water}, {water, water, land, land}}},
}

var dominoTileTemplates = []*TileTemplate{
	{ID: 5, Resources: [][]Resource{{ResourceGem}, {ResourceRock}}, Edges: []CellEdges{allLand, {land, water, water, land}}},
	{ID: 6, Resources: [][]Resource{{ResourceGame}, {ResourceGem}}, Edges: []CellEdges{{water, land, land, land}, {water, water, land, land}}},
	{ID: 7, Resources: [][]Resource{{ResourceRock}, {ResourceGem}}, Edges: []CellEdges{{water, land, land, water}, {water, water, land, land}}},
	{ID: 8, Resources: [][]Resource{{ResourceWheat}, {ResourceGem}}, Edges: []CellEdges{{water, land, water, land}, {land, water, water, land}}},
	{ID: 9, Resources: [][]Resource{{ResourceGame, ResourceGame}, {ResourceGem}}, Edges: []CellEdges{{land, land, water, water}, {water, water, water, land}}},
	{ID: 10, Resources: [][]Resource{{ResourceGem}, {ResourceWheat}}, Edges: []CellEdges{{water, land, land, land}, {water, land, land, land}}},
	{ID: 11, Resources: [][]Resource{{ResourceGem}, {ResourceWheat}}, Edges: []CellEdges{{land, land, water, water}, {land, water, water, land}}},
	{ID: 12, Resources: [][]Resource{{ResourceRock}, {ResourceRock}}, Edges: []CellEdges{allLand, allLand}},
	{ID: 13, Resources: [][]Resource{{ResourceRock}, {ResourceGem}}, Edges: []CellEdges{allLand, {land, water, land, land}}},
	{ID: 14, Resources: [][]Resource{{ResourceGame, ResourceGame}, {ResourceGem}}, Edges: []CellEdges{{water, land, land, water}, {water, water, water, land}}},
	{ID: 15, Resources: [][]Resource{{ResourceGem}, {ResourceGame}}, Edges: []CellEdges{{water, land, land, water}, {water, water, land, land}}},
	{ID: 16, Resources: [][]Resource{{ResourceWheat}, {ResourceWheat}}, Edges: []CellEdges{{water, land, water, water}, {water, water, water, land}}},
}

var singleTileTemplates = []*TileTemplate{
	{ID: 17, Resources: [][]Resource{{ResourceGem}}, Edges: []CellEdges{{water, water, water, water}}},
	{ID: 18, Resources: [][]Resource{{ResourceRock}}, Edges: []CellEdges{{water, water, land, water}}},
	{ID: 19, Resources: [][]Resource{{ResourceWheat}}, Edges: []CellEdges{{water, land, land, land}}},
	{ID: 20, Resources: [][]Resource{{ResourceGem}}, Edges: []CellEdges{allLand}},
}

// PlacedTile 已落盘的板块。
type PlacedTile struct {
	ID       string   `json:"id"`
	ShapeID  string   `json:"shapeId"`
	Owner    int      `json:"owner"`
	Anchor   Cell     `json:"anchor"`
	Rotation Rotation `json:"rotation"`
	Cells    []Cell   `json:"cells"`
}

// TileLayer 板块层。Occupancy 是格子占用的唯一权威来源。
type TileLayer struct {
	Placed    map[string]PlacedTile `json:"placed"`
	Occupancy map[string]string     `json:"occupancy"`
}

func newTileLayer() TileLayer {
	return TileLayer{Placed: map[string]PlacedTile{}, Occupancy: map[string]string{}}
}

// TileAt 返回覆盖该格的板块。
func (t TileLayer) TileAt(c Cell) (PlacedTile, bool) {
	id, ok := t.Occupancy[c.Key()]
	if !ok {
		return PlacedTile{}, false
	}
	pt, ok := t.Placed[id]
	return pt, ok
}

// RotateOffsets 每 90° 做一次 (r,c)->(c,-r)，再平移到最小行列为 0。
func RotateOffsets(offsets []Offset, rot Rotation) []Offset {
	out := make([]Offset, len(offsets))
	copy(out, offsets)
	if len(out) == 0 {
		return out
	}
	steps := ((int(rot)/90)%4 + 4) % 4
	for i := 0; i < steps; i++ {
		for j, o := range out {
			out[j] = Offset{Row: o.Col, Col: -o.Row}
		}
	}
	minR, minC := out[0].Row, out[0].Col
	for _, o := range out[1:] {
		minR = min(minR, o.Row)
		minC = min(minC, o.Col)
	}
	for j := range out {
		out[j].Row -= minR
		out[j].Col -= minC
	}
	return out
}

// rotateEdges 四边随板块一起旋转。
func rotateEdges(e CellEdges, rot Rotation) CellEdges {
	t, r, b, lf := e[edgeTop], e[edgeRight], e[edgeBottom], e[edgeLeft]
	switch rot {
	case Rotate90:
		return CellEdges{lf, t, r, b}
	case Rotate180:
		return CellEdges{b, lf, t, r}
	case Rotate270:
		return CellEdges{r, b, lf, t}
	default:
		return e
	}
}

func inBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < BoardRows && c.Col >= 0 && c.Col < BoardCols
}

func shapeCells(shape Shape, anchor Cell, rot Rotation) []Cell {
	offs := RotateOffsets(shape.Offsets, rot)
	cells := make([]Cell, len(offs))
	for i, o := range offs {
		cells[i] = anchor.add(o)
	}
	return cells
}

// 邻格方向 -> (我方边, 对方边)
var edgeMatch = map[Offset][2]int{
	{-1, 0}: {edgeTop, edgeBottom},
	{1, 0}:  {edgeBottom, edgeTop},
	{0, -1}: {edgeLeft, edgeRight},
	{0, 1}:  {edgeRight, edgeLeft},
}

// canPlace 完整放置校验：越界、重叠、相邻、边缘地形。
func (s *State) canPlace(shape Shape, anchor Cell, rot Rotation, tmpl *TileTemplate) bool {
	if !rot.Valid() || len(shape.Offsets) == 0 {
		return false
	}
	cells := shapeCells(shape, anchor, rot)
	own := make(map[string]struct{}, len(cells))
	for _, c := range cells {
		if !inBounds(c) {
			return false
		}
		if _, taken := s.Tiles.Occupancy[c.Key()]; taken {
			return false
		}
		own[c.Key()] = struct{}{}
	}

	adjacent := false
	for idx, c := range cells {
		for _, d := range orthogonal {
			n := c.add(d)
			if _, mine := own[n.Key()]; mine {
				continue
			}
			if _, occ := s.Tiles.Occupancy[n.Key()]; occ {
				adjacent = true
			}
			if tmpl == nil || idx >= len(tmpl.Edges) {
				continue
			}
			theirs, ok := s.Edges[n.Key()]
			if !ok {
				continue
			}
			mine := rotateEdges(tmpl.Edges[idx], rot)
			pair := edgeMatch[d]
			if mine[pair[0]] != theirs[pair[1]] {
				return false
			}
		}
	}
	return adjacent
}

// placeTile 登记板块并返回覆盖的格子，调用前必须通过 canPlace。
func (s *State) placeTile(shape Shape, anchor Cell, rot Rotation, owner int) []Cell {
	cells := shapeCells(shape, anchor, rot)
	s.NextTileID++
	id := "tile-" + strconv.Itoa(s.NextTileID)
	s.Tiles.Placed[id] = PlacedTile{
		ID:       id,
		ShapeID:  shape.ID,
		Owner:    owner,
		Anchor:   anchor,
		Rotation: rot,
		Cells:    cells,
	}
	for _, c := range cells {
		s.Tiles.Occupancy[c.Key()] = id
	}
	return cells
}

// tileFor 当前时代该玩家要放的形状与模板。模板可能为空（无资源、无边缘数据）。
func (s *State) tileFor(seat int) (Shape, *TileTemplate) {
	p := &s.Players[seat]
	switch s.Era {
	case EraI:
		if p.LTile != nil {
			return ShapeSmallL, p.LTile
		}
		if p.Dominoes[EraI] != nil {
			return ShapeDomino, p.Dominoes[EraI]
		}
		return ShapeSmallL, nil
	case EraIV:
		if p.Single != nil {
			return ShapeSingle, p.Single
		}
	}
	return ShapeDomino, p.Dominoes[s.Era]
}

// CanPlaceTile 供客户端预检：当前玩家能否以该锚点与角度放置本时代的板块。
func CanPlaceTile(s *State, seat int, anchor Cell, rot Rotation) bool {
	if s == nil || seat < 0 || seat >= len(s.Players) || s.Phase != PhaseTilePlacement {
		return false
	}
	shape, tmpl := s.tileFor(seat)
	return s.canPlace(shape, anchor, rot, tmpl)
}

// Placement 一个合法的放置方案。
type Placement struct {
	Anchor   Cell     `json:"anchor"`
	Rotation Rotation `json:"rotation"`
}

// ValidPlacements 枚举该玩家本时代的全部合法放置。
func ValidPlacements(s *State, seat int) []Placement {
	if s == nil || seat < 0 || seat >= len(s.Players) || s.Phase != PhaseTilePlacement || s.Players[seat].PlacedTile {
		return nil
	}
	shape, tmpl := s.tileFor(seat)
	var out []Placement
	for r := 0; r < BoardRows; r++ {
		for c := 0; c < BoardCols; c++ {
			for _, rot := range rotations {
				anchor := Cell{Row: r, Col: c}
				if s.canPlace(shape, anchor, rot, tmpl) {
					out = append(out, Placement{Anchor: anchor, Rotation: rot})
				}
			}
		}
	}
	return out
}
