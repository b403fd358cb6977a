package rules

import (
	"fmt"
	"strconv"
	"strings"
)

// Era 时代，I..IV。
type Era int

const (
	EraI Era = iota
	EraII
	EraIII
	EraIV
)

const eraCount = 4

var eraNames = [eraCount]string{"I", "II", "III", "IV"}

func (e Era) Valid() bool { return e >= EraI && e <= EraIV }

func (e Era) String() string {
	if !e.Valid() {
		return fmt.Sprintf("Era(%d)", int(e))
	}
	return eraNames[e]
}

func (e Era) MarshalText() ([]byte, error) {
	if !e.Valid() {
		return nil, fmt.Errorf("rules: invalid era %d", int(e))
	}
	return []byte(eraNames[e]), nil
}

func (e *Era) UnmarshalText(b []byte) error {
	for i, n := range eraNames {
		if n == string(b) {
			*e = Era(i)
			return nil
		}
	}
	return fmt.Errorf("rules: invalid era %q", string(b))
}

// Phase 时代内的阶段。
type Phase string

const (
	PhaseEraStart      Phase = "eraStart"
	PhaseTilePlacement Phase = "tilePlacement"
	PhaseActions       Phase = "actions"
	PhaseGameOver      Phase = "gameOver"
)

type Resource string

const (
	ResourceGem   Resource = "gem"
	ResourceRock  Resource = "rock"
	ResourceGame  Resource = "game"
	ResourceWheat Resource = "wheat"
)

var allResources = [...]Resource{ResourceGame, ResourceWheat, ResourceRock, ResourceGem}

type Edge string

const (
	EdgeLand  Edge = "land"
	EdgeWater Edge = "water"
)

// CellEdges 格子四边：上、右、下、左。
type CellEdges [4]Edge

const (
	edgeTop = iota
	edgeRight
	edgeBottom
	edgeLeft
)

type Color string

const (
	ColorRed    Color = "red"
	ColorBlue   Color = "blue"
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
	ColorBlack  Color = "black"
)

var playerColors = [...]Color{ColorRed, ColorBlue, ColorGreen, ColorYellow, ColorBlack}

func (c Color) Valid() bool {
	for _, pc := range playerColors {
		if pc == c {
			return true
		}
	}
	return false
}

// Rotation 顺时针旋转角度。
type Rotation int

const (
	Rotate0   Rotation = 0
	Rotate90  Rotation = 90
	Rotate180 Rotation = 180
	Rotate270 Rotation = 270
)

var rotations = [...]Rotation{Rotate0, Rotate90, Rotate180, Rotate270}

func (r Rotation) Valid() bool {
	return r == Rotate0 || r == Rotate90 || r == Rotate180 || r == Rotate270
}

// Cell 棋盘坐标。
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Key 返回 "r,c" 形式的格子键，状态里的 map 都用它索引。
func (c Cell) Key() string {
	return strconv.Itoa(c.Row) + "," + strconv.Itoa(c.Col)
}

func (c Cell) add(o Offset) Cell {
	return Cell{Row: c.Row + o.Row, Col: c.Col + o.Col}
}

func (c Cell) manhattan(o Cell) int {
	return abs(c.Row-o.Row) + abs(c.Col-o.Col)
}

// ParseCellKey 解析 Key 的结果。
func ParseCellKey(key string) (Cell, bool) {
	r, c, ok := strings.Cut(key, ",")
	if !ok {
		return Cell{}, false
	}
	row, err1 := strconv.Atoi(r)
	col, err2 := strconv.Atoi(c)
	if err1 != nil || err2 != nil {
		return Cell{}, false
	}
	return Cell{Row: row, Col: col}, true
}

// TechCell 科技树坐标，Row 为路线，Col 为等级（0 起）。
type TechCell struct {
	Row int `json:"row" mapstructure:"row"`
	Col int `json:"col" mapstructure:"col"`
}

func (t TechCell) valid() bool {
	return t.Row >= 0 && t.Row < TechRows && t.Col >= 1 && t.Col < TechCols
}

// pledgeKey 科技格上质押方块的键。
func (t TechCell) pledgeKey() string {
	return strconv.Itoa(t.Row) + "," + strconv.Itoa(t.Col)
}

var orthogonal = [...]Offset{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
