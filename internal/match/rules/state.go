package rules

import "maps"

// Options 开局参数。Expansion 缺省为 false。
type Options struct {
	Players   int    `json:"players" mapstructure:"players"`
	Expansion bool   `json:"expansion" mapstructure:"expansion"`
	Seed      uint64 `json:"seed" mapstructure:"seed"`
}

type PieceKind string

const (
	PieceCapital PieceKind = "capital"
	PieceWorker  PieceKind = "worker"
)

// Piece 首都或工人。InAgora 的工人不在地图上。
type Piece struct {
	ID        string    `json:"id"`
	Kind      PieceKind `json:"kind"`
	Owner     int       `json:"owner"`
	Cell      `json:"cell"`
	Exhausted bool `json:"exhausted,omitempty"`
	InAgora   bool `json:"inAgora,omitempty"`
}

func (p Piece) onMap() bool { return !p.InAgora }

type City struct {
	Owner int `json:"owner"`
	Cell  `json:"cell"`
	Cubes int `json:"cubes"`
}

// CultCard 玩家持有的信仰卡。
type CultCard struct {
	Card       Card  `json:"card"`
	Remaining  int   `json:"remaining"`
	TokenTypes []int `json:"tokenTypes,omitempty"`
}

// Player 玩家状态。
type Player struct {
	Seat       int                      `json:"seat"`
	Color      Color                    `json:"color"`
	Gold       int                      `json:"gold"`
	Cubes      int                      `json:"cubes"`
	Score      int                      `json:"score"`
	Hand       []Card                   `json:"hand"`
	BoardCubes map[string]int           `json:"boardCubes"`
	Techs      [TechRows][TechCols]bool `json:"techs"`

	Passed       bool   `json:"passed"`
	PlacedTile   bool   `json:"placedTile"`
	ChoseCiv     bool   `json:"choseCiv"`
	HistoryCards []Card `json:"historyCards,omitempty"`

	LTile    *TileTemplate           `json:"lTile,omitempty"`
	Dominoes [eraCount]*TileTemplate `json:"dominoes"`
	Single   *TileTemplate           `json:"single,omitempty"`

	Buildings          [BuildingSlots]*Card `json:"buildings"`
	ActivatedBuildings [BuildingSlots]bool  `json:"activatedBuildings"`
	Wonders            []Card               `json:"wonders,omitempty"`
	ActivatedWonders   []bool               `json:"activatedWonders,omitempty"`
	UsedGreeceWonder   bool                 `json:"usedGreeceWonder,omitempty"`

	InvasionPos int   `json:"invasionPos"`
	Glory       []int `json:"glory,omitempty"`
	Civ         *Card `json:"civ,omitempty"`

	CultureScore int        `json:"cultureScore"`
	Progress     []Card     `json:"progress,omitempty"`
	Government   *Card      `json:"government,omitempty"`
	Cults        []CultCard `json:"cults,omitempty"`
	Masterpieces []Card     `json:"masterpieces,omitempty"`
}

// CultureBoard 文化扩展的公共区域。
type CultureBoard struct {
	Positions    [][CultureRows]int  `json:"positions"`
	Decks        [eraCount][]Card    `json:"decks"`
	Display      []Card              `json:"display"`
	Masterpieces []Card              `json:"masterpieces"`
	Tokens       map[string][]int    `json:"tokens"`
	Supply       [CultTokenTypes]int `json:"supply"`
}

type PendingCultFill struct {
	CardIndex int `json:"cardIndex"`
	Spots     int `json:"spots"`
}

type PendingCultSpread struct {
	City      Cell   `json:"city"`
	Remaining int    `json:"remaining"`
	Used      []Cell `json:"used,omitempty"`
}

// GloryDraw 最近一次抽到的荣耀标记，供客户端展示。
type GloryDraw struct {
	Seat  int `json:"seat"`
	Value int `json:"value"`
}

type ScoreLine struct {
	Label string `json:"label"`
	VP    int    `json:"vp"`
}

type LogEntry struct {
	Seat    int    `json:"seat"`
	Color   Color  `json:"color,omitempty"`
	Message string `json:"message"`
}

// State 一局游戏的完整状态。除 Apply 返回的新值外，任何函数都不修改传入的 State。
type State struct {
	Options Options `json:"options"`

	Tiles      TileLayer             `json:"tiles"`
	NextTileID int                   `json:"nextTileId"`
	Edges      map[string]CellEdges  `json:"edges"`
	Resources  map[string][]Resource `json:"resources"`
	Controlled map[string]int        `json:"controlled"`

	Players []Player `json:"players"`
	Pieces  []Piece  `json:"pieces"`
	Cities  []City   `json:"cities"`

	Era         Era   `json:"era"`
	Phase       Phase `json:"phase"`
	Current     int   `json:"current"`
	FirstPlayer int   `json:"firstPlayer"`
	TilesPlaced int   `json:"tilesPlaced"`
	CivChosen   int   `json:"civChosen"`
	Moves       int   `json:"moves"`
	// RestartTurnOrder 阶段已切换，但当前玩家还有子步骤未完成。
	RestartTurnOrder bool `json:"restartTurnOrder,omitempty"`

	WonderDecks        [eraCount][]Card `json:"wonderDecks"`
	BuildingDecks      [eraCount][]Card `json:"buildingDecks"`
	AvailableWonders   []Card           `json:"availableWonders"`
	AvailableBuildings []Card           `json:"availableBuildings"`
	Judgements         []Card           `json:"judgements"`
	EraJudgement       *Card            `json:"eraJudgement,omitempty"`

	// Glory 荣耀标记堆，末尾为顶。
	Glory []int `json:"glory"`

	EraIVRemaining int           `json:"eraIvRemaining"`
	EndGameScored  bool          `json:"endGameScored"`
	Breakdown      [][]ScoreLine `json:"breakdown,omitempty"`

	Log []LogEntry `json:"log"`

	Culture       *CultureBoard      `json:"culture,omitempty"`
	PendingPicks  int                `json:"pendingPicks"`
	PendingFill   *PendingCultFill   `json:"pendingFill,omitempty"`
	PendingSpread *PendingCultSpread `json:"pendingSpread,omitempty"`
	LastGlory     *GloryDraw         `json:"lastGlory,omitempty"`
}

func cloneCards(in []Card) []Card {
	if in == nil {
		return nil
	}
	return append(make([]Card, 0, len(in)), in...)
}

func cloneInts(in []int) []int {
	if in == nil {
		return nil
	}
	return append(make([]int, 0, len(in)), in...)
}

func (p Player) clone() Player {
	cp := p
	cp.Hand = cloneCards(p.Hand)
	cp.BoardCubes = maps.Clone(p.BoardCubes)
	cp.HistoryCards = cloneCards(p.HistoryCards)
	for i := range p.Buildings {
		cp.Buildings[i] = cloneCardPtr(p.Buildings[i])
	}
	cp.Wonders = cloneCards(p.Wonders)
	if p.ActivatedWonders != nil {
		cp.ActivatedWonders = append(make([]bool, 0, len(p.ActivatedWonders)), p.ActivatedWonders...)
	}
	cp.Glory = cloneInts(p.Glory)
	cp.Civ = cloneCardPtr(p.Civ)
	cp.Progress = cloneCards(p.Progress)
	cp.Government = cloneCardPtr(p.Government)
	if p.Cults != nil {
		cp.Cults = make([]CultCard, len(p.Cults))
		for i, c := range p.Cults {
			c.TokenTypes = cloneInts(c.TokenTypes)
			cp.Cults[i] = c
		}
	}
	cp.Masterpieces = cloneCards(p.Masterpieces)
	return cp
}

func (b *CultureBoard) clone() *CultureBoard {
	if b == nil {
		return nil
	}
	cp := *b
	cp.Positions = append([][CultureRows]int(nil), b.Positions...)
	for i := range b.Decks {
		cp.Decks[i] = cloneCards(b.Decks[i])
	}
	cp.Display = cloneCards(b.Display)
	cp.Masterpieces = cloneCards(b.Masterpieces)
	cp.Tokens = make(map[string][]int, len(b.Tokens))
	for k, v := range b.Tokens {
		cp.Tokens[k] = cloneInts(v)
	}
	return &cp
}

// Clone 深拷贝。板块模板只读，共享指针。
func (s *State) Clone() *State {
	if s == nil {
		return nil
	}
	cp := *s

	cp.Tiles = TileLayer{
		Placed:    make(map[string]PlacedTile, len(s.Tiles.Placed)),
		Occupancy: maps.Clone(s.Tiles.Occupancy),
	}
	for id, t := range s.Tiles.Placed {
		t.Cells = append([]Cell(nil), t.Cells...)
		cp.Tiles.Placed[id] = t
	}
	cp.Edges = maps.Clone(s.Edges)
	cp.Resources = make(map[string][]Resource, len(s.Resources))
	for k, v := range s.Resources {
		cp.Resources[k] = append([]Resource(nil), v...)
	}
	cp.Controlled = maps.Clone(s.Controlled)

	cp.Players = make([]Player, len(s.Players))
	for i, p := range s.Players {
		cp.Players[i] = p.clone()
	}
	cp.Pieces = append([]Piece(nil), s.Pieces...)
	cp.Cities = append([]City(nil), s.Cities...)

	for i := range s.WonderDecks {
		cp.WonderDecks[i] = cloneCards(s.WonderDecks[i])
		cp.BuildingDecks[i] = cloneCards(s.BuildingDecks[i])
	}
	cp.AvailableWonders = cloneCards(s.AvailableWonders)
	cp.AvailableBuildings = cloneCards(s.AvailableBuildings)
	cp.Judgements = cloneCards(s.Judgements)
	cp.EraJudgement = cloneCardPtr(s.EraJudgement)
	cp.Glory = cloneInts(s.Glory)

	if s.Breakdown != nil {
		cp.Breakdown = make([][]ScoreLine, len(s.Breakdown))
		for i, lines := range s.Breakdown {
			cp.Breakdown[i] = append([]ScoreLine(nil), lines...)
		}
	}
	cp.Log = append([]LogEntry(nil), s.Log...)

	cp.Culture = s.Culture.clone()
	if s.PendingFill != nil {
		f := *s.PendingFill
		cp.PendingFill = &f
	}
	if s.PendingSpread != nil {
		sp := *s.PendingSpread
		sp.Used = append([]Cell(nil), s.PendingSpread.Used...)
		cp.PendingSpread = &sp
	}
	if s.LastGlory != nil {
		g := *s.LastGlory
		cp.LastGlory = &g
	}
	return &cp
}

func (s *State) player(seat int) *Player {
	if seat < 0 || seat >= len(s.Players) {
		return nil
	}
	return &s.Players[seat]
}

func (s *State) numPlayers() int { return len(s.Players) }

func (s *State) nextSeat(seat int) int { return (seat + 1) % len(s.Players) }

func (s *State) civType(seat int) string {
	if p := s.player(seat); p != nil && p.Civ != nil {
		return p.Civ.Type
	}
	return ""
}

func (p *Player) hasTech(row, col int) bool {
	return row >= 0 && row < TechRows && col >= 0 && col < TechCols && p.Techs[row][col]
}

func (p *Player) hasProgress(typ string) bool {
	for _, c := range p.Progress {
		if c.Type == typ {
			return true
		}
	}
	return false
}

func (p *Player) hasGovernment(typ string) bool {
	return p.Government != nil && p.Government.Type == typ
}

func (p *Player) hasWonder(typ string) bool {
	for _, c := range p.Wonders {
		if c.Type == typ {
			return true
		}
	}
	return false
}

func (p *Player) techCount() int {
	n := 0
	for _, row := range p.Techs {
		for _, done := range row {
			if done {
				n++
			}
		}
	}
	return n
}

// unlockedSlots 建筑位分别由 Fire、Writing、Architecture 解锁。
func (p *Player) unlockedSlots() [BuildingSlots]bool {
	return [BuildingSlots]bool{p.Techs[2][0], p.Techs[3][1], p.Techs[1][2]}
}

func (p *Player) builtBuildings() int {
	n := 0
	for _, b := range p.Buildings {
		if b != nil {
			n++
		}
	}
	return n
}

func (p *Player) walls() int {
	n := 0
	for _, b := range p.Buildings {
		if b != nil && b.Type == BuildingWall {
			n++
		}
	}
	return n
}

func (p *Player) gloryVP() int {
	sum := 0
	for _, v := range p.Glory {
		sum += v
	}
	return sum
}

// PledgedCubes 仍压在科技格上的方块数。
func (p *Player) PledgedCubes() int {
	n := 0
	for _, v := range p.BoardCubes {
		n += v
	}
	return n
}

func (s *State) capitalOf(seat int) *Piece {
	for i := range s.Pieces {
		if s.Pieces[i].Kind == PieceCapital && s.Pieces[i].Owner == seat {
			return &s.Pieces[i]
		}
	}
	return nil
}

func (s *State) cityAt(c Cell) *City {
	for i := range s.Cities {
		if s.Cities[i].Cell == c {
			return &s.Cities[i]
		}
	}
	return nil
}

func (s *State) capitalAt(c Cell) *Piece {
	for i := range s.Pieces {
		if s.Pieces[i].Kind == PieceCapital && s.Pieces[i].Cell == c {
			return &s.Pieces[i]
		}
	}
	return nil
}

func (s *State) cubesOnMap(seat int) int {
	n := 0
	for _, c := range s.Cities {
		if c.Owner == seat {
			n += c.Cubes
		}
	}
	return n
}

func (s *State) cityCount(seat int) int {
	n := 0
	for _, c := range s.Cities {
		if c.Owner == seat {
			n++
		}
	}
	return n
}

// CubeTotal 手里、科技格与城市上的方块之和，恒等于 TotalCubes。
func (s *State) CubeTotal(seat int) int {
	p := s.player(seat)
	if p == nil {
		return 0
	}
	return p.Cubes + p.PledgedCubes() + s.cubesOnMap(seat)
}

func (s *State) countResources(seat int, res Resource) int {
	n := 0
	for key, owner := range s.Controlled {
		if owner != seat {
			continue
		}
		for _, r := range s.Resources[key] {
			if r == res {
				n++
			}
		}
	}
	return n
}

func (s *State) uniqueResources(seat int) int {
	n := 0
	for _, r := range allResources {
		if s.countResources(seat, r) > 0 {
			n++
		}
	}
	return n
}

// controlsCell 玩家在该格有首都、地图上的工人或城市。
func (s *State) controlsCell(seat int, c Cell) bool {
	for _, p := range s.Pieces {
		if p.Owner == seat && p.Cell == c && p.onMap() {
			return true
		}
	}
	for _, city := range s.Cities {
		if city.Owner == seat && city.Cell == c {
			return true
		}
	}
	return false
}

func (s *State) workersInAgora() int {
	n := 0
	for _, p := range s.Pieces {
		if p.Kind == PieceWorker && p.InAgora {
			n++
		}
	}
	return n
}

func (s *State) hasPending() bool {
	return s.PendingPicks > 0 || s.PendingFill != nil || s.PendingSpread != nil
}
