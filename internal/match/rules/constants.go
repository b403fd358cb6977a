package rules

const (
	BoardRows = 6
	BoardCols = 10

	MinPlayers = 2
	MaxPlayers = 5

	TechRows = 4
	TechCols = 5

	BuildingSlots = 3

	StartingGold    = 3
	StartingWorkers = 3
	// StartingCubes 开局手里可用的方块，另有 pledgedCubeTotal 个压在科技格上。
	StartingCubes = 5
	// TotalCubes 每名玩家方块总量：手里 + 科技格 + 城市。
	TotalCubes = StartingCubes + pledgedCubeTotal

	JudgementDraw    = 5
	GoldenAgeIncome  = 2
	MaxLogEntries    = 150
	WonderDrawPerEra = 4

	CultureRows        = 5
	CultureCols        = 4
	CultureDisplaySize = 5
	CultTokenTypes     = 6
	CultTokensPerType  = 3

	// Unlimited 移动范围不受限。
	Unlimited = -1

	// NoOwner 起始板块不属于任何玩家。
	NoOwner = -1
)

// TechCosts 按等级的研发费用。
var TechCosts = [TechCols]int{0, 3, 5, 8, 12}

// InvasionCosts 按入侵轨位置的进攻基础费用。
var InvasionCosts = [...]int{3, 5, 8, 12}

var movementRanges = [TechCols]int{1, 2, 3, Unlimited, Unlimited}

// 科技卡背面终局分：等级 3/4/5。
var techBacksideVP = [TechCols]int{0, 0, 1, 2, 4}

var startingTileAnchor = Cell{Row: 2, Col: 4}

// 开局质押在科技格上的方块。
var initialPledges = map[TechCell]int{
	{Row: 0, Col: 1}: 1,
	{Row: 0, Col: 2}: 1,
	{Row: 1, Col: 1}: 1,
	{Row: 1, Col: 2}: 2,
	{Row: 2, Col: 1}: 1,
	{Row: 3, Col: 1}: 1,
}

const pledgedCubeTotal = 7

var boardResources = map[string][]Resource{
	"0,3": {ResourceGem},
	"0,7": {ResourceWheat, ResourceWheat},
	"1,2": {ResourceRock, ResourceGame},
	"2,0": {ResourceGame, ResourceWheat},
	"3,9": {ResourceGame, ResourceRock},
	"5,2": {ResourceRock, ResourceRock},
	"4,7": {ResourceWheat, ResourceGame},
	"5,6": {ResourceGem},
}

var startingTileResources = map[string][]Resource{
	"2,4": {ResourceGame},
	"2,5": {ResourceWheat},
	"3,4": {ResourceRock},
	"3,5": {ResourceGame},
}

const (
	land  = EdgeLand
	water = EdgeWater
)

var startingTileEdges = map[string]CellEdges{
	"2,4": {water, land, land, land},
	"2,5": {water, land, land, land},
	"3,4": {land, land, land, land},
	"3,5": {land, water, land, land},
}

var gloryTokenPool = []int{2, 2, 3, 3, 3, 3, 4, 4, 4, 4, 5, 5, 5, 5, 6, 6}

var expansionGloryTokens = []int{3, 3, 4, 4, 4, 4, 4, 4, 5, 5}

// 科技等级 5 的即时分：路线 0..2 按资源计分，路线 3 按地图上的方块计分。
var immediateTechResource = [3]Resource{ResourceGem, ResourceWheat, ResourceRock}
var immediateTechVP = [3]int{3, 2, 2}
