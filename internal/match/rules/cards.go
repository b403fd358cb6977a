package rules

// CardKind 卡牌大类。
type CardKind string

const (
	KindCivilisation CardKind = "civilisation"
	KindWonder       CardKind = "wonder"
	KindBuilding     CardKind = "building"
	KindFutureTech   CardKind = "futureTech"
	KindJudgement    CardKind = "historysJudgement"
	KindCulture      CardKind = "culture"
)

var backColors = map[CardKind]string{
	KindCivilisation: "green",
	KindWonder:       "purple",
	KindBuilding:     "orange",
	KindFutureTech:   "blue",
	KindJudgement:    "gray",
	KindCulture:      "teal",
}

type CultureSubtype string

const (
	SubtypeProgress    CultureSubtype = "progress"
	SubtypeCult        CultureSubtype = "cult"
	SubtypeGovernment  CultureSubtype = "government"
	SubtypeMasterpiece CultureSubtype = "masterpiece"
	SubtypeBuilding    CultureSubtype = "building"
)

// Card 所有卡牌共用一个结构，Kind 决定 Type 的取值空间。
// Card 只含值字段，按值复制即为深拷贝。
type Card struct {
	ID           string         `json:"id"`
	Kind         CardKind       `json:"kind"`
	Era          Era            `json:"era"`
	Type         string         `json:"type"`
	Name         string         `json:"name"`
	Description  string         `json:"description,omitempty"`
	Number       int            `json:"number,omitempty"`
	Cost         int            `json:"cost,omitempty"`
	DiscountCiv  string         `json:"discountCiv,omitempty"`
	DiscountCost int            `json:"discountCost,omitempty"`
	Activatable  bool           `json:"activatable,omitempty"`
	Subtype      CultureSubtype `json:"subtype,omitempty"`
	CultSpots    int            `json:"cultSpots,omitempty"`
	CultSpotVP   int            `json:"cultSpotVp,omitempty"`
	VP           int            `json:"vp,omitempty"`
	Gold         int            `json:"gold,omitempty"`
}

func (c Card) BackColor() string { return backColors[c.Kind] }

// isBuildingCard 普通建筑或文化建筑卡。
func (c Card) isBuildingCard() bool {
	return c.Kind == KindBuilding || (c.Kind == KindCulture && c.Subtype == SubtypeBuilding)
}

func cloneCardPtr(c *Card) *Card {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

// 文明
const (
	CivBabylon     = "babylon"
	CivPhoenicia   = "phoenicia"
	CivEgypt       = "egypt"
	CivGreece      = "greece"
	CivPersia      = "persia"
	CivRome        = "rome"
	CivChina       = "china"
	CivInca        = "inca"
	CivAztec       = "aztec"
	CivMongolia    = "mongolia"
	CivFrance      = "france"
	CivArabia      = "arabia"
	CivByzantine   = "byzantine"
	CivSpain       = "spain"
	CivTurkey      = "turkey"
	CivEngland     = "england"
	CivPortugal    = "portugal"
	CivPrussia     = "prussia"
	CivAustria     = "austria"
	CivRussia      = "russia"
	CivJapan       = "japan"
	CivUSA         = "usa"
	CivEU          = "eu"
	CivIndia       = "india"
	CivBrazil      = "brazil"
	CivCelts       = "celts"
	CivVikings     = "vikings"
	CivSonghai     = "songhai"
	CivDutch       = "dutch"
	CivIroquois    = "iroquois"
	CivCanada      = "canada"
	CivSouthAfrica = "southAfrica"
)

// 奇迹
const (
	WonderColossus          = "colossus"
	WonderGreatLibrary      = "greatLibrary"
	WonderPyramids          = "pyramids"
	WonderHangingGardens    = "hangingGardens"
	WonderNotreDame         = "notreDame"
	WonderHagiaSophia       = "hagiaSophia"
	WonderSpiralMinaret     = "spiralMinaret"
	WonderGreatWall         = "greatWall"
	WonderOxfordUniversity  = "oxfordUniversity"
	WonderVersailles        = "versailles"
	WonderEiffelTower       = "eiffelTower"
	WonderPorcelainTower    = "porcelainTower"
	WonderKremlin           = "kremlin"
	WonderApolloProgram     = "apolloProgram"
	WonderInternet          = "internet"
	WonderUnitedNations     = "unitedNations"
	WonderStonehenge        = "stonehenge"
	WonderLighthouse        = "lighthouse"
	WonderAngkorWat         = "angkorWat"
	WonderMachuPicchu       = "machuPicchu"
	WonderAlhambra          = "alhambra"
	WonderTajMahal          = "tajMahal"
	WonderChristTheRedeemer = "christTheRedeemer"
	WonderCNTower           = "cnTower"
)

// 建筑（含文化建筑）
const (
	BuildingMarket              = "market"
	BuildingLibrary             = "library"
	BuildingGranary             = "granary"
	BuildingBank                = "bank"
	BuildingUniversity          = "university"
	BuildingWall                = "wall"
	BuildingMuseum              = "museum"
	BuildingObservatory         = "observatory"
	BuildingFactory             = "factory"
	BuildingMovieTheater        = "movieTheater"
	BuildingLaboratory          = "laboratory"
	BuildingCentral             = "central"
	BuildingTemple              = "temple"
	BuildingBarracks            = "barracks"
	BuildingCathedral           = "cathedral"
	BuildingMilitaryBase        = "militaryBase"
	BuildingCultureLibrary      = "cultureLibrary"
	BuildingCultureBarrack      = "cultureBarrack"
	BuildingCultureFactory      = "cultureFactory"
	BuildingCultureMilitaryBase = "cultureMilitaryBase"
)

// 文化卡里规则会查询的类型
const (
	ProgressCodeOfLaws            = "codeOfLaws"
	ProgressCartography           = "cartography"
	ProgressAnimalHusbandry       = "animalHusbandry"
	ProgressIrrigation            = "irrigation"
	ProgressBronzeWorking         = "bronzeWorking"
	ProgressNavigation            = "navigation"
	ProgressAlchemy               = "alchemy"
	ProgressCropRotation          = "cropRotation"
	ProgressIronWorking           = "ironWorking"
	ProgressJusticeSystem         = "justiceSystem"
	ProgressChemistry             = "chemistry"
	ProgressMechanizedAgriculture = "mechanizedAgriculture"
	ProgressCombustion            = "combustion"

	GovernmentCityState       = "cityState"
	GovernmentMonarchy        = "monarchy"
	GovernmentTheocracy       = "theocracy"
	GovernmentFeudalism       = "feudalism"
	GovernmentRepublic        = "republic"
	GovernmentTotalitarianism = "totalitarianism"
	GovernmentDemocracy       = "democracy"

	MasterpieceDiscobolus = "discobolusOfMyron"
	MasterpieceMonaLisa   = "monaLisa"
)

type wonderDef struct {
	typ, name, desc string
	cost            int
	discountCiv     string
	discountCost    int
	activatable     bool
}

var wonderDefs = [eraCount][]wonderDef{
	{
		{WonderColossus, "Colossus", "2 VP per cube on map", 3, CivPhoenicia, 2, true},
		{WonderGreatLibrary, "Great Library", "Develop a tech for free", 4, CivChina, 3, false},
		{WonderPyramids, "Pyramids", "2 VP per rock controlled", 3, CivEgypt, 2, true},
		{WonderHangingGardens, "Hanging Gardens", "2 VP per wheat controlled", 3, CivBabylon, 2, true},
	},
	{
		{WonderNotreDame, "Notre Dame", "Move exhausted workers: map to Agora or Agora to capital", 6, CivFrance, 4, true},
		{WonderHagiaSophia, "Hagia Sophia", "Permanent: 2 gold when you found a city", 6, CivByzantine, 4, false},
		{WonderSpiralMinaret, "Spiral Minaret", "End of game: 2 extra VP per level 4 & 5 tech", 6, CivArabia, 4, false},
		{WonderGreatWall, "Great Wall", "Permanent: 3 gold when another player attacks", 8, CivChina, 6, false},
	},
	{
		{WonderOxfordUniversity, "Oxford University", "Develop 2 technologies for free", 14, CivEngland, 11, false},
		{WonderVersailles, "Versailles", "1 VP per wheat controlled", 6, "", 0, false},
		{WonderEiffelTower, "Eiffel Tower", "1 VP per rock controlled", 6, "", 0, false},
		{WonderPorcelainTower, "Porcelain Tower", "3 VP per glory token collected", 6, CivChina, 4, false},
	},
	{
		{WonderKremlin, "Kremlin", "1 VP per exhausted worker on the map (all players)", 8, CivRussia, 6, false},
		{WonderApolloProgram, "Apollo Program", "2 VP per gem controlled", 8, "", 0, false},
		{WonderInternet, "Internet", "1 VP per your city and capital on the map", 6, "", 0, false},
		{WonderUnitedNations, "United Nations", "Permanent: Receive the gold another player pays to attack", 8, CivUSA, 6, false},
	},
}

var expansionWonderDefs = [eraCount][]wonderDef{
	{
		{WonderStonehenge, "Stonehenge", "Permanent: 1 gold discount when developing a tech another player already has", 5, CivCelts, 4, false},
		{WonderLighthouse, "Lighthouse", "Your workers may move 1 extra space on the map", 3, "", 0, false},
	},
	{
		{WonderAngkorWat, "Angkor Wat", "Immediate: Score 2 VP per wheat you control", 8, "", 0, false},
		{WonderMachuPicchu, "Machu Picchu", "Immediate: Score 2 VP per rock you control", 8, CivInca, 6, false},
	},
	{
		{WonderAlhambra, "Alhambra", "Activate: Advance 1 space on a culture row (ignores requirements)", 8, CivSpain, 6, true},
		{WonderTajMahal, "Taj Mahal", "Activate: Re-enable a used building or wonder this round", 6, "", 0, true},
	},
	{
		{WonderChristTheRedeemer, "Christ the Redeemer", "Immediate: Remove up to 5 of your cubes from the map. Score 2 VP per cube removed", 8, CivBrazil, 6, false},
		{WonderCNTower, "CN Tower", "Permanent: When developing a final-level tech, you may score VPs as if you were another player", 10, CivCanada, 8, false},
	},
}

type namedDef struct {
	typ, name, desc string
}

var buildingDefs = [eraCount][]namedDef{
	{
		{BuildingMarket, "Market", "Receive 1 gold for each worker in the Agora"},
		{BuildingLibrary, "Library", "Develop a technology with a 2 gold discount"},
		{BuildingGranary, "Granary", "1 gold per non-exhausted worker of yours on the map"},
	},
	{
		{BuildingBank, "Bank", "Receive 4 gold"},
		{BuildingUniversity, "University", "Develop a technology with a 3 gold discount"},
		{BuildingWall, "Wall", "Permanent: attackers pay 3 extra gold (6 with two Walls)"},
	},
	{
		{BuildingMuseum, "Museum", "Receive 6 gold"},
		{BuildingObservatory, "Observatory", "Develop a technology with a 5 gold discount"},
		{BuildingFactory, "Factory", "Reactivate one of your exhausted workers on the map"},
	},
	{
		{BuildingMovieTheater, "Movie Theater", "2 VP for each worker in the Agora"},
		{BuildingLaboratory, "Laboratory", "Develop a technology for free"},
		{BuildingCentral, "Central", "2 gold for each of your cities and capital on the map"},
	},
}

var expansionBuildingDefs = [eraCount][]namedDef{
	{{BuildingTemple, "Temple", "Activate: Activate up to 2 spaces on the Culture Row (civ must meet requirements)"}},
	{{BuildingBarracks, "Barracks", "Activate: Draw 2 glory tokens, swap 1 you own with 1 drawn, return the rest"}},
	{{BuildingCathedral, "Cathedral", "Activate: Advance 1 space on the Culture Row (ignores requirements)"}},
	{{BuildingMilitaryBase, "Military Base", "Immediate: Take a glory token onto this card (does not use Invasion track)"}},
}

type civDef struct {
	typ    string
	number int
	name   string
	desc   string
}

var civDefs = [eraCount][]civDef{
	{
		{CivBabylon, 1, "Babylonian Empire", "Immediately develop Agriculture for free"},
		{CivPhoenicia, 2, "Phoenicia", "Immediately develop Writing for free"},
		{CivEgypt, 3, "Egypt", "Immediately develop Metallurgy for free"},
		{CivGreece, 4, "Greece", "Build a wonder for free (once per game)"},
		{CivPersia, 5, "Persia", "Immediately develop Carriage for free"},
		{CivRome, 6, "Roman Empire", "Receive 2 gold. Builder action without a worker"},
		{CivChina, 7, "China", "Pay 2 gold less when attacking. Examine 2 glory tiles after attack"},
	},
	{
		{CivInca, 1, "Inca Empire", "Receive 2 extra gold when taking control of a wheat symbol"},
		{CivAztec, 2, "Aztec Empire", "Receive 2 extra gold when taking control of a gem symbol"},
		{CivMongolia, 3, "Mongolia", "Receive 2 extra gold when taking control of a rock symbol"},
		{CivFrance, 4, "France", "Receive 4 gold after you attack"},
		{CivArabia, 5, "Arabia", "Receive 4 gold. Builder action without a worker"},
		{CivByzantine, 6, "Byzantine Empire", "Immediately receive 5 gold"},
	},
	{
		{CivSpain, 1, "Spain", "Receive 3 extra gold when taking control of a gem symbol"},
		{CivTurkey, 2, "Turkey", "If you have Agriculture, develop Architecture for free. If already researched, gain 6 gold"},
		{CivEngland, 3, "England", "If you have Writing, develop Currency for free. If already researched, gain 6 gold"},
		{CivPortugal, 4, "Portugal", "Receive 4 gold. Workers passing through east/west board edge earn 3 gold"},
		{CivPrussia, 5, "Prussia", "If you have Carriage, develop Rail for free. If already researched, gain 6 gold"},
		{CivAustria, 6, "Austria", "If you have Metallurgy, develop Construction for free. If already researched, gain 6 gold"},
	},
	{
		{CivRussia, 1, "Russia", "Workers don't exhaust when used as Explorers"},
		{CivJapan, 2, "Japan", "Pay 2 gold less on techs. May develop multiple techs per action"},
		{CivUSA, 3, "United States", "Receive 4 gold when your worker lands on an opponent's space (before attack)"},
		{CivEU, 4, "European Union", "Receive 4 gold every time a worker goes to the Agora"},
		{CivIndia, 5, "India", "Immediately develop a level 5 tech (skip prereqs, no immediate VPs)"},
		{CivBrazil, 6, "Brazil", "Receive 4 extra gold when taking control of a gem symbol"},
	},
}

var expansionCivDefs = [eraCount][]civDef{
	{{CivCelts, 8, "Celts", "Immediate: Advance 1 space on a culture row (ignores requirements)"}},
	{
		{CivVikings, 7, "Vikings", "After attacking, un-exhaust one of your exhausted workers (even the attacker)"},
		{CivSonghai, 8, "Songhai", "After attacking, advance on a culture row (ignores requirements)"},
	},
	{
		{CivDutch, 7, "Dutch", "May build cities on the main map. Earn 2 gold each time"},
		{CivIroquois, 8, "Iroquois", "After gaining control of a Game symbol, take 2 extra gold and advance 1 culture row space (ignores requirements). Doubled on double Game spaces"},
	},
	{
		{CivCanada, 7, "Canada", "Take 1 gold for each Rock or Wheat symbol you control"},
		{CivSouthAfrica, 8, "South Africa", "After taking control of a Gem symbol, advance on a culture row (ignores requirements)"},
	},
}

var judgementDefs = []namedDef{
	{"mostUrbanized", "Most Urbanized", "3 VP per building on your player board"},
	{"strongest", "Strongest", "2 VP per glory token you own"},
	{"richest", "Richest", "1 VP per 3 gold you own"},
	{"mostPopulous", "Most Populous", "1 VP per cube on the board"},
	{"mostMagnificent", "Most Magnificent", "2 VP per gem controlled"},
	{"mostIndustrial", "Most Industrial", "2 VP per rock controlled"},
	{"mostEcological", "Most Ecological", "2 VP per game controlled"},
	{"mostAgricultural", "Most Agricultural", "2 VP per wheat controlled"},
	{"mostWealthy", "Most Wealthy", "4 VP per wonder you have built"},
	{"mostAdvanced", "Most Advanced", "1 VP per developed tech"},
}

var expansionJudgementDefs = []namedDef{
	{"mostSpiritual", "The Most Spiritual Civ", "2 VP per Cult token controlled"},
	{"mostCultured", "The Most Cultured Civ", "2 VP per Progress card possessed"},
	{"mostArtistic", "The Most Artistic Civ", "2 VP per Masterpiece possessed"},
}

var futureTechDefs = []namedDef{
	{"newWorldOrder", "New World Order", "8 VPs if you have the most gold"},
	{"artificialIntelligence", "Artificial Intelligence", "8 VPs if you have the most developed techs"},
	{"timeTravel", "Time Travel", "8 VPs if you have the most wonders built"},
	{"psychohistory", "Psychohistory", "8 VPs if you have the most cubes on the board"},
	{"spaceFlight", "Space Flight", "8 VPs if you have the most glory tokens"},
	{"nanotechnology", "Nanotechnology", "8 VPs if you have the most rock symbols"},
	{"biotechnology", "Biotechnology", "8 VPs if you have the most game symbols"},
	{"coldFusion", "Cold Fusion", "8 VPs if you have the most gem symbols"},
	{"underseaAgriculture", "Undersea Agriculture", "8 VPs if you have the most wheat symbols"},
}

var expansionFutureTechDefs = []namedDef{
	{"spiritualMedicine", "Spiritual Medicine", "8 VPs if you control the most Cult tokens"},
	{"hiveMind", "Hive-Mind", "8 VPs if you have the most Progress cards"},
	{"virtualReality", "Virtual Reality", "8 VPs if you have the most Masterpieces"},
}

type cultureDef struct {
	typ, name string
	subtype   CultureSubtype
	desc      string
	spots     int
	spotVP    int
	vp        int
	gold      int
}

var masterpieceDefs = []cultureDef{
	{typ: "mondrianGrid", name: "Mondrian Grid", subtype: SubtypeMasterpiece, desc: "2 VP & 2 gold", vp: 2, gold: 2},
	{typ: "sistineChapel", name: "Sistine Chapel", subtype: SubtypeMasterpiece, desc: "1 VP & 3 gold", vp: 1, gold: 3},
	{typ: MasterpieceDiscobolus, name: "Discobolus of Myron", subtype: SubtypeMasterpiece, desc: "2 gold for each unique resource you control"},
	{typ: MasterpieceMonaLisa, name: "Mona Lisa", subtype: SubtypeMasterpiece, desc: "1 VP for each unique resource you control"},
	{typ: "cupidAndPsyche", name: "Cupid & Psyche", subtype: SubtypeMasterpiece, desc: "1 VP & 3 gold", vp: 1, gold: 3},
	{typ: "theWave", name: "The Wave", subtype: SubtypeMasterpiece, desc: "2 VP & 2 gold", vp: 2, gold: 2},
}

var cultureDefs = [eraCount][]cultureDef{
	{
		{typ: ProgressCodeOfLaws, name: "Code of Laws", subtype: SubtypeProgress, desc: "2 extra gold when your worker(s) go to the Agora"},
		{typ: ProgressCartography, name: "Cartography", subtype: SubtypeProgress, desc: "Workers move 1 extra space"},
		{typ: ProgressAnimalHusbandry, name: "Animal Husbandry", subtype: SubtypeProgress, desc: "1 extra gold when you take control of a Game symbol"},
		{typ: ProgressIrrigation, name: "Irrigation", subtype: SubtypeProgress, desc: "1 extra gold when you take control of a Wheat symbol"},
		{typ: ProgressBronzeWorking, name: "Bronze Working", subtype: SubtypeProgress, desc: "1 extra gold when you take control of a Rock symbol"},
		{typ: "mysticism", name: "Mysticism", subtype: SubtypeCult, desc: "End of game: 1 VP for each spot not covered", spots: 5, spotVP: 1},
		{typ: GovernmentCityState, name: "City-State", subtype: SubtypeGovernment, desc: "Discount of 1 gold when you attack"},
		{typ: GovernmentMonarchy, name: "Monarchy", subtype: SubtypeGovernment, desc: "While in a Golden Age, gain 1 extra gold (normally 2)"},
		{typ: "odyssey", name: "Odyssey", subtype: SubtypeMasterpiece, desc: "Immediately get 2 VPs", vp: 2},
		{typ: BuildingCultureLibrary, name: "Library", subtype: SubtypeBuilding, desc: "Activate: Develop a tech at a discount of 2 gold"},
	},
	{
		{typ: "gunpowder", name: "Gunpowder", subtype: SubtypeProgress, desc: "Extra attack at a cost of 5 gold"},
		{typ: ProgressNavigation, name: "Navigation", subtype: SubtypeProgress, desc: "Workers move 2 extra spaces on the map"},
		{typ: ProgressAlchemy, name: "Alchemy", subtype: SubtypeProgress, desc: "1 extra gold when you take control of a Gem symbol"},
		{typ: ProgressCropRotation, name: "Crop Rotation", subtype: SubtypeProgress, desc: "1 extra gold when you take control of a Wheat symbol"},
		{typ: ProgressIronWorking, name: "Iron Working", subtype: SubtypeProgress, desc: "1 extra gold when you take control of a Rock symbol"},
		{typ: "religion", name: "Religion", subtype: SubtypeCult, desc: "End of game: 2 VP for each spot not covered", spots: 4, spotVP: 2},
		{typ: GovernmentTheocracy, name: "Theocracy", subtype: SubtypeGovernment, desc: "When you spread a cult token, get 2 gold"},
		{typ: GovernmentFeudalism, name: "Feudalism", subtype: SubtypeGovernment, desc: "After an attack, draw 2 glory tokens. Keep one, return the other"},
		{typ: "laPrimavera", name: "La Primavera", subtype: SubtypeMasterpiece, desc: "Immediately get 3 VPs", vp: 3},
		{typ: BuildingCultureBarrack, name: "Barrack", subtype: SubtypeBuilding, desc: "Activate: Draw 2 glory tokens, swap one with a glory token you own, return the other 2"},
	},
	{
		{typ: ProgressJusticeSystem, name: "Justice System", subtype: SubtypeProgress, desc: "2 extra gold when one of your workers goes to the Agora"},
		{typ: "militaryTactic", name: "Military Tactic", subtype: SubtypeProgress, desc: "Extra attack at a cost of 8 gold"},
		{typ: ProgressChemistry, name: "Chemistry", subtype: SubtypeProgress, desc: "1 extra gold when you take control of a Gem symbol"},
		{typ: ProgressMechanizedAgriculture, name: "Mechanized Agriculture", subtype: SubtypeProgress, desc: "1 extra gold when you take control of a Wheat symbol"},
		{typ: ProgressCombustion, name: "Combustion", subtype: SubtypeProgress, desc: "1 extra gold when you take control of a Rock symbol"},
		{typ: "theology", name: "Theology", subtype: SubtypeCult, desc: "End of game: 3 VP for each spot not covered", spots: 4, spotVP: 3},
		{typ: GovernmentRepublic, name: "Republic", subtype: SubtypeGovernment, desc: "While in a Golden Age, gain 2 extra VPs on your turn (normally 0)"},
		{typ: GovernmentTotalitarianism, name: "Totalitarianism", subtype: SubtypeGovernment, desc: "When you found a city, spread up to 4 cult tokens (may be from different cult cards)"},
		{typ: "waterLilies", name: "Water Lilies", subtype: SubtypeMasterpiece, desc: "Immediately get 4 VPs", vp: 4},
		{typ: BuildingCultureFactory, name: "Factory", subtype: SubtypeBuilding, desc: "Activate: Un-exhaust one of your exhausted workers on the map"},
	},
	{
		{typ: "atomicEnergy", name: "Atomic Energy", subtype: SubtypeProgress, desc: "Immediate: Spend 2 gold per glory token you have, score 2 VP each"},
		{typ: "satellites", name: "Satellites", subtype: SubtypeProgress, desc: "Immediate: Spend any gold, score 1 VP per 2 gold spent"},
		{typ: "superconductors", name: "Superconductors", subtype: SubtypeProgress, desc: "Immediate: Spend 1 gold per Gem controlled, score 1 VP each"},
		{typ: "sanitarySystem", name: "Sanitary System", subtype: SubtypeProgress, desc: "Immediate: Spend 1 gold per Wheat controlled, score 1 VP each"},
		{typ: "robotics", name: "Robotics", subtype: SubtypeProgress, desc: "Immediate: Spend 1 gold per Rock controlled, score 1 VP each"},
		{typ: "syncretism", name: "Syncretism", subtype: SubtypeCult, desc: "End of game: 5 VP for each spot not covered", spots: 3, spotVP: 5},
		{typ: GovernmentDemocracy, name: "Democracy", subtype: SubtypeGovernment, desc: "Whenever an opponent attacks you, score 4 VPs"},
		{typ: "communism", name: "Communism", subtype: SubtypeGovernment, desc: "Immediate: Discard all cult tokens under your control. Spend 1 gold per token for 2 VPs each"},
		{typ: "guernica", name: "Guernica", subtype: SubtypeMasterpiece, desc: "Immediately get 5 VPs", vp: 5},
		{typ: BuildingCultureMilitaryBase, name: "Military Base", subtype: SubtypeBuilding, desc: "Immediate: Take a glory token from the reserve, place it on the card"},
	},
}

func futureTechName(typ string) string {
	for _, d := range append(append([]namedDef{}, futureTechDefs...), expansionFutureTechDefs...) {
		if d.typ == typ {
			return d.name
		}
	}
	return typ
}
