package rules

import (
	"slices"
)

type ActionType string

const (
	ActionExplorer          ActionType = "explorer"
	ActionSoldier           ActionType = "soldier"
	ActionBuilder           ActionType = "builder"
	ActionArtist            ActionType = "artist"
	ActionBuildWonder       ActionType = "buildWonder"
	ActionActivate          ActionType = "activateBuildingOrWonder"
	ActionDevelopTechnology ActionType = "developTechnology"
	ActionStartGoldenAge    ActionType = "startGoldenAge"
	ActionCulture           ActionType = "culture"
)

// Action PerformAction 携带的具体行动。
type Action interface {
	Type() ActionType
	resolve(s *State, seat int) error
}

// Explorer 移动工人，可选在目的格建城。目的格有敌人时同样触发进攻。
type Explorer struct {
	WorkerID  string `mapstructure:"workerId"`
	Row       int    `mapstructure:"row"`
	Col       int    `mapstructure:"col"`
	FoundCity bool   `mapstructure:"foundCity"`
}

func (Explorer) Type() ActionType { return ActionExplorer }

func (a Explorer) resolve(s *State, seat int) error {
	return s.moveWorker(seat, a.WorkerID, Cell{Row: a.Row, Col: a.Col}, false, a.FoundCity)
}

// Soldier 与 Explorer 相同的移动，工人总是疲惫（维京人进攻后除外）。
type Soldier struct {
	WorkerID  string `mapstructure:"workerId"`
	Row       int    `mapstructure:"row"`
	Col       int    `mapstructure:"col"`
	FoundCity bool   `mapstructure:"foundCity"`
}

func (Soldier) Type() ActionType { return ActionSoldier }

func (a Soldier) resolve(s *State, seat int) error {
	return s.moveWorker(seat, a.WorkerID, Cell{Row: a.Row, Col: a.Col}, true, a.FoundCity)
}

func (s *State) moveWorker(seat int, workerID string, dest Cell, soldier, found bool) error {
	p := &s.Players[seat]
	w := s.ownWorker(seat, workerID)
	if w == nil {
		return reject("worker not found")
	}
	if w.Exhausted || w.InAgora {
		return reject("worker is not available")
	}
	if !canReach(w.Cell, dest, MovementRange(p)) {
		return reject("destination out of range")
	}
	civ := s.civType(seat)
	defenders := s.defendersAt(seat, dest)
	if civ == CivUSA && s.usaBonusApplies(seat, dest, soldier, defenders) {
		p.Gold += 4
	}

	fought := false
	if len(defenders) > 0 {
		if err := s.resolveAttack(seat, dest, defenders); err != nil {
			return err
		}
		fought = true
	}

	w.Cell = dest
	if soldier {
		w.Exhausted = !(civ == CivVikings && fought)
	} else {
		w.Exhausted = civ != CivRussia
	}
	s.tryTakeControl(seat, dest)

	if found {
		if err := s.foundCity(seat, dest); err != nil {
			return err
		}
	}

	label := "Explorer"
	if soldier {
		label = "Soldier"
	}
	if found {
		s.logf(seat, "%s (founded a city)", label)
	} else {
		s.logf(seat, "%s", label)
	}
	return nil
}

// opponentPresent 目的格上有对手的首都、工人或城市。
func (s *State) opponentPresent(seat int, at Cell) bool {
	for _, pc := range s.Pieces {
		if pc.Owner != seat && pc.onMap() && pc.Cell == at {
			return true
		}
	}
	for _, c := range s.Cities {
		if c.Owner != seat && c.Cell == at {
			return true
		}
	}
	return false
}

// usaBonusApplies 士兵只看敌方工人与城市，探险者连首都也算。
func (s *State) usaBonusApplies(seat int, dest Cell, soldier bool, defenders []int) bool {
	if soldier {
		return len(defenders) > 0
	}
	return s.opponentPresent(seat, dest)
}

// sendToAgora 工人进入广场并疲惫，结算进入广场的奖励。
func (s *State) sendToAgora(seat int, w *Piece) {
	p := &s.Players[seat]
	w.InAgora = true
	w.Exhausted = true
	if p.Techs[2][4] {
		p.Score += 2
	}
	if s.civType(seat) == CivEU {
		p.Gold += 4
	}
	if p.hasProgress(ProgressCodeOfLaws) {
		p.Gold += 2
	}
	if p.hasProgress(ProgressJusticeSystem) {
		p.Gold += 2
	}
}

func (s *State) standingWorker(seat int, id string) (*Piece, error) {
	w := s.ownWorker(seat, id)
	if w == nil {
		return nil, reject("worker not found")
	}
	if w.Exhausted || w.InAgora {
		return nil, reject("worker is not available")
	}
	return w, nil
}

// Artist 工人进广场，拿 3 分；扩展下可改拿一张杰作。
type Artist struct {
	WorkerID    string `mapstructure:"workerId"`
	Masterpiece *int   `mapstructure:"masterpiece"`
}

func (Artist) Type() ActionType { return ActionArtist }

func (a Artist) resolve(s *State, seat int) error {
	w, err := s.standingWorker(seat, a.WorkerID)
	if err != nil {
		return err
	}
	p := &s.Players[seat]
	if s.Culture != nil && a.Masterpiece != nil && *a.Masterpiece >= 0 {
		i := *a.Masterpiece
		if i >= len(s.Culture.Masterpieces) {
			return reject("masterpiece not found")
		}
		card := s.Culture.Masterpieces[i]
		s.Culture.Masterpieces = slices.Delete(s.Culture.Masterpieces, i, i+1)
		p.Masterpieces = append(p.Masterpieces, card)
		s.applyMasterpieceEffect(seat, card)
	} else {
		p.Score += 3
	}
	s.sendToAgora(seat, w)
	s.logf(seat, "Artist")
	return nil
}

// Builder 从市场建一座建筑到第一个已解锁的空位。罗马、阿拉伯或拥有 Genetics 时不需要工人。
type Builder struct {
	WorkerID   string `mapstructure:"workerId"`
	BuildingID string `mapstructure:"buildingId"`
}

func (Builder) Type() ActionType { return ActionBuilder }

func (a Builder) resolve(s *State, seat int) error {
	p := &s.Players[seat]
	civ := s.civType(seat)
	workerless := civ == CivRome || civ == CivArabia || p.Techs[1][4]
	if !workerless {
		w, err := s.standingWorker(seat, a.WorkerID)
		if err != nil {
			return err
		}
		s.sendToAgora(seat, w)
	}

	idx := slices.IndexFunc(s.AvailableBuildings, func(c Card) bool { return c.ID == a.BuildingID })
	if idx < 0 {
		return reject("building not available")
	}
	unlocked := p.unlockedSlots()
	slot := -1
	for i := range p.Buildings {
		if unlocked[i] && p.Buildings[i] == nil {
			slot = i
			break
		}
	}
	if slot < 0 {
		return reject("no free building slot")
	}
	card := s.AvailableBuildings[idx]
	s.AvailableBuildings = slices.Delete(s.AvailableBuildings, idx, idx+1)
	p.Buildings[slot] = &card
	p.ActivatedBuildings[slot] = false
	if card.Type == BuildingMilitaryBase {
		s.drawGlory(seat)
	}
	s.logf(seat, "Builder: %s", card.Name)
	return nil
}

// BuildWonder 建造奇迹。FreeTechs 用于大图书馆（1 项）与牛津大学（2 项）。
type BuildWonder struct {
	WonderID      string     `mapstructure:"wonderId"`
	UseGreece     bool       `mapstructure:"useGreece"`
	FreeTechs     []TechCell `mapstructure:"freeTechs"`
	CubesToRemove *int       `mapstructure:"cubesToRemove"`
}

func (BuildWonder) Type() ActionType { return ActionBuildWonder }

var freeTechsOnBuild = map[string]int{
	WonderGreatLibrary:     1,
	WonderOxfordUniversity: 2,
}

func (a BuildWonder) resolve(s *State, seat int) error {
	p := &s.Players[seat]
	idx := slices.IndexFunc(s.AvailableWonders, func(c Card) bool { return c.ID == a.WonderID })
	if idx < 0 {
		return reject("wonder not available")
	}
	card := s.AvailableWonders[idx]
	civ := s.civType(seat)

	greece := a.UseGreece && civ == CivGreece && !p.UsedGreeceWonder
	cost := card.Cost
	switch {
	case greece:
		cost = 0
	case civ != "" && civ == card.DiscountCiv:
		cost = card.DiscountCost
	}
	if p.Gold < cost {
		return reject("not enough gold for wonder")
	}
	p.Gold -= cost
	if greece {
		p.UsedGreeceWonder = true
	}

	if n := freeTechsOnBuild[card.Type]; n > 0 {
		for i, tc := range a.FreeTechs {
			if i >= n {
				break
			}
			if err := s.researchFree(seat, tc); err != nil {
				return err
			}
		}
	}

	s.AvailableWonders = slices.Delete(s.AvailableWonders, idx, idx+1)
	p.Wonders = append(p.Wonders, card)
	p.ActivatedWonders = append(p.ActivatedWonders, false)
	s.applyWonderInstant(seat, card, a.CubesToRemove)
	s.logf(seat, "Built a Wonder: %s", card.Name)
	return nil
}

func (s *State) applyWonderInstant(seat int, card Card, cubesToRemove *int) {
	p := &s.Players[seat]
	switch card.Type {
	case WonderColossus:
		p.Score += 2 * s.cubesOnMap(seat)
	case WonderPyramids, WonderMachuPicchu:
		p.Score += 2 * s.countResources(seat, ResourceRock)
	case WonderHangingGardens, WonderAngkorWat:
		p.Score += 2 * s.countResources(seat, ResourceWheat)
	case WonderVersailles:
		p.Score += s.countResources(seat, ResourceWheat)
	case WonderEiffelTower:
		p.Score += s.countResources(seat, ResourceRock)
	case WonderPorcelainTower:
		p.Score += 3 * len(p.Glory)
	case WonderKremlin:
		for _, pc := range s.Pieces {
			if pc.Kind == PieceWorker && pc.Exhausted && pc.onMap() {
				p.Score++
			}
		}
	case WonderApolloProgram:
		p.Score += 2 * s.countResources(seat, ResourceGem)
	case WonderInternet:
		p.Score += s.cityCount(seat)
		if s.capitalOf(seat) != nil {
			p.Score++
		}
	case WonderChristTheRedeemer:
		limit := 5
		if cubesToRemove != nil {
			limit = max(0, min(limit, *cubesToRemove))
		}
		removed := s.removeCubesFromMap(seat, limit)
		p.Score += 2 * removed
	}
}

// removeCubesFromMap 按城市顺序取回至多 limit 个方块，清空的城市一并移除。
func (s *State) removeCubesFromMap(seat, limit int) int {
	removed := 0
	kept := s.Cities[:0]
	for _, c := range s.Cities {
		if c.Owner == seat && removed < limit {
			take := min(c.Cubes, limit-removed)
			c.Cubes -= take
			removed += take
		}
		if c.Cubes > 0 {
			kept = append(kept, c)
		}
	}
	s.Cities = kept
	s.Players[seat].Cubes += removed
	return removed
}

// DevelopTechnology 研发科技。只有日本可以一次研发多项，并且每项便宜 2 金。
type DevelopTechnology struct {
	Techs  []TechCell `mapstructure:"techs"`
	Mirror *int       `mapstructure:"mirror"`
}

func (DevelopTechnology) Type() ActionType { return ActionDevelopTechnology }

func (a DevelopTechnology) resolve(s *State, seat int) error {
	if len(a.Techs) == 0 {
		return reject("no tech given")
	}
	japan := s.civType(seat) == CivJapan
	if len(a.Techs) > 1 && !japan {
		return reject("only one tech per action")
	}
	discount := 0
	if japan {
		discount = 2
	}
	for _, tc := range a.Techs {
		if err := s.research(seat, tc, discount, a.Mirror); err != nil {
			return err
		}
	}
	s.logf(seat, "Developed technology")
	return nil
}

// StartGoldenAge 进入黄金时代（本时代弃权）。本时代第一个进入的玩家拿走一张历史评判卡。
type StartGoldenAge struct {
	JudgementID string `mapstructure:"judgementId"`
}

func (StartGoldenAge) Type() ActionType { return ActionStartGoldenAge }

func (a StartGoldenAge) resolve(s *State, seat int) error {
	for _, pc := range s.Pieces {
		if pc.Kind == PieceWorker && pc.Owner == seat && !pc.Exhausted && pc.onMap() {
			return reject("player still has standing workers")
		}
	}
	first := !slices.ContainsFunc(s.Players, func(p Player) bool { return p.Passed })
	p := &s.Players[seat]
	if first && len(s.Judgements) > 0 {
		idx := slices.IndexFunc(s.Judgements, func(c Card) bool { return c.ID == a.JudgementID })
		if idx < 0 {
			return reject("judgement card not found")
		}
		card := s.Judgements[idx]
		s.Judgements = slices.Delete(s.Judgements, idx, idx+1)
		p.HistoryCards = append(p.HistoryCards, card)
		s.EraJudgement = &card
	}
	p.Passed = true
	if s.Era == EraIV && first {
		s.EraIVRemaining = s.numPlayers() - 1
	}
	s.logf(seat, "Started Golden Age")
	return nil
}

// Culture 在文化格上前进一格，需要满足该格要求。
type Culture struct {
	Row int `mapstructure:"row"`
}

func (Culture) Type() ActionType { return ActionCulture }

func (a Culture) resolve(s *State, seat int) error {
	if s.Culture == nil {
		return reject("expansion disabled")
	}
	if a.Row < 0 || a.Row >= CultureRows {
		return reject("invalid culture row")
	}
	if !s.advanceCultureRow(seat, a.Row, false) {
		return reject("culture requirement not met")
	}
	s.logf(seat, "Culture (advanced on culture row)")
	return nil
}
