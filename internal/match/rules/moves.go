package rules

import "slices"

const (
	MoveChooseCivCard          = "chooseCivCard"
	MovePlaceTile              = "placeTile"
	MovePerformAction          = "performAction"
	MoveCollectGoldenAgeIncome = "collectGoldenAgeIncome"
	MovePickCultureCard        = "pickCultureCard"
	MovePlaceCultureBuilding   = "placeCultureBuilding"
	MoveFillCultCard           = "fillCultCard"
	MoveSpreadCultToken        = "spreadCultToken"
	MoveSkipCultSpread         = "skipCultSpread"
	MoveSetPlayerColor         = "setPlayerColor"
	MoveAcknowledgeGloryDraw   = "acknowledgeGloryDraw"
)

// ChooseCivCard 时代开始时选择本时代的文明卡。KeepOld 保留上一张（一时代无效）。
type ChooseCivCard struct {
	KeepOld  bool `mapstructure:"keepOld"`
	IndiaRow *int `mapstructure:"indiaRow"`
}

func (ChooseCivCard) Name() string { return MoveChooseCivCard }

func (m ChooseCivCard) apply(s *State, seat int) error {
	if err := s.requirePhase(PhaseEraStart); err != nil {
		return err
	}
	p := &s.Players[seat]
	if p.ChoseCiv {
		return reject("civilisation already chosen this era")
	}
	card, ok := p.takeCivCard(s.Era)
	if !ok {
		return reject("no civilisation card for this era")
	}
	if m.KeepOld && s.Era != EraI && p.Civ != nil {
		s.logf(seat, "kept previous civilisation")
	} else if err := s.activateCiv(seat, card, m.IndiaRow); err != nil {
		return err
	}
	p.ChoseCiv = true
	s.CivChosen++
	if s.CivChosen >= s.numPlayers() {
		s.FirstPlayer = s.lowestCivSeat()
		s.Phase = PhaseTilePlacement
	}
	return nil
}

func (p *Player) takeCivCard(era Era) (Card, bool) {
	i := slices.IndexFunc(p.Hand, func(c Card) bool { return c.Kind == KindCivilisation && c.Era == era })
	if i < 0 {
		return Card{}, false
	}
	card := p.Hand[i]
	p.Hand = slices.Delete(p.Hand, i, i+1)
	return card, true
}

func (s *State) activateCiv(seat int, card Card, indiaRow *int) error {
	if card.Type == CivIndia && indiaRow != nil && (*indiaRow < 0 || *indiaRow >= TechRows) {
		return reject("invalid india row")
	}
	s.Players[seat].Civ = &card
	s.applyCivEffect(seat, card, indiaRow)
	s.logf(seat, "chose civilisation card: %s", card.Name)
	return nil
}

// lowestCivSeat 文明编号最小者为本时代首位玩家，并列取座位靠前者。
func (s *State) lowestCivSeat() int {
	best, bestNum := s.FirstPlayer, -1
	for i, p := range s.Players {
		if p.Civ == nil {
			continue
		}
		if bestNum < 0 || p.Civ.Number < bestNum {
			best, bestNum = i, p.Civ.Number
		}
	}
	return best
}

// PlaceTile 放置本时代的板块。MoveCapital 把首都迁到新板块的第一格（二时代起）。
type PlaceTile struct {
	AnchorRow   int      `mapstructure:"anchorRow"`
	AnchorCol   int      `mapstructure:"anchorCol"`
	Rotation    Rotation `mapstructure:"rotation"`
	MoveCapital bool     `mapstructure:"moveCapital"`
}

func (PlaceTile) Name() string { return MovePlaceTile }

func (m PlaceTile) apply(s *State, seat int) error {
	if err := s.requirePhase(PhaseTilePlacement); err != nil {
		return err
	}
	p := &s.Players[seat]
	if p.PlacedTile {
		return reject("tile already placed this era")
	}
	shape, tmpl := s.tileFor(seat)
	anchor := Cell{Row: m.AnchorRow, Col: m.AnchorCol}
	if !s.canPlace(shape, anchor, m.Rotation, tmpl) {
		return reject("tile cannot be placed there")
	}

	cells := s.placeTile(shape, anchor, m.Rotation, seat)
	s.relocateCapitalsOn(cells)
	s.returnWorkersOn(cells)
	if tmpl != nil {
		for i, c := range cells {
			if i < len(tmpl.Edges) {
				s.Edges[c.Key()] = rotateEdges(tmpl.Edges[i], m.Rotation)
			}
		}
		s.depositResources(cells, tmpl)
	}

	if s.Era == EraI {
		corner := cells[0]
		if shape.ID == ShapeSmallL.ID {
			corner = cells[smallLCorner]
		}
		if card, ok := p.takeCivCard(EraI); ok {
			if err := s.activateCiv(seat, card, nil); err != nil {
				return err
			}
			p.ChoseCiv = true
		}
		s.spawnStartingPieces(seat, corner)
		s.tryTakeControl(seat, corner)
		p.LTile, p.Dominoes[EraI] = nil, nil
	} else {
		if shape.ID == ShapeSingle.ID {
			p.Single = nil
		} else {
			p.Dominoes[s.Era] = nil
		}
		if m.MoveCapital {
			s.relocateCapital(seat, cells[0])
		}
	}

	p.PlacedTile = true
	s.TilesPlaced++
	if m.MoveCapital && s.Era != EraI {
		s.logf(seat, "placed a tile (moved capital)")
	} else {
		s.logf(seat, "placed a tile")
	}
	if s.TilesPlaced >= s.numPlayers() {
		if s.Era == EraI {
			s.FirstPlayer = s.lowestCivSeat()
		}
		s.Phase = PhaseActions
	}
	return nil
}

// PerformAction 行动阶段的一次行动。
type PerformAction struct {
	Action Action
}

func (PerformAction) Name() string { return MovePerformAction }

func (m PerformAction) apply(s *State, seat int) error {
	s.LastGlory = nil
	if err := s.requirePhase(PhaseActions); err != nil {
		return err
	}
	if s.Players[seat].Passed {
		return reject("player already started a golden age")
	}
	if s.hasPending() {
		return reject("pending culture step")
	}
	if m.Action == nil {
		return reject("missing action")
	}
	countdown := s.EraIVRemaining > 0
	if err := m.Action.resolve(s, seat); err != nil {
		return err
	}
	s.afterTurnAction(countdown)
	return nil
}

// CollectGoldenAgeIncome 已进入黄金时代的玩家轮到时领取收入。
type CollectGoldenAgeIncome struct{}

func (CollectGoldenAgeIncome) Name() string { return MoveCollectGoldenAgeIncome }

func (CollectGoldenAgeIncome) apply(s *State, seat int) error {
	if err := s.requirePhase(PhaseActions); err != nil {
		return err
	}
	p := &s.Players[seat]
	if !p.Passed {
		return reject("player has not started a golden age")
	}
	if s.hasPending() {
		return reject("pending culture step")
	}
	countdown := s.EraIVRemaining > 0
	p.Gold += GoldenAgeIncome
	if p.hasGovernment(GovernmentMonarchy) {
		p.Gold++
	}
	if p.hasGovernment(GovernmentRepublic) {
		p.Score += 2
	}
	s.logf(seat, "collected %d gold (golden age)", GoldenAgeIncome)
	s.afterTurnAction(countdown)
	return nil
}

// PickCultureCard 从展示区拿一张文化卡。
type PickCultureCard struct {
	Index int `mapstructure:"index"`
}

func (PickCultureCard) Name() string { return MovePickCultureCard }

func (m PickCultureCard) apply(s *State, seat int) error {
	if s.Culture == nil || s.PendingPicks <= 0 {
		return reject("no culture pick pending")
	}
	if m.Index < 0 || m.Index >= len(s.Culture.Display) {
		return reject("invalid culture card index")
	}
	card := s.Culture.Display[m.Index]
	s.Culture.Display = slices.Delete(s.Culture.Display, m.Index, m.Index+1)
	s.receiveCultureCard(seat, card)
	s.refillCultureDisplay()
	s.PendingPicks--
	s.logf(seat, "picked culture card: %s", card.Name)
	return nil
}

// PlaceCultureBuilding 把手里的文化建筑放进建筑位。
type PlaceCultureBuilding struct {
	Slot      int `mapstructure:"slot"`
	HandIndex int `mapstructure:"handIndex"`
}

func (PlaceCultureBuilding) Name() string { return MovePlaceCultureBuilding }

func (m PlaceCultureBuilding) apply(s *State, seat int) error {
	s.LastGlory = nil
	if s.Culture == nil {
		return reject("expansion disabled")
	}
	if err := s.requirePhase(PhaseActions); err != nil {
		return err
	}
	p := &s.Players[seat]
	if p.Passed {
		return reject("player already started a golden age")
	}
	if s.hasPending() {
		return reject("pending culture step")
	}
	if m.Slot < 0 || m.Slot >= BuildingSlots {
		return reject("invalid building slot")
	}
	if m.HandIndex < 0 || m.HandIndex >= len(p.Hand) {
		return reject("invalid hand index")
	}
	card := p.Hand[m.HandIndex]
	if card.Kind != KindCulture || card.Subtype != SubtypeBuilding {
		return reject("not a culture building")
	}
	if !p.unlockedSlots()[m.Slot] || p.Buildings[m.Slot] != nil {
		return reject("building slot unavailable")
	}
	countdown := s.EraIVRemaining > 0
	p.Hand = slices.Delete(p.Hand, m.HandIndex, m.HandIndex+1)
	p.Buildings[m.Slot] = &card
	if card.Type == BuildingCultureMilitaryBase {
		s.drawGlory(seat)
	}
	s.logf(seat, "placed culture building: %s", card.Name)
	s.afterTurnAction(countdown)
	return nil
}

// FillCultCard 给刚拿到的信仰卡放上信仰标记。供应不足时只需放满剩余的标记数。
type FillCultCard struct {
	TokenTypes []int `mapstructure:"tokenTypes"`
}

func (FillCultCard) Name() string { return MoveFillCultCard }

func (m FillCultCard) apply(s *State, seat int) error {
	if s.PendingFill == nil || s.Culture == nil {
		return reject("no cult card to fill")
	}
	p := &s.Players[seat]
	idx := s.PendingFill.CardIndex
	if idx < 0 || idx >= len(p.Cults) {
		return reject("cult card not found")
	}
	supplyTotal := 0
	for _, n := range s.Culture.Supply {
		supplyTotal += n
	}
	if len(m.TokenTypes) != min(s.PendingFill.Spots, supplyTotal) {
		return reject("wrong number of cult tokens")
	}
	supply := s.Culture.Supply
	for _, t := range m.TokenTypes {
		if t < 0 || t >= CultTokenTypes || supply[t] <= 0 {
			return reject("cult token unavailable")
		}
		supply[t]--
	}
	s.Culture.Supply = supply
	cult := &p.Cults[idx]
	cult.TokenTypes = append([]int(nil), m.TokenTypes...)
	cult.Remaining = len(m.TokenTypes)
	s.PendingFill = nil
	s.logf(seat, "filled cult card: %s", cult.Card.Name)
	return nil
}

// SpreadCultToken 新城市建立后向相邻的城市或首都传播一个信仰标记。
type SpreadCultToken struct {
	CultCardIndex int `mapstructure:"cultCardIndex"`
	TokenType     int `mapstructure:"tokenType"`
	Row           int `mapstructure:"row"`
	Col           int `mapstructure:"col"`
}

func (SpreadCultToken) Name() string { return MoveSpreadCultToken }

func (m SpreadCultToken) apply(s *State, seat int) error {
	sp := s.PendingSpread
	if sp == nil || s.Culture == nil {
		return reject("no cult spread pending")
	}
	p := &s.Players[seat]
	if m.CultCardIndex < 0 || m.CultCardIndex >= len(p.Cults) {
		return reject("cult card not found")
	}
	cult := &p.Cults[m.CultCardIndex]
	ti := slices.Index(cult.TokenTypes, m.TokenType)
	if ti < 0 {
		return reject("token type not on card")
	}
	dest := Cell{Row: m.Row, Col: m.Col}
	if dest.manhattan(sp.City) != 1 {
		return reject("destination not adjacent to the new city")
	}
	if s.cityAt(dest) == nil && s.capitalAt(dest) == nil {
		return reject("destination has no city or capital")
	}
	if slices.Contains(sp.Used, dest) {
		return reject("destination already used")
	}
	key := dest.Key()
	if slices.Contains(s.Culture.Tokens[key], m.TokenType) {
		return reject("token type already on destination")
	}

	cult.TokenTypes = slices.Delete(cult.TokenTypes, ti, ti+1)
	cult.Remaining--
	s.Culture.Tokens[key] = append(s.Culture.Tokens[key], m.TokenType)
	sp.Used = append(sp.Used, dest)
	if p.hasGovernment(GovernmentTheocracy) {
		p.Gold += 2
	}
	sp.Remaining--
	if sp.Remaining <= 0 || !p.hasCultTokens() {
		s.PendingSpread = nil
	}
	s.logf(seat, "spread cult token")
	return nil
}

func (p *Player) hasCultTokens() bool {
	for _, c := range p.Cults {
		if len(c.TokenTypes) > 0 {
			return true
		}
	}
	return false
}

// SkipCultSpread 放弃剩余的传播。
type SkipCultSpread struct{}

func (SkipCultSpread) Name() string { return MoveSkipCultSpread }

func (SkipCultSpread) apply(s *State, seat int) error {
	if s.PendingSpread == nil {
		return reject("no cult spread pending")
	}
	s.PendingSpread = nil
	s.logf(seat, "skipped cult spread")
	return nil
}

// SetPlayerColor 换颜色，颜色被占用时与对方互换。不占回合。
type SetPlayerColor struct {
	Color Color `mapstructure:"color"`
}

func (SetPlayerColor) Name() string { return MoveSetPlayerColor }
func (SetPlayerColor) free()        {}

func (m SetPlayerColor) apply(s *State, seat int) error {
	if !m.Color.Valid() {
		return reject("invalid color")
	}
	p := &s.Players[seat]
	if p.Color == m.Color {
		return nil
	}
	for i := range s.Players {
		if i != seat && s.Players[i].Color == m.Color {
			s.Players[i].Color = p.Color
		}
	}
	p.Color = m.Color
	return nil
}

// AcknowledgeGloryDraw 客户端看完荣耀标记动画后清除提示。不占回合。
type AcknowledgeGloryDraw struct{}

func (AcknowledgeGloryDraw) Name() string { return MoveAcknowledgeGloryDraw }
func (AcknowledgeGloryDraw) free()        {}

func (AcknowledgeGloryDraw) apply(s *State, seat int) error {
	if s.LastGlory != nil && s.LastGlory.Seat == seat {
		s.LastGlory = nil
	}
	return nil
}
