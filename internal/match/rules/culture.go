package rules

// CultureRequirement 描述推进到某行某列需要的条件，第 0 列无要求。
type CultureRequirement struct {
	Kind  string `json:"kind"`
	Value int    `json:"value"`
}

const (
	reqTechLevel = "techLevel"
	reqGlory     = "glory"
	reqCubes     = "cubes"
	reqWonders   = "wonders"
	reqGold      = "gold"
)

var cultureRowKinds = [CultureRows]string{reqTechLevel, reqGlory, reqCubes, reqWonders, reqGold}

var cultureRowSteps = [CultureRows][CultureCols]int{
	{0, 3, 4, 5},
	{0, 1, 2, 3},
	{0, 3, 6, 9},
	{0, 1, 2, 3},
	{0, 6, 12, 18},
}

// CultureGrid 返回 row/col 格的要求。
func CultureGrid(row, col int) (CultureRequirement, bool) {
	if row < 0 || row >= CultureRows || col < 1 || col >= CultureCols {
		return CultureRequirement{}, false
	}
	return CultureRequirement{Kind: cultureRowKinds[row], Value: cultureRowSteps[row][col]}, true
}

func (s *State) meetsCulture(seat int, req CultureRequirement) bool {
	p := &s.Players[seat]
	switch req.Kind {
	case reqTechLevel:
		col := req.Value - 1
		for _, row := range p.Techs {
			if col >= 0 && col < TechCols && row[col] {
				return true
			}
		}
		return false
	case reqGlory:
		return len(p.Glory) >= req.Value
	case reqCubes:
		return s.cubesOnMap(seat) >= req.Value
	case reqWonders:
		return len(p.Wonders) >= req.Value
	case reqGold:
		return p.Gold >= req.Value
	}
	return false
}

// advanceCultureRow 成功时文化分 +1 并排队一次选卡（不超过展示区张数）。
func (s *State) advanceCultureRow(seat, row int, ignoreRequirements bool) bool {
	if s.Culture == nil || seat >= len(s.Culture.Positions) || row < 0 || row >= CultureRows {
		return false
	}
	pos := s.Culture.Positions[seat][row]
	if pos >= CultureCols-1 {
		return false
	}
	if !ignoreRequirements {
		req, _ := CultureGrid(row, pos+1)
		if !s.meetsCulture(seat, req) {
			return false
		}
	}
	s.Culture.Positions[seat][row] = pos + 1
	s.Players[seat].CultureScore++
	if s.PendingPicks < len(s.Culture.Display) {
		s.PendingPicks++
	}
	return true
}

// advanceFirstCultureRow 无视要求，从第一行开始找第一条还能前进的行。
func (s *State) advanceFirstCultureRow(seat int) {
	for row := 0; row < CultureRows; row++ {
		if s.advanceCultureRow(seat, row, true) {
			return
		}
	}
}

func (s *State) receiveCultureCard(seat int, card Card) {
	p := &s.Players[seat]
	switch card.Subtype {
	case SubtypeProgress:
		p.Progress = append(p.Progress, card)
	case SubtypeMasterpiece:
		// 展示区拿到的杰作只给分，金币与特效走 Artist
		p.Masterpieces = append(p.Masterpieces, card)
		p.Score += card.VP
	case SubtypeGovernment:
		p.Government = &card
	case SubtypeCult:
		p.Cults = append(p.Cults, CultCard{Card: card, Remaining: card.CultSpots})
		s.PendingFill = &PendingCultFill{CardIndex: len(p.Cults) - 1, Spots: card.CultSpots}
	case SubtypeBuilding:
		p.Hand = append(p.Hand, card)
	}
}

func (s *State) refillCultureDisplay() {
	if s.Culture == nil {
		return
	}
	deck := s.Culture.Decks[s.Era]
	for len(s.Culture.Display) < CultureDisplaySize && len(deck) > 0 {
		s.Culture.Display = append(s.Culture.Display, deck[0])
		deck = deck[1:]
	}
	s.Culture.Decks[s.Era] = deck
}

func (s *State) applyMasterpieceEffect(seat int, card Card) {
	p := &s.Players[seat]
	p.Score += card.VP
	p.Gold += card.Gold
	switch card.Type {
	case MasterpieceDiscobolus:
		p.Gold += 2 * s.uniqueResources(seat)
	case MasterpieceMonaLisa:
		p.Score += s.uniqueResources(seat)
	}
}

// cultTokensControlled 玩家控制的格子上的信仰标记总数。
func (s *State) cultTokensControlled(seat int) int {
	if s.Culture == nil {
		return 0
	}
	n := 0
	for key, tokens := range s.Culture.Tokens {
		c, ok := ParseCellKey(key)
		if ok && s.controlsCell(seat, c) {
			n += len(tokens)
		}
	}
	return n
}
