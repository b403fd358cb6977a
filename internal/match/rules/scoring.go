package rules

import (
	"slices"
)

// FutureTechVP 终局时未来科技卡给唯一领先者的分数。
const FutureTechVP = 8

// judgementVP 一张历史评判卡给某个玩家的分数。
func (s *State) judgementVP(typ string, seat int) int {
	p := &s.Players[seat]
	switch typ {
	case "mostUrbanized":
		return 3 * p.builtBuildings()
	case "strongest":
		return 2 * len(p.Glory)
	case "richest":
		return p.Gold / 3
	case "mostPopulous":
		return s.cubesOnMap(seat)
	case "mostMagnificent":
		return 2 * s.countResources(seat, ResourceGem)
	case "mostIndustrial":
		return 2 * s.countResources(seat, ResourceRock)
	case "mostEcological":
		return 2 * s.countResources(seat, ResourceGame)
	case "mostAgricultural":
		return 2 * s.countResources(seat, ResourceWheat)
	case "mostWealthy":
		return 4 * len(p.Wonders)
	case "mostAdvanced":
		return p.techCount()
	case "mostSpiritual":
		return 2 * s.cultTokensControlled(seat)
	case "mostCultured":
		return 2 * len(p.Progress)
	case "mostArtistic":
		return 2 * len(p.Masterpieces)
	}
	return 0
}

// scoreEraJudgement 结算本时代被选中的评判卡，每名玩家独立计分。
func (s *State) scoreEraJudgement() {
	if s.EraJudgement == nil {
		return
	}
	for seat := range s.Players {
		s.Players[seat].Score += s.judgementVP(s.EraJudgement.Type, seat)
	}
	s.logf(NoOwner, "history's judgement: %s", s.EraJudgement.Name)
	s.EraJudgement = nil
}

func (s *State) futureTechCount(typ string, seat int) int {
	p := &s.Players[seat]
	switch typ {
	case "newWorldOrder":
		return p.Gold
	case "artificialIntelligence":
		return p.techCount()
	case "timeTravel":
		return len(p.Wonders)
	case "psychohistory":
		return s.cubesOnMap(seat)
	case "spaceFlight":
		return len(p.Glory)
	case "nanotechnology":
		return s.countResources(seat, ResourceRock)
	case "biotechnology":
		return s.countResources(seat, ResourceGame)
	case "coldFusion":
		return s.countResources(seat, ResourceGem)
	case "underseaAgriculture":
		return s.countResources(seat, ResourceWheat)
	case "spiritualMedicine":
		return s.cultTokensControlled(seat)
	case "hiveMind":
		return len(p.Progress)
	case "virtualReality":
		return len(p.Masterpieces)
	}
	return 0
}

// soleLeader 严格唯一的最大者，并列时返回 false。
func (s *State) soleLeader(typ string) (int, bool) {
	best, bestSeat, tied := -1, -1, false
	for seat := range s.Players {
		n := s.futureTechCount(typ, seat)
		switch {
		case n > best:
			best, bestSeat, tied = n, seat, false
		case n == best:
			tied = true
		}
	}
	return bestSeat, bestSeat >= 0 && !tied
}

func (s *State) addScoreLine(seat int, label string, vp int) {
	s.Players[seat].Score += vp
	s.Breakdown[seat] = append(s.Breakdown[seat], ScoreLine{Label: label, VP: vp})
}

// PerformEndGameScoring 终局计分，只执行一次；再次调用不做任何改动。
func (s *State) PerformEndGameScoring() {
	if s.EndGameScored {
		return
	}
	s.EndGameScored = true

	s.Breakdown = make([][]ScoreLine, len(s.Players))
	for seat, p := range s.Players {
		s.Breakdown[seat] = []ScoreLine{{Label: "Score during game", VP: p.Score}}
	}

	var ftTypes []string
	for _, p := range s.Players {
		for _, c := range p.Hand {
			if c.Kind == KindFutureTech && !slices.Contains(ftTypes, c.Type) {
				ftTypes = append(ftTypes, c.Type)
			}
		}
	}
	for _, typ := range ftTypes {
		if seat, ok := s.soleLeader(typ); ok {
			s.addScoreLine(seat, "Future Tech: "+futureTechName(typ), FutureTechVP)
		}
	}

	for seat := range s.Players {
		p := &s.Players[seat]
		if vp := p.Gold / 3; vp > 0 {
			s.addScoreLine(seat, "Gold (1 VP per 3)", vp)
		}

		techVP := 0
		for _, row := range p.Techs {
			for col, done := range row {
				if done {
					techVP += techBacksideVP[col]
				}
			}
		}
		if techVP > 0 {
			s.addScoreLine(seat, "Tech levels (3-5)", techVP)
		}

		if vp := p.gloryVP(); vp > 0 {
			s.addScoreLine(seat, "Glory tokens", vp)
		}

		if p.hasWonder(WonderSpiralMinaret) {
			vp := 0
			for _, row := range p.Techs {
				if row[3] {
					vp += 2
				}
				if row[4] {
					vp += 2
				}
			}
			if vp > 0 {
				s.addScoreLine(seat, "Spiral Minaret", vp)
			}
		}

		cultVP := 0
		for _, c := range p.Cults {
			cultVP += (c.Card.CultSpots - c.Remaining) * c.Card.CultSpotVP
		}
		if cultVP > 0 {
			s.addScoreLine(seat, "Cult cards (spread tokens)", cultVP)
		}
	}

	if s.Culture != nil {
		keys := make([]string, 0, len(s.Culture.Tokens))
		for k := range s.Culture.Tokens {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, key := range keys {
			tokens := s.Culture.Tokens[key]
			c, ok := ParseCellKey(key)
			if !ok || len(tokens) == 0 {
				continue
			}
			for seat := range s.Players {
				if s.controlsCell(seat, c) {
					s.addScoreLine(seat, "Cult tokens on board", len(tokens))
				}
			}
		}
	}
}

// Ranking 名次：分数降序，同分按城市数降序。
type Ranking struct {
	Seat   int `json:"seat"`
	Score  int `json:"score"`
	Cities int `json:"cities"`
}

func Rankings(s *State) []Ranking {
	out := make([]Ranking, len(s.Players))
	for i, p := range s.Players {
		out[i] = Ranking{Seat: i, Score: p.Score, Cities: s.cityCount(i)}
	}
	slices.SortStableFunc(out, func(a, b Ranking) int {
		if a.Score != b.Score {
			return b.Score - a.Score
		}
		return b.Cities - a.Cities
	})
	return out
}
