package rules

var civFreeTech = map[string]TechCell{
	CivBabylon:   {Row: 1, Col: 1},
	CivPhoenicia: {Row: 3, Col: 1},
	CivEgypt:     {Row: 2, Col: 1},
	CivPersia:    {Row: 0, Col: 1},
}

var civGold = map[string]int{
	CivRome:      2,
	CivArabia:    4,
	CivByzantine: 5,
	CivPortugal:  4,
}

// 有前置科技则免费研发目标科技，目标已有则改为 6 金。
var civConditionalTech = map[string]struct{ prereq, target TechCell }{
	CivTurkey:  {TechCell{1, 1}, TechCell{1, 2}},
	CivEngland: {TechCell{3, 1}, TechCell{3, 2}},
	CivPrussia: {TechCell{0, 1}, TechCell{0, 2}},
	CivAustria: {TechCell{2, 1}, TechCell{2, 2}},
}

const civConditionalFallbackGold = 6

func (s *State) applyCivEffect(seat int, card Card, indiaRow *int) {
	p := &s.Players[seat]

	if tc, ok := civFreeTech[card.Type]; ok && !p.Techs[tc.Row][tc.Col] {
		s.grantTech(seat, tc)
		s.applyImmediateTech(seat, tc, seat)
	}
	p.Gold += civGold[card.Type]

	if ct, ok := civConditionalTech[card.Type]; ok && p.Techs[ct.prereq.Row][ct.prereq.Col] {
		if p.Techs[ct.target.Row][ct.target.Col] {
			p.Gold += civConditionalFallbackGold
		} else {
			s.grantTech(seat, ct.target)
			s.applyImmediateTech(seat, ct.target, seat)
		}
	}

	switch card.Type {
	case CivIndia:
		// 直接拿最高等级，不结算即时分
		if indiaRow != nil {
			tc := TechCell{Row: *indiaRow, Col: TechCols - 1}
			if !p.Techs[tc.Row][tc.Col] {
				s.grantTech(seat, tc)
			}
		}
	case CivCelts:
		s.advanceFirstCultureRow(seat)
	case CivCanada:
		p.Gold += s.countResources(seat, ResourceRock) + s.countResources(seat, ResourceWheat)
	}
}
