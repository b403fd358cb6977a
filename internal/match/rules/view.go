package rules

// hidden 只保留卡背信息。
func hidden(cards []Card) []Card {
	if cards == nil {
		return nil
	}
	out := make([]Card, len(cards))
	for i, c := range cards {
		out[i] = Card{Kind: c.Kind, Era: c.Era}
	}
	return out
}

// PublicView 给 viewer 座位看的状态：其他玩家的手牌与未来板块、各牌堆、荣耀供应都只保留数量。
// viewer 不在座位范围内时按旁观者处理，所有手牌都被隐藏。
func PublicView(s *State, viewer int) *State {
	v := s.Clone()
	for i := range v.Players {
		if i == viewer {
			continue
		}
		p := &v.Players[i]
		p.Hand = hidden(p.Hand)
		p.LTile = nil
		p.Dominoes = [eraCount]*TileTemplate{}
		p.Single = nil
	}
	for era := range v.WonderDecks {
		v.WonderDecks[era] = hidden(v.WonderDecks[era])
		v.BuildingDecks[era] = hidden(v.BuildingDecks[era])
	}
	for i := range v.Glory {
		v.Glory[i] = 0
	}
	if v.Culture != nil {
		for era := range v.Culture.Decks {
			v.Culture.Decks[era] = hidden(v.Culture.Decks[era])
		}
	}
	return v
}
