package rules

import (
	"fmt"
	"math/rand/v2"
)

func shuffle[T any](rng *rand.Rand, in []T) []T {
	rng.Shuffle(len(in), func(i, j int) { in[i], in[j] = in[j], in[i] })
	return in
}

func newRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func buildWonderDecks(rng *rand.Rand, expansion bool) [eraCount][]Card {
	var out [eraCount][]Card
	for era := EraI; era <= EraIV; era++ {
		defs := wonderDefs[era]
		if expansion {
			defs = append(append([]wonderDef{}, defs...), expansionWonderDefs[era]...)
		}
		cards := make([]Card, 0, len(defs))
		for _, d := range defs {
			cards = append(cards, Card{
				ID:           fmt.Sprintf("wonder-%s-%s", era, d.typ),
				Kind:         KindWonder,
				Era:          era,
				Type:         d.typ,
				Name:         d.name,
				Description:  d.desc,
				Cost:         d.cost,
				DiscountCiv:  d.discountCiv,
				DiscountCost: d.discountCost,
				Activatable:  d.activatable,
			})
		}
		out[era] = shuffle(rng, cards)
	}
	return out
}

// 每种建筑两张。
func buildBuildingDecks(rng *rand.Rand, expansion bool) [eraCount][]Card {
	var out [eraCount][]Card
	for era := EraI; era <= EraIV; era++ {
		defs := buildingDefs[era]
		if expansion {
			defs = append(append([]namedDef{}, defs...), expansionBuildingDefs[era]...)
		}
		cards := make([]Card, 0, 2*len(defs))
		n := 0
		for _, d := range defs {
			for k := 0; k < 2; k++ {
				cards = append(cards, Card{
					ID:          fmt.Sprintf("building-%s-%d", era, n),
					Kind:        KindBuilding,
					Era:         era,
					Type:        d.typ,
					Name:        d.name,
					Description: d.desc,
					Activatable: d.typ != BuildingWall && d.typ != BuildingMilitaryBase,
				})
				n++
			}
		}
		out[era] = shuffle(rng, cards)
	}
	return out
}

func buildCivDecks(rng *rand.Rand, expansion bool) [eraCount][]Card {
	var out [eraCount][]Card
	for era := EraI; era <= EraIV; era++ {
		defs := civDefs[era]
		if expansion {
			defs = append(append([]civDef{}, defs...), expansionCivDefs[era]...)
		}
		cards := make([]Card, 0, len(defs))
		for _, d := range defs {
			cards = append(cards, Card{
				ID:          fmt.Sprintf("civilisation-%s-%s", era, d.typ),
				Kind:        KindCivilisation,
				Era:         era,
				Type:        d.typ,
				Name:        d.name,
				Description: d.desc,
				Number:      d.number,
			})
		}
		out[era] = shuffle(rng, cards)
	}
	return out
}

func buildNamedDeck(rng *rand.Rand, kind CardKind, prefix string, base, extra []namedDef, expansion bool) []Card {
	defs := base
	if expansion {
		defs = append(append([]namedDef{}, base...), extra...)
	}
	cards := make([]Card, 0, len(defs))
	for _, d := range defs {
		cards = append(cards, Card{
			ID:          prefix + "-" + d.typ,
			Kind:        kind,
			Type:        d.typ,
			Name:        d.name,
			Description: d.desc,
		})
	}
	return shuffle(rng, cards)
}

func cultureCard(id string, era Era, d cultureDef) Card {
	return Card{
		ID:          id,
		Kind:        KindCulture,
		Era:         era,
		Type:        d.typ,
		Name:        d.name,
		Description: d.desc,
		Subtype:     d.subtype,
		CultSpots:   d.spots,
		CultSpotVP:  d.spotVP,
		VP:          d.vp,
		Gold:        d.gold,
		Activatable: d.subtype == SubtypeBuilding && d.typ != BuildingCultureMilitaryBase,
	}
}

func buildCultureDecks(rng *rand.Rand) [eraCount][]Card {
	var out [eraCount][]Card
	for era := EraI; era <= EraIV; era++ {
		cards := make([]Card, 0, len(cultureDefs[era]))
		for _, d := range cultureDefs[era] {
			cards = append(cards, cultureCard(fmt.Sprintf("culture-%s-%s", era, d.typ), era, d))
		}
		out[era] = shuffle(rng, cards)
	}
	return out
}

func buildMasterpieceDeck(rng *rand.Rand) []Card {
	cards := make([]Card, 0, len(masterpieceDefs))
	for _, d := range masterpieceDefs {
		cards = append(cards, cultureCard("masterpiece-"+d.typ, EraI, d))
	}
	return shuffle(rng, cards)
}

// dealTiles 发私有板块：L 形给前四名玩家；五人局第五名玩家一时代用骨牌，四时代（扩展）用 1x1。
func dealTiles(rng *rand.Rand, players []Player, expansion bool) {
	n := len(players)
	five := n == MaxPlayers
	lTiles := shuffle(rng, append([]*TileTemplate(nil), lTileTemplates...))
	dominoes := shuffle(rng, append([]*TileTemplate(nil), dominoTileTemplates...))
	singles := shuffle(rng, append([]*TileTemplate(nil), singleTileTemplates...))

	next := 0
	draw := func() *TileTemplate {
		if next >= len(dominoes) {
			next++
			return nil
		}
		t := dominoes[next]
		next++
		return t
	}

	var byEra [eraCount][]*TileTemplate
	if five {
		byEra[EraI] = append(byEra[EraI], draw())
	}
	for era := EraII; era <= EraIV; era++ {
		count := n
		if era == EraIV && five {
			count = 4
		}
		for i := 0; i < count; i++ {
			byEra[era] = append(byEra[era], draw())
		}
	}
	at := func(list []*TileTemplate, i int) *TileTemplate {
		if i < len(list) {
			return list[i]
		}
		return nil
	}

	for i := range players {
		p := &players[i]
		fifth := five && i == MaxPlayers-1
		if fifth {
			p.Dominoes[EraI] = at(byEra[EraI], 0)
			if expansion {
				p.Single = singles[0]
			}
		} else {
			p.LTile = at(lTiles, i)
			p.Dominoes[EraIV] = at(byEra[EraIV], i)
		}
		p.Dominoes[EraII] = at(byEra[EraII], i)
		p.Dominoes[EraIII] = at(byEra[EraIII], i)
	}
}
