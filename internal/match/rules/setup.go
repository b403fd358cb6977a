package rules

import (
	"fmt"
	"maps"
)

// NewMatch 按参数开一局。Seed 相同则发牌与洗牌结果完全一致。
func NewMatch(opts Options) (*State, error) {
	if opts.Players < MinPlayers || opts.Players > MaxPlayers {
		return nil, fmt.Errorf("rules: players must be in [%d,%d], got %d", MinPlayers, MaxPlayers, opts.Players)
	}
	rng := newRNG(opts.Seed)

	civDecks := buildCivDecks(rng, opts.Expansion)
	wonderDecks := buildWonderDecks(rng, opts.Expansion)
	buildingDecks := buildBuildingDecks(rng, opts.Expansion)
	futureTech := buildNamedDeck(rng, KindFutureTech, "futureTech", futureTechDefs, expansionFutureTechDefs, opts.Expansion)
	judgements := buildNamedDeck(rng, KindJudgement, "judgement", judgementDefs, expansionJudgementDefs, opts.Expansion)

	s := &State{
		Options:        opts,
		Tiles:          newTileLayer(),
		Edges:          maps.Clone(startingTileEdges),
		Resources:      make(map[string][]Resource, len(boardResources)+len(startingTileResources)),
		Controlled:     map[string]int{},
		Era:            EraI,
		Phase:          PhaseTilePlacement,
		WonderDecks:    wonderDecks,
		BuildingDecks:  buildingDecks,
		Judgements:     judgements[:min(JudgementDraw, len(judgements))],
		EraIVRemaining: -1,
	}
	for k, v := range boardResources {
		s.Resources[k] = append([]Resource(nil), v...)
	}
	for k, v := range startingTileResources {
		s.Resources[k] = append([]Resource(nil), v...)
	}
	s.placeTile(shapeStart, startingTileAnchor, Rotate0, NoOwner)

	s.Players = make([]Player, opts.Players)
	for i := range s.Players {
		p := &s.Players[i]
		p.Seat = i
		p.Color = playerColors[i]
		p.Gold = StartingGold
		p.Cubes = StartingCubes
		p.BoardCubes = make(map[string]int, len(initialPledges))
		for tc, n := range initialPledges {
			p.BoardCubes[tc.pledgeKey()] = n
		}
		for row := 0; row < TechRows; row++ {
			p.Techs[row][0] = true
		}
		for era := EraI; era <= EraIV; era++ {
			deck := civDecks[era]
			if len(deck) > 0 {
				p.Hand = append(p.Hand, deck[len(deck)-1])
				civDecks[era] = deck[:len(deck)-1]
			}
		}
		if len(futureTech) > 0 {
			p.Hand = append(p.Hand, futureTech[len(futureTech)-1])
			futureTech = futureTech[:len(futureTech)-1]
		}
	}
	dealTiles(rng, s.Players, opts.Expansion)

	glory := append([]int(nil), gloryTokenPool...)
	if opts.Expansion {
		glory = append(glory, expansionGloryTokens...)
	}
	s.Glory = shuffle(rng, glory)

	if opts.Expansion {
		s.Culture = &CultureBoard{
			Positions:    make([][CultureRows]int, opts.Players),
			Decks:        buildCultureDecks(rng),
			Masterpieces: buildMasterpieceDeck(rng),
			Tokens:       map[string][]int{},
		}
		for i := range s.Culture.Supply {
			s.Culture.Supply[i] = CultTokensPerType
		}
	}

	s.revealEraCards()
	// 一时代没有选文明的步骤，文明卡在放置起始板块时生效。
	s.Phase = PhaseTilePlacement
	return s, nil
}
