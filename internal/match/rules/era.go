package rules

// afterTurnAction 每次消耗回合的行动之后：四时代倒计时，然后检查时代结束。
// countdown 取自行动之前，开启倒计时的那一步本身不计数。
func (s *State) afterTurnAction(countdown bool) {
	if countdown && s.EraIVRemaining > 0 {
		s.EraIVRemaining--
		if s.EraIVRemaining == 0 {
			s.scoreEraJudgement()
			s.finishGame()
			return
		}
	}
	s.checkEraEnd()
}

func (s *State) allPassed() bool {
	for _, p := range s.Players {
		if !p.Passed {
			return false
		}
	}
	return true
}

func (s *State) checkEraEnd() {
	if s.Phase == PhaseGameOver || !s.allPassed() {
		return
	}
	s.scoreEraJudgement()
	if s.Era == EraIV {
		s.finishGame()
		return
	}

	s.Era++
	s.TilesPlaced = 0
	for i := range s.Players {
		p := &s.Players[i]
		p.Passed = false
		p.PlacedTile = false
		p.ChoseCiv = false
		p.ActivatedBuildings = [BuildingSlots]bool{}
		p.ActivatedWonders = make([]bool, len(p.Wonders))
	}
	for i := range s.Pieces {
		w := &s.Pieces[i]
		if w.Kind != PieceWorker {
			continue
		}
		w.Exhausted = false
		if w.InAgora {
			if capital := s.capitalOf(w.Owner); capital != nil {
				w.Cell = capital.Cell
			}
			w.InAgora = false
		}
	}
	s.logf(NoOwner, "era %s begins", s.Era)
	s.revealEraCards()
}

func (s *State) finishGame() {
	s.PerformEndGameScoring()
	s.Phase = PhaseGameOver
	s.logf(NoOwner, "game over")
}

// revealEraCards 翻开本时代的奇迹与建筑，重置文化展示区，进入时代开始阶段。
func (s *State) revealEraCards() {
	era := s.Era
	nw := min(WonderDrawPerEra, len(s.WonderDecks[era]))
	s.AvailableWonders = cloneCards(s.WonderDecks[era][:nw])
	s.WonderDecks[era] = s.WonderDecks[era][nw:]

	nb := min(s.numPlayers(), len(s.BuildingDecks[era]))
	s.AvailableBuildings = cloneCards(s.BuildingDecks[era][:nb])
	s.BuildingDecks[era] = s.BuildingDecks[era][nb:]

	if s.Culture != nil {
		s.Culture.Display = nil
		s.refillCultureDisplay()
	}
	s.Phase = PhaseEraStart
	s.CivChosen = 0
}

// GameOver 对局是否已结束。
func (s *State) GameOver() bool { return s.Phase == PhaseGameOver }
