package rules

import "slices"

// AttackCost 进攻某一防守方的费用。入侵轨走完后无法再进攻，返回 false。
func AttackCost(s *State, attacker, defender int) (int, bool) {
	a := s.player(attacker)
	if a == nil || a.InvasionPos >= len(InvasionCosts) {
		return 0, false
	}
	cost := InvasionCosts[a.InvasionPos]
	if d := s.player(defender); d != nil {
		cost += 3 * d.walls()
	}
	if s.civType(attacker) == CivChina {
		cost = max(0, cost-2)
	}
	if a.hasGovernment(GovernmentCityState) {
		cost = max(0, cost-1)
	}
	return cost, true
}

// defendersAt 目的格上的敌方工人（不在广场）与敌方城市的所有者，按座位排序。
func (s *State) defendersAt(seat int, at Cell) []int {
	var out []int
	add := func(owner int) {
		if owner != seat && !slices.Contains(out, owner) {
			out = append(out, owner)
		}
	}
	for _, pc := range s.Pieces {
		if pc.Kind == PieceWorker && pc.onMap() && pc.Cell == at {
			add(pc.Owner)
		}
	}
	for _, c := range s.Cities {
		if c.Cell == at {
			add(c.Owner)
		}
	}
	slices.Sort(out)
	return out
}

// resolveAttack 对目的格上的所有防守方发起进攻。总费用付不起时整体失败，不产生任何改动。
func (s *State) resolveAttack(seat int, at Cell, defenders []int) error {
	p := &s.Players[seat]
	total := 0
	for _, d := range defenders {
		cost, ok := AttackCost(s, seat, d)
		if !ok {
			return reject("invasion track exhausted")
		}
		total += cost
	}
	if p.Gold < total {
		return reject("not enough gold to attack")
	}
	p.Gold -= total

	for i := range s.Players {
		if i == seat {
			continue
		}
		if s.Players[i].hasWonder(WonderGreatWall) {
			s.Players[i].Gold += 3
		}
		if s.Players[i].hasWonder(WonderUnitedNations) {
			s.Players[i].Gold += total
		}
	}
	for _, d := range defenders {
		if s.Players[d].hasGovernment(GovernmentDemocracy) {
			s.Players[d].Score += 4
		}
	}

	for i := range s.Pieces {
		w := &s.Pieces[i]
		if w.Kind != PieceWorker || w.Owner == seat || !w.onMap() || w.Cell != at {
			continue
		}
		if capital := s.capitalOf(w.Owner); capital != nil {
			w.Cell = capital.Cell
		}
		w.Exhausted = true
	}
	kept := s.Cities[:0]
	for _, c := range s.Cities {
		if c.Owner != seat && c.Cell == at {
			s.Players[c.Owner].Cubes += c.Cubes
			continue
		}
		kept = append(kept, c)
	}
	s.Cities = kept

	p.InvasionPos++
	s.drawAttackGlory(seat)

	switch s.civType(seat) {
	case CivFrance:
		p.Gold += 4
	case CivSonghai:
		s.advanceFirstCultureRow(seat)
	}
	return nil
}

// drawAttackGlory 中国或封建制度在供应足够时抽两枚留大的，小的放回底部。
func (s *State) drawAttackGlory(seat int) {
	p := &s.Players[seat]
	if (s.civType(seat) == CivChina || p.hasGovernment(GovernmentFeudalism)) && len(s.Glory) >= 2 {
		a := s.popGlory()
		b := s.popGlory()
		keep, back := max(a, b), min(a, b)
		p.Glory = append(p.Glory, keep)
		s.Glory = append([]int{back}, s.Glory...)
		s.LastGlory = &GloryDraw{Seat: seat, Value: keep}
		return
	}
	s.drawGlory(seat)
}

// drawGlory 从顶部抽一枚荣耀标记。
func (s *State) drawGlory(seat int) {
	if len(s.Glory) == 0 {
		return
	}
	v := s.popGlory()
	s.Players[seat].Glory = append(s.Players[seat].Glory, v)
	s.LastGlory = &GloryDraw{Seat: seat, Value: v}
}

func (s *State) popGlory() int {
	v := s.Glory[len(s.Glory)-1]
	s.Glory = s.Glory[:len(s.Glory)-1]
	return v
}
