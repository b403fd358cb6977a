package rules

// TechCost 研发费用：按等级的基础费用减折扣，巨石阵在他人已有该科技时再减 1，最低为 0。
func TechCost(s *State, seat int, tc TechCell, discount int) int {
	cost := max(0, TechCosts[tc.Col]-discount)
	if s.Players[seat].hasWonder(WonderStonehenge) && s.someoneElseHas(seat, tc) {
		cost = max(0, cost-1)
	}
	return cost
}

func (s *State) someoneElseHas(seat int, tc TechCell) bool {
	for i := range s.Players {
		if i != seat && s.Players[i].Techs[tc.Row][tc.Col] {
			return true
		}
	}
	return false
}

// research 付费研发的唯一入口。mirror 为 CN 塔借用计分的座位。
func (s *State) research(seat int, tc TechCell, discount int, mirror *int) error {
	p := &s.Players[seat]
	if !tc.valid() {
		return reject("invalid tech cell")
	}
	if p.Techs[tc.Row][tc.Col] {
		return reject("tech already researched")
	}
	if !p.Techs[tc.Row][tc.Col-1] {
		return reject("previous tech level required")
	}
	cost := TechCost(s, seat, tc, discount)
	if p.Gold < cost {
		return reject("not enough gold for tech")
	}
	p.Gold -= cost
	s.grantTech(seat, tc)
	s.applyImmediateTech(seat, tc, s.mirrorSeat(seat, tc, mirror))
	return nil
}

// researchFree 奇迹赠送的科技，同样要求前置等级。
func (s *State) researchFree(seat int, tc TechCell) error {
	p := &s.Players[seat]
	if !tc.valid() || p.Techs[tc.Row][tc.Col] || !p.Techs[tc.Row][tc.Col-1] {
		return reject("free tech not available")
	}
	s.grantTech(seat, tc)
	s.applyImmediateTech(seat, tc, seat)
	return nil
}

// grantTech 标记科技并取回压在该格上的方块。
func (s *State) grantTech(seat int, tc TechCell) {
	p := &s.Players[seat]
	p.Techs[tc.Row][tc.Col] = true
	key := tc.pledgeKey()
	if n := p.BoardCubes[key]; n > 0 {
		p.Cubes += n
	}
	delete(p.BoardCubes, key)
}

func (s *State) mirrorSeat(seat int, tc TechCell, mirror *int) int {
	if mirror == nil || tc.Col != TechCols-1 || !s.Players[seat].hasWonder(WonderCNTower) {
		return seat
	}
	if *mirror < 0 || *mirror >= len(s.Players) || *mirror == seat {
		return seat
	}
	return *mirror
}

// applyImmediateTech 只有最高等级有即时分，按 countFor 座位的资源或地图方块计算。
func (s *State) applyImmediateTech(seat int, tc TechCell, countFor int) {
	if tc.Col != TechCols-1 {
		return
	}
	p := &s.Players[seat]
	if tc.Row < len(immediateTechResource) {
		p.Score += s.countResources(countFor, immediateTechResource[tc.Row]) * immediateTechVP[tc.Row]
		return
	}
	p.Score += s.cubesOnMap(countFor)
}
