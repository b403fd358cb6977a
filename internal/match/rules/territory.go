package rules

import "fmt"

func (s *State) spawnStartingPieces(seat int, at Cell) {
	s.Pieces = append(s.Pieces, Piece{
		ID:    fmt.Sprintf("capital-%d", seat),
		Kind:  PieceCapital,
		Owner: seat,
		Cell:  at,
	})
	for w := 0; w < StartingWorkers; w++ {
		s.Pieces = append(s.Pieces, Piece{
			ID:    fmt.Sprintf("worker-%d-%d", seat, w),
			Kind:  PieceWorker,
			Owner: seat,
			Cell:  at,
		})
	}
}

func (s *State) pieceByID(id string) *Piece {
	for i := range s.Pieces {
		if s.Pieces[i].ID == id {
			return &s.Pieces[i]
		}
	}
	return nil
}

// ownWorker 取该玩家的工人，不存在或不属于该玩家时返回 nil。
func (s *State) ownWorker(seat int, id string) *Piece {
	w := s.pieceByID(id)
	if w == nil || w.Kind != PieceWorker || w.Owner != seat {
		return nil
	}
	return w
}

// relocateCapitalsOn 被新板块盖住的首都挪到第一个未被盖住的相邻格。
func (s *State) relocateCapitalsOn(covered []Cell) {
	set := make(map[Cell]struct{}, len(covered))
	for _, c := range covered {
		set[c] = struct{}{}
	}
	for i := range s.Pieces {
		pc := &s.Pieces[i]
		if pc.Kind != PieceCapital {
			continue
		}
		if _, hit := set[pc.Cell]; !hit {
			continue
		}
		for _, d := range orthogonal {
			n := pc.Cell.add(d)
			if _, hit := set[n]; hit || !inBounds(n) {
				continue
			}
			pc.Cell = n
			break
		}
	}
}

// returnWorkersOn 被盖住格子上的工人回到首都。
func (s *State) returnWorkersOn(covered []Cell) {
	set := make(map[Cell]struct{}, len(covered))
	for _, c := range covered {
		set[c] = struct{}{}
	}
	for i := range s.Pieces {
		w := &s.Pieces[i]
		if w.Kind != PieceWorker || w.InAgora {
			continue
		}
		if _, hit := set[w.Cell]; !hit {
			continue
		}
		if capital := s.capitalOf(w.Owner); capital != nil {
			w.Cell = capital.Cell
		}
	}
}

// relocateCapital 首都连同同格的工人一起迁移，并尝试占领目的格。
func (s *State) relocateCapital(seat int, dest Cell) {
	capital := s.capitalOf(seat)
	if capital == nil {
		return
	}
	src := capital.Cell
	capital.Cell = dest
	for i := range s.Pieces {
		w := &s.Pieces[i]
		if w.Kind == PieceWorker && w.Owner == seat && !w.InAgora && w.Cell == src {
			w.Cell = dest
		}
	}
	s.tryTakeControl(seat, dest)
}

func (s *State) depositResources(cells []Cell, tmpl *TileTemplate) {
	for i, c := range cells {
		if i >= len(tmpl.Resources) || len(tmpl.Resources[i]) == 0 {
			delete(s.Resources, c.Key())
			continue
		}
		s.Resources[c.Key()] = append([]Resource(nil), tmpl.Resources[i]...)
	}
}

// tryTakeControl 首次进入带资源的格子即永久占领，并结算占领金币。已有归属时什么都不做。
func (s *State) tryTakeControl(seat int, c Cell) {
	key := c.Key()
	res := s.Resources[key]
	if len(res) == 0 {
		return
	}
	if _, taken := s.Controlled[key]; taken {
		return
	}
	s.Controlled[key] = seat
	p := &s.Players[seat]
	civ := s.civType(seat)

	for _, r := range res {
		switch r {
		case ResourceGame:
			if p.Techs[1][0] {
				p.Gold++
			}
			if p.hasProgress(ProgressAnimalHusbandry) {
				p.Gold++
			}
			if civ == CivIroquois {
				p.Gold += 2
				s.advanceFirstCultureRow(seat)
			}
		case ResourceWheat:
			switch {
			case p.Techs[1][3]:
				p.Gold += 3
			case p.Techs[1][1]:
				p.Gold++
			}
			if civ == CivInca {
				p.Gold += 2
			}
			p.Gold += p.progressCount(ProgressIrrigation, ProgressCropRotation, ProgressMechanizedAgriculture)
		case ResourceRock:
			switch {
			case p.Techs[2][3]:
				p.Gold += 3
			case p.Techs[2][1]:
				p.Gold++
			}
			if civ == CivMongolia {
				p.Gold += 2
			}
			p.Gold += p.progressCount(ProgressBronzeWorking, ProgressIronWorking, ProgressCombustion)
		case ResourceGem:
			switch {
			case p.Techs[3][4]:
				p.Gold += 4
			case p.Techs[3][2]:
				p.Gold += 2
			}
			switch civ {
			case CivAztec:
				p.Gold += 2
			case CivSpain:
				p.Gold += 3
			case CivBrazil:
				p.Gold += 4
			case CivSouthAfrica:
				s.advanceFirstCultureRow(seat)
			}
			p.Gold += p.progressCount(ProgressAlchemy, ProgressChemistry)
		}
	}
}

func (p *Player) progressCount(types ...string) int {
	n := 0
	for _, t := range types {
		if p.hasProgress(t) {
			n++
		}
	}
	return n
}

// Controller 返回占领该格资源的座位。
func (s *State) Controller(c Cell) (int, bool) {
	seat, ok := s.Controlled[c.Key()]
	return seat, ok
}

// foundCity 在工人所在格建城。需要有板块（荷兰除外），格内不能已有首都或城市。
func (s *State) foundCity(seat int, at Cell) error {
	p := &s.Players[seat]
	civ := s.civType(seat)
	if _, onTile := s.Tiles.TileAt(at); !onTile && civ != CivDutch {
		return reject("cities must be founded on a tile")
	}
	if s.capitalAt(at) != nil || s.cityAt(at) != nil {
		return reject("cell already has a capital or city")
	}
	cost := 1
	if p.Techs[2][2] {
		cost = 2
	}
	if p.Cubes < cost {
		return reject("not enough cubes")
	}
	p.Cubes -= cost
	s.Cities = append(s.Cities, City{Owner: seat, Cell: at, Cubes: cost})
	for i := 0; i < cost; i++ {
		switch {
		case p.Techs[3][3]:
			p.Gold += 2
		case p.Techs[3][0]:
			p.Gold++
		}
	}
	if p.hasWonder(WonderHagiaSophia) {
		p.Gold += 2
	}
	if civ == CivDutch {
		p.Gold += 2
	}

	if s.Culture != nil && p.hasCultTokens() {
		n := 1
		if p.hasGovernment(GovernmentTotalitarianism) {
			n = 4
		}
		s.PendingSpread = &PendingCultSpread{City: at, Remaining: n}
	}
	return nil
}

// MovementRange 移动科技路线的最高等级决定基础范围，再叠加进展卡与灯塔加成。Unlimited 表示不限。
func MovementRange(p *Player) int {
	highest := 0
	for col := 0; col < TechCols; col++ {
		if p.Techs[0][col] {
			highest = col
		}
	}
	base := movementRanges[highest]
	if base == Unlimited {
		return Unlimited
	}
	bonus := 0
	if p.hasProgress(ProgressCartography) {
		bonus++
	}
	if p.hasProgress(ProgressNavigation) {
		bonus += 2
	}
	if p.hasWonder(WonderLighthouse) {
		bonus++
	}
	return base + bonus
}

// ReachableCells 在棋盘内按正交步数做 BFS，不含起点。
func ReachableCells(from Cell, rng int) []Cell {
	var out []Cell
	if rng == Unlimited {
		for r := 0; r < BoardRows; r++ {
			for c := 0; c < BoardCols; c++ {
				if cell := (Cell{Row: r, Col: c}); cell != from {
					out = append(out, cell)
				}
			}
		}
		return out
	}
	visited := map[Cell]bool{from: true}
	frontier := []Cell{from}
	for step := 0; step < rng; step++ {
		var next []Cell
		for _, c := range frontier {
			for _, d := range orthogonal {
				n := c.add(d)
				if !inBounds(n) || visited[n] {
					continue
				}
				visited[n] = true
				next = append(next, n)
				out = append(out, n)
			}
		}
		frontier = next
	}
	return out
}

func canReach(from, to Cell, rng int) bool {
	if !inBounds(to) || from == to {
		return false
	}
	if rng == Unlimited {
		return true
	}
	return from.manhattan(to) <= rng
}
