package rules

// ActivationRef 指向一座建筑（建筑位下标）或一座奇迹（已建奇迹下标）。
type ActivationRef struct {
	Index  int  `mapstructure:"index"`
	Wonder bool `mapstructure:"wonder"`
}

// Activate 激活建筑或奇迹，每个时代每座一次。不同卡使用不同的参数：
//   - 研发类建筑：Tech，CN 塔时可带 Mirror
//   - 工厂：WorkerID
//   - 神庙：Rows 最多两行；大教堂、阿尔罕布拉宫：Rows[0]
//   - 兵营：ReplaceGlory、KeepDrawn
//   - 巴黎圣母院：Direction，0 为地图到广场，1 为广场到首都
//   - 泰姬陵：Reenable
type Activate struct {
	Index        int            `mapstructure:"index"`
	Wonder       bool           `mapstructure:"wonder"`
	Tech         *TechCell      `mapstructure:"tech"`
	Mirror       *int           `mapstructure:"mirror"`
	WorkerID     string         `mapstructure:"workerId"`
	Rows         []int          `mapstructure:"rows"`
	Direction    *int           `mapstructure:"direction"`
	ReplaceGlory *int           `mapstructure:"replaceGlory"`
	KeepDrawn    *int           `mapstructure:"keepDrawn"`
	Reenable     *ActivationRef `mapstructure:"reenable"`
}

func (Activate) Type() ActionType { return ActionActivate }

func (a Activate) resolve(s *State, seat int) error {
	var err error
	if a.Wonder {
		err = a.activateWonder(s, seat)
	} else {
		err = a.activateBuilding(s, seat)
	}
	if err != nil {
		return err
	}
	s.logf(seat, "Activated building or wonder")
	return nil
}

var techBuildingDiscount = map[string]int{
	BuildingLibrary:        2,
	BuildingUniversity:     3,
	BuildingObservatory:    5,
	BuildingLaboratory:     99,
	BuildingCultureLibrary: 2,
}

func (a Activate) activateBuilding(s *State, seat int) error {
	p := &s.Players[seat]
	if a.Index < 0 || a.Index >= BuildingSlots {
		return reject("invalid building slot")
	}
	card := p.Buildings[a.Index]
	if card == nil {
		return reject("no building in slot")
	}
	if p.ActivatedBuildings[a.Index] {
		return reject("building already activated this era")
	}
	p.ActivatedBuildings[a.Index] = true

	if discount, ok := techBuildingDiscount[card.Type]; ok {
		if a.Tech == nil {
			return reject("tech required")
		}
		return s.research(seat, *a.Tech, discount, a.Mirror)
	}

	switch card.Type {
	case BuildingMarket:
		p.Gold += s.workersInAgora()
	case BuildingGranary:
		for _, pc := range s.Pieces {
			if pc.Kind == PieceWorker && pc.Owner == seat && !pc.Exhausted && pc.onMap() {
				p.Gold++
			}
		}
	case BuildingBank:
		p.Gold += 4
	case BuildingMuseum:
		p.Gold += 6
	case BuildingFactory, BuildingCultureFactory:
		w := s.ownWorker(seat, a.WorkerID)
		if w == nil || !w.Exhausted || w.InAgora {
			return reject("no exhausted worker on the map")
		}
		w.Exhausted = false
	case BuildingTemple:
		if s.Culture == nil {
			return reject("expansion disabled")
		}
		for i, row := range a.Rows {
			if i >= 2 {
				break
			}
			if row >= 0 && row < CultureRows {
				s.advanceCultureRow(seat, row, false)
			}
		}
	case BuildingBarracks, BuildingCultureBarrack:
		return a.swapGlory(s, seat)
	case BuildingCathedral:
		return a.advanceIgnoring(s, seat)
	case BuildingMovieTheater:
		p.Score += 2 * s.workersInAgora()
	case BuildingCentral:
		n := s.cityCount(seat)
		if s.capitalOf(seat) != nil {
			n++
		}
		p.Gold += 2 * n
	default:
		// 城墙、军事基地只有常驻或即时效果
		return reject("building cannot be activated")
	}
	return nil
}

// swapGlory 抽两枚，留下一枚替换自己的一枚，其余两枚放回顶部。
func (a Activate) swapGlory(s *State, seat int) error {
	p := &s.Players[seat]
	if len(s.Glory) < 2 {
		return reject("glory supply too small")
	}
	if a.ReplaceGlory == nil || a.KeepDrawn == nil {
		return reject("glory choice required")
	}
	ri, ki := *a.ReplaceGlory, *a.KeepDrawn
	if ri < 0 || ri >= len(p.Glory) || ki < 0 || ki > 1 {
		return reject("invalid glory choice")
	}
	drawn := [2]int{s.popGlory(), s.popGlory()}
	kept, back := drawn[ki], drawn[1-ki]
	old := p.Glory[ri]
	p.Glory[ri] = kept
	s.Glory = append(s.Glory, back, old)
	s.LastGlory = &GloryDraw{Seat: seat, Value: kept}
	return nil
}

func (a Activate) advanceIgnoring(s *State, seat int) error {
	if s.Culture == nil {
		return reject("expansion disabled")
	}
	if len(a.Rows) == 0 || a.Rows[0] < 0 || a.Rows[0] >= CultureRows {
		return reject("invalid culture row")
	}
	if !s.advanceCultureRow(seat, a.Rows[0], true) {
		return reject("culture row complete")
	}
	return nil
}

func (a Activate) activateWonder(s *State, seat int) error {
	p := &s.Players[seat]
	if a.Index < 0 || a.Index >= len(p.Wonders) {
		return reject("invalid wonder index")
	}
	if p.ActivatedWonders[a.Index] {
		return reject("wonder already activated this era")
	}
	card := p.Wonders[a.Index]
	if !card.Activatable {
		return reject("wonder cannot be activated")
	}
	p.ActivatedWonders[a.Index] = true

	switch card.Type {
	case WonderColossus, WonderPyramids, WonderHangingGardens:
		p.Score++
	case WonderNotreDame:
		return s.moveExhaustedWorkers(seat, a.Direction)
	case WonderAlhambra:
		return a.advanceIgnoring(s, seat)
	case WonderTajMahal:
		ref := a.Reenable
		if ref == nil {
			return reject("nothing to re-enable")
		}
		if ref.Wonder {
			if ref.Index < 0 || ref.Index >= len(p.ActivatedWonders) || ref.Index == a.Index {
				return reject("invalid wonder to re-enable")
			}
			p.ActivatedWonders[ref.Index] = false
		} else {
			if ref.Index < 0 || ref.Index >= BuildingSlots {
				return reject("invalid building to re-enable")
			}
			p.ActivatedBuildings[ref.Index] = false
		}
	}
	return nil
}

func (s *State) moveExhaustedWorkers(seat int, direction *int) error {
	if direction == nil {
		return reject("direction required")
	}
	switch *direction {
	case 0:
		for i := range s.Pieces {
			w := &s.Pieces[i]
			if w.Kind == PieceWorker && w.Owner == seat && w.Exhausted && w.onMap() {
				w.InAgora = true
			}
		}
	case 1:
		capital := s.capitalOf(seat)
		if capital == nil {
			return reject("no capital")
		}
		for i := range s.Pieces {
			w := &s.Pieces[i]
			if w.Kind == PieceWorker && w.Owner == seat && w.InAgora {
				w.InAgora = false
				w.Cell = capital.Cell
			}
		}
	default:
		return reject("invalid direction")
	}
	return nil
}
