package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// eraIIStart 一时代全员进入黄金时代，停在二时代选文明阶段。
func eraIIStart(t *testing.T) *State {
	t.Helper()
	s := actionState(t)
	exhaustAll(s)
	s = mustApply(t, s, 0, PerformAction{Action: StartGoldenAge{JudgementID: s.Judgements[0].ID}})
	s = mustApply(t, s, 1, PerformAction{Action: StartGoldenAge{}})
	require.Equal(t, PhaseEraStart, s.Phase)
	return s
}

func hasCivFor(p Player, era Era) bool {
	for _, c := range p.Hand {
		if c.Kind == KindCivilisation && c.Era == era {
			return true
		}
	}
	return false
}

func TestChooseCivCard_全员选完进入放置阶段(t *testing.T) {
	s := eraIIStart(t)

	first := s.Current
	s = mustApply(t, s, first, ChooseCivCard{})
	require.NotNil(t, s.Players[first].Civ)
	assert.Equal(t, EraII, s.Players[first].Civ.Era)
	assert.False(t, hasCivFor(s.Players[first], EraII))
	assert.Equal(t, PhaseEraStart, s.Phase)

	second := s.Current
	require.NotEqual(t, first, second)
	_, err := Apply(s, first, ChooseCivCard{})
	assert.Equal(t, "not your turn", RejectReason(err))

	s = mustApply(t, s, second, ChooseCivCard{})
	assert.Equal(t, PhaseTilePlacement, s.Phase)
	assert.Equal(t, 2, s.CivChosen)
	assert.Equal(t, s.lowestCivSeat(), s.FirstPlayer)
	assert.Equal(t, s.FirstPlayer, s.Current)
}

func TestChooseCivCard_保留旧文明(t *testing.T) {
	s := eraIIStart(t)
	seat := s.Current
	old := Card{ID: "civ-I-old", Kind: KindCivilisation, Era: EraI, Type: CivRome, Number: 6}
	s.Players[seat].Civ = &old
	gold := s.Players[seat].Gold

	s = mustApply(t, s, seat, ChooseCivCard{KeepOld: true})
	assert.Equal(t, old.ID, s.Players[seat].Civ.ID)
	assert.Equal(t, gold, s.Players[seat].Gold, "保留旧文明不再结算效果")
	assert.False(t, hasCivFor(s.Players[seat], EraII), "本时代的牌照样被弃掉")
}

func TestChooseCivCard_阶段不对被拒绝(t *testing.T) {
	s := actionState(t)
	_, err := Apply(s, 0, ChooseCivCard{})
	assert.ErrorIs(t, err, ErrInvalidMove)
	assert.Contains(t, RejectReason(err), "wrong phase")
}

func TestIndia_五级科技不结算即时分(t *testing.T) {
	s := actionState(t)
	s.Controlled[Cell{Row: 2, Col: 5}.Key()] = 0
	row := 1
	tc := TechCell{Row: row, Col: TechCols - 1}

	// 同样的科技走普通路径会拿到即时分
	ref := s.Clone()
	ref.applyImmediateTech(0, tc, 0)
	require.Positive(t, ref.Players[0].Score)

	s.applyCivEffect(0, Card{Kind: KindCivilisation, Type: CivIndia}, &row)
	assert.True(t, s.Players[0].Techs[row][TechCols-1])
	assert.Zero(t, s.Players[0].Score)
}

func TestFoundCity_建筑学需要两个方块(t *testing.T) {
	s := actionState(t)
	s.Players[0].Techs[2][1] = true
	s.Players[0].Techs[2][2] = true
	s.Players[0].Cubes = 1
	before := s.Clone()

	got, err := Apply(s, 0, PerformAction{Action: Explorer{WorkerID: "worker-0-0", Row: 2, Col: 5, FoundCity: true}})
	require.ErrorIs(t, err, ErrInvalidMove)
	assert.Equal(t, "not enough cubes", RejectReason(err))
	assert.Same(t, s, got)
	assert.Equal(t, before, s.Clone())
	assert.Empty(t, s.Cities)
}

func TestFoundCity_方块从供应移到地图(t *testing.T) {
	s := actionState(t)
	s = mustApply(t, s, 0, PerformAction{Action: Explorer{WorkerID: "worker-0-0", Row: 2, Col: 5, FoundCity: true}})

	require.Len(t, s.Cities, 1)
	assert.Equal(t, City{Owner: 0, Cell: Cell{Row: 2, Col: 5}, Cubes: 1}, s.Cities[0])
	assert.Equal(t, StartingCubes-1, s.Players[0].Cubes)
	assert.Equal(t, TotalCubes, s.CubeTotal(0))

	// 同一格不能再建
	s.Current = 0
	s.pieceByID("worker-0-1").Cell = Cell{Row: 2, Col: 4}
	_, err := Apply(s, 0, PerformAction{Action: Explorer{WorkerID: "worker-0-1", Row: 2, Col: 5, FoundCity: true}})
	assert.Equal(t, "cell already has a capital or city", RejectReason(err))
}
