package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	progressCard = Card{ID: "culture-I-progress", Kind: KindCulture, Era: EraI, Type: ProgressCartography, Subtype: SubtypeProgress}
	cultCard     = Card{ID: "culture-I-cult", Kind: KindCulture, Era: EraI, Type: "cult", Subtype: SubtypeCult, CultSpots: 2, CultSpotVP: 1}
)

func TestCulture_未开扩展被拒绝(t *testing.T) {
	s := actionState(t)
	_, err := Apply(s, 0, PerformAction{Action: Culture{Row: 4}})
	assert.ErrorIs(t, err, ErrInvalidMove)
	assert.Equal(t, "expansion disabled", RejectReason(err))
}

func TestCulture_要求不满足被拒绝(t *testing.T) {
	s := actionStateWith(t, true)
	s.Players[0].Gold = 5
	_, err := Apply(s, 0, PerformAction{Action: Culture{Row: 4}})
	assert.ErrorIs(t, err, ErrInvalidMove)
	assert.Equal(t, "culture requirement not met", RejectReason(err))
}

func TestCulture_前进后先选卡再换人(t *testing.T) {
	s := actionStateWith(t, true)
	s.Players[0].Gold = 6
	s.Culture.Display = []Card{progressCard, cultCard}

	s = mustApply(t, s, 0, PerformAction{Action: Culture{Row: 4}})
	assert.Equal(t, 1, s.Culture.Positions[0][4])
	assert.Equal(t, 1, s.Players[0].CultureScore)
	assert.Equal(t, 1, s.PendingPicks)
	assert.Equal(t, 0, s.Current, "选卡前回合不移交")

	_, err := Apply(s, 1, PickCultureCard{Index: 0})
	assert.Equal(t, "not your turn", RejectReason(err))
	_, err = Apply(s, 0, PerformAction{Action: Culture{Row: 4}})
	assert.Equal(t, "pending culture step", RejectReason(err))

	s = mustApply(t, s, 0, PickCultureCard{Index: 0})
	require.Len(t, s.Players[0].Progress, 1)
	assert.Equal(t, progressCard.ID, s.Players[0].Progress[0].ID)
	assert.Zero(t, s.PendingPicks)
	assert.Equal(t, 1, s.Current)
	assert.NotContains(t, s.Culture.Display, progressCard)
}

func TestFillCultCard_数量必须等于空位与供应的较小值(t *testing.T) {
	s := actionStateWith(t, true)
	s.Culture.Display = []Card{cultCard}
	s.PendingPicks = 1

	s = mustApply(t, s, 0, PickCultureCard{Index: 0})
	require.NotNil(t, s.PendingFill)
	assert.Equal(t, 2, s.PendingFill.Spots)
	assert.Equal(t, 0, s.Current)

	_, err := Apply(s, 0, FillCultCard{TokenTypes: []int{0}})
	assert.Equal(t, "wrong number of cult tokens", RejectReason(err))
	_, err = Apply(s, 0, FillCultCard{TokenTypes: []int{0, CultTokenTypes}})
	assert.Equal(t, "cult token unavailable", RejectReason(err))

	s = mustApply(t, s, 0, FillCultCard{TokenTypes: []int{0, 0}})
	assert.Nil(t, s.PendingFill)
	assert.Equal(t, CultTokensPerType-2, s.Culture.Supply[0])
	assert.Equal(t, []int{0, 0}, s.Players[0].Cults[0].TokenTypes)
	assert.Equal(t, 1, s.Current)
}

func TestFillCultCard_供应不足只放剩余(t *testing.T) {
	s := actionStateWith(t, true)
	s.Culture.Supply = [CultTokenTypes]int{1}
	s.Players[0].Cults = []CultCard{{Card: cultCard, Remaining: 2}}
	s.PendingFill = &PendingCultFill{CardIndex: 0, Spots: 2}

	s = mustApply(t, s, 0, FillCultCard{TokenTypes: []int{0}})
	assert.Equal(t, 1, s.Players[0].Cults[0].Remaining)
	assert.Zero(t, s.Culture.Supply[0])
}

// cultSpreadState 0 号持有带 0、1 两种标记的信仰卡，在 (2,5) 新建城市后等待传播。
func cultSpreadState(t *testing.T) *State {
	t.Helper()
	s := actionStateWith(t, true)
	s.Players[0].Cults = []CultCard{{Card: cultCard, Remaining: 2, TokenTypes: []int{0, 1}}}
	s = mustApply(t, s, 0, PerformAction{Action: Explorer{WorkerID: "worker-0-0", Row: 2, Col: 5, FoundCity: true}})
	require.NotNil(t, s.PendingSpread)
	require.Equal(t, 0, s.Current)
	return s
}

func TestSpreadCultToken_传播到相邻首都(t *testing.T) {
	s := cultSpreadState(t)

	_, err := Apply(s, 0, SpreadCultToken{CultCardIndex: 0, TokenType: 1, Row: 2, Col: 6})
	assert.Equal(t, "destination has no city or capital", RejectReason(err))
	_, err = Apply(s, 0, SpreadCultToken{CultCardIndex: 0, TokenType: 5, Row: 3, Col: 5})
	assert.Equal(t, "token type not on card", RejectReason(err))
	_, err = Apply(s, 0, SpreadCultToken{CultCardIndex: 0, TokenType: 1, Row: 0, Col: 5})
	assert.Equal(t, "destination not adjacent to the new city", RejectReason(err))

	s = mustApply(t, s, 0, SpreadCultToken{CultCardIndex: 0, TokenType: 1, Row: 3, Col: 5})
	assert.Equal(t, []int{1}, s.Culture.Tokens[Cell{Row: 3, Col: 5}.Key()])
	assert.Equal(t, []int{0}, s.Players[0].Cults[0].TokenTypes)
	assert.Nil(t, s.PendingSpread)
	assert.Equal(t, 1, s.Current)
}

func TestSkipCultSpread_放弃传播(t *testing.T) {
	s := cultSpreadState(t)
	s = mustApply(t, s, 0, SkipCultSpread{})
	assert.Nil(t, s.PendingSpread)
	assert.Empty(t, s.Culture.Tokens)
	assert.Equal(t, 1, s.Current)

	_, err := Apply(s, 1, SkipCultSpread{})
	assert.Equal(t, "no cult spread pending", RejectReason(err))
}

func TestCultureGrid_第零列无要求(t *testing.T) {
	_, ok := CultureGrid(0, 0)
	assert.False(t, ok)
	req, ok := CultureGrid(4, 3)
	require.True(t, ok)
	assert.Equal(t, CultureRequirement{Kind: "gold", Value: 18}, req)
}

var discobolus = Card{ID: "culture-I-discobolus", Kind: KindCulture, Era: EraI, Type: MasterpieceDiscobolus, Subtype: SubtypeMasterpiece, VP: 2, Gold: 1}

// controlStartCells 0 号占领起始板块上一格猎物、一格小麦。
func controlStartCells(s *State) {
	s.Controlled[Cell{Row: 2, Col: 4}.Key()] = 0
	s.Controlled[Cell{Row: 2, Col: 5}.Key()] = 0
}

func TestPickCultureCard_展示区的杰作只给分(t *testing.T) {
	s := actionStateWith(t, true)
	s.Culture.Display = []Card{discobolus}
	s.PendingPicks = 1
	controlStartCells(s)
	require.Equal(t, 2, s.uniqueResources(0))
	gold, score := s.Players[0].Gold, s.Players[0].Score

	s = mustApply(t, s, 0, PickCultureCard{Index: 0})
	require.Len(t, s.Players[0].Masterpieces, 1)
	assert.Equal(t, discobolus.ID, s.Players[0].Masterpieces[0].ID)
	assert.Equal(t, score+discobolus.VP, s.Players[0].Score)
	assert.Equal(t, gold, s.Players[0].Gold)
}

func TestArtist_拿杰作结算金币与特效(t *testing.T) {
	s := actionStateWith(t, true)
	s.Culture.Masterpieces = []Card{discobolus}
	controlStartCells(s)
	uniq := s.uniqueResources(0)
	require.Equal(t, 2, uniq)
	gold, score := s.Players[0].Gold, s.Players[0].Score

	idx := 0
	s = mustApply(t, s, 0, PerformAction{Action: Artist{WorkerID: "worker-0-0", Masterpiece: &idx}})
	require.Len(t, s.Players[0].Masterpieces, 1)
	assert.Equal(t, score+discobolus.VP, s.Players[0].Score)
	assert.Equal(t, gold+discobolus.Gold+2*uniq, s.Players[0].Gold)
	assert.Empty(t, s.Culture.Masterpieces)
}
