package entity

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GoldenAges/internal/match/rules"
)

var t0 = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func newTestMatch(t *testing.T) *Match {
	t.Helper()
	m, err := NewMatch(42, []int{1001, 1002}, rules.Options{Seed: 7}, t0)
	require.NoError(t, err)
	return m
}

func TestNewMatch_座位校验(t *testing.T) {
	cases := map[string][]int{
		"人数不足": {1001},
		"人数过多": {1, 2, 3, 4, 5, 6},
		"非法编号": {1001, 0},
		"编号重复": {1001, 1001},
	}
	for name, seats := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewMatch(1, seats, rules.Options{}, t0)
			assert.ErrorIs(t, err, ErrInvalidSeats)
		})
	}
}

func TestNewMatch_人数取自座位表(t *testing.T) {
	m, err := NewMatch(1, []int{7, 8, 9}, rules.Options{Players: 5}, t0)
	require.NoError(t, err)
	assert.Len(t, m.State().Players, 3)
	assert.True(t, m.Dirty())
	assert.Equal(t, uint64(0), m.Revision())
}

func TestApplyMove_不在座位上(t *testing.T) {
	m := newTestMatch(t)
	err := m.ApplyMove(999, rules.SetPlayerColor{Color: rules.ColorGreen}, t0)
	assert.ErrorIs(t, err, ErrSeatNotFound)
	assert.Equal(t, uint64(0), m.Revision())
}

func TestApplyMove_成功推进版本(t *testing.T) {
	m := newTestMatch(t)
	m.ClearDirty()
	later := t0.Add(time.Minute)

	require.NoError(t, m.ApplyMove(1002, rules.SetPlayerColor{Color: rules.ColorGreen}, later))
	assert.Equal(t, uint64(1), m.Revision())
	assert.True(t, m.Dirty())
	assert.Equal(t, later, m.UpdatedAt())
	assert.Equal(t, rules.ColorGreen, m.State().Players[1].Color)
}

func TestApplyMove_规则拒绝时不变(t *testing.T) {
	m := newTestMatch(t)
	m.ClearDirty()
	before := m.State()

	err := m.ApplyMove(1002, rules.PlaceTile{AnchorRow: 0, AnchorCol: 4}, t0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, rules.ErrInvalidMove))
	assert.Equal(t, "not your turn", rules.RejectReason(err))
	assert.Same(t, before, m.State())
	assert.False(t, m.Dirty())
}

func TestView_旁观者与座位(t *testing.T) {
	m := newTestMatch(t)
	_, seat := m.View(1002)
	assert.Equal(t, 1, seat)
	_, seat = m.View(0)
	assert.Equal(t, Spectator, seat)
}

func TestResults_未结束返回错误(t *testing.T) {
	m := newTestMatch(t)
	_, err := m.Results()
	assert.ErrorIs(t, err, ErrMatchNotOver)
	assert.Len(t, m.Standings(), 2)
}

func TestBuildPersistSnapshot_名次只附带一次(t *testing.T) {
	m := newTestMatch(t)
	m.state.Players[1].Score = 9
	m.state.Phase = rules.PhaseGameOver

	s, ok := m.BuildPersistSnapshot(1)
	require.True(t, ok)
	require.Len(t, s.Results, 2)
	assert.Equal(t, 1002, s.Results[0].Uid)
	assert.Equal(t, 1, s.Results[0].Rank)
	assert.Equal(t, MatchID(42), s.Results[0].MatchID)
	assert.True(t, s.ResultsSaved)
	assert.NotSame(t, m.State(), s.State)

	m.ClearDirty()
	_, ok = m.BuildPersistSnapshot(2)
	assert.False(t, ok, "未修改时不生成快照")

	m.dirty = true
	s, ok = m.BuildPersistSnapshot(3)
	require.True(t, ok)
	assert.Empty(t, s.Results)
	assert.True(t, s.ResultsSaved)
}

func TestHydrate_还原版本与修订号(t *testing.T) {
	m := newTestMatch(t)
	require.NoError(t, m.ApplyMove(1001, rules.SetPlayerColor{Color: rules.ColorGreen}, t0))
	s, ok := m.BuildPersistSnapshot(5)
	require.True(t, ok)

	h := Hydrate(s)
	assert.Equal(t, uint64(5), h.LoadedVersion())
	assert.Equal(t, uint64(1), h.Revision())
	assert.Equal(t, []int{1001, 1002}, h.Seats())
	assert.False(t, h.Dirty())
	seat, ok := h.SeatOf(1002)
	assert.True(t, ok)
	assert.Equal(t, 1, seat)
}
