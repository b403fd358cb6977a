package actor

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GoldenAges/internal/match/actors"
	"GoldenAges/internal/match/entity"
	"GoldenAges/internal/match/infra/persistence/memory"
	"GoldenAges/internal/match/rules"
	"GoldenAges/internal/shared/actor/messages"
	"GoldenAges/internal/shared/transport"
)

type fixture struct {
	rt      *Runtime
	repo    *memory.MatchRepository
	results *memory.ResultRepository
}

func newFixture(t *testing.T, idle time.Duration) *fixture {
	t.Helper()
	f := &fixture{
		repo:    memory.NewMatchRepository(),
		results: memory.NewResultRepository(),
	}
	f.rt = NewRuntime(nil, actors.Deps{
		Repo:        f.repo,
		Results:     f.results,
		FlushEvery:  20 * time.Millisecond,
		IdleTimeout: idle,
	}, 2*time.Second)
	t.Cleanup(f.rt.Shutdown)
	return f
}

func (f *fixture) create(t *testing.T, id int64) *messages.MatchSnapshot {
	t.Helper()
	snap, err := f.rt.CreateMatch(context.Background(), &messages.CreateMatchRequest{
		MatchBaseMessage: messages.MatchBaseMessage{Id: id},
		Seats:            []int{101, 102},
		Seed:             9,
	})
	require.NoError(t, err)
	return snap
}

func colorMove(id int64, uid int, color string) *messages.SubmitMoveRequest {
	return &messages.SubmitMoveRequest{
		MatchBaseMessage: messages.MatchBaseMessage{Id: id},
		Uid:              uid,
		Name:             rules.MoveSetPlayerColor,
		Args:             map[string]any{"color": color},
	}
}

func TestRuntime_创建对局返回旁观视图(t *testing.T) {
	f := newFixture(t, 0)
	snap := f.create(t, 1)

	assert.Equal(t, int64(1), snap.MatchID)
	assert.Equal(t, []int{101, 102}, snap.Seats)
	assert.Equal(t, entity.Spectator, snap.Seat)
	assert.Equal(t, string(rules.PhaseTilePlacement), snap.Phase)
	assert.Equal(t, uint64(0), snap.Version)

	var view map[string]any
	require.NoError(t, json.Unmarshal(snap.View, &view))
	assert.NotEmpty(t, view)

	require.Eventually(t, func() bool { return f.repo.Version(1) > 0 }, time.Second, 10*time.Millisecond)
}

func TestRuntime_重复创建(t *testing.T) {
	f := newFixture(t, 0)
	f.create(t, 2)
	_, err := f.rt.CreateMatch(context.Background(), &messages.CreateMatchRequest{
		MatchBaseMessage: messages.MatchBaseMessage{Id: 2},
		Seats:            []int{1, 2},
	})
	assert.ErrorIs(t, err, entity.ErrMatchExists)
}

func TestRuntime_非法座位(t *testing.T) {
	f := newFixture(t, 0)
	_, err := f.rt.CreateMatch(context.Background(), &messages.CreateMatchRequest{
		MatchBaseMessage: messages.MatchBaseMessage{Id: 3},
		Seats:            []int{1},
	})
	assert.ErrorIs(t, err, entity.ErrInvalidSeats)
}

func TestRuntime_提交与查询(t *testing.T) {
	f := newFixture(t, 0)
	f.create(t, 4)

	snap, err := f.rt.SubmitMove(context.Background(), colorMove(4, 102, "green"))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), snap.Version)
	assert.Equal(t, 1, snap.Seat)

	got, err := f.rt.GetMatch(context.Background(), &messages.GetMatchRequest{
		MatchBaseMessage: messages.MatchBaseMessage{Id: 4},
		Uid:              101,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, got.Seat)
	assert.Equal(t, uint64(1), got.Version)
}

func TestRuntime_拒绝与未入座(t *testing.T) {
	f := newFixture(t, 0)
	f.create(t, 5)

	_, err := f.rt.SubmitMove(context.Background(), colorMove(5, 999, "green"))
	assert.ErrorIs(t, err, entity.ErrSeatNotFound)

	_, err = f.rt.SubmitMove(context.Background(), colorMove(5, 101, "purple"))
	require.ErrorIs(t, err, rules.ErrInvalidMove)
	assert.Equal(t, "invalid color", rules.RejectReason(err))

	_, err = f.rt.SubmitMove(context.Background(), &messages.SubmitMoveRequest{
		MatchBaseMessage: messages.MatchBaseMessage{Id: 5},
		Uid:              101,
		Name:             "teleport",
	})
	assert.ErrorIs(t, err, rules.ErrInvalidMove)
}

func TestRuntime_对局不存在(t *testing.T) {
	f := newFixture(t, 0)
	_, err := f.rt.GetMatch(context.Background(), &messages.GetMatchRequest{
		MatchBaseMessage: messages.MatchBaseMessage{Id: 404},
	})
	assert.ErrorIs(t, err, entity.ErrMatchNotFound)

	_, err = f.rt.GetRankings(context.Background(), &messages.GetRankingsRequest{
		MatchBaseMessage: messages.MatchBaseMessage{Id: 405},
	})
	assert.ErrorIs(t, err, entity.ErrMatchNotFound)
}

func TestRuntime_排名(t *testing.T) {
	f := newFixture(t, 0)
	f.create(t, 6)

	reply, err := f.rt.GetRankings(context.Background(), &messages.GetRankingsRequest{
		MatchBaseMessage: messages.MatchBaseMessage{Id: 6},
	})
	require.NoError(t, err)
	assert.False(t, reply.GameOver)
	require.Len(t, reply.Rankings, 2)
	assert.Equal(t, 1, reply.Rankings[0].Rank)
}

func TestRuntime_空闲下线后重新加载(t *testing.T) {
	f := newFixture(t, 50*time.Millisecond)
	f.create(t, 7)
	_, err := f.rt.SubmitMove(context.Background(), colorMove(7, 101, "yellow"))
	require.NoError(t, err)

	// 等待 actor 空闲下线并把快照刷完
	time.Sleep(300 * time.Millisecond)

	got, err := f.rt.GetMatch(context.Background(), &messages.GetMatchRequest{
		MatchBaseMessage: messages.MatchBaseMessage{Id: 7},
		Uid:              101,
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), got.Version)

	var view struct {
		Players []struct {
			Color string `json:"color"`
		} `json:"players"`
	}
	require.NoError(t, json.Unmarshal(got.View, &view))
	require.Len(t, view.Players, 2)
	assert.Equal(t, "yellow", view.Players[0].Color)
}

func TestTimeoutFromContext_取较小值(t *testing.T) {
	r := &Runtime{timeout: time.Second}
	assert.Equal(t, time.Second, r.timeoutFromContext(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	assert.LessOrEqual(t, r.timeoutFromContext(ctx), 100*time.Millisecond)
}

func TestCodeFromError(t *testing.T) {
	assert.Equal(t, transport.OK, CodeFromError(nil))
	assert.Equal(t, transport.Timeout, CodeFromError(&RuntimeError{Code: transport.Timeout}))
	assert.Equal(t, transport.SystemError, CodeFromError(assert.AnError))
}
