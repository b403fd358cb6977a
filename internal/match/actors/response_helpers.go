package actors

import (
	"encoding/json"

	"github.com/asynkron/protoactor-go/actor"

	"GoldenAges/internal/match/entity"
	"GoldenAges/internal/shared/actor/messages"
	"GoldenAges/modules/kit/errx"
)

var (
	errNilRequest = errx.ErrReqParamERR.WithData("reason", "nil request")
	errNoHandler  = errx.ErrInternal.WithData("reason", "no handler for request")
	errNotOnline  = errx.ErrUnavailable.WithData("reason", "match actor not online")
)

// respondErr 回复给 RequestFuture，排名请求用 RankingsReply，其余用 MatchReply。
func respondErr(ctx actor.Context, err error) {
	if ctx.Sender() == nil {
		return
	}
	if _, ok := ctx.Message().(*messages.GetRankingsRequest); ok {
		ctx.Respond(&messages.RankingsReply{Err: err})
		return
	}
	ctx.Respond(&messages.MatchReply{Err: err})
}

func respondSnapshot(ctx actor.Context, m *entity.Match, uid int) {
	snap, err := buildSnapshot(m, uid)
	if err != nil {
		respondErr(ctx, err)
		return
	}
	ctx.Respond(&messages.MatchReply{Snapshot: snap})
}

func buildSnapshot(m *entity.Match, uid int) (*messages.MatchSnapshot, error) {
	view, seat := m.View(uid)
	raw, err := json.Marshal(view)
	if err != nil {
		return nil, errx.ErrInternal.WithCause(err)
	}
	s := m.State()
	return &messages.MatchSnapshot{
		MatchID:  int64(m.ID()),
		Version:  m.Revision(),
		Seats:    m.Seats(),
		Seat:     seat,
		Current:  s.Current,
		Era:      s.Era.String(),
		Phase:    string(s.Phase),
		GameOver: s.GameOver(),
		View:     raw,
	}, nil
}

func buildRankings(m *entity.Match) *messages.RankingsReply {
	rows := m.Standings()
	out := make([]messages.RankingRow, len(rows))
	for i, r := range rows {
		out[i] = messages.RankingRow{
			Rank:   r.Rank,
			Seat:   r.Seat,
			Uid:    r.Uid,
			Color:  r.Color,
			Score:  r.Score,
			Cities: r.Cities,
		}
	}
	return &messages.RankingsReply{
		MatchID:  int64(m.ID()),
		GameOver: m.GameOver(),
		Rankings: out,
	}
}
