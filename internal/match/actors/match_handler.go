package actors

import (
	"context"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"

	"GoldenAges/internal/match/rules"
	"GoldenAges/internal/shared/actor/messages"
	"GoldenAges/modules/kit/errx"
	"GoldenAges/modules/kit/logx"
	"GoldenAges/modules/kit/tracex"
)

type MatchHandler struct{}

var MH = &MatchHandler{}

// HandleCreateMatch 实体已由 ManagerActor 建好并在 Started 时落了首份快照。
func (h *MatchHandler) HandleCreateMatch(ctx actor.Context, p *MatchActor, req *messages.CreateMatchRequest) {
	p.log.WithContext(traceContext(req.MatchBaseMessage)).Info("match created",
		zap.Ints("seats", req.Seats),
		zap.Bool("expansion", req.Expansion),
	)
	respondSnapshot(ctx, p.entity, 0)
}

func (h *MatchHandler) HandleSubmitMove(ctx actor.Context, p *MatchActor, req *messages.SubmitMoveRequest) {
	goCtx := traceContext(req.MatchBaseMessage)

	mv, err := rules.DecodeMove(req.Name, req.Args)
	if err != nil {
		reportReject(goCtx, p, req, err)
		respondErr(ctx, err)
		return
	}

	wasOver := p.entity.GameOver()
	if err := p.entity.ApplyMove(req.Uid, mv, p.now()); err != nil {
		reportReject(goCtx, p, req, err)
		respondErr(ctx, err)
		return
	}

	if !wasOver && p.entity.GameOver() {
		// 终局立即落库，名次随快照一起写出
		p.log.WithContext(goCtx).Info("match over", zap.Uint64("revision", p.entity.Revision()))
		p.flush()
	}
	respondSnapshot(ctx, p.entity, req.Uid)
}

func (h *MatchHandler) HandleGetMatch(ctx actor.Context, p *MatchActor, req *messages.GetMatchRequest) {
	respondSnapshot(ctx, p.entity, req.Uid)
}

func (h *MatchHandler) HandleGetRankings(ctx actor.Context, p *MatchActor, req *messages.GetRankingsRequest) {
	ctx.Respond(buildRankings(p.entity))
}

func traceContext(base messages.MatchBaseMessage) context.Context {
	ctx := context.Background()
	if base.TraceID != "" {
		ctx = tracex.WithTraceID(ctx, base.TraceID)
	}
	return tracex.WithSpanID(ctx, "match-actor")
}

func reportReject(ctx context.Context, p *MatchActor, req *messages.SubmitMoveRequest, err error) {
	reason := rules.RejectReason(err)
	if reason == "" {
		if e, ok := errx.From(err); ok {
			reason = string(e.Code())
		}
	}
	logx.ReportBizWithLoggerContext(ctx, p.log,
		logx.NewBizLog("match.move", reason, err.Error()),
		zap.Int("uid", req.Uid),
		zap.String("move", req.Name),
	)
}
