package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"GoldenAges/internal/match/app/port"
	"GoldenAges/internal/match/entity"
	"GoldenAges/internal/shared/actor/messages"
	"GoldenAges/internal/shared/security"
	"GoldenAges/internal/shared/session"
	"GoldenAges/internal/shared/utils"
	"GoldenAges/modules/kit/errx"
	"GoldenAges/modules/kit/logx"
)

// UpdateMsg 对局状态变化后推给其他在座玩家的通知名，客户端收到后自行拉取视图。
const UpdateMsg = "match.update"

const defaultHistoryLimit = 20

type MatchRuntime interface {
	CreateMatch(ctx context.Context, req *messages.CreateMatchRequest) (*messages.MatchSnapshot, error)
	SubmitMove(ctx context.Context, req *messages.SubmitMoveRequest) (*messages.MatchSnapshot, error)
	GetMatch(ctx context.Context, req *messages.GetMatchRequest) (*messages.MatchSnapshot, error)
	GetRankings(ctx context.Context, req *messages.GetRankingsRequest) (*messages.RankingsReply, error)
}

type CreateReq struct {
	Seats     []int  `json:"seats"`
	Expansion *bool  `json:"expansion"`
	Seed      uint64 `json:"seed"`
}

type SeatToken struct {
	Seat  int    `json:"seat"`
	Uid   int    `json:"uid"`
	Token string `json:"token"`
}

type CreateResp struct {
	Match  *messages.MatchSnapshot `json:"match"`
	Tokens []SeatToken             `json:"tokens"`
}

type MoveReq struct {
	MatchID int64          `json:"matchId,string"`
	Name    string         `json:"name"`
	Args    map[string]any `json:"args"`
}

type UpdateNotice struct {
	MatchID  int64  `json:"matchId,string"`
	Version  uint64 `json:"version"`
	Current  int    `json:"current"`
	Phase    string `json:"phase"`
	GameOver bool   `json:"gameOver"`
	By       int    `json:"by"`
}

type HistoryRow struct {
	MatchID    int64     `json:"matchId,string"`
	Rank       int       `json:"rank"`
	Seat       int       `json:"seat"`
	Color      string    `json:"color"`
	Score      int       `json:"score"`
	Cities     int       `json:"cities"`
	FinishedAt time.Time `json:"finishedAt"`
}

type Option func(*MatchService)

func WithDefaultExpansion(on bool) Option {
	return func(s *MatchService) { s.defaultExpansion = on }
}

// WithIDGenerator 替换对局 id 生成器。
func WithIDGenerator(next func() (int64, error)) Option {
	return func(s *MatchService) {
		if next != nil {
			s.nextID = next
		}
	}
}

func WithResults(r port.ResultRepository) Option {
	return func(s *MatchService) { s.results = r }
}

func WithLogger(l logx.Logger) Option {
	return func(s *MatchService) {
		if l != nil {
			s.log = l
		}
	}
}

type MatchService struct {
	runtime          MatchRuntime
	sessions         session.Manager
	results          port.ResultRepository
	log              logx.Logger
	defaultExpansion bool
	nextID           func() (int64, error)
}

func NewMatchService(rt MatchRuntime, sessions session.Manager, opts ...Option) *MatchService {
	s := &MatchService{
		runtime:  rt,
		sessions: sessions,
		log:      logx.Nop(),
		nextID:   utils.NextMatchID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create 分配对局 id 并给每个座位签发 token。seed 为 0 时用对局 id。
func (s *MatchService) Create(ctx context.Context, req CreateReq) (*CreateResp, error) {
	if len(req.Seats) == 0 {
		return nil, entity.ErrInvalidSeats
	}
	id, err := s.nextID()
	if err != nil {
		return nil, errx.ErrInternal.WithCause(err)
	}
	expansion := s.defaultExpansion
	if req.Expansion != nil {
		expansion = *req.Expansion
	}
	seed := req.Seed
	if seed == 0 {
		seed = uint64(id)
	}

	snap, err := s.runtime.CreateMatch(ctx, &messages.CreateMatchRequest{
		MatchBaseMessage: messages.MatchBaseMessage{Id: id},
		Seats:            req.Seats,
		Expansion:        expansion,
		Seed:             seed,
	})
	if err != nil {
		return nil, err
	}

	tokens := make([]SeatToken, 0, len(req.Seats))
	for seat, uid := range req.Seats {
		token, err := security.IssueSeatToken(uid, id, seat)
		if err != nil {
			return nil, errx.ErrInternal.WithCause(err)
		}
		tokens = append(tokens, SeatToken{Seat: seat, Uid: uid, Token: token})
	}

	s.log.WithContext(ctx).Info("match created",
		zap.Int64("match_id", id),
		zap.Ints("seats", req.Seats),
		zap.Bool("expansion", expansion),
	)
	return &CreateResp{Match: snap, Tokens: tokens}, nil
}

// Submit 提交成功后通知同局其他在线玩家。
func (s *MatchService) Submit(ctx context.Context, uid int, req MoveReq) (*messages.MatchSnapshot, error) {
	if req.MatchID == 0 || req.Name == "" {
		return nil, errx.ErrReqParamERR
	}
	snap, err := s.runtime.SubmitMove(ctx, &messages.SubmitMoveRequest{
		MatchBaseMessage: messages.MatchBaseMessage{Id: req.MatchID},
		Uid:              uid,
		Name:             req.Name,
		Args:             req.Args,
	})
	if err != nil {
		return nil, err
	}
	s.notify(snap, uid)
	return snap, nil
}

func (s *MatchService) Get(ctx context.Context, uid int, matchID int64) (*messages.MatchSnapshot, error) {
	if matchID == 0 {
		return nil, errx.ErrReqParamERR
	}
	return s.runtime.GetMatch(ctx, &messages.GetMatchRequest{
		MatchBaseMessage: messages.MatchBaseMessage{Id: matchID},
		Uid:              uid,
	})
}

func (s *MatchService) Rankings(ctx context.Context, matchID int64) (*messages.RankingsReply, error) {
	if matchID == 0 {
		return nil, errx.ErrReqParamERR
	}
	return s.runtime.GetRankings(ctx, &messages.GetRankingsRequest{
		MatchBaseMessage: messages.MatchBaseMessage{Id: matchID},
	})
}

// History 玩家已结束对局的名次，按结束时间倒序。
func (s *MatchService) History(ctx context.Context, uid int, limit int) ([]HistoryRow, error) {
	if uid <= 0 {
		return nil, errx.ErrReqParamERR
	}
	if s.results == nil {
		return []HistoryRow{}, nil
	}
	if limit <= 0 || limit > 100 {
		limit = defaultHistoryLimit
	}
	rows, err := s.results.ListByUID(ctx, uid, limit)
	if err != nil {
		return nil, errx.ErrUnavailable.WithCause(err)
	}
	out := make([]HistoryRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, HistoryRow{
			MatchID:    int64(r.MatchID),
			Rank:       r.Rank,
			Seat:       r.Seat,
			Color:      r.Color,
			Score:      r.Score,
			Cities:     r.Cities,
			FinishedAt: r.FinishedAt,
		})
	}
	return out, nil
}

func (s *MatchService) notify(snap *messages.MatchSnapshot, by int) {
	if s.sessions == nil || snap == nil {
		return
	}
	others := make([]int, 0, len(snap.Seats))
	for _, uid := range snap.Seats {
		if uid != by {
			others = append(others, uid)
		}
	}
	if len(others) == 0 {
		return
	}
	s.sessions.PushTo(others, UpdateMsg, UpdateNotice{
		MatchID:  snap.MatchID,
		Version:  snap.Version,
		Current:  snap.Current,
		Phase:    snap.Phase,
		GameOver: snap.GameOver,
		By:       by,
	})
}
