package port

import (
	"context"

	"GoldenAges/internal/match/entity"
)

// MatchRepository 对局快照存储。LoadMatch 找不到时返回 entity.ErrMatchNotFound。
type MatchRepository interface {
	LoadMatch(ctx context.Context, id entity.MatchID) (*entity.Match, error)
	Save(ctx context.Context, s *entity.MatchPersistSnapshot) error
}

// ResultRepository 终局名次，按 (match_id, seat) 幂等写入。
type ResultRepository interface {
	SaveResults(ctx context.Context, rows []entity.ResultRow) error
	ListByUID(ctx context.Context, uid int, limit int) ([]entity.ResultRow, error)
}
