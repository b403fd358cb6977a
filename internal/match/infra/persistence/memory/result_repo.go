package memory

import (
	"context"
	"slices"
	"sync"

	"GoldenAges/internal/match/entity"
)

type ResultRepository struct {
	mu   sync.RWMutex
	rows map[entity.MatchID]map[int]entity.ResultRow
}

func NewResultRepository() *ResultRepository {
	return &ResultRepository{rows: make(map[entity.MatchID]map[int]entity.ResultRow)}
}

func (r *ResultRepository) SaveResults(ctx context.Context, rows []entity.ResultRow) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range rows {
		bySeat := r.rows[row.MatchID]
		if bySeat == nil {
			bySeat = make(map[int]entity.ResultRow)
			r.rows[row.MatchID] = bySeat
		}
		bySeat[row.Seat] = row
	}
	return nil
}

// Results 按名次排序。
func (r *ResultRepository) Results(id entity.MatchID) []entity.ResultRow {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entity.ResultRow, 0, len(r.rows[id]))
	for _, row := range r.rows[id] {
		out = append(out, row)
	}
	slices.SortFunc(out, func(a, b entity.ResultRow) int { return a.Rank - b.Rank })
	return out
}

func (r *ResultRepository) ListByUID(ctx context.Context, uid int, limit int) ([]entity.ResultRow, error) {
	r.mu.RLock()
	var out []entity.ResultRow
	for _, bySeat := range r.rows {
		for _, row := range bySeat {
			if row.Uid == uid {
				out = append(out, row)
			}
		}
	}
	r.mu.RUnlock()

	slices.SortFunc(out, func(a, b entity.ResultRow) int { return b.FinishedAt.Compare(a.FinishedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
