package memory

import (
	"context"
	"sync"

	"GoldenAges/internal/match/entity"
)

// MatchRepository 进程内存储，storage=memory 时使用，也用于测试。
type MatchRepository struct {
	mu    sync.RWMutex
	snaps map[entity.MatchID]*entity.MatchPersistSnapshot
}

func NewMatchRepository() *MatchRepository {
	return &MatchRepository{snaps: make(map[entity.MatchID]*entity.MatchPersistSnapshot)}
}

func (r *MatchRepository) LoadMatch(ctx context.Context, id entity.MatchID) (*entity.Match, error) {
	r.mu.RLock()
	s, ok := r.snaps[id]
	r.mu.RUnlock()
	if !ok {
		return nil, entity.ErrMatchNotFound.WithData("match_id", int64(id))
	}
	cp := *s
	cp.State = s.State.Clone()
	return entity.Hydrate(&cp), nil
}

func (r *MatchRepository) Save(ctx context.Context, s *entity.MatchPersistSnapshot) error {
	if s == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.snaps[s.MatchID]; ok && old.Version >= s.Version {
		return nil
	}
	cp := *s
	cp.State = s.State.Clone()
	cp.Results = nil
	r.snaps[s.MatchID] = &cp
	return nil
}

// Version 已存快照的版本，0 表示不存在。
func (r *MatchRepository) Version(id entity.MatchID) uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.snaps[id]; ok {
		return s.Version
	}
	return 0
}
