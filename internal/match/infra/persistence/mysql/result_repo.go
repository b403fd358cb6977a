package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"GoldenAges/internal/match/entity"
	"GoldenAges/internal/match/infra/persistence/model"
)

type ResultRepository struct {
	db *gorm.DB
}

func NewResultRepository(db *gorm.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

// SaveResults 同一对局重复写入时按 (match_id, seat) 覆盖。
func (r *ResultRepository) SaveResults(ctx context.Context, rows []entity.ResultRow) error {
	if len(rows) == 0 {
		return nil
	}
	if r == nil || r.db == nil {
		return errors.New("mysql result db is nil")
	}
	models := make([]model.MatchResult, len(rows))
	for i, row := range rows {
		models[i] = model.ResultRowToModel(row)
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "match_id"}, {Name: "seat"}},
			DoUpdates: clause.AssignmentColumns([]string{"uid", "rank", "color", "score", "cities", "finished_at"}),
		}).
		Create(&models).Error
}

// ListByUID 玩家最近的终局记录，按结束时间倒序。
func (r *ResultRepository) ListByUID(ctx context.Context, uid int, limit int) ([]entity.ResultRow, error) {
	var models []model.MatchResult
	err := r.db.WithContext(ctx).
		Where("uid = ?", uid).
		Order("finished_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	out := make([]entity.ResultRow, len(models))
	for i, m := range models {
		out[i] = model.ModelToResultRow(m)
	}
	return out, nil
}
