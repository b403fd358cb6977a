package model

import (
	"time"

	"GoldenAges/internal/match/entity"
)

// MatchResult 终局名次表，(match_id, seat) 唯一。
type MatchResult struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement"`
	MatchID    int64     `gorm:"column:match_id;not null;uniqueIndex:uk_match_seat,priority:1;comment:对局id"`
	Seat       int       `gorm:"column:seat;not null;uniqueIndex:uk_match_seat,priority:2;comment:座位号"`
	Uid        int       `gorm:"column:uid;not null;index:idx_uid;comment:玩家id"`
	Rank       int       `gorm:"column:rank;not null;comment:名次"`
	Color      string    `gorm:"column:color;type:varchar(16);not null;default:''"`
	Score      int       `gorm:"column:score;not null;default:0"`
	Cities     int       `gorm:"column:cities;not null;default:0"`
	FinishedAt time.Time `gorm:"column:finished_at;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (m *MatchResult) TableName() string {
	return "match_result"
}

func ResultRowToModel(r entity.ResultRow) MatchResult {
	return MatchResult{
		MatchID:    int64(r.MatchID),
		Seat:       r.Seat,
		Uid:        r.Uid,
		Rank:       r.Rank,
		Color:      r.Color,
		Score:      r.Score,
		Cities:     r.Cities,
		FinishedAt: r.FinishedAt,
	}
}

func ModelToResultRow(m MatchResult) entity.ResultRow {
	return entity.ResultRow{
		MatchID:    entity.MatchID(m.MatchID),
		Rank:       m.Rank,
		Seat:       m.Seat,
		Uid:        m.Uid,
		Color:      m.Color,
		Score:      m.Score,
		Cities:     m.Cities,
		FinishedAt: m.FinishedAt,
	}
}
