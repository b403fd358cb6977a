package entity

import (
	"time"

	"GoldenAges/internal/match/rules"
)

type MatchPersistSnapshot struct {
	Version      uint64
	Revision     uint64
	MatchID      MatchID
	Seats        []int
	State        *rules.State
	ResultsSaved bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	// Results 非空时需要先写名次表
	Results []ResultRow
}

// ResultRow 终局名次的一行，一个座位一行。
type ResultRow struct {
	MatchID    MatchID
	Rank       int
	Seat       int
	Uid        int
	Color      string
	Score      int
	Cities     int
	FinishedAt time.Time
}
