package model

import (
	"encoding/json"
	"time"

	"GoldenAges/internal/match/entity"
	"GoldenAges/internal/match/rules"
)

// MatchDoc mongo 里的对局文档。规则状态按客户端使用的 JSON 结构整体存成字符串，
// era/phase/game_over 冗余出来便于查询。
type MatchDoc struct {
	MatchID      int64     `bson:"_id"`
	Version      uint64    `bson:"version"`
	Revision     uint64    `bson:"revision"`
	Seats        []int     `bson:"seats"`
	Era          string    `bson:"era"`
	Phase        string    `bson:"phase"`
	GameOver     bool      `bson:"game_over"`
	ResultsSaved bool      `bson:"results_saved"`
	StateJSON    string    `bson:"state_json"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

func SnapshotToDoc(s *entity.MatchPersistSnapshot) (*MatchDoc, error) {
	raw, err := json.Marshal(s.State)
	if err != nil {
		return nil, err
	}
	return &MatchDoc{
		MatchID:      int64(s.MatchID),
		Version:      s.Version,
		Revision:     s.Revision,
		Seats:        s.Seats,
		Era:          s.State.Era.String(),
		Phase:        string(s.State.Phase),
		GameOver:     s.State.GameOver(),
		ResultsSaved: s.ResultsSaved,
		StateJSON:    string(raw),
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}, nil
}

func DocToSnapshot(doc *MatchDoc) (*entity.MatchPersistSnapshot, error) {
	state := &rules.State{}
	if err := json.Unmarshal([]byte(doc.StateJSON), state); err != nil {
		return nil, err
	}
	return &entity.MatchPersistSnapshot{
		Version:      doc.Version,
		Revision:     doc.Revision,
		MatchID:      entity.MatchID(doc.MatchID),
		Seats:        doc.Seats,
		State:        state,
		ResultsSaved: doc.ResultsSaved,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}, nil
}
