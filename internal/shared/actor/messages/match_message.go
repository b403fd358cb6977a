package messages

import "encoding/json"

// MatchMessage 投递给对局 actor 的请求，ManagerActor 按 MatchID 路由。
type MatchMessage interface {
	MatchID() int64
}

// MatchBaseMessage TraceID 让 actor 内的日志能和入口请求串起来。
type MatchBaseMessage struct {
	Id      int64
	TraceID string
}

func (m MatchBaseMessage) MatchID() int64 {
	return m.Id
}

func (m MatchBaseMessage) Trace() string {
	return m.TraceID
}

func (m *MatchBaseMessage) SetTrace(id string) {
	m.TraceID = id
}

// CreateMatchRequest Seats[i] 是第 i 个座位的玩家 uid。
type CreateMatchRequest struct {
	MatchBaseMessage
	Seats     []int
	Expansion bool
	Seed      uint64
}

// SubmitMoveRequest Args 为客户端原样提交的参数，在 actor 内解码。
type SubmitMoveRequest struct {
	MatchBaseMessage
	Uid  int
	Name string
	Args map[string]any
}

// GetMatchRequest Uid 不在座位表里时按旁观者返回视图。
type GetMatchRequest struct {
	MatchBaseMessage
	Uid int
}

type GetRankingsRequest struct {
	MatchBaseMessage
}

// MatchReply 对局 actor 的统一应答，Err 非空时其余字段无意义。
type MatchReply struct {
	Err      error
	Snapshot *MatchSnapshot
}

func (r *MatchReply) Failure() error { return r.Err }

type MatchSnapshot struct {
	MatchID  int64           `json:"matchId,string"`
	Version  uint64          `json:"version"`
	Seats    []int           `json:"seats"`
	Seat     int             `json:"seat"`
	Current  int             `json:"current"`
	Era      string          `json:"era"`
	Phase    string          `json:"phase"`
	GameOver bool            `json:"gameOver"`
	View     json.RawMessage `json:"state"`
}

type RankingRow struct {
	Rank   int    `json:"rank"`
	Seat   int    `json:"seat"`
	Uid    int    `json:"uid"`
	Color  string `json:"color"`
	Score  int    `json:"score"`
	Cities int    `json:"cities"`
}

type RankingsReply struct {
	Err      error
	MatchID  int64
	GameOver bool
	Rankings []RankingRow
}

func (r *RankingsReply) Failure() error { return r.Err }
