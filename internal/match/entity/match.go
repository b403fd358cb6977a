package entity

import (
	"slices"
	"time"

	"GoldenAges/internal/match/rules"
)

type MatchID int64

// Spectator 旁观者的座位号，视图里看不到任何人的手牌。
const Spectator = -1

// Match 对局聚合：座位表 + 规则状态。只在所属 actor 内访问。
type Match struct {
	id        MatchID
	seats     []int
	state     *rules.State
	createdAt time.Time
	updatedAt time.Time
	// revision 每次成功提交 +1，客户端据此判断视图是否过期
	revision uint64
	// loadedVersion 还原时库里的快照版本，写回缓存从这里继续递增
	loadedVersion uint64

	dirty        bool
	resultsSaved bool
}

// NewMatch seats[i] 为第 i 个座位的玩家 uid，uid 不能重复。
func NewMatch(id MatchID, seats []int, opts rules.Options, now time.Time) (*Match, error) {
	if err := checkSeats(seats); err != nil {
		return nil, err
	}
	opts.Players = len(seats)
	state, err := rules.NewMatch(opts)
	if err != nil {
		return nil, ErrInvalidSeats.WithCause(err)
	}
	return &Match{
		id:        id,
		seats:     slices.Clone(seats),
		state:     state,
		createdAt: now,
		updatedAt: now,
		dirty:     true,
	}, nil
}

func checkSeats(seats []int) error {
	if len(seats) < rules.MinPlayers || len(seats) > rules.MaxPlayers {
		return ErrInvalidSeats.WithData("seats", len(seats))
	}
	seen := make(map[int]struct{}, len(seats))
	for _, uid := range seats {
		if uid <= 0 {
			return ErrInvalidSeats.WithData("uid", uid)
		}
		if _, dup := seen[uid]; dup {
			return ErrInvalidSeats.WithData("duplicate_uid", uid)
		}
		seen[uid] = struct{}{}
	}
	return nil
}

// Hydrate 从持久化数据还原，不标记 dirty。
func Hydrate(s *MatchPersistSnapshot) *Match {
	return &Match{
		id:            s.MatchID,
		seats:         slices.Clone(s.Seats),
		state:         s.State,
		createdAt:     s.CreatedAt,
		updatedAt:     s.UpdatedAt,
		revision:      s.Revision,
		loadedVersion: s.Version,
		resultsSaved:  s.ResultsSaved,
	}
}

func (m *Match) ID() MatchID { return m.id }

func (m *Match) Seats() []int { return slices.Clone(m.seats) }

func (m *Match) State() *rules.State { return m.state }

func (m *Match) CreatedAt() time.Time { return m.createdAt }

func (m *Match) UpdatedAt() time.Time { return m.updatedAt }

func (m *Match) Revision() uint64 { return m.revision }

func (m *Match) LoadedVersion() uint64 { return m.loadedVersion }

func (m *Match) GameOver() bool { return m.state.GameOver() }

// SeatOf 返回 uid 的座位号。
func (m *Match) SeatOf(uid int) (int, bool) {
	i := slices.Index(m.seats, uid)
	return i, i >= 0
}

// ApplyMove 规则拒绝时状态保持不变，返回的错误满足 errors.Is(err, rules.ErrInvalidMove)。
func (m *Match) ApplyMove(uid int, mv rules.Move, now time.Time) error {
	seat, ok := m.SeatOf(uid)
	if !ok {
		return ErrSeatNotFound.WithData("uid", uid)
	}
	next, err := rules.Apply(m.state, seat, mv)
	if err != nil {
		return err
	}
	m.state = next
	m.updatedAt = now
	m.revision++
	m.dirty = true
	return nil
}

// View 按 uid 的视角脱敏，不在座位上的按旁观者处理。
func (m *Match) View(uid int) (*rules.State, int) {
	seat, ok := m.SeatOf(uid)
	if !ok {
		seat = Spectator
	}
	return rules.PublicView(m.state, seat), seat
}

// Results 终局名次。对局未结束时返回 ErrMatchNotOver。
func (m *Match) Results() ([]ResultRow, error) {
	if !m.GameOver() {
		return nil, ErrMatchNotOver
	}
	return m.Standings(), nil
}

// Standings 按当前分数排出的名次，对局中也可调用。
func (m *Match) Standings() []ResultRow {
	ranks := rules.Rankings(m.state)
	rows := make([]ResultRow, len(ranks))
	for i, r := range ranks {
		rows[i] = ResultRow{
			MatchID:    m.id,
			Rank:       i + 1,
			Seat:       r.Seat,
			Uid:        m.seats[r.Seat],
			Color:      string(m.state.Players[r.Seat].Color),
			Score:      r.Score,
			Cities:     r.Cities,
			FinishedAt: m.updatedAt,
		}
	}
	return rows
}

func (m *Match) ResultsSaved() bool { return m.resultsSaved }

func (m *Match) Dirty() bool { return m.dirty }

func (m *Match) ClearDirty() { m.dirty = false }

// BuildPersistSnapshot 深拷贝当前状态，写库协程持有快照期间 actor 可以继续推进。
// 对局刚结束的那一份快照会带上名次，之后不再重复附带。
func (m *Match) BuildPersistSnapshot(version uint64) (*MatchPersistSnapshot, bool) {
	if m == nil || !m.dirty {
		return nil, false
	}
	s := &MatchPersistSnapshot{
		Version:   version,
		Revision:  m.revision,
		MatchID:   m.id,
		Seats:     slices.Clone(m.seats),
		State:     m.state.Clone(),
		CreatedAt: m.createdAt,
		UpdatedAt: m.updatedAt,
	}
	if m.GameOver() && !m.resultsSaved {
		s.Results, _ = m.Results()
		m.resultsSaved = true
	}
	s.ResultsSaved = m.resultsSaved
	return s, true
}
