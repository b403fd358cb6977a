package rules

import (
	"errors"

	"GoldenAges/modules/kit/errx"
)

// ErrInvalidMove 所有规则拒绝的统一哨兵。具体原因挂在 cause 上，只用于日志。
var ErrInvalidMove = errx.NewBiz("MATCH_INVALID_MOVE", "非法操作")

// Move 一次玩家提交。实现都在本包内，由 DecodeMove 或直接构造得到。
type Move interface {
	Name() string
	apply(s *State, seat int) error
}

// 不占用回合的操作。
type freeMove interface {
	Move
	free()
}

type rejection struct{ reason string }

func (r *rejection) Error() string { return r.reason }

func (r *rejection) ReasonCode() string { return r.reason }

func reject(reason string) error { return &rejection{reason: reason} }

// invalid 包成 ErrInvalidMove，规则拒绝的原因同时记进 data.reason。
func invalid(cause error) error {
	e := ErrInvalidMove
	var r *rejection
	if errors.As(cause, &r) {
		e = e.WithReason(r)
	}
	return e.WithCause(cause)
}

// RejectReason 取出拒绝原因，非规则拒绝返回空串。
func RejectReason(err error) string {
	var r *rejection
	if errors.As(err, &r) {
		return r.reason
	}
	return ""
}

// Apply 在草稿上执行一步，成功才返回新状态；失败时原样返回 s 与 ErrInvalidMove。
func Apply(s *State, seat int, m Move) (*State, error) {
	if s == nil || m == nil {
		return s, invalid(reject("nil state or move"))
	}
	if seat < 0 || seat >= len(s.Players) {
		return s, invalid(reject("unknown seat"))
	}
	_, isFree := m.(freeMove)
	if !isFree {
		if s.Phase == PhaseGameOver {
			return s, invalid(reject("game is over"))
		}
		if seat != s.Current {
			return s, invalid(reject("not your turn"))
		}
	}

	draft := s.Clone()
	phase, era := draft.Phase, draft.Era
	if err := m.apply(draft, seat); err != nil {
		return s, invalid(err)
	}
	if isFree {
		return draft, nil
	}
	draft.Moves++
	draft.advanceTurn(seat, phase, era)
	return draft, nil
}

// advanceTurn 一步一回合。有待处理的子步骤时仍由当前玩家继续；
// 阶段或时代切换后，子步骤处理完再由首位玩家开始。
func (s *State) advanceTurn(seat int, phase Phase, era Era) {
	if s.Phase == PhaseGameOver {
		return
	}
	if s.Phase != phase || s.Era != era {
		s.RestartTurnOrder = true
	}
	switch {
	case s.hasPending():
		s.Current = seat
	case s.RestartTurnOrder:
		s.Current = s.FirstPlayer
		s.RestartTurnOrder = false
	default:
		s.Current = s.nextSeat(seat)
	}
}

func (s *State) requirePhase(p Phase) error {
	if s.Phase != p {
		return reject("wrong phase: " + string(s.Phase))
	}
	return nil
}
