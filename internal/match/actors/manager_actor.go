package actors

import (
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"

	"GoldenAges/internal/match/app/port"
	"GoldenAges/internal/match/entity"
	"GoldenAges/internal/match/rules"
	"GoldenAges/internal/shared/actor/messages"
	"GoldenAges/modules/kit/logx"
)

type MatchID = entity.MatchID

// Deps 对局 actor 的依赖，由 Runtime 注入。
type Deps struct {
	Repo        port.MatchRepository
	Results     port.ResultRepository
	FlushEvery  time.Duration
	IdleTimeout time.Duration
	Log         logx.Logger
	Now         func() time.Time
}

func (d Deps) withDefaults() Deps {
	if d.Log == nil {
		d.Log = logx.Nop()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}

type stashed struct {
	msg    messages.MatchMessage
	sender *actor.PID
}

// passivate 子 actor 空闲后请求下线。
type passivate struct {
	ID MatchID
}

// ManagerActor 按对局 id 路由到子 actor。子 actor 下线期间收到的请求先暂存，
// 等旧 actor 刷完快照终止后再拉起新的，保证同一对局同时只有一个 actor 读写存储。
type ManagerActor struct {
	deps     Deps
	matches  map[MatchID]*actor.PID
	byPID    map[string]MatchID
	stopping map[MatchID][]stashed
}

func NewManagerActor(deps Deps) *ManagerActor {
	return &ManagerActor{
		deps:     deps.withDefaults(),
		matches:  make(map[MatchID]*actor.PID),
		byPID:    make(map[string]MatchID),
		stopping: make(map[MatchID][]stashed),
	}
}

func (m *ManagerActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *passivate:
		m.passivate(ctx, msg.ID)
	case *actor.Terminated:
		m.onTerminated(ctx, msg.Who)
	case *messages.CreateMatchRequest:
		m.create(ctx, msg)
	case messages.MatchMessage:
		m.route(ctx, msg)
	}
}

func (m *ManagerActor) create(ctx actor.Context, req *messages.CreateMatchRequest) {
	id := MatchID(req.Id)
	if _, ok := m.matches[id]; ok {
		respondErr(ctx, entity.ErrMatchExists.WithData("match_id", req.Id))
		return
	}
	if _, ok := m.stopping[id]; ok {
		respondErr(ctx, entity.ErrMatchExists.WithData("match_id", req.Id))
		return
	}

	match, err := entity.NewMatch(id, req.Seats, rules.Options{Expansion: req.Expansion, Seed: req.Seed}, m.deps.Now())
	if err != nil {
		respondErr(ctx, err)
		return
	}
	ctx.Forward(m.spawn(ctx, id, match))
}

func (m *ManagerActor) route(ctx actor.Context, req messages.MatchMessage) {
	id := MatchID(req.MatchID())
	if stash, ok := m.stopping[id]; ok {
		m.stopping[id] = append(stash, stashed{msg: req, sender: ctx.Sender()})
		return
	}
	if pid, ok := m.matches[id]; ok && pid != nil {
		ctx.Forward(pid)
		return
	}
	ctx.Forward(m.spawn(ctx, id, nil))
}

func (m *ManagerActor) spawn(ctx actor.Context, id MatchID, initial *entity.Match) *actor.PID {
	deps := m.deps
	props := actor.PropsFromProducer(func() actor.Actor {
		return NewMatchActor(id, initial, deps)
	})
	pid := ctx.Spawn(props)
	ctx.Watch(pid)
	m.matches[id] = pid
	m.byPID[pid.Id] = id
	return pid
}

func (m *ManagerActor) passivate(ctx actor.Context, id MatchID) {
	pid, ok := m.matches[id]
	if !ok || pid == nil || !pid.Equal(ctx.Sender()) {
		return
	}
	delete(m.matches, id)
	m.stopping[id] = nil
	ctx.Poison(pid)
	m.deps.Log.Debug("match actor passivating", zap.Int64("match_id", int64(id)))
}

func (m *ManagerActor) onTerminated(ctx actor.Context, who *actor.PID) {
	if who == nil {
		return
	}
	id, ok := m.byPID[who.Id]
	if !ok {
		return
	}
	delete(m.byPID, who.Id)
	if pid, ok := m.matches[id]; ok && pid.Equal(who) {
		delete(m.matches, id)
	}

	stash, ok := m.stopping[id]
	if !ok {
		return
	}
	delete(m.stopping, id)
	if len(stash) == 0 {
		return
	}
	pid := m.spawn(ctx, id, nil)
	for _, s := range stash {
		ctx.RequestWithCustomSender(pid, s.msg, s.sender)
	}
}
