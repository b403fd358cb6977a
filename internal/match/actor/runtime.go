package actor

import (
	"context"
	"errors"
	"time"

	protoactor "github.com/asynkron/protoactor-go/actor"

	"GoldenAges/internal/match/actors"
	"GoldenAges/internal/shared/actor/messages"
	"GoldenAges/internal/shared/transport"
	"GoldenAges/modules/kit/tracex"
)

const (
	defaultAskTimeout = 3 * time.Second
	managerName       = "match-manager"
)

// RuntimeError actor 调用本身失败（超时、未初始化、应答类型不对），与对局的业务拒绝区分开。
type RuntimeError struct {
	Code    int
	Message string
	Cause   error
}

func (e *RuntimeError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

func (e *RuntimeError) Unwrap() error { return e.Cause }

func sysErr(msg string, cause error) *RuntimeError {
	return &RuntimeError{Code: transport.SystemError, Message: msg, Cause: cause}
}

// Runtime 服务层通过它向 ManagerActor 发请求，所有请求都是 request/future。
type Runtime struct {
	system  *protoactor.ActorSystem
	manager *protoactor.PID
	timeout time.Duration
}

// NewRuntime system 为空时新建一个本地 actor system。
func NewRuntime(system *protoactor.ActorSystem, deps actors.Deps, askTimeout time.Duration) *Runtime {
	if system == nil {
		system = protoactor.NewActorSystem()
	}
	if askTimeout <= 0 {
		askTimeout = defaultAskTimeout
	}
	props := protoactor.PropsFromProducer(func() protoactor.Actor { return actors.NewManagerActor(deps) })
	manager, err := system.Root.SpawnNamed(props, managerName)
	if err != nil {
		// 同一 system 里已有同名 manager（测试里复用 system）
		manager = system.Root.Spawn(props)
	}
	return &Runtime{system: system, manager: manager, timeout: askTimeout}
}

func (r *Runtime) System() *protoactor.ActorSystem { return r.system }

// Shutdown 先停 manager，子 actor 在 Stopping 里把快照刷完。
func (r *Runtime) Shutdown() {
	if r == nil || r.system == nil {
		return
	}
	if r.manager != nil {
		_ = r.system.Root.StopFuture(r.manager).Wait()
	}
	r.system.Shutdown()
}

func (r *Runtime) CreateMatch(ctx context.Context, req *messages.CreateMatchRequest) (*messages.MatchSnapshot, error) {
	reply, err := ask[*messages.MatchReply](ctx, r, req)
	if err != nil {
		return nil, err
	}
	return reply.Snapshot, nil
}

func (r *Runtime) SubmitMove(ctx context.Context, req *messages.SubmitMoveRequest) (*messages.MatchSnapshot, error) {
	reply, err := ask[*messages.MatchReply](ctx, r, req)
	if err != nil {
		return nil, err
	}
	return reply.Snapshot, nil
}

func (r *Runtime) GetMatch(ctx context.Context, req *messages.GetMatchRequest) (*messages.MatchSnapshot, error) {
	reply, err := ask[*messages.MatchReply](ctx, r, req)
	if err != nil {
		return nil, err
	}
	return reply.Snapshot, nil
}

func (r *Runtime) GetRankings(ctx context.Context, req *messages.GetRankingsRequest) (*messages.RankingsReply, error) {
	return ask[*messages.RankingsReply](ctx, r, req)
}

type tracedMessage interface {
	messages.MatchMessage
	SetTrace(id string)
}

type failure interface {
	comparable
	Failure() error
}

// ask 带上 trace id 发给 manager，按 R 断言应答，应答里的 Err 原样返回。
func ask[R failure](ctx context.Context, r *Runtime, msg tracedMessage) (R, error) {
	var zero R
	if r == nil || r.system == nil || r.manager == nil {
		return zero, sysErr("actor runtime 未初始化", nil)
	}
	if id, ok := tracex.TraceIDFrom(ctx); ok {
		msg.SetTrace(id)
	}

	res, err := r.system.Root.RequestFuture(r.manager, msg, r.timeoutFromContext(ctx)).Result()
	if err != nil {
		re := sysErr("actor 请求失败", err)
		if errors.Is(err, protoactor.ErrTimeout) {
			re.Code = transport.Timeout
		}
		return zero, re
	}
	reply, ok := res.(R)
	if !ok || reply == zero {
		return zero, sysErr("actor 应答类型错误", nil)
	}
	if err := reply.Failure(); err != nil {
		return zero, err
	}
	return reply, nil
}

// timeoutFromContext 取配置超时与 ctx 剩余时间中较小的一个。
func (r *Runtime) timeoutFromContext(ctx context.Context) time.Duration {
	t := r.timeout
	if t <= 0 {
		t = defaultAskTimeout
	}
	if ctx == nil {
		return t
	}
	if deadline, ok := ctx.Deadline(); ok {
		t = min(t, max(time.Until(deadline), time.Millisecond))
	}
	return t
}

func CodeFromError(err error) int {
	if err == nil {
		return transport.OK
	}
	var re *RuntimeError
	if errors.As(err, &re) && re.Code != 0 {
		return re.Code
	}
	return transport.SystemError
}
