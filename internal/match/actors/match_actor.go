package actors

import (
	"context"
	"errors"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"

	"GoldenAges/internal/match/dc"
	"GoldenAges/internal/match/entity"
	"GoldenAges/internal/shared/actor/messages"
	"GoldenAges/modules/kit/logx"
)

type State int

const (
	None State = iota
	Init
	Online
	Offline
	Stopping
)

const (
	loadTimeout  = 5 * time.Second
	closeTimeout = 3 * time.Second
)

// MatchActor 一个对局一个 actor，邮箱天然串行化同一对局的所有提交。
type MatchActor struct {
	state      State
	matchID    MatchID
	initial    *entity.Match
	entity     *entity.Match
	dc         *dc.MatchDC
	dispatcher *Dispatcher
	flushStop  chan struct{}
	idle       time.Duration
	log        logx.Logger
	now        func() time.Time
	loadErr    error
}

type flushTick struct{}

func (flushTick) NotInfluenceReceiveTimeout() {}

// NewMatchActor initial 非空表示新建对局，否则启动时从存储加载。
func NewMatchActor(id MatchID, initial *entity.Match, deps Deps) *MatchActor {
	deps = deps.withDefaults()
	return &MatchActor{
		state:   None,
		matchID: id,
		initial: initial,
		dc: dc.NewMatchDC(deps.Repo,
			dc.WithFlushEvery(deps.FlushEvery),
			dc.WithResultRepository(deps.Results),
			dc.WithLogger(deps.Log),
		),
		dispatcher: NewDispatcher(),
		idle:       deps.IdleTimeout,
		log:        deps.Log.With(zap.Int64("match_id", int64(id))),
		now:        deps.Now,
	}
}

func (p *MatchActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *actor.Started:
		p.state = Init
		p.init(ctx)
	case *actor.Stopping:
		p.stopFlushLoop()
		p.closeDC()
		p.state = Stopping
	case *actor.Stopped:
		p.stopFlushLoop()
		p.state = Offline
	case *actor.Restarting:
		p.stopFlushLoop()
		p.closeDC()
		p.state = Init
	case *actor.ReceiveTimeout:
		if p.state != Online {
			return
		}
		ctx.CancelReceiveTimeout()
		ctx.Request(ctx.Parent(), &passivate{ID: p.matchID})
	case flushTick:
		if p.state != Online {
			return
		}
		p.flush()
	case messages.MatchMessage:
		if p.state != Online {
			if p.loadErr != nil {
				respondErr(ctx, p.loadErr)
				return
			}
			respondErr(ctx, errNotOnline)
			return
		}
		p.dispatcher.Dispatch(ctx, p, msg)
	}
}

func (p *MatchActor) init(ctx actor.Context) {
	if p.initial != nil {
		p.dc.Attach(p.initial)
		p.entity = p.initial
		p.flush()
	} else {
		loadCtx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		e, err := p.dc.Load(loadCtx, p.matchID)
		cancel()
		if err != nil {
			if !errors.Is(err, entity.ErrMatchNotFound) {
				logx.ReportSysErrorWithLoggerContext(context.Background(), p.log,
					logx.NewSysLog("match.actor.load", err))
			}
			// 已排队的请求都回错误，然后下线
			p.loadErr = err
			p.state = Offline
			ctx.Poison(ctx.Self())
			return
		}
		p.entity = e
	}

	p.state = Online
	p.startFlushLoop(ctx)
	if p.idle > 0 {
		ctx.SetReceiveTimeout(p.idle)
	}
}

func (p *MatchActor) MatchID() MatchID {
	return p.matchID
}

func (p *MatchActor) Entity() *entity.Match {
	return p.entity
}

func (p *MatchActor) DC() *dc.MatchDC {
	return p.dc
}

func (p *MatchActor) flush() {
	if err := p.dc.Flush(context.Background()); err != nil {
		p.log.Error("match flush failed", zap.Error(err))
	}
}

func (p *MatchActor) closeDC() {
	closeCtx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	if err := p.dc.Close(closeCtx); err != nil {
		p.log.Error("match dc close failed", zap.Error(err))
	}
}

func (p *MatchActor) startFlushLoop(ctx actor.Context) {
	if p.flushStop != nil {
		return
	}
	interval := p.dc.FlushEvery()
	if interval <= 0 {
		return
	}
	p.flushStop = make(chan struct{})
	self := ctx.Self()
	root := ctx.ActorSystem().Root

	go func(stop <-chan struct{}, every time.Duration) {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				root.Send(self, flushTick{})
			case <-stop:
				return
			}
		}
	}(p.flushStop, interval)
}

func (p *MatchActor) stopFlushLoop() {
	if p.flushStop == nil {
		return
	}
	close(p.flushStop)
	p.flushStop = nil
}
