package actors

import (
	"reflect"

	"github.com/asynkron/protoactor-go/actor"

	"GoldenAges/internal/shared/actor/messages"
)

type route func(ctx actor.Context, p *MatchActor, req messages.MatchMessage)

// Dispatcher 按请求的具体类型找到 MatchHandler 上的方法。
type Dispatcher struct {
	routes map[reflect.Type]route
}

func NewDispatcher() *Dispatcher {
	d := &Dispatcher{routes: make(map[reflect.Type]route, 4)}
	register(d, MH.HandleCreateMatch)
	register(d, MH.HandleSubmitMove)
	register(d, MH.HandleGetMatch)
	register(d, MH.HandleGetRankings)
	return d
}

func register[Req messages.MatchMessage](d *Dispatcher, fn func(actor.Context, *MatchActor, Req)) {
	var zero Req
	t := reflect.TypeOf(zero)
	if t == nil {
		panic("dispatcher: request type must be concrete")
	}
	d.routes[t] = func(ctx actor.Context, p *MatchActor, req messages.MatchMessage) {
		fn(ctx, p, req.(Req))
	}
}

func (d *Dispatcher) Dispatch(ctx actor.Context, p *MatchActor, req messages.MatchMessage) {
	if req == nil || isNilPtr(req) {
		respondErr(ctx, errNilRequest)
		return
	}
	r, ok := d.routes[reflect.TypeOf(req)]
	if !ok {
		respondErr(ctx, errNoHandler)
		return
	}
	r(ctx, p, req)
}

func isNilPtr(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
