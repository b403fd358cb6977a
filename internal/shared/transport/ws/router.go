package ws

import (
	"context"
	"runtime/debug"
	"strings"

	"go.uber.org/zap"

	"GoldenAges/internal/shared/logs"
	"GoldenAges/internal/shared/transport"
	"GoldenAges/modules/kit/logx"
)

// Registrar 业务模块向 ws 路由注册 handler。
type Registrar interface {
	WsRegister(r *Router)
}

type HandlerFunc func(ctx context.Context, req *WsMsgReq, resp *WsMsgResp)

// Router 以 "组.路由" 为键的扁平路由表。
type Router struct {
	routes map[string]HandlerFunc
	log    logx.Logger
}

// Group 只是前缀，注册时拼成完整路由名。
type Group struct {
	prefix string
	r      *Router
}

func (g *Group) Handle(name string, h HandlerFunc) {
	g.r.routes[g.prefix+"."+name] = h
}

func NewRouter(l logx.Logger) *Router {
	if l == nil {
		l = logx.NewZapLogger(logs.Logger())
	}
	return &Router{routes: make(map[string]HandlerFunc), log: l}
}

func (r *Router) Register(rs ...Registrar) {
	for _, reg := range rs {
		reg.WsRegister(r)
	}
}

func (r *Router) Group(prefix string) *Group {
	return &Group{prefix: prefix, r: r}
}

// Dispatch 查表执行 handler。handler 没写 code 时按系统错误返回，panic 也一样。
func (r *Router) Dispatch(req *WsMsgReq, resp *WsMsgResp) {
	if resp == nil || resp.Body == nil {
		return
	}
	resp.Body.Code, resp.Body.Msg = transport.SystemError, nil

	action := "WS unknown"
	if req != nil && req.Body != nil {
		action = "WS " + req.Body.Name
	}
	ctx := transport.Begin(context.Background(), "ws", action)
	defer func() {
		if p := recover(); p != nil {
			r.log.WithContext(ctx).Error("ws handler panic", zap.Any("panic", p), zap.ByteString("stack", debug.Stack()))
			resp.Body.Code, resp.Body.Msg = transport.SystemError, nil
		}
		transport.SetBizCode(ctx, transport.BizCode(resp.Body.Code))
		transport.Finish(ctx, r.log)
	}()

	if req == nil || req.Body == nil {
		reject(resp, "参数有误")
		return
	}
	if _, _, ok := parseRouteName(req.Body.Name); !ok {
		reject(resp, "路由参数有误")
		return
	}
	h := r.routes[req.Body.Name]
	if h == nil {
		reject(resp, "路由不存在")
		return
	}
	h(ctx, req, resp)
}

func parseRouteName(name string) (string, string, bool) {
	prefix, route, ok := strings.Cut(name, ".")
	if !ok || prefix == "" || route == "" || strings.Contains(route, ".") {
		return "", "", false
	}
	return prefix, route, true
}

func reject(resp *WsMsgResp, msg string) {
	resp.Body.Code = transport.InvalidParam
	resp.Body.Msg = msg
}
