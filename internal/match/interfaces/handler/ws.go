package handler

import (
	"context"

	"GoldenAges/internal/match/interfaces/handler/dto"
	"GoldenAges/internal/match/service"
	"GoldenAges/internal/shared/security"
	"GoldenAges/internal/shared/transport"
	"GoldenAges/internal/shared/transport/ws"
)

type WsHandler struct {
	match *Match
}

func NewWsHandler(m *Match) *WsHandler {
	return &WsHandler{match: m}
}

func (h *WsHandler) RegisterRoutes(r *ws.Router) {
	g := r.Group("match")
	g.Handle("join", h.join)
	g.Handle("move", h.move)
	g.Handle("state", h.state)
	g.Handle("rankings", h.rankings)
}

func validReq(req *ws.WsMsgReq, resp *ws.WsMsgResp) bool {
	return req != nil && req.Body != nil && req.Conn != nil && resp != nil && resp.Body != nil
}

// join 用创建对局时签发的 token 绑定连接，之后的请求都以该 uid 身份执行。
func (h *WsHandler) join(ctx context.Context, req *ws.WsMsgReq, resp *ws.WsMsgResp) {
	if !validReq(req, resp) {
		h.fail(resp, transport.InvalidParam, "参数有误")
		return
	}
	var in dto.JoinReq
	if err := ws.BindJSON(req, &in); err != nil {
		h.fail(resp, transport.InvalidParam, "参数有误")
		return
	}
	_, claims, err := security.ParseToken(in.Token)
	if err != nil {
		h.error(ctx, resp, err)
		return
	}

	req.Conn.SetProperty(ws.PropUID, claims.Uid)
	if h.match.Session != nil {
		h.match.Session.Bind(claims.Uid, req.Conn)
	}
	h.ok(resp, dto.JoinResp{Uid: claims.Uid})
}

func (h *WsHandler) move(ctx context.Context, req *ws.WsMsgReq, resp *ws.WsMsgResp) {
	uid, ok := h.uid(req, resp)
	if !ok {
		return
	}
	var in service.MoveReq
	if err := ws.BindJSON(req, &in); err != nil {
		h.fail(resp, transport.InvalidParam, "参数有误")
		return
	}
	snap, err := h.match.Service.Submit(ctx, uid, in)
	if err != nil {
		h.error(ctx, resp, err)
		return
	}
	h.ok(resp, snap)
}

func (h *WsHandler) state(ctx context.Context, req *ws.WsMsgReq, resp *ws.WsMsgResp) {
	uid, ok := h.uid(req, resp)
	if !ok {
		return
	}
	var in dto.MatchIDReq
	if err := ws.BindJSON(req, &in); err != nil {
		h.fail(resp, transport.InvalidParam, "参数有误")
		return
	}
	snap, err := h.match.Service.Get(ctx, uid, in.MatchID)
	if err != nil {
		h.error(ctx, resp, err)
		return
	}
	h.ok(resp, snap)
}

func (h *WsHandler) rankings(ctx context.Context, req *ws.WsMsgReq, resp *ws.WsMsgResp) {
	if !validReq(req, resp) {
		h.fail(resp, transport.InvalidParam, "参数有误")
		return
	}
	var in dto.MatchIDReq
	if err := ws.BindJSON(req, &in); err != nil {
		h.fail(resp, transport.InvalidParam, "参数有误")
		return
	}
	reply, err := h.match.Service.Rankings(ctx, in.MatchID)
	if err != nil {
		h.error(ctx, resp, err)
		return
	}
	h.ok(resp, rankingsBody(reply))
}

func (h *WsHandler) uid(req *ws.WsMsgReq, resp *ws.WsMsgResp) (int, bool) {
	if !validReq(req, resp) {
		h.fail(resp, transport.InvalidParam, "参数有误")
		return 0, false
	}
	uid, ok := req.Conn.GetProperty(ws.PropUID).(int)
	if !ok || uid <= 0 {
		h.fail(resp, transport.SessionInvalid, "请先加入对局")
		return 0, false
	}
	return uid, true
}

func (h *WsHandler) ok(resp *ws.WsMsgResp, data any) {
	if resp == nil || resp.Body == nil {
		return
	}
	resp.Body.Code = transport.OK
	resp.Body.Msg = data
}

func (h *WsHandler) fail(resp *ws.WsMsgResp, code int, msg string) {
	if resp == nil || resp.Body == nil {
		return
	}
	resp.Body.Code = code
	if msg != "" {
		resp.Body.Msg = msg
	}
}

func (h *WsHandler) error(ctx context.Context, resp *ws.WsMsgResp, err error) {
	code, msg := HandleError(ctx, err)
	h.fail(resp, code, msg)
}
