package ws

import (
	"context"
	"testing"

	"GoldenAges/internal/shared/transport"
	"GoldenAges/modules/kit/logx"
)

func newReq(name string, msg any) (*WsMsgReq, *WsMsgResp) {
	return &WsMsgReq{Body: &ReqBody{Seq: 1, Name: name, Msg: msg}},
		&WsMsgResp{Body: &RespBody{Seq: 1, Name: name}}
}

func TestParseRouteName(t *testing.T) {
	cases := map[string]bool{
		"match.move": true,
		"match":      false,
		".move":      false,
		"match.":     false,
		"a.b.c":      false,
	}
	for name, want := range cases {
		if _, _, ok := parseRouteName(name); ok != want {
			t.Fatalf("parseRouteName(%q) ok=%v, want %v", name, ok, want)
		}
	}
}

func TestDispatch_找到处理器(t *testing.T) {
	r := NewRouter(logx.Nop())
	r.Group("match").Handle("state", func(_ context.Context, req *WsMsgReq, resp *WsMsgResp) {
		resp.Body.Code = transport.OK
		resp.Body.Msg = req.Body.Msg
	})

	req, resp := newReq("match.state", "hi")
	r.Dispatch(req, resp)
	if resp.Body.Code != transport.OK || resp.Body.Msg != "hi" {
		t.Fatalf("unexpected resp: %+v", resp.Body)
	}
}

func TestDispatch_路由不存在(t *testing.T) {
	r := NewRouter(logx.Nop())
	r.Group("match").Handle("state", func(context.Context, *WsMsgReq, *WsMsgResp) {})

	for _, name := range []string{"lobby.state", "match.unknown", "bad"} {
		req, resp := newReq(name, nil)
		r.Dispatch(req, resp)
		if resp.Body.Code != transport.InvalidParam {
			t.Fatalf("%s: 期望 InvalidParam，got=%d", name, resp.Body.Code)
		}
	}
}

func TestDispatch_处理器漏设返回码时按系统错误(t *testing.T) {
	r := NewRouter(logx.Nop())
	r.Group("match").Handle("noop", func(context.Context, *WsMsgReq, *WsMsgResp) {})

	req, resp := newReq("match.noop", nil)
	resp.Body.Code = transport.OK
	r.Dispatch(req, resp)
	if resp.Body.Code != transport.SystemError {
		t.Fatalf("期望 SystemError，got=%d", resp.Body.Code)
	}
}

func TestBindJSON_弱类型(t *testing.T) {
	var dst struct {
		MatchID int64  `json:"matchId"`
		Name    string `json:"name"`
	}
	req, _ := newReq("match.move", map[string]any{"matchId": "42", "name": "placeTile"})
	if err := BindJSON(req, &dst); err != nil {
		t.Fatalf("bind: %v", err)
	}
	if dst.MatchID != 42 || dst.Name != "placeTile" {
		t.Fatalf("unexpected dst: %+v", dst)
	}

	req, _ = newReq("match.move", nil)
	if err := BindJSON(req, &dst); err == nil {
		t.Fatalf("空消息应返回错误")
	}
}

func TestDispatch_处理器panic按系统错误(t *testing.T) {
	r := NewRouter(logx.Nop())
	r.Group("match").Handle("boom", func(_ context.Context, _ *WsMsgReq, resp *WsMsgResp) {
		resp.Body.Code = transport.OK
		panic("boom")
	})

	req, resp := newReq("match.boom", nil)
	r.Dispatch(req, resp)
	if resp.Body.Code != transport.SystemError || resp.Body.Msg != nil {
		t.Fatalf("期望 SystemError，got=%+v", resp.Body)
	}
}
