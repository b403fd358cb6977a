package ws

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-think/openssl"
	"github.com/gorilla/websocket"

	"GoldenAges/internal/shared/security"
	"GoldenAges/internal/shared/transport"
	"GoldenAges/modules/kit/logx"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("等待超时")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func dial(t *testing.T, s *Server) *websocket.Conn {
	t.Helper()
	hs := httptest.NewServer(s)
	t.Cleanup(hs.Close)
	c, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(hs.URL, "http"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	_ = c.SetReadDeadline(time.Now().Add(2 * time.Second))
	return c
}

func echoRouter() *Router {
	r := NewRouter(logx.Nop())
	r.Group("match").Handle("echo", func(_ context.Context, req *WsMsgReq, resp *WsMsgResp) {
		resp.Body.Code = transport.OK
		resp.Body.Msg = req.Body.Msg
	})
	return r
}

func TestServer_明文收发(t *testing.T) {
	c := dial(t, NewServer(echoRouter(), logx.Nop(), false))

	if err := c.WriteJSON(ReqBody{Seq: 7, Name: "match.echo", Msg: "hi"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	var got RespBody
	if err := c.ReadJSON(&got); err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Seq != 7 || got.Code != transport.OK || got.Msg != "hi" {
		t.Fatalf("应答不符: %+v", got)
	}

	if err := c.WriteJSON(ReqBody{Seq: 8, Name: RouteHeartbeat, Msg: map[string]any{"ctime": 1}}); err != nil {
		t.Fatalf("write: %v", err)
	}
	var hb struct {
		Seq int64     `json:"seq"`
		Msg Heartbeat `json:"msg"`
	}
	if err := c.ReadJSON(&hb); err != nil {
		t.Fatalf("read: %v", err)
	}
	if hb.Seq != 8 || hb.Msg.CTime != 1 || hb.Msg.STime == 0 {
		t.Fatalf("心跳应答不符: %+v", hb)
	}
}

func TestServer_加密握手后收发(t *testing.T) {
	c := dial(t, NewServer(echoRouter(), logx.Nop(), true))

	readFrame := func(key string) []byte {
		t.Helper()
		mt, data, err := c.ReadMessage()
		if err != nil || mt != websocket.BinaryMessage {
			t.Fatalf("read: type=%d err=%v", mt, err)
		}
		plain, err := security.UnZip(data)
		if err != nil {
			t.Fatalf("unzip: %v", err)
		}
		if key != "" {
			if plain, err = security.AesCBCDecrypt(plain, []byte(key), []byte(key), openssl.ZEROS_PADDING); err != nil {
				t.Fatalf("decrypt: %v", err)
			}
		}
		return plain
	}

	var hs struct {
		Name string    `json:"name"`
		Msg  Handshake `json:"msg"`
	}
	if err := json.Unmarshal(readFrame(""), &hs); err != nil || hs.Name != RouteHandshake || len(hs.Msg.Key) != 16 {
		t.Fatalf("握手帧不符: %+v err=%v", hs, err)
	}
	key := []byte(hs.Msg.Key)

	raw, _ := json.Marshal(ReqBody{Seq: 3, Name: "match.echo", Msg: "secret"})
	enc, err := security.AesCBCEncrypt(raw, key, key, openssl.ZEROS_PADDING)
	if err != nil {
		t.Fatalf("encrypt: %v", err)
	}
	zipped, _ := security.Zip(enc)
	if err := c.WriteMessage(websocket.BinaryMessage, zipped); err != nil {
		t.Fatalf("write: %v", err)
	}

	var got RespBody
	if err := json.Unmarshal(readFrame(hs.Msg.Key), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Seq != 3 || got.Code != transport.OK || got.Msg != "secret" {
		t.Fatalf("应答不符: %+v", got)
	}
}

func TestServer_在线计数与CloseAll(t *testing.T) {
	s := NewServer(NewRouter(logx.Nop()), logx.Nop(), false)
	c := dial(t, s)

	waitFor(t, func() bool { return s.Online() == 1 })
	s.CloseAll()
	waitFor(t, func() bool { return s.Online() == 0 })

	_ = c.SetReadDeadline(time.Now().Add(time.Second))
	if _, _, err := c.ReadMessage(); err == nil {
		t.Fatalf("服务端关闭后客户端读应失败")
	}
}
