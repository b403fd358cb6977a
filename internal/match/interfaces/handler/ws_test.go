package handler

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GoldenAges/internal/match/service"
	"GoldenAges/internal/shared/transport"
	"GoldenAges/internal/shared/transport/ws"
	"GoldenAges/modules/kit/logx"
)

func newWsRouter(e *env) *ws.Router {
	r := ws.NewRouter(logx.Nop())
	NewWsHandler(e.match).RegisterRoutes(r)
	return r
}

func dispatch(r *ws.Router, conn ws.WSConn, name string, msg any) *ws.RespBody {
	req := &ws.WsMsgReq{Body: &ws.ReqBody{Seq: 1, Name: name, Msg: msg}, Conn: conn}
	resp := &ws.WsMsgResp{Body: &ws.RespBody{Seq: 1, Name: name}}
	r.Dispatch(req, resp)
	return resp.Body
}

func TestWs_未加入时拒绝操作(t *testing.T) {
	e := newEnv(t)
	r := newWsRouter(e)

	body := dispatch(r, newFakeConn(), "match.move", map[string]any{"matchId": "1", "name": "setPlayerColor"})
	assert.Equal(t, transport.SessionInvalid, body.Code)

	body = dispatch(r, newFakeConn(), "match.join", map[string]any{"token": "nope"})
	assert.Equal(t, transport.Unauthorized, body.Code)

	body = dispatch(r, newFakeConn(), "match.join", nil)
	assert.Equal(t, transport.InvalidParam, body.Code)
}

func TestWs_加入后提交并通知对手(t *testing.T) {
	e := newEnv(t)
	r := newWsRouter(e)
	id, tokens := e.create(t)
	idStr := strconv.FormatInt(id, 10)

	me, other := newFakeConn(), newFakeConn()
	body := dispatch(r, me, "match.join", map[string]any{"token": tokens[0]})
	require.Equal(t, transport.OK, body.Code, body.Msg)
	assert.Equal(t, 1, me.GetProperty(ws.PropUID))
	body = dispatch(r, other, "match.join", map[string]any{"token": tokens[1]})
	require.Equal(t, transport.OK, body.Code, body.Msg)

	body = dispatch(r, me, "match.move", map[string]any{
		"matchId": idStr,
		"name":    "setPlayerColor",
		"args":    map[string]any{"color": "black"},
	})
	require.Equal(t, transport.OK, body.Code, body.Msg)

	require.Eventually(t, func() bool { return len(other.Pushes()) == 1 }, time.Second, 5*time.Millisecond)
	p := other.Pushes()[0]
	assert.Equal(t, service.UpdateMsg, p.name)
	notice, ok := p.data.(service.UpdateNotice)
	require.True(t, ok)
	assert.Equal(t, id, notice.MatchID)
	assert.Equal(t, 1, notice.By)
	assert.Empty(t, me.Pushes())

	body = dispatch(r, other, "match.state", map[string]any{"matchId": idStr})
	require.Equal(t, transport.OK, body.Code, body.Msg)

	body = dispatch(r, other, "match.rankings", map[string]any{"matchId": id})
	require.Equal(t, transport.OK, body.Code, body.Msg)
}

func TestWs_非法操作返回原因(t *testing.T) {
	e := newEnv(t)
	r := newWsRouter(e)
	id, tokens := e.create(t)

	conn := newFakeConn()
	require.Equal(t, transport.OK, dispatch(r, conn, "match.join", map[string]any{"token": tokens[1]}).Code)

	body := dispatch(r, conn, "match.move", map[string]any{
		"matchId": strconv.FormatInt(id, 10),
		"name":    "placeTile",
		"args":    map[string]any{"anchorRow": 0, "anchorCol": 4},
	})
	assert.Equal(t, transport.InvalidMove, body.Code)
	assert.Equal(t, "not your turn", body.Msg)
}
