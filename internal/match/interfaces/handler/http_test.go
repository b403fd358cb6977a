package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GoldenAges/internal/shared/transport"
)

type httpResp struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func newEngine(e *env) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	NewHttpHandler(e.match).RegisterRoutes(engine.Group("/api"))
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, token string, body any) httpResp {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	require.Equal(t, nethttp.StatusOK, w.Code)

	var out httpResp
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHttp_创建对局签发token(t *testing.T) {
	e := newEnv(t)
	engine := newEngine(e)

	out := doJSON(t, engine, nethttp.MethodPost, "/api/match", "", map[string]any{"seats": []int{1, 2}, "seed": 5})
	require.Equal(t, transport.OK, out.Code, out.Msg)

	var data struct {
		Match struct {
			MatchID string `json:"matchId"`
			Seat    int    `json:"seat"`
			Phase   string `json:"phase"`
		} `json:"match"`
		Tokens []struct {
			Seat  int    `json:"seat"`
			Uid   int    `json:"uid"`
			Token string `json:"token"`
		} `json:"tokens"`
	}
	require.NoError(t, json.Unmarshal(out.Data, &data))
	assert.Equal(t, "101", data.Match.MatchID)
	assert.Equal(t, -1, data.Match.Seat)
	assert.Equal(t, "tilePlacement", data.Match.Phase)
	require.Len(t, data.Tokens, 2)
	assert.Equal(t, 2, data.Tokens[1].Uid)
	assert.NotEmpty(t, data.Tokens[1].Token)
}

func TestHttp_创建参数错误(t *testing.T) {
	e := newEnv(t)
	engine := newEngine(e)

	out := doJSON(t, engine, nethttp.MethodPost, "/api/match", "", map[string]any{"seats": []int{1}})
	assert.Equal(t, transport.InvalidParam, out.Code)

	out = doJSON(t, engine, nethttp.MethodPost, "/api/match", "", map[string]any{"seats": "x"})
	assert.Equal(t, transport.InvalidParam, out.Code)
}

func TestHttp_提交操作(t *testing.T) {
	e := newEnv(t)
	engine := newEngine(e)
	id, tokens := e.create(t)
	path := fmt.Sprintf("/api/match/%d/move", id)

	out := doJSON(t, engine, nethttp.MethodPost, path, "", map[string]any{"name": "setPlayerColor"})
	assert.Equal(t, transport.Unauthorized, out.Code)

	out = doJSON(t, engine, nethttp.MethodPost, path, tokens[1], map[string]any{
		"name": "setPlayerColor",
		"args": map[string]any{"color": "purple"},
	})
	assert.Equal(t, transport.InvalidMove, out.Code)
	assert.Equal(t, "invalid color", out.Msg)

	out = doJSON(t, engine, nethttp.MethodPost, path, tokens[1], map[string]any{
		"name": "setPlayerColor",
		"args": map[string]any{"color": "green"},
	})
	require.Equal(t, transport.OK, out.Code, out.Msg)
	var snap struct {
		Version uint64 `json:"version"`
		Seat    int    `json:"seat"`
	}
	require.NoError(t, json.Unmarshal(out.Data, &snap))
	assert.Equal(t, uint64(1), snap.Version)
	assert.Equal(t, 1, snap.Seat)
}

func TestHttp_查询视图与排名(t *testing.T) {
	e := newEnv(t)
	engine := newEngine(e)
	id, tokens := e.create(t)

	out := doJSON(t, engine, nethttp.MethodGet, fmt.Sprintf("/api/match/%d", id), tokens[0], nil)
	require.Equal(t, transport.OK, out.Code, out.Msg)
	var snap struct {
		Seat int `json:"seat"`
	}
	require.NoError(t, json.Unmarshal(out.Data, &snap))
	assert.Equal(t, 0, snap.Seat)

	out = doJSON(t, engine, nethttp.MethodGet, fmt.Sprintf("/api/match/%d", id), "bad-token", nil)
	assert.Equal(t, transport.Unauthorized, out.Code)

	out = doJSON(t, engine, nethttp.MethodGet, "/api/match/999", "", nil)
	assert.Equal(t, transport.MatchNotFound, out.Code)

	out = doJSON(t, engine, nethttp.MethodGet, "/api/match/abc", "", nil)
	assert.Equal(t, transport.InvalidParam, out.Code)

	out = doJSON(t, engine, nethttp.MethodGet, fmt.Sprintf("/api/match/%d/rankings", id), "", nil)
	require.Equal(t, transport.OK, out.Code, out.Msg)
	var r struct {
		GameOver bool `json:"gameOver"`
		Rankings []struct {
			Rank int `json:"rank"`
		} `json:"rankings"`
	}
	require.NoError(t, json.Unmarshal(out.Data, &r))
	assert.False(t, r.GameOver)
	assert.Len(t, r.Rankings, 2)
}

func TestHttp_玩家战绩(t *testing.T) {
	e := newEnv(t)
	engine := newEngine(e)

	out := doJSON(t, engine, nethttp.MethodGet, "/api/player/abc/results", "", nil)
	assert.Equal(t, transport.InvalidParam, out.Code)

	out = doJSON(t, engine, nethttp.MethodGet, "/api/player/1/results?limit=5", "", nil)
	require.Equal(t, transport.OK, out.Code)
	assert.JSONEq(t, "[]", string(out.Data))
}
