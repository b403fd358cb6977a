package handler

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	matchactor "GoldenAges/internal/match/actor"
	"GoldenAges/internal/match/actors"
	"GoldenAges/internal/match/infra/persistence/memory"
	"GoldenAges/internal/match/service"
	"GoldenAges/internal/shared/session"
)

type env struct {
	match   *Match
	results *memory.ResultRepository
}

func newEnv(t *testing.T) *env {
	t.Helper()
	t.Setenv("JWT_SECRET", "handler-secret")

	results := memory.NewResultRepository()
	rt := matchactor.NewRuntime(nil, actors.Deps{
		Repo:       memory.NewMatchRepository(),
		Results:    results,
		FlushEvery: 50 * time.Millisecond,
	}, 2*time.Second)
	t.Cleanup(rt.Shutdown)

	var seq atomic.Int64
	seq.Store(100)
	sess := session.NewSessMgr()
	svc := service.NewMatchService(rt, sess,
		service.WithResults(results),
		service.WithIDGenerator(func() (int64, error) { return seq.Add(1), nil }),
	)
	return &env{match: NewMatch(svc, sess, nil), results: results}
}

// create 建一局 uid 1、2 的对局，返回对局 id 和各座位 token。
func (e *env) create(t *testing.T) (int64, []string) {
	t.Helper()
	resp, err := e.match.Service.Create(context.Background(), service.CreateReq{Seats: []int{1, 2}})
	require.NoError(t, err)
	tokens := make([]string, len(resp.Tokens))
	for i, tk := range resp.Tokens {
		tokens[i] = tk.Token
	}
	return resp.Match.MatchID, tokens
}

type pushed struct {
	name string
	data any
}

type fakeConn struct {
	mu     sync.Mutex
	props  map[string]any
	pushes []pushed
	done   chan struct{}
	once   sync.Once
}

func newFakeConn() *fakeConn {
	return &fakeConn{props: make(map[string]any), done: make(chan struct{})}
}

func (c *fakeConn) SetProperty(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.props[key] = value
}

func (c *fakeConn) GetProperty(key string) any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.props[key]
}

func (c *fakeConn) RemoveProperty(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.props, key)
}

func (c *fakeConn) Addr() string { return "fake" }

func (c *fakeConn) Push(name string, data any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pushes = append(c.pushes, pushed{name: name, data: data})
}

func (c *fakeConn) Close() { c.once.Do(func() { close(c.done) }) }

func (c *fakeConn) Done() <-chan struct{} { return c.done }

func (c *fakeConn) Pushes() []pushed {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]pushed(nil), c.pushes...)
}
