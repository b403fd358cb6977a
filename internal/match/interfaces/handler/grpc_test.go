package handler

import (
	"context"
	"net"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	transportgrpc "GoldenAges/internal/shared/transport/grpc"
	"GoldenAges/modules/kit/logx"
)

func newGrpcClient(t *testing.T, e *env) *MatchServiceClient {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	srv := transportgrpc.NewServer(logx.Nop())
	RegisterMatchServiceServer(srv, NewGrpcHandler(e.match))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := transportgrpc.Dial("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return NewMatchServiceClient(conn)
}

func mustStruct(t *testing.T, m map[string]any) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(m)
	require.NoError(t, err)
	return s
}

func withToken(token string) context.Context {
	return metadata.AppendToOutgoingContext(context.Background(), "authorization", "Bearer "+token)
}

func TestGrpc_旁观查询与未授权提交(t *testing.T) {
	e := newEnv(t)
	client := newGrpcClient(t, e)
	id, _ := e.create(t)
	idStr := strconv.FormatInt(id, 10)

	out, err := client.Get(context.Background(), mustStruct(t, map[string]any{"matchId": idStr}))
	require.NoError(t, err)
	assert.Equal(t, float64(-1), out.AsMap()["seat"])
	assert.Equal(t, idStr, out.AsMap()["matchId"])

	_, err = client.Submit(context.Background(), mustStruct(t, map[string]any{"matchId": idStr, "name": "setPlayerColor"}))
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}

func TestGrpc_提交操作(t *testing.T) {
	e := newEnv(t)
	client := newGrpcClient(t, e)
	id, tokens := e.create(t)
	idStr := strconv.FormatInt(id, 10)

	out, err := client.Submit(withToken(tokens[0]), mustStruct(t, map[string]any{
		"matchId": idStr,
		"name":    "setPlayerColor",
		"args":    map[string]any{"color": "yellow"},
	}))
	require.NoError(t, err)
	assert.Equal(t, float64(1), out.AsMap()["version"])

	_, err = client.Submit(withToken(tokens[0]), mustStruct(t, map[string]any{
		"matchId": idStr,
		"name":    "placeTile",
		"args":    map[string]any{"anchorRow": 5, "anchorCol": 9},
	}))
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))
}

func TestGrpc_对局不存在与排名(t *testing.T) {
	e := newEnv(t)
	client := newGrpcClient(t, e)

	_, err := client.Get(context.Background(), mustStruct(t, map[string]any{"matchId": "999"}))
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = client.Rankings(context.Background(), mustStruct(t, map[string]any{}))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	id, _ := e.create(t)
	out, err := client.Rankings(context.Background(), mustStruct(t, map[string]any{"matchId": strconv.FormatInt(id, 10)}))
	require.NoError(t, err)
	rankings, ok := out.AsMap()["rankings"].([]any)
	require.True(t, ok)
	assert.Len(t, rankings, 2)
}
