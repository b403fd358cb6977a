package handler

import (
	"context"
	"encoding/json"

	"github.com/go-viper/mapstructure/v2"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"GoldenAges/internal/match/service"
	"GoldenAges/internal/shared/security"
	"GoldenAges/modules/kit/errx"
	"GoldenAges/modules/kit/tracex"
)

// 没有 .proto 生成代码，请求和响应都用 google.protobuf.Struct 承载 JSON 形状的数据。
const (
	MatchServiceName = "goldenages.match.v1.MatchService"

	MethodSubmit   = "/" + MatchServiceName + "/Submit"
	MethodGet      = "/" + MatchServiceName + "/Get"
	MethodRankings = "/" + MatchServiceName + "/Rankings"
)

type MatchServiceServer interface {
	Submit(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	Get(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
	Rankings(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
}

var MatchServiceDesc = grpc.ServiceDesc{
	ServiceName: MatchServiceName,
	HandlerType: (*MatchServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Submit", Handler: unaryHandler(MethodSubmit, MatchServiceServer.Submit)},
		{MethodName: "Get", Handler: unaryHandler(MethodGet, MatchServiceServer.Get)},
		{MethodName: "Rankings", Handler: unaryHandler(MethodRankings, MatchServiceServer.Rankings)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "goldenages/match/v1/match.proto",
}

func RegisterMatchServiceServer(s grpc.ServiceRegistrar, srv MatchServiceServer) {
	s.RegisterService(&MatchServiceDesc, srv)
}

type structMethod func(MatchServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call structMethod) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(MatchServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(MatchServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// MatchServiceClient 脚本机器人用的客户端。
type MatchServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewMatchServiceClient(cc grpc.ClientConnInterface) *MatchServiceClient {
	return &MatchServiceClient{cc: cc}
}

func (c *MatchServiceClient) Submit(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, MethodSubmit, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *MatchServiceClient) Get(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, MethodGet, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *MatchServiceClient) Rankings(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, MethodRankings, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

type GrpcHandler struct {
	match *Match
}

func NewGrpcHandler(m *Match) *GrpcHandler {
	return &GrpcHandler{match: m}
}

func (h *GrpcHandler) Submit(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	ctx = tracex.WithSpanID(ctx, "match")

	uid, err := uidFromMetadata(ctx, true)
	if err != nil {
		return nil, toRPCError(ctx, err)
	}
	var req service.MoveReq
	if err := decodeStruct(in, &req); err != nil {
		return nil, toRPCError(ctx, errx.ErrReqParamERR.WithCause(err))
	}
	snap, err := h.match.Service.Submit(ctx, uid, req)
	if err != nil {
		return nil, toRPCError(ctx, err)
	}
	return toStruct(ctx, snap)
}

func (h *GrpcHandler) Get(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	ctx = tracex.WithSpanID(ctx, "match")

	uid, err := uidFromMetadata(ctx, false)
	if err != nil {
		return nil, toRPCError(ctx, err)
	}
	var req struct {
		MatchID int64 `json:"matchId"`
	}
	if err := decodeStruct(in, &req); err != nil {
		return nil, toRPCError(ctx, errx.ErrReqParamERR.WithCause(err))
	}
	snap, err := h.match.Service.Get(ctx, uid, req.MatchID)
	if err != nil {
		return nil, toRPCError(ctx, err)
	}
	return toStruct(ctx, snap)
}

func (h *GrpcHandler) Rankings(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	ctx = tracex.WithSpanID(ctx, "match")

	var req struct {
		MatchID int64 `json:"matchId"`
	}
	if err := decodeStruct(in, &req); err != nil {
		return nil, toRPCError(ctx, errx.ErrReqParamERR.WithCause(err))
	}
	reply, err := h.match.Service.Rankings(ctx, req.MatchID)
	if err != nil {
		return nil, toRPCError(ctx, err)
	}
	return toStruct(ctx, rankingsBody(reply))
}

// uidFromMetadata 读取 authorization 元数据；required 为 false 且未携带时返回 0（旁观者）。
func uidFromMetadata(ctx context.Context, required bool) (int, error) {
	md, _ := metadata.FromIncomingContext(ctx)
	values := md.Get("authorization")
	if len(values) == 0 || values[0] == "" {
		if required {
			return 0, errx.ErrUnauthorized.WithCause(security.ErrTokenMissing)
		}
		return 0, nil
	}
	claims, err := security.ParseBearer(values[0])
	if err != nil {
		return 0, errx.ErrUnauthorized.WithCause(err)
	}
	return claims.Uid, nil
}

// decodeStruct 大整数 id 建议以字符串传入，number 在 Struct 里是 float64。
func decodeStruct(in *structpb.Struct, dst any) error {
	if in == nil {
		return errx.ErrReqParamERR
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           dst,
	})
	if err != nil {
		return err
	}
	return dec.Decode(in.AsMap())
}

func toStruct(ctx context.Context, v any) (*structpb.Struct, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, toRPCError(ctx, errx.ErrInternal.WithCause(err))
	}
	out := new(structpb.Struct)
	if err := protojson.Unmarshal(b, out); err != nil {
		return nil, toRPCError(ctx, errx.ErrInternal.WithCause(err))
	}
	return out, nil
}
