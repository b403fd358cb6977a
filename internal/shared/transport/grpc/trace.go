package grpc

import (
	"context"

	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"GoldenAges/modules/kit/tracex"
)

// 对局服务只有 unary 方法，trace 经 metadata 透传。
const (
	mdTraceID = "x-trace-id"
	mdSpanID  = "x-span-id"
)

// UnaryClientTraceInterceptor 把 trace/span 写进 outgoing metadata，ctx 上没有 trace 时新建。
func UnaryClientTraceInterceptor() gogrpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *gogrpc.ClientConn, invoker gogrpc.UnaryInvoker, opts ...gogrpc.CallOption) error {
		return invoker(withOutgoingTrace(ctx), method, req, reply, cc, opts...)
	}
}

// UnaryServerTraceInterceptor 从 incoming metadata 还原调用方的 trace/span。
func UnaryServerTraceInterceptor() gogrpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, _ *gogrpc.UnaryServerInfo, handler gogrpc.UnaryHandler) (any, error) {
		return handler(withIncomingTrace(ctx), req)
	}
}

func withOutgoingTrace(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = tracex.EnsureTraceID(ctx)
	tid, _ := tracex.TraceIDFrom(ctx)
	kv := []string{mdTraceID, tid}
	if sid, ok := tracex.SpanIDFrom(ctx); ok {
		kv = append(kv, mdSpanID, sid)
	}
	return metadata.AppendToOutgoingContext(ctx, kv...)
}

func withIncomingTrace(ctx context.Context) context.Context {
	md, _ := metadata.FromIncomingContext(ctx)
	if tid := firstValue(md, mdTraceID); tid != "" {
		ctx = tracex.WithTraceID(ctx, tid)
	}
	if sid := firstValue(md, mdSpanID); sid != "" {
		ctx = tracex.WithSpanID(ctx, sid)
	}
	return ctx
}

func firstValue(md metadata.MD, key string) string {
	for _, v := range md.Get(key) {
		if v != "" {
			return v
		}
	}
	return ""
}
