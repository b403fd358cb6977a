package grpc

import (
	"context"
	"fmt"
	"runtime/debug"

	"go.uber.org/zap"
	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	"GoldenAges/internal/shared/transport"
	"GoldenAges/modules/kit/logx"
)

// Registrar 业务模块向 grpc server 注册服务。
type Registrar interface {
	GrpcRegister(s *gogrpc.Server)
}

// NewServer 拦截器顺序：trace 提取 -> panic 恢复 -> 访问日志。
func NewServer(log logx.Logger, opts ...gogrpc.ServerOption) *gogrpc.Server {
	if log == nil {
		log = logx.Nop()
	}
	base := []gogrpc.ServerOption{
		gogrpc.ChainUnaryInterceptor(
			UnaryServerTraceInterceptor(),
			UnaryServerRecoveryInterceptor(log),
			UnaryServerAccessLogInterceptor(log),
		),
	}
	return gogrpc.NewServer(append(base, opts...)...)
}

func Register(s *gogrpc.Server, rs ...Registrar) {
	for _, r := range rs {
		r.GrpcRegister(s)
	}
}

// Dial 建立带 trace 注入的明文连接。
func Dial(target string, opts ...gogrpc.DialOption) (*gogrpc.ClientConn, error) {
	base := []gogrpc.DialOption{
		gogrpc.WithTransportCredentials(insecure.NewCredentials()),
		gogrpc.WithChainUnaryInterceptor(UnaryClientTraceInterceptor()),
	}
	conn, err := gogrpc.NewClient(target, append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("dial %s failed: %w", target, err)
	}
	return conn, nil
}

func UnaryServerRecoveryInterceptor(log logx.Logger) gogrpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *gogrpc.UnaryServerInfo, handler gogrpc.UnaryHandler) (resp any, err error) {
		defer func() {
			if r := recover(); r != nil {
				log.WithContext(ctx).Error("grpc panic",
					zap.String("method", info.FullMethod),
					zap.Any("panic", r),
					zap.ByteString("stack", debug.Stack()),
				)
				err = status.Error(codes.Internal, "internal error")
			}
		}()
		return handler(ctx, req)
	}
}

// UnaryServerAccessLogInterceptor 业务码取自 handler 写进 context 的值，没写时按 grpc 状态推断。
func UnaryServerAccessLogInterceptor(log logx.Logger) gogrpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *gogrpc.UnaryServerInfo, handler gogrpc.UnaryHandler) (any, error) {
		ctx = transport.Begin(ctx, "grpc", "GRPC "+info.FullMethod)
		resp, err := handler(ctx, req)

		if err == nil {
			transport.SetBizCode(ctx, transport.BizCode(transport.OK))
		} else {
			transport.SetErrorReason(ctx, status.Convert(err).Message())
		}
		transport.Finish(ctx, log)
		return resp, err
	}
}
