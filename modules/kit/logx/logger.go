package logx

import (
	"context"

	"go.uber.org/zap"

	"GoldenAges/modules/kit/tracex"
)

// Logger 各层共用的日志接口。WithContext 带上 trace/span，With 绑定固定字段（如 match_id）。
type Logger interface {
	Info(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
	Debug(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	WithContext(ctx context.Context) Logger
	With(fields ...zap.Field) Logger
}

// ZapLogger 基于 zap 的实现。
type ZapLogger struct {
	l *zap.Logger
}

func NewZapLogger(l *zap.Logger) *ZapLogger {
	if l == nil {
		l = zap.NewNop()
	}
	return &ZapLogger{l: l}
}

func (z *ZapLogger) WithContext(ctx context.Context) Logger {
	if z == nil || ctx == nil {
		return z.orNop()
	}
	fields := make([]zap.Field, 0, 2)
	if tid, ok := tracex.TraceIDFrom(ctx); ok {
		fields = append(fields, zap.String("trace_id", tid))
	}
	if sid, ok := tracex.SpanIDFrom(ctx); ok {
		fields = append(fields, zap.String("span_id", sid))
	}
	if len(fields) == 0 {
		return z
	}
	return &ZapLogger{l: z.l.With(fields...)}
}

func (z *ZapLogger) With(fields ...zap.Field) Logger {
	if z == nil {
		return NewZapLogger(nil)
	}
	if len(fields) == 0 {
		return z
	}
	return &ZapLogger{l: z.l.With(fields...)}
}

func (z *ZapLogger) orNop() Logger {
	if z == nil {
		return NewZapLogger(nil)
	}
	return z
}

func (z *ZapLogger) Info(msg string, fields ...zap.Field)  { z.l.Info(msg, fields...) }
func (z *ZapLogger) Error(msg string, fields ...zap.Field) { z.l.Error(msg, fields...) }
func (z *ZapLogger) Debug(msg string, fields ...zap.Field) { z.l.Debug(msg, fields...) }
func (z *ZapLogger) Warn(msg string, fields ...zap.Field)  { z.l.Warn(msg, fields...) }

type nopLogger struct{}

// Nop 丢弃所有输出，测试和未注入日志时使用。
func Nop() Logger { return nopLogger{} }

func (nopLogger) Info(string, ...zap.Field)            {}
func (nopLogger) Error(string, ...zap.Field)           {}
func (nopLogger) Debug(string, ...zap.Field)           {}
func (nopLogger) Warn(string, ...zap.Field)            {}
func (n nopLogger) WithContext(context.Context) Logger { return n }
func (n nopLogger) With(...zap.Field) Logger           { return n }
