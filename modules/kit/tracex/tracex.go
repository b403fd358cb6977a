// Package tracex 在 context 上携带 trace/span 标识，日志与 grpc metadata 共用。
package tracex

import (
	"context"
	"crypto/rand"
	"encoding/hex"
)

type ctxKey uint8

const (
	keyTrace ctxKey = iota
	keySpan
)

func WithTraceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, keyTrace, id)
}

func WithSpanID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, keySpan, id)
}

func TraceIDFrom(ctx context.Context) (string, bool) { return lookup(ctx, keyTrace) }

func SpanIDFrom(ctx context.Context) (string, bool) { return lookup(ctx, keySpan) }

// EnsureTraceID 没有 trace id 时补一个 32 位 hex。
func EnsureTraceID(ctx context.Context) context.Context {
	if _, ok := TraceIDFrom(ctx); ok {
		return ctx
	}
	return WithTraceID(ctx, NewTraceID())
}

func NewTraceID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return ""
	}
	return hex.EncodeToString(b[:])
}

func lookup(ctx context.Context, k ctxKey) (string, bool) {
	if ctx == nil {
		return "", false
	}
	s, _ := ctx.Value(k).(string)
	return s, s != ""
}
