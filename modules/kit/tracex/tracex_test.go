package tracex

import (
	"context"
	"testing"
)

func TestEnsureTraceID_已有则不覆盖(t *testing.T) {
	ctx := WithTraceID(context.Background(), "t-1")
	if got, _ := TraceIDFrom(EnsureTraceID(ctx)); got != "t-1" {
		t.Fatalf("trace id 被覆盖: %q", got)
	}

	fresh := EnsureTraceID(context.Background())
	got, ok := TraceIDFrom(fresh)
	if !ok || len(got) != 32 {
		t.Fatalf("期望生成 32 位 trace id，got=%q", got)
	}
}

func TestSpanID_与TraceID互不干扰(t *testing.T) {
	ctx := WithSpanID(WithTraceID(context.Background(), "t-1"), "ws")
	if tid, _ := TraceIDFrom(ctx); tid != "t-1" {
		t.Fatalf("tid=%q", tid)
	}
	if sid, _ := SpanIDFrom(ctx); sid != "ws" {
		t.Fatalf("sid=%q", sid)
	}
}

func TestFrom_空值视为不存在(t *testing.T) {
	ctx := WithSpanID(context.Background(), "")
	if _, ok := SpanIDFrom(ctx); ok {
		t.Fatalf("空 span 不应视为存在")
	}
	var none context.Context
	if _, ok := TraceIDFrom(none); ok {
		t.Fatalf("nil ctx 不应有 trace")
	}
}
