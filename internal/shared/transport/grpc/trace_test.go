package grpc

import (
	"context"
	"testing"

	"google.golang.org/grpc/metadata"

	"GoldenAges/modules/kit/tracex"
)

func TestWithOutgoingTrace_没有trace时补一个(t *testing.T) {
	ctx := withOutgoingTrace(context.Background())
	md, ok := metadata.FromOutgoingContext(ctx)
	if !ok || len(md.Get(mdTraceID)) != 1 || md.Get(mdTraceID)[0] == "" {
		t.Fatalf("期望写入 trace id，md=%v", md)
	}
	if len(md.Get(mdSpanID)) != 0 {
		t.Fatalf("没有 span 时不应写 span，md=%v", md)
	}
}

func TestWithIncomingTrace_还原调用方trace(t *testing.T) {
	md := metadata.Pairs(mdTraceID, "t-1", mdSpanID, "s-1")
	ctx := withIncomingTrace(metadata.NewIncomingContext(context.Background(), md))

	if tid, _ := tracex.TraceIDFrom(ctx); tid != "t-1" {
		t.Fatalf("trace=%q", tid)
	}
	if sid, _ := tracex.SpanIDFrom(ctx); sid != "s-1" {
		t.Fatalf("span=%q", sid)
	}

	bare := withIncomingTrace(context.Background())
	if _, ok := tracex.TraceIDFrom(bare); ok {
		t.Fatalf("没有 metadata 时不应凭空生成 trace")
	}
}
