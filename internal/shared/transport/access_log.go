package transport

import (
	"context"
	"time"

	"go.uber.org/zap"

	"GoldenAges/modules/kit/logx"
	"GoldenAges/modules/kit/tracex"
)

// Record 一次请求的访问记录。ws/http/grpc 入口各自 Begin，结束时 Finish。
type Record struct {
	Action string
	Code   BizCode
	Reason string

	coded bool
	start time.Time
}

type recordKey struct{}

// Begin 挂一条访问记录到 ctx 上，沿用 parent 的 trace id 与取消信号。
func Begin(parent context.Context, entry, action string) context.Context {
	if parent == nil {
		parent = context.Background()
	}
	if action == "" {
		action = entry + " unknown"
	}
	ctx := tracex.WithSpanID(tracex.EnsureTraceID(parent), entry)
	return context.WithValue(ctx, recordKey{}, &Record{
		Action: action,
		Code:   BizCode(SystemError),
		start:  time.Now(),
	})
}

func RecordFrom(ctx context.Context) *Record {
	if ctx == nil {
		return nil
	}
	r, _ := ctx.Value(recordKey{}).(*Record)
	return r
}

// Coded 是否有人显式写过业务码。
func (r *Record) Coded() bool { return r.coded }

func SetBizCode(ctx context.Context, code BizCode) {
	if r := RecordFrom(ctx); r != nil {
		r.Code = code
		r.coded = true
	}
}

// SetErrorReason 只记第一次写入的原因，空串忽略。
func SetErrorReason(ctx context.Context, reason string) {
	if r := RecordFrom(ctx); r != nil && reason != "" && r.Reason == "" {
		r.Reason = reason
	}
}

func Finish(ctx context.Context, log logx.Logger) {
	r := RecordFrom(ctx)
	if r == nil || log == nil {
		return
	}
	fields := []zap.Field{
		zap.Duration("latency", time.Since(r.start)),
		zap.String("code_text", CodeText(int(r.Code))),
	}
	if r.Code != BizCode(OK) && r.Reason != "" {
		fields = append(fields, zap.String("error_reason", r.Reason))
	}
	logx.ReportAccessWithLoggerContext(ctx, log, r.Action, int(r.Code), fields...)
}
