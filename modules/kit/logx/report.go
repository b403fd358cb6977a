package logx

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"GoldenAges/modules/kit/errx"
)

// BizLog 规则拒绝、参数错误一类的业务日志。
type BizLog struct {
	Action  string
	Reason  string
	Message string
}

// SysLog 存储、超时一类的技术错误日志。
type SysLog struct {
	Action string
	Err    error
}

func NewBizLog(action, reason, message string) BizLog {
	return BizLog{Action: action, Reason: reason, Message: message}
}

func NewSysLog(action string, err error) SysLog {
	return SysLog{Action: action, Err: err}
}

// headline 拼出 "action, k:v, k:v"，空值跳过。
func headline(action string, kv ...string) string {
	var b strings.Builder
	b.WriteString(action)
	for i := 0; i+1 < len(kv); i += 2 {
		if kv[i+1] == "" {
			continue
		}
		b.WriteString(", ")
		b.WriteString(kv[i])
		b.WriteString(":")
		b.WriteString(kv[i+1])
	}
	return b.String()
}

// ReportAccessWithLoggerContext 访问日志。0 为 INFO，>=500 为 ERROR，其余 WARN。
func ReportAccessWithLoggerContext(ctx context.Context, l Logger, action string, bizCode int, fields ...zap.Field) {
	if l == nil {
		return
	}
	fs := append([]zap.Field{
		zap.String("log_type", "access"),
		zap.String("action", action),
		zap.Int("biz_code", bizCode),
	}, fields...)

	lc := l.WithContext(ctx)
	switch {
	case bizCode == 0:
		lc.Info("access", fs...)
	case bizCode >= 500:
		lc.Error("access", fs...)
	default:
		lc.Warn("access", fs...)
	}
}

// ReportBizWithLoggerContext 业务拒绝只记 INFO，不带栈。
func ReportBizWithLoggerContext(ctx context.Context, l Logger, biz BizLog, fields ...zap.Field) {
	if l == nil {
		return
	}
	action := biz.Action
	if action == "" {
		action = "biz_reject"
	}
	fs := []zap.Field{zap.String("err_type", "biz"), zap.String("action", action)}
	if biz.Reason != "" {
		fs = append(fs, zap.String("reason", biz.Reason))
	}
	if biz.Message != "" {
		fs = append(fs, zap.String("biz_message", biz.Message))
	}
	fs = append(fs, fields...)
	l.WithContext(ctx).Info(headline(action, "reason", biz.Reason, "msg", biz.Message), fs...)
}

// ReportSysErrorWithLoggerContext 技术错误记 ERROR，附带码、cause 链和首次转换处的栈。
func ReportSysErrorWithLoggerContext(ctx context.Context, l Logger, sys SysLog, fields ...zap.Field) {
	if sys.Err == nil || l == nil {
		return
	}
	action := sys.Action
	if action == "" {
		action = "sys_error"
	}
	meta := BuildErrorLog(sys.Err)
	fs := append([]zap.Field{zap.String("err_type", "sys"), zap.String("action", action)}, meta.Fields()...)
	fs = append(fs, fields...)

	msg := headline(action, "reason", meta.Reason, "error", meta.Error)
	if meta.Reason == "" {
		msg = headline(action, "error", meta.Error, "msg", meta.Msg)
	}
	l.WithContext(ctx).Error(msg, fs...)
}

// ReportErrorWithLoggerContext 业务拒绝走 biz，其余走 sys。拒绝的具体原因在 cause 上。
func ReportErrorWithLoggerContext(ctx context.Context, l Logger, action string, err error, fields ...zap.Field) {
	if err == nil || l == nil {
		return
	}
	e, ok := errx.From(err)
	if !ok || !errx.IsBiz(err) {
		ReportSysErrorWithLoggerContext(ctx, l, NewSysLog(action, err), fields...)
		return
	}
	reason := e.Reason()
	if reason == "" {
		reason = e.CodeText()
	}
	msg := e.Msg()
	if cause := e.Unwrap(); cause != nil {
		msg = cause.Error()
	}
	ReportBizWithLoggerContext(ctx, l, NewBizLog(action, reason, msg), fields...)
}
