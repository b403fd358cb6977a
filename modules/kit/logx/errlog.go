package logx

import (
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"GoldenAges/modules/kit/errx"
)

const (
	maxCauseDepth = 20
	maxStackDepth = 32
)

// ErrorLog 从错误链里摘出来的可读信息，接口层和 actor 统一按它打印。
type ErrorLog struct {
	Error      string
	Code       string
	Msg        string
	Reason     string
	Data       map[string]any
	CauseChain []string
	Origin     string
	Stack      string
}

// BuildErrorLog 码、文案、data 取链上第一个 errx.Error；栈取链上第一份非空的栈。
func BuildErrorLog(err error) ErrorLog {
	if err == nil {
		return ErrorLog{}
	}
	out := ErrorLog{Error: err.Error()}
	if e, ok := errx.From(err); ok {
		out.Code = e.CodeText()
		out.Msg = e.Msg()
		out.Data = e.Data()
		out.Reason = e.Reason()
	}

	depth := 0
	for cur := err; cur != nil && depth <= maxCauseDepth; cur, depth = errors.Unwrap(cur), depth+1 {
		if depth > 0 {
			out.CauseChain = append(out.CauseChain, fmt.Sprintf("%T: %v", cur, cur))
		}
		if out.Stack != "" {
			continue
		}
		if e, ok := cur.(*errx.Error); ok {
			out.Origin, out.Stack = formatStack(e.Stack(), maxStackDepth)
		}
	}
	return out
}

// Fields sys 日志附带的结构化字段，空值不输出。
func (m ErrorLog) Fields() []zap.Field {
	fs := make([]zap.Field, 0, 5)
	if m.Code != "" {
		fs = append(fs, zap.String("error_code", m.Code))
	}
	if len(m.CauseChain) > 0 {
		fs = append(fs, zap.Strings("cause_chain", m.CauseChain))
	}
	if len(m.Data) > 0 {
		fs = append(fs, zap.Any("error_data", m.Data))
	}
	if m.Origin != "" {
		fs = append(fs, zap.String("origin_caller", m.Origin))
	}
	if m.Stack != "" {
		fs = append(fs, zap.String("stack_origin", m.Stack))
	}
	return fs
}

func formatStack(pcs []uintptr, maxFrames int) (origin, stack string) {
	if len(pcs) == 0 {
		return "", ""
	}
	frames := runtime.CallersFrames(pcs)
	lines := make([]string, 0, maxFrames)
	for len(lines) < maxFrames {
		f, more := frames.Next()
		if f.Function == "" && f.File == "" {
			break
		}
		lines = append(lines, f.Function+" "+f.File+":"+strconv.Itoa(f.Line))
		if !more {
			break
		}
	}
	if len(lines) == 0 {
		return "", ""
	}
	return lines[0], strings.Join(lines, "\n")
}
