package transport

// BizCode 业务码的强类型封装，避免在日志上下文里误传。
type BizCode int

// 对外响应里的 code 字段。
const (
	OK             = 0
	InvalidParam   = 1
	SystemError    = 2
	SessionInvalid = 3
	Unauthorized   = 4
	Timeout        = 5

	MatchNotFound = 100
	MatchExists   = 101
	NotSeated     = 102
	InvalidMove   = 103
	MatchNotOver  = 104
)

var codeText = map[int]string{
	OK:             "ok",
	InvalidParam:   "invalid param",
	SystemError:    "system error",
	SessionInvalid: "session invalid",
	Unauthorized:   "unauthorized",
	Timeout:        "timeout",
	MatchNotFound:  "match not found",
	MatchExists:    "match already exists",
	NotSeated:      "not seated in match",
	InvalidMove:    "invalid move",
	MatchNotOver:   "match not over",
}

func CodeText(code int) string {
	if s, ok := codeText[code]; ok {
		return s
	}
	return "unknown"
}
