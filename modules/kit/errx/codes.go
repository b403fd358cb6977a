package errx

// 跨服务统一的系统类错误码。
// 对局相关的错误码（MATCH_*）在 entity 与 rules 包里定义。

const (
	// CodeInternal 服务内部不可预期错误（兜底）。
	CodeInternal Code = "INTERNAL_ERROR"
	// CodeUnavailable 依赖不可用（DB/下游服务/网络异常等）。
	CodeUnavailable Code = "SERVICE_UNAVAILABLE"
	// CodeTimeout 请求或依赖调用超时。
	CodeTimeout Code = "TIMEOUT"
	// CodeReqParamError 请求参数错误
	CodeReqParamError Code = "CODE_REQ_PARAM_ERROR"
	// CodeUnauthorized 身份校验失败
	CodeUnauthorized Code = "UNAUTHORIZED"
)

var (
	ErrInternal     = NewSys(CodeInternal, "服务器内部错误")
	ErrUnavailable  = NewSys(CodeUnavailable, "服务不可用")
	ErrTimeout      = NewSys(CodeTimeout, "请求超时")
	ErrReqParamERR  = NewSys(CodeReqParamError, "请求参数错误")
	ErrUnauthorized = NewBiz(CodeUnauthorized, "身份校验失败")
)
