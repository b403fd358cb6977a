package dto

// Response HTTP 统一响应体，access log 中间件从中读取 code。
type Response struct {
	Code int    `json:"code"`
	Msg  string `json:"msg,omitempty"`
	Data any    `json:"data,omitempty"`
}

func Success(code int, data any) Response {
	return Response{Code: code, Data: data}
}

func Error(code int, msg string) Response {
	return Response{Code: code, Msg: msg}
}

type JoinReq struct {
	Token string `json:"token"`
}

type JoinResp struct {
	Uid int `json:"uid"`
}

type MatchIDReq struct {
	MatchID int64 `json:"matchId,string"`
}
