package ws

// 客户端上行帧，Name 形如 "match.move"。
type ReqBody struct {
	Seq  int64  `json:"seq"`
	Name string `json:"name"`
	Msg  any    `json:"msg"`
}

// 下行帧，应答回带请求的 Seq，推送时 Seq 为 0。
type RespBody struct {
	Seq  int64  `json:"seq"`
	Name string `json:"name"`
	Code int    `json:"code"`
	Msg  any    `json:"msg"`
}

type WsMsgReq struct {
	Body *ReqBody
	Conn WSConn
}

type WsMsgResp struct {
	Body *RespBody
}

// WSConn 一条客户端连接。
type WSConn interface {
	Addr() string
	SetProperty(key string, value any)
	GetProperty(key string) any
	RemoveProperty(key string)
	Push(name string, data any)
	Close()
	Done() <-chan struct{}
}

// 连接层自己处理的两条路由，不进 Router。
const (
	RouteHandshake = "handshake"
	RouteHeartbeat = "heartbeat"
)

// 连接属性
const (
	PropUID    = "uid"
	propSecret = "secret"
)

type Handshake struct {
	Key string `json:"key"`
}

// Heartbeat 客户端带 ctime，服务端回填 stime 原样返回。
type Heartbeat struct {
	CTime int64 `json:"ctime" mapstructure:"ctime"`
	STime int64 `json:"stime" mapstructure:"stime"`
}
