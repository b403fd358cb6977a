package ws

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-think/openssl"
	"github.com/go-viper/mapstructure/v2"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"GoldenAges/internal/shared/security"
	"GoldenAges/internal/shared/utils"
	"GoldenAges/modules/kit/logx"
)

const (
	outQueueSize = 1000
	maxFrameSize = 64 << 10
)

type outFrame struct {
	body      *RespBody
	handshake bool
}

// WsServer 单条连接。needSecret=true 时收发都是 zip(aes-cbc(json))，否则是明文 JSON 文本帧。
type WsServer struct {
	conn       *websocket.Conn
	router     *Router
	outChan    chan *outFrame
	needSecret bool
	property   map[string]any
	sync.RWMutex
	done      chan struct{}
	closeOnce sync.Once
	log       logx.Logger
}

func NewWsServer(wsConn *websocket.Conn, l logx.Logger, needSecret bool) *WsServer {
	return &WsServer{
		conn:       wsConn,
		outChan:    make(chan *outFrame, outQueueSize),
		needSecret: needSecret,
		property:   make(map[string]any),
		done:       make(chan struct{}),
		log:        l,
	}
}

func (s *WsServer) Router(router *Router) {
	s.router = router
}

func (s *WsServer) SetProperty(key string, value any) {
	s.Lock()
	defer s.Unlock()
	s.property[key] = value
}

func (s *WsServer) GetProperty(key string) any {
	s.RLock()
	defer s.RUnlock()
	return s.property[key]
}

func (s *WsServer) RemoveProperty(key string) {
	s.Lock()
	defer s.Unlock()
	delete(s.property, key)
}

func (s *WsServer) Addr() string {
	return s.conn.RemoteAddr().String()
}

// Push 服务端主动推送，队列满时丢弃，不阻塞调用方。
func (s *WsServer) Push(name string, data any) {
	s.enqueue(&outFrame{body: &RespBody{Name: name, Msg: data}})
}

func (s *WsServer) enqueue(f *outFrame) {
	select {
	case <-s.done:
	case s.outChan <- f:
	default:
		s.log.Warn("ws_server out queue full, drop", zap.String("name", f.body.Name), zap.String("remote", s.Addr()))
	}
}

func (s *WsServer) Run() {
	go s.readMsgLoop()
	go s.writeMsgLoop()
}

func (s *WsServer) readMsgLoop() {
	defer func() {
		if err := recover(); err != nil {
			s.log.Error("ws readMsgLoop panic", zap.String("err", fmt.Sprintf("%v", err)))
		}
		s.Close()
	}()
	s.conn.SetReadLimit(maxFrameSize)

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warn("ws_server read msg", zap.Error(err))
			}
			return
		}

		plain, ok := s.decode(data)
		if !ok {
			continue
		}

		reqBody := ReqBody{}
		if err := json.Unmarshal(plain, &reqBody); err != nil {
			s.log.Warn("ws_server unmarshal json error", zap.Error(err))
			continue
		}

		req := WsMsgReq{Body: &reqBody, Conn: s}
		// 响应 seq 与请求一致
		resp := WsMsgResp{Body: &RespBody{Seq: reqBody.Seq, Name: reqBody.Name}}
		if reqBody.Name == RouteHeartbeat {
			h := &Heartbeat{}
			_ = mapstructure.Decode(reqBody.Msg, h)
			h.STime = time.Now().UnixMilli()
			resp.Body.Msg = h
		} else {
			s.log.Debug("ws_server read msg", zap.String("name", reqBody.Name), zap.Int64("seq", reqBody.Seq))
			s.router.Dispatch(&req, &resp)
		}

		s.enqueue(&outFrame{body: resp.Body})
	}
}

func (s *WsServer) decode(data []byte) ([]byte, bool) {
	if !s.needSecret {
		return data, true
	}

	secretData, err := security.UnZip(data)
	if err != nil {
		s.log.Warn("ws_server unzip error", zap.Error(err))
		return nil, false
	}

	key, _ := s.GetProperty(propSecret).(string)
	if key == "" {
		s.log.Warn("ws_server secret key not found", zap.String("remote", s.Addr()))
		s.handshake()
		return nil, false
	}

	decrypted, err := security.AesCBCDecrypt(secretData, []byte(key), []byte(key), openssl.ZEROS_PADDING)
	if err != nil {
		s.log.Warn("ws_server decrypt error", zap.Error(err))
		// 密钥对不上，重新握手
		s.handshake()
		return nil, false
	}
	return decrypted, true
}

func (s *WsServer) writeMsgLoop() {
	for {
		select {
		case f := <-s.outChan:
			if f.body.Name != RouteHeartbeat {
				s.log.Debug("ws_server write msg", zap.String("name", f.body.Name), zap.Int("code", f.body.Code))
			}
			if err := s.write(f); err != nil {
				s.log.Warn("ws_server write error", zap.Error(err))
				s.Close()
				return
			}
		case <-s.done:
			return
		}
	}
}

func (s *WsServer) Close() {
	s.closeOnce.Do(func() {
		_ = s.conn.Close()
		close(s.done)
	})
}

func (s *WsServer) Done() <-chan struct{} {
	return s.done
}

func (s *WsServer) write(f *outFrame) error {
	data, err := json.Marshal(f.body)
	if err != nil {
		s.log.Error("ws_server marshal json error", zap.Error(err))
		return nil
	}

	if !s.needSecret {
		return s.conn.WriteMessage(websocket.TextMessage, data)
	}

	// 握手帧只压缩不加密
	if !f.handshake {
		key, _ := s.GetProperty(propSecret).(string)
		if key == "" {
			s.log.Warn("ws_server write without secret key", zap.String("name", f.body.Name))
			return nil
		}
		data, err = security.AesCBCEncrypt(data, []byte(key), []byte(key), openssl.ZEROS_PADDING)
		if err != nil {
			s.log.Error("ws_server encrypt error", zap.Error(err))
			return nil
		}
	}

	zipped, err := security.Zip(data)
	if err != nil {
		s.log.Error("ws_server zip error", zap.Error(err))
		return nil
	}
	// 压缩后的二进制必须走 BinaryMessage
	return s.conn.WriteMessage(websocket.BinaryMessage, zipped)
}

func (s *WsServer) handshake() {
	key, _ := s.GetProperty(propSecret).(string)
	if key == "" {
		key = utils.RandSeq(16)
		s.SetProperty(propSecret, key)
	}
	s.enqueue(&outFrame{
		body:      &RespBody{Name: RouteHandshake, Msg: &Handshake{Key: key}},
		handshake: true,
	})
}
