package ws

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"GoldenAges/modules/kit/logx"
)

// Server ws 入口：升级连接并登记在线连接，退出时统一关闭。
type Server struct {
	router     *Router
	log        logx.Logger
	needSecret bool
	upgrader   websocket.Upgrader

	mu    sync.Mutex
	conns map[*WsServer]struct{}
}

func NewServer(r *Router, l logx.Logger, needSecret bool) *Server {
	if l == nil {
		l = logx.Nop()
	}
	return &Server{
		router:     r,
		log:        l,
		needSecret: needSecret,
		conns:      make(map[*WsServer]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	raw, err := s.upgrader.Upgrade(w, req, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.String("remote", req.RemoteAddr), zap.Error(err))
		return
	}

	conn := NewWsServer(raw, s.log.With(zap.String("remote", raw.RemoteAddr().String())), s.needSecret)
	conn.Router(s.router)
	s.track(conn)
	if s.needSecret {
		conn.handshake()
	}
	conn.Run()
}

func (s *Server) track(c *WsServer) {
	s.mu.Lock()
	s.conns[c] = struct{}{}
	n := len(s.conns)
	s.mu.Unlock()
	c.log.Info("websocket connected", zap.Int("online", n))

	go func() {
		<-c.Done()
		s.mu.Lock()
		delete(s.conns, c)
		s.mu.Unlock()
	}()
}

// Online 当前连接数。
func (s *Server) Online() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.conns)
}

// CloseAll 停服时调用，每条连接的 Done 触发后 session 自动解绑。
func (s *Server) CloseAll() {
	s.mu.Lock()
	conns := make([]*WsServer, 0, len(s.conns))
	for c := range s.conns {
		conns = append(conns, c)
	}
	s.mu.Unlock()
	for _, c := range conns {
		c.Close()
	}
	if len(conns) > 0 {
		s.log.Info("websocket connections closed", zap.Int("count", len(conns)))
	}
}
