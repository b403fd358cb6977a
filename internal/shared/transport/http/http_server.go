package http

import (
	"context"
	nethttp "net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"GoldenAges/internal/shared/transport/http/middleware"
	"GoldenAges/modules/kit/logx"
)

const probeTimeout = 2 * time.Second

// Registrar 业务模块向 HTTP 服务挂路由，路由统一在 /api 下。
type Registrar interface {
	HttpRegister(g *gin.RouterGroup)
}

// Probe /healthz 依次执行，任一失败返回 503。
type Probe func(ctx context.Context) error

type Server struct {
	engine *gin.Engine
	api    *gin.RouterGroup
	srv    *nethttp.Server
	log    logx.Logger
	probes map[string]Probe
}

func NewHttpServer(addr string, engine *gin.Engine, logger logx.Logger) *Server {
	if engine == nil {
		engine = gin.New()
	}
	if logger == nil {
		logger = logx.Nop()
	}
	s := &Server{
		engine: engine,
		log:    logger,
		probes: make(map[string]Probe),
		srv: &nethttp.Server{
			Addr:              addr,
			Handler:           engine,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
	engine.Use(gin.CustomRecovery(s.recovered), middleware.Cors(), middleware.AccessLog(logger))
	engine.GET("/healthz", s.healthz)
	s.api = engine.Group("/api")
	return s
}

func (s *Server) recovered(c *gin.Context, p any) {
	s.log.WithContext(c.Request.Context()).Error("http handler panic",
		zap.String("path", c.Request.URL.Path), zap.Any("panic", p))
	c.AbortWithStatus(nethttp.StatusInternalServerError)
}

// AddProbe 启动前调用，name 出现在 /healthz 的返回里。
func (s *Server) AddProbe(name string, p Probe) {
	s.probes[name] = p
}

func (s *Server) healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), probeTimeout)
	defer cancel()

	status, checks := nethttp.StatusOK, gin.H{}
	for name, probe := range s.probes {
		if err := probe(ctx); err != nil {
			status = nethttp.StatusServiceUnavailable
			checks[name] = err.Error()
			continue
		}
		checks[name] = "ok"
	}
	body := gin.H{"status": "ok", "checks": checks}
	if status != nethttp.StatusOK {
		body["status"] = "degraded"
	}
	c.JSON(status, body)
}

func (s *Server) Register(rs ...Registrar) {
	for _, r := range rs {
		r.HttpRegister(s.api)
	}
}

// Start 阻塞，Shutdown 之后返回 net/http.ErrServerClosed。
func (s *Server) Start() error { return s.srv.ListenAndServe() }

func (s *Server) Shutdown(ctx context.Context) error { return s.srv.Shutdown(ctx) }

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) Handler() nethttp.Handler { return s.engine }
