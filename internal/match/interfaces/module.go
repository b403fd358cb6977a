package interfaces

import (
	"github.com/gin-gonic/gin"
	"google.golang.org/grpc"

	"GoldenAges/internal/match/interfaces/handler"
	"GoldenAges/internal/match/service"
	"GoldenAges/internal/shared/session"
	transportgrpc "GoldenAges/internal/shared/transport/grpc"
	transporthttp "GoldenAges/internal/shared/transport/http"
	"GoldenAges/internal/shared/transport/ws"
	"GoldenAges/modules/kit/logx"
)

type Module struct {
	wsHandler   *handler.WsHandler
	httpHandler *handler.HttpHandler
	grpcHandler *handler.GrpcHandler
}

func New(svc *service.MatchService, s session.Manager, log logx.Logger) *Module {
	m := handler.NewMatch(svc, s, log)
	return &Module{
		wsHandler:   handler.NewWsHandler(m),
		httpHandler: handler.NewHttpHandler(m),
		grpcHandler: handler.NewGrpcHandler(m),
	}
}

func (m *Module) WsRegister(r *ws.Router) {
	m.wsHandler.RegisterRoutes(r)
}

func (m *Module) HttpRegister(g *gin.RouterGroup) {
	m.httpHandler.RegisterRoutes(g)
}

func (m *Module) GrpcRegister(s *grpc.Server) {
	handler.RegisterMatchServiceServer(s, m.grpcHandler)
}

var _ ws.Registrar = (*Module)(nil)
var _ transporthttp.Registrar = (*Module)(nil)
var _ transportgrpc.Registrar = (*Module)(nil)
