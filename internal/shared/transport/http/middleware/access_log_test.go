package middleware

import (
	nethttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"GoldenAges/internal/shared/transport"
	"GoldenAges/modules/kit/logx"
)

func serve(t *testing.T, register func(*gin.Engine), method, path string) map[string]any {
	t.Helper()
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.DebugLevel)

	e := gin.New()
	e.Use(AccessLog(logx.NewZapLogger(zap.New(core))))
	register(e)
	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(method, path, nil))

	all := logs.FilterMessage("access").All()
	if len(all) != 1 {
		t.Fatalf("期望一条访问日志，got=%d", len(all))
	}
	return all[0].ContextMap()
}

func TestAccessLog_取handler写入的业务码(t *testing.T) {
	m := serve(t, func(e *gin.Engine) {
		e.POST("/api/matches/:id/moves", func(c *gin.Context) {
			transport.SetBizCode(c.Request.Context(), transport.BizCode(transport.InvalidMove))
			transport.SetErrorReason(c.Request.Context(), "not your turn")
			c.JSON(nethttp.StatusOK, gin.H{"code": transport.InvalidMove})
		})
	}, nethttp.MethodPost, "/api/matches/7/moves")

	if m["action"] != "POST /api/matches/:id/moves" {
		t.Fatalf("action 应使用路由模板: %v", m["action"])
	}
	if m["biz_code"] != int64(transport.InvalidMove) || m["error_reason"] != "not your turn" {
		t.Fatalf("字段不符: %v", m)
	}
}

func TestAccessLog_未写业务码按状态推断(t *testing.T) {
	m := serve(t, func(e *gin.Engine) {
		e.GET("/healthz", func(c *gin.Context) { c.Status(nethttp.StatusOK) })
	}, nethttp.MethodGet, "/healthz")
	if m["biz_code"] != int64(transport.OK) {
		t.Fatalf("biz_code=%v", m["biz_code"])
	}

	m = serve(t, func(*gin.Engine) {}, nethttp.MethodGet, "/nope")
	if m["biz_code"] != int64(transport.InvalidParam) || m["action"] != "GET /nope" {
		t.Fatalf("404 推断不符: %v", m)
	}
}
