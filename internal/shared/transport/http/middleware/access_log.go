package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"GoldenAges/internal/shared/transport"
	"GoldenAges/modules/kit/logx"
)

// AccessLog handler 通过 transport.SetBizCode 写业务码，没写时按 HTTP 状态推断。
func AccessLog(log logx.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		ctx := transport.Begin(c.Request.Context(), "http", c.Request.Method+" "+route)
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if len(c.Errors) > 0 {
			transport.SetErrorReason(ctx, c.Errors.Last().Error())
		}
		if rec := transport.RecordFrom(ctx); rec != nil && !rec.Coded() {
			transport.SetBizCode(ctx, codeFromStatus(c.Writer.Status()))
		}
		transport.Finish(ctx, log)
	}
}

func codeFromStatus(status int) transport.BizCode {
	switch {
	case status < http.StatusBadRequest:
		return transport.BizCode(transport.OK)
	case status == http.StatusNotFound, status == http.StatusMethodNotAllowed:
		return transport.BizCode(transport.InvalidParam)
	case status == http.StatusUnauthorized:
		return transport.BizCode(transport.Unauthorized)
	}
	return transport.BizCode(transport.SystemError)
}
