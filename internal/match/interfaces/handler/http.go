package handler

import (
	"context"
	nethttp "net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"GoldenAges/internal/match/interfaces/handler/dto"
	"GoldenAges/internal/match/service"
	"GoldenAges/internal/shared/actor/messages"
	"GoldenAges/internal/shared/security"
	"GoldenAges/internal/shared/transport"
)

type HttpHandler struct {
	match *Match
}

func NewHttpHandler(m *Match) *HttpHandler {
	return &HttpHandler{match: m}
}

func (h *HttpHandler) RegisterRoutes(group *gin.RouterGroup) {
	mg := group.Group("/match")
	mg.POST("", h.create)
	mg.GET("/:id", h.get)
	mg.POST("/:id/move", h.move)
	mg.GET("/:id/rankings", h.rankings)

	group.GET("/player/:uid/results", h.history)
}

type moveBody struct {
	Name string         `json:"name" binding:"required"`
	Args map[string]any `json:"args"`
}

type rankingsResp struct {
	MatchID  int64                 `json:"matchId,string"`
	GameOver bool                  `json:"gameOver"`
	Rankings []messages.RankingRow `json:"rankings"`
}

func rankingsBody(r *messages.RankingsReply) rankingsResp {
	if r == nil {
		return rankingsResp{Rankings: []messages.RankingRow{}}
	}
	return rankingsResp{MatchID: r.MatchID, GameOver: r.GameOver, Rankings: r.Rankings}
}

func (h *HttpHandler) create(c *gin.Context) {
	ctx := c.Request.Context()

	var req service.CreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, transport.InvalidParam, "参数有误")
		return
	}
	resp, err := h.match.Service.Create(ctx, req)
	if err != nil {
		h.error(ctx, c, err)
		return
	}
	h.ok(c, resp)
}

// get 不带 Authorization 时按旁观者视图返回。
func (h *HttpHandler) get(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := h.matchID(c)
	if !ok {
		return
	}
	uid := 0
	if header := c.GetHeader("Authorization"); header != "" {
		claims, err := security.ParseBearer(header)
		if err != nil {
			h.error(ctx, c, err)
			return
		}
		uid = claims.Uid
	}
	snap, err := h.match.Service.Get(ctx, uid, id)
	if err != nil {
		h.error(ctx, c, err)
		return
	}
	h.ok(c, snap)
}

func (h *HttpHandler) move(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := h.matchID(c)
	if !ok {
		return
	}
	claims, err := security.ParseBearer(c.GetHeader("Authorization"))
	if err != nil {
		h.error(ctx, c, err)
		return
	}
	var body moveBody
	if err := c.ShouldBindJSON(&body); err != nil {
		h.fail(c, transport.InvalidParam, "参数有误")
		return
	}
	snap, err := h.match.Service.Submit(ctx, claims.Uid, service.MoveReq{
		MatchID: id,
		Name:    body.Name,
		Args:    body.Args,
	})
	if err != nil {
		h.error(ctx, c, err)
		return
	}
	h.ok(c, snap)
}

func (h *HttpHandler) rankings(c *gin.Context) {
	ctx := c.Request.Context()

	id, ok := h.matchID(c)
	if !ok {
		return
	}
	reply, err := h.match.Service.Rankings(ctx, id)
	if err != nil {
		h.error(ctx, c, err)
		return
	}
	h.ok(c, rankingsBody(reply))
}

func (h *HttpHandler) history(c *gin.Context) {
	ctx := c.Request.Context()

	uid, err := strconv.Atoi(c.Param("uid"))
	if err != nil || uid <= 0 {
		h.fail(c, transport.InvalidParam, "参数有误")
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	rows, err := h.match.Service.History(ctx, uid, limit)
	if err != nil {
		h.error(ctx, c, err)
		return
	}
	h.ok(c, rows)
}

func (h *HttpHandler) matchID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		h.fail(c, transport.InvalidParam, "对局 id 有误")
		return 0, false
	}
	return id, true
}

func (h *HttpHandler) ok(c *gin.Context, data any) {
	transport.SetBizCode(c.Request.Context(), transport.BizCode(transport.OK))
	c.JSON(nethttp.StatusOK, dto.Success(transport.OK, data))
}

func (h *HttpHandler) fail(c *gin.Context, code int, msg string) {
	transport.SetBizCode(c.Request.Context(), transport.BizCode(code))
	c.JSON(nethttp.StatusOK, dto.Error(code, msg))
}

func (h *HttpHandler) error(ctx context.Context, c *gin.Context, err error) {
	code, msg := HandleError(ctx, err)
	h.fail(c, code, msg)
}
