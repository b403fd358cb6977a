package handler

import (
	"GoldenAges/internal/match/service"
	"GoldenAges/internal/shared/session"
	"GoldenAges/modules/kit/logx"
)

// Match 三种接入方式共用的依赖。
type Match struct {
	Service *service.MatchService
	Session session.Manager
	Log     logx.Logger
}

func NewMatch(svc *service.MatchService, s session.Manager, log logx.Logger) *Match {
	if log == nil {
		log = logx.Nop()
	}
	return &Match{Service: svc, Session: s, Log: log}
}
