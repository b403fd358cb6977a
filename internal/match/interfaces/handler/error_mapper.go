package handler

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	matchactor "GoldenAges/internal/match/actor"
	"GoldenAges/internal/match/entity"
	"GoldenAges/internal/match/rules"
	"GoldenAges/internal/shared/security"
	"GoldenAges/internal/shared/transport"
	"GoldenAges/modules/kit/errx"
)

const busyMsg = "系统繁忙，请稍后重试"

// HandleError 把错误映射成客户端 code 和提示，同时把原因记到访问日志。
func HandleError(ctx context.Context, err error) (int, string) {
	if err == nil {
		return transport.OK, ""
	}
	code := ClientCode(err)
	transport.SetErrorReason(ctx, errorReason(err))

	switch code {
	case transport.InvalidMove:
		if reason := rules.RejectReason(err); reason != "" {
			return code, reason
		}
		return code, transport.CodeText(code)
	case transport.SystemError, transport.Timeout:
		return code, busyMsg
	}
	if e, ok := errx.From(err); ok && e.Msg() != "" {
		return code, e.Msg()
	}
	return code, transport.CodeText(code)
}

func ClientCode(err error) int {
	switch {
	case err == nil:
		return transport.OK
	case errors.Is(err, rules.ErrInvalidMove):
		return transport.InvalidMove
	case errors.Is(err, entity.ErrMatchNotFound):
		return transport.MatchNotFound
	case errors.Is(err, entity.ErrSeatNotFound):
		return transport.NotSeated
	case errors.Is(err, entity.ErrMatchExists):
		return transport.MatchExists
	case errors.Is(err, entity.ErrMatchNotOver):
		return transport.MatchNotOver
	case errors.Is(err, entity.ErrInvalidSeats), errors.Is(err, errx.ErrReqParamERR):
		return transport.InvalidParam
	case errors.Is(err, errx.ErrUnauthorized), isTokenErr(err):
		return transport.Unauthorized
	case errors.Is(err, errx.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return transport.Timeout
	}
	var re *matchactor.RuntimeError
	if errors.As(err, &re) {
		return matchactor.CodeFromError(err)
	}
	return transport.SystemError
}

func isTokenErr(err error) bool {
	return errors.Is(err, security.ErrTokenMissing) ||
		errors.Is(err, jwt.ErrTokenExpired) ||
		errors.Is(err, jwt.ErrTokenMalformed) ||
		errors.Is(err, jwt.ErrTokenSignatureInvalid) ||
		errors.Is(err, jwt.ErrTokenInvalidClaims) ||
		errors.Is(err, jwt.ErrTokenInvalidIssuer) ||
		errors.Is(err, jwt.ErrTokenRequiredClaimMissing)
}

func errorReason(err error) string {
	if reason := rules.RejectReason(err); reason != "" {
		return reason
	}
	if e, ok := errx.From(err); ok {
		if r := e.Reason(); r != "" {
			return r
		}
		return e.CodeText()
	}
	return err.Error()
}

// toRPCError gRPC 状态码 + 业务 code 文本。
func toRPCError(ctx context.Context, err error) error {
	code, msg := HandleError(ctx, err)
	transport.SetBizCode(ctx, transport.BizCode(code))
	var c codes.Code
	switch code {
	case transport.InvalidParam:
		c = codes.InvalidArgument
	case transport.Unauthorized, transport.SessionInvalid:
		c = codes.Unauthenticated
	case transport.MatchNotFound:
		c = codes.NotFound
	case transport.MatchExists:
		c = codes.AlreadyExists
	case transport.NotSeated:
		c = codes.PermissionDenied
	case transport.InvalidMove, transport.MatchNotOver:
		c = codes.FailedPrecondition
	case transport.Timeout:
		c = codes.DeadlineExceeded
	default:
		c = codes.Internal
	}
	return status.Error(c, transport.CodeText(code)+": "+msg)
}
