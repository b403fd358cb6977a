package entity

import "GoldenAges/modules/kit/errx"

var (
	ErrMatchNotFound = errx.NewBiz("MATCH_NOT_FOUND", "对局不存在")
	ErrMatchExists   = errx.NewBiz("MATCH_EXISTS", "对局已存在")
	ErrSeatNotFound  = errx.NewBiz("MATCH_SEAT_NOT_FOUND", "不在该对局座位中")
	ErrMatchNotOver  = errx.NewBiz("MATCH_NOT_OVER", "对局尚未结束")
	ErrInvalidSeats  = errx.NewBiz("MATCH_INVALID_SEATS", "座位参数有误")
)
