package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	glogger "gorm.io/gorm/logger"

	"GoldenAges/modules/kit/logx"
)

// gormLog 把 gorm 的日志转到 logx，trace id 由 WithContext 带上。
type gormLog struct {
	log   logx.Logger
	level glogger.LogLevel
	slow  time.Duration
}

func newGormLog(l logx.Logger, level glogger.LogLevel, slow time.Duration) *gormLog {
	return &gormLog{log: l.With(zap.String("component", "gorm")), level: level, slow: slow}
}

func (g *gormLog) LogMode(level glogger.LogLevel) glogger.Interface {
	cp := *g
	cp.level = level
	return &cp
}

func (g *gormLog) Info(ctx context.Context, msg string, args ...any) {
	if g.level >= glogger.Info {
		g.log.WithContext(ctx).Info(fmt.Sprintf(msg, args...))
	}
}

func (g *gormLog) Warn(ctx context.Context, msg string, args ...any) {
	if g.level >= glogger.Warn {
		g.log.WithContext(ctx).Warn(fmt.Sprintf(msg, args...))
	}
}

func (g *gormLog) Error(ctx context.Context, msg string, args ...any) {
	if g.level >= glogger.Error {
		g.log.WithContext(ctx).Error(fmt.Sprintf(msg, args...))
	}
}

// Trace 每条 SQL 调用一次，查无记录不算错误。
func (g *gormLog) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.level <= glogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	failed := err != nil && !errors.Is(err, glogger.ErrRecordNotFound)
	slow := g.slow > 0 && elapsed > g.slow
	if !failed && !slow && g.level < glogger.Info {
		return
	}

	sql, rows := fc()
	fields := []zap.Field{zap.Duration("elapsed", elapsed), zap.String("sql", sql)}
	if rows >= 0 {
		fields = append(fields, zap.Int64("rows", rows))
	}
	l := g.log.WithContext(ctx)
	switch {
	case failed:
		l.Error("sql failed", append(fields, zap.Error(err))...)
	case slow:
		l.Warn("slow sql", fields...)
	default:
		l.Debug("sql", fields...)
	}
}
