package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	glogger "gorm.io/gorm/logger"

	"GoldenAges/modules/kit/logx"
	"GoldenAges/modules/kit/tracex"
)

func TestGormLog_Trace分级(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	g := newGormLog(logx.NewZapLogger(zap.New(core)), glogger.Warn, 100*time.Millisecond)
	ctx := tracex.WithTraceID(context.Background(), "t-9")
	fc := func() (string, int64) { return "SELECT 1", -1 }

	g.Trace(ctx, time.Now(), fc, nil)
	g.Trace(ctx, time.Now(), fc, glogger.ErrRecordNotFound)
	if n := logs.Len(); n != 0 {
		t.Fatalf("Warn 级别下正常与查无记录不应输出，got=%d", n)
	}

	g.Trace(ctx, time.Now().Add(-time.Second), fc, nil)
	g.Trace(ctx, time.Now(), fc, errors.New("deadlock"))

	all := logs.All()
	if len(all) != 2 || all[0].Message != "slow sql" || all[1].Message != "sql failed" {
		t.Fatalf("日志不符: %+v", all)
	}
	m := all[1].ContextMap()
	if m["trace_id"] != "t-9" || m["component"] != "gorm" {
		t.Fatalf("字段缺失: %v", m)
	}
	if _, has := m["rows"]; has {
		t.Fatalf("rows=-1 时不应输出")
	}
}

func TestGormLog_Silent不输出(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	g := newGormLog(logx.NewZapLogger(zap.New(core)), glogger.Warn, 0).LogMode(glogger.Silent)
	g.Trace(context.Background(), time.Now(), func() (string, int64) { return "x", 0 }, errors.New("boom"))
	g.Error(context.Background(), "boom %d", 1)
	if logs.Len() != 0 {
		t.Fatalf("Silent 不应输出")
	}
}
