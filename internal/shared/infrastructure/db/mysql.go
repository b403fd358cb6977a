package db

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"GoldenAges/internal/shared/logs"
	"GoldenAges/internal/shared/serverconfig"
	"GoldenAges/modules/kit/logx"
)

const slowQueryThreshold = 200 * time.Millisecond

// Open 打开 mysql 连接，models 非空时顺带 AutoMigrate。
func Open(cfg serverconfig.MySQLConfig, models ...any) (*gorm.DB, error) {
	gcfg := &gorm.Config{
		Logger: newGormLog(logx.NewZapLogger(logs.Logger()), logger.Warn, slowQueryThreshold),
	}

	db, err := gorm.Open(mysql.Open(cfg.DSN()), gcfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.MaxConn > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxConn)
	}
	if cfg.MaxIdle > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdle)
	}

	if len(models) > 0 {
		if err := db.AutoMigrate(models...); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
	}

	logs.Info("open db success",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("db", cfg.DBName),
		zap.String("user", cfg.User),
	)
	return db, nil
}

func Close(db *gorm.DB) {
	if db == nil {
		return
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
