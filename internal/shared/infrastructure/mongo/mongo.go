package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"go.uber.org/zap"

	"GoldenAges/internal/shared/serverconfig"
)

const appName = "golden-ages-match"

// Store 一个库的连接，对局快照集合都建在这个库下。
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	log    *zap.Logger
}

func Open(cfg serverconfig.MongoDBConfig, l *zap.Logger) (*Store, error) {
	switch {
	case cfg.URI == "":
		return nil, errors.New("mongodb uri is empty")
	case cfg.Database == "":
		return nil, errors.New("mongodb database is empty")
	}
	if l == nil {
		l = zap.NewNop()
	}
	timeout := time.Duration(max(cfg.ConnectTimeoutS, 1)) * time.Second

	client, err := mongo.Connect(options.Client().
		ApplyURI(cfg.URI).
		SetAppName(appName).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout))
	if err != nil {
		return nil, err
	}
	s := &Store{client: client, db: client.Database(cfg.Database), log: l}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := s.Ping(ctx); err != nil {
		s.Close()
		return nil, err
	}
	l.Info("mongodb connected", zap.String("database", cfg.Database))
	return s, nil
}

func (s *Store) Database() *mongo.Database { return s.db }

// Ping 走主节点，/healthz 也用它。
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close() {
	if s == nil || s.client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := s.client.Disconnect(ctx); err != nil {
		s.log.Warn("disconnect mongodb failed", zap.Error(err))
	}
}
