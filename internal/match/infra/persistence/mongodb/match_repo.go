package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"GoldenAges/internal/match/entity"
	"GoldenAges/internal/match/infra/persistence/model"
)

const defaultCollectionName = "match"

type MatchRepository struct {
	coll *mongo.Collection
}

func NewMatchRepository(db *mongo.Database) *MatchRepository {
	return &MatchRepository{
		coll: db.Collection(defaultCollectionName),
	}
}

func (r *MatchRepository) LoadMatch(ctx context.Context, id entity.MatchID) (*entity.Match, error) {
	if r == nil || r.coll == nil {
		return nil, errors.New("mongodb match collection is nil")
	}

	var doc model.MatchDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": int64(id)}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, entity.ErrMatchNotFound.WithData("match_id", int64(id))
	}
	if err != nil {
		return nil, err
	}
	s, err := model.DocToSnapshot(&doc)
	if err != nil {
		return nil, err
	}
	return entity.Hydrate(s), nil
}

// Save 按 version 条件覆盖，旧版本快照不会盖掉新版本。
func (r *MatchRepository) Save(ctx context.Context, s *entity.MatchPersistSnapshot) error {
	if s == nil {
		return nil
	}
	if r == nil || r.coll == nil {
		return errors.New("mongodb match collection is nil")
	}

	doc, err := model.SnapshotToDoc(s)
	if err != nil {
		return err
	}

	_, err = r.coll.ReplaceOne(
		ctx,
		bson.M{"_id": doc.MatchID, "version": bson.M{"$lt": doc.Version}},
		doc,
		options.Replace().SetUpsert(true),
	)
	// 库里已有更新的版本时 upsert 会撞主键，视为过期写入
	if mongo.IsDuplicateKeyError(err) {
		return nil
	}
	return err
}
