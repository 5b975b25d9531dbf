package cache

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const PagesCollection = "pages"

// MongoStore shares generated pages between replicas.
type MongoStore struct {
	collection *mongo.Collection
}

func NewMongoStore(collection *mongo.Collection) *MongoStore {
	return &MongoStore{collection: collection}
}

func (s *MongoStore) Get(ctx context.Context, key string) (*Page, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var page Page
	err := s.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&page)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return &page, true, nil
}

func (s *MongoStore) Put(ctx context.Context, page *Page) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := s.collection.ReplaceOne(
		ctx,
		bson.M{"_id": page.Key},
		page,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (s *MongoStore) Size(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return s.collection.EstimatedDocumentCount(ctx)
}
