package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"octofit-backend/config"
)

// Open builds the Store selected by cfg.Store. The returned func releases
// the underlying connection.
func Open(ctx context.Context, cfg config.Config) (*Store, func(context.Context) error, error) {
	switch cfg.Store {
	case config.StoreMemory:
		return NewMemory(), func(context.Context) error { return nil }, nil
	case config.StoreMongo:
	default:
		return nil, nil, fmt.Errorf("unknown store %q", cfg.Store)
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoConnString()))
	if err != nil {
		return nil, nil, fmt.Errorf("connect to mongo: %w", err)
	}

	s := NewMongo(client.Database(cfg.MongoName))
	if err := s.Ping(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ping mongo: %w", err)
	}

	return s, client.Disconnect, nil
}
