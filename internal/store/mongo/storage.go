package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	CollectionMenus           = "menus"
	CollectionRestaurants     = "restaurants"
	CollectionRestaurantAudit = "restaurant_audit"
)

// Storage owns the MongoDB client. It is opened once at startup and handed
// to the repositories; Close disconnects it on shutdown.
type Storage struct {
	client   *mongo.Client
	database *mongo.Database
}

type Config struct {
	URI         string
	Database    string
	Timeout     time.Duration
	MaxPoolSize uint64
	MinPoolSize uint64
}

func New(cfg Config) (*Storage, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("mongodb uri is empty")
	}
	if cfg.MaxPoolSize == 0 {
		cfg.MaxPoolSize = 100
	}
	if cfg.MinPoolSize == 0 {
		cfg.MinPoolSize = 10
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(cfg.URI).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Storage{
		client:   client,
		database: client.Database(cfg.Database),
	}, nil
}

func (s *Storage) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Storage) Database() *mongo.Database {
	return s.database
}

func (s *Storage) CreateIndexes(ctx context.Context) error {
	// audit entries are read per restaurant, newest first
	auditIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "restaurant_id", Value: 1}, {Key: "timestamp", Value: -1}},
		},
	}
	if _, err := s.database.Collection(CollectionRestaurantAudit).Indexes().CreateMany(ctx, auditIndexes); err != nil {
		return fmt.Errorf("failed to create %s indexes: %w", CollectionRestaurantAudit, err)
	}

	// multikey index over menu references
	restaurantIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "menus", Value: 1}},
		},
	}
	if _, err := s.database.Collection(CollectionRestaurants).Indexes().CreateMany(ctx, restaurantIndexes); err != nil {
		return fmt.Errorf("failed to create %s indexes: %w", CollectionRestaurants, err)
	}

	return nil
}
