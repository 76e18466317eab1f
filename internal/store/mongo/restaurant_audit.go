package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/Beka01247/restaurant-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type RestaurantAuditRepository struct {
	collection *mongo.Collection
}

func NewRestaurantAuditRepository(db *mongo.Database) *RestaurantAuditRepository {
	return &RestaurantAuditRepository{
		collection: db.Collection(CollectionRestaurantAudit),
	}
}

func (r *RestaurantAuditRepository) Create(ctx context.Context, audit *domain.RestaurantAudit) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if audit.ID.IsZero() {
		audit.ID = primitive.NewObjectID()
	}
	if audit.Timestamp.IsZero() {
		audit.Timestamp = time.Now()
	}

	_, err := r.collection.InsertOne(ctx, audit)
	if err != nil {
		return fmt.Errorf("failed to create restaurant audit: %w", err)
	}

	return nil
}

func (r *RestaurantAuditRepository) GetByRestaurantID(ctx context.Context, restaurantID string, limit int) ([]domain.RestaurantAudit, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"restaurant_id": restaurantID}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}).SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get restaurant audits: %w", err)
	}
	defer cursor.Close(ctx)

	audits := []domain.RestaurantAudit{}
	if err := cursor.All(ctx, &audits); err != nil {
		return nil, fmt.Errorf("failed to decode restaurant audits: %w", err)
	}

	return audits, nil
}
