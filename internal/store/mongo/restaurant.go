package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Beka01247/restaurant-api/internal/domain"
	"github.com/Beka01247/restaurant-api/internal/repo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type RestaurantRepository struct {
	collection *mongo.Collection
}

func NewRestaurantRepository(db *mongo.Database) *RestaurantRepository {
	return &RestaurantRepository{
		collection: db.Collection(CollectionRestaurants),
	}
}

func (r *RestaurantRepository) Create(ctx context.Context, restaurant *domain.Restaurant) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if restaurant.ID.IsZero() {
		restaurant.ID = primitive.NewObjectID()
	}
	if restaurant.Menus == nil {
		restaurant.Menus = []primitive.ObjectID{}
	}

	_, err := r.collection.InsertOne(ctx, restaurant)
	if err != nil {
		return fmt.Errorf("failed to create restaurant: %w", err)
	}

	return nil
}

func (r *RestaurantRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var restaurant domain.Restaurant
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&restaurant)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("restaurant %s: %w", id.Hex(), repo.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get restaurant: %w", err)
	}

	return &restaurant, nil
}

func (r *RestaurantRepository) List(ctx context.Context) ([]domain.Restaurant, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list restaurants: %w", err)
	}
	defer cursor.Close(ctx)

	restaurants := []domain.Restaurant{}
	if err := cursor.All(ctx, &restaurants); err != nil {
		return nil, fmt.Errorf("failed to decode restaurants: %w", err)
	}

	return restaurants, nil
}

// Update replaces the stored document with restaurant.
func (r *RestaurantRepository) Update(ctx context.Context, restaurant *domain.Restaurant) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if restaurant.Menus == nil {
		restaurant.Menus = []primitive.ObjectID{}
	}

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": restaurant.ID}, restaurant)
	if err != nil {
		return fmt.Errorf("failed to update restaurant: %w", err)
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("restaurant %s: %w", restaurant.ID.Hex(), repo.ErrNotFound)
	}

	return nil
}

func (r *RestaurantRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete restaurant: %w", err)
	}

	if result.DeletedCount == 0 {
		return fmt.Errorf("restaurant %s: %w", id.Hex(), repo.ErrNotFound)
	}

	return nil
}
