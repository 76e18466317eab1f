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

type MenuRepository struct {
	collection *mongo.Collection
}

func NewMenuRepository(db *mongo.Database) *MenuRepository {
	return &MenuRepository{
		collection: db.Collection(CollectionMenus),
	}
}

func (r *MenuRepository) Create(ctx context.Context, menu *domain.Menu) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if menu.ID.IsZero() {
		menu.ID = primitive.NewObjectID()
	}

	_, err := r.collection.InsertOne(ctx, menu)
	if err != nil {
		return fmt.Errorf("failed to create menu: %w", err)
	}

	return nil
}

func (r *MenuRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Menu, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var menu domain.Menu
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&menu)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("menu %s: %w", id.Hex(), repo.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get menu: %w", err)
	}

	return &menu, nil
}

// GetByIDs returns the menus matching ids in no particular order; ids without
// a document are skipped.
func (r *MenuRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Menu, error) {
	if len(ids) == 0 {
		return []domain.Menu{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to find menus: %w", err)
	}
	defer cursor.Close(ctx)

	menus := []domain.Menu{}
	if err := cursor.All(ctx, &menus); err != nil {
		return nil, fmt.Errorf("failed to decode menus: %w", err)
	}

	return menus, nil
}

func (r *MenuRepository) DeleteMany(ctx context.Context, ids []primitive.ObjectID) error {
	if len(ids) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := r.collection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}}); err != nil {
		return fmt.Errorf("failed to delete menus: %w", err)
	}

	return nil
}
