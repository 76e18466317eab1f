package repo

import (
	"context"

	"github.com/Beka01247/restaurant-api/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MenuRepository interface {
	Create(ctx context.Context, menu *domain.Menu) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Menu, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Menu, error)
	DeleteMany(ctx context.Context, ids []primitive.ObjectID) error
}
