package repo

import (
	"context"

	"github.com/Beka01247/restaurant-api/internal/domain"
)

type RestaurantAuditRepository interface {
	Create(ctx context.Context, audit *domain.RestaurantAudit) error
	GetByRestaurantID(ctx context.Context, restaurantID string, limit int) ([]domain.RestaurantAudit, error)
}
