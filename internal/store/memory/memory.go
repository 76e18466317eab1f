// Package memory implements the repositories in process memory. It backs the
// service and handler tests and lets a failure be injected per operation.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Beka01247/restaurant-api/internal/domain"
	"github.com/Beka01247/restaurant-api/internal/repo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MenuRepository struct {
	mu    sync.RWMutex
	menus map[primitive.ObjectID]domain.Menu

	// FailCreate, when set, decides whether Create returns an error for menu.
	FailCreate func(menu *domain.Menu) error
}

func NewMenuRepository() *MenuRepository {
	return &MenuRepository{menus: make(map[primitive.ObjectID]domain.Menu)}
}

func (r *MenuRepository) Create(ctx context.Context, menu *domain.Menu) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.FailCreate != nil {
		if err := r.FailCreate(menu); err != nil {
			return fmt.Errorf("failed to create menu: %w", err)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if menu.ID.IsZero() {
		menu.ID = primitive.NewObjectID()
	}
	r.menus[menu.ID] = *menu

	return nil
}

func (r *MenuRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Menu, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	menu, ok := r.menus[id]
	if !ok {
		return nil, fmt.Errorf("menu %s: %w", id.Hex(), repo.ErrNotFound)
	}

	return &menu, nil
}

func (r *MenuRepository) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]domain.Menu, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	menus := []domain.Menu{}
	seen := make(map[primitive.ObjectID]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if menu, ok := r.menus[id]; ok {
			menus = append(menus, menu)
		}
	}

	return menus, nil
}

func (r *MenuRepository) DeleteMany(_ context.Context, ids []primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range ids {
		delete(r.menus, id)
	}

	return nil
}

func (r *MenuRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.menus)
}

type RestaurantRepository struct {
	mu          sync.RWMutex
	restaurants map[primitive.ObjectID]domain.Restaurant
	order       []primitive.ObjectID

	// Err, when set, is returned by every operation.
	Err error
}

func NewRestaurantRepository() *RestaurantRepository {
	return &RestaurantRepository{restaurants: make(map[primitive.ObjectID]domain.Restaurant)}
}

func (r *RestaurantRepository) Create(_ context.Context, restaurant *domain.Restaurant) error {
	if r.Err != nil {
		return fmt.Errorf("failed to create restaurant: %w", r.Err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if restaurant.ID.IsZero() {
		restaurant.ID = primitive.NewObjectID()
	}
	if restaurant.Menus == nil {
		restaurant.Menus = []primitive.ObjectID{}
	}
	r.restaurants[restaurant.ID] = clone(*restaurant)
	r.order = append(r.order, restaurant.ID)

	return nil
}

func (r *RestaurantRepository) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Restaurant, error) {
	if r.Err != nil {
		return nil, fmt.Errorf("failed to get restaurant: %w", r.Err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	restaurant, ok := r.restaurants[id]
	if !ok {
		return nil, fmt.Errorf("restaurant %s: %w", id.Hex(), repo.ErrNotFound)
	}
	restaurant = clone(restaurant)

	return &restaurant, nil
}

// List returns restaurants in insertion order.
func (r *RestaurantRepository) List(_ context.Context) ([]domain.Restaurant, error) {
	if r.Err != nil {
		return nil, fmt.Errorf("failed to list restaurants: %w", r.Err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	restaurants := make([]domain.Restaurant, 0, len(r.restaurants))
	for _, id := range r.order {
		if restaurant, ok := r.restaurants[id]; ok {
			restaurants = append(restaurants, clone(restaurant))
		}
	}

	return restaurants, nil
}

func (r *RestaurantRepository) Update(_ context.Context, restaurant *domain.Restaurant) error {
	if r.Err != nil {
		return fmt.Errorf("failed to update restaurant: %w", r.Err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.restaurants[restaurant.ID]; !ok {
		return fmt.Errorf("restaurant %s: %w", restaurant.ID.Hex(), repo.ErrNotFound)
	}
	r.restaurants[restaurant.ID] = clone(*restaurant)

	return nil
}

func (r *RestaurantRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	if r.Err != nil {
		return fmt.Errorf("failed to delete restaurant: %w", r.Err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.restaurants[id]; !ok {
		return fmt.Errorf("restaurant %s: %w", id.Hex(), repo.ErrNotFound)
	}
	delete(r.restaurants, id)

	return nil
}

func (r *RestaurantRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.restaurants)
}

type RestaurantAuditRepository struct {
	mu     sync.RWMutex
	audits []domain.RestaurantAudit
}

func NewRestaurantAuditRepository() *RestaurantAuditRepository {
	return &RestaurantAuditRepository{}
}

func (r *RestaurantAuditRepository) Create(_ context.Context, audit *domain.RestaurantAudit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if audit.ID.IsZero() {
		audit.ID = primitive.NewObjectID()
	}
	if audit.Timestamp.IsZero() {
		audit.Timestamp = time.Now()
	}
	r.audits = append(r.audits, *audit)

	return nil
}

func (r *RestaurantAuditRepository) GetByRestaurantID(_ context.Context, restaurantID string, limit int) ([]domain.RestaurantAudit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	audits := []domain.RestaurantAudit{}
	for _, audit := range r.audits {
		if audit.RestaurantID == restaurantID {
			audits = append(audits, audit)
		}
	}
	sort.SliceStable(audits, func(i, j int) bool {
		return audits[i].Timestamp.After(audits[j].Timestamp)
	})
	if limit > 0 && len(audits) > limit {
		audits = audits[:limit]
	}

	return audits, nil
}

func clone(r domain.Restaurant) domain.Restaurant {
	r.Menus = append([]primitive.ObjectID{}, r.Menus...)
	return r
}
