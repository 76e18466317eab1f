package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Beka01247/restaurant-api/internal/domain"
	"github.com/Beka01247/restaurant-api/internal/queue"
	"github.com/Beka01247/restaurant-api/internal/repo"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type RestaurantService struct {
	restaurantRepo repo.RestaurantRepository
	menuRepo       repo.MenuRepository
	auditRepo      repo.RestaurantAuditRepository
	broker         queue.Broker
	logger         *zap.SugaredLogger
	validate       *validator.Validate
}

func NewRestaurantService(
	restaurantRepo repo.RestaurantRepository,
	menuRepo repo.MenuRepository,
	auditRepo repo.RestaurantAuditRepository,
	broker queue.Broker,
	logger *zap.SugaredLogger,
) *RestaurantService {
	if broker == nil {
		broker = queue.NopBroker{}
	}

	return &RestaurantService{
		restaurantRepo: restaurantRepo,
		menuRepo:       menuRepo,
		auditRepo:      auditRepo,
		broker:         broker,
		logger:         logger,
		validate:       newValidator(),
	}
}

func (s *RestaurantService) List(ctx context.Context) ([]domain.PopulatedRestaurant, error) {
	restaurants, err := s.restaurantRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list restaurants: %w", err)
	}

	var ids []primitive.ObjectID
	for _, r := range restaurants {
		ids = append(ids, r.Menus...)
	}

	menus, err := s.menusByID(ctx, ids)
	if err != nil {
		return nil, err
	}

	populated := make([]domain.PopulatedRestaurant, 0, len(restaurants))
	for i := range restaurants {
		populated = append(populated, *restaurants[i].Populate(menus))
	}

	return populated, nil
}

func (s *RestaurantService) Get(ctx context.Context, id primitive.ObjectID) (*domain.PopulatedRestaurant, error) {
	restaurant, err := s.getRestaurant(ctx, id)
	if err != nil {
		return nil, err
	}

	menus, err := s.menusByID(ctx, restaurant.Menus)
	if err != nil {
		return nil, err
	}

	return restaurant.Populate(menus), nil
}

// Create validates in, stores its menus and then the restaurant referencing
// them. When any write fails the menus written for this request are removed.
func (s *RestaurantService) Create(ctx context.Context, in domain.CreateRestaurantInput) (*domain.Restaurant, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, validationError(err)
	}

	menuIDs, err := s.createMenus(ctx, in.Menus)
	if err != nil {
		return nil, err
	}

	restaurant := &domain.Restaurant{
		Name:          in.Name,
		Description:   in.Description,
		Location:      in.Location,
		OpeningHours:  in.OpeningHours,
		ContactNumber: in.ContactNumber,
		Category:      in.Category,
		Menus:         menuIDs,
	}

	if err := s.restaurantRepo.Create(ctx, restaurant); err != nil {
		s.discardMenus(ctx, menuIDs)
		return nil, fmt.Errorf("failed to create restaurant: %w", err)
	}

	s.logger.Infow("restaurant created", "restaurant_id", restaurant.ID.Hex(), "menus", len(menuIDs))
	s.publish(ctx, domain.EventRestaurantCreated, restaurant)

	return restaurant, nil
}

// Update applies the supplied fields of in to the restaurant. Empty strings
// count as not supplied. A supplied menus list replaces the stored one.
func (s *RestaurantService) Update(ctx context.Context, id primitive.ObjectID, in domain.UpdateRestaurantInput) (*domain.Restaurant, error) {
	var inline []domain.MenuInput
	if in.Menus != nil {
		if err := s.validateMenuRefs(*in.Menus); err != nil {
			return nil, err
		}
		for _, ref := range *in.Menus {
			if !ref.IsExisting() {
				inline = append(inline, *ref.Inline)
			}
		}
	}

	restaurant, err := s.getRestaurant(ctx, id)
	if err != nil {
		return nil, err
	}

	replace(&restaurant.Name, in.Name)
	replace(&restaurant.Description, in.Description)
	replace(&restaurant.Location, in.Location)
	replace(&restaurant.OpeningHours, in.OpeningHours)
	replace(&restaurant.ContactNumber, in.ContactNumber)
	replace(&restaurant.Category, in.Category)

	var created []primitive.ObjectID
	if in.Menus != nil {
		created, err = s.createMenus(ctx, inline)
		if err != nil {
			return nil, err
		}

		menus := make([]primitive.ObjectID, 0, len(*in.Menus))
		next := 0
		for _, ref := range *in.Menus {
			if ref.IsExisting() {
				menus = append(menus, ref.ID)
				continue
			}
			menus = append(menus, created[next])
			next++
		}
		restaurant.Menus = menus
	}

	if err := s.restaurantRepo.Update(ctx, restaurant); err != nil {
		s.discardMenus(ctx, created)
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update restaurant: %w", err)
	}

	s.logger.Infow("restaurant updated", "restaurant_id", restaurant.ID.Hex(), "new_menus", len(created))
	s.publish(ctx, domain.EventRestaurantUpdated, restaurant)

	return restaurant, nil
}

// Delete removes the restaurant only; the menus it references are kept.
func (s *RestaurantService) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.restaurantRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete restaurant: %w", err)
	}

	s.logger.Infow("restaurant deleted", "restaurant_id", id.Hex())
	s.publish(ctx, domain.EventRestaurantDeleted, &domain.Restaurant{ID: id})

	return nil
}

func (s *RestaurantService) ProcessRestaurantEvent(ctx context.Context, event domain.RestaurantEvent) error {
	audit := &domain.RestaurantAudit{
		RestaurantID: event.RestaurantID,
		EventType:    event.EventType,
		Name:         event.Name,
		MenuCount:    event.MenuCount,
		Timestamp:    event.Timestamp,
	}

	if err := s.auditRepo.Create(ctx, audit); err != nil {
		s.logger.Errorw("failed to create audit record", "restaurant_id", event.RestaurantID, "error", err)
		return fmt.Errorf("failed to create audit record: %w", err)
	}

	s.logger.Infow("restaurant audit created", "restaurant_id", event.RestaurantID, "event_type", event.EventType)

	return nil
}

func (s *RestaurantService) GetRestaurantAudit(ctx context.Context, id primitive.ObjectID, limit int) ([]domain.RestaurantAudit, error) {
	audits, err := s.auditRepo.GetByRestaurantID(ctx, id.Hex(), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get restaurant audit: %w", err)
	}

	return audits, nil
}

func (s *RestaurantService) getRestaurant(ctx context.Context, id primitive.ObjectID) (*domain.Restaurant, error) {
	restaurant, err := s.restaurantRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get restaurant: %w", err)
	}

	return restaurant, nil
}

func (s *RestaurantService) menusByID(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]domain.Menu, error) {
	menus, err := s.menuRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to populate menus: %w", err)
	}

	byID := make(map[primitive.ObjectID]domain.Menu, len(menus))
	for _, m := range menus {
		byID[m.ID] = m
	}

	return byID, nil
}

func (s *RestaurantService) validateMenuRefs(refs []domain.MenuRef) error {
	var missing []string
	for i, ref := range refs {
		if ref.IsExisting() {
			continue
		}
		if err := s.validate.Struct(ref.Inline); err != nil {
			var errs validator.ValidationErrors
			if !errors.As(err, &errs) {
				return err
			}
			missing = append(missing, "menus["+strconv.Itoa(i)+"].menu")
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

// createMenus inserts inputs concurrently and returns their ids in input
// order. Ids are assigned up front so a failed batch can be rolled back.
func (s *RestaurantService) createMenus(ctx context.Context, inputs []domain.MenuInput) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, len(inputs))
	for i := range inputs {
		ids[i] = primitive.NewObjectID()
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, in := range inputs {
		menu := &domain.Menu{ID: ids[i], Text: in.Text}
		g.Go(func() error {
			return s.menuRepo.Create(gctx, menu)
		})
	}

	if err := g.Wait(); err != nil {
		s.discardMenus(ctx, ids)
		return nil, fmt.Errorf("failed to create menus: %w", err)
	}

	return ids, nil
}

func (s *RestaurantService) discardMenus(ctx context.Context, ids []primitive.ObjectID) {
	if len(ids) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	if err := s.menuRepo.DeleteMany(ctx, ids); err != nil {
		s.logger.Errorw("failed to discard menus", "count", len(ids), "error", err)
		return
	}

	s.logger.Warnw("discarded menus of failed request", "count", len(ids))
}

// publish is best effort: the write already happened, so a broker failure is
// only logged.
func (s *RestaurantService) publish(ctx context.Context, eventType string, r *domain.Restaurant) {
	event := domain.RestaurantEvent{
		EventType:    eventType,
		RestaurantID: r.ID.Hex(),
		Name:         r.Name,
		MenuCount:    len(r.Menus),
		Timestamp:    time.Now(),
	}

	eventBytes, err := json.Marshal(event)
	if err != nil {
		s.logger.Errorw("failed to marshal restaurant event", "restaurant_id", event.RestaurantID, "error", err)
		return
	}

	if err := s.broker.Publish(ctx, queue.QueueRestaurantEvents, eventBytes); err != nil {
		s.logger.Errorw("failed to publish restaurant event", "restaurant_id", event.RestaurantID, "event_type", eventType, "error", err)
	}
}

func replace(field *string, value *string) {
	if value != nil && *value != "" {
		*field = *value
	}
}
