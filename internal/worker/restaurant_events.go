package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Beka01247/restaurant-api/internal/domain"
	"github.com/Beka01247/restaurant-api/internal/queue"
	"go.uber.org/zap"
)

// EventProcessor records a restaurant event.
type EventProcessor interface {
	ProcessRestaurantEvent(ctx context.Context, event domain.RestaurantEvent) error
}

type RestaurantEventWorker struct {
	processor EventProcessor
	broker    queue.Broker
	logger    *zap.SugaredLogger
	ctx       context.Context
	cancel    context.CancelFunc
}

func NewRestaurantEventWorker(
	processor EventProcessor,
	broker queue.Broker,
	logger *zap.SugaredLogger,
) *RestaurantEventWorker {
	ctx, cancel := context.WithCancel(context.Background())

	return &RestaurantEventWorker{
		processor: processor,
		broker:    broker,
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
	}
}

func (w *RestaurantEventWorker) Start() error {
	w.logger.Info("starting restaurant event worker")

	return w.broker.Subscribe(w.ctx, queue.QueueRestaurantEvents, w.handleMessage)
}

func (w *RestaurantEventWorker) Stop() {
	w.logger.Info("stopping restaurant event worker")
	w.cancel()
}

func (w *RestaurantEventWorker) handleMessage(ctx context.Context, message []byte) error {
	var event domain.RestaurantEvent
	if err := json.Unmarshal(message, &event); err != nil {
		w.logger.Errorw("failed to unmarshal event", "error", err)
		return fmt.Errorf("failed to unmarshal event: %w", err)
	}

	if event.RestaurantID == "" {
		return fmt.Errorf("event %q has no restaurant id", event.EventType)
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	w.logger.Infow("processing restaurant event", "restaurant_id", event.RestaurantID, "event_type", event.EventType)

	if err := w.processor.ProcessRestaurantEvent(ctx, event); err != nil {
		w.logger.Errorw("failed to process restaurant event", "restaurant_id", event.RestaurantID, "error", err)
		return err
	}

	return nil
}
