package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Beka01247/restaurant-api/internal/domain"
	"github.com/Beka01247/restaurant-api/internal/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeProcessor struct {
	events []domain.RestaurantEvent
	err    error
}

func (p *fakeProcessor) ProcessRestaurantEvent(_ context.Context, event domain.RestaurantEvent) error {
	p.events = append(p.events, event)
	return p.err
}

type fakeBroker struct {
	queue.NopBroker
	subscribed string
	handler    queue.MessageHandler
}

func (b *fakeBroker) Subscribe(_ context.Context, queueName string, handler queue.MessageHandler) error {
	b.subscribed = queueName
	b.handler = handler
	return nil
}

func newWorker(p EventProcessor) (*RestaurantEventWorker, *fakeBroker) {
	b := &fakeBroker{}
	return NewRestaurantEventWorker(p, b, zap.NewNop().Sugar()), b
}

func TestRestaurantEventWorker_Start(t *testing.T) {
	w, b := newWorker(&fakeProcessor{})
	defer w.Stop()

	require.NoError(t, w.Start())
	assert.Equal(t, queue.QueueRestaurantEvents, b.subscribed)
	assert.NotNil(t, b.handler)
}

func TestRestaurantEventWorker_HandleMessage(t *testing.T) {
	p := &fakeProcessor{}
	w, _ := newWorker(p)

	err := w.handleMessage(context.Background(), []byte(`{"event_type":"restaurant.created","restaurant_id":"abc","name":"A","menu_count":2}`))
	require.NoError(t, err)

	require.Len(t, p.events, 1)
	assert.Equal(t, domain.EventRestaurantCreated, p.events[0].EventType)
	assert.Equal(t, "abc", p.events[0].RestaurantID)
	assert.Equal(t, 2, p.events[0].MenuCount)
	assert.WithinDuration(t, time.Now(), p.events[0].Timestamp, time.Minute)
}

func TestRestaurantEventWorker_HandleMessageErrors(t *testing.T) {
	tests := []struct {
		name    string
		message string
		procErr error
	}{
		{name: "invalid json", message: `{`},
		{name: "missing restaurant id", message: `{"event_type":"restaurant.deleted"}`},
		{name: "processor failure", message: `{"restaurant_id":"abc"}`, procErr: errors.New("db down")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := newWorker(&fakeProcessor{err: tt.procErr})
			assert.Error(t, w.handleMessage(context.Background(), []byte(tt.message)))
		})
	}
}
