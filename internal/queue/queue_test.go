package queue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeadLetterQueue(t *testing.T) {
	assert.Equal(t, "restaurant-events-dlq", DeadLetterQueue(QueueRestaurantEvents))
	assert.Equal(t, QueueRestaurantEventsDLQ, DeadLetterQueue(QueueRestaurantEvents))
}

func TestBackoff(t *testing.T) {
	base := 2 * time.Second

	assert.Equal(t, 2*time.Second, Backoff(base, 0))
	assert.Equal(t, 4*time.Second, Backoff(base, 1))
	assert.Equal(t, 8*time.Second, Backoff(base, 2))
	assert.Equal(t, 2*time.Second, Backoff(base, -1))
}

func TestNopBroker(t *testing.T) {
	var b Broker = NopBroker{}
	ctx := context.Background()

	assert.NoError(t, b.Publish(ctx, QueueRestaurantEvents, []byte(`{}`)))
	assert.NoError(t, b.Subscribe(ctx, QueueRestaurantEvents, func(context.Context, []byte) error {
		t.Fatal("nop broker must not deliver")
		return nil
	}))
	assert.NoError(t, b.Close())
}
