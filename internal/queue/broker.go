package queue

import (
	"context"
)

type Broker interface {
	Publish(ctx context.Context, queueName string, message []byte) error
	Subscribe(ctx context.Context, queueName string, handler MessageHandler) error
	Close() error
}

type MessageHandler func(ctx context.Context, message []byte) error

const (
	QueueRestaurantEvents    = "restaurant-events"
	QueueRestaurantEventsDLQ = QueueRestaurantEvents + dlqSuffix

	dlqSuffix = "-dlq"
)

// DeadLetterQueue names the queue that receives messages from queueName
// once their retries are exhausted.
func DeadLetterQueue(queueName string) string {
	return queueName + dlqSuffix
}
