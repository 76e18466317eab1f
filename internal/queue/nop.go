package queue

import (
	"context"
)

// NopBroker drops every published message and never delivers any. It stands
// in for RabbitMQ when no broker is configured.
type NopBroker struct{}

func (NopBroker) Publish(context.Context, string, []byte) error { return nil }

func (NopBroker) Subscribe(context.Context, string, MessageHandler) error { return nil }

func (NopBroker) Close() error { return nil }
