package ports

import (
	"context"

	"github.com/Apurer/food-order-api/internal/domains/orders/domain"
)

// EventPublisher ships committed order events to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...domain.Event) error
}

// NopPublisher drops every event.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, ...domain.Event) error { return nil }
