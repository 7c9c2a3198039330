package domain

import "time"

// Event is the base interface for order domain events.
type Event interface {
	EventName() string
	OccurredAt() time.Time
}

// BaseEvent provides common event metadata.
type BaseEvent struct {
	Timestamp time.Time
}

func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// OrderPlaced is raised when a member places an order. OrderID is filled once persisted.
type OrderPlaced struct {
	BaseEvent
	OrderID    int64
	MemberID   int64
	StoreID    int64
	TotalPrice int64
}

func (e OrderPlaced) EventName() string {
	return "orders.order.placed"
}

// OrderCanceled is raised when an order transitions to CANCELED.
type OrderCanceled struct {
	BaseEvent
	OrderID        int64
	MemberID       int64
	StoreID        int64
	PreviousStatus Status
}

func (e OrderCanceled) EventName() string {
	return "orders.order.canceled"
}

// StoreID extracts the store an event belongs to, used as the partition key.
func StoreID(event Event) int64 {
	switch e := event.(type) {
	case OrderPlaced:
		return e.StoreID
	case OrderCanceled:
		return e.StoreID
	default:
		return 0
	}
}
