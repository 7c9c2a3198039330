package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/Apurer/food-order-api/internal/domains/orders/domain"
	"github.com/Apurer/food-order-api/internal/domains/orders/ports"
)

// MessageWriter is the subset of *kafka.Writer used to ship events.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Envelope is the JSON document written for every order event.
type Envelope struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurredAt"`
	Payload    json.RawMessage `json:"payload"`
}

type orderPlacedPayload struct {
	OrderID    int64 `json:"orderId"`
	MemberID   int64 `json:"memberId"`
	StoreID    int64 `json:"storeId"`
	TotalPrice int64 `json:"totalPrice"`
}

type orderCanceledPayload struct {
	OrderID        int64  `json:"orderId"`
	MemberID       int64  `json:"memberId"`
	StoreID        int64  `json:"storeId"`
	PreviousStatus string `json:"previousStatus"`
}

// Publisher writes order events keyed by store so a store's events keep their order.
type Publisher struct {
	writer MessageWriter
	newID  func() string
}

func NewPublisher(writer MessageWriter) *Publisher {
	return &Publisher{writer: writer, newID: func() string { return uuid.NewString() }}
}

// NewWriter builds a writer for the order events topic.
func NewWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
}

func (p *Publisher) Publish(ctx context.Context, events ...domain.Event) error {
	if p == nil || p.writer == nil {
		return errors.New("kafka publisher not configured")
	}
	if len(events) == 0 {
		return nil
	}
	msgs := make([]kafka.Message, 0, len(events))
	for _, event := range events {
		msg, err := p.message(event)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}
	return p.writer.WriteMessages(ctx, msgs...)
}

func (p *Publisher) message(event domain.Event) (kafka.Message, error) {
	payload, err := marshalPayload(event)
	if err != nil {
		return kafka.Message{}, err
	}
	value, err := json.Marshal(Envelope{
		ID:         p.newID(),
		Type:       event.EventName(),
		OccurredAt: event.OccurredAt().UTC(),
		Payload:    payload,
	})
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal %s envelope: %w", event.EventName(), err)
	}
	return kafka.Message{
		Key:   []byte(strconv.FormatInt(domain.StoreID(event), 10)),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.EventName())},
		},
	}, nil
}

func marshalPayload(event domain.Event) (json.RawMessage, error) {
	switch e := event.(type) {
	case domain.OrderPlaced:
		return json.Marshal(orderPlacedPayload{OrderID: e.OrderID, MemberID: e.MemberID, StoreID: e.StoreID, TotalPrice: e.TotalPrice})
	case domain.OrderCanceled:
		return json.Marshal(orderCanceledPayload{OrderID: e.OrderID, MemberID: e.MemberID, StoreID: e.StoreID, PreviousStatus: string(e.PreviousStatus)})
	default:
		return nil, fmt.Errorf("unsupported order event %T", event)
	}
}

var _ ports.EventPublisher = (*Publisher)(nil)
