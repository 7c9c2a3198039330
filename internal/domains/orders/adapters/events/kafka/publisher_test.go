package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/food-order-api/internal/domains/orders/domain"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

type unknownEvent struct{ domain.BaseEvent }

func (unknownEvent) EventName() string { return "orders.unknown" }

func TestPublisher_WritesEnvelopeKeyedByStore(t *testing.T) {
	writer := &fakeWriter{}
	publisher := NewPublisher(writer)
	publisher.newID = func() string { return "evt-1" }
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	err := publisher.Publish(context.Background(),
		domain.OrderPlaced{BaseEvent: domain.BaseEvent{Timestamp: at}, OrderID: 1, MemberID: 2, StoreID: 3, TotalPrice: 21000},
		domain.OrderCanceled{BaseEvent: domain.BaseEvent{Timestamp: at}, OrderID: 1, MemberID: 2, StoreID: 3, PreviousStatus: domain.StatusPlaced},
	)

	require.NoError(t, err)
	require.Len(t, writer.messages, 2)
	assert.Equal(t, "3", string(writer.messages[0].Key))

	var envelope Envelope
	require.NoError(t, json.Unmarshal(writer.messages[0].Value, &envelope))
	assert.Equal(t, "evt-1", envelope.ID)
	assert.Equal(t, "orders.order.placed", envelope.Type)
	assert.True(t, at.Equal(envelope.OccurredAt))
	assert.JSONEq(t, `{"orderId":1,"memberId":2,"storeId":3,"totalPrice":21000}`, string(envelope.Payload))

	require.NoError(t, json.Unmarshal(writer.messages[1].Value, &envelope))
	assert.Equal(t, "orders.order.canceled", envelope.Type)
	assert.JSONEq(t, `{"orderId":1,"memberId":2,"storeId":3,"previousStatus":"PLACED"}`, string(envelope.Payload))
}

func TestPublisher_RejectsUnknownEvents(t *testing.T) {
	writer := &fakeWriter{}

	err := NewPublisher(writer).Publish(context.Background(), unknownEvent{})

	require.Error(t, err)
	assert.Empty(t, writer.messages)
}

func TestPublisher_PropagatesWriterError(t *testing.T) {
	boom := errors.New("broker down")

	err := NewPublisher(&fakeWriter{err: boom}).Publish(context.Background(), domain.OrderPlaced{StoreID: 1})

	require.ErrorIs(t, err, boom)
}

func TestPublisher_NotConfigured(t *testing.T) {
	var publisher *Publisher
	assert.Error(t, publisher.Publish(context.Background()))
	assert.NoError(t, NewPublisher(&fakeWriter{}).Publish(context.Background()))
}
