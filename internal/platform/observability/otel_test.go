package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNilInstrumentsFallBackToNoop(t *testing.T) {
	var instruments *Instruments

	assert.NotNil(t, instruments.SlogLogger())
	_, span := instruments.Tracer("test").Start(context.Background(), "span")
	span.End()
	counter, err := instruments.Meter("test").Int64Counter("c")
	assert.NoError(t, err)
	counter.Add(context.Background(), 1)
}

func TestNewNop(t *testing.T) {
	instruments := NewNop()

	assert.NotNil(t, instruments.SlogLogger())
	_, span := instruments.Tracer("test").Start(context.Background(), "span")
	assert.False(t, span.SpanContext().IsValid())
	span.End()
}
