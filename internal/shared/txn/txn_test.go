package txn

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInline_RunsReleasesAfterOutermostCall(t *testing.T) {
	var released []string
	boom := errors.New("boom")

	err := Inline{}.WithinTx(context.Background(), func(ctx context.Context) error {
		require.True(t, OnFinish(ctx, func() { released = append(released, "first") }))
		err := Inline{}.WithinTx(ctx, func(ctx context.Context) error {
			require.True(t, OnFinish(ctx, func() { released = append(released, "nested") }))
			return nil
		})
		require.NoError(t, err)
		assert.Empty(t, released)
		return boom
	})

	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"nested", "first"}, released)
}

func TestOnFinish_OutsideUnitOfWork(t *testing.T) {
	called := false

	assert.False(t, OnFinish(context.Background(), func() { called = true }))
	assert.False(t, called)
}

func TestOrInline(t *testing.T) {
	assert.Equal(t, Inline{}, OrInline(nil))
}
