package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitSettled(t *testing.T) {
	t.Run("visible immediately", func(t *testing.T) {
		calls := 0
		visible, err := WaitSettled(context.Background(), func(ctx context.Context) (bool, error) {
			calls++
			return true, nil
		})
		require.NoError(t, err)
		assert.True(t, visible)
		assert.Equal(t, 1, calls, "no polling once the payment is visible")
	})

	t.Run("probe error stops polling", func(t *testing.T) {
		probeErr := errors.New("history fetch failed")
		visible, err := WaitSettled(context.Background(), func(ctx context.Context) (bool, error) {
			return false, probeErr
		})
		assert.ErrorIs(t, err, probeErr)
		assert.False(t, visible)
	})

	t.Run("cancelled context aborts the wait", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		visible, err := WaitSettled(ctx, func(ctx context.Context) (bool, error) {
			return false, nil
		})
		assert.ErrorIs(t, err, context.Canceled)
		assert.False(t, visible)
	})

	t.Run("becomes visible on a later attempt", func(t *testing.T) {
		calls := 0
		visible, err := WaitSettled(context.Background(), func(ctx context.Context) (bool, error) {
			calls++
			return calls >= 2, nil
		})
		require.NoError(t, err)
		assert.True(t, visible)
		assert.Equal(t, 2, calls)
	})
}
