package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig() Config {
	return Config{
		MaxRetries: 3,
		BaseDelay:  time.Millisecond,
		MaxDelay:   5 * time.Millisecond,
		Multiplier: 2.0,
	}
}

func TestDo_SucceedsAfterFailures(t *testing.T) {
	calls := 0
	err := Do(context.Background(), "flaky", fastConfig(), func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("not yet")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_ExhaustsBudget(t *testing.T) {
	sentinel := errors.New("down")
	calls := 0
	err := Do(context.Background(), "down", fastConfig(), func(context.Context) error {
		calls++
		return sentinel
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 4, calls)
}

func TestDo_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Do(ctx, "cancelled", fastConfig(), func(context.Context) error {
		return errors.New("never retried")
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBackoffDelay_CappedAtMax(t *testing.T) {
	cfg := fastConfig()
	d := backoffDelay(cfg, 10)
	assert.LessOrEqual(t, d, cfg.MaxDelay)
}
