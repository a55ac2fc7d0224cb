package retry

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/gigmetric/earnmap/internal/pkg/logger"
)

// Func is an operation that may be retried.
type Func func(ctx context.Context) error

// Config holds retry behaviour for a single operation.
type Config struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
	Multiplier float64
	Jitter     bool
}

// DefaultConfig covers transient startup failures like a database that is
// still coming up.
func DefaultConfig() Config {
	return Config{
		MaxRetries: 3,
		BaseDelay:  500 * time.Millisecond,
		MaxDelay:   10 * time.Second,
		Multiplier: 2.0,
		Jitter:     true,
	}
}

// Do runs fn with exponential backoff until it succeeds, the retry budget
// is spent, or ctx is cancelled.
func Do(ctx context.Context, name string, cfg Config, fn Func) error {
	var lastErr error

	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		err := fn(ctx)
		if err == nil {
			if attempt > 0 {
				logger.Info("operation succeeded after retries", logrus.Fields{
					"operation": name,
					"attempts":  attempt + 1,
				})
			}
			return nil
		}
		lastErr = err

		if attempt == cfg.MaxRetries {
			break
		}

		delay := backoffDelay(cfg, attempt)
		logger.Warn("operation failed, retrying", logrus.Fields{
			"operation": name,
			"attempt":   attempt + 1,
			"delay":     delay.String(),
			"error":     err.Error(),
		})

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return fmt.Errorf("retry limit exceeded after %d attempts: %w", cfg.MaxRetries+1, lastErr)
}

func backoffDelay(cfg Config, attempt int) time.Duration {
	delay := float64(cfg.BaseDelay) * math.Pow(cfg.Multiplier, float64(attempt))
	if delay > float64(cfg.MaxDelay) {
		delay = float64(cfg.MaxDelay)
	}
	if cfg.Jitter {
		delay += delay * 0.1 * rand.Float64()
	}
	return time.Duration(delay)
}
