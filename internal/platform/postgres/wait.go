package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/taskflow/taskflow-api/internal/platform/logger"
)

// Pinger is the connectivity probe used by the readiness gate.
// *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// ReadinessPolicy bounds the startup readiness gate. MaxAttempts counts
// the initial probe plus retries; BaseDelay is the delay before the first
// retry and doubles on each subsequent one.
type ReadinessPolicy struct {
	MaxAttempts uint64
	BaseDelay   time.Duration
}

// DefaultReadinessPolicy matches the documented worst case of ~255s of
// cumulative backoff (8 attempts, 1s base).
func DefaultReadinessPolicy() ReadinessPolicy {
	return ReadinessPolicy{
		MaxAttempts: 8,
		BaseDelay:   time.Second,
	}
}

// WaitForReady blocks until the database answers a ping, retrying with
// exponential backoff per the policy. It is the one-time startup barrier:
// the caller must not run migrations or serve traffic until it returns
// nil. On exhaustion it returns a terminal error and the boot sequence
// fails fatally.
func WaitForReady(ctx context.Context, db Pinger, policy ReadinessPolicy, log *slog.Logger) error {
	if log == nil {
		log = logger.FromContext(ctx)
	}
	if policy.MaxAttempts == 0 {
		policy = DefaultReadinessPolicy()
	}
	if policy.BaseDelay <= 0 {
		policy.BaseDelay = time.Second
	}

	attempt := 0
	backoff := retry.WithMaxRetries(policy.MaxAttempts-1, retry.NewExponential(policy.BaseDelay))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		if err := db.PingContext(ctx); err != nil {
			log.Warn("database not ready",
				slog.Int("attempt", attempt),
				slog.Uint64("max_attempts", policy.MaxAttempts),
				slog.String("error", err.Error()))
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("database not reachable after %d attempts: %w", attempt, err)
	}

	log.Info("database ready", slog.Int("attempts", attempt))
	return nil
}
