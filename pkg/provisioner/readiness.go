package provisioner

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Probe checks whether the instance behind a descriptor accepts
// connections. Implementations must be cheap and side-effect free.
type Probe func(ctx context.Context, desc Descriptor) error

// awaitReady polls probe with exponential backoff until it succeeds or the
// total timeout budget is spent. Backoff doubles from base up to max; the
// budget is enforced with a derived deadline so a slow probe cannot overrun
// it by more than one attempt.
func awaitReady(ctx context.Context, cfg Config, desc Descriptor, probe Probe) error {
	ctx, cancel := context.WithTimeout(ctx, cfg.ReadinessTimeout)
	defer cancel()

	interval := cfg.ReadinessBaseInterval
	var lastErr error

	for {
		if err := probe(ctx, desc); err == nil {
			return nil
		} else {
			lastErr = err
		}

		select {
		case <-ctx.Done():
			if lastErr != nil {
				return fmt.Errorf("readiness budget exceeded: %w", errors.Join(ctx.Err(), lastErr))
			}
			return fmt.Errorf("readiness budget exceeded: %w", ctx.Err())
		case <-time.After(interval):
		}

		interval *= 2
		if interval > cfg.ReadinessMaxInterval {
			interval = cfg.ReadinessMaxInterval
		}
	}
}
