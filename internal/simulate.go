package internal

import (
	"context"
	"time"
)

// Simulate hands each payload to fn, one per interval, starting one
// interval after the call. It returns ctx.Err() if cancelled first.
func Simulate(ctx context.Context, payloads []NamedPayload, interval time.Duration, fn func(NamedPayload)) error {
	if interval <= 0 {
		for _, p := range payloads {
			if err := ctx.Err(); err != nil {
				return err
			}
			fn(p)
		}
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for _, p := range payloads {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			LogDebug("Simulating %s", p.Name)
			fn(p)
		}
	}
	return nil
}
