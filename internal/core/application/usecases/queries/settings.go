package queries

import (
	"context"
	"time"
)

// DefaultTimeout bounds a read when Settings.Timeout is not set.
const DefaultTimeout = 5 * time.Second

// Settings are shared by all query handlers. Zero fields fall back to defaults.
type Settings struct {
	// Timeout bounds every read, including row scanning. A read that runs out of time
	// fails with errs.StoreUnavailableError.
	Timeout time.Duration
}

func (s Settings) withDefaults() Settings {
	if s.Timeout <= 0 {
		s.Timeout = DefaultTimeout
	}
	return s
}

func (s Settings) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.Timeout)
}
