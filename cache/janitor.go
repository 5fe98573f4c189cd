package cache

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// RunJanitor sweeps expired entries every interval until ctx is cancelled.
// It is intended to be started as a goroutine by long-running processes.
func (c *Cache) RunJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 10 * time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Debug().Msg("Cache janitor stopped")
			return
		case <-ticker.C:
			if removed := c.SweepExpired(); removed > 0 {
				log.Debug().Int("removed", removed).Int("remaining", c.Len()).Msg("Swept expired cache entries")
			}
		}
	}
}
