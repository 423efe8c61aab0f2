package cache

import (
	"context"
	"log/slog"
	"time"
)

// Cleaner is implemented by caches that can drop expired entries.
type Cleaner interface {
	CleanExpired() int
}

// Manager runs periodic cleanup over a set of registered caches.
type Manager struct {
	caches   []Cleaner
	interval time.Duration
}

// NewManager creates a manager cleaning at the given interval.
func NewManager(interval time.Duration) *Manager {
	return &Manager{interval: interval}
}

// Register adds a cache to the cleanup rotation. Not safe to call after Run
// has started.
func (m *Manager) Register(cache Cleaner) {
	m.caches = append(m.caches, cache)
}

// Run cleans expired entries on a ticker until the context is cancelled.
func (m *Manager) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			cleaned := 0
			for _, cache := range m.caches {
				cleaned += cache.CleanExpired()
			}
			if cleaned > 0 {
				slog.DebugContext(ctx, "Cache cleanup pass", "removed", cleaned)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
