package server

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dukerupert/shoplist/internal/middleware"
	"github.com/dukerupert/shoplist/internal/store"
)

// Cleaner periodically removes expired sessions and stale rate limiter
// entries.
type Cleaner struct {
	mu       sync.RWMutex
	sessions *store.SessionStore
	limiter  *middleware.RateLimiter
	interval time.Duration
	logger   *slog.Logger
	cancel   context.CancelFunc
	done     chan struct{}
}

func NewCleaner(sessions *store.SessionStore, limiter *middleware.RateLimiter, interval time.Duration, logger *slog.Logger) *Cleaner {
	return &Cleaner{
		sessions: sessions,
		limiter:  limiter,
		interval: interval,
		logger:   logger,
	}
}

// Start begins the cleanup loop.
func (c *Cleaner) Start(ctx context.Context) {
	c.mu.Lock()
	ctx, c.cancel = context.WithCancel(ctx)
	c.done = make(chan struct{})
	c.mu.Unlock()

	go func() {
		defer close(c.done)
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.RunOnce(ctx)
			}
		}
	}()
}

// Stop cancels the loop and waits for it to exit.
func (c *Cleaner) Stop() {
	c.mu.RLock()
	cancel := c.cancel
	done := c.done
	c.mu.RUnlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
}

func (c *Cleaner) RunOnce(ctx context.Context) {
	if n, err := c.sessions.DeleteExpired(ctx); err != nil {
		c.logger.Error("cleanup expired sessions", "error", err)
	} else if n > 0 {
		c.logger.Info("cleaned up expired sessions", "count", n)
	}
	c.limiter.Cleanup()
}
