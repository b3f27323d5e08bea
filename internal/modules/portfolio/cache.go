package portfolio

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/spacefolio/internal/domain"
)

// Cache holds the most recent portfolio summary so the read path never
// blocks on the (network-bound) exchanges.
//
// Lifecycle: empty until the first successful refresh, populated
// forever after - a failed refresh never clears a previously cached
// summary. The summary is rebuilt outside the lock; only the pointer
// swap happens under it, so readers always see either the previous or
// the new summary, never a half-written one.
type Cache struct {
	service *Service
	log     zerolog.Logger

	mu          sync.RWMutex
	summary     *domain.PortfolioSummary
	refreshedAt time.Time
}

// NewCache creates an empty cache backed by the given service.
func NewCache(service *Service, log zerolog.Logger) *Cache {
	return &Cache{
		service: service,
		log:     log.With().Str("component", "portfolio_cache").Logger(),
	}
}

// Refresh recomputes the summary and swaps it in. On failure the prior
// summary stays untouched and the error is returned for logging - the
// read path is unaffected.
func (c *Cache) Refresh(ctx context.Context) error {
	summary, err := c.service.BuildSummary(ctx)
	if err != nil {
		c.log.Error().Err(err).Msg("Refresh failed, keeping previous summary")
		return err
	}

	c.mu.Lock()
	c.summary = summary
	c.refreshedAt = time.Now().UTC()
	c.mu.Unlock()

	c.log.Info().Msg("Portfolio cache updated")
	return nil
}

// Read returns the cached summary without touching the network. When
// the cache is still empty (a request racing the startup refresh) it
// falls back to a synchronous build, which may fail and propagates
// that failure to the caller.
func (c *Cache) Read(ctx context.Context) (*domain.PortfolioSummary, error) {
	c.mu.RLock()
	summary := c.summary
	c.mu.RUnlock()

	if summary != nil {
		return summary, nil
	}

	c.log.Debug().Msg("Cache empty, building summary on demand")
	summary, err := c.service.BuildSummary(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.summary == nil {
		c.summary = summary
		c.refreshedAt = time.Now().UTC()
	}
	c.mu.Unlock()

	return summary, nil
}

// Populated reports whether a summary has been cached yet, and when.
func (c *Cache) Populated() (bool, time.Time) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.summary != nil, c.refreshedAt
}
