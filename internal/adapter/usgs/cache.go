package usgs

import (
	"context"
	"sync"
	"time"

	"github.com/couchcryptid/hazard-risk-engine/internal/alert"
	"github.com/couchcryptid/hazard-risk-engine/internal/observability"
	"github.com/jonboulle/clockwork"
)

// CachedFeed wraps a FeedClient and serves the last snapshot until it expires.
type CachedFeed struct {
	inner   alert.FeedClient
	maxAge  time.Duration
	clock   clockwork.Clock
	metrics *observability.Metrics

	mu        sync.Mutex
	snapshot  []alert.FeedHazard
	fetchedAt time.Time
}

// NewCachedFeed creates a cache decorator around a feed client.
func NewCachedFeed(inner alert.FeedClient, maxAge time.Duration, clock clockwork.Clock, metrics *observability.Metrics) *CachedFeed {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &CachedFeed{
		inner:   inner,
		maxAge:  maxAge,
		clock:   clock,
		metrics: metrics,
	}
}

func (c *CachedFeed) FetchRecentHazards(ctx context.Context, ttl time.Duration) ([]alert.FeedHazard, error) {
	if hazards, ok := c.get(); ok {
		c.metrics.FeedCache.WithLabelValues("hit").Inc()
		return hazards, nil
	}
	c.metrics.FeedCache.WithLabelValues("miss").Inc()

	hazards, err := c.inner.FetchRecentHazards(ctx, ttl)
	if err != nil {
		return nil, err
	}
	// Only cache non-empty snapshots so a quiet feed is re-read next time.
	if len(hazards) > 0 {
		c.put(hazards)
	}
	return hazards, nil
}

func (c *CachedFeed) get() ([]alert.FeedHazard, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snapshot == nil || c.clock.Since(c.fetchedAt) >= c.maxAge {
		return nil, false
	}
	out := make([]alert.FeedHazard, len(c.snapshot))
	copy(out, c.snapshot)
	return out, true
}

func (c *CachedFeed) put(hazards []alert.FeedHazard) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.snapshot = make([]alert.FeedHazard, len(hazards))
	copy(c.snapshot, hazards)
	c.fetchedAt = c.clock.Now()
}
