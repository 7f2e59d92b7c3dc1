package usgs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/couchcryptid/hazard-risk-engine/internal/alert"
	"github.com/couchcryptid/hazard-risk-engine/internal/domain"
	"github.com/couchcryptid/hazard-risk-engine/internal/observability"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mock for cache tests ---

type countingFeed struct {
	calls   int
	hazards []alert.FeedHazard
	err     error
}

func (m *countingFeed) FetchRecentHazards(_ context.Context, _ time.Duration) ([]alert.FeedHazard, error) {
	m.calls++
	return m.hazards, m.err
}

var quake = alert.FeedHazard{ID: "us7000m9g4", Location: domain.GeoPoint{Lat: 23.8193, Lng: 121.5618}, Magnitude: 7.4}

func TestCachedFeed_HitWithinMaxAge(t *testing.T) {
	inner := &countingFeed{hazards: []alert.FeedHazard{quake}}
	clock := clockwork.NewFakeClock()
	cached := NewCachedFeed(inner, time.Minute, clock, observability.NewMetricsForTesting())

	h1, err := cached.FetchRecentHazards(context.Background(), time.Second)
	require.NoError(t, err)
	clock.Advance(30 * time.Second)
	h2, err := cached.FetchRecentHazards(context.Background(), time.Second)
	require.NoError(t, err)

	assert.Equal(t, h1, h2)
	assert.Equal(t, 1, inner.calls, "should only call inner once")
}

func TestCachedFeed_ExpiresAfterMaxAge(t *testing.T) {
	inner := &countingFeed{hazards: []alert.FeedHazard{quake}}
	clock := clockwork.NewFakeClock()
	cached := NewCachedFeed(inner, time.Minute, clock, observability.NewMetricsForTesting())

	_, _ = cached.FetchRecentHazards(context.Background(), time.Second)
	clock.Advance(time.Minute)
	_, _ = cached.FetchRecentHazards(context.Background(), time.Second)

	assert.Equal(t, 2, inner.calls)
}

func TestCachedFeed_EmptySnapshotNotCached(t *testing.T) {
	inner := &countingFeed{}
	cached := NewCachedFeed(inner, time.Minute, clockwork.NewFakeClock(), observability.NewMetricsForTesting())

	_, _ = cached.FetchRecentHazards(context.Background(), time.Second)
	_, _ = cached.FetchRecentHazards(context.Background(), time.Second)

	assert.Equal(t, 2, inner.calls)
}

func TestCachedFeed_ErrorPassesThrough(t *testing.T) {
	inner := &countingFeed{err: errors.New("status 503")}
	cached := NewCachedFeed(inner, time.Minute, clockwork.NewFakeClock(), observability.NewMetricsForTesting())

	_, err := cached.FetchRecentHazards(context.Background(), time.Second)
	require.Error(t, err)

	inner.err = nil
	inner.hazards = []alert.FeedHazard{quake}
	hazards, err := cached.FetchRecentHazards(context.Background(), time.Second)
	require.NoError(t, err)
	assert.Len(t, hazards, 1)
}

func TestCachedFeed_ReturnsCopy(t *testing.T) {
	inner := &countingFeed{hazards: []alert.FeedHazard{quake}}
	cached := NewCachedFeed(inner, time.Minute, clockwork.NewFakeClock(), observability.NewMetricsForTesting())

	h1, _ := cached.FetchRecentHazards(context.Background(), time.Second)
	h1[0].Magnitude = 1

	h2, _ := cached.FetchRecentHazards(context.Background(), time.Second)
	assert.Equal(t, 7.4, h2[0].Magnitude)
}
