package alert

import (
	"context"
	"errors"
	"time"

	"github.com/couchcryptid/hazard-risk-engine/internal/domain"
)

// ErrFeedUnavailable wraps any live feed failure. The correlator recovers
// from it locally and never returns it.
var ErrFeedUnavailable = errors.New("hazard feed unavailable")

// FeedHazard is one entry of a live hazard feed.
type FeedHazard struct {
	ID         string
	Location   domain.GeoPoint
	Magnitude  float64
	Place      string
	ObservedAt time.Time
}

// FeedClient fetches recent hazards. Implementations must return or fail
// within ttl.
type FeedClient interface {
	FetchRecentHazards(ctx context.Context, ttl time.Duration) ([]FeedHazard, error)
}
