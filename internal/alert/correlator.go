package alert

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/hazard-risk-engine/internal/domain"
	"github.com/couchcryptid/hazard-risk-engine/internal/observability"
)

const (
	// FeedRadiusKm is the acceptance radius applied to every live feed hazard.
	FeedRadiusKm = 300.0
	// EmergencyMagnitude is the magnitude above which a feed hazard is an emergency.
	EmergencyMagnitude = 6.0
)

// Correlation outcomes recorded in metrics.
const (
	outcomeFeed      = "feed"
	outcomeRegistry  = "registry"
	outcomeNone      = "none"
	outcomeInvalid   = "invalid"
	outcomeCancelled = "cancelled"
)

// Correlator matches an operator location against the live feed first and
// the static registry second. Both passes return the first hazard in range,
// not the nearest one.
type Correlator struct {
	feed     FeedClient
	registry []domain.HazardEvent
	feedTTL  time.Duration
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewCorrelator creates a Correlator. feed may be nil, in which case only the
// static registry is consulted.
func NewCorrelator(feed FeedClient, registry []domain.HazardEvent, feedTTL time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Correlator {
	entries := make([]domain.HazardEvent, len(registry))
	copy(entries, registry)
	for i := range entries {
		entries[i].Source = domain.SourceRegistry
	}
	return &Correlator{
		feed:     feed,
		registry: entries,
		feedTTL:  feedTTL,
		logger:   logger,
		metrics:  metrics,
	}
}

// Correlate returns the hazard affecting loc, or nil when none is in range.
// An invalid loc yields a *domain.CoordinateError. Feed failures are logged
// and never returned.
func (c *Correlator) Correlate(ctx context.Context, loc domain.GeoPoint) (*domain.HazardEvent, error) {
	if err := loc.Validate(); err != nil {
		c.metrics.Correlations.WithLabelValues(outcomeInvalid).Inc()
		return nil, fmt.Errorf("correlate: %w", err)
	}

	for _, h := range c.fetchFeed(ctx) {
		d, err := domain.Distance(loc, h.Location)
		if err != nil {
			c.logger.Debug("skipping feed hazard with invalid coordinates", "hazard_id", h.ID, "error", err)
			continue
		}
		if d <= FeedRadiusKm {
			ev := feedEvent(h)
			c.metrics.Correlations.WithLabelValues(outcomeFeed).Inc()
			c.logger.Info("hazard correlated from live feed",
				"hazard_id", ev.ID, "severity", ev.Severity, "distance_km", d)
			return &ev, nil
		}
	}

	for _, ev := range c.registry {
		d, err := domain.Distance(loc, ev.Location)
		if err != nil {
			continue
		}
		if d <= ev.RadiusKm {
			hit := ev
			c.metrics.Correlations.WithLabelValues(outcomeRegistry).Inc()
			c.logger.Info("hazard correlated from static registry",
				"hazard_id", hit.ID, "kind", hit.Kind, "distance_km", d)
			return &hit, nil
		}
	}

	c.metrics.Correlations.WithLabelValues(outcomeNone).Inc()
	return nil, nil
}

// fetchFeed returns the live feed, or nil when it cannot be read.
func (c *Correlator) fetchFeed(ctx context.Context) []FeedHazard {
	if c.feed == nil {
		return nil
	}
	hazards, err := c.feed.FetchRecentHazards(ctx, c.feedTTL)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrFeedUnavailable, err)
		c.logger.Warn("live hazard feed failed, falling back to static registry", "error", err)
		c.metrics.FeedRequests.WithLabelValues("error").Inc()
		return nil
	}
	if len(hazards) == 0 {
		c.metrics.FeedRequests.WithLabelValues("empty").Inc()
	} else {
		c.metrics.FeedRequests.WithLabelValues("success").Inc()
	}
	return hazards
}

func feedEvent(h FeedHazard) domain.HazardEvent {
	severity := domain.SeverityWarning
	if h.Magnitude > EmergencyMagnitude {
		severity = domain.SeverityEmergency
	}
	return domain.HazardEvent{
		ID:         h.ID,
		Kind:       domain.HazardEarthquake,
		Severity:   severity,
		Title:      fmt.Sprintf("M%.1f Earthquake", h.Magnitude),
		Message:    fmt.Sprintf("Magnitude %.1f earthquake reported %s. Expect aftershocks and check structures before entry.", h.Magnitude, h.Place),
		Location:   h.Location,
		RadiusKm:   FeedRadiusKm,
		ObservedAt: h.ObservedAt,
		Source:     domain.SourceFeed,
	}
}
