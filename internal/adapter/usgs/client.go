package usgs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/hazard-risk-engine/internal/alert"
	"github.com/couchcryptid/hazard-risk-engine/internal/domain"
	"github.com/couchcryptid/hazard-risk-engine/internal/observability"
)

// DefaultFeedURL is the USGS summary feed of all earthquakes in the past day.
const DefaultFeedURL = "https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/all_day.geojson"

// Client implements alert.FeedClient using the USGS GeoJSON summary feed.
type Client struct {
	httpClient *http.Client
	feedURL    string
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates a USGS feed client. The per-request bound comes from the
// ttl passed to FetchRecentHazards.
func NewClient(feedURL string, logger *slog.Logger, metrics *observability.Metrics) *Client {
	if feedURL == "" {
		feedURL = DefaultFeedURL
	}
	return &Client{
		httpClient: &http.Client{},
		feedURL:    feedURL,
		logger:     logger,
		metrics:    metrics,
	}
}

// FetchRecentHazards downloads the feed and returns its features in feed order.
func (c *Client) FetchRecentHazards(ctx context.Context, ttl time.Duration) ([]alert.FeedHazard, error) {
	if ttl > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, ttl)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/geo+json, application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.FeedAPIDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("usgs feed request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("usgs feed error: status %d: %s", resp.StatusCode, body)
	}

	var fc featureCollection
	if err := json.NewDecoder(resp.Body).Decode(&fc); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	hazards := make([]alert.FeedHazard, 0, len(fc.Features))
	for _, f := range fc.Features {
		h, ok := f.toHazard()
		if !ok {
			c.logger.Debug("skipping feature without coordinates", "feature_id", f.ID)
			continue
		}
		hazards = append(hazards, h)
	}
	return hazards, nil
}

// USGS GeoJSON response types.

type featureCollection struct {
	Features []feature `json:"features"`
}

type feature struct {
	ID         string     `json:"id"`
	Properties properties `json:"properties"`
	Geometry   geometry   `json:"geometry"`
}

type properties struct {
	Mag   *float64 `json:"mag"` // null for some events
	Place string   `json:"place"`
	Time  int64    `json:"time"` // epoch milliseconds
	Title string   `json:"title"`
}

type geometry struct {
	Coordinates []float64 `json:"coordinates"` // [lon, lat, depth]
}

func (f feature) toHazard() (alert.FeedHazard, bool) {
	if len(f.Geometry.Coordinates) < 2 {
		return alert.FeedHazard{}, false
	}
	h := alert.FeedHazard{
		ID: f.ID,
		// GeoJSON orders positions longitude first.
		Location: domain.GeoPoint{Lat: f.Geometry.Coordinates[1], Lng: f.Geometry.Coordinates[0]},
		Place:    f.Properties.Place,
	}
	if f.Properties.Mag != nil {
		h.Magnitude = *f.Properties.Mag
	}
	if f.Properties.Time > 0 {
		h.ObservedAt = time.UnixMilli(f.Properties.Time).UTC()
	}
	return h, true
}
