package usgs

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/couchcryptid/hazard-risk-engine/internal/domain"
	"github.com/couchcryptid/hazard-risk-engine/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	contentTypeGeoJSON = "application/geo+json"
	headerContentType  = "Content-Type"
)

const sampleFeed = `{
  "type": "FeatureCollection",
  "metadata": {"generated": 1713945600000, "count": 3},
  "features": [
    {
      "type": "Feature",
      "id": "us7000m9g4",
      "properties": {"mag": 7.4, "place": "18 km SSW of Hualien City, Taiwan", "time": 1712102233000, "title": "M 7.4 - 18 km SSW of Hualien City, Taiwan"},
      "geometry": {"type": "Point", "coordinates": [121.5618, 23.8193, 34.8]}
    },
    {
      "type": "Feature",
      "id": "ak024bz1x",
      "properties": {"mag": null, "place": "Southern Alaska", "time": 1712102000000},
      "geometry": {"type": "Point", "coordinates": [-150.1, 61.3]}
    },
    {
      "type": "Feature",
      "id": "broken",
      "properties": {"mag": 2.0},
      "geometry": {"type": "Point", "coordinates": []}
    }
  ]
}`

func testClient(feedURL string) *Client {
	return &Client{
		httpClient: &http.Client{},
		feedURL:    feedURL,
		metrics:    observability.NewMetricsForTesting(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestClient_FetchRecentHazards_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set(headerContentType, contentTypeGeoJSON)
		_, _ = w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()

	hazards, err := testClient(srv.URL).FetchRecentHazards(context.Background(), 5*time.Second)
	require.NoError(t, err)
	require.Len(t, hazards, 2, "feature without coordinates is skipped")

	hualien := hazards[0]
	assert.Equal(t, "us7000m9g4", hualien.ID)
	assert.Equal(t, domain.GeoPoint{Lat: 23.8193, Lng: 121.5618}, hualien.Location, "coordinates arrive as [lon, lat]")
	assert.Equal(t, 7.4, hualien.Magnitude)
	assert.Equal(t, "18 km SSW of Hualien City, Taiwan", hualien.Place)
	assert.Equal(t, time.Date(2024, time.April, 2, 23, 57, 13, 0, time.UTC), hualien.ObservedAt)

	alaska := hazards[1]
	assert.Equal(t, 61.3, alaska.Location.Lat)
	assert.Equal(t, -150.1, alaska.Location.Lng)
	assert.Zero(t, alaska.Magnitude, "null magnitude becomes zero")
}

func TestClient_FetchRecentHazards_Empty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, contentTypeGeoJSON)
		_, _ = w.Write([]byte(`{"type":"FeatureCollection","features":[]}`))
	}))
	defer srv.Close()

	hazards, err := testClient(srv.URL).FetchRecentHazards(context.Background(), time.Second)
	require.NoError(t, err)
	assert.Empty(t, hazards)
}

func TestClient_FetchRecentHazards_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`upstream unavailable`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).FetchRecentHazards(context.Background(), time.Second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestClient_FetchRecentHazards_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"features": [`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).FetchRecentHazards(context.Background(), time.Second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestClient_FetchRecentHazards_TTLBoundsRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	start := time.Now()
	_, err := testClient(srv.URL).FetchRecentHazards(context.Background(), 50*time.Millisecond)
	require.Error(t, err)
	assert.Less(t, time.Since(start), 200*time.Millisecond)
}

func TestNewClient_DefaultURL(t *testing.T) {
	c := NewClient("", slog.New(slog.NewTextHandler(io.Discard, nil)), observability.NewMetricsForTesting())
	assert.Equal(t, DefaultFeedURL, c.feedURL)
}
