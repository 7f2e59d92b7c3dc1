package alert

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/couchcryptid/hazard-risk-engine/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = `
[[hazard]]
id = "flood-tainan"
kind = "FLOOD"
severity = "WARNING"
title = "Flood Warning"
message = "River levels rising."
radius_km = 40.0
location = { lat = 22.99, lng = 120.21 }

[[hazard]]
id = "missile-east"
kind = "MISSILE"
severity = "EMERGENCY"
title = "Missile Warning"
radius_km = 50.0
location = { lat = 23.97, lng = 121.60 }
`

func TestParseCatalog(t *testing.T) {
	hazards, err := ParseCatalog([]byte(sampleCatalog))
	require.NoError(t, err)
	require.Len(t, hazards, 2)

	assert.Equal(t, "flood-tainan", hazards[0].ID)
	assert.Equal(t, domain.HazardFlood, hazards[0].Kind)
	assert.Equal(t, domain.GeoPoint{Lat: 22.99, Lng: 120.21}, hazards[0].Location)
	assert.Equal(t, 40.0, hazards[0].RadiusKm)
	assert.Equal(t, domain.SourceRegistry, hazards[0].Source)
	assert.Equal(t, domain.SeverityEmergency, hazards[1].Severity)
}

func TestLoadCatalog_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hazards.toml")
	require.NoError(t, os.WriteFile(path, []byte(sampleCatalog), 0o600))

	hazards, err := LoadCatalog(path)
	require.NoError(t, err)
	assert.Len(t, hazards, 2)

	_, err = LoadCatalog(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorContains(t, err, "read hazard catalog")
}

func TestParseCatalog_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		catalog string
		want    string
	}{
		{
			name:    "zero radius",
			catalog: "[[hazard]]\nid = \"a\"\nseverity = \"WARNING\"\nradius_km = 0.0\nlocation = { lat = 1.0, lng = 1.0 }\n",
			want:    "radius_km",
		},
		{
			name:    "bad coordinate",
			catalog: "[[hazard]]\nid = \"a\"\nseverity = \"WARNING\"\nradius_km = 5.0\nlocation = { lat = 91.0, lng = 1.0 }\n",
			want:    "invalid coordinate",
		},
		{
			name:    "missing id",
			catalog: "[[hazard]]\nseverity = \"WARNING\"\nradius_km = 5.0\n",
			want:    "id is required",
		},
		{
			name: "duplicate id",
			catalog: "[[hazard]]\nid = \"a\"\nseverity = \"WARNING\"\nradius_km = 5.0\n" +
				"[[hazard]]\nid = \"a\"\nseverity = \"WARNING\"\nradius_km = 5.0\n",
			want: "duplicate id",
		},
		{
			name:    "unknown severity",
			catalog: "[[hazard]]\nid = \"a\"\nseverity = \"ADVISORY\"\nradius_km = 5.0\n",
			want:    "unknown severity",
		},
		{
			name:    "malformed toml",
			catalog: "[[hazard]\nid = ",
			want:    "parse hazard catalog",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tt.catalog))
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestDefaultCatalog_Valid(t *testing.T) {
	require.NoError(t, ValidateCatalog(DefaultCatalog()))
}
