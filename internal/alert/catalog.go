package alert

import (
	"fmt"
	"os"

	"github.com/couchcryptid/hazard-risk-engine/internal/domain"
	"github.com/pelletier/go-toml/v2"
)

// catalogFile is the on-disk layout of a static hazard catalog:
//
//	[[hazard]]
//	id = "typhoon-south"
//	kind = "TYPHOON"
//	severity = "WARNING"
//	radius_km = 120.0
//	location = { lat = 22.62, lng = 120.30 }
type catalogFile struct {
	Hazards []domain.HazardEvent `toml:"hazard"`
}

// DefaultCatalog returns the built-in static hazard registry.
func DefaultCatalog() []domain.HazardEvent {
	return []domain.HazardEvent{
		{
			ID:       "typhoon-south",
			Kind:     domain.HazardTyphoon,
			Severity: domain.SeverityWarning,
			Title:    "Typhoon Warning",
			Message:  "Sea and land typhoon warning in effect. Secure loose objects and avoid coastal and mountain areas.",
			Location: domain.GeoPoint{Lat: 22.62, Lng: 120.30},
			RadiusKm: 120,
			Source:   domain.SourceRegistry,
		},
		{
			ID:       "air-raid-north",
			Kind:     domain.HazardAirRaid,
			Severity: domain.SeverityEmergency,
			Title:    "Air Raid Alert",
			Message:  "Air raid alert issued. Move to the nearest shelter and stay away from windows until the all-clear.",
			Location: domain.GeoPoint{Lat: 25.0330, Lng: 121.5654},
			RadiusKm: 30,
			Source:   domain.SourceRegistry,
		},
		{
			ID:       "missile-east",
			Kind:     domain.HazardMissile,
			Severity: domain.SeverityEmergency,
			Title:    "Missile Warning",
			Message:  "Missile launch detected toward the east coast. Take cover in a reinforced structure immediately.",
			Location: domain.GeoPoint{Lat: 23.97, Lng: 121.60},
			RadiusKm: 50,
			Source:   domain.SourceRegistry,
		},
	}
}

// LoadCatalog reads a TOML hazard catalog from path and validates each entry.
// Entries keep their file order, which is the order the correlator checks them.
func LoadCatalog(path string) ([]domain.HazardEvent, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from operator config
	if err != nil {
		return nil, fmt.Errorf("read hazard catalog %s: %w", path, err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes and validates a TOML hazard catalog.
func ParseCatalog(data []byte) ([]domain.HazardEvent, error) {
	var file catalogFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse hazard catalog: %w", err)
	}
	if err := ValidateCatalog(file.Hazards); err != nil {
		return nil, err
	}
	for i := range file.Hazards {
		file.Hazards[i].Source = domain.SourceRegistry
	}
	return file.Hazards, nil
}

// ValidateCatalog checks every entry and rejects duplicate IDs.
func ValidateCatalog(hazards []domain.HazardEvent) error {
	seen := make(map[string]bool, len(hazards))
	for i, h := range hazards {
		if h.ID == "" {
			return fmt.Errorf("hazard catalog entry %d: id is required", i)
		}
		if seen[h.ID] {
			return fmt.Errorf("hazard catalog: duplicate id %q", h.ID)
		}
		seen[h.ID] = true
		if err := h.Validate(); err != nil {
			return fmt.Errorf("hazard catalog entry %q: %w", h.ID, err)
		}
		switch h.Severity {
		case domain.SeverityWarning, domain.SeverityEmergency:
		default:
			return fmt.Errorf("hazard catalog entry %q: unknown severity %q", h.ID, h.Severity)
		}
	}
	return nil
}
