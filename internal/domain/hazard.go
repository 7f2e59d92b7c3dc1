package domain

import (
	"math"
	"time"
)

// HazardKind names the type of danger a HazardEvent describes.
type HazardKind string

const (
	HazardEarthquake HazardKind = "EARTHQUAKE"
	HazardTyphoon    HazardKind = "TYPHOON"
	HazardAirRaid    HazardKind = "AIR_RAID"
	HazardMissile    HazardKind = "MISSILE"
	HazardFlood      HazardKind = "FLOOD"
	HazardFire       HazardKind = "FIRE"
)

// Severity is the banner level of a hazard alert.
type Severity string

const (
	SeverityWarning   Severity = "WARNING"
	SeverityEmergency Severity = "EMERGENCY"
)

// HazardSource records where a HazardEvent came from.
type HazardSource string

const (
	// SourceFeed events are regenerated on every live feed fetch.
	SourceFeed HazardSource = "feed"
	// SourceRegistry events belong to the long-lived static catalog.
	SourceRegistry HazardSource = "registry"
)

// HazardEvent is a geolocated, radius-bounded danger record.
type HazardEvent struct {
	ID         string       `json:"id" toml:"id"`
	Kind       HazardKind   `json:"kind" toml:"kind"`
	Severity   Severity     `json:"severity" toml:"severity"`
	Title      string       `json:"title" toml:"title"`
	Message    string       `json:"message" toml:"message"`
	Location   GeoPoint     `json:"location" toml:"location"`
	RadiusKm   float64      `json:"radius_km" toml:"radius_km"`
	ObservedAt time.Time    `json:"observed_at" toml:"observed_at"`
	Source     HazardSource `json:"source" toml:"-"`
}

// Validate checks the location and requires a positive radius.
func (e HazardEvent) Validate() error {
	if err := e.Location.Validate(); err != nil {
		return err
	}
	if math.IsNaN(e.RadiusKm) || e.RadiusKm <= 0 {
		return &ValidationError{Field: "radius_km", Value: e.RadiusKm, Reason: "must be greater than zero"}
	}
	return nil
}
