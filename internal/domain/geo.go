package domain

import "math"

// EarthRadiusKm is the mean Earth radius used for great-circle distances.
const EarthRadiusKm = 6371.0

// GeoPoint is a WGS-84 coordinate in decimal degrees.
type GeoPoint struct {
	Lat float64 `json:"lat" toml:"lat"`
	Lng float64 `json:"lng" toml:"lng"`
}

// Validate returns a *CoordinateError when the point is outside WGS-84 bounds.
func (p GeoPoint) Validate() error {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lng) ||
		p.Lat < -90 || p.Lat > 90 || p.Lng < -180 || p.Lng > 180 {
		return &CoordinateError{Lat: p.Lat, Lng: p.Lng}
	}
	return nil
}

// Distance returns the haversine great-circle distance between a and b in km.
func Distance(a, b GeoPoint) (float64, error) {
	if err := a.Validate(); err != nil {
		return 0, err
	}
	if err := b.Validate(); err != nil {
		return 0, err
	}

	dLat := radians(b.Lat - a.Lat)
	dLon := radians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(a.Lat))*math.Cos(radians(b.Lat))*math.Sin(dLon/2)*math.Sin(dLon/2)
	// Rounding can push h past 1 for antipodal points.
	h = math.Min(h, 1)
	return EarthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h)), nil
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
