package domain

import (
	"errors"
	"fmt"
)

// ErrScoreClamped is returned alongside a clamped score when the weighted sum
// lands outside [0,100]. Factors are range-checked first, so seeing it means
// an upstream caller bypassed validation.
var ErrScoreClamped = errors.New("risk score clamped into [0,100]")

// ValidationError reports a field value outside its declared range.
type ValidationError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %g: %s", e.Field, e.Value, e.Reason)
}

// CoordinateError reports a latitude/longitude pair outside WGS-84 bounds.
type CoordinateError struct {
	Lat float64
	Lng float64
}

func (e *CoordinateError) Error() string {
	return fmt.Sprintf("invalid coordinate (lat=%g, lng=%g): lat must be in [-90,90] and lng in [-180,180]", e.Lat, e.Lng)
}
