package domain

import (
	"fmt"
	"math"
	"strings"
)

// Factor weights: human danger outweighs structural damage, which outweighs fire.
const (
	structuralWeight = 0.3
	fireWeight       = 0.2
	humanWeight      = 0.5
)

// RiskFactors holds the three independent damage-axis readings, each in [0,100].
type RiskFactors struct {
	StructuralDamage float64 `json:"structural_damage"`
	FireHazard       float64 `json:"fire_hazard"`
	HumanDanger      float64 `json:"human_danger"`
}

// NewRiskFactors builds a RiskFactors, rejecting any reading outside [0,100].
func NewRiskFactors(structuralDamage, fireHazard, humanDanger float64) (RiskFactors, error) {
	f := RiskFactors{
		StructuralDamage: structuralDamage,
		FireHazard:       fireHazard,
		HumanDanger:      humanDanger,
	}
	if err := f.Validate(); err != nil {
		return RiskFactors{}, err
	}
	return f, nil
}

// Validate returns a *ValidationError for the first reading outside [0,100].
// Values decoded from JSON bypass NewRiskFactors and must be checked here.
func (f RiskFactors) Validate() error {
	for _, c := range []struct {
		field string
		value float64
	}{
		{"structural_damage", f.StructuralDamage},
		{"fire_hazard", f.FireHazard},
		{"human_danger", f.HumanDanger},
	} {
		if math.IsNaN(c.value) {
			return &ValidationError{Field: c.field, Value: c.value, Reason: "not a number"}
		}
		if c.value < 0 || c.value > 100 {
			return &ValidationError{Field: c.field, Value: c.value, Reason: "must be within [0,100]"}
		}
	}
	return nil
}

// RiskScore is the weighted 0-100 combination of RiskFactors.
type RiskScore int

// Score combines the factors as round(0.3*structural + 0.2*fire + 0.5*human).
// Invalid factors yield a *ValidationError. A result outside [0,100] is
// clamped and reported with ErrScoreClamped.
func Score(f RiskFactors) (RiskScore, error) {
	if err := f.Validate(); err != nil {
		return 0, err
	}

	raw := math.Round(
		f.StructuralDamage*structuralWeight +
			f.FireHazard*fireWeight +
			f.HumanDanger*humanWeight,
	)

	switch {
	case raw < 0:
		return 0, fmt.Errorf("%w: raw=%g", ErrScoreClamped, raw)
	case raw > 100:
		return 100, fmt.Errorf("%w: raw=%g", ErrScoreClamped, raw)
	}
	return RiskScore(raw), nil
}

// RiskLevel is the categorical band of a RiskScore.
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// Classify maps a score to its level. Each band excludes its lower bound and
// includes its upper bound, so 80 is HIGH and 81 is CRITICAL.
func Classify(score RiskScore) RiskLevel {
	switch {
	case score > 80:
		return RiskCritical
	case score > 50:
		return RiskHigh
	case score > 20:
		return RiskMedium
	default:
		return RiskLow
	}
}

// ParseRiskLevel accepts the four canonical tokens plus "MODERATE", which
// scenario authors use for the MEDIUM band.
func ParseRiskLevel(s string) (RiskLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "LOW":
		return RiskLow, nil
	case "MEDIUM", "MODERATE":
		return RiskMedium, nil
	case "HIGH":
		return RiskHigh, nil
	case "CRITICAL":
		return RiskCritical, nil
	default:
		return "", fmt.Errorf("unknown risk level %q", s)
	}
}

// UnmarshalText lets catalog files carry either MEDIUM or MODERATE.
func (l *RiskLevel) UnmarshalText(text []byte) error {
	parsed, err := ParseRiskLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
