package domain

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore_WeightedFormula(t *testing.T) {
	tests := []struct {
		name    string
		factors RiskFactors
		want    RiskScore
	}{
		{"collapse with trapped survivors", RiskFactors{StructuralDamage: 85, FireHazard: 30, HumanDanger: 60}, 62},
		{"all zero", RiskFactors{}, 0},
		{"all max", RiskFactors{StructuralDamage: 100, FireHazard: 100, HumanDanger: 100}, 100},
		{"human danger only", RiskFactors{HumanDanger: 100}, 50},
		{"half rounds up", RiskFactors{StructuralDamage: 5}, 2},
		{"fire profile", RiskFactors{StructuralDamage: 65, FireHazard: 98, HumanDanger: 90}, 84},
		{"flood profile", RiskFactors{StructuralDamage: 40, FireHazard: 10, HumanDanger: 88}, 58},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Score(tt.factors)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScore_RangeOverGrid(t *testing.T) {
	for s := 0.0; s <= 100; s += 12.5 {
		for f := 0.0; f <= 100; f += 12.5 {
			for h := 0.0; h <= 100; h += 12.5 {
				got, err := Score(RiskFactors{StructuralDamage: s, FireHazard: f, HumanDanger: h})
				require.NoError(t, err)
				assert.GreaterOrEqual(t, int(got), 0)
				assert.LessOrEqual(t, int(got), 100)
			}
		}
	}
}

func TestScore_RejectsOutOfRange(t *testing.T) {
	tests := []struct {
		name    string
		factors RiskFactors
		field   string
	}{
		{"negative structural", RiskFactors{StructuralDamage: -1}, "structural_damage"},
		{"fire above max", RiskFactors{FireHazard: 100.01}, "fire_hazard"},
		{"human NaN", RiskFactors{HumanDanger: math.NaN()}, "human_danger"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Score(tt.factors)
			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr), "want ValidationError, got %v", err)
			assert.Equal(t, tt.field, vErr.Field)
			assert.False(t, errors.Is(err, ErrScoreClamped))
		})
	}
}

func TestNewRiskFactors(t *testing.T) {
	f, err := NewRiskFactors(85, 30, 60)
	require.NoError(t, err)
	assert.Equal(t, RiskFactors{StructuralDamage: 85, FireHazard: 30, HumanDanger: 60}, f)

	_, err = NewRiskFactors(85, 130, 60)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "fire_hazard", vErr.Field)
	assert.Equal(t, 130.0, vErr.Value)
}

func TestClassify_Boundaries(t *testing.T) {
	tests := []struct {
		score RiskScore
		want  RiskLevel
	}{
		{0, RiskLow},
		{20, RiskLow},
		{21, RiskMedium},
		{50, RiskMedium},
		{51, RiskHigh},
		{62, RiskHigh},
		{80, RiskHigh},
		{81, RiskCritical},
		{100, RiskCritical},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.score), "classify(%d)", tt.score)
	}
}

func TestScoreAndClassify_EndToEnd(t *testing.T) {
	factors, err := NewRiskFactors(85, 30, 60)
	require.NoError(t, err)

	score, err := Score(factors)
	require.NoError(t, err)
	assert.Equal(t, RiskScore(62), score)
	assert.Equal(t, RiskHigh, Classify(score))
}

func TestParseRiskLevel(t *testing.T) {
	tests := []struct {
		in   string
		want RiskLevel
	}{
		{"LOW", RiskLow},
		{"medium", RiskMedium},
		{"MODERATE", RiskMedium},
		{" High ", RiskHigh},
		{"CRITICAL", RiskCritical},
	}
	for _, tt := range tests {
		got, err := ParseRiskLevel(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseRiskLevel("STANDBY")
	assert.Error(t, err)
}
