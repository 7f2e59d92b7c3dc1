package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRawEvent(t *testing.T) {
	msgTime := time.Date(2024, 4, 3, 7, 58, 0, 0, time.UTC)

	t.Run("scene", func(t *testing.T) {
		raw := RawEvent{Value: []byte(`{"kind":"scene","signal":"IMG_flood_0931.png"}`), Timestamp: msgTime}
		env, err := ParseRawEvent(raw)

		require.NoError(t, err)
		assert.Equal(t, KindScene, env.Kind)
		assert.Equal(t, "IMG_flood_0931.png", env.Signal)
		assert.Nil(t, env.Factors)
		assert.Equal(t, msgTime, env.ReportedAt, "falls back to message timestamp")
	})

	t.Run("scene with factors and location", func(t *testing.T) {
		raw := RawEvent{Value: []byte(`{"kind":"Scene","signal":"collapse.jpg","reported_at":"2024-04-03T08:00:00Z",` +
			`"location":{"lat":23.97,"lng":121.6},` +
			`"risk_factors":{"structural_damage":85,"fire_hazard":30,"human_danger":60}}`)}
		env, err := ParseRawEvent(raw)

		require.NoError(t, err)
		assert.Equal(t, KindScene, env.Kind)
		require.NotNil(t, env.Factors)
		assert.Equal(t, RiskFactors{StructuralDamage: 85, FireHazard: 30, HumanDanger: 60}, *env.Factors)
		require.NotNil(t, env.Location)
		assert.Equal(t, GeoPoint{Lat: 23.97, Lng: 121.6}, *env.Location)
		assert.Equal(t, time.Date(2024, 4, 3, 8, 0, 0, 0, time.UTC), env.ReportedAt)
	})

	t.Run("scene with out-of-range factor", func(t *testing.T) {
		raw := RawEvent{Value: []byte(`{"kind":"scene","signal":"x.jpg","risk_factors":{"structural_damage":120}}`)}
		_, err := ParseRawEvent(raw)

		var vErr *ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, "structural_damage", vErr.Field)
	})

	t.Run("scene without signal", func(t *testing.T) {
		_, err := ParseRawEvent(RawEvent{Value: []byte(`{"kind":"scene"}`)})
		require.ErrorIs(t, err, ErrMissingField)
	})

	t.Run("location", func(t *testing.T) {
		env, err := ParseRawEvent(RawEvent{Value: []byte(`{"kind":"location","location":{"lat":25.033,"lng":121.5654}}`)})

		require.NoError(t, err)
		assert.Equal(t, KindLocation, env.Kind)
		assert.Equal(t, &GeoPoint{Lat: 25.033, Lng: 121.5654}, env.Location)
	})

	t.Run("location out of range", func(t *testing.T) {
		_, err := ParseRawEvent(RawEvent{Value: []byte(`{"kind":"location","location":{"lat":121.5654,"lng":25.033}}`)})

		var coordErr *CoordinateError
		require.True(t, errors.As(err, &coordErr))
	})

	t.Run("location missing", func(t *testing.T) {
		_, err := ParseRawEvent(RawEvent{Value: []byte(`{"kind":"location"}`)})
		require.ErrorIs(t, err, ErrMissingField)
	})

	t.Run("control kinds", func(t *testing.T) {
		for _, kind := range []EnvelopeKind{KindLocationLost, KindAlertAck} {
			env, err := ParseRawEvent(RawEvent{Value: []byte(`{"kind":"` + string(kind) + `"}`)})
			require.NoError(t, err)
			assert.Equal(t, kind, env.Kind)
		}
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := ParseRawEvent(RawEvent{Value: []byte(`{"kind":"battery"}`)})
		require.ErrorIs(t, err, ErrUnknownKind)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		_, err := ParseRawEvent(RawEvent{Value: []byte("{invalid json")})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse raw event")
	})
}

func TestHazardEvent_Validate(t *testing.T) {
	ok := HazardEvent{ID: "h-1", Location: GeoPoint{Lat: 25.033, Lng: 121.5654}, RadiusKm: 50}
	require.NoError(t, ok.Validate())

	zeroRadius := ok
	zeroRadius.RadiusKm = 0
	var vErr *ValidationError
	require.ErrorAs(t, zeroRadius.Validate(), &vErr)
	assert.Equal(t, "radius_km", vErr.Field)

	badLoc := ok
	badLoc.Location = GeoPoint{Lat: 95}
	var coordErr *CoordinateError
	require.ErrorAs(t, badLoc.Validate(), &coordErr)
}

func TestScenarioProfile_CloneIsDeep(t *testing.T) {
	p := ScenarioProfile{
		Key:           "fire",
		DispatchTasks: []DispatchTask{{ID: "f1", Role: RoleRescuer}},
	}
	c := p.Clone()
	c.DispatchTasks[0].Role = RoleMedic

	assert.Equal(t, RoleRescuer, p.DispatchTasks[0].Role)
}
