package scenario

import (
	"errors"
	"fmt"

	"github.com/couchcryptid/hazard-risk-engine/internal/domain"
)

// Profile keys in the built-in registry.
const (
	KeyFire       = "fire"
	KeyEarthquake = "earthquake"
	KeyCrack      = "crack"
	KeyFlood      = "flood"
	KeyRescue     = "rescue"
)

// ErrDuplicateKey is returned when two profiles share a key.
var ErrDuplicateKey = errors.New("duplicate scenario key")

// Registry is a read-only catalog of scenario profiles. It is built once at
// start-up and safe for concurrent reads.
type Registry struct {
	keys     []string
	profiles map[string]domain.ScenarioProfile
}

// NewRegistry validates profiles and stores copies of them in order.
func NewRegistry(profiles ...domain.ScenarioProfile) (*Registry, error) {
	r := &Registry{
		keys:     make([]string, 0, len(profiles)),
		profiles: make(map[string]domain.ScenarioProfile, len(profiles)),
	}
	for _, p := range profiles {
		if p.Key == "" {
			return nil, errors.New("scenario profile has empty key")
		}
		if _, ok := r.profiles[p.Key]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateKey, p.Key)
		}
		if err := p.RiskFactors.Validate(); err != nil {
			return nil, fmt.Errorf("scenario %s: %w", p.Key, err)
		}
		if err := p.Location.Validate(); err != nil {
			return nil, fmt.Errorf("scenario %s: %w", p.Key, err)
		}
		if p.Confidence < 0 || p.Confidence > 1 {
			return nil, fmt.Errorf("scenario %s: %w", p.Key,
				&domain.ValidationError{Field: "confidence", Value: p.Confidence, Reason: "must be in [0,1]"})
		}
		r.keys = append(r.keys, p.Key)
		r.profiles[p.Key] = p.Clone()
	}
	return r, nil
}

// DefaultRegistry returns the built-in catalog of five field scenarios.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(builtinProfiles()...)
	if err != nil {
		panic(fmt.Sprintf("scenario: built-in registry is invalid: %v", err))
	}
	return r
}

// Lookup returns a deep copy of the profile stored under key.
func (r *Registry) Lookup(key string) (domain.ScenarioProfile, bool) {
	p, ok := r.profiles[key]
	if !ok {
		return domain.ScenarioProfile{}, false
	}
	return p.Clone(), true
}

// Keys returns the profile keys in registration order.
func (r *Registry) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

func (r *Registry) Len() int { return len(r.keys) }

func builtinProfiles() []domain.ScenarioProfile {
	return []domain.ScenarioProfile{
		{
			Key:         KeyFire,
			RiskLevel:   domain.RiskCritical,
			Confidence:  0.98,
			RiskFactors: domain.RiskFactors{StructuralDamage: 65, FireHazard: 98, HumanDanger: 90},
			Location:    domain.GeoPoint{Lat: 25.04, Lng: 121.50},
			Summary: "**FIRE HAZARD DETECTED**\n\nLarge-scale industrial or residential fire. Thermal signatures exceed 800°C.\n\n" +
				"**Hazards:**\n- Toxic smoke dispersion. Check wind direction.\n- Structural weakening due to heat.\n- Explosion risk if chemicals are stored on site.",
			DispatchTasks: []domain.DispatchTask{
				{ID: "f1", Role: domain.RoleRescuer, Description: "Establish 500m exclusion zone immediately.", Priority: domain.PriorityHigh, Coordinates: domain.GeoPoint{Lat: 25.041, Lng: 121.501}},
				{ID: "f2", Role: domain.RoleMedic, Description: "Prepare burn unit & O2 therapy for smoke inhalation.", Priority: domain.PriorityHigh, Coordinates: domain.GeoPoint{Lat: 25.039, Lng: 121.499}},
				{ID: "f3", Role: domain.RoleSupply, Description: "Deploy water tankers and foam concentrate.", Priority: domain.PriorityMedium, Coordinates: domain.GeoPoint{Lat: 25.042, Lng: 121.502}},
			},
		},
		{
			Key:         KeyEarthquake,
			RiskLevel:   domain.RiskCritical,
			Confidence:  0.95,
			RiskFactors: domain.RiskFactors{StructuralDamage: 99, FireHazard: 30, HumanDanger: 95},
			Location:    domain.GeoPoint{Lat: 23.97, Lng: 121.60},
			Summary: "**STRUCTURAL COLLAPSE DETECTED**\n\nMajor structural failure with multiple floors compressed. Civilians are likely trapped in voids.\n\n" +
				"**Critical Analysis:**\n- Unstable debris pile.\n- Secondary collapse risk from aftershocks.\n- Heavy machinery required for lifting.",
			DispatchTasks: []domain.DispatchTask{
				{ID: "e1", Role: domain.RoleRescuer, Description: "Deploy K-9 Search Unit & Life Detectors.", Priority: domain.PriorityHigh, Coordinates: domain.GeoPoint{Lat: 23.971, Lng: 121.601}},
				{ID: "e2", Role: domain.RoleHeavy, Description: "Mobilize cranes/excavators for debris removal.", Priority: domain.PriorityHigh, Coordinates: domain.GeoPoint{Lat: 23.969, Lng: 121.599}},
				{ID: "e3", Role: domain.RoleMedic, Description: "Set up Triage Area (Green/Yellow/Red zones).", Priority: domain.PriorityHigh, Coordinates: domain.GeoPoint{Lat: 23.972, Lng: 121.602}},
			},
		},
		{
			Key:         KeyCrack,
			RiskLevel:   domain.RiskHigh,
			Confidence:  0.92,
			RiskFactors: domain.RiskFactors{StructuralDamage: 80, FireHazard: 0, HumanDanger: 40},
			Location:    domain.GeoPoint{Lat: 23.97, Lng: 121.60},
			Summary: "**INFRASTRUCTURE DAMAGE**\n\nSevere road buckling and liquefaction. The main arterial route is impassable.\n\n" +
				"**Impact:**\n- Logistics supply chain cut off.\n- Ambulance route obstructed.\n- Potential sinkhole formation.",
			DispatchTasks: []domain.DispatchTask{
				{ID: "c1", Role: domain.RoleSupply, Description: "Reroute all incoming relief traffic to Alt Route B.", Priority: domain.PriorityHigh, Coordinates: domain.GeoPoint{Lat: 23.975, Lng: 121.605}},
				{ID: "c2", Role: domain.RoleHeavy, Description: "Deploy temporary bridge layer (AVLB).", Priority: domain.PriorityMedium, Coordinates: domain.GeoPoint{Lat: 23.965, Lng: 121.595}},
				{ID: "c3", Role: domain.RoleRescuer, Description: "Cordon off 100m radius around fissures.", Priority: domain.PriorityMedium, Coordinates: domain.GeoPoint{Lat: 23.970, Lng: 121.600}},
			},
		},
		{
			Key:         KeyFlood,
			RiskLevel:   domain.RiskHigh,
			Confidence:  0.96,
			RiskFactors: domain.RiskFactors{StructuralDamage: 40, FireHazard: 10, HumanDanger: 88},
			Location:    domain.GeoPoint{Lat: 22.62, Lng: 120.30},
			Summary: "**SEVERE FLOODING**\n\nWater level estimated at 80-120cm. Vehicles submerged and residents trapped in low-lying areas.\n\n" +
				"**Hazards:**\n- Drowning.\n- Electrical shock from submerged infrastructure.\n- Hypothermia.",
			DispatchTasks: []domain.DispatchTask{
				{ID: "w1", Role: domain.RoleRescuer, Description: "Deploy Zodiac boats for extraction.", Priority: domain.PriorityHigh, Coordinates: domain.GeoPoint{Lat: 22.622, Lng: 120.302}},
				{ID: "w2", Role: domain.RoleSupply, Description: "Airdrop food/water to isolated rooftops.", Priority: domain.PriorityMedium, Coordinates: domain.GeoPoint{Lat: 22.618, Lng: 120.298}},
				{ID: "w3", Role: domain.RoleRescuer, Description: "Cut power grid in Sector 4 to prevent electrocution.", Priority: domain.PriorityHigh, Coordinates: domain.GeoPoint{Lat: 22.625, Lng: 120.305}},
			},
		},
		{
			Key:         KeyRescue,
			RiskLevel:   domain.RiskMedium,
			Confidence:  0.90,
			RiskFactors: domain.RiskFactors{StructuralDamage: 20, FireHazard: 0, HumanDanger: 30},
			Location:    domain.GeoPoint{Lat: 24.14, Lng: 120.68},
			Summary: "**RELIEF OPERATIONS ACTIVE**\n\nCivilian volunteers and rescue teams on site. Evacuation and supply distribution in progress.\n\n" +
				"**Status:**\n- Manpower sufficient.\n- Coordination required to prevent bottlenecks.",
			DispatchTasks: []domain.DispatchTask{
				{ID: "r1", Role: domain.RoleSupply, Description: "Coordinate civilian supply drop-off points.", Priority: domain.PriorityMedium, Coordinates: domain.GeoPoint{Lat: 24.142, Lng: 120.682}},
				{ID: "r2", Role: domain.RoleMedic, Description: "Monitor fatigue levels of rescue personnel.", Priority: domain.PriorityLow, Coordinates: domain.GeoPoint{Lat: 24.138, Lng: 120.678}},
			},
		},
	}
}
