// Package domain models disaster risk assessment and hazard correlation.
//
// # Risk Scoring
//
// A scene is described by three independent damage-axis readings, each in
// [0,100]: structural damage, fire hazard and human danger. They combine into
// a single score with fixed weights, human danger counting most:
//
//	score = round(0.3*structural + 0.2*fire + 0.5*human)
//
// The score maps to a level through one threshold table. Each band excludes
// its lower bound:
//
//	> 80 CRITICAL | > 50 HIGH | > 20 MEDIUM | otherwise LOW
//
// Readings outside [0,100] are rejected with a [ValidationError], never
// clamped. Scenario catalogs may author the MEDIUM band as "MODERATE"; see
// [ParseRiskLevel].
//
// # Risk History
//
// [RiskHistory] keeps the last ten observations, oldest first. It can be
// seeded with a quiet [BaselineTrace] so a fresh session renders a trend.
// Each point carries a [ReasonCode] whose label is resolved by an exhaustive
// switch.
//
// # Geography
//
// Coordinates are WGS-84 decimal degrees with latitude first. Upstream
// GeoJSON feeds use [longitude, latitude] order; adapters convert before
// building a [GeoPoint]. [Distance] is the haversine great-circle distance
// with a 6371 km Earth radius.
//
// # Source Events
//
// Operator clients publish JSON envelopes on the source topic:
//
//	{"kind":"scene","signal":"IMG_flood_0931.png"}
//	{"kind":"location","location":{"lat":25.033,"lng":121.5654}}
//	{"kind":"location_lost"}
//	{"kind":"alert_ack"}
//
// A scene may also carry operator-measured risk_factors, which then take
// precedence over the matched profile's authored factors.
package domain
