package domain

import (
	"encoding/json"
	"time"
)

// HistoryCapacity is the fixed number of observations a RiskHistory retains.
const HistoryCapacity = 10

// ReasonCode explains why a history point was recorded.
type ReasonCode string

const (
	ReasonBaseline        ReasonCode = "baseline"
	ReasonLowRisk         ReasonCode = "low_risk_observed"
	ReasonModerateRisk    ReasonCode = "moderate_risk_detected"
	ReasonHighRisk        ReasonCode = "high_risk_detected"
	ReasonCriticalHazard  ReasonCode = "critical_hazard_detected"
	ReasonOperatorFactors ReasonCode = "operator_reported_factors"
)

// ReasonForLevel returns the reason code recorded for an observation at level.
func ReasonForLevel(level RiskLevel) ReasonCode {
	switch level {
	case RiskCritical:
		return ReasonCriticalHazard
	case RiskHigh:
		return ReasonHighRisk
	case RiskMedium:
		return ReasonModerateRisk
	case RiskLow:
		return ReasonLowRisk
	default:
		return ReasonBaseline
	}
}

// Label is the human-readable text for the reason code.
func (r ReasonCode) Label() string {
	switch r {
	case ReasonBaseline:
		return "Baseline monitoring"
	case ReasonLowRisk:
		return "Low risk observed"
	case ReasonModerateRisk:
		return "Moderate risk detected"
	case ReasonHighRisk:
		return "High risk detected"
	case ReasonCriticalHazard:
		return "Critical hazard detected"
	case ReasonOperatorFactors:
		return "Operator-reported damage factors"
	default:
		return "Unclassified observation (" + string(r) + ")"
	}
}

// RiskHistoryPoint is one recorded observation. Treat it as immutable.
type RiskHistoryPoint struct {
	Score      RiskScore  `json:"score"`
	ObservedAt time.Time  `json:"observed_at"`
	ReasonCode ReasonCode `json:"reason_code"`
}

// MarshalJSON adds the reason label so renderers never map codes themselves.
func (p RiskHistoryPoint) MarshalJSON() ([]byte, error) {
	type plain RiskHistoryPoint
	return json.Marshal(struct {
		plain
		ReasonLabel string `json:"reason_label"`
	}{plain: plain(p), ReasonLabel: p.ReasonCode.Label()})
}

// RiskHistory is a fixed-capacity FIFO of observations, oldest first.
//
// It performs no locking: a single goroutine must own it, or callers must
// serialize Append/Reset themselves.
type RiskHistory struct {
	points []RiskHistoryPoint
}

// NewRiskHistory returns a history pre-seeded with seed. When seed exceeds
// HistoryCapacity only the newest points are kept.
func NewRiskHistory(seed ...RiskHistoryPoint) *RiskHistory {
	h := &RiskHistory{points: make([]RiskHistoryPoint, 0, HistoryCapacity)}
	for _, p := range seed {
		h.Append(p)
	}
	return h
}

// BaselineTrace returns five quiet observations spaced an hour apart, the
// newest one hour before now.
func BaselineTrace(now time.Time) []RiskHistoryPoint {
	scores := []RiskScore{12, 15, 10, 18, 14}
	trace := make([]RiskHistoryPoint, len(scores))
	for i, s := range scores {
		trace[i] = RiskHistoryPoint{
			Score:      s,
			ObservedAt: now.Add(-time.Duration(len(scores)-i) * time.Hour),
			ReasonCode: ReasonBaseline,
		}
	}
	return trace
}

// Append records p, evicting the oldest point first when the history is full.
func (h *RiskHistory) Append(p RiskHistoryPoint) {
	if len(h.points) == HistoryCapacity {
		copy(h.points, h.points[1:])
		h.points = h.points[:HistoryCapacity-1]
	}
	h.points = append(h.points, p)
}

// Latest returns the newest point, or false when the history is empty.
func (h *RiskHistory) Latest() (RiskHistoryPoint, bool) {
	if len(h.points) == 0 {
		return RiskHistoryPoint{}, false
	}
	return h.points[len(h.points)-1], true
}

// Points returns a copy of the recorded points, oldest first.
func (h *RiskHistory) Points() []RiskHistoryPoint {
	out := make([]RiskHistoryPoint, len(h.points))
	copy(out, h.points)
	return out
}

func (h *RiskHistory) Len() int { return len(h.points) }

// Reset drops every point.
func (h *RiskHistory) Reset() {
	h.points = h.points[:0]
}
