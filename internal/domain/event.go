package domain

import (
	"context"
	"time"
)

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// EnvelopeKind distinguishes the operator events carried on the source topic.
type EnvelopeKind string

const (
	KindScene        EnvelopeKind = "scene"
	KindLocation     EnvelopeKind = "location"
	KindLocationLost EnvelopeKind = "location_lost"
	KindAlertAck     EnvelopeKind = "alert_ack"
)

// Envelope is a decoded operator event.
type Envelope struct {
	Kind       EnvelopeKind `json:"kind"`
	Signal     string       `json:"signal,omitempty"`
	Location   *GeoPoint    `json:"location,omitempty"`
	Factors    *RiskFactors `json:"risk_factors,omitempty"`
	ReportedAt time.Time    `json:"reported_at,omitempty"`
}

// AssessmentStatus says whether a scene matched a hazard profile.
type AssessmentStatus string

const (
	StatusAssessed AssessmentStatus = "assessed"
	// StatusStandby is the neutral outcome for a scene with no recognizable
	// hazard pattern. It is not an error.
	StatusStandby AssessmentStatus = "standby"
)

// Assessment is the engine output for one scene.
type Assessment struct {
	ID            string             `json:"id"`
	Signal        string             `json:"signal"`
	Status        AssessmentStatus   `json:"status"`
	ProfileKey    string             `json:"profile_key,omitempty"`
	Summary       string             `json:"summary,omitempty"`
	RiskFactors   RiskFactors        `json:"risk_factors"`
	RiskScore     RiskScore          `json:"risk_score"`
	RiskLevel     RiskLevel          `json:"risk_level,omitempty"`
	AuthoredLevel RiskLevel          `json:"authored_level,omitempty"`
	Confidence    float64            `json:"confidence"`
	Location      *GeoPoint          `json:"location,omitempty"`
	DispatchTasks []DispatchTask     `json:"dispatch_tasks"`
	History       []RiskHistoryPoint `json:"history"`
	ReportedAt    time.Time          `json:"reported_at,omitempty"`
	AssessedAt    time.Time          `json:"assessed_at"`
}
