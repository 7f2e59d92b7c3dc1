package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/hazard-risk-engine/internal/domain"
	"github.com/couchcryptid/hazard-risk-engine/internal/observability"
	"github.com/couchcryptid/hazard-risk-engine/internal/scenario"
	"github.com/google/uuid"
)

// LocationTracker receives operator location and alert acknowledgement
// events. alert.Monitor implements it.
type LocationTracker interface {
	LocationAvailable(loc domain.GeoPoint)
	LocationLost()
	Dismiss()
}

// RiskAssessor implements Assessor. It owns the session RiskHistory, so it
// must only be driven by the single pipeline goroutine.
type RiskAssessor struct {
	classifier scenario.Classifier
	tracker    LocationTracker
	history    *domain.RiskHistory
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewAssessor creates a RiskAssessor. Pass a nil tracker to ignore location
// events.
func NewAssessor(classifier scenario.Classifier, tracker LocationTracker, history *domain.RiskHistory, logger *slog.Logger, metrics *observability.Metrics) *RiskAssessor {
	if history == nil {
		history = domain.NewRiskHistory()
	}
	return &RiskAssessor{
		classifier: classifier,
		tracker:    tracker,
		history:    history,
		logger:     logger,
		metrics:    metrics,
	}
}

func (a *RiskAssessor) Assess(ctx context.Context, raw domain.RawEvent) (*domain.Assessment, error) {
	env, err := domain.ParseRawEvent(raw)
	if err != nil {
		return nil, err
	}

	switch env.Kind {
	case domain.KindScene:
		return a.assessScene(ctx, env)
	case domain.KindLocation:
		if a.tracker != nil {
			a.tracker.LocationAvailable(*env.Location)
		}
	case domain.KindLocationLost:
		if a.tracker != nil {
			a.tracker.LocationLost()
		}
	case domain.KindAlertAck:
		if a.tracker != nil {
			a.tracker.Dismiss()
		}
	}
	return nil, nil
}

func (a *RiskAssessor) assessScene(ctx context.Context, env domain.Envelope) (*domain.Assessment, error) {
	profile, err := a.classifier.Classify(ctx, domain.Signal{Label: env.Signal})
	if err != nil {
		return nil, fmt.Errorf("classify scene %q: %w", env.Signal, err)
	}

	now := domain.Now()
	out := &domain.Assessment{
		ID:            uuid.NewString(),
		Signal:        env.Signal,
		Location:      env.Location,
		DispatchTasks: []domain.DispatchTask{},
		ReportedAt:    env.ReportedAt,
		AssessedAt:    now,
	}

	if profile == nil {
		out.Status = domain.StatusStandby
		out.History = a.history.Points()
		a.metrics.Assessments.WithLabelValues("none", string(domain.StatusStandby)).Inc()
		a.logger.Info("no recognizable hazard pattern", "signal", env.Signal)
		return out, nil
	}

	factors := profile.RiskFactors
	var reason domain.ReasonCode
	if env.Factors != nil {
		factors = *env.Factors
		reason = domain.ReasonOperatorFactors
	}

	score, err := domain.Score(factors)
	if err != nil {
		if !errors.Is(err, domain.ErrScoreClamped) {
			return nil, fmt.Errorf("score scene %q: %w", env.Signal, err)
		}
		a.logger.Warn("risk score clamped", "signal", env.Signal, "error", err)
	}
	level := domain.Classify(score)
	if reason == "" {
		reason = domain.ReasonForLevel(level)
	}

	a.history.Append(domain.RiskHistoryPoint{Score: score, ObservedAt: now, ReasonCode: reason})
	a.metrics.HistoryLength.Set(float64(a.history.Len()))

	out.Status = domain.StatusAssessed
	out.ProfileKey = profile.Key
	out.Summary = profile.Summary
	out.RiskFactors = factors
	out.RiskScore = score
	out.RiskLevel = level
	out.AuthoredLevel = profile.RiskLevel
	out.Confidence = profile.Confidence
	out.DispatchTasks = profile.DispatchTasks
	out.History = a.history.Points()
	if out.Location == nil {
		loc := profile.Location
		out.Location = &loc
	}

	a.metrics.Assessments.WithLabelValues(string(level), string(domain.StatusAssessed)).Inc()
	a.logger.Info("scene assessed",
		"assessment_id", out.ID,
		"signal", env.Signal,
		"profile", profile.Key,
		"risk_score", int(score),
		"risk_level", level,
	)
	return out, nil
}

// History returns a copy of the recorded observations, oldest first.
func (a *RiskAssessor) History() []domain.RiskHistoryPoint {
	return a.history.Points()
}
