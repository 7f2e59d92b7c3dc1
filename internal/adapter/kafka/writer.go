package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/hazard-risk-engine/internal/config"
	"github.com/couchcryptid/hazard-risk-engine/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

const (
	eventTypeAssessment = "risk_assessment"
	eventTypeAlert      = "hazard_alert"
)

// Writer produces assessments to the sink topic and hazard alerts to the
// alert topic. It implements pipeline.BatchLoader.
type Writer struct {
	writer     *kafkago.Writer
	sinkTopic  string
	alertTopic string
	logger     *slog.Logger
}

// NewWriter creates a Kafka producer. The topic is set per message.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{
		writer:     w,
		sinkTopic:  cfg.KafkaSinkTopic,
		alertTopic: cfg.KafkaAlertTopic,
		logger:     logger,
	}
}

// LoadBatch serializes and publishes assessments to the sink topic in a
// single WriteMessages call.
func (w *Writer) LoadBatch(ctx context.Context, assessments []domain.Assessment) error {
	if len(assessments) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(assessments))
	for i := range assessments {
		msg, err := serializeAssessment(w.sinkTopic, assessments[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	return w.writer.WriteMessages(ctx, msgs...)
}

// PublishAlert writes a correlated hazard to the alert topic.
func (w *Writer) PublishAlert(ctx context.Context, ev domain.HazardEvent) error {
	msg, err := serializeAlert(w.alertTopic, ev, domain.Now())
	if err != nil {
		return err
	}
	if err := w.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish alert %s: %w", ev.ID, err)
	}
	w.logger.Info("hazard alert published", "hazard_id", ev.ID, "topic", w.alertTopic)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeAssessment marshals an Assessment into a Kafka message.
func serializeAssessment(topic string, a domain.Assessment) (kafkago.Message, error) {
	data, err := json.Marshal(a)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize assessment: %w", err)
	}
	level := string(a.RiskLevel)
	if a.Status == domain.StatusStandby {
		level = string(domain.StatusStandby)
	}
	return kafkago.Message{
		Topic: topic,
		Key:   []byte(a.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(eventTypeAssessment)},
			{Key: "risk_level", Value: []byte(level)},
			{Key: "processed_at", Value: []byte(a.AssessedAt.Format(time.RFC3339))},
		},
	}, nil
}

// serializeAlert marshals a HazardEvent into a Kafka message.
func serializeAlert(topic string, ev domain.HazardEvent, processedAt time.Time) (kafkago.Message, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize hazard alert: %w", err)
	}
	return kafkago.Message{
		Topic: topic,
		Key:   []byte(ev.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(eventTypeAlert)},
			{Key: "severity", Value: []byte(ev.Severity)},
			{Key: "processed_at", Value: []byte(processedAt.Format(time.RFC3339))},
		},
	}, nil
}
