package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownKind is returned for envelopes whose kind is not recognized.
	ErrUnknownKind = errors.New("unknown envelope kind")
	// ErrMissingField is returned when a kind-specific field is absent.
	ErrMissingField = errors.New("missing required field")
)

// ParseRawEvent decodes a source-topic message into an Envelope and checks
// the fields its kind requires. Coordinates and factors are range-checked
// here so malformed input is rejected before it reaches the engine.
func ParseRawEvent(raw RawEvent) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(raw.Value, &env); err != nil {
		return Envelope{}, fmt.Errorf("parse raw event: %w", err)
	}

	env.Kind = EnvelopeKind(strings.ToLower(strings.TrimSpace(string(env.Kind))))
	if env.ReportedAt.IsZero() {
		env.ReportedAt = raw.Timestamp
	}

	switch env.Kind {
	case KindScene:
		if strings.TrimSpace(env.Signal) == "" {
			return Envelope{}, fmt.Errorf("parse raw event: %w: signal", ErrMissingField)
		}
		if env.Factors != nil {
			if err := env.Factors.Validate(); err != nil {
				return Envelope{}, fmt.Errorf("parse raw event: %w", err)
			}
		}
		if env.Location != nil {
			if err := env.Location.Validate(); err != nil {
				return Envelope{}, fmt.Errorf("parse raw event: %w", err)
			}
		}
	case KindLocation:
		if env.Location == nil {
			return Envelope{}, fmt.Errorf("parse raw event: %w: location", ErrMissingField)
		}
		if err := env.Location.Validate(); err != nil {
			return Envelope{}, fmt.Errorf("parse raw event: %w", err)
		}
	case KindLocationLost, KindAlertAck:
	default:
		return Envelope{}, fmt.Errorf("parse raw event: %w: %q", ErrUnknownKind, env.Kind)
	}

	return env, nil
}
