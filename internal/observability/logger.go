package observability

import (
	"log/slog"

	"github.com/couchcryptid/hazard-risk-engine/internal/config"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
)

// NewLogger builds the service logger from LOG_LEVEL and LOG_FORMAT, tags it
// with the service name and installs it as the slog default.
func NewLogger(cfg *config.Config) *slog.Logger {
	logger := sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat).With("service", "hazard-risk-engine")
	slog.SetDefault(logger)
	return logger
}
