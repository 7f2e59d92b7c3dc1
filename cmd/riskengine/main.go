package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	httpadapter "github.com/couchcryptid/hazard-risk-engine/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/hazard-risk-engine/internal/adapter/kafka"
	"github.com/couchcryptid/hazard-risk-engine/internal/adapter/usgs"
	"github.com/couchcryptid/hazard-risk-engine/internal/alert"
	"github.com/couchcryptid/hazard-risk-engine/internal/config"
	"github.com/couchcryptid/hazard-risk-engine/internal/domain"
	"github.com/couchcryptid/hazard-risk-engine/internal/observability"
	"github.com/couchcryptid/hazard-risk-engine/internal/pipeline"
	"github.com/couchcryptid/hazard-risk-engine/internal/scenario"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	if err := run(cfg, logger, metrics); err != nil {
		logger.Error("service error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) error {
	catalog := alert.DefaultCatalog()
	if cfg.HazardCatalogPath != "" {
		loaded, err := alert.LoadCatalog(cfg.HazardCatalogPath)
		if err != nil {
			return err
		}
		catalog = loaded
		logger.Info("hazard catalog loaded", "path", cfg.HazardCatalogPath, "hazards", len(catalog))
	}

	// Live feed is feature-flagged via FEED_ENABLED.
	var feed alert.FeedClient
	if cfg.FeedEnabled {
		client := usgs.NewClient(cfg.FeedURL, logger, metrics)
		feed = client
		if cfg.FeedCacheTTL > 0 {
			feed = usgs.NewCachedFeed(client, cfg.FeedCacheTTL, clockwork.NewRealClock(), metrics)
		}
		metrics.FeedEnabled.Set(1)
		logger.Info("live hazard feed enabled", "url", cfg.FeedURL, "timeout", cfg.FeedTimeout, "cache_ttl", cfg.FeedCacheTTL)
	} else {
		logger.Info("live hazard feed disabled")
	}

	correlator := alert.NewCorrelator(feed, catalog, cfg.FeedTimeout, logger, metrics)

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)

	monitor := alert.NewMonitor(correlator, func(ctx context.Context, ev domain.HazardEvent) {
		if err := writer.PublishAlert(ctx, ev); err != nil {
			logger.Error("publish hazard alert", "hazard_id", ev.ID, "error", err)
			return
		}
		metrics.AlertsPublished.Inc()
	}, alert.MonitorConfig{
		Settle:  cfg.CorrelationSettle,
		Timeout: cfg.CorrelationTimeout,
	}, logger, metrics)

	var seed []domain.RiskHistoryPoint
	if cfg.HistoryBaseline {
		seed = domain.BaselineTrace(domain.Now())
	}
	history := domain.NewRiskHistory(seed...)
	metrics.HistoryLength.Set(float64(history.Len()))

	classifier := scenario.NewKeywordClassifier(scenario.DefaultRegistry())
	assessor := pipeline.NewAssessor(classifier, monitor, history, logger, metrics)

	p := pipeline.New(reader, assessor, writer, logger, metrics, cfg.BatchSize)
	srv := httpadapter.NewServer(cfg.HTTPAddr, p, monitor, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return p.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("http server shutdown error", "error", err)
		}
		return nil
	})

	err := g.Wait()

	monitor.Close()
	if cerr := reader.Close(); cerr != nil {
		logger.Error("kafka reader close error", "error", cerr)
	}
	if cerr := writer.Close(); cerr != nil {
		logger.Error("kafka writer close error", "error", cerr)
	}

	logger.Info("shutdown complete")
	return err
}
