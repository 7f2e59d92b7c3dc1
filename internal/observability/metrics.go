package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "hazard_engine"

// Metrics holds the Prometheus counters, histograms, and gauges for the risk engine.
type Metrics struct {
	MessagesConsumed prometheus.Counter
	MessagesProduced prometheus.Counter
	TransformErrors  prometheus.Counter
	PipelineRunning  prometheus.Gauge

	// Batch processing metrics.
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram

	// Assessment metrics.
	Assessments   *prometheus.CounterVec // labels: level={LOW,MEDIUM,HIGH,CRITICAL,none}, status={assessed,standby}
	HistoryLength prometheus.Gauge

	// Correlation metrics.
	Correlations    *prometheus.CounterVec // labels: outcome={feed,registry,none,invalid,cancelled}
	ActiveAlert     prometheus.Gauge
	AlertsPublished prometheus.Counter

	// Live feed metrics.
	FeedRequests    *prometheus.CounterVec // labels: outcome={success,error,empty}
	FeedCache       *prometheus.CounterVec // labels: result={hit,miss}
	FeedAPIDuration prometheus.Histogram
	FeedEnabled     prometheus.Gauge
}

// NewMetrics creates and registers all engine metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		MessagesConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_consumed_total",
			Help:      "Total messages read from the source topic.",
		}),
		MessagesProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_produced_total",
			Help:      "Total assessments written to the sink topic.",
		}),
		TransformErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transform_errors_total",
			Help:      "Total source events rejected during assessment.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_size",
			Help:      "Number of messages per batch extracted from Kafka.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete extract-assess-load cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		Assessments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assessments_total",
			Help:      "Scene assessments by risk level and status.",
		}, []string{"level", "status"}),
		HistoryLength: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "risk_history_length",
			Help:      "Number of points currently held in the risk history.",
		}),
		Correlations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "correlations_total",
			Help:      "Alert correlation attempts by outcome.",
		}, []string{"outcome"}),
		ActiveAlert: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "alert_active",
			Help:      "1 while an unacknowledged hazard alert is active.",
		}),
		AlertsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_published_total",
			Help:      "Total hazard alerts written to the alert topic.",
		}),
		FeedRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feed_requests_total",
			Help:      "Live hazard feed requests by outcome.",
		}, []string{"outcome"}),
		FeedCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feed_cache_total",
			Help:      "Live hazard feed cache lookups by result.",
		}, []string{"result"}),
		FeedAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "feed_api_duration_seconds",
			Help:      "Live hazard feed request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		FeedEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "feed_enabled",
			Help:      "1 when the live hazard feed is enabled, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.MessagesConsumed,
		m.MessagesProduced,
		m.TransformErrors,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
		m.Assessments,
		m.HistoryLength,
		m.Correlations,
		m.ActiveAlert,
		m.AlertsPublished,
		m.FeedRequests,
		m.FeedCache,
		m.FeedAPIDuration,
		m.FeedEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		MessagesConsumed:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: "messages_consumed_total"}),
		MessagesProduced:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: "messages_produced_total"}),
		TransformErrors:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: "transform_errors_total"}),
		PipelineRunning:         prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: "pipeline_running"}),
		BatchSize:               prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: namespace, Name: "batch_size"}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: namespace, Name: "batch_processing_duration_seconds"}),
		Assessments:             prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "assessments_total"}, []string{"level", "status"}),
		HistoryLength:           prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: "risk_history_length"}),
		Correlations:            prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "correlations_total"}, []string{"outcome"}),
		ActiveAlert:             prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: "alert_active"}),
		AlertsPublished:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: "alerts_published_total"}),
		FeedRequests:            prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "feed_requests_total"}, []string{"outcome"}),
		FeedCache:               prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: "feed_cache_total"}, []string{"result"}),
		FeedAPIDuration:         prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: namespace, Name: "feed_api_duration_seconds"}),
		FeedEnabled:             prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: "feed_enabled"}),
	}
}
