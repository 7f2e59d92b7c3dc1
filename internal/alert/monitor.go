package alert

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/couchcryptid/hazard-risk-engine/internal/domain"
	"github.com/couchcryptid/hazard-risk-engine/internal/observability"
	"github.com/jonboulle/clockwork"
)

// Default scheduling intervals for Monitor.
const (
	DefaultSettle  = 3 * time.Second
	DefaultTimeout = 10 * time.Second
)

// LocationCorrelator is the correlation step a Monitor schedules.
type LocationCorrelator interface {
	Correlate(ctx context.Context, loc domain.GeoPoint) (*domain.HazardEvent, error)
}

// AlertHandler receives each hazard the monitor raises.
type AlertHandler func(ctx context.Context, ev domain.HazardEvent)

// MonitorConfig tunes the Monitor schedule. Zero values take the defaults.
type MonitorConfig struct {
	Settle  time.Duration
	Timeout time.Duration
	Clock   clockwork.Clock
}

// Monitor decides when an operator location is correlated.
//
// Correlation runs once the settle interval has elapsed since a location
// first became available, using the latest fix received by then. Fixes that
// arrive while a correlation is pending or running only refresh the stored
// location; a fix that arrived during a run that raised nothing schedules the
// next one. Losing the location or closing the monitor drops pending and
// running work. While a raised alert is unacknowledged, new locations are
// ignored until Dismiss re-arms the monitor.
type Monitor struct {
	correlator LocationCorrelator
	onAlert    AlertHandler
	clock      clockwork.Clock
	settle     time.Duration
	timeout    time.Duration
	logger     *slog.Logger
	metrics    *observability.Metrics

	root       context.Context
	rootCancel context.CancelFunc
	wg         sync.WaitGroup

	mu     sync.Mutex
	gen    uint64
	loc    domain.GeoPoint
	moved  bool
	timer  clockwork.Timer
	cancel context.CancelFunc
	active *domain.HazardEvent
	closed bool
}

// NewMonitor creates a Monitor. onAlert may be nil.
func NewMonitor(correlator LocationCorrelator, onAlert AlertHandler, cfg MonitorConfig, logger *slog.Logger, metrics *observability.Metrics) *Monitor {
	if cfg.Settle <= 0 {
		cfg.Settle = DefaultSettle
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	root, cancel := context.WithCancel(context.Background())
	return &Monitor{
		correlator: correlator,
		onAlert:    onAlert,
		clock:      cfg.Clock,
		settle:     cfg.Settle,
		timeout:    cfg.Timeout,
		logger:     logger,
		metrics:    metrics,
		root:       root,
		rootCancel: cancel,
	}
}

// LocationAvailable records loc as the operator's latest fix. The first fix
// starts the settle interval; later fixes do not restart it.
func (m *Monitor) LocationAvailable(loc domain.GeoPoint) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}
	if m.active != nil {
		m.logger.Debug("correlation suppressed, alert still active", "hazard_id", m.active.ID)
		return
	}

	m.loc = loc
	switch {
	case m.timer != nil:
		return
	case m.cancel != nil:
		m.moved = true
		return
	}
	m.scheduleLocked()
}

// LocationLost drops any pending or running correlation.
func (m *Monitor) LocationLost() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return
	}
	m.cancelLocked()
	m.gen++
	m.moved = false
}

// Dismiss acknowledges the active alert so the next location is correlated.
func (m *Monitor) Dismiss() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active != nil {
		m.logger.Info("alert dismissed", "hazard_id", m.active.ID)
	}
	m.active = nil
	m.metrics.ActiveAlert.Set(0)
}

// Active returns the unacknowledged alert, if any.
func (m *Monitor) Active() (domain.HazardEvent, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active == nil {
		return domain.HazardEvent{}, false
	}
	return *m.active, true
}

// Close cancels pending work and waits for a running correlation to return.
// Calls after the first do nothing.
func (m *Monitor) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	m.cancelLocked()
	m.gen++
	m.rootCancel()
	m.mu.Unlock()

	m.wg.Wait()
}

func (m *Monitor) scheduleLocked() {
	m.gen++
	gen := m.gen
	m.timer = m.clock.AfterFunc(m.settle, func() { m.fire(gen) })
	m.logger.Debug("correlation scheduled", "lat", m.loc.Lat, "lng", m.loc.Lng, "settle", m.settle)
}

// cancelLocked stops the settle timer and cancels a running correlation.
func (m *Monitor) cancelLocked() {
	pending := false
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
		pending = true
	}
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
		pending = true
	}
	if pending {
		m.metrics.Correlations.WithLabelValues(outcomeCancelled).Inc()
	}
}

func (m *Monitor) fire(gen uint64) {
	m.mu.Lock()
	if m.closed || gen != m.gen || m.active != nil {
		m.mu.Unlock()
		return
	}
	m.timer = nil
	m.moved = false
	loc := m.loc
	ctx, cancel := context.WithTimeout(m.root, m.timeout)
	m.cancel = cancel
	m.wg.Add(1)
	m.mu.Unlock()

	go m.run(ctx, cancel, gen, loc)
}

func (m *Monitor) run(ctx context.Context, cancel context.CancelFunc, gen uint64, loc domain.GeoPoint) {
	defer m.wg.Done()
	defer cancel()

	hazard, err := m.correlator.Correlate(ctx, loc)

	m.mu.Lock()
	if m.closed || gen != m.gen {
		m.mu.Unlock()
		return
	}
	m.cancel = nil

	if err == nil && hazard != nil && m.active == nil && ctx.Err() == nil {
		ev := *hazard
		m.active = &ev
		m.moved = false
		m.metrics.ActiveAlert.Set(1)
		m.mu.Unlock()

		m.logger.Info("hazard alert raised",
			"hazard_id", ev.ID, "kind", ev.Kind, "severity", ev.Severity, "source", ev.Source)
		if m.onAlert != nil {
			m.onAlert(m.root, ev)
		}
		return
	}

	if m.moved {
		m.moved = false
		m.scheduleLocked()
	}
	m.mu.Unlock()

	if err != nil && !errors.Is(err, context.Canceled) {
		m.logger.Warn("alert correlation failed", "error", err, "lat", loc.Lat, "lng", loc.Lng)
	}
}
