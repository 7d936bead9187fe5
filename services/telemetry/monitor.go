package telemetry

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/upb/wte-dashboard/backend/internal/observability"
	"github.com/upb/wte-dashboard/backend/models"
	"github.com/upb/wte-dashboard/backend/repositories"
)

var (
	ErrAlreadyRunning = errors.New("telemetry monitor already running")
	ErrNotRunning     = errors.New("telemetry monitor not running")
)

// Config holds configuration for the Monitor
type Config struct {
	Schedule    string     // cron spec, e.g. "@every 2s"
	HistorySize int        // readings kept for charts
	AlertLimit  int        // new alerts plus up to AlertLimit-1 earlier ones
	Persist     bool       // store samples in wte_monitoring_data
	SiteID      *uuid.UUID // site the samples are attributed to
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Schedule:    "@every 2s",
		HistorySize: 20,
		AlertLimit:  10,
	}
}

// Source produces readings
type Source interface {
	Next() Reading
}

// Snapshot is a consistent view of the monitor's state
type Snapshot struct {
	Current  *Reading       `json:"current"`
	Statuses []MetricStatus `json:"statuses"`
	History  []Reading      `json:"history"` // oldest first
	Alerts   []Alert        `json:"alerts"`  // newest first
	Running  bool           `json:"running"`
}

// Monitor samples the generator on a cron schedule and keeps the recent
// history and alerts in memory. Safe for concurrent use.
type Monitor struct {
	gen    Source
	repo   repositories.MonitoringRepository
	cfg    Config
	logger *zap.Logger

	mu      sync.RWMutex
	history []Reading // ring buffer
	next    int
	full    bool
	alerts  []Alert

	cron    *cron.Cron
	running bool
}

// NewMonitor creates a Monitor. repo may be nil when persistence is off.
func NewMonitor(gen Source, repo repositories.MonitoringRepository, cfg Config, logger *zap.Logger) *Monitor {
	if cfg.HistorySize <= 0 {
		cfg.HistorySize = DefaultConfig().HistorySize
	}
	if cfg.AlertLimit <= 0 {
		cfg.AlertLimit = DefaultConfig().AlertLimit
	}
	if cfg.Schedule == "" {
		cfg.Schedule = DefaultConfig().Schedule
	}
	return &Monitor{
		gen:     gen,
		repo:    repo,
		cfg:     cfg,
		logger:  logger,
		history: make([]Reading, cfg.HistorySize),
		alerts:  []Alert{},
	}
}

// Start takes a first sample and schedules the rest
func (m *Monitor) Start() error {
	m.mu.Lock()
	if m.running {
		m.mu.Unlock()
		return ErrAlreadyRunning
	}

	c := cron.New()
	if _, err := c.AddFunc(m.cfg.Schedule, func() { m.Sample(context.Background()) }); err != nil {
		m.mu.Unlock()
		return fmt.Errorf("invalid telemetry schedule %q: %w", m.cfg.Schedule, err)
	}
	m.cron = c
	m.running = true
	m.mu.Unlock()

	m.Sample(context.Background())
	c.Start()

	m.logger.Info("telemetry monitor started",
		zap.String("schedule", m.cfg.Schedule),
		zap.Int("history_size", m.cfg.HistorySize),
		zap.Bool("persist", m.cfg.Persist))
	return nil
}

// Stop halts sampling and waits for a running sample to finish
func (m *Monitor) Stop(ctx context.Context) error {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return ErrNotRunning
	}
	c := m.cron
	m.running = false
	m.cron = nil
	m.mu.Unlock()

	select {
	case <-c.Stop().Done():
		m.logger.Info("telemetry monitor stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("timeout waiting for telemetry sample to finish: %w", ctx.Err())
	}
}

// Sample takes one reading, records it and its alerts, and returns it
func (m *Monitor) Sample(ctx context.Context) Reading {
	m.mu.Lock()
	reading := m.gen.Next()

	m.history[m.next] = reading
	m.next = (m.next + 1) % len(m.history)
	if m.next == 0 {
		m.full = true
	}

	raised := Alerts(reading)
	if len(raised) > 0 {
		// a new batch is always kept whole; only older alerts are trimmed
		prev := m.alerts
		if keep := m.cfg.AlertLimit - 1; len(prev) > keep {
			prev = prev[:keep]
		}
		merged := make([]Alert, 0, len(raised)+len(prev))
		merged = append(merged, raised...)
		merged = append(merged, prev...)
		m.alerts = merged
	}
	m.mu.Unlock()

	observability.TelemetrySamples.Inc()
	for _, a := range raised {
		observability.TelemetryAlerts.WithLabelValues(string(a.Level)).Inc()
		m.logger.Warn("telemetry alert",
			zap.String("level", string(a.Level)),
			zap.String("metric", string(a.Metric)),
			zap.Float64("value", a.Value))
	}

	if m.cfg.Persist && m.repo != nil {
		m.persist(ctx, reading)
	}
	return reading
}

func (m *Monitor) persist(ctx context.Context, r Reading) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := m.repo.Insert(ctx, ToRecord(r, m.cfg.SiteID)); err != nil {
		m.logger.Error("failed to persist telemetry sample", zap.Error(err))
	}
}

// Current returns the latest reading, or nil before the first sample
func (m *Monitor) Current() *Reading {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentLocked()
}

func (m *Monitor) currentLocked() *Reading {
	if !m.full && m.next == 0 {
		return nil
	}
	idx := (m.next - 1 + len(m.history)) % len(m.history)
	r := m.history[idx]
	return &r
}

// History returns the retained readings, oldest first
func (m *Monitor) History() []Reading {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.historyLocked()
}

func (m *Monitor) historyLocked() []Reading {
	if !m.full {
		out := make([]Reading, m.next)
		copy(out, m.history[:m.next])
		return out
	}
	out := make([]Reading, 0, len(m.history))
	out = append(out, m.history[m.next:]...)
	out = append(out, m.history[:m.next]...)
	return out
}

// RecentAlerts returns the retained alerts, newest first
func (m *Monitor) RecentAlerts() []Alert {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Alert, len(m.alerts))
	copy(out, m.alerts)
	return out
}

// Running reports whether the schedule is active
func (m *Monitor) Running() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.running
}

// Snapshot returns the current reading with its grades, the history and alerts
func (m *Monitor) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := Snapshot{
		Current:  m.currentLocked(),
		Statuses: []MetricStatus{},
		History:  m.historyLocked(),
		Alerts:   make([]Alert, len(m.alerts)),
		Running:  m.running,
	}
	copy(snap.Alerts, m.alerts)
	if snap.Current != nil {
		snap.Statuses = Evaluate(*snap.Current)
	}
	return snap
}

// Stored returns persisted samples newest first
func (m *Monitor) Stored(ctx context.Context, siteID *uuid.UUID, limit int) ([]*models.MonitoringRecord, error) {
	if m.repo == nil {
		return []*models.MonitoringRecord{}, nil
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	records, err := m.repo.ListRecent(ctx, siteID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list telemetry samples: %w", err)
	}
	if records == nil {
		records = []*models.MonitoringRecord{}
	}
	return records, nil
}

// ToRecord maps a reading onto the wte_monitoring_data columns
func ToRecord(r Reading, siteID *uuid.UUID) *models.MonitoringRecord {
	f := func(v float64) *float64 { return &v }
	return &models.MonitoringRecord{
		ID:               uuid.New(),
		SiteID:           siteID,
		Timestamp:        r.Timestamp,
		PrimaryAirflow:   f(r.Airflow.PrimaryAirflow),
		SecondaryAirflow: f(r.Airflow.SecondaryAirflow),
		FurnacePressure:  f(r.Airflow.FurnacePressure),
		OxygenLevel:      f(r.GasComposition.Oxygen),
		COLevel:          f(r.GasComposition.CarbonMonoxide),
		CO2Level:         f(r.GasComposition.CarbonDioxide),
		NOxLevel:         f(r.GasComposition.NOx),
		SO2Level:         f(r.GasComposition.SO2),
		SteamFlow:        f(r.Energy.SteamFlow),
		SteamTemperature: f(r.Energy.SteamTemp),
		SteamPressure:    f(r.Energy.SteamPressure),
		PowerOutput:      f(r.Energy.PowerGenerated),
		Efficiency:       f(r.Energy.PlantEfficiency),
		CreatedAt:        time.Now().UTC(),
	}
}
