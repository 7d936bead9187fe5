package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/upb/wte-dashboard/backend/identity"
	"github.com/upb/wte-dashboard/backend/internal/observability"
	"github.com/upb/wte-dashboard/backend/services/audit"
)

// MaintenanceSchedule is how often expired roles are swept
const MaintenanceSchedule = "@every 1m"

// Maintenance sweeps expired roles out of the role cache and publishes the
// cache and audit queue gauges.
type Maintenance struct {
	cache    *identity.RoleCache
	audit    *audit.Service
	schedule string
	logger   *zap.Logger

	mu   sync.Mutex
	cron *cron.Cron
}

// NewMaintenance creates a stopped Maintenance job. cache and auditor may be nil.
func NewMaintenance(cache *identity.RoleCache, auditor *audit.Service, schedule string, logger *zap.Logger) *Maintenance {
	return &Maintenance{
		cache:    cache,
		audit:    auditor,
		schedule: schedule,
		logger:   logger,
	}
}

// Run performs one sweep and returns how many cached roles expired
func (m *Maintenance) Run() int {
	removed := m.cache.CleanupExpired()

	stats := m.cache.Stats()
	observability.RoleCacheEntries.Set(float64(stats.Size))
	observability.RoleCacheHitRatio.Set(stats.HitRate)
	if m.audit != nil {
		observability.AuditPendingEvents.Set(float64(m.audit.GetStats().PendingEvents))
	}

	if removed > 0 {
		m.logger.Debug("expired cached roles", zap.Int("removed", removed), zap.Int("remaining", stats.Size))
	}
	return removed
}

// Start schedules Run. Starting twice is an error.
func (m *Maintenance) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cron != nil {
		return fmt.Errorf("maintenance already running")
	}

	c := cron.New()
	if _, err := c.AddFunc(m.schedule, func() { m.Run() }); err != nil {
		return fmt.Errorf("invalid maintenance schedule %q: %w", m.schedule, err)
	}
	c.Start()
	m.cron = c

	m.logger.Info("maintenance job started", zap.String("schedule", m.schedule))
	return nil
}

// Running reports whether the job is scheduled
func (m *Maintenance) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cron != nil
}

// Stop unschedules the job and waits for a running sweep. Stopping a
// stopped job is a no-op.
func (m *Maintenance) Stop(ctx context.Context) error {
	m.mu.Lock()
	c := m.cron
	m.cron = nil
	m.mu.Unlock()
	if c == nil {
		return nil
	}

	select {
	case <-c.Stop().Done():
		return nil
	case <-ctx.Done():
		return fmt.Errorf("timeout waiting for maintenance sweep: %w", ctx.Err())
	}
}
