package audit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/upb/wte-dashboard/backend/models"
	"github.com/upb/wte-dashboard/backend/repositories"
)

var (
	ErrNotStarted = errors.New("audit service not started")
	ErrBufferFull = errors.New("audit event buffer full")
)

// Recorder accepts audit entries for asynchronous persistence
type Recorder interface {
	Record(log *models.AuditLog) error
}

// Actor identifies who triggered an audited change and from where
type Actor struct {
	UserID    uuid.UUID
	RequestID string
	IPAddress string
	UserAgent string
}

// Config holds configuration for the Service
type Config struct {
	BufferSize  int // Size of the event buffer channel
	WorkerCount int // Number of concurrent workers
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		BufferSize:  1000,
		WorkerCount: 2,
	}
}

// Service writes audit logs through a bounded queue drained by workers,
// and reads them back for the logs module.
type Service struct {
	repo        repositories.AuditRepository
	logger      *zap.Logger
	events      chan *models.AuditLog
	workerCount int
	bufferSize  int
	wg          sync.WaitGroup

	mu      sync.RWMutex
	started bool
	stopped bool
}

// NewService creates a new audit Service
func NewService(repo repositories.AuditRepository, logger *zap.Logger, cfg Config) *Service {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = DefaultConfig().BufferSize
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = DefaultConfig().WorkerCount
	}
	return &Service{
		repo:        repo,
		logger:      logger,
		events:      make(chan *models.AuditLog, cfg.BufferSize),
		workerCount: cfg.WorkerCount,
		bufferSize:  cfg.BufferSize,
	}
}

// Start starts the background workers
func (s *Service) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return fmt.Errorf("audit service already started")
	}

	for i := 0; i < s.workerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}
	s.started = true

	s.logger.Info("started audit service",
		zap.Int("worker_count", s.workerCount),
		zap.Int("buffer_size", s.bufferSize))
	return nil
}

// Stop stops accepting events and waits for queued ones to be written
func (s *Service) Stop(timeout time.Duration) error {
	s.mu.Lock()
	if !s.started || s.stopped {
		s.mu.Unlock()
		return ErrNotStarted
	}
	s.stopped = true
	close(s.events)
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("audit service stopped gracefully")
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("audit service stop timeout after %v", timeout)
	}
}

// Record queues an entry without blocking. A full queue drops the entry.
func (s *Service) Record(log *models.AuditLog) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.started || s.stopped {
		return ErrNotStarted
	}

	select {
	case s.events <- log:
		return nil
	default:
		s.logger.Warn("audit event channel full, dropping event",
			zap.String("action", string(log.Action)),
			zap.String("resource_type", log.ResourceType))
		return ErrBufferFull
	}
}

// List returns audit logs newest first
func (s *Service) List(ctx context.Context, filter repositories.AuditFilter) ([]*models.AuditLog, error) {
	if filter.Limit <= 0 || filter.Limit > 500 {
		filter.Limit = 100
	}
	logs, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	if logs == nil {
		logs = []*models.AuditLog{}
	}
	return logs, nil
}

// Stats represents audit service statistics
type Stats struct {
	BufferSize    int  `json:"buffer_size"`
	PendingEvents int  `json:"pending_events"`
	WorkerCount   int  `json:"worker_count"`
	Started       bool `json:"started"`
}

// GetStats returns statistics about the audit service
func (s *Service) GetStats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Stats{
		BufferSize:    s.bufferSize,
		PendingEvents: len(s.events),
		WorkerCount:   s.workerCount,
		Started:       s.started && !s.stopped,
	}
}

func (s *Service) worker(id int) {
	defer s.wg.Done()

	for log := range s.events {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := s.repo.Insert(ctx, log); err != nil {
			s.logger.Error("failed to persist audit log",
				zap.Int("worker_id", id),
				zap.Error(err),
				zap.String("action", string(log.Action)))
		}
		cancel()
	}
}

// NewEntry starts an audit log attributed to actor
func NewEntry(actor Actor, action models.AuditAction, resourceType string, resourceID uuid.UUID) *models.AuditLog {
	log := models.NewAuditLog(action, resourceType).
		WithResource(resourceID).
		WithRequest(actor.RequestID, actor.IPAddress, actor.UserAgent)
	if actor.UserID != uuid.Nil {
		log.WithUser(actor.UserID)
	}
	return log
}
