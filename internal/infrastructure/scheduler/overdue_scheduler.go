package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/borrowtrack/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ErrInvalidConfig is returned when the scheduler configuration is invalid
var ErrInvalidConfig = errors.New("invalid scheduler configuration")

// OverdueRefresher marks past-due borrowed transactions as overdue
type OverdueRefresher interface {
	RefreshOverdue(ctx context.Context) (int, error)
}

// SweepRecorder observes the outcome of each sweep
type SweepRecorder interface {
	RecordSweep(marked int, err error)
}

// OverdueSchedulerConfig holds configuration for the overdue sweeper
type OverdueSchedulerConfig struct {
	// Enabled determines if the scheduler is active
	Enabled bool

	// Interval between sweeps; the first sweep runs on start
	Interval time.Duration

	// JobTimeout bounds a single sweep
	JobTimeout time.Duration
}

// DefaultOverdueSchedulerConfig returns default configuration
func DefaultOverdueSchedulerConfig() OverdueSchedulerConfig {
	return OverdueSchedulerConfig{
		Enabled:    true,
		Interval:   time.Hour,
		JobTimeout: time.Minute,
	}
}

// OverdueSchedulerConfigFrom adapts the application configuration
func OverdueSchedulerConfigFrom(cfg config.SchedulerConfig) OverdueSchedulerConfig {
	return OverdueSchedulerConfig{
		Enabled:    cfg.Enabled,
		Interval:   cfg.SweepInterval,
		JobTimeout: cfg.JobTimeout,
	}
}

// OverdueScheduler periodically re-evaluates borrowed transactions so that
// stored statuses do not stay "borrowed" after the due date passes
type OverdueScheduler struct {
	refresher OverdueRefresher
	recorder  SweepRecorder
	logger    *zap.Logger
	config    OverdueSchedulerConfig

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
	lastRun   time.Time
	lastCount int
}

// NewOverdueScheduler creates a new overdue scheduler
func NewOverdueScheduler(refresher OverdueRefresher, logger *zap.Logger, config OverdueSchedulerConfig) *OverdueScheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OverdueScheduler{
		refresher: refresher,
		logger:    logger,
		config:    config,
	}
}

// SetRecorder attaches a recorder; call before Start
func (s *OverdueScheduler) SetRecorder(recorder SweepRecorder) {
	s.recorder = recorder
}

// Start starts the sweep loop
func (s *OverdueScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	if !s.config.Enabled {
		s.mu.Unlock()
		s.logger.Info("Overdue scheduler is disabled")
		return nil
	}
	if s.config.Interval <= 0 {
		s.mu.Unlock()
		return ErrInvalidConfig
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(1)
	go s.run(ctx)

	s.logger.Info("Overdue scheduler started", zap.Duration("interval", s.config.Interval))
	return nil
}

// Stop gracefully stops the scheduler
func (s *OverdueScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Overdue scheduler stopped gracefully")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Overdue scheduler stop timed out")
		return ctx.Err()
	}
}

// IsRunning reports whether the sweep loop is active
func (s *OverdueScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}

// LastRun returns when the last sweep finished and how many transactions it updated
func (s *OverdueScheduler) LastRun() (time.Time, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastRun, s.lastCount
}

func (s *OverdueScheduler) run(ctx context.Context) {
	defer s.wg.Done()

	s.RunOnce(ctx)

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("Overdue sweep loop stopping")
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce performs a single sweep bounded by the job timeout
func (s *OverdueScheduler) RunOnce(ctx context.Context) {
	if s.config.JobTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.JobTimeout)
		defer cancel()
	}

	start := time.Now()
	count, err := s.refresher.RefreshOverdue(ctx)
	if err != nil {
		s.logger.Error("Overdue sweep failed",
			zap.Int("updated", count),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err))
	} else {
		s.logger.Debug("Overdue sweep completed",
			zap.Int("updated", count),
			zap.Duration("duration", time.Since(start)))
	}

	if s.recorder != nil {
		s.recorder.RecordSweep(count, err)
	}

	s.mu.Lock()
	s.lastRun = time.Now()
	s.lastCount = count
	s.mu.Unlock()
}
