package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/upwatch/watchtower/internal/domain"
	"github.com/upwatch/watchtower/internal/repo"
)

const (
	// DefaultTickInterval drives the batch-check cadence.
	DefaultTickInterval = 30 * time.Second

	// DefaultWarmUp delays the initial sweep so freshly created monitors
	// and cold caches settle before the first burst of checks.
	DefaultWarmUp = 5 * time.Second

	defaultConcurrency = 8
)

// Scheduler owns the tick lifecycle and exposes one idempotent entry
// point, RunDueChecks, used by the timer, the warm-up sweep, and any
// external trigger alike.
type Scheduler struct {
	Runner      *Runner
	Monitors    repo.MonitorStore
	Logger      *zap.Logger
	Interval    time.Duration
	WarmUp      time.Duration
	Concurrency int

	cron *cron.Cron
}

func NewScheduler(runner *Runner, monitors repo.MonitorStore, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		Runner:      runner,
		Monitors:    monitors,
		Logger:      logger,
		Interval:    DefaultTickInterval,
		WarmUp:      DefaultWarmUp,
		Concurrency: defaultConcurrency,
	}
}

// Start registers the recurring tick and fires the warm-up sweep. It does
// not block.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.cron != nil {
		return nil
	}
	c := cron.New()
	_, err := c.AddFunc(fmt.Sprintf("@every %s", s.Interval), func() {
		s.RunDueChecks(ctx)
	})
	if err != nil {
		return fmt.Errorf("schedule tick: %w", err)
	}
	s.cron = c
	c.Start()
	s.Logger.Info("scheduler_started", zap.Duration("interval", s.Interval))

	go func() {
		select {
		case <-ctx.Done():
		case <-time.After(s.WarmUp):
			s.RunDueChecks(ctx)
		}
	}()
	return nil
}

// Stop halts the tick. Checks already in flight finish or hit their probe
// timeouts; there is no mid-flight cancellation.
func (s *Scheduler) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	s.cron = nil
	s.Logger.Info("scheduler_stopped")
}

// RunDueChecks selects the active monitors whose next check is due and
// checks them concurrently. A fault in one monitor's check never aborts or
// delays the others. Safe to invoke while a tick is running; the lease and
// dedup guard keep overlapping triggers from double-writing history.
func (s *Scheduler) RunDueChecks(ctx context.Context) {
	monitors, err := s.Monitors.ListActive(ctx)
	if err != nil {
		s.Logger.Warn("scheduler_list_error", zap.Error(err))
		return
	}

	now := time.Now().UTC()
	var due []domain.Monitor
	for _, m := range monitors {
		if s.isDue(&m, now) {
			due = append(due, m)
		}
	}
	if len(due) == 0 {
		return
	}
	s.Logger.Info("scheduler_tick", zap.Int("due", len(due)))

	concurrency := s.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for i := range due {
		m := due[i]
		sem <- struct{}{}
		wg.Add(1)
		go func() {
			defer func() { <-sem }()
			defer wg.Done()

			if _, err := s.Runner.CheckMonitor(ctx, &m); err != nil {
				s.Logger.Warn("check_failed",
					zap.String("monitor_id", string(m.ID)),
					zap.String("target", m.Target),
					zap.Error(err),
				)
			}
		}()
	}

	wg.Wait()
}

// isDue applies the frequency rule: never-checked monitors are always due,
// otherwise elapsed time since the last check must reach the frequency.
func (s *Scheduler) isDue(m *domain.Monitor, now time.Time) bool {
	if m.LastCheckedAt == nil {
		return true
	}
	mins, ok := m.Frequency.Minutes()
	if !ok {
		s.Logger.Warn("frequency_fallback",
			zap.String("monitor_id", string(m.ID)),
			zap.String("frequency", string(m.Frequency)),
			zap.Int("minutes", mins),
		)
	}
	return now.Sub(*m.LastCheckedAt) >= time.Duration(mins)*time.Minute
}
