package engine

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/upwatch/watchtower/internal/domain"
	"github.com/upwatch/watchtower/internal/lock"
	"github.com/upwatch/watchtower/internal/probe"
	"github.com/upwatch/watchtower/internal/repo"
)

const (
	// DedupWindow suppresses a second result for the same monitor written
	// shortly after the first, protecting history from overlapping ticks
	// and concurrent manual triggers.
	DedupWindow = 30 * time.Second

	// leaseTTL bounds how long a stuck check can hold its monitor.
	leaseTTL = 45 * time.Second
)

// AlertDispatcher is what the runner needs from the notification side.
type AlertDispatcher interface {
	Dispatch(ctx context.Context, m *domain.Monitor, r *domain.CheckResult)
}

// Runner executes one monitor check end to end: probe, dedup, persist,
// status transition, notification.
type Runner struct {
	Monitors   repo.MonitorStore
	Checks     repo.CheckStore
	Dispatcher AlertDispatcher
	Lease      lock.Lease
	Logger     *zap.Logger

	// Probers overrides kind selection in tests; nil means the real ones.
	Probers map[domain.MonitorKind]probe.Prober
}

func NewRunner(monitors repo.MonitorStore, checks repo.CheckStore, dispatcher AlertDispatcher, lease lock.Lease, logger *zap.Logger) *Runner {
	return &Runner{
		Monitors:   monitors,
		Checks:     checks,
		Dispatcher: dispatcher,
		Lease:      lease,
		Logger:     logger,
	}
}

func (r *Runner) prober(kind domain.MonitorKind) (probe.Prober, error) {
	if p, ok := r.Probers[kind]; ok {
		return p, nil
	}
	return probe.ForKind(kind)
}

// CheckMonitor runs the full check pipeline for one monitor. The returned
// result is nil when the check was skipped (lease held) and non-nil even
// when the dedup guard suppressed persistence.
//
// Probe failures are data, not errors: only infrastructure faults (store
// unavailable, unknown kind) surface as a non-nil error, and the caller is
// expected to log and move on.
func (r *Runner) CheckMonitor(ctx context.Context, m *domain.Monitor) (*domain.CheckResult, error) {
	key := "check:" + string(m.ID)
	held, err := r.Lease.TryAcquire(ctx, key, leaseTTL)
	if err != nil {
		return nil, fmt.Errorf("acquire lease: %w", err)
	}
	if !held {
		r.Logger.Debug("check_skipped_lease_held", zap.String("monitor_id", string(m.ID)))
		return nil, nil
	}
	defer func() { _ = r.Lease.Release(ctx, key) }()

	p, err := r.prober(m.Kind)
	if err != nil {
		return nil, err
	}
	out := p.Probe(ctx, m.Target)

	outcome := domain.StatusDown
	if out.Up {
		outcome = domain.StatusUp
	}
	now := time.Now().UTC()
	result := &domain.CheckResult{
		MonitorID:      m.ID,
		Outcome:        outcome,
		ResponseTimeMS: out.ResponseTimeMS,
		Code:           out.Code,
		Location:       location(m),
		Reason:         out.Reason,
		CheckedAt:      now,
	}

	// dedup guard: a fresh result already on record means this one is
	// discarded silently, with no status update and no notification
	last, err := r.Checks.LastByMonitor(ctx, m.ID)
	if err != nil {
		return nil, fmt.Errorf("dedup lookup: %w", err)
	}
	if last != nil && now.Sub(last.CheckedAt) < DedupWindow {
		r.Logger.Debug("check_deduplicated",
			zap.String("monitor_id", string(m.ID)),
			zap.Time("previous", last.CheckedAt),
		)
		return result, nil
	}

	if err := r.Checks.Append(ctx, result); err != nil {
		return nil, fmt.Errorf("append result: %w", err)
	}

	failure := m.LastStatus == domain.StatusUp && outcome == domain.StatusDown

	var incidentAt *time.Time
	if outcome == domain.StatusDown {
		incidentAt = &now
	}
	if err := r.Monitors.UpdateStatus(ctx, m.ID, outcome, now, incidentAt); err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}

	r.Logger.Info("check_done",
		zap.String("monitor_id", string(m.ID)),
		zap.String("target", m.Target),
		zap.String("outcome", string(outcome)),
		zap.String("reason", out.Reason),
	)

	if failure && m.NotifyOnDown {
		r.Dispatcher.Dispatch(ctx, m, result)
	}
	return result, nil
}

// location picks the probe-location tag recorded with a result. A single
// location is used per check; the monitor's first tag wins.
func location(m *domain.Monitor) string {
	if len(m.Locations) > 0 {
		return m.Locations[0]
	}
	return "default"
}
