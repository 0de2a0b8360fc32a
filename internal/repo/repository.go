package repo

import (
	"context"
	"time"

	"github.com/upwatch/watchtower/internal/domain"
)

// Ports (interfaces) — swap in any DB adapter later.

type MonitorStore interface {
	Add(ctx context.Context, m *domain.Monitor) error
	Get(ctx context.Context, id domain.MonitorID) (*domain.Monitor, error)
	// ListActive returns monitors eligible for scheduling; paused monitors
	// are never included.
	ListActive(ctx context.Context) ([]domain.Monitor, error)
	// UpdateStatus writes the orchestrator-owned status fields only.
	// incidentAt is nil unless the new status is down.
	UpdateStatus(ctx context.Context, id domain.MonitorID, status domain.Status, checkedAt time.Time, incidentAt *time.Time) error
}

type CheckStore interface {
	Append(ctx context.Context, r *domain.CheckResult) error
	// LastByMonitor returns nil, nil when no results exist yet.
	LastByMonitor(ctx context.Context, id domain.MonitorID) (*domain.CheckResult, error)
	// ListSince returns results at or after since, in chronological order.
	ListSince(ctx context.Context, id domain.MonitorID, since time.Time) ([]domain.CheckResult, error)
	// LastDownAt returns the timestamp of the most recent down result ever
	// recorded for the monitor, or nil, nil when none exists.
	LastDownAt(ctx context.Context, id domain.MonitorID) (*time.Time, error)
}

type UserStore interface {
	// GetUser returns nil, nil when the user does not exist.
	GetUser(ctx context.Context, id domain.UserID) (*domain.User, error)
	PutUser(ctx context.Context, u *domain.User) error
}
