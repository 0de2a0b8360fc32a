package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/upwatch/watchtower/internal/domain"
)

func (s *Store) Add(ctx context.Context, m *domain.Monitor) error {
	if m.ID == "" {
		m.ID = domain.MonitorID(uuid.NewString())
	}
	now := time.Now().UTC()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now
	if m.Lifecycle == "" {
		m.Lifecycle = domain.LifecycleActive
	}
	if m.LastStatus == "" {
		m.LastStatus = domain.StatusUnknown
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO monitors
		   (id, user_id, name, kind, target, frequency, locations, notify_on_down,
		    alert_channels, lifecycle, last_status, created_at, updated_at)
		 VALUES
		   ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		string(m.ID), string(m.UserID), m.Name, string(m.Kind), m.Target,
		string(m.Frequency), m.Locations, m.NotifyOnDown,
		m.AlertChannels, string(m.Lifecycle), string(m.LastStatus),
		m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert monitor: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id domain.MonitorID) (*domain.Monitor, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, user_id, name, kind, target, frequency, locations, notify_on_down,
		        alert_channels, lifecycle, last_status, last_checked_at, last_incident_at,
		        created_at, updated_at
		   FROM monitors
		  WHERE id = $1`, string(id))
	m, err := scanMonitor(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get monitor: %w", err)
	}
	return m, nil
}

func (s *Store) ListActive(ctx context.Context) ([]domain.Monitor, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, name, kind, target, frequency, locations, notify_on_down,
		        alert_channels, lifecycle, last_status, last_checked_at, last_incident_at,
		        created_at, updated_at
		   FROM monitors
		  WHERE lifecycle = 'active'
		  ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list monitors: %w", err)
	}
	defer rows.Close()

	var out []domain.Monitor
	for rows.Next() {
		m, err := scanMonitor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan monitor: %w", err)
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

func (s *Store) UpdateStatus(ctx context.Context, id domain.MonitorID, status domain.Status, checkedAt time.Time, incidentAt *time.Time) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE monitors
		    SET last_status = $2,
		        last_checked_at = $3,
		        last_incident_at = COALESCE($4, last_incident_at),
		        updated_at = now()
		  WHERE id = $1`,
		string(id), string(status), checkedAt, incidentAt)
	if err != nil {
		return fmt.Errorf("update monitor status: %w", err)
	}
	return nil
}

func scanMonitor(row pgx.Row) (*domain.Monitor, error) {
	var (
		m                     domain.Monitor
		id, userID            string
		kind, freq            string
		lifecycle, lastStatus string
		checkedAt, incidentAt *time.Time
	)
	err := row.Scan(&id, &userID, &m.Name, &kind, &m.Target, &freq, &m.Locations,
		&m.NotifyOnDown, &m.AlertChannels, &lifecycle, &lastStatus,
		&checkedAt, &incidentAt, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	m.ID = domain.MonitorID(id)
	m.UserID = domain.UserID(userID)
	m.Kind = domain.MonitorKind(kind)
	m.Frequency = domain.Frequency(freq)
	m.Lifecycle = domain.Lifecycle(lifecycle)
	m.LastStatus = domain.Status(lastStatus)
	m.LastCheckedAt = checkedAt
	m.LastIncidentAt = incidentAt
	return &m, nil
}
