package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/upwatch/watchtower/internal/domain"
)

func (s *Store) Append(ctx context.Context, r *domain.CheckResult) error {
	if r.CheckedAt.IsZero() {
		r.CheckedAt = time.Now().UTC()
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO checks
		   (monitor_id, outcome, response_time_ms, code, location, reason, checked_at)
		 VALUES
		   ($1,$2,$3,$4,$5,$6,$7)`,
		string(r.MonitorID), string(r.Outcome), r.ResponseTimeMS, r.Code,
		r.Location, r.Reason, r.CheckedAt)
	if err != nil {
		return fmt.Errorf("insert check: %w", err)
	}
	return nil
}

func (s *Store) LastByMonitor(ctx context.Context, id domain.MonitorID) (*domain.CheckResult, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT outcome, response_time_ms, code, location, reason, checked_at
		   FROM checks
		  WHERE monitor_id = $1
		  ORDER BY checked_at DESC
		  LIMIT 1`, string(id))
	var (
		r       domain.CheckResult
		outcome string
	)
	r.MonitorID = id
	err := row.Scan(&outcome, &r.ResponseTimeMS, &r.Code, &r.Location, &r.Reason, &r.CheckedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("last check: %w", err)
	}
	r.Outcome = domain.Status(outcome)
	return &r, nil
}

func (s *Store) ListSince(ctx context.Context, id domain.MonitorID, since time.Time) ([]domain.CheckResult, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT outcome, response_time_ms, code, location, reason, checked_at
		   FROM checks
		  WHERE monitor_id = $1 AND checked_at >= $2
		  ORDER BY checked_at`, string(id), since)
	if err != nil {
		return nil, fmt.Errorf("list checks: %w", err)
	}
	defer rows.Close()

	var out []domain.CheckResult
	for rows.Next() {
		var (
			r       domain.CheckResult
			outcome string
		)
		r.MonitorID = id
		if err := rows.Scan(&outcome, &r.ResponseTimeMS, &r.Code, &r.Location, &r.Reason, &r.CheckedAt); err != nil {
			return nil, fmt.Errorf("scan check: %w", err)
		}
		r.Outcome = domain.Status(outcome)
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) LastDownAt(ctx context.Context, id domain.MonitorID) (*time.Time, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT checked_at
		   FROM checks
		  WHERE monitor_id = $1 AND outcome = 'down'
		  ORDER BY checked_at DESC
		  LIMIT 1`, string(id))
	var t time.Time
	if err := row.Scan(&t); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("last down: %w", err)
	}
	return &t, nil
}
