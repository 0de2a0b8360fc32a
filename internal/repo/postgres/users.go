package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/upwatch/watchtower/internal/domain"
)

// Channel settings are stored as a JSONB blob; the engine only ever reads
// the whole thing to resolve adapters for a failure event.

func (s *Store) GetUser(ctx context.Context, id domain.UserID) (*domain.User, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, email, channels FROM users WHERE id = $1`, string(id))
	var (
		u        domain.User
		uid      string
		channels []byte
	)
	if err := row.Scan(&uid, &u.Email, &channels); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	u.ID = domain.UserID(uid)
	if len(channels) > 0 {
		if err := json.Unmarshal(channels, &u.Channels); err != nil {
			return nil, fmt.Errorf("decode channels: %w", err)
		}
	}
	return &u, nil
}

func (s *Store) PutUser(ctx context.Context, u *domain.User) error {
	if u.ID == "" {
		u.ID = domain.UserID(uuid.NewString())
	}
	channels, err := json.Marshal(u.Channels)
	if err != nil {
		return fmt.Errorf("encode channels: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO users (id, email, channels)
		 VALUES ($1,$2,$3)
		 ON CONFLICT (id)
		 DO UPDATE SET email = EXCLUDED.email, channels = EXCLUDED.channels`,
		string(u.ID), u.Email, channels)
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}
