package postgres

import (
	"context"
	"fmt"
)

// schema mirrors the two tables the service persists. Both are
// append-only; counter rows are the per-(service, day) sequence
// state and queue rows the ticket history.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS service_counters (
		id           BIGSERIAL PRIMARY KEY,
		service_type TEXT NOT NULL,
		last_number  BIGINT NOT NULL,
		date         TEXT NOT NULL,
		UNIQUE (service_type, date)
	)`,
	`CREATE TABLE IF NOT EXISTS queues (
		id           BIGSERIAL PRIMARY KEY,
		queue_number TEXT UNIQUE NOT NULL,
		service_type TEXT NOT NULL,
		status       TEXT NOT NULL DEFAULT 'waiting',
		created_at   TIMESTAMPTZ NOT NULL,
		called_at    TIMESTAMPTZ,
		completed_at TIMESTAMPTZ,
		priority     INT NOT NULL DEFAULT 3,
		date         TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_queues_status_service
		ON queues (status, service_type, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_queues_date_status
		ON queues (date, status)`,
}

// InitSchema creates the tables on startup, like the system it
// replaces did before serving its first request.
func (s *Store) InitSchema(ctx context.Context) error {
	const op = "postgres.Store.InitSchema"

	for _, stmt := range schema {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	return nil
}
