package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CounterRepo is the sequence allocator. Each (service_type, date)
// pair owns one counter row; Next is the only writer.
type CounterRepo struct {
	pool *pgxpool.Pool
}

// Next hands out the next sequence number for the given service and
// day bucket. The upsert is a single statement, so concurrent calls
// serialize on the counter row: no gaps, no duplicates. The first
// call of a day creates the row with value 1.
func (r *CounterRepo) Next(ctx context.Context, serviceType, day string) (int64, error) {
	const op = "postgres.CounterRepo.Next"

	var next int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO service_counters (service_type, last_number, date)
		 VALUES ($1, 1, $2)
		 ON CONFLICT (service_type, date)
		 DO UPDATE SET last_number = service_counters.last_number + 1
		 RETURNING last_number`,
		serviceType, day,
	).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	return next, nil
}
