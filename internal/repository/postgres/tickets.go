package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kirinyoku/loket-go/internal/domain"
	"github.com/kirinyoku/loket-go/internal/repository"
)

const ticketColumns = `id, queue_number, service_type, status,
	created_at, called_at, completed_at, priority, date`

// transitionStamp maps a target status to the timestamp column it
// sets. The mapping is fixed at compile time; skipped stamps nothing.
var transitionStamp = map[domain.TicketStatus]string{
	domain.StatusCalled:    "called_at",
	domain.StatusCompleted: "completed_at",
}

// TicketRepo owns the queues table. The store performs no
// transition-legality checks itself beyond the expected-status match
// on Transition; callers guard the state machine.
type TicketRepo struct {
	store *Store
	pool  *pgxpool.Pool
}

// Create inserts a new waiting ticket. A duplicate queue number is a
// hard failure (repository.ErrConflict): the allocator guarantees
// uniqueness, so a conflict means the allocator misbehaved.
func (r *TicketRepo) Create(
	ctx context.Context,
	queueNumber, serviceType string,
	priority int,
	now time.Time,
) (*domain.Ticket, error) {
	const op = "postgres.TicketRepo.Create"

	t := domain.Ticket{
		QueueNumber: queueNumber,
		ServiceType: serviceType,
		Status:      domain.StatusWaiting,
		Priority:    priority,
		Date:        domain.DayKey(now),
	}

	err := r.pool.QueryRow(ctx,
		`INSERT INTO queues (queue_number, service_type, status, created_at, priority, date)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		queueNumber, serviceType, t.Status, now, priority, t.Date,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	return &t, nil
}

// Get fetches a ticket by its queue number.
func (r *TicketRepo) Get(ctx context.Context, queueNumber string) (*domain.Ticket, error) {
	const op = "postgres.TicketRepo.Get"

	row := r.pool.QueryRow(ctx,
		`SELECT `+ticketColumns+` FROM queues WHERE queue_number = $1`,
		queueNumber,
	)

	t, err := scanTicket(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	return t, nil
}

// NextWaiting returns the oldest waiting ticket for the service, by
// created_at with the row id as tiebreak. repository.ErrNoWaiting
// when the queue is empty.
func (r *TicketRepo) NextWaiting(ctx context.Context, serviceType string) (*domain.Ticket, error) {
	const op = "postgres.TicketRepo.NextWaiting"

	row := r.pool.QueryRow(ctx,
		`SELECT `+ticketColumns+` FROM queues
		 WHERE status = $1 AND service_type = $2
		 ORDER BY created_at ASC, id ASC
		 LIMIT 1`,
		domain.StatusWaiting, serviceType,
	)

	t, err := scanTicket(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, repository.ErrNoWaiting)
		}
		return nil, fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	return t, nil
}

// CallNext atomically picks the oldest waiting ticket for the service
// and marks it called. The row is locked with SKIP LOCKED so two
// operators calling at once never announce the same ticket.
func (r *TicketRepo) CallNext(ctx context.Context, serviceType string, now time.Time) (*domain.Ticket, error) {
	const op = "postgres.TicketRepo.CallNext"

	var ticket *domain.Ticket
	err := r.store.RunTx(ctx, nil, func(ctx context.Context, tx DB) error {
		t, err := r.callNextCore(ctx, tx, serviceType, now)
		if err != nil {
			return err
		}
		ticket = t
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	return ticket, nil
}

func (r *TicketRepo) callNextCore(
	ctx context.Context,
	db DB,
	serviceType string,
	now time.Time,
) (*domain.Ticket, error) {
	var queueNumber string
	err := db.QueryRow(ctx,
		`SELECT queue_number FROM queues
		 WHERE status = $1 AND service_type = $2
		 ORDER BY created_at ASC, id ASC
		 FOR UPDATE SKIP LOCKED
		 LIMIT 1`,
		domain.StatusWaiting, serviceType,
	).Scan(&queueNumber)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNoWaiting
		}
		return nil, err
	}

	row := db.QueryRow(
		ctx,
		`UPDATE queues SET status = $1, called_at = $2
		 WHERE queue_number = $3
		 RETURNING `+ticketColumns,
		domain.StatusCalled, now, queueNumber,
	)

	return scanTicket(row)
}

// Transition moves the ticket from the expected status to the target
// and stamps the matching timestamp column, if the target has one.
// The WHERE clause matches the expected status, so a concurrent
// transition makes the race loser fail instead of double-stamping.
// repository.ErrNotFound when no row matches, whether the queue
// number is unknown or the ticket already moved on.
func (r *TicketRepo) Transition(
	ctx context.Context,
	queueNumber string,
	from, to domain.TicketStatus,
	now time.Time,
) error {
	const op = "postgres.TicketRepo.Transition"

	query := `UPDATE queues SET status = $1 WHERE queue_number = $2 AND status = $3`
	args := []any{to, queueNumber, from}

	if col, ok := transitionStamp[to]; ok {
		query = `UPDATE queues SET status = $1, ` + col + ` = $4 WHERE queue_number = $2 AND status = $3`
		args = append(args, now)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}

	return nil
}

// List returns tickets ordered by creation time. Empty filter values
// are ignored, matching the original query builder.
func (r *TicketRepo) List(
	ctx context.Context,
	status domain.TicketStatus,
	serviceType string,
) ([]domain.Ticket, error) {
	const op = "postgres.TicketRepo.List"

	query := `SELECT ` + ticketColumns + ` FROM queues`
	var conds []string
	var args []any

	if status != "" {
		args = append(args, status)
		conds = append(conds, "status = $"+strconv.Itoa(len(args)))
	}
	if serviceType != "" {
		args = append(args, serviceType)
		conds = append(conds, "service_type = $"+strconv.Itoa(len(args)))
	}

	for i, c := range conds {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += " ORDER BY created_at ASC, id ASC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	defer rows.Close()

	var out []domain.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, translateDBErr(err))
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	return out, nil
}

// Stats counts waiting tickets across all days and completed/skipped
// tickets for the given day only.
func (r *TicketRepo) Stats(ctx context.Context, day string) (*domain.QueueStats, error) {
	const op = "postgres.TicketRepo.Stats"

	var s domain.QueueStats
	err := r.pool.QueryRow(ctx,
		`SELECT
			(SELECT COUNT(*) FROM queues WHERE status = $1) AS waiting,
			(SELECT COUNT(*) FROM queues WHERE status = $2 AND date = $4) AS completed_today,
			(SELECT COUNT(*) FROM queues WHERE status = $3 AND date = $4) AS skipped_today`,
		domain.StatusWaiting, domain.StatusCompleted, domain.StatusSkipped, day,
	).Scan(&s.Waiting, &s.CompletedToday, &s.SkippedToday)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, translateDBErr(err))
	}

	return &s, nil
}

func scanTicket(row pgx.Row) (*domain.Ticket, error) {
	var t domain.Ticket
	err := row.Scan(
		&t.ID,
		&t.QueueNumber,
		&t.ServiceType,
		&t.Status,
		&t.CreatedAt,
		&t.CalledAt,
		&t.CompletedAt,
		&t.Priority,
		&t.Date,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
