package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kirinyoku/loket-go/internal/domain"
	"github.com/kirinyoku/loket-go/internal/repository"
	redisrepo "github.com/kirinyoku/loket-go/internal/repository/redis"
)

// TicketRepo is the slice of the ticket store the mutation paths
// need.
type TicketRepo interface {
	Create(ctx context.Context, queueNumber, serviceType string, priority int, now time.Time) (*domain.Ticket, error)
	Get(ctx context.Context, queueNumber string) (*domain.Ticket, error)
	CallNext(ctx context.Context, serviceType string, now time.Time) (*domain.Ticket, error)
	Transition(ctx context.Context, queueNumber string, from, to domain.TicketStatus, now time.Time) error
}

// CounterRepo is the sequence allocator contract.
type CounterRepo interface {
	Next(ctx context.Context, serviceType, day string) (int64, error)
}

// Service drives the ticket lifecycle: issue, call, complete, skip.
// The clock is injectable so tests can pin the day bucket.
type Service struct {
	tickets  TicketRepo
	counters CounterRepo
	catalog  *domain.Catalog
	cache    *redisrepo.Cache
	pubsub   *redisrepo.QueuePubSub
	now      func() time.Time
}

func New(
	tickets TicketRepo,
	counters CounterRepo,
	catalog *domain.Catalog,
	cache *redisrepo.Cache,
	pubsub *redisrepo.QueuePubSub,
	now func() time.Time,
) *Service {
	if now == nil {
		now = time.Now
	}

	return &Service{
		tickets:  tickets,
		counters: counters,
		catalog:  catalog,
		cache:    cache,
		pubsub:   pubsub,
		now:      now,
	}
}

// IssueTicket allocates the next sequence number for the service's
// current-day bucket, formats the queue number and persists the
// waiting ticket. Validation happens before any storage mutation.
//
// Returns:
//   - *domain.Ticket: the created waiting ticket.
//   - error: queue.ErrInvalidService if the service is not configured.
func (s *Service) IssueTicket(ctx context.Context, serviceType string) (*domain.Ticket, error) {
	const op = "service.queue.IssueTicket"

	if !s.catalog.Valid(serviceType) {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidService)
	}

	now := s.now()

	seq, err := s.counters.Next(ctx, serviceType, domain.DayKey(now))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	queueNumber := domain.FormatQueueNumber(s.catalog.PrefixFor(serviceType), seq)

	t, err := s.tickets.Create(ctx, queueNumber, serviceType, domain.DefaultPriority, now)
	if err != nil {
		// A conflict here means the allocator handed the same
		// number out twice. Never swallowed.
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.notifyChanged(ctx, serviceType, queueNumber)

	return t, nil
}

// CallNext moves the oldest waiting ticket of the service to called.
//
// Returns:
//   - *domain.Ticket: the called ticket.
//   - error: queue.ErrInvalidService if the service is not configured.
//   - error: queue.ErrNoWaiting if no ticket is waiting.
func (s *Service) CallNext(ctx context.Context, serviceType string) (*domain.Ticket, error) {
	const op = "service.queue.CallNext"

	if !s.catalog.Valid(serviceType) {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidService)
	}

	t, err := s.tickets.CallNext(ctx, serviceType, s.now())
	if err != nil {
		if errors.Is(err, repository.ErrNoWaiting) {
			return nil, fmt.Errorf("%s: %w", op, ErrNoWaiting)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.notifyChanged(ctx, serviceType, t.QueueNumber)

	return t, nil
}

// Complete marks a called ticket completed.
//
// Returns:
//   - error: queue.ErrTicketNotFound if the queue number is unknown.
//   - error: queue.ErrInvalidTransition if the ticket is not called.
func (s *Service) Complete(ctx context.Context, queueNumber string) error {
	return s.finish(ctx, "service.queue.Complete", queueNumber, domain.StatusCompleted)
}

// Skip marks a called ticket skipped.
//
// Returns:
//   - error: queue.ErrTicketNotFound if the queue number is unknown.
//   - error: queue.ErrInvalidTransition if the ticket is not called.
func (s *Service) Skip(ctx context.Context, queueNumber string) error {
	return s.finish(ctx, "service.queue.Skip", queueNumber, domain.StatusSkipped)
}

func (s *Service) finish(
	ctx context.Context,
	op string,
	queueNumber string,
	target domain.TicketStatus,
) error {
	t, err := s.tickets.Get(ctx, queueNumber)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%s: %w", op, ErrTicketNotFound)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	if !domain.CanTransition(t.Status, target) {
		return fmt.Errorf("%s: %s -> %s: %w", op, t.Status, target, ErrInvalidTransition)
	}

	if err := s.tickets.Transition(ctx, queueNumber, t.Status, target, s.now()); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Get saw the ticket a moment ago, so the row did not
			// vanish: a concurrent transition won the row.
			return fmt.Errorf("%s: %w", op, ErrInvalidTransition)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	s.notifyChanged(ctx, t.ServiceType, queueNumber)

	return nil
}

func (s *Service) notifyChanged(ctx context.Context, serviceType, queueNumber string) {
	if s.cache != nil {
		_ = s.cache.InvalidateQueues(ctx)
		_ = s.cache.InvalidateStats(ctx, domain.DayKey(s.now()))
	}
	if s.pubsub != nil {
		_ = s.pubsub.PublishQueueChanged(ctx, serviceType, queueNumber)
	}
}
