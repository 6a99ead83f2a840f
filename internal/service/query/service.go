package query

import (
	"context"
	"fmt"
	"time"

	"github.com/kirinyoku/loket-go/internal/domain"
	redisrepo "github.com/kirinyoku/loket-go/internal/repository/redis"
)

// TicketReader is the read-only slice of the ticket store.
type TicketReader interface {
	List(ctx context.Context, status domain.TicketStatus, serviceType string) ([]domain.Ticket, error)
	Stats(ctx context.Context, day string) (*domain.QueueStats, error)
}

type Config struct {
	// CacheTTL bounds how stale the polled views may be. The panel
	// and display poll every few seconds, so a short TTL is enough.
	CacheTTL time.Duration
}

// Service answers the read endpoints: the service catalog, queue
// listings, the public display snapshot and the day's stats.
type Service struct {
	tickets TicketReader
	catalog *domain.Catalog
	cache   *redisrepo.Cache
	now     func() time.Time
	cfg     Config
}

func New(
	tickets TicketReader,
	catalog *domain.Catalog,
	cache *redisrepo.Cache,
	now func() time.Time,
	cfg Config,
) *Service {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 2 * time.Second
	}
	if now == nil {
		now = time.Now
	}

	return &Service{
		tickets: tickets,
		catalog: catalog,
		cache:   cache,
		now:     now,
		cfg:     cfg,
	}
}

// Services returns the configured service names.
func (s *Service) Services(ctx context.Context) []string {
	return s.catalog.Names()
}

// ListQueues returns all tickets ordered by creation time, optionally
// filtered. The unfiltered listing the panel polls is cached.
func (s *Service) ListQueues(
	ctx context.Context,
	status domain.TicketStatus,
	serviceType string,
) ([]domain.Ticket, error) {
	const op = "service.query.ListQueues"

	load := func(ctx context.Context) ([]domain.Ticket, error) {
		return s.tickets.List(ctx, status, serviceType)
	}

	if s.cache == nil || status != "" || serviceType != "" {
		out, err := load(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return out, nil
	}

	out, err := redisrepo.GetOrSetJSON(ctx, s.cache, redisrepo.KeyQueueList(), s.cfg.CacheTTL, load)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// CalledQueues returns the tickets currently in called status, the
// view the public display renders.
func (s *Service) CalledQueues(ctx context.Context) ([]domain.Ticket, error) {
	const op = "service.query.CalledQueues"

	load := func(ctx context.Context) ([]domain.Ticket, error) {
		return s.tickets.List(ctx, domain.StatusCalled, "")
	}

	if s.cache == nil {
		out, err := load(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return out, nil
	}

	out, err := redisrepo.GetOrSetJSON(ctx, s.cache, redisrepo.KeyDisplayCurrent(), s.cfg.CacheTTL, load)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// Stats reports the waiting backlog plus today's completed and
// skipped counts. Waiting is never day-scoped.
func (s *Service) Stats(ctx context.Context) (*domain.QueueStats, error) {
	const op = "service.query.Stats"

	day := domain.DayKey(s.now())

	load := func(ctx context.Context) (*domain.QueueStats, error) {
		return s.tickets.Stats(ctx, day)
	}

	if s.cache == nil {
		st, err := load(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return st, nil
	}

	st, err := redisrepo.GetOrSetJSON(ctx, s.cache, redisrepo.KeyStats(day), s.cfg.CacheTTL, load)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return st, nil
}
