package queue

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kirinyoku/loket-go/internal/domain"
	"github.com/kirinyoku/loket-go/internal/repository"
)

type fakeTickets struct {
	createFn     func(ctx context.Context, queueNumber, serviceType string, priority int, now time.Time) (*domain.Ticket, error)
	getFn        func(ctx context.Context, queueNumber string) (*domain.Ticket, error)
	callNextFn   func(ctx context.Context, serviceType string, now time.Time) (*domain.Ticket, error)
	transitionFn func(ctx context.Context, queueNumber string, from, to domain.TicketStatus, now time.Time) error
}

func (f *fakeTickets) Create(ctx context.Context, queueNumber, serviceType string, priority int, now time.Time) (*domain.Ticket, error) {
	if f.createFn == nil {
		return &domain.Ticket{QueueNumber: queueNumber, ServiceType: serviceType, Status: domain.StatusWaiting, Priority: priority, CreatedAt: now}, nil
	}
	return f.createFn(ctx, queueNumber, serviceType, priority, now)
}

func (f *fakeTickets) Get(ctx context.Context, queueNumber string) (*domain.Ticket, error) {
	if f.getFn == nil {
		return nil, repository.ErrNotFound
	}
	return f.getFn(ctx, queueNumber)
}

func (f *fakeTickets) CallNext(ctx context.Context, serviceType string, now time.Time) (*domain.Ticket, error) {
	if f.callNextFn == nil {
		return nil, repository.ErrNoWaiting
	}
	return f.callNextFn(ctx, serviceType, now)
}

func (f *fakeTickets) Transition(ctx context.Context, queueNumber string, from, to domain.TicketStatus, now time.Time) error {
	if f.transitionFn == nil {
		return nil
	}
	return f.transitionFn(ctx, queueNumber, from, to, now)
}

type fakeCounters struct {
	nextFn func(ctx context.Context, serviceType, day string) (int64, error)
	calls  int
}

func (f *fakeCounters) Next(ctx context.Context, serviceType, day string) (int64, error) {
	f.calls++
	if f.nextFn == nil {
		return int64(f.calls), nil
	}
	return f.nextFn(ctx, serviceType, day)
}

func testCatalog() *domain.Catalog {
	return domain.NewCatalog([]string{"PELAYANAN UMUM"})
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestIssueTicketFormatsNumber(t *testing.T) {
	day := time.Date(2026, 8, 31, 9, 0, 0, 0, time.Local)

	var gotDay string
	counters := &fakeCounters{
		nextFn: func(ctx context.Context, serviceType, d string) (int64, error) {
			if serviceType != "PELAYANAN UMUM" {
				t.Fatalf("allocated for service %q", serviceType)
			}
			gotDay = d
			return 1, nil
		},
	}

	var created string
	tickets := &fakeTickets{
		createFn: func(ctx context.Context, queueNumber, serviceType string, priority int, now time.Time) (*domain.Ticket, error) {
			created = queueNumber
			if priority != domain.DefaultPriority {
				t.Fatalf("priority=%d, want %d", priority, domain.DefaultPriority)
			}
			return &domain.Ticket{QueueNumber: queueNumber, ServiceType: serviceType, Status: domain.StatusWaiting, CreatedAt: now}, nil
		},
	}

	svc := New(tickets, counters, testCatalog(), nil, nil, fixedClock(day))

	ticket, err := svc.IssueTicket(context.Background(), "PELAYANAN UMUM")
	if err != nil {
		t.Fatalf("IssueTicket: %v", err)
	}

	if ticket.QueueNumber != "PU-001" || created != "PU-001" {
		t.Fatalf("queue number=%q (created %q), want PU-001", ticket.QueueNumber, created)
	}
	if gotDay != "2026-08-31" {
		t.Fatalf("allocator day=%q, want 2026-08-31", gotDay)
	}
}

func TestIssueTicketInvalidService(t *testing.T) {
	counters := &fakeCounters{}
	svc := New(&fakeTickets{}, counters, testCatalog(), nil, nil, nil)

	_, err := svc.IssueTicket(context.Background(), "PELAYANAN KHUSUS")
	if !errors.Is(err, ErrInvalidService) {
		t.Fatalf("err=%v, want ErrInvalidService", err)
	}
	if counters.calls != 0 {
		t.Fatal("allocator must not run for an invalid service")
	}
}

func TestIssueTicketDayRollover(t *testing.T) {
	tickets := &fakeTickets{}
	var days []string
	counters := &fakeCounters{
		nextFn: func(ctx context.Context, serviceType, d string) (int64, error) {
			days = append(days, d)
			return 1, nil
		},
	}

	now := time.Date(2026, 8, 31, 23, 59, 0, 0, time.Local)
	clock := func() time.Time { return now }
	svc := New(tickets, counters, testCatalog(), nil, nil, clock)

	if _, err := svc.IssueTicket(context.Background(), "PELAYANAN UMUM"); err != nil {
		t.Fatalf("IssueTicket: %v", err)
	}

	now = now.Add(2 * time.Minute)
	if _, err := svc.IssueTicket(context.Background(), "PELAYANAN UMUM"); err != nil {
		t.Fatalf("IssueTicket: %v", err)
	}

	if len(days) != 2 || days[0] != "2026-08-31" || days[1] != "2026-09-01" {
		t.Fatalf("allocator days=%v, want [2026-08-31 2026-09-01]", days)
	}
}

func TestIssueTicketDuplicateNumberIsFatal(t *testing.T) {
	tickets := &fakeTickets{
		createFn: func(ctx context.Context, queueNumber, serviceType string, priority int, now time.Time) (*domain.Ticket, error) {
			return nil, repository.ErrConflict
		},
	}
	svc := New(tickets, &fakeCounters{}, testCatalog(), nil, nil, nil)

	_, err := svc.IssueTicket(context.Background(), "PELAYANAN UMUM")
	if !errors.Is(err, repository.ErrConflict) {
		t.Fatalf("err=%v, want wrapped repository.ErrConflict", err)
	}
}

func TestCallNextNoWaiting(t *testing.T) {
	svc := New(&fakeTickets{}, &fakeCounters{}, testCatalog(), nil, nil, nil)

	_, err := svc.CallNext(context.Background(), "PELAYANAN UMUM")
	if !errors.Is(err, ErrNoWaiting) {
		t.Fatalf("err=%v, want ErrNoWaiting", err)
	}
}

func TestCallNextInvalidService(t *testing.T) {
	svc := New(&fakeTickets{}, &fakeCounters{}, testCatalog(), nil, nil, nil)

	_, err := svc.CallNext(context.Background(), "NOPE")
	if !errors.Is(err, ErrInvalidService) {
		t.Fatalf("err=%v, want ErrInvalidService", err)
	}
}

func TestCallNextReturnsTicket(t *testing.T) {
	tickets := &fakeTickets{
		callNextFn: func(ctx context.Context, serviceType string, now time.Time) (*domain.Ticket, error) {
			return &domain.Ticket{QueueNumber: "PU-001", ServiceType: serviceType, Status: domain.StatusCalled}, nil
		},
	}
	svc := New(tickets, &fakeCounters{}, testCatalog(), nil, nil, nil)

	ticket, err := svc.CallNext(context.Background(), "PELAYANAN UMUM")
	if err != nil {
		t.Fatalf("CallNext: %v", err)
	}
	if ticket.QueueNumber != "PU-001" || ticket.Status != domain.StatusCalled {
		t.Fatalf("unexpected ticket: %+v", ticket)
	}
}

func TestCompleteUnknownTicket(t *testing.T) {
	svc := New(&fakeTickets{}, &fakeCounters{}, testCatalog(), nil, nil, nil)

	err := svc.Complete(context.Background(), "PU-404")
	if !errors.Is(err, ErrTicketNotFound) {
		t.Fatalf("err=%v, want ErrTicketNotFound", err)
	}
}

func TestCompleteRequiresCalledStatus(t *testing.T) {
	tickets := &fakeTickets{
		getFn: func(ctx context.Context, queueNumber string) (*domain.Ticket, error) {
			return &domain.Ticket{QueueNumber: queueNumber, Status: domain.StatusWaiting}, nil
		},
		transitionFn: func(ctx context.Context, queueNumber string, from, to domain.TicketStatus, now time.Time) error {
			t.Fatal("transition must not run for an illegal move")
			return nil
		},
	}
	svc := New(tickets, &fakeCounters{}, testCatalog(), nil, nil, nil)

	err := svc.Complete(context.Background(), "PU-001")
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("err=%v, want ErrInvalidTransition", err)
	}
}

func TestCompleteAndSkipFromCalled(t *testing.T) {
	for _, tt := range []struct {
		name   string
		action func(svc *Service, ctx context.Context) error
		want   domain.TicketStatus
	}{
		{"complete", func(svc *Service, ctx context.Context) error { return svc.Complete(ctx, "PU-001") }, domain.StatusCompleted},
		{"skip", func(svc *Service, ctx context.Context) error { return svc.Skip(ctx, "PU-001") }, domain.StatusSkipped},
	} {
		t.Run(tt.name, func(t *testing.T) {
			var gotFrom, gotTo domain.TicketStatus
			tickets := &fakeTickets{
				getFn: func(ctx context.Context, queueNumber string) (*domain.Ticket, error) {
					return &domain.Ticket{QueueNumber: queueNumber, ServiceType: "PELAYANAN UMUM", Status: domain.StatusCalled}, nil
				},
				transitionFn: func(ctx context.Context, queueNumber string, from, to domain.TicketStatus, now time.Time) error {
					gotFrom = from
					gotTo = to
					return nil
				},
			}
			svc := New(tickets, &fakeCounters{}, testCatalog(), nil, nil, nil)

			if err := tt.action(svc, context.Background()); err != nil {
				t.Fatalf("action: %v", err)
			}
			if gotFrom != domain.StatusCalled || gotTo != tt.want {
				t.Fatalf("transitioned %q -> %q, want called -> %q", gotFrom, gotTo, tt.want)
			}
		})
	}
}

func TestCompleteLosesRaceToConcurrentTransition(t *testing.T) {
	// Get sees a called ticket, but by the time the update runs
	// another operator has already finished it: the conditional
	// update matches no row.
	tickets := &fakeTickets{
		getFn: func(ctx context.Context, queueNumber string) (*domain.Ticket, error) {
			return &domain.Ticket{QueueNumber: queueNumber, Status: domain.StatusCalled}, nil
		},
		transitionFn: func(ctx context.Context, queueNumber string, from, to domain.TicketStatus, now time.Time) error {
			return repository.ErrNotFound
		},
	}
	svc := New(tickets, &fakeCounters{}, testCatalog(), nil, nil, nil)

	err := svc.Complete(context.Background(), "PU-001")
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("err=%v, want ErrInvalidTransition", err)
	}
}

func TestSkipTerminalTicketRejected(t *testing.T) {
	tickets := &fakeTickets{
		getFn: func(ctx context.Context, queueNumber string) (*domain.Ticket, error) {
			return &domain.Ticket{QueueNumber: queueNumber, Status: domain.StatusCompleted}, nil
		},
	}
	svc := New(tickets, &fakeCounters{}, testCatalog(), nil, nil, nil)

	err := svc.Skip(context.Background(), "PU-001")
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("err=%v, want ErrInvalidTransition", err)
	}
}
