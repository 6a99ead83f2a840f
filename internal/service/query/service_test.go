package query

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/kirinyoku/loket-go/internal/domain"
)

type fakeReader struct {
	listFn  func(ctx context.Context, status domain.TicketStatus, serviceType string) ([]domain.Ticket, error)
	statsFn func(ctx context.Context, day string) (*domain.QueueStats, error)
}

func (f *fakeReader) List(ctx context.Context, status domain.TicketStatus, serviceType string) ([]domain.Ticket, error) {
	if f.listFn == nil {
		return nil, nil
	}
	return f.listFn(ctx, status, serviceType)
}

func (f *fakeReader) Stats(ctx context.Context, day string) (*domain.QueueStats, error) {
	if f.statsFn == nil {
		return &domain.QueueStats{}, nil
	}
	return f.statsFn(ctx, day)
}

func TestServices(t *testing.T) {
	catalog := domain.NewCatalog([]string{"PELAYANAN UMUM", "AKTA KELAHIRAN"})
	svc := New(&fakeReader{}, catalog, nil, nil, Config{})

	want := []string{"PELAYANAN UMUM", "AKTA KELAHIRAN"}
	if got := svc.Services(context.Background()); !reflect.DeepEqual(got, want) {
		t.Fatalf("Services()=%v, want %v", got, want)
	}
}

func TestListQueuesPassesFilters(t *testing.T) {
	var gotStatus domain.TicketStatus
	var gotService string
	reader := &fakeReader{
		listFn: func(ctx context.Context, status domain.TicketStatus, serviceType string) ([]domain.Ticket, error) {
			gotStatus = status
			gotService = serviceType
			return []domain.Ticket{{QueueNumber: "PU-001"}}, nil
		},
	}
	svc := New(reader, domain.NewCatalog([]string{"PELAYANAN UMUM"}), nil, nil, Config{})

	out, err := svc.ListQueues(context.Background(), domain.StatusWaiting, "PELAYANAN UMUM")
	if err != nil {
		t.Fatalf("ListQueues: %v", err)
	}
	if gotStatus != domain.StatusWaiting || gotService != "PELAYANAN UMUM" {
		t.Fatalf("filters not passed through: status=%q service=%q", gotStatus, gotService)
	}
	if len(out) != 1 || out[0].QueueNumber != "PU-001" {
		t.Fatalf("unexpected listing: %+v", out)
	}
}

func TestCalledQueuesFiltersCalled(t *testing.T) {
	var gotStatus domain.TicketStatus
	reader := &fakeReader{
		listFn: func(ctx context.Context, status domain.TicketStatus, serviceType string) ([]domain.Ticket, error) {
			gotStatus = status
			return []domain.Ticket{{QueueNumber: "PU-003", Status: status}}, nil
		},
	}
	svc := New(reader, domain.NewCatalog([]string{"PELAYANAN UMUM"}), nil, nil, Config{})

	out, err := svc.CalledQueues(context.Background())
	if err != nil {
		t.Fatalf("CalledQueues: %v", err)
	}
	if gotStatus != domain.StatusCalled {
		t.Fatalf("listed status %q, want called", gotStatus)
	}
	if len(out) != 1 || out[0].QueueNumber != "PU-003" {
		t.Fatalf("unexpected listing: %+v", out)
	}
}

func TestStatsUsesCurrentDay(t *testing.T) {
	day := time.Date(2026, 8, 31, 12, 0, 0, 0, time.Local)

	var gotDay string
	reader := &fakeReader{
		statsFn: func(ctx context.Context, d string) (*domain.QueueStats, error) {
			gotDay = d
			return &domain.QueueStats{Waiting: 4, CompletedToday: 2, SkippedToday: 1}, nil
		},
	}
	svc := New(reader, domain.NewCatalog([]string{"PELAYANAN UMUM"}), nil, func() time.Time { return day }, Config{})

	st, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if gotDay != "2026-08-31" {
		t.Fatalf("stats day=%q, want 2026-08-31", gotDay)
	}
	if st.Waiting != 4 || st.CompletedToday != 2 || st.SkippedToday != 1 {
		t.Fatalf("unexpected stats: %+v", st)
	}
}
