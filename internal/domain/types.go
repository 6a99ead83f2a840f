package domain

import (
	"time"
)

type TicketStatus string

const (
	StatusWaiting   TicketStatus = "waiting"
	StatusCalled    TicketStatus = "called"
	StatusCompleted TicketStatus = "completed"
	StatusSkipped   TicketStatus = "skipped"
)

// DefaultPriority is persisted on every ticket; ordering ignores it.
const DefaultPriority = 3

type Ticket struct {
	ID          int64        `json:"id"`
	QueueNumber string       `json:"queue_number"`
	ServiceType string       `json:"service_type"`
	Status      TicketStatus `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	CalledAt    *time.Time   `json:"called_at,omitempty"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`
	Priority    int          `json:"priority"`
	Date        string       `json:"date"`
}

type QueueStats struct {
	Waiting        int64 `json:"waiting"`
	CompletedToday int64 `json:"completed_today"`
	SkippedToday   int64 `json:"skipped_today"`
}

type ServiceCounter struct {
	ServiceType string
	Date        string
	LastNumber  int64
}

// dayLayout is the (service, day) bucket key format. The allocator
// and the stats queries both use the process-local wall clock, same
// as the system this one replaces.
const dayLayout = "2006-01-02"

func DayKey(t time.Time) string {
	return t.Format(dayLayout)
}
