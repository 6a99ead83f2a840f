package domain

import (
	"testing"
	"time"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from  TicketStatus
		to    TicketStatus
		valid bool
	}{
		{StatusWaiting, StatusCalled, true},
		{StatusWaiting, StatusCompleted, false},
		{StatusWaiting, StatusSkipped, false},
		{StatusCalled, StatusCompleted, true},
		{StatusCalled, StatusSkipped, true},
		{StatusCalled, StatusCalled, false},
		{StatusCompleted, StatusCalled, false},
		{StatusCompleted, StatusSkipped, false},
		{StatusSkipped, StatusCalled, false},
		{StatusSkipped, StatusCompleted, false},
		{StatusCompleted, StatusWaiting, false},
	}

	for _, tt := range cases {
		if got := CanTransition(tt.from, tt.to); got != tt.valid {
			t.Fatalf("CanTransition(%q, %q)=%v, want %v", tt.from, tt.to, got, tt.valid)
		}
	}
}

func TestDayKey(t *testing.T) {
	at := time.Date(2026, 8, 31, 23, 59, 0, 0, time.Local)
	if got := DayKey(at); got != "2026-08-31" {
		t.Fatalf("DayKey=%q, want 2026-08-31", got)
	}
	if got := DayKey(at.Add(2 * time.Minute)); got != "2026-09-01" {
		t.Fatalf("DayKey across midnight=%q, want 2026-09-01", got)
	}
}
