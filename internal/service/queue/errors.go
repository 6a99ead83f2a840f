package queue

import "errors"

var (
	ErrInvalidService    = errors.New("invalid service type")
	ErrNoWaiting         = errors.New("no waiting ticket")
	ErrTicketNotFound    = errors.New("ticket not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)
