package repository

import "errors"

var (
	ErrNotFound = errors.New("not found")
	// ErrConflict covers unique violations. On ticket creation it
	// means a queue number was issued twice, which indicates an
	// allocator bug and must surface as a hard failure.
	ErrConflict  = errors.New("conflict")
	ErrNoWaiting = errors.New("no waiting ticket")
)
