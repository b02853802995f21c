package kintai

import "errors"

var (
	// ErrAlreadyOpen rejects a clock-in while a session is still open.
	ErrAlreadyOpen = errors.New("already clocked in")
	// ErrAlreadyClosed rejects a clock-out for a record that already has one.
	ErrAlreadyClosed = errors.New("already clocked out")
	// ErrNotFound means no record with the given id exists.
	ErrNotFound = errors.New("record not found")
	// ErrStoreUnavailable wraps read/write failures of the backing store.
	// It is retryable by the caller; the engine itself does not retry.
	ErrStoreUnavailable = errors.New("record store unavailable")
)
