package alarms

import (
	"errors"
	"fmt"
)

var (
	// ErrCancelled is returned when the user declines a confirmation.
	ErrCancelled = errors.New("cancelled")
	// ErrBusy is returned when a request for the same alarm is still in flight.
	ErrBusy = errors.New("a request for this alarm is already in progress")
)

// ValidationError is a form error caught before any network call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// StaleReferenceError means the alarm being edited is not in the store even
// after a reload.
type StaleReferenceError struct {
	ID int
}

func (e *StaleReferenceError) Error() string {
	return fmt.Sprintf("alarm #%d not found, please refresh", e.ID)
}

// ReloadError means the mutation went through but the list could not be
// refreshed afterwards. The store still holds the previous snapshot.
type ReloadError struct {
	Op  string
	Err error
}

func (e *ReloadError) Error() string {
	return fmt.Sprintf("alarm %s but reload failed: %v", e.Op, e.Err)
}

func (e *ReloadError) Unwrap() error { return e.Err }
