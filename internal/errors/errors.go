// Package errors defines the domain error taxonomy shared by the booking
// services and mapped to HTTP statuses in the handlers. Conflicts are
// business facts, not transient faults: none of these are retryable.
package errors

import (
	"fmt"
	"strings"
)

// ValidationError is malformed or missing input, always detected before any
// write.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func Validation(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError is a dangling reference. Resource names what was looked up
// so callers can tell "schedule not found" from "attendee not in schedule".
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

func NotFound(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ConflictError means the requested resource/time window overlaps an
// existing reservation. Resources lists every conflicting booth or location
// and Window the requested range, so the caller can tell the user exactly
// what to change.
type ConflictError struct {
	Kind      string
	Resources []string
	Window    string
}

func (e *ConflictError) Error() string {
	if len(e.Resources) == 0 {
		return fmt.Sprintf("%s already booked for %s", e.Kind, e.Window)
	}
	return fmt.Sprintf("%s already booked for %s: %s",
		e.Kind, e.Window, strings.Join(e.Resources, ", "))
}

func Conflict(kind, window string, resources ...string) *ConflictError {
	return &ConflictError{Kind: kind, Window: window, Resources: resources}
}

// DependencyError blocks a deletion while dependent records still exist.
type DependencyError struct {
	Message string
}

func (e *DependencyError) Error() string {
	return e.Message
}

func Dependency(format string, args ...any) *DependencyError {
	return &DependencyError{Message: fmt.Sprintf(format, args...)}
}

// ImmutableStateError blocks a mutation of fields that froze once
// downstream bookings attached (event dates/booths after schedules or
// registrations exist).
type ImmutableStateError struct {
	Message string
}

func (e *ImmutableStateError) Error() string {
	return e.Message
}

func Immutable(format string, args ...any) *ImmutableStateError {
	return &ImmutableStateError{Message: fmt.Sprintf(format, args...)}
}
