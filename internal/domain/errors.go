package domain

import (
	"errors"
	"fmt"
)

// PlanErrorKind classifies fatal planning failures.
type PlanErrorKind string

const (
	// ErrKindInput: a required request field is missing or malformed.
	// Reported before any network call is issued.
	ErrKindInput PlanErrorKind = "input"
	// ErrKindNotFound: a geocoding query or flight lookup returned zero
	// results. Subject carries the offending query text.
	ErrKindNotFound PlanErrorKind = "not_found"
	// ErrKindNoRoute: a routing call returned no route between two points.
	ErrKindNoRoute PlanErrorKind = "no_route"
	// ErrKindProvider: any other provider-side failure (transport error,
	// malformed response).
	ErrKindProvider PlanErrorKind = "provider"
)

// PlanningError is the single fatal error type surfaced by a planning run.
type PlanningError struct {
	Kind    PlanErrorKind
	Subject string
	Err     error
}

func (e *PlanningError) Error() string {
	switch {
	case e.Err != nil && e.Subject != "":
		return fmt.Sprintf("%s: %q: %v", e.Kind, e.Subject, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	case e.Subject != "":
		return fmt.Sprintf("%s: %q", e.Kind, e.Subject)
	}
	return string(e.Kind)
}

func (e *PlanningError) Unwrap() error { return e.Err }

// NewInputError reports a missing or invalid request field.
func NewInputError(msg string) *PlanningError {
	return &PlanningError{Kind: ErrKindInput, Err: errors.New(msg)}
}

// NewNotFound reports a query that resolved to zero results.
func NewNotFound(subject string) *PlanningError {
	return &PlanningError{Kind: ErrKindNotFound, Subject: subject}
}

// NewNoRoute reports a routing call that returned no route.
func NewNoRoute(from, to string) *PlanningError {
	return &PlanningError{
		Kind:    ErrKindNoRoute,
		Subject: fmt.Sprintf("%s -> %s", from, to),
	}
}

// NewProviderError wraps an unclassified provider failure.
func NewProviderError(subject string, err error) *PlanningError {
	return &PlanningError{Kind: ErrKindProvider, Subject: subject, Err: err}
}

// AsPlanningError extracts a PlanningError from an error chain, wrapping
// unclassified errors as provider failures so callers always see the taxonomy.
func AsPlanningError(err error) *PlanningError {
	var pe *PlanningError
	if errors.As(err, &pe) {
		return pe
	}
	return &PlanningError{Kind: ErrKindProvider, Err: err}
}

// ErrOptimizationUnavailable marks a failed or unsupported optimization call.
// It is absorbed by the engine and never surfaced as a run failure.
var ErrOptimizationUnavailable = errors.New("optimization unavailable")
