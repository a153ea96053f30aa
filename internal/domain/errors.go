package domain

import (
	"errors"
	"fmt"
)

// FailureKind classifies why a distance lookup or batch resolution failed.
type FailureKind int

const (
	// FailureUnexpected covers faults not attributable to any other kind.
	FailureUnexpected FailureKind = iota
	// FailureCatalogLoad: catalog missing, unreadable or malformed.
	FailureCatalogLoad
	// FailureCatalogKeyMissing: a listed facility is absent from the catalog.
	FailureCatalogKeyMissing
	// FailureElement: the routing service reported a non-OK element status.
	FailureElement
	// FailureMatrix: the routing service reported a non-OK request status.
	FailureMatrix
	// FailureTransport: client, authentication or network error.
	FailureTransport
)

func (k FailureKind) String() string {
	switch k {
	case FailureCatalogLoad:
		return "catalog_load"
	case FailureCatalogKeyMissing:
		return "catalog_key_missing"
	case FailureElement:
		return "element_failure"
	case FailureMatrix:
		return "matrix_failure"
	case FailureTransport:
		return "transport_error"
	default:
		return "unexpected_error"
	}
}

// ResolveError is the failure signal returned by lookups and batch resolution.
// Status holds the routing service status for element and matrix failures.
// Index is the position of the failing destination within a batched request.
type ResolveError struct {
	Kind     FailureKind
	Facility string
	Status   string
	Index    int
	Err      error
}

func (e *ResolveError) Error() string {
	msg := e.Kind.String()
	if e.Facility != "" {
		msg += fmt.Sprintf(" facility=%q", e.Facility)
	}
	if e.Status != "" {
		msg += " status=" + e.Status
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ResolveError) Unwrap() error {
	return e.Err
}

// KindOf returns the failure kind carried by err, or FailureUnexpected
// when err holds no ResolveError.
func KindOf(err error) FailureKind {
	var re *ResolveError
	if errors.As(err, &re) {
		return re.Kind
	}
	return FailureUnexpected
}

// IsKind reports whether err carries a ResolveError of the given kind.
func IsKind(err error, kind FailureKind) bool {
	var re *ResolveError
	if errors.As(err, &re) {
		return re.Kind == kind
	}
	return false
}
