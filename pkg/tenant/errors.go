package tenant

import (
	"errors"
	"fmt"
)

// Kind separates errors the caller can correct from infrastructure
// failures the caller can only retry or report.
type Kind string

const (
	// KindFunctional marks expected, caller-correctable errors. They
	// propagate unchanged and map to client-class failures at the edge.
	KindFunctional Kind = "functional"

	// KindTechnical marks infrastructure failures. They are logged with
	// full context where they occur and surface as a generic server-class
	// failure without leaking internals.
	KindTechnical Kind = "technical"
)

// Stable machine-readable error codes shared across services.
const (
	CodeTenantIDMissing = "TENANT_ID_MISSING"
	CodeTenantNotFound  = "TENANT_NOT_FOUND"
	CodeTechnical       = "TECHNICAL_FAILURE"
)

// Error is the error type returned by this package. Two errors match under
// errors.Is when their codes are equal, so callers branch on the exported
// sentinels regardless of the wrapped detail.
type Error struct {
	Code    string
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// Is matches by code so wrapped instances compare equal to the sentinels.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

var (
	// ErrMissingTenantID is returned when no tenant identifier can be
	// resolved for the current call.
	ErrMissingTenantID = &Error{
		Code:    CodeTenantIDMissing,
		Kind:    KindFunctional,
		Message: "tenant identifier could not be resolved",
	}

	// ErrTenantNotFound is returned when the owning service has no tenant
	// for the resolved identifier.
	ErrTenantNotFound = &Error{
		Code:    CodeTenantNotFound,
		Kind:    KindFunctional,
		Message: "tenant not found",
	}

	// ErrTechnical is the generic technical failure sentinel.
	ErrTechnical = &Error{
		Code:    CodeTechnical,
		Kind:    KindTechnical,
		Message: "technical failure",
	}

	// ErrNoTenantInContext is returned when a call path requires a
	// resolved tenant but none was attached to the context.
	ErrNoTenantInContext = &Error{
		Code:    CodeTenantIDMissing,
		Kind:    KindFunctional,
		Message: "no tenant in context",
	}
)

// NotFound builds a tenant-not-found error naming the identifier.
func NotFound(identifier string) *Error {
	return &Error{
		Code:    CodeTenantNotFound,
		Kind:    KindFunctional,
		Message: fmt.Sprintf("tenant %q not found", identifier),
	}
}

// Technical wraps an infrastructure failure into the generic technical
// kind.
func Technical(msg string, cause error) *Error {
	return &Error{
		Code:    CodeTechnical,
		Kind:    KindTechnical,
		Message: msg,
		cause:   cause,
	}
}

// IsFunctional reports whether err carries a functional tenant error.
func IsFunctional(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindFunctional
}
