// Package booking implements the reservation lifecycle and availability
// engine: the status state machine, the interval-overlap resolvers for
// tables and game copies, the conflict-safe creation protocol and the
// bridge from a scheduled reservation to a live table session.
//
// Every exported operation returns its data together with a *Error whose
// Kind classifies the failure.  No operation panics across this boundary;
// unexpected storage failures are logged and surfaced as KindUnknown with
// a generic message.
package booking

import (
	"fmt"

	"github.com/ericfaux/gamehost-sub002/internal/logger"
)

// ErrorKind classifies an operation failure.  Handlers map kinds onto
// HTTP status codes and echo the kind verbatim in the response body.
type ErrorKind string

const (
	KindValidation        ErrorKind = "Validation"
	KindNotFound          ErrorKind = "NotFound"
	KindConflict          ErrorKind = "Conflict"
	KindCapacity          ErrorKind = "Capacity"
	KindInvalidTransition ErrorKind = "InvalidTransition"
	KindTooEarly          ErrorKind = "TooEarly"
	KindUnauthorized      ErrorKind = "Unauthorized"
	KindUnknown           ErrorKind = "Unknown"
)

// Error is the single failure type crossing the engine boundary.  The
// message is always safe to show to a caller.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string { return e.Message }

func errf(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// unknown logs the underlying error server-side and returns a generic
// Unknown failure that leaks no internal detail.
func unknown(op string, err error) *Error {
	logger.Get().Error("booking operation failed", "op", op, "error", err)
	return &Error{Kind: KindUnknown, Message: "An unexpected error occurred. Please try again."}
}
