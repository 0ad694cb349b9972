package booking

import "errors"

// ErrorKind classifies a workflow failure so the HTTP boundary can map it
// to a status code without string matching.
type ErrorKind int

const (
	// KindValidation means the input shape or values were bad.
	KindValidation ErrorKind = iota
	// KindNotFound means a referenced entity does not exist.
	KindNotFound
	// KindAuthorization means the caller lacks the required privilege.
	KindAuthorization
	// KindPersistence means the underlying store operation failed.
	KindPersistence
)

// Error is a typed workflow failure.
type Error struct {
	Kind    ErrorKind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// NewValidationError reports malformed or missing input.
func NewValidationError(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// NewNotFoundError reports an absent referenced entity.
func NewNotFoundError(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// NewAuthorizationError reports insufficient privilege.
func NewAuthorizationError(msg string) *Error {
	return &Error{Kind: KindAuthorization, Message: msg}
}

// NewPersistenceError wraps a store failure. The cause is kept for logs;
// Message stays safe to show to clients.
func NewPersistenceError(msg string, cause error) *Error {
	return &Error{Kind: KindPersistence, Message: msg, cause: cause}
}

// KindOf extracts the kind from err. The second return is false when err is
// not a workflow error.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// MessageOf returns the client-safe message of a workflow error, or a
// generic fallback for unclassified errors.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal error"
}
