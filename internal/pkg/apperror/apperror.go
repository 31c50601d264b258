package apperror

import "errors"

// Kind classifies an error for the transport layer.
type Kind string

const (
	KindNotFound              Kind = "NOT_FOUND"
	KindConflict              Kind = "CONFLICT"
	KindInvalidInput          Kind = "INVALID_INPUT"
	KindBusinessRuleViolation Kind = "BUSINESS_RULE_VIOLATION"
	KindInternal              Kind = "INTERNAL_FAILURE"
)

// Error is a domain error with a kind and a message safe to show to callers.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// New creates a sentinel error. Compare with errors.Is.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Classifier is implemented by error types from other packages that know their kind.
type Classifier interface {
	ErrorKind() Kind
}

// KindOf returns the kind of the first *Error or Classifier in err's chain.
// Anything unclassified is an internal failure.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	var classified Classifier
	if errors.As(err, &classified) {
		return classified.ErrorKind()
	}
	return KindInternal
}
