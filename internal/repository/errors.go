package repository

import (
	"fmt"

	"github.com/deppfellow/go-qa/internal/validation"
)

// ErrorKind is the closed set of failure categories a repository reports.
type ErrorKind int

const (
	// KindOther is any storage failure that is not the caller's fault:
	// connectivity, timeouts, schema mismatch, row decoding.
	KindOther ErrorKind = iota

	// KindInvalidIdentifier means a caller-supplied identifier was malformed,
	// or, when creating an answer, named a question that does not exist.
	KindInvalidIdentifier
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidIdentifier:
		return "invalid_identifier"
	default:
		return "other"
	}
}

// Error is returned by every repository operation that fails.
//
// Message is safe to show to API clients for KindInvalidIdentifier. Err is
// the underlying cause and is meant for logs only.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// Sentinels for errors.Is. They match any *Error of the same kind.
var (
	ErrInvalidIdentifier = &Error{Kind: KindInvalidIdentifier}
	ErrOther             = &Error{Kind: KindOther}
)

func (e *Error) Error() string {
	if e.Err != nil && e.Message == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	if e.Message == "" {
		return e.Kind.String()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is a *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// invalidIdentifier builds a KindInvalidIdentifier error.
func invalidIdentifier(message string, cause error) *Error {
	return &Error{Kind: KindInvalidIdentifier, Message: message, Err: cause}
}

// other wraps an unclassified storage failure.
func other(op string, err error) *Error {
	return &Error{
		Kind:    KindOther,
		Message: fmt.Sprintf("%s: %v", op, err),
		Err:     err,
	}
}

// parseIdentifier validates a caller-supplied identifier. field names it in
// the error message, e.g. "question_uuid".
func parseIdentifier(field, raw string) (string, error) {
	id, err := validation.ParseIdentifier(raw)
	if err != nil {
		return "", invalidIdentifier(fmt.Sprintf("Invalid UUID format for '%s': %v", field, err), err)
	}
	return id.String(), nil
}
