package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrUnknownJob        = errors.New("unknown job")
	ErrAlreadyOwned      = errors.New("worker already owned")
	ErrInsufficientFunds = errors.New("not enough data")
	ErrInvalidState      = errors.New("invalid state")
	ErrMaxLevel          = errors.New("job is at max level")
	ErrNotPersisted      = errors.New("applied but not saved")
)

// ErrorKind is a coarse-grained categorization for infrastructure errors.
type ErrorKind string

const (
	KindNotFound  ErrorKind = "not_found"
	KindInvalid   ErrorKind = "invalid"
	KindExecution ErrorKind = "execution"
)

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op   string
	Kind ErrorKind
	Path string
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind classifies err without depending on the package that produced it.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}
