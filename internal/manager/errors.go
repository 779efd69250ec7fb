package manager

import (
	"errors"

	"solrock/internal/validate"
)

// Kind classifies why an operation had no effect.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindReferenceNotFound
	KindNotFound
	KindMalformedID
	KindIO
	KindCancelled
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindReferenceNotFound:
		return "reference_not_found"
	case KindNotFound:
		return "not_found"
	case KindMalformedID:
		return "malformed_id"
	case KindIO:
		return "io"
	case KindCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Error is returned by every manager operation that did not take effect.
// Msg is the text already shown to the operator.
type Error struct {
	Kind  Kind
	Msg   string
	Field string // set for validation failures
	Err   error
}

func (e *Error) Error() string {
	msg := e.Msg
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind of err, or 0 when err is not a manager error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func invalid(ef *validate.ErrField) *Error {
	return &Error{Kind: KindValidation, Msg: ef.Msg, Field: ef.Field}
}

func invalidMsg(field, msg string) *Error {
	return &Error{Kind: KindValidation, Msg: msg, Field: field}
}

func ioFailure(err error) *Error {
	return &Error{Kind: KindIO, Msg: "i/o", Err: err}
}
