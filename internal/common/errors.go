package common

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrInvalidURL     = errors.New("invalid URL")
	ErrInvalidPageID  = errors.New("invalid page id")
	ErrInvalidConfig  = errors.New("invalid configuration")
	ErrRequestTimeout = errors.New("request timed out")
)

// Kind classifies a failure by the layer that produced it.
type Kind string

const (
	KindProtocol   Kind = "protocol"
	KindValidation Kind = "validation"
	KindTransport  Kind = "transport"
	KindStatus     Kind = "status"
	KindInternal   Kind = "internal"
)

type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func NewError(kind Kind, message string, cause error) *Error {
	return &Error{
		Kind:    kind,
		Message: message,
		Cause:   cause,
	}
}

func Errorf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// KindOf reports the kind of the outermost *Error in err's chain, or
// KindInternal when there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func IsTransport(err error) bool {
	return KindOf(err) == KindTransport
}

func IsStatus(err error) bool {
	return KindOf(err) == KindStatus
}
