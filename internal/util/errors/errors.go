package errors

// Error codes shared by the services and their HTTP transports.
// A transport maps the code of an error to a status code, see Code.

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned when a request carries missing or malformed input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnknown is returned when the requested resource does not exist.
	ErrUnknown = errors.New("unknown resource")
	// ErrInternal marks faults nobody anticipated.
	ErrInternal = errors.New("internal error")
)

// Error carries a user facing message together with one of the codes above.
type Error struct {
	orig error
	msg  string
	code error
}

func (e *Error) Error() string {
	return e.msg
}

func (e *Error) Unwrap() error {
	return e.orig
}

// Is reports whether target is the code of e, so errors.Is(err, ErrInvalidArgument) works.
func (e *Error) Is(target error) bool {
	return e.code == target
}

func (e *Error) Code() error {
	return e.code
}

// WrapErrorf builds a coded error. orig may be nil.
func WrapErrorf(orig error, code error, format string, a ...interface{}) error {
	return &Error{
		orig: orig,
		msg:  fmt.Sprintf(format, a...),
		code: code,
	}
}

// InvalidArgument is shorthand for a coded ErrInvalidArgument without a cause.
func InvalidArgument(format string, a ...interface{}) error {
	return WrapErrorf(nil, ErrInvalidArgument, format, a...)
}

// Code returns the code attached to err, or ErrInternal when there is none.
func Code(err error) error {
	var cerr *Error
	if errors.As(err, &cerr) {
		return cerr.code
	}
	switch {
	case errors.Is(err, ErrInvalidArgument):
		return ErrInvalidArgument
	case errors.Is(err, ErrUnknown):
		return ErrUnknown
	}
	return ErrInternal
}
