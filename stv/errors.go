package stv

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Callers use errors.Is to distinguish them;
// MessageError wraps one of these with a human-readable description.
var (
	ErrEmptyBallots                 = errors.New("no ballots given")
	ErrInvalidSeats                 = errors.New("invalid number of seats")
	ErrMalformedBallot              = errors.New("ballot has an empty preference list")
	ErrUnknownConstituencyReference = errors.New("constituency map references an unknown constituency")
	ErrQuotaCallbackFailure         = errors.New("quota callback failed")
)

// MessageError pairs a sentinel error with a human-readable description.
// errors.Is(err, ErrInvalidSeats) still works since Unwrap returns the
// sentinel.
type MessageError struct {
	Err error
	Msg string
}

// NewMessageError builds a MessageError with a plain message.
func NewMessageError(err error, msg string) MessageError {
	return MessageError{Err: err, Msg: msg}
}

// MessageErrorf builds a MessageError with a formatted message.
func MessageErrorf(err error, format string, a ...any) MessageError {
	return MessageError{Err: err, Msg: fmt.Sprintf(format, a...)}
}

func (e MessageError) Error() string {
	return e.Msg
}

func (e MessageError) Unwrap() error {
	return e.Err
}
