package email

import (
	"errors"
	"fmt"
)

var (
	ErrDisabled       = errors.New("email is disabled")
	ErrInvalidMessage = errors.New("invalid email message")
)

func invalid(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidMessage, reason)
}

type SendError struct {
	Err error
}

func (e *SendError) Error() string { return fmt.Sprintf("email send failed (smtp): %v", e.Err) }
func (e *SendError) Unwrap() error { return e.Err }
