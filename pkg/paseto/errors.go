package pasetotoken

import (
	"errors"
	"fmt"
)

var ErrInvalidToken = errors.New("invalid token")

type ErrConfig struct{ Msg string }

func (e ErrConfig) Error() string { return "paseto config error: " + e.Msg }

func invalid(err error) error {
	return fmt.Errorf("%w: %v", ErrInvalidToken, err)
}
