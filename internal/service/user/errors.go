package user

import "errors"

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrInvalidRole   = errors.New("invalid role")
	ErrEmailConflict = errors.New("email address is already in use")
)
