package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("email or password is incorrect")
	ErrUnknownRole        = errors.New("account role is not supported by this application")
	ErrNoToken            = errors.New("login response carried no token")
	ErrSessionNotFound    = errors.New("session not found or expired")
)
