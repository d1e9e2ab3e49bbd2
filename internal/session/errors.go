package session

import "errors"

var (
	ErrNotFound      = errors.New("session not found or expired")
	ErrConfirmLocked = errors.New("a confirmation is already in progress for this session")
)
