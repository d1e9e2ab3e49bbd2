package pasetotoken

import (
	"time"

	"github.com/google/uuid"
)

// Claims is what the web tier puts in its own access tokens. UserID and
// Role mirror the upstream user; SessionID points at the server-side
// session holding the upstream bearer token.
type Claims struct {
	UserID    string
	Role      string
	SessionID uuid.UUID

	Issuer    string
	Audience  string
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

func (c *Claims) IsExpired() bool {
	return time.Now().After(c.ExpiresAt)
}
