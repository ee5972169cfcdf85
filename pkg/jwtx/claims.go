package jwtx

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultSessionLength is how long an issued session token stays valid.
// Tokens are never refreshed; a new one is issued instead.
const DefaultSessionLength = 14 * 24 * time.Hour

// Claims are the session-token claims. Only "sub" (the user id) and "exp"
// are set; the subject is the single fact the rest of the service trusts.
type Claims struct {
	jwt.RegisteredClaims
}

// NewSessionClaims builds claims for subject expiring ttl after now.
func NewSessionClaims(subject uuid.UUID, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}

// Identity parses the subject back into a user id.
func (c *Claims) Identity() (uuid.UUID, error) {
	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: subject is not a uuid", ErrMalformed)
	}
	return id, nil
}

// ValidateExpiry reports ErrExpired unless exp is strictly after now.
func (c *Claims) ValidateExpiry(now time.Time) error {
	if c.ExpiresAt == nil {
		return fmt.Errorf("%w: missing exp", ErrMalformed)
	}
	if !now.Before(c.ExpiresAt.Time) {
		return ErrExpired
	}
	return nil
}
