package jwtx

import (
	"time"

	"github.com/aussiebroadwan/posts/pkg/secretx"
	"github.com/google/uuid"
)

// Sessions issues and verifies bearer session tokens. Both operations are
// pure CPU work over in-memory data and are safe to call inline from
// request handlers.
type Sessions struct {
	secrets  *secretx.Provider
	signer   Signer
	verifier Verifier
	ttl      time.Duration
}

// NewSessions wires an HS384 signer and verifier to the provider.
func NewSessions(p *secretx.Provider) *Sessions {
	return &Sessions{
		secrets:  p,
		signer:   NewSignerHS384(p),
		verifier: NewVerifierHS384(p),
		ttl:      DefaultSessionLength,
	}
}

// Issue signs a fresh token for subject expiring DefaultSessionLength from
// now. Signing over well-formed claims with a valid secret does not fail;
// the error return only exists so an encoding bug surfaces as an internal
// error rather than a crash.
func (s *Sessions) Issue(subject uuid.UUID) (string, error) {
	return s.signer.Sign(NewSessionClaims(subject, s.ttl, s.secrets.Now()))
}

// Verify returns the subject of a valid, unexpired token.
func (s *Sessions) Verify(token string) (uuid.UUID, error) {
	claims, err := s.verifier.Verify(token)
	if err != nil {
		return uuid.Nil, err
	}
	return claims.Identity()
}
