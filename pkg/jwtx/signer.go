package jwtx

import (
	"fmt"

	"github.com/aussiebroadwan/posts/pkg/secretx"
	"github.com/golang-jwt/jwt/v5"
)

// Signer is our interface for anything that can sign session tokens.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
}

// HS384Signer signs with HMAC-SHA384 using the process signing secret.
type HS384Signer struct {
	secrets *secretx.Provider
}

// NewSignerHS384 creates a signer bound to the provider's secret.
func NewSignerHS384(p *secretx.Provider) *HS384Signer {
	return &HS384Signer{secrets: p}
}

func (s *HS384Signer) Alg() string { return jwt.SigningMethodHS384.Alg() }

// Sign encodes and signs the claims. With a valid secret this cannot fail
// in practice; any error is an encoding bug and is reported as such.
func (s *HS384Signer) Sign(c Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS384, c)
	signed, err := token.SignedString(s.secrets.SigningKey())
	if err != nil {
		return "", fmt.Errorf("jwtx: sign: %w", err)
	}
	return signed, nil
}
