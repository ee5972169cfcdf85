package jwtx

import (
	"errors"
	"fmt"

	"github.com/aussiebroadwan/posts/pkg/secretx"
	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates a token and gives you back the claims if it's legit.
type Verifier interface {
	Verify(token string) (Claims, error)
}

var (
	ErrMalformed  = errors.New("jwtx: malformed token")
	ErrInvalidSig = errors.New("jwtx: invalid signature")
	ErrExpired    = errors.New("jwtx: token expired")
)

// HS384Verifier checks HMAC-SHA384 tokens against the process secret.
type HS384Verifier struct {
	secrets *secretx.Provider
	parser  *jwt.Parser
}

// NewVerifierHS384 creates a verifier bound to the provider's secret and clock.
func NewVerifierHS384(p *secretx.Provider) *HS384Verifier {
	return &HS384Verifier{
		secrets: p,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS384.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithTimeFunc(p.Now),
		),
	}
}

// Verify checks the signature first and only then the claims. The returned
// error is always one of ErrMalformed, ErrInvalidSig or ErrExpired (wrapped
// with detail), so callers can log the reason but must treat all three alike.
func (v *HS384Verifier) Verify(tokenStr string) (Claims, error) {
	var claims Claims

	token, err := v.parser.ParseWithClaims(tokenStr, &claims, func(*jwt.Token) (any, error) {
		return v.secrets.SigningKey(), nil
	})
	if err != nil {
		return Claims{}, classify(err)
	}
	if !token.Valid {
		return Claims{}, ErrInvalidSig
	}

	// The parser already enforced exp with the same clock; checking again
	// keeps the strict exp > now rule independent of library leeway defaults.
	if err := claims.ValidateExpiry(v.secrets.Now()); err != nil {
		return Claims{}, err
	}
	if _, err := claims.Identity(); err != nil {
		return Claims{}, err
	}

	return claims, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %w", ErrInvalidSig, err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %w", ErrExpired, err)
	default:
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
}
