// Package authn turns the value of an Authorization header into an
// authentication result. It knows nothing about net/http; pkg/httpx adapts
// it into middleware.
package authn

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aussiebroadwan/posts/pkg/apierr"
	"github.com/google/uuid"
)

var (
	ErrNoCredential    = errors.New("authn: no credential presented")
	ErrMalformedHeader = errors.New("authn: malformed authorization header")
)

const scheme = "bearer"

// TokenVerifier resolves a bearer token to the identity it was issued for.
// *jwtx.Sessions satisfies it.
type TokenVerifier interface {
	Verify(token string) (uuid.UUID, error)
}

type Outcome int

const (
	Anonymous Outcome = iota
	Authenticated
	Rejected
)

func (o Outcome) String() string {
	switch o {
	case Authenticated:
		return "authenticated"
	case Rejected:
		return "rejected"
	default:
		return "anonymous"
	}
}

// Result is exactly one of Authenticated (with an identity), Anonymous or
// Rejected (with a reason). The zero value is Anonymous.
type Result struct {
	outcome  Outcome
	identity uuid.UUID
	reason   error
}

func authenticated(id uuid.UUID) Result { return Result{outcome: Authenticated, identity: id} }
func rejected(reason error) Result     { return Result{outcome: Rejected, reason: reason} }

func (r Result) Outcome() Outcome { return r.outcome }

// Identity reports the authenticated user, if any.
func (r Result) Identity() (uuid.UUID, bool) {
	return r.identity, r.outcome == Authenticated
}

// Reason is why the credential was rejected. It is for logs only and must
// not reach the client.
func (r Result) Reason() error { return r.reason }

// Err is apierr.Unauthorized for a rejected result and nil otherwise.
func (r Result) Err() error {
	if r.outcome == Rejected {
		return apierr.Unauthorized().WithCause(r.reason)
	}
	return nil
}

type Authenticator struct {
	tokens TokenVerifier
}

func New(tokens TokenVerifier) *Authenticator {
	return &Authenticator{tokens: tokens}
}

// Required authenticates a request that must carry a valid token. Every
// failure is Rejected.
func (a *Authenticator) Required(header string) Result {
	id, err := a.identify(header)
	if err != nil {
		return rejected(err)
	}
	return authenticated(id)
}

// Optional authenticates a request where a token is welcome but not
// needed. A missing, malformed, forged or expired token is Anonymous.
func (a *Authenticator) Optional(header string) Result {
	id, err := a.identify(header)
	if err != nil {
		return Result{reason: err}
	}
	return authenticated(id)
}

func (a *Authenticator) identify(header string) (uuid.UUID, error) {
	token, err := BearerToken(header)
	if err != nil {
		return uuid.Nil, err
	}
	id, err := a.tokens.Verify(token)
	if err != nil {
		return uuid.Nil, fmt.Errorf("authn: verify: %w", err)
	}
	return id, nil
}

// BearerToken extracts the token from "Bearer <token>". The scheme is
// matched case-insensitively and surrounding whitespace is ignored.
func BearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", ErrNoCredential
	}

	name, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(name, scheme) {
		return "", ErrMalformedHeader
	}

	token = strings.TrimSpace(token)
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", ErrMalformedHeader
	}
	return token, nil
}
