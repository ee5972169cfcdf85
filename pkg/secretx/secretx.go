// Package secretx holds the process-wide secret material and clock shared by
// the token service and the password hasher. A Provider is built once by the
// process root and handed to its consumers; it never changes afterwards.
package secretx

import (
	"errors"
	"time"
)

// MinSigningKeyLength is the minimum HMAC secret size in bytes (256 bits).
const MinSigningKeyLength = 32

// ErrWeakSigningKey is returned when the signing secret is too short.
var ErrWeakSigningKey = errors.New("secretx: signing key must be at least 32 bytes")

// Clock returns the current time.
type Clock func() time.Time

// Provider is read-only after construction and safe for concurrent use.
type Provider struct {
	signingKey []byte
	pepper     []byte
	clock      Clock
}

type Option func(*Provider)

// WithPepper sets a server-side pepper mixed into every password hash.
func WithPepper(pepper []byte) Option {
	return func(p *Provider) {
		p.pepper = clone(pepper)
	}
}

// WithClock overrides the time source, mostly useful in tests.
func WithClock(c Clock) Option {
	return func(p *Provider) {
		if c != nil {
			p.clock = c
		}
	}
}

// New builds a Provider. The signing key is copied so later mutation of the
// caller's slice cannot change it.
func New(signingKey []byte, opts ...Option) (*Provider, error) {
	if len(signingKey) < MinSigningKeyLength {
		return nil, ErrWeakSigningKey
	}

	p := &Provider{
		signingKey: clone(signingKey),
		clock:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// SigningKey returns a copy of the HMAC secret.
func (p *Provider) SigningKey() []byte { return clone(p.signingKey) }

// Pepper returns a copy of the password pepper, or nil when none is set.
func (p *Provider) Pepper() []byte { return clone(p.pepper) }

// Now reads the configured clock.
func (p *Provider) Now() time.Time { return p.clock() }

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
