package cryptox

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/posts/pkg/secretx"
	"golang.org/x/crypto/argon2"
)

// Argon2id cost, the OWASP minimum for argon2id.
const (
	memory      = 19 * 1024 // KiB
	iterations  = 2
	parallelism = 1
	keyLength   = 32
	saltLength  = 16
)

// Upper bounds accepted from a stored hash.
const (
	maxMemory     = 1 << 20 // KiB
	maxIterations = 16
)

// DefaultHashTimeout bounds how long a caller waits for a pool slot and the
// hash itself.
const DefaultHashTimeout = 10 * time.Second

var (
	ErrMismatch    = errors.New("password does not match")
	ErrCorruptHash = errors.New("cryptox: corrupt password hash")
)

// Hasher derives and verifies Argon2id password hashes on a bounded pool so
// the calling request goroutine only waits.
type Hasher struct {
	secrets *secretx.Provider
	pool    *Pool
	timeout time.Duration
}

type HasherOption func(*Hasher)

// WithTimeout overrides DefaultHashTimeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) HasherOption {
	return func(h *Hasher) {
		if d > 0 {
			h.timeout = d
		}
	}
}

func NewHasher(secrets *secretx.Provider, pool *Pool, opts ...HasherOption) *Hasher {
	h := &Hasher{
		secrets: secrets,
		pool:    pool,
		timeout: DefaultHashTimeout,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Hash returns a PHC-format string with a fresh random salt.
func (h *Hasher) Hash(ctx context.Context, password string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	start := time.Now()
	defer func() { observeHash("hash", start) }()

	pepper := h.secrets.Pepper()
	return Run(ctx, h.pool, func() (string, error) {
		return hashPassword(password, pepper)
	})
}

// Verify returns nil when password matches encodedHash, ErrMismatch when it
// does not and ErrCorruptHash when encodedHash cannot be parsed. Pool
// failures come back as ErrWorkerPanic or the context error.
func (h *Hasher) Verify(ctx context.Context, password, encodedHash string) error {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	start := time.Now()
	defer func() { observeHash("verify", start) }()

	pepper := h.secrets.Pepper()
	_, err := Run(ctx, h.pool, func() (struct{}, error) {
		return struct{}{}, verifyPassword(password, encodedHash, pepper)
	})
	return err
}

func hashPassword(password string, pepper []byte) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("cryptox: read salt: %w", err)
	}

	hash := argon2.IDKey(peppered(password, pepper), salt, iterations, memory, parallelism, keyLength)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		memory,
		iterations,
		parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

type phc struct {
	memory      uint32
	iterations  uint32
	parallelism uint8
	salt        []byte
	hash        []byte
}

// parsePHC reads $argon2id$v=19$m=X,t=Y,p=Z$salt$hash.
func parsePHC(encoded string) (phc, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return phc{}, fmt.Errorf("%w: expected 6 parts", ErrCorruptHash)
	}
	if parts[1] != "argon2id" {
		return phc{}, fmt.Errorf("%w: not argon2id", ErrCorruptHash)
	}
	if parts[2] != fmt.Sprintf("v=%d", argon2.Version) {
		return phc{}, fmt.Errorf("%w: wrong version", ErrCorruptHash)
	}

	var p phc
	var par uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.memory, &p.iterations, &par); err != nil {
		return phc{}, fmt.Errorf("%w: parameters: %w", ErrCorruptHash, err)
	}
	// argon2.IDKey panics on zero rounds or threads and allocates m KiB.
	if p.memory == 0 || p.iterations == 0 || par == 0 || par > 255 ||
		p.memory > maxMemory || p.iterations > maxIterations {
		return phc{}, fmt.Errorf("%w: parameters out of range", ErrCorruptHash)
	}
	p.parallelism = uint8(par) // #nosec G115 - bounded above

	var err error
	if p.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil || len(p.salt) == 0 {
		return phc{}, fmt.Errorf("%w: salt", ErrCorruptHash)
	}
	if p.hash, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil || len(p.hash) == 0 {
		return phc{}, fmt.Errorf("%w: digest", ErrCorruptHash)
	}
	return p, nil
}

func verifyPassword(password, encodedHash string, pepper []byte) error {
	p, err := parsePHC(encodedHash)
	if err != nil {
		return err
	}

	computed := argon2.IDKey(
		peppered(password, pepper),
		p.salt,
		p.iterations,
		p.memory,
		p.parallelism,
		uint32(len(p.hash)), // #nosec G115 - decoded from a header-sized string
	)

	if subtle.ConstantTimeCompare(computed, p.hash) == 1 {
		return nil
	}
	return ErrMismatch
}

func peppered(password string, pepper []byte) []byte {
	out := make([]byte, 0, len(password)+len(pepper))
	out = append(out, password...)
	return append(out, pepper...)
}
