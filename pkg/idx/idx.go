// Package idx generates the ULIDs used as request ids in logs and the
// X-Request-ID response header.
package idx

import (
	"crypto/rand"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

type ID string

const Zero ID = ""

var ErrInvalid = errors.New("idx: invalid ulid")

var (
	mu      sync.Mutex
	entropy = ulid.Monotonic(rand.Reader, 0)
)

// New returns a ULID for the current UTC time. IDs from one process are
// strictly increasing.
func New() ID {
	return NewAt(time.Now().UTC())
}

// NewAt returns a ULID stamped with t.
func NewAt(t time.Time) ID {
	mu.Lock()
	defer mu.Unlock()
	return ID(ulid.MustNew(ulid.Timestamp(t), entropy).String())
}

// Parse validates s as a canonical ULID.
func Parse(s string) (ID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Zero, ErrInvalid
	}
	if _, err := ulid.ParseStrict(s); err != nil {
		return Zero, ErrInvalid
	}
	return ID(strings.ToUpper(s)), nil
}

// FromHeader reuses a caller-supplied request id when it is a valid ULID
// and mints a fresh one otherwise, so arbitrary header text never reaches
// the logs.
func FromHeader(v string) ID {
	if id, err := Parse(v); err == nil {
		return id
	}
	return New()
}

func (id ID) IsZero() bool   { return id == Zero }
func (id ID) String() string { return string(id) }

// Time is the embedded timestamp, or the zero time for an invalid id.
func (id ID) Time() time.Time {
	u, err := ulid.ParseStrict(id.String())
	if err != nil {
		return time.Time{}
	}
	return ulid.Time(u.Time()).UTC()
}
