package cryptox

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/aussiebroadwan/posts/pkg/secretx"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var testKey = []byte("0123456789abcdef0123456789abcdef")

func newHasher(t *testing.T, opts ...secretx.Option) *Hasher {
	t.Helper()
	p, err := secretx.New(testKey, opts...)
	require.NoError(t, err)
	return NewHasher(p, NewPool(2))
}

func TestHasher_Hash(t *testing.T) {
	h := newHasher(t)

	tests := []struct {
		name     string
		password string
	}{
		{"simple password", "password123"},
		{"complex password", "P@ssw0rd!#$%^&*()"},
		{"long password", strings.Repeat("a", 100)},
		{"empty password", ""},
		{"unicode password", "пароль🔒密码"},
		{"whitespace password", "   spaces   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := h.Hash(context.Background(), tt.password)
			require.NoError(t, err)
			require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=19456,t=2,p=1$"), hash)

			parts := strings.Split(hash, "$")
			require.Len(t, parts, 6)
			require.NotEmpty(t, parts[4], "salt")
			require.NotEmpty(t, parts[5], "digest")

			require.NoError(t, h.Verify(context.Background(), tt.password, hash))
		})
	}
}

func TestHasher_UniqueSalts(t *testing.T) {
	h := newHasher(t)
	ctx := context.Background()

	hash1, err := h.Hash(ctx, "samepassword")
	require.NoError(t, err)
	hash2, err := h.Hash(ctx, "samepassword")
	require.NoError(t, err)

	require.NotEqual(t, hash1, hash2)
	require.NoError(t, h.Verify(ctx, "samepassword", hash1))
	require.NoError(t, h.Verify(ctx, "samepassword", hash2))
}

func TestHasher_Mismatch(t *testing.T) {
	h := newHasher(t)
	ctx := context.Background()

	hash, err := h.Hash(ctx, "correct-horse")
	require.NoError(t, err)

	for _, wrong := range []string{"", "Correct-horse", "correct-horse ", "battery-staple"} {
		require.ErrorIs(t, h.Verify(ctx, wrong, hash), ErrMismatch, "password %q", wrong)
	}
}

func TestHasher_Pepper(t *testing.T) {
	ctx := context.Background()
	plain := newHasher(t)
	peppered := newHasher(t, secretx.WithPepper([]byte("server-side-pepper")))

	hash, err := peppered.Hash(ctx, "hunter2")
	require.NoError(t, err)

	require.NoError(t, peppered.Verify(ctx, "hunter2", hash))
	require.ErrorIs(t, plain.Verify(ctx, "hunter2", hash), ErrMismatch)
}

func TestHasher_CorruptHash(t *testing.T) {
	h := newHasher(t)

	tests := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"bcrypt", "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"},
		{"wrong algorithm", "$argon2i$v=19$m=19456,t=2,p=1$c2FsdHNhbHQ$aGFzaGhhc2g"},
		{"wrong version", "$argon2id$v=16$m=19456,t=2,p=1$c2FsdHNhbHQ$aGFzaGhhc2g"},
		{"bad params", "$argon2id$v=19$m=x,t=2,p=1$c2FsdHNhbHQ$aGFzaGhhc2g"},
		{"zero rounds", "$argon2id$v=19$m=19456,t=0,p=1$c2FsdHNhbHQ$aGFzaGhhc2g"},
		{"zero threads", "$argon2id$v=19$m=19456,t=2,p=0$c2FsdHNhbHQ$aGFzaGhhc2g"},
		{"huge memory", "$argon2id$v=19$m=4294967295,t=2,p=1$c2FsdHNhbHQ$aGFzaGhhc2g"},
		{"memory above cap", "$argon2id$v=19$m=1048577,t=2,p=1$c2FsdHNhbHQ$aGFzaGhhc2g"},
		{"too many rounds", "$argon2id$v=19$m=19456,t=17,p=1$c2FsdHNhbHQ$aGFzaGhhc2g"},
		{"bad salt", "$argon2id$v=19$m=19456,t=2,p=1$!!!$aGFzaGhhc2g"},
		{"empty digest", "$argon2id$v=19$m=19456,t=2,p=1$c2FsdHNhbHQ$"},
		{"too many parts", "$argon2id$v=19$m=19456,t=2,p=1$c2FsdHNhbHQ$aGFzaGhhc2g$extra"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := h.Verify(context.Background(), "password", tt.hash)
			require.ErrorIs(t, err, ErrCorruptHash)
			require.NotErrorIs(t, err, ErrMismatch)
		})
	}
}

func TestHasher_Concurrent(t *testing.T) {
	h := newHasher(t)
	ctx := context.Background()

	hash, err := h.Hash(ctx, "concurrent")
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pw := "concurrent"
			if i%2 == 1 {
				pw = "wrong"
			}
			err := h.Verify(ctx, pw, hash)
			if i%2 == 1 {
				if !errors.Is(err, ErrMismatch) {
					err = fmt.Errorf("wrong password: got %v", err)
				} else {
					err = nil
				}
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
}

func TestHasher_CancelledContext(t *testing.T) {
	h := newHasher(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.Hash(ctx, "password")
	require.ErrorIs(t, err, context.Canceled)
}
