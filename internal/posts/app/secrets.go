package app

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aussiebroadwan/posts/pkg/secretx"
)

const pepperLength = 32

// NewSecrets builds the process secret provider from the JWT secret and, when
// PepperFile is set, the password pepper.
func NewSecrets(cfg Config) (*secretx.Provider, error) {
	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}

	var opts []secretx.Option
	if cfg.PepperFile != "" {
		pepper, err := loadOrGeneratePepper(cfg.PepperFile)
		if err != nil {
			return nil, fmt.Errorf("pepper: %w", err)
		}
		opts = append(opts, secretx.WithPepper(pepper))
	}

	p, err := secretx.New([]byte(cfg.JWTSecret), opts...)
	if err != nil {
		return nil, fmt.Errorf("JWT_SECRET: %w", err)
	}
	return p, nil
}

// loadOrGeneratePepper reads the pepper from path, or creates the file with
// a fresh random pepper when it does not exist. Losing the file invalidates
// every stored password hash.
func loadOrGeneratePepper(path string) ([]byte, error) {
	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err == nil {
		pepper := strings.TrimSpace(string(data))
		if pepper == "" {
			return nil, fmt.Errorf("%s is empty", path)
		}
		return []byte(pepper), nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	raw := make([]byte, pepperLength)
	if _, err := rand.Read(raw); err != nil {
		return nil, err
	}
	pepper := base64.RawURLEncoding.EncodeToString(raw)

	if err := os.WriteFile(path, []byte(pepper), 0o600); err != nil {
		return nil, err
	}
	return []byte(pepper), nil
}
