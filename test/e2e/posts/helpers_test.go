package posts_test

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/posts/internal/posts/app"
	"github.com/aussiebroadwan/posts/pkg/postsdk"
	"github.com/stretchr/testify/require"
)

/*
 * Helpers for the posts service end-to-end tests. Each test gets its own
 * application on a fresh database, served over a real listener and driven
 * through the postsdk client.
 */

const (
	jwtSecret     = "e2e-test-secret-e2e-test-secret-e2e"
	alicePassword = "correct-horse"
	bobPassword   = "hunter2"
)

func baseConfig(t *testing.T) app.Config {
	t.Helper()
	dir := t.TempDir()

	return app.Config{
		DatabaseDriver:      app.DriverSQLite,
		DatabaseFile:        filepath.Join(dir, "posts.db"),
		JWTSecret:           jwtSecret,
		PepperFile:          filepath.Join(dir, "pepper"),
		HashWorkers:         2,
		HashTimeout:         10 * time.Second,
		Env:                 "test",
		LogLevel:            "error",
		LogFormat:           "json",
		ShutdownGracePeriod: time.Second,
	}
}

// startService runs the application for cfg and returns a client for it.
func startService(t *testing.T, cfg app.Config) *postsdk.Client {
	t.Helper()

	application, err := app.New(cfg)
	require.NoError(t, err)

	srv := httptest.NewServer(application.Handler())
	t.Cleanup(func() {
		srv.Close()
		_ = application.Shutdown()
	})

	return postsdk.NewClient(srv.URL)
}

func ctxWithTimeout(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}
