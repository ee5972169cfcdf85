//go:build integration

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/aussiebroadwan/posts/internal/posts/domain"
	"github.com/aussiebroadwan/posts/internal/posts/store"
	pgstore "github.com/aussiebroadwan/posts/internal/posts/store/drivers/postgres"
	"github.com/aussiebroadwan/posts/pkg/apierr"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func newIntegrationStore(t *testing.T) *pgstore.Store {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("posts_test"),
		postgres.WithUsername("posts"),
		postgres.WithPassword("posts"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	s, err := pgstore.NewStore(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.ApplyMigrations(), "migrations are idempotent")
	return s
}

func TestStore_Integration(t *testing.T) {
	ctx := context.Background()
	s := newIntegrationStore(t)

	alice, err := s.Users().CreateUser(ctx, "alice", "hash-a")
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, alice.ID)

	bob, err := s.Users().CreateUser(ctx, "bob", "hash-b")
	require.NoError(t, err)

	_, err = s.Users().CreateUser(ctx, "alice", "again")
	require.Equal(t, apierr.Conflict(store.ConstraintUsernameUnique), s.ClassifyWriteError(err))

	got, err := s.Users().GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, alice, got)

	_, err = s.Users().GetUserByID(ctx, uuid.New())
	require.ErrorIs(t, err, store.ErrNotFound)

	post, err := s.Posts().CreatePost(ctx, alice.ID, "hello", "world")
	require.NoError(t, err)
	require.Nil(t, post.UpdatedAt)

	feed, err := s.Posts().ListFeed(ctx)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	require.Equal(t, "alice", feed[0].Username)

	stranger := uuid.New()
	_, err = s.Posts().UpdatePost(ctx, post.ID, domain.PostPatch{UserID: &stranger})
	require.Equal(t, apierr.Conflict(store.ConstraintPostAuthorFK), s.ClassifyWriteError(err))

	title := "hello again"
	updated, err := s.Posts().UpdatePost(ctx, post.ID, domain.PostPatch{Title: &title})
	require.NoError(t, err)
	require.Equal(t, "world", updated.Content)
	require.NotNil(t, updated.UpdatedAt)

	existed, deleted, err := s.Posts().DeletePostOwnedBy(ctx, post.ID, bob.ID)
	require.NoError(t, err)
	require.True(t, existed)
	require.False(t, deleted)

	existed, deleted, err = s.Posts().DeletePostOwnedBy(ctx, post.ID, alice.ID)
	require.NoError(t, err)
	require.True(t, existed)
	require.True(t, deleted)

	existed, _, err = s.Posts().DeletePostOwnedBy(ctx, post.ID, alice.ID)
	require.NoError(t, err)
	require.False(t, existed)
}
