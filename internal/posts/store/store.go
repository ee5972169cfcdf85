package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/posts/internal/posts/domain"
	"github.com/aussiebroadwan/posts/pkg/apierr"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("store: not found")

// Constraint names reported by ClassifyWriteError. They match the names
// Postgres gives the schema's constraints; other drivers translate into
// them.
const (
	ConstraintUsernameUnique = "user_username_key"
	ConstraintPostAuthorFK   = "post_user_id_fkey"
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. Every method is a single statement; nothing here spans a
// transaction.
type Store interface {
	Users() Users
	Posts() Posts

	// ClassifyWriteError reports whether err is a constraint violation and,
	// if so, which named constraint fired.
	apierr.WriteErrorClassifier

	ApplyMigrations() error

	// Close releases the connection pool.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

type Users interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CreateUser inserts a user; the store assigns the id.
	CreateUser(ctx context.Context, username, passwordHash string) (domain.User, error)

	// UpdateUser applies the non-nil fields of patch and returns the row.
	UpdateUser(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (domain.User, error)
}

type Posts interface {
	CreatePost(ctx context.Context, author uuid.UUID, title, content string) (domain.Post, error)

	// ListFeed returns every post with its author's username, oldest first.
	ListFeed(ctx context.Context) ([]domain.FeedItem, error)

	// ListPostsByUser returns the user's posts ordered by creation time.
	ListPostsByUser(ctx context.Context, userID uuid.UUID) ([]domain.Post, error)

	// GetPostOwnership reports whether the post exists and whether userID owns it.
	GetPostOwnership(ctx context.Context, postID int64, userID uuid.UUID) (exists, owned bool, err error)

	// UpdatePost applies the non-nil fields of patch, sets updated_at and
	// returns the row.
	UpdatePost(ctx context.Context, postID int64, patch domain.PostPatch) (domain.Post, error)

	// DeletePostOwnedBy deletes the post only when userID owns it. existed
	// reports whether the post was there before the call.
	DeletePostOwnedBy(ctx context.Context, postID int64, userID uuid.UUID) (existed, deleted bool, err error)
}
