package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/posts/internal/posts/store"
	"github.com/aussiebroadwan/posts/pkg/apierr"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"
)

// DB is the subset of *pgxpool.Pool the store uses.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

type Store struct {
	db  DB
	url string
}

var _ store.Store = (*Store)(nil)

// ConnectAttempts bounds how often NewStore pings a database that is still
// starting up.
const ConnectAttempts = 6

// NewStore opens a pool for databaseURL and waits for the server to answer.
func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, oops.Code("DB_CONFIG_INVALID").Wrap(err)
	}

	b := retry.WithMaxRetries(ConnectAttempts-1, retry.NewExponential(250*time.Millisecond))
	err = retry.Do(ctx, b, func(ctx context.Context) error {
		if err := pool.Ping(ctx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		pool.Close()
		return nil, oops.Code("DB_UNREACHABLE").With("attempts", ConnectAttempts).Wrap(err)
	}

	return New(pool, databaseURL), nil
}

// New wraps an existing pool. databaseURL is only used for migrations.
func New(db DB, databaseURL string) *Store {
	return &Store{db: db, url: databaseURL}
}

func (s *Store) Close() error {
	s.db.Close()
	return nil
}

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *Store) Users() store.Users { return &usersRepo{db: s.db} }
func (s *Store) Posts() store.Posts { return &postsRepo{db: s.db} }

// ClassifyWriteError reports unique and foreign key violations by the
// constraint name Postgres attaches to them.
func (s *Store) ClassifyWriteError(err error) apierr.WriteError {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return apierr.WriteError{}
	}
	switch pgErr.Code {
	case pgerrcode.UniqueViolation, pgerrcode.ForeignKeyViolation:
		return apierr.Conflict(pgErr.ConstraintName)
	default:
		return apierr.WriteError{}
	}
}

// wrap tags err with an operation. A missing row becomes store.ErrNotFound.
func wrap(err error, op string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return oops.With("operation", op).Wrap(store.ErrNotFound)
	}
	return oops.Code("DB_QUERY_FAILED").With("operation", op).Wrap(err)
}
