package postgres

import (
	"context"

	"github.com/aussiebroadwan/posts/internal/posts/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type usersRepo struct {
	db DB
}

const userColumns = `user_id, username, password_hash`

func scanUser(row pgx.Row, op string) (domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash); err != nil {
		return domain.User{}, wrap(err, op)
	}
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM "user" WHERE user_id = $1`, id), "get user by id")
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	return scanUser(r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM "user" WHERE username = $1`, username), "get user by username")
}

func (r *usersRepo) CreateUser(ctx context.Context, username, passwordHash string) (domain.User, error) {
	return scanUser(r.db.QueryRow(ctx,
		`INSERT INTO "user" (username, password_hash) VALUES ($1, $2) RETURNING `+userColumns,
		username, passwordHash), "create user")
}

func (r *usersRepo) UpdateUser(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (domain.User, error) {
	return scanUser(r.db.QueryRow(ctx, `
		UPDATE "user"
		SET username      = COALESCE($1, username),
		    password_hash = COALESCE($2, password_hash)
		WHERE user_id = $3
		RETURNING `+userColumns,
		patch.Username, patch.PasswordHash, id), "update user")
}
