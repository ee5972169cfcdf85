package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/posts/internal/posts/domain"
	"github.com/google/uuid"
)

type usersRepo struct {
	db *sql.DB
}

const userColumns = `user_id, username, password_hash`

func scanUser(row *sql.Row) (domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash); err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM "user" WHERE user_id = ?`, id.String()))
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM "user" WHERE username = ?`, username))
}

func (r *usersRepo) CreateUser(ctx context.Context, username, passwordHash string) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		`INSERT INTO "user" (user_id, username, password_hash) VALUES (?, ?, ?) RETURNING `+userColumns,
		uuid.New().String(), username, passwordHash))
}

func (r *usersRepo) UpdateUser(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx, `
		UPDATE "user"
		SET username      = COALESCE(?, username),
		    password_hash = COALESCE(?, password_hash)
		WHERE user_id = ?
		RETURNING `+userColumns,
		mapOptionalString(patch.Username), mapOptionalString(patch.PasswordHash), id.String()))
}
