package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/aussiebroadwan/posts/internal/posts/domain"
	"github.com/google/uuid"
)

type postsRepo struct {
	db *sql.DB
}

const postColumns = `post_id, user_id, created_at, updated_at, title, content`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (domain.Post, error) {
	var (
		p         domain.Post
		createdAt int64
		updatedAt sql.NullInt64
	)
	if err := row.Scan(&p.ID, &p.UserID, &createdAt, &updatedAt, &p.Title, &p.Content); err != nil {
		return domain.Post{}, mapNotFound(err)
	}
	p.CreatedAt = fromMicros(createdAt)
	p.UpdatedAt = mapNullTimePtr(updatedAt)
	return p, nil
}

func (r *postsRepo) CreatePost(ctx context.Context, author uuid.UUID, title, content string) (domain.Post, error) {
	return scanPost(r.db.QueryRowContext(ctx,
		`INSERT INTO post (user_id, created_at, title, content) VALUES (?, ?, ?, ?) RETURNING `+postColumns,
		author.String(), toMicros(time.Now()), title, content))
}

func (r *postsRepo) ListFeed(ctx context.Context) ([]domain.FeedItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.post_id, p.user_id, u.username, p.title, p.content
		FROM post p
		JOIN "user" u ON u.user_id = p.user_id
		ORDER BY p.created_at, p.post_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []domain.FeedItem{}
	for rows.Next() {
		var it domain.FeedItem
		if err := rows.Scan(&it.PostID, &it.AuthorID, &it.Username, &it.Title, &it.Content); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *postsRepo) ListPostsByUser(ctx context.Context, userID uuid.UUID) ([]domain.Post, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+postColumns+` FROM post WHERE user_id = ? ORDER BY created_at, post_id`, userID.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []domain.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func (r *postsRepo) GetPostOwnership(ctx context.Context, postID int64, userID uuid.UUID) (bool, bool, error) {
	var owner uuid.UUID
	err := r.db.QueryRowContext(ctx, `SELECT user_id FROM post WHERE post_id = ?`, postID).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return false, false, nil
	}
	if err != nil {
		return false, false, err
	}
	return true, owner == userID, nil
}

func (r *postsRepo) UpdatePost(ctx context.Context, postID int64, patch domain.PostPatch) (domain.Post, error) {
	var newOwner sql.NullString
	if patch.UserID != nil {
		newOwner = sql.NullString{String: patch.UserID.String(), Valid: true}
	}

	return scanPost(r.db.QueryRowContext(ctx, `
		UPDATE post
		SET user_id    = COALESCE(?, user_id),
		    title      = COALESCE(?, title),
		    content    = COALESCE(?, content),
		    updated_at = ?
		WHERE post_id = ?
		RETURNING `+postColumns,
		newOwner, mapOptionalString(patch.Title), mapOptionalString(patch.Content), toMicros(time.Now()), postID))
}

// DeletePostOwnedBy checks and deletes inside one transaction. SQLite
// serialises writers, so no other statement can slip in between.
func (r *postsRepo) DeletePostOwnedBy(ctx context.Context, postID int64, userID uuid.UUID) (existed, deleted bool, err error) {
	err = withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM post WHERE post_id = ? AND user_id = ?`, postID, userID.String())
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n > 0 {
			existed, deleted = true, true
			return nil
		}
		return tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM post WHERE post_id = ?)`, postID).Scan(&existed)
	})
	return existed, deleted, err
}
