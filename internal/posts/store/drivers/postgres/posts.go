package postgres

import (
	"context"

	"github.com/aussiebroadwan/posts/internal/posts/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type postsRepo struct {
	db DB
}

const postColumns = `post_id, user_id, created_at, updated_at, title, content`

func scanPost(row pgx.Row) (domain.Post, error) {
	var p domain.Post
	err := row.Scan(&p.ID, &p.UserID, &p.CreatedAt, &p.UpdatedAt, &p.Title, &p.Content)
	return p, err
}

func (r *postsRepo) CreatePost(ctx context.Context, author uuid.UUID, title, content string) (domain.Post, error) {
	p, err := scanPost(r.db.QueryRow(ctx,
		`INSERT INTO post (user_id, title, content) VALUES ($1, $2, $3) RETURNING `+postColumns,
		author, title, content))
	if err != nil {
		return domain.Post{}, wrap(err, "create post")
	}
	return p, nil
}

func (r *postsRepo) ListFeed(ctx context.Context) ([]domain.FeedItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT p.post_id, p.user_id, u.username, p.title, p.content
		FROM post p
		JOIN "user" u ON u.user_id = p.user_id
		ORDER BY p.created_at, p.post_id`)
	if err != nil {
		return nil, wrap(err, "list feed")
	}
	defer rows.Close()

	items := []domain.FeedItem{}
	for rows.Next() {
		var it domain.FeedItem
		if err := rows.Scan(&it.PostID, &it.AuthorID, &it.Username, &it.Title, &it.Content); err != nil {
			return nil, wrap(err, "scan feed item")
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(err, "list feed")
	}
	return items, nil
}

func (r *postsRepo) ListPostsByUser(ctx context.Context, userID uuid.UUID) ([]domain.Post, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+postColumns+` FROM post WHERE user_id = $1 ORDER BY created_at, post_id`, userID)
	if err != nil {
		return nil, wrap(err, "list posts by user")
	}
	defer rows.Close()

	posts := []domain.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, wrap(err, "scan post")
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(err, "list posts by user")
	}
	return posts, nil
}

func (r *postsRepo) GetPostOwnership(ctx context.Context, postID int64, userID uuid.UUID) (exists, owned bool, err error) {
	err = r.db.QueryRow(ctx, `
		SELECT
		    EXISTS (SELECT 1 FROM post WHERE post_id = $1),
		    EXISTS (SELECT 1 FROM post WHERE post_id = $1 AND user_id = $2)`,
		postID, userID).Scan(&exists, &owned)
	if err != nil {
		return false, false, wrap(err, "get post ownership")
	}
	return exists, owned, nil
}

func (r *postsRepo) UpdatePost(ctx context.Context, postID int64, patch domain.PostPatch) (domain.Post, error) {
	p, err := scanPost(r.db.QueryRow(ctx, `
		UPDATE post
		SET user_id    = COALESCE($1, user_id),
		    title      = COALESCE($2, title),
		    content    = COALESCE($3, content),
		    updated_at = now()
		WHERE post_id = $4
		RETURNING `+postColumns,
		patch.UserID, patch.Title, patch.Content, postID))
	if err != nil {
		return domain.Post{}, wrap(err, "update post")
	}
	return p, nil
}

// DeletePostOwnedBy runs as one statement. The outer SELECT sees the
// snapshot taken before the CTE's delete, so existed stays true for a
// deleted row.
func (r *postsRepo) DeletePostOwnedBy(ctx context.Context, postID int64, userID uuid.UUID) (existed, deleted bool, err error) {
	err = r.db.QueryRow(ctx, `
		WITH deleted_post AS (
		    DELETE FROM post
		    WHERE post_id = $1 AND user_id = $2
		    RETURNING 1
		)
		SELECT
		    EXISTS (SELECT 1 FROM post WHERE post_id = $1),
		    EXISTS (SELECT 1 FROM deleted_post)`,
		postID, userID).Scan(&existed, &deleted)
	if err != nil {
		return false, false, wrap(err, "delete post")
	}
	return existed, deleted, nil
}
