package service

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/posts/internal/posts/domain"
	"github.com/aussiebroadwan/posts/internal/posts/store"
	"github.com/aussiebroadwan/posts/pkg/apierr"
	"github.com/google/uuid"
)

// FeedEntry is a feed item as seen by a viewer. Owned is nil for anonymous
// viewers.
type FeedEntry struct {
	domain.FeedItem
	Owned *bool
}

type PostService struct {
	Store store.Store
}

func (s *PostService) Create(ctx context.Context, author uuid.UUID, title, content string) (domain.Post, error) {
	p, err := s.Store.Posts().CreatePost(ctx, author, title, content)
	if err != nil {
		return domain.Post{}, apierr.Internalf(err, "create post for %s", author)
	}
	return p, nil
}

// Feed lists every post. When viewer is set each entry says whether the
// viewer wrote it.
func (s *PostService) Feed(ctx context.Context, viewer *uuid.UUID) ([]FeedEntry, error) {
	items, err := s.Store.Posts().ListFeed(ctx)
	if err != nil {
		return nil, apierr.Internalf(err, "list feed")
	}

	entries := make([]FeedEntry, len(items))
	for i, it := range items {
		entries[i] = FeedEntry{FeedItem: it}
		if viewer != nil {
			owned := it.AuthorID == *viewer
			entries[i].Owned = &owned
		}
	}
	return entries, nil
}

// ListByUsername returns a user's posts, oldest first, or NotFound when the
// user does not exist.
func (s *PostService) ListByUsername(ctx context.Context, username string) ([]domain.Post, error) {
	u, err := s.Store.Users().GetUserByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return nil, apierr.NotFound().WithCause(err)
	}
	if err != nil {
		return nil, apierr.Internalf(err, "load user %q", username)
	}

	posts, err := s.Store.Posts().ListPostsByUser(ctx, u.ID)
	if err != nil {
		return nil, apierr.Internalf(err, "list posts for %s", u.ID)
	}
	return posts, nil
}

// Update edits a post the caller owns. Missing posts are NotFound, posts
// owned by someone else are Forbidden.
func (s *PostService) Update(ctx context.Context, caller uuid.UUID, postID int64, patch domain.PostPatch) (domain.Post, error) {
	exists, owned, err := s.Store.Posts().GetPostOwnership(ctx, postID, caller)
	if err != nil {
		return domain.Post{}, apierr.Internalf(err, "check ownership of post %d", postID)
	}
	if !exists {
		return domain.Post{}, apierr.NotFound()
	}
	if !owned {
		return domain.Post{}, apierr.Forbidden()
	}

	p, err := s.Store.Posts().UpdatePost(ctx, postID, patch)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Post{}, apierr.NotFound().WithCause(err)
	}
	if err != nil {
		return domain.Post{}, apierr.OnConstraint(err, s.Store, store.ConstraintPostAuthorFK,
			apierr.Unprocessable("userId", "user does not exist"))
	}
	return p, nil
}

// Delete removes a post the caller owns. Missing posts are NotFound, posts
// owned by someone else are Forbidden.
func (s *PostService) Delete(ctx context.Context, caller uuid.UUID, postID int64) error {
	existed, deleted, err := s.Store.Posts().DeletePostOwnedBy(ctx, postID, caller)
	switch {
	case err != nil:
		return apierr.Internalf(err, "delete post %d", postID)
	case deleted:
		return nil
	case existed:
		return apierr.Forbidden()
	default:
		return apierr.NotFound()
	}
}
