package http

import (
	"net/http"
	"strconv"

	"github.com/aussiebroadwan/posts/internal/posts/domain"
	"github.com/aussiebroadwan/posts/internal/posts/service"
	"github.com/aussiebroadwan/posts/pkg/apierr"
	"github.com/aussiebroadwan/posts/pkg/httpx"
	"github.com/aussiebroadwan/posts/pkg/postsdk"
	"github.com/google/uuid"
)

type PostsHandler struct {
	PostService *service.PostService
}

// HandleFeed godoc
//
//	@Summary		Feed
//	@Description	List every post with its author. With a valid bearer token each post also says whether the caller owns it.
//	@Tags			Posts
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	postsdk.FeedResponse
//	@Failure		500	{object}	postsdk.MessageResponse
//	@Router			/api/posts [get].
func (h *PostsHandler) HandleFeed(w http.ResponseWriter, r *http.Request) {
	var viewer *uuid.UUID
	if id, ok := httpx.IdentityFromContext(r.Context()); ok {
		viewer = &id
	}

	entries, err := h.PostService.Feed(r.Context(), viewer)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	out := postsdk.FeedResponse{Posts: make([]postsdk.FeedPost, len(entries))}
	for i, e := range entries {
		out.Posts[i] = postsdk.FeedPost{
			User:    e.Username,
			Title:   e.Title,
			Content: e.Content,
			Owned:   e.Owned,
		}
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleCreate godoc
//
//	@Summary		Create post
//	@Tags			Posts
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		postsdk.CreatePostRequest	true	"title and content"
//	@Success		200		{object}	postsdk.PostResponse
//	@Failure		401		"missing, invalid or expired token"
//	@Failure		422		{object}	postsdk.FieldErrorResponse
//	@Failure		500		{object}	postsdk.MessageResponse
//	@Router			/api/posts [post].
func (h *PostsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, r, apierr.Unauthorized())
		return
	}

	var req postsdk.CreatePostRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	p, err := h.PostService.Create(r.Context(), id, req.Post.Title, req.Post.Content)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, postsdk.PostResponse{Post: toPost(p)})
}

// HandleListByUser godoc
//
//	@Summary		User posts
//	@Description	List a user's posts, oldest first
//	@Tags			Posts
//	@Produce		json
//	@Param			username	path		string	true	"author username"
//	@Success		200			{object}	postsdk.PostsResponse
//	@Failure		404			"unknown user"
//	@Failure		500			{object}	postsdk.MessageResponse
//	@Router			/api/{username}/posts [get].
func (h *PostsHandler) HandleListByUser(w http.ResponseWriter, r *http.Request) {
	posts, err := h.PostService.ListByUsername(r.Context(), r.PathValue("username"))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	out := postsdk.PostsResponse{Posts: make([]postsdk.Post, len(posts))}
	for i, p := range posts {
		out.Posts[i] = toPost(p)
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleUpdate godoc
//
//	@Summary		Update post
//	@Description	Edit a post the caller owns. Setting userId hands the post to another user.
//	@Tags			Posts
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			post_id	path		int							true	"post id"
//	@Param			request	body		postsdk.UpdatePostRequest	true	"fields to change"
//	@Success		200		{object}	postsdk.PostResponse
//	@Failure		401		"missing, invalid or expired token"
//	@Failure		403		"post owned by another user"
//	@Failure		404		"no such post"
//	@Failure		422		{object}	postsdk.FieldErrorResponse	"target user does not exist"
//	@Failure		500		{object}	postsdk.MessageResponse
//	@Router			/api/posts/{post_id} [patch].
func (h *PostsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, r, apierr.Unauthorized())
		return
	}

	postID, err := parsePostID(r)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	var req postsdk.UpdatePostRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	p, err := h.PostService.Update(r.Context(), id, postID, domain.PostPatch{
		UserID:  req.Post.UserID,
		Title:   req.Post.Title,
		Content: req.Post.Content,
	})
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, postsdk.PostResponse{Post: toPost(p)})
}

// HandleDelete godoc
//
//	@Summary		Delete post
//	@Tags			Posts
//	@Security		BearerAuth
//	@Param			post_id	path	int	true	"post id"
//	@Success		200		"deleted"
//	@Failure		401		"missing, invalid or expired token"
//	@Failure		403		"post owned by another user"
//	@Failure		404		"no such post"
//	@Failure		500		{object}	postsdk.MessageResponse
//	@Router			/api/posts/{post_id} [delete].
func (h *PostsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		httpx.WriteError(w, r, apierr.Unauthorized())
		return
	}

	postID, err := parsePostID(r)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	if err := h.PostService.Delete(r.Context(), id, postID); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// parsePostID reads the post_id path value. Anything that is not an integer
// cannot name a post, so it is NotFound.
func parsePostID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("post_id"), 10, 64)
	if err != nil {
		return 0, apierr.NotFound().WithCause(err)
	}
	return id, nil
}

func toPost(p domain.Post) postsdk.Post {
	return postsdk.Post{
		PostID:    p.ID,
		UserID:    p.UserID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
		Title:     p.Title,
		Content:   p.Content,
	}
}
