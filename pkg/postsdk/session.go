package postsdk

import (
	"context"
	"net/http"
	"strconv"
	"sync"

	"github.com/google/uuid"
)

// Session is an authenticated user. Every user endpoint returns a fresh
// token and the session keeps the newest one.
type Session struct {
	client *Client

	mu       sync.RWMutex
	token    string
	username string
}

func newSession(c *Client, u User) *Session {
	return &Session{client: c, token: u.Token, username: u.Username}
}

// Token returns the current bearer token.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Username returns the last username the server reported.
func (s *Session) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.username
}

func (s *Session) store(u User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = u.Token
	s.username = u.Username
}

func (s *Session) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	return s.client.doRequest(ctx, method, path, s.Token(), body)
}

// ============================================================================
// User Operations
// ============================================================================

// CurrentUser fetches the authenticated user and refreshes the token.
func (s *Session) CurrentUser(ctx context.Context) (*User, error) {
	resp, err := s.do(ctx, http.MethodGet, "/api/user", nil)
	if err != nil {
		return nil, err
	}
	return s.decodeUser(resp)
}

// UpdateUser changes the username and/or password.
func (s *Session) UpdateUser(ctx context.Context, patch UserPatch) (*User, error) {
	resp, err := s.do(ctx, http.MethodPatch, "/api/user", UpdateUserRequest{User: patch})
	if err != nil {
		return nil, err
	}
	return s.decodeUser(resp)
}

func (s *Session) decodeUser(resp *http.Response) (*User, error) {
	var out UserResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	s.store(out.User)
	return &out.User, nil
}

// ============================================================================
// Post Operations
// ============================================================================

// CreatePost publishes a post as the session user.
func (s *Session) CreatePost(ctx context.Context, title, content string) (*Post, error) {
	req := CreatePostRequest{Post: NewPost{Title: title, Content: content}}
	resp, err := s.do(ctx, http.MethodPost, "/api/posts", req)
	if err != nil {
		return nil, err
	}

	var out PostResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.Post, nil
}

// UpdatePost edits a post the session user owns.
func (s *Session) UpdatePost(ctx context.Context, postID int64, patch PostPatch) (*Post, error) {
	resp, err := s.do(ctx, http.MethodPatch, postPath(postID), UpdatePostRequest{Post: patch})
	if err != nil {
		return nil, err
	}

	var out PostResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.Post, nil
}

// TransferPost hands a post to another user.
func (s *Session) TransferPost(ctx context.Context, postID int64, to uuid.UUID) (*Post, error) {
	return s.UpdatePost(ctx, postID, PostPatch{UserID: &to})
}

// DeletePost deletes a post the session user owns.
func (s *Session) DeletePost(ctx context.Context, postID int64) error {
	resp, err := s.do(ctx, http.MethodDelete, postPath(postID), nil)
	if err != nil {
		return err
	}
	return checkStatusOK(resp)
}

// Feed lists every post, marking the ones the session user owns.
func (s *Session) Feed(ctx context.Context) ([]FeedPost, error) {
	return s.client.feed(ctx, s.Token())
}

// UserPosts lists a user's posts, oldest first.
func (s *Session) UserPosts(ctx context.Context, username string) ([]Post, error) {
	return s.client.userPosts(ctx, s.Token(), username)
}

func postPath(id int64) string {
	return "/api/posts/" + strconv.FormatInt(id, 10)
}
