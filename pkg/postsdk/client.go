package postsdk

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is a client for the posts service. It provides access to the
// anonymous endpoints and creates authenticated Sessions.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a new posts service client.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Register creates a user and returns a session for it.
func (c *Client) Register(ctx context.Context, username, password string) (*Session, error) {
	req := RegisterRequest{User: Credentials{Username: username, Password: password}}
	return c.authenticate(ctx, "/api/users", req)
}

// Login authenticates an existing user.
func (c *Client) Login(ctx context.Context, username, password string) (*Session, error) {
	req := LoginRequest{User: Credentials{Username: username, Password: password}}
	return c.authenticate(ctx, "/api/users/login", req)
}

// NewSessionFromToken wraps an existing bearer token. The token is not
// checked until the session is used.
func (c *Client) NewSessionFromToken(token string) *Session {
	return &Session{client: c, token: token}
}

func (c *Client) authenticate(ctx context.Context, path string, body any) (*Session, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, path, "", body)
	if err != nil {
		return nil, err
	}

	var out UserResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}

	return newSession(c, out.User), nil
}

// Feed lists every post without ownership information.
func (c *Client) Feed(ctx context.Context) ([]FeedPost, error) {
	return c.feed(ctx, "")
}

// UserPosts lists a user's posts, oldest first.
func (c *Client) UserPosts(ctx context.Context, username string) ([]Post, error) {
	return c.userPosts(ctx, "", username)
}

func (c *Client) feed(ctx context.Context, token string) ([]FeedPost, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/posts", token, nil)
	if err != nil {
		return nil, err
	}

	var out FeedResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Posts, nil
}

func (c *Client) userPosts(ctx context.Context, token, username string) ([]Post, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/api/"+url.PathEscape(username)+"/posts", token, nil)
	if err != nil {
		return nil, err
	}

	var out PostsResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Posts, nil
}

// GetLiveness checks if the service is alive.
func (c *Client) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/livez")
}

// GetReadiness checks if the service is ready.
func (c *Client) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/readyz")
}

func (c *Client) health(ctx context.Context, path string) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}

	return &health, nil
}
