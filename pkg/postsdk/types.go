package postsdk

import (
	"time"

	"github.com/google/uuid"
)

// ============================================================================
// User Types
// ============================================================================

// Credentials is the username and password pair used to register and log in.
type Credentials struct {
	Username string `json:"username" example:"alice"`
	Password string `json:"password" example:"correct-horse"`
}

// RegisterRequest is the body of POST /api/users.
type RegisterRequest struct {
	User Credentials `json:"user"`
}

// LoginRequest is the body of POST /api/users/login.
type LoginRequest struct {
	User Credentials `json:"user"`
}

// UserPatch carries the fields to change on the current user. Nil fields
// are left alone.
type UserPatch struct {
	Username *string `json:"username,omitempty" example:"alice2"`
	Password *string `json:"password,omitempty"`
}

// UpdateUserRequest is the body of PATCH /api/user.
type UpdateUserRequest struct {
	User UserPatch `json:"user"`
}

// User is the authenticated user as returned by every user endpoint. Token
// is a freshly issued bearer token.
type User struct {
	Token    string `json:"token"`
	Username string `json:"username" example:"alice"`
}

// UserResponse wraps a User.
type UserResponse struct {
	User User `json:"user"`
}

// ============================================================================
// Post Types
// ============================================================================

// NewPost is the content of a post being created.
type NewPost struct {
	Title   string `json:"title" example:"hello"`
	Content string `json:"content" example:"first post"`
}

// CreatePostRequest is the body of POST /api/posts.
type CreatePostRequest struct {
	Post NewPost `json:"post"`
}

// PostPatch carries the fields to change on a post. Setting UserID hands the
// post over to another user.
type PostPatch struct {
	UserID  *uuid.UUID `json:"userId,omitempty"`
	Title   *string    `json:"title,omitempty"`
	Content *string    `json:"content,omitempty"`
}

// UpdatePostRequest is the body of PATCH /api/posts/{post_id}.
type UpdatePostRequest struct {
	Post PostPatch `json:"post"`
}

// Post is a stored post.
type Post struct {
	PostID    int64      `json:"postId" example:"1"`
	UserID    uuid.UUID  `json:"userId"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt"`
	Title     string     `json:"title" example:"hello"`
	Content   string     `json:"content" example:"first post"`
}

// PostResponse wraps a Post.
type PostResponse struct {
	Post Post `json:"post"`
}

// PostsResponse lists a user's posts.
type PostsResponse struct {
	Posts []Post `json:"posts"`
}

// FeedPost is a post as shown in the public feed. Owned is only present when
// the request carried a valid bearer token.
type FeedPost struct {
	User    string `json:"user" example:"alice"`
	Title   string `json:"title" example:"hello"`
	Content string `json:"content" example:"first post"`
	Owned   *bool  `json:"owned,omitempty"`
}

// FeedResponse lists every post in the feed.
type FeedResponse struct {
	Posts []FeedPost `json:"posts"`
}

// ============================================================================
// Error Types
// ============================================================================

// FieldErrorResponse is the 422 body: field name to messages.
type FieldErrorResponse struct {
	Errors map[string][]string `json:"errors"`
}

// MessageResponse is the 500 body.
type MessageResponse struct {
	Message string `json:"message" example:"internal server error"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	// Status indicates the overall health status (e.g., "ok")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks contains per-dependency status, only set by /readyz
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks represents the status of critical service dependencies.
type HealthChecks struct {
	// Database indicates the database connection status
	Database string `json:"database"`
}
