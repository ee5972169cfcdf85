package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	postshttp "github.com/aussiebroadwan/posts/internal/posts/http"
	"github.com/aussiebroadwan/posts/internal/posts/service"
	"github.com/aussiebroadwan/posts/internal/posts/store/drivers/sqlite"
	"github.com/aussiebroadwan/posts/pkg/authn"
	"github.com/aussiebroadwan/posts/pkg/cryptox"
	"github.com/aussiebroadwan/posts/pkg/jwtx"
	"github.com/aussiebroadwan/posts/pkg/postsdk"
	"github.com/aussiebroadwan/posts/pkg/secretx"
	"github.com/aussiebroadwan/posts/pkg/slogx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	handler http.Handler
	store   *sqlite.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	st, err := sqlite.NewStore(filepath.Join(t.TempDir(), "posts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	secrets, err := secretx.New([]byte("router-test-secret-router-test-secret"))
	require.NoError(t, err)
	sessions := jwtx.NewSessions(secrets)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := postshttp.NewRouter(authn.New(sessions), "test", st, logger)
	r.UserService = &service.UserService{
		Store:    st,
		Hasher:   cryptox.NewHasher(secrets, cryptox.NewPool(2)),
		Sessions: sessions,
	}
	r.PostService = &service.PostService{Store: st}
	r.ApplyRoutes()

	return &testServer{handler: r, store: st}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = bytes.NewBufferString(b)
	default:
		buf, err := json.Marshal(b)
		require.NoError(t, err)
		rd = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, path, rd)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) register(t *testing.T, username, password string) postsdk.User {
	t.Helper()

	rec := s.do(t, http.MethodPost, "/api/users", "", postsdk.RegisterRequest{
		User: postsdk.Credentials{Username: username, Password: password},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[postsdk.UserResponse](t, rec).User
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestUsers_RegisterAndLogin(t *testing.T) {
	s := newTestServer(t)

	u := s.register(t, "alice", "correct-horse")
	require.Equal(t, "alice", u.Username)
	require.NotEmpty(t, u.Token)

	t.Run("duplicate username", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/users", "", postsdk.RegisterRequest{
			User: postsdk.Credentials{Username: "alice", Password: "other"},
		})
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		require.JSONEq(t, `{"errors":{"username":["username taken"]}}`, rec.Body.String())
	})

	t.Run("blank fields", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/users", "", `{"user":{}}`)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		require.JSONEq(t, `{"errors":{"username":["can't be blank"],"password":["can't be blank"]}}`, rec.Body.String())
	})

	t.Run("malformed json", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/users", "", `{"user":`)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		require.Contains(t, decode[postsdk.FieldErrorResponse](t, rec).Errors, "body")
	})

	t.Run("login", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/users/login", "", postsdk.LoginRequest{
			User: postsdk.Credentials{Username: "alice", Password: "correct-horse"},
		})
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "alice", decode[postsdk.UserResponse](t, rec).User.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/users/login", "", postsdk.LoginRequest{
			User: postsdk.Credentials{Username: "alice", Password: "battery-staple"},
		})
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Empty(t, rec.Body.String())
	})

	t.Run("unknown user", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/users/login", "", postsdk.LoginRequest{
			User: postsdk.Credentials{Username: "bob", Password: "correct-horse"},
		})
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		require.JSONEq(t, `{"errors":{"email":["does not exist"]}}`, rec.Body.String())
	})
}

func TestUsers_CurrentRequiresToken(t *testing.T) {
	s := newTestServer(t)
	u := s.register(t, "alice", "correct-horse")

	tests := []struct {
		name   string
		header string
	}{
		{"missing", ""},
		{"wrong scheme", "Token " + u.Token},
		{"garbage token", "Bearer not-a-jwt"},
		{"tampered token", "Bearer " + u.Token + "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			s.handler.ServeHTTP(rec, req)

			require.Equal(t, http.StatusUnauthorized, rec.Code)
			require.Contains(t, rec.Header().Get("WWW-Authenticate"), "Bearer")
		})
	}

	t.Run("lowercase scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
		req.Header.Set("Authorization", "bearer "+u.Token)
		rec := httptest.NewRecorder()
		s.handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/user", u.Token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		got := decode[postsdk.UserResponse](t, rec).User
		require.Equal(t, "alice", got.Username)
		require.NotEmpty(t, got.Token)
	})
}

func TestUsers_Update(t *testing.T) {
	s := newTestServer(t)
	alice := s.register(t, "alice", "correct-horse")
	s.register(t, "bob", "hunter2")

	t.Run("empty patch", func(t *testing.T) {
		rec := s.do(t, http.MethodPatch, "/api/user", alice.Token, `{"user":{}}`)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "alice", decode[postsdk.UserResponse](t, rec).User.Username)
	})

	t.Run("taken username", func(t *testing.T) {
		rec := s.do(t, http.MethodPatch, "/api/user", alice.Token, `{"user":{"username":"bob"}}`)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		require.JSONEq(t, `{"errors":{"username":["username taken"]}}`, rec.Body.String())
	})

	t.Run("rename and new password", func(t *testing.T) {
		rec := s.do(t, http.MethodPatch, "/api/user", alice.Token, `{"user":{"username":"alice2","password":"new-pw"}}`)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "alice2", decode[postsdk.UserResponse](t, rec).User.Username)

		rec = s.do(t, http.MethodPost, "/api/users/login", "", `{"user":{"username":"alice2","password":"new-pw"}}`)
		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestPosts_FeedOwnership(t *testing.T) {
	s := newTestServer(t)
	alice := s.register(t, "alice", "correct-horse")
	bob := s.register(t, "bob", "hunter2")

	rec := s.do(t, http.MethodPost, "/api/posts", alice.Token, `{"post":{"title":"hello","content":"first"}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	created := decode[postsdk.PostResponse](t, rec).Post
	require.Positive(t, created.PostID)
	require.Nil(t, created.UpdatedAt)
	require.Contains(t, rec.Body.String(), `"updatedAt":null`)

	t.Run("anonymous has no owned field", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/posts", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"posts":[{"user":"alice","title":"hello","content":"first"}]}`, rec.Body.String())
	})

	t.Run("invalid token is anonymous", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/posts", "garbage", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.NotContains(t, rec.Body.String(), "owned")
	})

	t.Run("owner", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/posts", alice.Token, nil)
		require.JSONEq(t, `{"posts":[{"user":"alice","title":"hello","content":"first","owned":true}]}`, rec.Body.String())
	})

	t.Run("other user", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/posts", bob.Token, nil)
		require.JSONEq(t, `{"posts":[{"user":"alice","title":"hello","content":"first","owned":false}]}`, rec.Body.String())
	})

	t.Run("create requires token", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/api/posts", "", `{"post":{"title":"x","content":"y"}}`)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestPosts_ListByUser(t *testing.T) {
	s := newTestServer(t)
	alice := s.register(t, "alice", "correct-horse")

	for _, title := range []string{"one", "two"} {
		rec := s.do(t, http.MethodPost, "/api/posts", alice.Token, postsdk.CreatePostRequest{
			Post: postsdk.NewPost{Title: title, Content: "c"},
		})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := s.do(t, http.MethodGet, "/api/alice/posts", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	posts := decode[postsdk.PostsResponse](t, rec).Posts
	require.Len(t, posts, 2)
	assert.Equal(t, "one", posts[0].Title)
	assert.Equal(t, "two", posts[1].Title)

	rec = s.do(t, http.MethodGet, "/api/nobody/posts", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	t.Run("token is not inspected", func(t *testing.T) {
		before := authnCount(t, "optional")

		rec := s.do(t, http.MethodGet, "/api/alice/posts", "not-a-jwt", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, decode[postsdk.PostsResponse](t, rec).Posts, 2)

		rec = s.do(t, http.MethodGet, "/api/alice/posts", alice.Token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		assert.Equal(t, before, authnCount(t, "optional"))
	})
}

// authnCount sums posts_authn_results_total for one extraction mode.
func authnCount(t *testing.T, mode string) float64 {
	t.Helper()

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	var total float64
	for _, mf := range families {
		if mf.GetName() != "posts_authn_results_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "mode" && l.GetValue() == mode {
					total += m.GetCounter().GetValue()
				}
			}
		}
	}
	return total
}

func TestPosts_UpdateAndDelete(t *testing.T) {
	s := newTestServer(t)
	alice := s.register(t, "alice", "correct-horse")
	bob := s.register(t, "bob", "hunter2")

	rec := s.do(t, http.MethodPost, "/api/posts", alice.Token, `{"post":{"title":"hello","content":"first"}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	post := decode[postsdk.PostResponse](t, rec).Post
	path := "/api/posts/" + strconv.FormatInt(post.PostID, 10)

	t.Run("non-numeric id", func(t *testing.T) {
		rec := s.do(t, http.MethodPatch, "/api/posts/abc", alice.Token, `{"post":{}}`)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("missing post", func(t *testing.T) {
		rec := s.do(t, http.MethodPatch, "/api/posts/999999", alice.Token, `{"post":{"title":"x"}}`)
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Empty(t, rec.Body.String())
	})

	t.Run("not owner", func(t *testing.T) {
		rec := s.do(t, http.MethodPatch, path, bob.Token, `{"post":{"title":"x"}}`)
		require.Equal(t, http.StatusForbidden, rec.Code)

		rec = s.do(t, http.MethodDelete, path, bob.Token, nil)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("unknown new owner", func(t *testing.T) {
		rec := s.do(t, http.MethodPatch, path, alice.Token,
			`{"post":{"userId":"00000000-0000-4000-8000-000000000000"}}`)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		require.JSONEq(t, `{"errors":{"userId":["user does not exist"]}}`, rec.Body.String())
	})

	t.Run("edit", func(t *testing.T) {
		rec := s.do(t, http.MethodPatch, path, alice.Token, `{"post":{"title":"edited"}}`)
		require.Equal(t, http.StatusOK, rec.Code)
		got := decode[postsdk.PostResponse](t, rec).Post
		require.Equal(t, "edited", got.Title)
		require.Equal(t, "first", got.Content)
		require.NotNil(t, got.UpdatedAt)
	})

	t.Run("delete", func(t *testing.T) {
		rec := s.do(t, http.MethodDelete, path, alice.Token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = s.do(t, http.MethodDelete, path, alice.Token, nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestSystemEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/livez", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	live := decode[postsdk.HealthResponse](t, rec)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, "test", live.Version)
	require.NotEmpty(t, rec.Header().Get(slogx.RequestIDHeader))

	rec = s.do(t, http.MethodGet, "/readyz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", decode[postsdk.HealthResponse](t, rec).Checks.Database)

	rec = s.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/swagger/doc.json", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "/api/users/login")

	require.NoError(t, s.store.Close())
	rec = s.do(t, http.MethodGet, "/readyz", "", nil)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Equal(t, "degraded", decode[postsdk.HealthResponse](t, rec).Status)
}
