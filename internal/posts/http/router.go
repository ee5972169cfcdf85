package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/posts/internal/posts/service"
	"github.com/aussiebroadwan/posts/internal/posts/store"
	"github.com/aussiebroadwan/posts/pkg/authn"
	"github.com/aussiebroadwan/posts/pkg/httpx"
	"github.com/aussiebroadwan/posts/pkg/slogx"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "github.com/aussiebroadwan/posts/api/posts" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	authenticator *authn.Authenticator
	buildVersion  string
	startTime     time.Time
	logger        *slog.Logger

	store       store.Store
	UserService *service.UserService
	PostService *service.PostService
}

func NewRouter(
	authenticator *authn.Authenticator,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:           http.NewServeMux(),
		authenticator: authenticator,
		buildVersion:  buildVersion,
		startTime:     time.Now(),
		store:         st,
		logger:        logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerUsers()
	r.registerPosts()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler.
//
//	@title						Posts API
//	@version					1.0
//	@description				Users, bearer sessions and posts.
//	@description				Tokens are HS384 JWTs valid for 14 days; every user endpoint returns a fresh one.
//
//	@contact.name				Aussie Broadwan
//	@contact.url				https://github.com/aussiebroadwan/posts
//
//	@license.name				MIT
//
//	@host						localhost:8080
//	@BasePath					/
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and the token.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService}
	required := httpx.RequireAuth(r.authenticator)

	r.Mux.Handle("POST /api/users", http.HandlerFunc(h.HandleRegister))
	r.Mux.Handle("POST /api/users/login", http.HandlerFunc(h.HandleLogin))
	r.Mux.Handle("GET /api/user", httpx.Chain(http.HandlerFunc(h.HandleCurrent), required))
	r.Mux.Handle("PATCH /api/user", httpx.Chain(http.HandlerFunc(h.HandleUpdate), required))
}

func (r *Router) registerPosts() {
	h := &PostsHandler{PostService: r.PostService}
	required := httpx.RequireAuth(r.authenticator)
	optional := httpx.OptionalAuth(r.authenticator)

	r.Mux.Handle("GET /api/posts", httpx.Chain(http.HandlerFunc(h.HandleFeed), optional))
	r.Mux.Handle("POST /api/posts", httpx.Chain(http.HandlerFunc(h.HandleCreate), required))
	r.Mux.HandleFunc("GET /api/{username}/posts", h.HandleListByUser)
	r.Mux.Handle("PATCH /api/posts/{post_id}", httpx.Chain(http.HandlerFunc(h.HandleUpdate), required))
	r.Mux.Handle("DELETE /api/posts/{post_id}", httpx.Chain(http.HandlerFunc(h.HandleDelete), required))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
	r.Mux.Handle("GET /metrics", promhttp.Handler())
}
