package httpx

import (
	"net/http"

	"github.com/aussiebroadwan/posts/pkg/authn"
	"github.com/aussiebroadwan/posts/pkg/slogx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var authnResults = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "posts_authn_results_total",
	Help: "Authentication outcomes by extraction mode",
}, []string{"mode", "result"})

// RequireAuth rejects requests without a valid bearer token with 401 and
// puts the caller's identity into the context otherwise.
func RequireAuth(a *authn.Authenticator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res := a.Required(r.Header.Get("Authorization"))
			authnResults.WithLabelValues("required", res.Outcome().String()).Inc()

			id, ok := res.Identity()
			if !ok {
				slogx.FromContext(r.Context()).Debug("bearer token rejected", "reason", res.Reason())
				WriteError(w, r, res.Err())
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// OptionalAuth attaches the caller's identity when a valid bearer token is
// present and lets every request through.
func OptionalAuth(a *authn.Authenticator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res := a.Optional(r.Header.Get("Authorization"))
			authnResults.WithLabelValues("optional", res.Outcome().String()).Inc()

			if id, ok := res.Identity(); ok {
				r = r.WithContext(WithIdentity(r.Context(), id))
			} else if reason := res.Reason(); reason != nil {
				slogx.FromContext(r.Context()).Debug("bearer token ignored", "reason", reason)
			}

			next.ServeHTTP(w, r)
		})
	}
}
