package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/posts/internal/posts/store"
	"github.com/aussiebroadwan/posts/pkg/httpx"
	"github.com/aussiebroadwan/posts/pkg/postsdk"
)

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe that also pings the database
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	postsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	postsdk.HealthResponse	"database unreachable"
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &postsdk.HealthChecks{Database: "ok"}
		status := "ok"
		code := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, code, postsdk.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
