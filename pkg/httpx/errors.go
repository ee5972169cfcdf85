package httpx

import (
	"net/http"

	"github.com/aussiebroadwan/posts/pkg/apierr"
	"github.com/aussiebroadwan/posts/pkg/slogx"
)

type errorBody struct {
	Errors map[string][]string `json:"errors"`
}

type messageBody struct {
	Message string `json:"message"`
}

// StatusOf maps an error's kind to its HTTP status.
func StatusOf(err error) int {
	switch apierr.KindOf(err) {
	case apierr.KindUnauthorized:
		return http.StatusUnauthorized
	case apierr.KindForbidden:
		return http.StatusForbidden
	case apierr.KindNotFound:
		return http.StatusNotFound
	case apierr.KindUnprocessable:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// WriteError renders err. Internal errors are logged in full and reach the
// client only as a generic message.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusOf(err)

	switch status {
	case http.StatusUnauthorized:
		w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
		w.WriteHeader(status)
	case http.StatusForbidden, http.StatusNotFound:
		w.WriteHeader(status)
	case http.StatusUnprocessableEntity:
		WriteJSON(w, status, errorBody{Errors: apierr.FieldsOf(err)})
	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		WriteJSON(w, status, messageBody{Message: "internal server error"})
	}
}
