package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/aussiebroadwan/posts/pkg/apierr"
	validation "github.com/jellydator/validation"
)

// MaxBodyBytes caps request bodies read by DecodeJSON.
const MaxBodyBytes = 1 << 20

// WriteJSON writes a JSON response with the given status code.
// It automatically sets the Content-Type header and Cache-Control headers.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
// This is commonly required for sensitive responses like tokens.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}

// DecodeJSON reads one JSON object from the request body into dst and runs
// its validation rules when dst implements validation.Validatable. Every
// failure is an unprocessable-entity error.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))

	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apierr.Unprocessable("body", "can't be empty")
		}
		return apierr.Unprocessable("body", err.Error())
	}
	if dec.More() {
		return apierr.Unprocessable("body", "must contain a single JSON object")
	}

	if v, ok := dst.(validation.Validatable); ok {
		return apierr.FromValidation(v.Validate())
	}
	return nil
}
