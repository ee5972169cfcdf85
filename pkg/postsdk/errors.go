package postsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// APIError is a non-2xx response from the posts service.
type APIError struct {
	// StatusCode is the HTTP status code of the response
	StatusCode int

	// Fields holds per-field messages for 422 responses
	Fields map[string][]string

	// Message is the server message for 500 responses, or the status text
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("posts: HTTP %d: %s", e.StatusCode, e.Message)
	}

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+strings.Join(e.Fields[k], ", "))
	}
	return fmt.Sprintf("posts: HTTP %d: %s", e.StatusCode, strings.Join(parts, "; "))
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == status
}

// parseErrorResponse turns a non-2xx response into an *APIError. It returns
// nil for 2xx responses.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Message:    http.StatusText(resp.StatusCode),
	}

	var fieldResp FieldErrorResponse
	if err := json.Unmarshal(body, &fieldResp); err == nil && len(fieldResp.Errors) > 0 {
		apiErr.Fields = fieldResp.Errors
		return apiErr
	}

	var msgResp MessageResponse
	if err := json.Unmarshal(body, &msgResp); err == nil && msgResp.Message != "" {
		apiErr.Message = msgResp.Message
	}
	return apiErr
}
