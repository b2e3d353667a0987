package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// Sentinel errors for dispatcher operations.
var (
	// ErrNotFound matches a 404 response.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized matches a 401 or 403 response.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrTimeout matches a request that ran out of time.
	ErrTimeout = errors.New("request timed out")
	// ErrInvalidRequest is returned for a nil or malformed Request.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrBinaryResponse is returned when decoding a binary body as JSON.
	ErrBinaryResponse = errors.New("response is binary")
)

// Error codes carried by APIError.Code.
const (
	CodeHTTPError       = "http_error"
	CodeConnectionError = "connection_error"
	CodeTimeout         = "timeout"
)

// maxErrorBody caps how much of an unparseable error body ends up in a message.
const maxErrorBody = 512

// APIError is the single failure type surfaced by the dispatcher.
type APIError struct {
	// StatusCode is 0 when no response was received.
	StatusCode int
	Code       string
	Method     string
	URL        string
	Message    string
	Body       []byte
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s: %s", e.Method, e.URL, e.Message)
}

// Unwrap returns the transport error, if any.
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match the package sentinels.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	case ErrTimeout:
		return e.Code == CodeTimeout
	}
	return false
}

// IsTimeout reports whether err came from an exhausted deadline.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout) || errors.Is(err, context.DeadlineExceeded)
}

// StatusCode extracts the HTTP status from err, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// parseError builds an APIError for a non-2xx response. DRF reports errors
// as {"detail": ...}; some views use "error" or "message", and validation
// failures map field names to lists of messages.
func parseError(method, url string, status int, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode: status,
		Code:       CodeHTTPError,
		Method:     method,
		URL:        url,
		Body:       body,
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err == nil && len(payload) > 0 {
		for _, key := range []string{"detail", "error", "message"} {
			if s, ok := payload[key].(string); ok && s != "" {
				apiErr.Message = s
				return apiErr
			}
		}
		if msg := fieldErrors(payload); msg != "" {
			apiErr.Message = msg
			return apiErr
		}
	}

	text := strings.TrimSpace(string(body))
	if len(text) > maxErrorBody {
		text = text[:maxErrorBody] + "..."
	}
	if text == "" {
		text = http.StatusText(status)
	}
	apiErr.Message = text
	return apiErr
}

// fieldErrors flattens {"field": ["msg", ...]} into "field: msg; ...".
func fieldErrors(payload map[string]any) string {
	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var parts []string
	for _, k := range keys {
		list, ok := payload[k].([]any)
		if !ok {
			continue
		}
		for _, item := range list {
			if s, ok := item.(string); ok {
				parts = append(parts, k+": "+s)
			}
		}
	}
	return strings.Join(parts, "; ")
}
