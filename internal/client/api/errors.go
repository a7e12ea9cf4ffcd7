package api

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/useradmin/internal/common"
)

// APIError is a non-2xx response from the backend. Message holds the
// server-supplied message for client errors; for 5xx responses it is a
// generic text because server bodies are not trustworthy user-facing copy.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Is makes 401/403 responses match common.ErrUnauthorized and 404 match
// common.ErrNotFound, so callers can branch with errors.Is without
// inspecting status codes.
func (e *APIError) Is(target error) bool {
	switch target {
	case common.ErrUnauthorized:
		return e.Status == 401 || e.Status == 403
	case common.ErrNotFound:
		return e.Status == 404
	}
	return false
}

// UserMessage extracts the message to show the user for err: the
// server-supplied message for client errors, a generic fallback otherwise.
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500 && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
