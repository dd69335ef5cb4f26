package client

import (
	"errors"
	"net/http"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// DefaultErrorMessage is shown when the server gives no usable message.
const DefaultErrorMessage = "An error occurred"

// APIError is a non-2xx response. Message is the server's free-text
// "message" field, or the status text when the body has none.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Is lets 401 and 403 responses match ErrUnauthorized.
func (e *APIError) Is(target error) bool {
	if target == ErrUnauthorized {
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	}
	return false
}

// Message extracts the user-facing text of err: the server message for an
// APIError, a fixed text for transport failures and err.Error() otherwise.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	if errors.Is(err, ErrUnavailable) {
		return "Server unavailable, please try again"
	}
	return err.Error()
}
