package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a non-2xx response from the Bloom API. Message is the
// server-provided error string, suitable for display to the user.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("bloom api: status %d", e.Status)
}

// IsUnauthorized reports whether err is a 401 from the API, i.e. the
// presented access token was missing, expired, or revoked.
func IsUnauthorized(err error) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Status == http.StatusUnauthorized
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Status == http.StatusNotFound
}
