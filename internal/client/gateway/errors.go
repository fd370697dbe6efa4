package gateway

import (
	"errors"
	"fmt"
)

// ErrAuthenticationExpired is terminal for the session: token renewal failed
// and the stored credentials were cleared. The caller must log in again.
var ErrAuthenticationExpired = errors.New("authentication expired")

// NetworkError means no response was received. It never triggers renewal.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ServerError is a non-401 failure response, passed through untouched.
type ServerError struct {
	Status int
	Body   []byte
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error: status %d", e.Status)
}

// AuthorizationError is an HTTP 401. The dispatcher intercepts it once per
// request; a request that fails 401 after its replay gets it directly.
type AuthorizationError struct {
	Body []byte
}

func (e *AuthorizationError) Error() string {
	return "authorization error: status 401"
}
