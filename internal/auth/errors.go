package auth

import (
	"errors"
	"net/http"
)

const (
	// MsgMissingAuthHeader is returned when the authorization header is absent or not a bearer header.
	MsgMissingAuthHeader = "Missing or invalid authorization header"
	// MsgInvalidToken is returned for an empty bearer token or an invalid session.
	MsgInvalidToken = "Invalid token"
	// MsgUserNotFound is returned when no user matches the bearer token.
	MsgUserNotFound = "User not found"
	// MsgAuthFailed is returned when the lookup itself failed.
	MsgAuthFailed = "Authentication failed"
	// MsgAdminRequired is returned when a non admin identity hits an admin route.
	MsgAdminRequired = "Unauthorized: Admin access required"
	// MsgInvalidCredentials is returned on a failed login.
	MsgInvalidCredentials = "Invalid email or password"
)

// Error is a gate failure. Status and Message are safe to send to the client,
// Err is the internal cause and must only be logged.
type Error struct {
	Status  int
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}

	return e.Message
}

// Unwrap returns the internal cause.
func (e *Error) Unwrap() error {
	return e.Err
}

var (
	// ErrMissingAuthHeader is returned when the header is absent or does not start with "Bearer ".
	ErrMissingAuthHeader = &Error{Status: http.StatusUnauthorized, Message: MsgMissingAuthHeader}

	// ErrInvalidToken is returned when the bearer token is empty.
	ErrInvalidToken = &Error{Status: http.StatusUnauthorized, Message: MsgInvalidToken}

	// ErrUserNotFound is returned when the bearer token does not match any user.
	ErrUserNotFound = &Error{Status: http.StatusUnauthorized, Message: MsgUserNotFound}

	// ErrAdminRequired is returned when the resolved identity is not an admin.
	ErrAdminRequired = &Error{Status: http.StatusForbidden, Message: MsgAdminRequired}

	// ErrInvalidCredentials is returned when email and password do not match.
	ErrInvalidCredentials = &Error{Status: http.StatusUnauthorized, Message: MsgInvalidCredentials}

	// ErrSessionRevoked is returned when a signed session is no longer present in the session storage.
	ErrSessionRevoked = errors.New("session revoked")

	// ErrInvalidRole is returned when a role outside of STUDENT, ALUMNI and ADMIN is found.
	ErrInvalidRole = errors.New("invalid role")

	// ErrRoleNotAllowed is returned when registering with a role that cannot be self assigned.
	ErrRoleNotAllowed = errors.New("role cannot be self assigned")

	// ErrStorageNil is returned when no session storage is given.
	ErrStorageNil = errors.New("session storage is nil")

	// ErrSecretTooShort is returned when the session signing secret is too short.
	ErrSecretTooShort = errors.New("session secret too short")
)

// internalError wraps an unexpected lookup failure into a 500 gate error.
func internalError(err error) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: MsgAuthFailed, Err: err}
}

// AsError returns the gate error in err's chain, or nil.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}

	return nil
}
