package domain

import "errors"

// Token validation failures. All of them are terminal for the current
// request: no retry, immediate structured rejection.
var (
	ErrMissingToken     = errors.New("no credential present")
	ErrMalformedToken   = errors.New("malformed credential")
	ErrInvalidSignature = errors.New("credential signature invalid")
	ErrTokenExpired     = errors.New("credential expired")
)

// Account and authorization failures.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSignup      = errors.New("invalid signup data")
	ErrBadAdminToken      = errors.New("admin registration token mismatch")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrTooManyAttempts    = errors.New("too many failed login attempts")
)

// Resource lookups.
var (
	ErrMemoNotFound    = errors.New("memo not found")
	ErrCommentNotFound = errors.New("comment not found")
)
