package domain

import "errors"

var (
	ErrMissingField       = errors.New("required field missing")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWeakPassword       = errors.New("password below minimum length")

	ErrNoToken           = errors.New("access token required")
	ErrTokenMalformed    = errors.New("token malformed")
	ErrTokenBadSignature = errors.New("token signature invalid")
	ErrTokenExpired      = errors.New("token expired")

	ErrTooManyAttempts = errors.New("too many login attempts")
)
