package domain

import "errors"

// Identity and ownership errors
var (
	ErrDuplicateIdentity = errors.New("username or email already in use")
	ErrUserNotFound      = errors.New("user not found")
	ErrUserHasPosts      = errors.New("user still owns posts")
	ErrInvalidPassword   = errors.New("invalid password")
	ErrNotAuthorized     = errors.New("not authorized")
)

// Post errors
var (
	ErrPostNotFound = errors.New("post not found")
)

// Session errors
var (
	ErrSessionNotFound = errors.New("session not found")
)
