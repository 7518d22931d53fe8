package domain

import "errors"

// Account errors
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

// Record errors
var (
	ErrRecordNotFound = errors.New("record not found")
)
