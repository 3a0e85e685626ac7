package service

import "errors"

// Common service errors
var (
	ErrInvalidInput = errors.New("invalid input")
)

// User service specific errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("user already exists")
)

// Battle service specific errors
var (
	ErrMatchNotFound = errors.New("match not found")
	ErrMatchExists   = errors.New("match id already in use")
	ErrNotAPlayer    = errors.New("user is not a player in this match")
)
