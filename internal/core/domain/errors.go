package domain

import "errors"

// Common domain errors
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Staff errors
var (
	ErrInvalidPIN = errors.New("invalid pin")
)

// Promotion errors
var (
	ErrInvalidStatus    = errors.New("invalid promotion status")
	ErrInvalidPlacement = errors.New("invalid promotion placement")
	ErrInvalidSchedule  = errors.New("promotion end is before start")
)
