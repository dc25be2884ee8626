package services

import "errors"

// Dashboard service errors
var (
	// Session errors
	ErrSessionNotFound = errors.New("dataset session not found")

	// Dataset errors
	ErrNoData        = errors.New("no usable rows after cleaning")
	ErrNoValidStates = errors.New("no state names matched a postal code")

	// View errors
	ErrUnknownView = errors.New("unknown view")

	// General errors
	ErrInvalidInput = errors.New("invalid input")
)
