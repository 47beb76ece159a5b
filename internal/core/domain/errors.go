package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the referenced tag or medium does not exist
	ErrNotFound = errors.New("not found")

	// ErrCycleDetected indicates an implication would violate the DAG invariant
	ErrCycleDetected = errors.New("implication cycle detected")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates authentication failed or missing
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the user lacks permission for this action
	ErrForbidden = errors.New("forbidden")

	// ErrTokenExpired indicates the auth token has expired
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalid indicates the auth token is malformed or invalid
	ErrTokenInvalid = errors.New("token invalid")

	// ErrInvalidCredentials indicates wrong username/password combination
	ErrInvalidCredentials = errors.New("invalid credentials")
)
