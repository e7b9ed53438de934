package auth

import "errors"

// Common authentication service errors.
//
// The HTTP layer must never surface which of these occurred: the
// authentication middleware collapses every failure into one uniform
// unauthenticated response so callers cannot probe accounts or token
// state through error variance. The distinct values exist for logging
// and tests only.
var (
	// ErrInvalidToken indicates the token is malformed, carries an
	// unexpected algorithm, or its signature does not verify.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired.
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrMissingToken indicates a token was expected but not provided.
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrUnknownSubject indicates the token's subject does not resolve to
	// an existing active user.
	ErrUnknownSubject = errors.New("token subject does not resolve to an active user")
)
