package auth

import (
	"context"
	"time"
)

// JWTService defines operations for issuing and verifying bearer tokens.
//
// Tokens are stateless and non-revocable: a compromised token stays valid
// until it expires, and the only kill switch is rotating the signing
// secret, which invalidates every outstanding token at once. That is the
// accepted tradeoff of skipping a server-side session store; there is
// deliberately no revocation list.
type JWTService interface {
	// GenerateToken creates a signed access token whose subject is the
	// user's email. Returns the token string or an error if signing fails.
	GenerateToken(ctx context.Context, email string) (string, error)

	// ValidateToken checks the token's signature, algorithm, and expiry
	// and extracts the claims. Returns ErrExpiredToken for an expired
	// token and ErrInvalidToken for everything else that fails.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims carries the verified content of an access token.
type Claims struct {
	// Subject is the email of the user the token was issued for.
	Subject string

	IssuedAt  time.Time
	ExpiresAt time.Time

	// ID is the unique token identifier (jti claim).
	ID string
}
