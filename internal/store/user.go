package store

import (
	"context"

	"github.com/taskflow/taskflow-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store. The user's HashedPassword must
	// already be populated; plaintext passwords never reach the store.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByEmail retrieves a user by their email address. This is both the
	// login lookup and the token-subject resolution used by the
	// authentication middleware.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}
