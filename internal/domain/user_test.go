package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	user, err := NewUser("alice@x.com", "pw123", "Alice")
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "alice@x.com", user.Email)
	assert.Equal(t, "Alice", user.FullName)
	assert.True(t, user.IsActive)
	assert.False(t, user.IsAdmin)
	assert.False(t, user.CreatedAt.IsZero())
}

func TestNewUserInvalidEmail(t *testing.T) {
	for _, email := range []string{"", "not-an-email", "@x.com", "alice@"} {
		_, err := NewUser(email, "pw123", "")
		assert.Error(t, err, "email %q", email)
	}
}

func TestNewUserPasswordTooLong(t *testing.T) {
	_, err := NewUser("alice@x.com", strings.Repeat("a", 73), "")
	assert.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestUserValidateStoredUser(t *testing.T) {
	// Users loaded from storage have no plaintext password, only the hash.
	user := &User{
		ID:             uuid.New(),
		Email:          "alice@x.com",
		HashedPassword: "$2a$10$abcdefghijklmnopqrstuv",
	}
	assert.NoError(t, user.Validate())

	user.HashedPassword = ""
	assert.ErrorIs(t, user.Validate(), ErrEmptyPassword)
}
