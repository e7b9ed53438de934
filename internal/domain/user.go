package domain

import (
	"errors"
	"net/mail"
	"time"

	"github.com/google/uuid"
)

// User validation errors.
var (
	ErrEmptyUserID         = errors.New("user ID cannot be empty")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrEmptyPassword       = errors.New("password cannot be empty")
	ErrPasswordTooLong     = errors.New("password must be at most 72 characters long")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// bcryptMaxPasswordLength is bcrypt's input limit; longer passwords are
// silently truncated by the algorithm, so they are rejected up front.
const bcryptMaxPasswordLength = 72

// User represents a registered account. Its email is the login identifier
// and the subject of issued access tokens.
type User struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name,omitempty"`
	Password       string    `json:"-"` // Plaintext, held only between request decode and hashing
	HashedPassword string    `json:"-"` // Never expose the password hash
	IsActive       bool      `json:"is_active"`
	IsAdmin        bool      `json:"is_admin"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewUser creates a User with the given email, plaintext password, and
// optional display name. It generates the ID and creation timestamp and
// validates the result. The caller must hash the password before storage.
func NewUser(email, password, fullName string) (*User, error) {
	user := &User{
		ID:        uuid.New(),
		Email:     email,
		FullName:  fullName,
		Password:  password,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}
	if _, err := mail.ParseAddress(u.Email); err != nil {
		return ErrInvalidEmail
	}

	if u.Password != "" {
		if len(u.Password) > bcryptMaxPasswordLength {
			return ErrPasswordTooLong
		}
	} else if u.HashedPassword == "" {
		// Existing users loaded from storage carry only the hash.
		return ErrEmptyPassword
	}

	return nil
}
