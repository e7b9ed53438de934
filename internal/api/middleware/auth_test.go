package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskflow/taskflow-api/internal/domain"
	"github.com/taskflow/taskflow-api/internal/service/auth"
	"github.com/taskflow/taskflow-api/internal/store"
)

type stubJWTService struct {
	claims      *auth.Claims
	validateErr error
}

func (s *stubJWTService) GenerateToken(ctx context.Context, email string) (string, error) {
	return "stub-token", nil
}

func (s *stubJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if s.validateErr != nil {
		return nil, s.validateErr
	}
	return s.claims, nil
}

type stubUserStore struct {
	users  map[string]*domain.User
	getErr error
}

func (s *stubUserStore) Create(ctx context.Context, user *domain.User) error {
	return nil
}

func (s *stubUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	user, exists := s.users[email]
	if !exists {
		return nil, store.ErrUserNotFound
	}
	return user, nil
}

func claimsFor(email string) *auth.Claims {
	now := time.Now().UTC()
	return &auth.Claims{
		Subject:   email,
		IssuedAt:  now,
		ExpiresAt: now.Add(time.Hour),
		ID:        uuid.NewString(),
	}
}

func activeUser(t *testing.T, email string) *domain.User {
	t.Helper()

	user, err := domain.NewUser(email, "irrelevant", "")
	require.NoError(t, err)
	user.HashedPassword = "not-a-real-hash"
	user.Password = ""
	return user
}

// runAuthenticated sends a request through the middleware and reports
// whether the inner handler ran, along with the user it observed.
func runAuthenticated(
	t *testing.T,
	mw *AuthMiddleware,
	authorization string,
) (*httptest.ResponseRecorder, *domain.User, bool) {
	t.Helper()

	var seenUser *domain.User
	var called bool
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		seenUser, _ = UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()
	mw.Authenticate(inner).ServeHTTP(rec, req)
	return rec, seenUser, called
}

func TestAuthenticateSuccess(t *testing.T) {
	t.Parallel()

	user := activeUser(t, "alice@example.com")
	mw := NewAuthMiddleware(
		&stubJWTService{claims: claimsFor("alice@example.com")},
		&stubUserStore{users: map[string]*domain.User{user.Email: user}},
	)

	rec, seenUser, called := runAuthenticated(t, mw, "Bearer valid-token")

	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, called)
	require.NotNil(t, seenUser)
	assert.Equal(t, user.ID, seenUser.ID)
}

func TestAuthenticateSchemeCaseInsensitive(t *testing.T) {
	t.Parallel()

	user := activeUser(t, "bob@example.com")
	mw := NewAuthMiddleware(
		&stubJWTService{claims: claimsFor("bob@example.com")},
		&stubUserStore{users: map[string]*domain.User{user.Email: user}},
	)

	rec, _, called := runAuthenticated(t, mw, "bearer valid-token")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

func TestAuthenticateUniformFailures(t *testing.T) {
	t.Parallel()

	knownUser := activeUser(t, "known@example.com")
	deactivated := activeUser(t, "left@example.com")
	deactivated.IsActive = false

	userStore := &stubUserStore{users: map[string]*domain.User{
		knownUser.Email:   knownUser,
		deactivated.Email: deactivated,
	}}

	tests := []struct {
		name          string
		jwt           *stubJWTService
		authorization string
	}{
		{
			"no header",
			&stubJWTService{claims: claimsFor("known@example.com")},
			"",
		},
		{
			"wrong scheme",
			&stubJWTService{claims: claimsFor("known@example.com")},
			"Basic dXNlcjpwYXNz",
		},
		{
			"empty token",
			&stubJWTService{claims: claimsFor("known@example.com")},
			"Bearer ",
		},
		{
			"invalid token",
			&stubJWTService{validateErr: auth.ErrInvalidToken},
			"Bearer garbage",
		},
		{
			"expired token",
			&stubJWTService{validateErr: auth.ErrExpiredToken},
			"Bearer expired",
		},
		{
			"unknown subject",
			&stubJWTService{claims: claimsFor("ghost@example.com")},
			"Bearer valid-token",
		},
		{
			"deactivated subject",
			&stubJWTService{claims: claimsFor("left@example.com")},
			"Bearer valid-token",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			mw := NewAuthMiddleware(tc.jwt, userStore)
			rec, _, called := runAuthenticated(t, mw, tc.authorization)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, called, "inner handler must not run")

			// Every failure mode must produce the same body so token
			// state cannot be probed.
			var resp struct {
				Error string `json:"error"`
			}
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, "Not authenticated", resp.Error)
		})
	}
}

func TestAuthenticateStoreFailureIsNot401(t *testing.T) {
	t.Parallel()

	mw := NewAuthMiddleware(
		&stubJWTService{claims: claimsFor("carol@example.com")},
		&stubUserStore{getErr: errors.New("connection refused")},
	)

	rec, _, called := runAuthenticated(t, mw, "Bearer valid-token")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, called)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestUserFromContextMissing(t *testing.T) {
	t.Parallel()

	user, ok := UserFromContext(context.Background())
	assert.False(t, ok)
	assert.Nil(t, user)
}
