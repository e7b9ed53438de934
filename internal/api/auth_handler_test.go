package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskflow/taskflow-api/internal/domain"
	"github.com/taskflow/taskflow-api/internal/store"
)

func newTestAuthHandler(users *mockUserStore, jwt *mockJWTService) *AuthHandler {
	return NewAuthHandler(users, jwt, &mockHasher{}, &mockVerifier{}, nil)
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestRegisterSuccess(t *testing.T) {
	t.Parallel()

	users := newMockUserStore()
	handler := newTestAuthHandler(users, &mockJWTService{})

	rec := postJSON(t, handler.Register, "/auth/register", RegisterRequest{
		Email:    "alice@example.com",
		Password: "correct horse battery staple",
		FullName: "Alice Smith",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp RegisterResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "user created", resp.Msg)
	assert.NotEmpty(t, resp.ID)

	created, err := users.GetByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, resp.ID, created.ID)
	assert.Equal(t, "Alice Smith", created.FullName)
	assert.True(t, created.IsActive)
	assert.Equal(t, "hashed:correct horse battery staple", created.HashedPassword)
	assert.Empty(t, created.Password, "plaintext must not survive registration")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()

	users := newMockUserStore()
	handler := newTestAuthHandler(users, &mockJWTService{})

	first := postJSON(t, handler.Register, "/auth/register", RegisterRequest{
		Email:    "bob@example.com",
		Password: "password-one",
	})
	require.Equal(t, http.StatusOK, first.Code)

	second := postJSON(t, handler.Register, "/auth/register", RegisterRequest{
		Email:    "bob@example.com",
		Password: "password-two",
	})
	assert.Equal(t, http.StatusConflict, second.Code)
	assert.Contains(t, second.Body.String(), "Email already registered")
}

func TestRegisterValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		req  RegisterRequest
	}{
		{"missing email", RegisterRequest{Password: "secret"}},
		{"malformed email", RegisterRequest{Email: "not-an-email", Password: "secret"}},
		{"missing password", RegisterRequest{Email: "carol@example.com"}},
		{
			"password beyond bcrypt limit",
			RegisterRequest{
				Email:    "carol@example.com",
				Password: string(bytes.Repeat([]byte("x"), 73)),
			},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			handler := newTestAuthHandler(newMockUserStore(), &mockJWTService{})
			rec := postJSON(t, handler.Register, "/auth/register", tc.req)
			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		})
	}
}

func TestRegisterHasherFailure(t *testing.T) {
	t.Parallel()

	handler := NewAuthHandler(
		newMockUserStore(),
		&mockJWTService{},
		&mockHasher{hashErr: errors.New("boom")},
		&mockVerifier{},
		nil,
	)

	rec := postJSON(t, handler.Register, "/auth/register", RegisterRequest{
		Email:    "dave@example.com",
		Password: "secret",
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestTokenSuccess(t *testing.T) {
	t.Parallel()

	users := newMockUserStore()
	user, err := domain.NewUser("erin@example.com", "s3cret", "Erin")
	require.NoError(t, err)
	user.HashedPassword = "hashed:s3cret"
	user.Password = ""
	users.users[user.Email] = user

	handler := newTestAuthHandler(users, &mockJWTService{token: "issued-token"})

	rec := postJSON(t, handler.Token, "/auth/token", LoginRequest{
		Email:    "erin@example.com",
		Password: "s3cret",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp TokenResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "issued-token", resp.AccessToken)
	assert.Equal(t, "bearer", resp.TokenType)
}

func TestTokenInvalidCredentials(t *testing.T) {
	t.Parallel()

	users := newMockUserStore()
	user, err := domain.NewUser("frank@example.com", "right-password", "")
	require.NoError(t, err)
	user.HashedPassword = "hashed:right-password"
	user.Password = ""
	users.users[user.Email] = user

	inactive, err := domain.NewUser("gone@example.com", "whatever", "")
	require.NoError(t, err)
	inactive.HashedPassword = "hashed:whatever"
	inactive.Password = ""
	inactive.IsActive = false
	users.users[inactive.Email] = inactive

	handler := newTestAuthHandler(users, &mockJWTService{})

	tests := []struct {
		name string
		req  LoginRequest
	}{
		{"unknown email", LoginRequest{Email: "nobody@example.com", Password: "right-password"}},
		{"wrong password", LoginRequest{Email: "frank@example.com", Password: "wrong-password"}},
		{"deactivated user", LoginRequest{Email: "gone@example.com", Password: "whatever"}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rec := postJSON(t, handler.Token, "/auth/token", tc.req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)

			// Every credential failure must read identically.
			var resp struct {
				Error string `json:"error"`
			}
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, "Invalid credentials", resp.Error)
		})
	}
}

func TestRegisterStoreFailure(t *testing.T) {
	t.Parallel()

	users := newMockUserStore()
	users.createFn = func(ctx context.Context, user *domain.User) error {
		return errors.New("connection reset")
	}
	handler := newTestAuthHandler(users, &mockJWTService{})

	rec := postJSON(t, handler.Register, "/auth/register", RegisterRequest{
		Email:    "henry@example.com",
		Password: "secret",
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection reset")
}

func TestTokenGenerationFailure(t *testing.T) {
	t.Parallel()

	users := newMockUserStore()
	user, err := domain.NewUser("iris@example.com", "pw", "")
	require.NoError(t, err)
	user.HashedPassword = "hashed:pw"
	user.Password = ""
	users.users[user.Email] = user

	handler := newTestAuthHandler(users, &mockJWTService{generateErr: errors.New("signing failed")})

	rec := postJSON(t, handler.Token, "/auth/token", LoginRequest{
		Email:    "iris@example.com",
		Password: "pw",
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "signing failed")
}

// Guard against the mock diverging from the real interface.
var _ store.UserStore = (*mockUserStore)(nil)
