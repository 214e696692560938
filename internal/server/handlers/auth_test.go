package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/chirpy/internal/models"
	"github.com/iudanet/chirpy/internal/server/auth"
	"github.com/iudanet/chirpy/internal/server/storage"
	"github.com/iudanet/chirpy/pkg/api"
)

// mockUserStorage is a mock implementation of storage.UserStorage for testing
type mockUserStorage struct {
	users       map[string]*models.User // email -> User
	getError    error
	createError error
}

func newMockUserStorage() *mockUserStorage {
	return &mockUserStorage{users: make(map[string]*models.User)}
}

func (m *mockUserStorage) CreateUser(ctx context.Context, user *models.User) error {
	if m.createError != nil {
		return m.createError
	}
	if _, exists := m.users[user.Email]; exists {
		return storage.ErrUserAlreadyExists
	}
	m.users[user.Email] = user
	return nil
}

func (m *mockUserStorage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	user, ok := m.users[email]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserStorage) GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	for _, user := range m.users {
		if user.ID == userID {
			return user, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (m *mockUserStorage) UpdateCredentials(ctx context.Context, userID uuid.UUID, email, hashedPassword string) (*models.User, error) {
	for _, user := range m.users {
		if user.ID == userID {
			delete(m.users, user.Email)
			user.Email = email
			user.HashedPassword = hashedPassword
			user.UpdatedAt = time.Now()
			m.users[email] = user
			return user, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (m *mockUserStorage) UpgradeUser(ctx context.Context, userID uuid.UUID) error {
	for _, user := range m.users {
		if user.ID == userID {
			user.IsChirpyRed = true
			return nil
		}
	}
	return storage.ErrUserNotFound
}

func (m *mockUserStorage) DeleteAllUsers(ctx context.Context) (int64, error) {
	n := int64(len(m.users))
	m.users = make(map[string]*models.User)
	return n, nil
}

// mockTokenStorage is a mock implementation of storage.TokenStorage for testing
type mockTokenStorage struct {
	tokens    map[string]*models.RefreshToken // token -> RefreshToken
	saveError error
}

func newMockTokenStorage() *mockTokenStorage {
	return &mockTokenStorage{tokens: make(map[string]*models.RefreshToken)}
}

func (m *mockTokenStorage) SaveRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	if m.saveError != nil {
		return m.saveError
	}
	if _, exists := m.tokens[token.Token]; exists {
		return storage.ErrTokenAlreadyExists
	}
	m.tokens[token.Token] = token
	return nil
}

func (m *mockTokenStorage) GetRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	entry, ok := m.tokens[token]
	if !ok {
		return nil, storage.ErrTokenNotFound
	}
	return entry, nil
}

func (m *mockTokenStorage) RevokeRefreshToken(ctx context.Context, token string, when time.Time) error {
	entry, ok := m.tokens[token]
	if !ok {
		return storage.ErrTokenNotFound
	}
	if entry.RevokedAt == nil {
		revoked := when
		entry.RevokedAt = &revoked
		entry.UpdatedAt = when
	}
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type testEnv struct {
	users    *mockUserStorage
	tokens   *mockTokenStorage
	codec    *auth.TokenService
	sessions *auth.SessionService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	users := newMockUserStorage()
	tokens := newMockTokenStorage()
	codec := auth.NewTokenService([]byte("handler-test-secret"))
	return &testEnv{
		users:    users,
		tokens:   tokens,
		codec:    codec,
		sessions: auth.NewSessionService(users, tokens, codec),
	}
}

func registerTestUser(t *testing.T, env *testEnv, email, password string) *models.User {
	t.Helper()

	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	user := &models.User{
		ID:             uuid.New(),
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
		Email:          email,
		HashedPassword: hash,
	}
	require.NoError(t, env.users.CreateUser(context.Background(), user))
	return user
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body interface{}, header string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupTestEnv(t)
	user := registerTestUser(t, env, "saul@bettercall.com", "98765")
	h := NewAuthHandler(testLogger(), env.sessions, time.Hour)

	rec := postJSON(t, h.Login, "/api/login", api.LoginRequest{
		Email:    "saul@bettercall.com",
		Password: "98765",
	}, "")

	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.LoginResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, user.ID, resp.ID)
	assert.Equal(t, user.Email, resp.Email)
	assert.NotEmpty(t, resp.Token)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Len(t, resp.RefreshToken, 64)

	// The access token identifies the user who logged in
	gotID, err := env.codec.DecodeUserID(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, gotID)

	// The password hash never leaks into the response
	assert.NotContains(t, rec.Body.String(), "hashed_password")
}

func TestAuthHandler_Login_EnumerationSafe(t *testing.T) {
	env := setupTestEnv(t)
	registerTestUser(t, env, "walter@graymatter.com", "letmein-1234")
	h := NewAuthHandler(testLogger(), env.sessions, time.Hour)

	unknown := postJSON(t, h.Login, "/api/login", api.LoginRequest{
		Email:    "nobody@example.com",
		Password: "anything",
	}, "")
	wrongPass := postJSON(t, h.Login, "/api/login", api.LoginRequest{
		Email:    "walter@graymatter.com",
		Password: "wrong",
	}, "")

	// Unknown email and wrong password are indistinguishable
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, http.StatusUnauthorized, wrongPass.Code)
	assert.Equal(t, unknown.Body.String(), wrongPass.Body.String())
	assert.Contains(t, unknown.Body.String(), "Incorrect email or password")
}

func TestAuthHandler_Login_TTLClamp(t *testing.T) {
	env := setupTestEnv(t)
	registerTestUser(t, env, "jesse@example.com", "capncook")
	h := NewAuthHandler(testLogger(), env.sessions, time.Hour)

	rec := postJSON(t, h.Login, "/api/login", api.LoginRequest{
		Email:            "jesse@example.com",
		Password:         "capncook",
		ExpiresInSeconds: 10,
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp api.LoginResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

	claims, err := env.codec.Decode(resp.Token)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, claims.ExpiresAt.Sub(claims.IssuedAt.Time), time.Hour)
}

func TestAuthHandler_Login_BadBody(t *testing.T) {
	env := setupTestEnv(t)
	h := NewAuthHandler(testLogger(), env.sessions, time.Hour)

	req := httptest.NewRequest(http.MethodPost, "/api/login", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthHandler_Login_StoreFailure(t *testing.T) {
	env := setupTestEnv(t)
	registerTestUser(t, env, "mike@pollos.com", "half-measures")
	env.tokens.saveError = assert.AnError
	h := NewAuthHandler(testLogger(), env.sessions, time.Hour)

	rec := postJSON(t, h.Login, "/api/login", api.LoginRequest{
		Email:    "mike@pollos.com",
		Password: "half-measures",
	}, "")

	// Login aborts entirely; no access token escapes a failed persist
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), `"token"`)
}

func TestAuthHandler_Refresh(t *testing.T) {
	env := setupTestEnv(t)
	user := registerTestUser(t, env, "gus@pollos.com", "box-cutter")
	h := NewAuthHandler(testLogger(), env.sessions, time.Hour)

	login := postJSON(t, h.Login, "/api/login", api.LoginRequest{
		Email:    "gus@pollos.com",
		Password: "box-cutter",
	}, "")
	require.Equal(t, http.StatusOK, login.Code)

	var session api.LoginResponse
	require.NoError(t, json.NewDecoder(login.Body).Decode(&session))

	t.Run("valid refresh token", func(t *testing.T) {
		rec := postJSON(t, h.Refresh, "/api/refresh", nil, "Bearer "+session.RefreshToken)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp api.RefreshResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))

		gotID, err := env.codec.DecodeUserID(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, user.ID, gotID)
	})

	t.Run("malformed header", func(t *testing.T) {
		rec := postJSON(t, h.Refresh, "/api/refresh", nil, "Token abc")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing header", func(t *testing.T) {
		rec := postJSON(t, h.Refresh, "/api/refresh", nil, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("unknown token", func(t *testing.T) {
		rec := postJSON(t, h.Refresh, "/api/refresh", nil, "Bearer deadbeef")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("access token is not a refresh token", func(t *testing.T) {
		rec := postJSON(t, h.Refresh, "/api/refresh", nil, "Bearer "+session.Token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAuthHandler_Revoke(t *testing.T) {
	env := setupTestEnv(t)
	registerTestUser(t, env, "hank@dea.gov", "minerals-rocks")
	h := NewAuthHandler(testLogger(), env.sessions, time.Hour)

	login := postJSON(t, h.Login, "/api/login", api.LoginRequest{
		Email:    "hank@dea.gov",
		Password: "minerals-rocks",
	}, "")
	require.Equal(t, http.StatusOK, login.Code)

	var session api.LoginResponse
	require.NoError(t, json.NewDecoder(login.Body).Decode(&session))

	rec := postJSON(t, h.Revoke, "/api/revoke", nil, "Bearer "+session.RefreshToken)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// A revoked token can never refresh again
	rec = postJSON(t, h.Refresh, "/api/refresh", nil, "Bearer "+session.RefreshToken)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Revoking an unknown token is 404
	rec = postJSON(t, h.Revoke, "/api/revoke", nil, "Bearer deadbeef")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
