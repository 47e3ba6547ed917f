package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meet89coder/AthleteAnalyticsBackend/internal/models"
)

func newTestMiddleware(t *testing.T) (*Middleware, *TokenCodec) {
	t.Helper()
	codec, err := NewTokenCodec("test-secret", time.Hour)
	require.NoError(t, err)
	return NewMiddleware(codec), codec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) (code, message string) {
	t.Helper()
	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	return body.Error.Code, body.Error.Message
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	mw, _ := newTestMiddleware(t)
	handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	code, msg := decodeError(t, rec)
	assert.Equal(t, "UNAUTHORIZED", code)
	assert.Equal(t, "Authorization header is required", msg)
}

func TestAuthenticate_NotBearer(t *testing.T) {
	mw, _ := newTestMiddleware(t)
	handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	_, msg := decodeError(t, rec)
	assert.Equal(t, "Bearer token is required", msg)
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	mw, _ := newTestMiddleware(t)
	handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: 5,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	signed, err := expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	_, msg := decodeError(t, rec)
	assert.Equal(t, "Token has expired", msg)
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	mw, _ := newTestMiddleware(t)
	handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	_, msg := decodeError(t, rec)
	assert.Equal(t, "Invalid token", msg)
}

func TestAuthenticate_AttachesPrincipal(t *testing.T) {
	mw, codec := newTestMiddleware(t)

	var got Principal
	handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFromContext(r.Context())
		require.True(t, ok)
		got = p
	}))

	token, _, err := codec.Issue(9, "m@example.com", models.RoleManager)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer "+token) // scheme is case-insensitive
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(9), got.ID)
	assert.Equal(t, "m@example.com", got.Email)
	assert.Equal(t, models.RoleManager, got.Role)
}
