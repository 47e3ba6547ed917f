package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meet89coder/AthleteAnalyticsBackend/internal/models"
)

func TestNewTokenCodec(t *testing.T) {
	_, err := NewTokenCodec("", time.Hour)
	assert.Error(t, err)

	_, err = NewTokenCodec("secret", 0)
	assert.Error(t, err)

	codec, err := NewTokenCodec("secret", time.Hour)
	require.NoError(t, err)
	assert.NotNil(t, codec)
}

func TestTokenCodec_IssueAndValidate(t *testing.T) {
	codec, err := NewTokenCodec("test-secret", time.Hour)
	require.NoError(t, err)

	token, expiresAt, err := codec.Issue(42, "coach@example.com", models.RoleCoach)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := codec.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "coach@example.com", claims.Email)
	assert.Equal(t, models.RoleCoach, claims.Role)
}

func TestTokenCodec_ValidateExpired(t *testing.T) {
	codec, err := NewTokenCodec("test-secret", time.Hour)
	require.NoError(t, err)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: 7,
		Email:  "late@example.com",
		Role:   models.RoleAthlete,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	signed, err := expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = codec.Validate(signed)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenCodec_ValidateMalformed(t *testing.T) {
	codec, err := NewTokenCodec("test-secret", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not.a.token"},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codec.Validate(tt.token)
			assert.ErrorIs(t, err, ErrTokenMalformed)
		})
	}
}

func TestTokenCodec_ValidateWrongSecret(t *testing.T) {
	issuer, err := NewTokenCodec("secret-a", time.Hour)
	require.NoError(t, err)
	verifier, err := NewTokenCodec("secret-b", time.Hour)
	require.NoError(t, err)

	token, _, err := issuer.Issue(1, "a@example.com", models.RoleAdmin)
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestTokenCodec_ValidateRejectsZeroUserID(t *testing.T) {
	codec, err := NewTokenCodec("test-secret", time.Hour)
	require.NoError(t, err)

	anonymous := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Email: "nobody@example.com",
		Role:  models.RoleAthlete,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := anonymous.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = codec.Validate(signed)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestTokenCodec_PeekExpiration(t *testing.T) {
	codec, err := NewTokenCodec("test-secret", time.Hour)
	require.NoError(t, err)

	token, expiresAt, err := codec.Issue(1, "a@example.com", models.RoleAdmin)
	require.NoError(t, err)

	peeked, err := codec.PeekExpiration(token)
	require.NoError(t, err)
	assert.WithinDuration(t, expiresAt, peeked, time.Second)

	_, err = codec.PeekExpiration("junk")
	assert.ErrorIs(t, err, ErrTokenMalformed)

	noExp := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: 1})
	signed, err := noExp.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = codec.PeekExpiration(signed)
	assert.ErrorIs(t, err, ErrNoExpiration)
}
