package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/meet89coder/AthleteAnalyticsBackend/internal/models"
)

var (
	// ErrTokenMalformed covers everything that is not a valid token at all:
	// parse failures, bad signatures, wrong signing method.
	ErrTokenMalformed = errors.New("invalid token")
	// ErrTokenExpired means the token verified but its exp claim has passed.
	ErrTokenExpired = errors.New("token has expired")
	// ErrNoExpiration is returned by PeekExpiration for tokens without exp.
	ErrNoExpiration = errors.New("token does not have expiration")
)

// Claims are the identity assertions carried by a session token.
type Claims struct {
	UserID int64           `json:"user_id"`
	Email  string          `json:"email"`
	Role   models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// TokenCodec issues and validates HS256 session tokens. The signing secret
// and TTL are fixed at construction and never mutated, so a single codec is
// safe for concurrent use.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenCodec(secret string, ttl time.Duration) (*TokenCodec, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	if ttl <= 0 {
		return nil, errors.New("token ttl must be positive")
	}
	return &TokenCodec{secret: []byte(secret), ttl: ttl}, nil
}

// Issue signs a token for the given identity with exp = now + ttl.
func (c *TokenCodec) Issue(userID int64, email string, role models.UserRole) (string, time.Time, error) {
	now := time.Now().UTC()
	expiresAt := now.Add(c.ttl)

	claims := Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Validate verifies signature and expiry. Expired-but-authentic tokens fail
// with ErrTokenExpired; anything else fails with ErrTokenMalformed, so the
// gate can word its rejection accordingly.
func (c *TokenCodec) Validate(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenMalformed
	}
	if !token.Valid || claims.UserID == 0 {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}

// PeekExpiration decodes the exp claim without verifying the signature.
func (c *TokenCodec) PeekExpiration(tokenStr string) (time.Time, error) {
	claims := &Claims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	if _, _, err := parser.ParseUnverified(tokenStr, claims); err != nil {
		return time.Time{}, ErrTokenMalformed
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, ErrNoExpiration
	}
	return claims.ExpiresAt.Time, nil
}
