package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// Middleware is the authentication gate: it extracts the bearer token,
// validates it through the codec, and attaches the resulting Principal to
// the request context. Every rejection is a 401 with the UNAUTHORIZED code
// and a message naming what was wrong with the credential.
type Middleware struct {
	codec *TokenCodec
}

func NewMiddleware(codec *TokenCodec) *Middleware {
	return &Middleware{codec: codec}
}

func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			writeUnauthorized(w, "Authorization header is required")
			return
		}

		token, ok := bearerToken(header)
		if !ok {
			writeUnauthorized(w, "Bearer token is required")
			return
		}

		claims, err := m.codec.Validate(token)
		if err != nil {
			switch {
			case errors.Is(err, ErrTokenExpired):
				writeUnauthorized(w, "Token has expired")
			default:
				writeUnauthorized(w, "Invalid token")
			}
			return
		}

		ctx := WithPrincipal(r.Context(), Principal{
			ID:    claims.UserID,
			Email: claims.Email,
			Role:  claims.Role,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}

func writeUnauthorized(w http.ResponseWriter, msg string) {
	writeAuthError(w, http.StatusUnauthorized, "UNAUTHORIZED", msg)
}

func writeAuthError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   map[string]string{"code": code, "message": msg},
	})
}
