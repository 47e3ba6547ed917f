package handlers

import (
	"net/http"

	"github.com/meet89coder/AthleteAnalyticsBackend/internal/audit"
	"github.com/meet89coder/AthleteAnalyticsBackend/internal/auth"
	"github.com/meet89coder/AthleteAnalyticsBackend/internal/user"
)

type AuthHandler struct {
	users *user.Service
	codec *auth.TokenCodec
	audit *audit.Service
}

func NewAuthHandler(users *user.Service, codec *auth.TokenCodec, audit *audit.Service) *AuthHandler {
	return &AuthHandler{users: users, codec: codec, audit: audit}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		respondValidation(w, "Email and password are required", nil)
		return
	}

	u, err := h.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	token, expiresAt, err := h.codec.Issue(u.ID, u.Email, u.Role)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	ip := clientIP(r)
	h.audit.Record(r.Context(), audit.Entry{
		UserID:       &u.ID,
		Action:       "user.login",
		ResourceType: "user",
		ResourceID:   &u.ID,
		IPAddress:    &ip,
	})

	respondData(w, http.StatusOK, map[string]any{
		"token":      token,
		"expires_at": expiresAt,
		"user":       u,
	})
}

// Logout is stateless: tokens stay valid until expiry, the endpoint exists
// so clients have a uniform call to clear their session against.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if p, ok := auth.PrincipalFromContext(r.Context()); ok {
		ip := clientIP(r)
		h.audit.Record(r.Context(), audit.Entry{
			UserID:       &p.ID,
			Action:       "user.logout",
			ResourceType: "user",
			ResourceID:   &p.ID,
			IPAddress:    &ip,
		})
	}
	respondMessage(w, http.StatusOK, "Logged out successfully")
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}
	u, err := h.users.GetByID(r.Context(), p.ID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, u)
}

func clientIP(r *http.Request) string {
	// chi's RealIP middleware rewrites RemoteAddr from the forwarding headers
	return r.RemoteAddr
}
