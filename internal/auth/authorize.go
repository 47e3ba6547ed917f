package auth

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/meet89coder/AthleteAnalyticsBackend/internal/models"
)

var (
	ErrUnauthenticated  = errors.New("authentication required")
	ErrInsufficientRole = errors.New("insufficient permissions")
	ErrNotOwner         = errors.New("you can only access your own resources")
)

// Authorize is the static role check. An empty allowed set means any
// authenticated principal passes.
func Authorize(p *Principal, allowed ...models.UserRole) error {
	if p == nil {
		return ErrUnauthenticated
	}
	if len(allowed) == 0 {
		return nil
	}
	for _, role := range allowed {
		if p.Role == role {
			return nil
		}
	}
	return ErrInsufficientRole
}

// AuthorizeOwner allows the resource owner or a global admin.
func AuthorizeOwner(p *Principal, ownerID int64) error {
	if p == nil {
		return ErrUnauthenticated
	}
	if p.ID == ownerID || p.Role == models.RoleAdmin {
		return nil
	}
	return ErrNotOwner
}

// RequireRoles gates a route on the principal's global role.
func RequireRoles(roles ...models.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFromContext(r.Context())
			if !ok {
				writeUnauthorized(w, "Authentication required")
				return
			}
			if err := Authorize(&p, roles...); err != nil {
				writeAuthError(w, http.StatusForbidden, "FORBIDDEN", "Insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireOwnershipOrAdmin gates a route on the {id} URL param matching the
// principal, with an admin override.
func RequireOwnershipOrAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFromContext(r.Context())
		if !ok {
			writeUnauthorized(w, "Authentication required")
			return
		}
		ownerID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			writeAuthError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid user ID")
			return
		}
		if err := AuthorizeOwner(&p, ownerID); err != nil {
			writeAuthError(w, http.StatusForbidden, "FORBIDDEN", "You can only access your own resources")
			return
		}
		next.ServeHTTP(w, r)
	})
}
