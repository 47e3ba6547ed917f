package auth

import (
	"context"

	"github.com/meet89coder/AthleteAnalyticsBackend/internal/models"
)

// Principal is the resolved identity of the caller for one request. It is
// built from token claims by the authentication gate, lives only in the
// request context, and is never persisted.
type Principal struct {
	ID    int64
	Email string
	Role  models.UserRole
}

func (p Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin
}

type principalKey struct{}

func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
