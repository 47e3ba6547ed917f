package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/meet89coder/AthleteAnalyticsBackend/internal/models"
)

func TestAuthorize(t *testing.T) {
	coach := &Principal{ID: 1, Role: models.RoleCoach}
	admin := &Principal{ID: 2, Role: models.RoleAdmin}

	tests := []struct {
		name    string
		p       *Principal
		allowed []models.UserRole
		want    error
	}{
		{"nil principal", nil, nil, ErrUnauthenticated},
		{"empty set allows any authenticated", coach, nil, nil},
		{"role in set", coach, []models.UserRole{models.RoleCoach, models.RoleManager}, nil},
		{"role not in set", coach, []models.UserRole{models.RoleAdmin}, ErrInsufficientRole},
		{"admin still checked against set", admin, []models.UserRole{models.RoleAdmin}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.p, tt.allowed...)
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestAuthorizeOwner(t *testing.T) {
	owner := &Principal{ID: 10, Role: models.RoleAthlete}
	admin := &Principal{ID: 2, Role: models.RoleAdmin}
	other := &Principal{ID: 11, Role: models.RoleAthlete}

	assert.ErrorIs(t, AuthorizeOwner(nil, 10), ErrUnauthenticated)
	assert.NoError(t, AuthorizeOwner(owner, 10))
	assert.NoError(t, AuthorizeOwner(admin, 10))
	assert.ErrorIs(t, AuthorizeOwner(other, 10), ErrNotOwner)
}

func serveWithPrincipal(handler http.Handler, p *Principal, target string, params map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if p != nil {
		req = req.WithContext(WithPrincipal(req.Context(), *p))
	}
	if params != nil {
		rctx := chi.NewRouteContext()
		for k, v := range params {
			rctx.URLParams.Add(k, v)
		}
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRequireRoles(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	handler := RequireRoles(models.RoleAdmin)(next)

	rec := serveWithPrincipal(handler, nil, "/", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serveWithPrincipal(handler, &Principal{ID: 1, Role: models.RoleCoach}, "/", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = serveWithPrincipal(handler, &Principal{ID: 1, Role: models.RoleAdmin}, "/", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRequireOwnershipOrAdmin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	handler := RequireOwnershipOrAdmin(next)

	rec := serveWithPrincipal(handler, &Principal{ID: 5, Role: models.RoleAthlete}, "/users/abc", map[string]string{"id": "abc"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serveWithPrincipal(handler, &Principal{ID: 5, Role: models.RoleAthlete}, "/users/6", map[string]string{"id": "6"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = serveWithPrincipal(handler, &Principal{ID: 5, Role: models.RoleAthlete}, "/users/5", map[string]string{"id": "5"})
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = serveWithPrincipal(handler, &Principal{ID: 1, Role: models.RoleAdmin}, "/users/5", map[string]string{"id": "5"})
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
