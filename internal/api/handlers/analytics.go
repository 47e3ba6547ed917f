package handlers

import (
	"net/http"

	"github.com/meet89coder/AthleteAnalyticsBackend/internal/analytics"
	"github.com/meet89coder/AthleteAnalyticsBackend/internal/auth"
	"github.com/meet89coder/AthleteAnalyticsBackend/internal/team"
	"github.com/meet89coder/AthleteAnalyticsBackend/internal/tenant"
)

type AnalyticsHandler struct {
	analytics *analytics.Service
	teams     *team.Service
	tenants   *tenant.Service
}

func NewAnalyticsHandler(a *analytics.Service, teams *team.Service, tenants *tenant.Service) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: a, teams: teams, tenants: tenants}
}

// UserTeams gives a user's cross-team overview. Owner or admin.
func (h *AnalyticsHandler) UserTeams(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userID", "user ID")
	if !ok {
		return
	}
	p, _ := auth.PrincipalFromContext(r.Context())
	if err := auth.AuthorizeOwner(&p, userID); err != nil {
		respondServiceError(w, r, err)
		return
	}

	memberships, err := h.teams.TeamsForUser(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{
		"user_id": userID,
		"teams":   memberships,
	})
}

// TenantTeamsAnalytics aggregates a tenant's teams: activity totals plus the
// win-rate standing of every team.
func (h *AnalyticsHandler) TenantTeamsAnalytics(w http.ResponseWriter, r *http.Request) {
	tenantID, ok := pathID(w, r, "tenantID", "tenant ID")
	if !ok {
		return
	}
	exists, err := h.tenants.Exists(r.Context(), tenantID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	if !exists {
		respondServiceError(w, r, tenant.ErrNotFound)
		return
	}

	sum, err := h.analytics.TenantSummary(r.Context(), tenantID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	standings, err := h.analytics.Standings(r.Context(), tenantID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{
		"summary":   sum,
		"standings": standings,
	})
}
