package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/meet89coder/AthleteAnalyticsBackend/internal/audit"
	"github.com/meet89coder/AthleteAnalyticsBackend/internal/auth"
	"github.com/meet89coder/AthleteAnalyticsBackend/internal/models"
	"github.com/meet89coder/AthleteAnalyticsBackend/internal/team"
	"github.com/meet89coder/AthleteAnalyticsBackend/internal/user"
)

type UserHandler struct {
	users *user.Service
	teams *team.Service
	audit *audit.Service
}

func NewUserHandler(users *user.Service, teams *team.Service, audit *audit.Service) *UserHandler {
	return &UserHandler{users: users, teams: teams, audit: audit}
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in user.CreateInput
	if !decodeBody(w, r, &in) {
		return
	}
	if in.Email == "" || in.FirstName == "" || in.LastName == "" {
		respondValidation(w, "Email, first name and last name are required", nil)
		return
	}
	if !in.Role.Valid() {
		respondValidation(w, "Invalid role", nil)
		return
	}
	if violations := auth.ValidatePasswordStrength(in.Password); len(violations) > 0 {
		respondValidation(w, "Password does not meet requirements", violations)
		return
	}

	u, err := h.users.Create(r.Context(), in)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	if p, ok := auth.PrincipalFromContext(r.Context()); ok {
		h.audit.Record(r.Context(), audit.Entry{
			UserID:       &p.ID,
			Action:       "user.create",
			ResourceType: "user",
			ResourceID:   &u.ID,
		})
	}
	respondData(w, http.StatusCreated, u)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "user ID")
	if !ok {
		return
	}
	u, err := h.users.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, u)
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	users, pagination, err := h.users.List(r.Context(), user.ListParams{
		Page:     queryInt(r, "page", 1),
		Limit:    queryInt(r, "limit", 20),
		Role:     q.Get("role"),
		TenantID: queryInt64Ptr(r, "tenant_id"),
		Search:   q.Get("search"),
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{
		"users":      users,
		"pagination": pagination,
	})
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "user ID")
	if !ok {
		return
	}
	var in user.UpdateInput
	if !decodeBody(w, r, &in) {
		return
	}
	u, err := h.users.Update(r.Context(), id, in)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, u)
}

type updateRoleRequest struct {
	Role models.UserRole `json:"role"`
}

func (h *UserHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "user ID")
	if !ok {
		return
	}
	var req updateRoleRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !req.Role.Valid() {
		respondValidation(w, "Invalid role", nil)
		return
	}

	u, err := h.users.UpdateRole(r.Context(), id, req.Role)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	if p, ok := auth.PrincipalFromContext(r.Context()); ok {
		h.audit.Record(r.Context(), audit.Entry{
			UserID:       &p.ID,
			Action:       "user.role_change",
			ResourceType: "user",
			ResourceID:   &u.ID,
			Details:      map[string]any{"role": req.Role},
		})
	}
	respondData(w, http.StatusOK, u)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "user ID")
	if !ok {
		return
	}
	p, _ := auth.PrincipalFromContext(r.Context())

	var req changePasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if violations := auth.ValidatePasswordStrength(req.NewPassword); len(violations) > 0 {
		respondValidation(w, "Password does not meet requirements", violations)
		return
	}

	// owners prove knowledge of the current password, admins do not
	verifyCurrent := !p.IsAdmin() || p.ID == id
	if err := h.users.ChangePassword(r.Context(), id, req.CurrentPassword, req.NewPassword, verifyCurrent); err != nil {
		respondServiceError(w, r, err)
		return
	}

	h.audit.Record(r.Context(), audit.Entry{
		UserID:       &p.ID,
		Action:       "user.password_change",
		ResourceType: "user",
		ResourceID:   &id,
	})
	respondMessage(w, http.StatusOK, "Password updated successfully")
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "user ID")
	if !ok {
		return
	}
	if err := h.users.Delete(r.Context(), id); err != nil {
		respondServiceError(w, r, err)
		return
	}

	if p, ok := auth.PrincipalFromContext(r.Context()); ok {
		h.audit.Record(r.Context(), audit.Entry{
			UserID:       &p.ID,
			Action:       "user.delete",
			ResourceType: "user",
			ResourceID:   &id,
		})
	}
	respondMessage(w, http.StatusOK, "User deleted successfully")
}

// GetByTenantUID looks a user up by their tenant-scoped unique id.
func (h *UserHandler) GetByTenantUID(w http.ResponseWriter, r *http.Request) {
	tuid := chi.URLParam(r, "tuid")
	if tuid == "" {
		respondValidation(w, "Invalid tenant unique ID", nil)
		return
	}
	u, err := h.users.GetByTenantUniqueID(r.Context(), tuid)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, u)
}

// Teams lists the teams the addressed user belongs to, with their role on
// each.
func (h *UserHandler) Teams(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "user ID")
	if !ok {
		return
	}
	memberships, err := h.teams.TeamsForUser(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{"teams": memberships})
}
