package handlers

import (
	"net/http"
	"time"

	"github.com/meet89coder/AthleteAnalyticsBackend/internal/audit"
	"github.com/meet89coder/AthleteAnalyticsBackend/internal/auth"
	"github.com/meet89coder/AthleteAnalyticsBackend/internal/models"
	"github.com/meet89coder/AthleteAnalyticsBackend/internal/queue"
	"github.com/meet89coder/AthleteAnalyticsBackend/internal/team"
	"github.com/meet89coder/AthleteAnalyticsBackend/internal/tenant"
)

type TeamHandler struct {
	teams    *team.Service
	tenants  *tenant.Service
	resolver *team.PermissionResolver
	audit    *audit.Service
	jobs     *queue.Client
}

func NewTeamHandler(teams *team.Service, tenants *tenant.Service, resolver *team.PermissionResolver, audit *audit.Service, jobs *queue.Client) *TeamHandler {
	return &TeamHandler{teams: teams, tenants: tenants, resolver: resolver, audit: audit, jobs: jobs}
}

func (h *TeamHandler) principal(r *http.Request) *auth.Principal {
	p, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		return nil
	}
	return &p
}

type createTeamRequest struct {
	Name     string             `json:"name"`
	Category string             `json:"category"`
	TenantID int64              `json:"tenant_id"`
	Goals    *string            `json:"goals,omitempty"`
	Members  []team.MemberInput `json:"members,omitempty"`
}

func (h *TeamHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createTeamRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" || req.Category == "" || req.TenantID == 0 {
		respondValidation(w, "Name, category and tenant_id are required", nil)
		return
	}
	for _, m := range req.Members {
		if !m.Role.Valid() {
			respondValidation(w, "Invalid team member role", nil)
			return
		}
	}

	exists, err := h.tenants.Exists(r.Context(), req.TenantID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	if !exists {
		respondServiceError(w, r, tenant.ErrNotFound)
		return
	}

	t, err := h.teams.Create(r.Context(), team.CreateInput{
		Name:     req.Name,
		Category: req.Category,
		TenantID: req.TenantID,
		Goals:    req.Goals,
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	var members []models.TeamMember
	if len(req.Members) > 0 {
		members, err = h.teams.AddMembers(r.Context(), t.ID, req.Members)
		if err != nil {
			respondServiceError(w, r, err)
			return
		}
	}

	if p := h.principal(r); p != nil {
		h.audit.Record(r.Context(), audit.Entry{
			UserID:       &p.ID,
			Action:       "team.create",
			ResourceType: "team",
			ResourceID:   &t.ID,
		})
	}
	respondData(w, http.StatusCreated, map[string]any{
		"team":    t,
		"members": members,
	})
}

// Complete returns the team with its full roster, games, activities and
// schedules.
func (h *TeamHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "team ID")
	if !ok {
		return
	}
	c, err := h.teams.GetComplete(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, c)
}

func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "team ID")
	if !ok {
		return
	}
	t, err := h.teams.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, t)
}

func (h *TeamHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	teams, pagination, err := h.teams.List(r.Context(), team.ListParams{
		Page:     queryInt(r, "page", 1),
		Limit:    queryInt(r, "limit", 20),
		TenantID: queryInt64Ptr(r, "tenant_id"),
		Category: q.Get("category"),
		Search:   q.Get("search"),
	})
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{
		"teams":      teams,
		"pagination": pagination,
	})
}

func (h *TeamHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "team ID")
	if !ok {
		return
	}
	if err := h.resolver.CheckManage(r.Context(), h.principal(r), id); err != nil {
		respondServiceError(w, r, err)
		return
	}

	var in team.UpdateInput
	if !decodeBody(w, r, &in) {
		return
	}
	t, err := h.teams.Update(r.Context(), id, in)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, t)
}

// Delete removes a team outright. Admin only, enforced at the route.
func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "team ID")
	if !ok {
		return
	}
	if err := h.teams.Delete(r.Context(), id); err != nil {
		respondServiceError(w, r, err)
		return
	}

	if p := h.principal(r); p != nil {
		h.audit.Record(r.Context(), audit.Entry{
			UserID:       &p.ID,
			Action:       "team.delete",
			ResourceType: "team",
			ResourceID:   &id,
		})
	}
	respondMessage(w, http.StatusOK, "Team deleted successfully")
}

// Dashboard is visible to any active member of the team, or an admin.
func (h *TeamHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "team ID")
	if !ok {
		return
	}
	if err := h.resolver.Check(r.Context(), h.principal(r), id); err != nil {
		respondServiceError(w, r, err)
		return
	}

	d, err := h.teams.Dashboard(r.Context(), id, time.Now())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, d)
}

type addMembersRequest struct {
	Members []team.MemberInput `json:"members"`
}

func (h *TeamHandler) AddMembers(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "team ID")
	if !ok {
		return
	}
	if err := h.resolver.CheckManage(r.Context(), h.principal(r), id); err != nil {
		respondServiceError(w, r, err)
		return
	}

	var req addMembersRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if len(req.Members) == 0 {
		respondValidation(w, "At least one member is required", nil)
		return
	}
	for _, m := range req.Members {
		if !m.Role.Valid() {
			respondValidation(w, "Invalid team member role", nil)
			return
		}
	}

	added, err := h.teams.AddMembers(r.Context(), id, req.Members)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	if p := h.principal(r); p != nil {
		h.audit.Record(r.Context(), audit.Entry{
			UserID:       &p.ID,
			Action:       "team.members_add",
			ResourceType: "team",
			ResourceID:   &id,
			Details:      map[string]any{"count": len(added)},
		})
	}
	respondData(w, http.StatusCreated, map[string]any{"members": added})
}

func (h *TeamHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "team ID")
	if !ok {
		return
	}
	if err := h.resolver.Check(r.Context(), h.principal(r), id); err != nil {
		respondServiceError(w, r, err)
		return
	}

	includeInactive := false
	if b := queryBoolPtr(r, "include_inactive"); b != nil {
		includeInactive = *b
	}
	members, err := h.teams.ListMembers(r.Context(), id, includeInactive)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{"members": members})
}

type memberRoleRequest struct {
	Role string `json:"role"`
}

func (h *TeamHandler) UpdateMemberRole(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "team ID")
	if !ok {
		return
	}
	userID, ok := pathID(w, r, "userID", "user ID")
	if !ok {
		return
	}
	if err := h.resolver.CheckManage(r.Context(), h.principal(r), id); err != nil {
		respondServiceError(w, r, err)
		return
	}

	var req memberRoleRequest
	if !decodeBody(w, r, &req) {
		return
	}
	role := models.TeamMemberRole(req.Role)
	if !role.Valid() {
		respondValidation(w, "Invalid team member role", nil)
		return
	}

	m, err := h.teams.UpdateMemberRole(r.Context(), id, userID, role)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, m)
}

func (h *TeamHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "team ID")
	if !ok {
		return
	}
	userID, ok := pathID(w, r, "userID", "user ID")
	if !ok {
		return
	}
	if err := h.resolver.CheckManage(r.Context(), h.principal(r), id); err != nil {
		respondServiceError(w, r, err)
		return
	}

	if err := h.teams.RemoveMember(r.Context(), id, userID); err != nil {
		respondServiceError(w, r, err)
		return
	}

	if p := h.principal(r); p != nil {
		h.audit.Record(r.Context(), audit.Entry{
			UserID:       &p.ID,
			Action:       "team.member_remove",
			ResourceType: "team",
			ResourceID:   &id,
			Details:      map[string]any{"user_id": userID},
		})
	}
	respondMessage(w, http.StatusOK, "Member removed successfully")
}

func (h *TeamHandler) AddGame(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "team ID")
	if !ok {
		return
	}
	if err := h.resolver.CheckManage(r.Context(), h.principal(r), id); err != nil {
		respondServiceError(w, r, err)
		return
	}

	var in team.GameInput
	if !decodeBody(w, r, &in) {
		return
	}
	if in.Name == "" || in.PlayedAgainst == "" || in.PlayedOn.IsZero() {
		respondValidation(w, "Name, played_against and played_on are required", nil)
		return
	}
	if !in.Result.Valid() {
		respondValidation(w, "Result must be win, loss or draw", nil)
		return
	}

	g, err := h.teams.AddGame(r.Context(), id, in)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, g)
}

func (h *TeamHandler) ListGames(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "team ID")
	if !ok {
		return
	}
	games, stats, pagination, err := h.teams.ListGames(r.Context(), id, queryInt(r, "page", 1), queryInt(r, "limit", 20))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{
		"games":      games,
		"statistics": stats,
		"pagination": pagination,
	})
}

func (h *TeamHandler) UpdateGame(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "team ID")
	if !ok {
		return
	}
	gameID, ok := pathID(w, r, "gameID", "game ID")
	if !ok {
		return
	}
	if err := h.resolver.CheckManage(r.Context(), h.principal(r), id); err != nil {
		respondServiceError(w, r, err)
		return
	}

	var in team.GameInput
	if !decodeBody(w, r, &in) {
		return
	}
	if !in.Result.Valid() {
		respondValidation(w, "Result must be win, loss or draw", nil)
		return
	}

	g, err := h.teams.UpdateGame(r.Context(), id, gameID, in)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, g)
}

func (h *TeamHandler) DeleteGame(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "team ID")
	if !ok {
		return
	}
	gameID, ok := pathID(w, r, "gameID", "game ID")
	if !ok {
		return
	}
	if err := h.resolver.CheckManage(r.Context(), h.principal(r), id); err != nil {
		respondServiceError(w, r, err)
		return
	}
	if err := h.teams.DeleteGame(r.Context(), id, gameID); err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondMessage(w, http.StatusOK, "Game deleted successfully")
}

type activityRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

func (h *TeamHandler) AddActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "team ID")
	if !ok {
		return
	}
	if err := h.resolver.CheckManage(r.Context(), h.principal(r), id); err != nil {
		respondServiceError(w, r, err)
		return
	}

	var req activityRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" {
		respondValidation(w, "Name is required", nil)
		return
	}

	a, err := h.teams.AddActivity(r.Context(), id, req.Name, req.Description)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, a)
}

func (h *TeamHandler) ListActivities(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "team ID")
	if !ok {
		return
	}
	activities, err := h.teams.ListActivities(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{"activities": activities})
}

func (h *TeamHandler) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "team ID")
	if !ok {
		return
	}
	activityID, ok := pathID(w, r, "activityID", "activity ID")
	if !ok {
		return
	}
	if err := h.resolver.CheckManage(r.Context(), h.principal(r), id); err != nil {
		respondServiceError(w, r, err)
		return
	}
	if err := h.teams.DeleteActivity(r.Context(), id, activityID); err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondMessage(w, http.StatusOK, "Activity deleted successfully")
}

func (h *TeamHandler) AddSchedule(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "team ID")
	if !ok {
		return
	}
	if err := h.resolver.CheckManage(r.Context(), h.principal(r), id); err != nil {
		respondServiceError(w, r, err)
		return
	}

	var in team.ScheduleInput
	if !decodeBody(w, r, &in) {
		return
	}
	if in.Name == "" || in.ScheduledAt.IsZero() {
		respondValidation(w, "Name and scheduled_at are required", nil)
		return
	}
	if !in.Type.Valid() {
		respondValidation(w, "Type must be game, activity or session", nil)
		return
	}

	sc, err := h.teams.AddSchedule(r.Context(), id, in)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	h.jobs.EnqueueScheduleReminder(sc)
	respondData(w, http.StatusCreated, sc)
}

func (h *TeamHandler) ListSchedules(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "team ID")
	if !ok {
		return
	}
	var from *time.Time
	if b := queryBoolPtr(r, "upcoming"); b != nil && *b {
		now := time.Now()
		from = &now
	}
	schedules, err := h.teams.ListSchedules(r.Context(), id, from)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{"schedules": schedules})
}

func (h *TeamHandler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "team ID")
	if !ok {
		return
	}
	scheduleID, ok := pathID(w, r, "scheduleID", "schedule ID")
	if !ok {
		return
	}
	if err := h.resolver.CheckManage(r.Context(), h.principal(r), id); err != nil {
		respondServiceError(w, r, err)
		return
	}

	var in team.ScheduleInput
	if !decodeBody(w, r, &in) {
		return
	}
	if !in.Type.Valid() {
		respondValidation(w, "Type must be game, activity or session", nil)
		return
	}

	sc, err := h.teams.UpdateSchedule(r.Context(), id, scheduleID, in)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	h.jobs.EnqueueScheduleReminder(sc)
	respondData(w, http.StatusOK, sc)
}

func (h *TeamHandler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "team ID")
	if !ok {
		return
	}
	scheduleID, ok := pathID(w, r, "scheduleID", "schedule ID")
	if !ok {
		return
	}
	if err := h.resolver.CheckManage(r.Context(), h.principal(r), id); err != nil {
		respondServiceError(w, r, err)
		return
	}
	if err := h.teams.DeleteSchedule(r.Context(), id, scheduleID); err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondMessage(w, http.StatusOK, "Schedule deleted successfully")
}
