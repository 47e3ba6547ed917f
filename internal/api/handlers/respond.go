package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/meet89coder/AthleteAnalyticsBackend/internal/auth"
	"github.com/meet89coder/AthleteAnalyticsBackend/internal/team"
	"github.com/meet89coder/AthleteAnalyticsBackend/internal/tenant"
	"github.com/meet89coder/AthleteAnalyticsBackend/internal/user"
)

type successEnvelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

type errorEnvelope struct {
	Success bool      `json:"success"`
	Error   errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("write response", "error", err)
	}
}

func respondData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, successEnvelope{Success: true, Data: data})
}

func respondMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, successEnvelope{Success: true, Message: msg})
}

func respondError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorEnvelope{Error: errorBody{Code: code, Message: msg}})
}

func respondValidation(w http.ResponseWriter, msg string, details any) {
	writeJSON(w, http.StatusBadRequest, errorEnvelope{Error: errorBody{
		Code:    "VALIDATION_ERROR",
		Message: msg,
		Details: details,
	}})
}

// respondServiceError maps service-layer sentinel errors onto the API's
// status and code taxonomy. Anything unmapped is a 500 and gets logged.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, auth.ErrUnauthenticated):
		respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
	case errors.Is(err, auth.ErrInsufficientRole):
		respondError(w, http.StatusForbidden, "FORBIDDEN", "Insufficient permissions")
	case errors.Is(err, auth.ErrNotOwner):
		respondError(w, http.StatusForbidden, "FORBIDDEN", "You can only access your own resources")
	case errors.Is(err, team.ErrNotMember), errors.Is(err, team.ErrRoleDenied):
		respondError(w, http.StatusForbidden, "FORBIDDEN", "You do not have permission to perform this action on this team")
	case errors.Is(err, team.ErrTeamNotFound):
		respondError(w, http.StatusNotFound, "TEAM_NOT_FOUND", "Team not found")
	case errors.Is(err, team.ErrUserNotFound), errors.Is(err, user.ErrNotFound):
		respondError(w, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
	case errors.Is(err, tenant.ErrNotFound):
		respondError(w, http.StatusNotFound, "TENANT_NOT_FOUND", "Tenant not found")
	case errors.Is(err, team.ErrGameNotFound):
		respondError(w, http.StatusNotFound, "GAME_NOT_FOUND", "Game not found")
	case errors.Is(err, team.ErrActivityNotFound):
		respondError(w, http.StatusNotFound, "ACTIVITY_NOT_FOUND", "Activity not found")
	case errors.Is(err, team.ErrScheduleNotFound):
		respondError(w, http.StatusNotFound, "SCHEDULE_NOT_FOUND", "Schedule not found")
	case errors.Is(err, team.ErrMemberNotFound):
		respondError(w, http.StatusNotFound, "MEMBER_NOT_FOUND", "Team member not found")
	case errors.Is(err, team.ErrMemberExists):
		respondError(w, http.StatusConflict, "MEMBER_ALREADY_EXISTS", "User is already an active member of this team")
	case errors.Is(err, team.ErrDuplicateMembers):
		respondError(w, http.StatusBadRequest, "DUPLICATE_MEMBERS", "Duplicate members in request")
	case errors.Is(err, tenant.ErrNameExists):
		respondError(w, http.StatusConflict, "TENANT_NAME_EXISTS", "A tenant with this name already exists")
	case errors.Is(err, user.ErrEmailExists):
		respondError(w, http.StatusConflict, "EMAIL_EXISTS", "A user with this email already exists")
	case errors.Is(err, user.ErrActiveMemberships):
		respondError(w, http.StatusConflict, "ACTIVE_MEMBERSHIPS", "User has active team memberships and cannot be deleted")
	case errors.Is(err, user.ErrInvalidPassword):
		respondError(w, http.StatusBadRequest, "INVALID_PASSWORD", "Current password is incorrect")
	case errors.Is(err, user.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
	default:
		slog.Error("internal error", "method", r.Method, "path", r.URL.Path, "error", err)
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		respondValidation(w, "Invalid request body", err.Error())
		return false
	}
	return true
}
