package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meet89coder/AthleteAnalyticsBackend/internal/auth"
	"github.com/meet89coder/AthleteAnalyticsBackend/internal/team"
	"github.com/meet89coder/AthleteAnalyticsBackend/internal/tenant"
	"github.com/meet89coder/AthleteAnalyticsBackend/internal/user"
)

func TestRespondServiceError_Mapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{auth.ErrUnauthenticated, http.StatusUnauthorized, "UNAUTHORIZED"},
		{auth.ErrInsufficientRole, http.StatusForbidden, "FORBIDDEN"},
		{auth.ErrNotOwner, http.StatusForbidden, "FORBIDDEN"},
		{team.ErrNotMember, http.StatusForbidden, "FORBIDDEN"},
		{team.ErrRoleDenied, http.StatusForbidden, "FORBIDDEN"},
		{team.ErrTeamNotFound, http.StatusNotFound, "TEAM_NOT_FOUND"},
		{team.ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
		{user.ErrNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
		{tenant.ErrNotFound, http.StatusNotFound, "TENANT_NOT_FOUND"},
		{team.ErrMemberExists, http.StatusConflict, "MEMBER_ALREADY_EXISTS"},
		{team.ErrDuplicateMembers, http.StatusBadRequest, "DUPLICATE_MEMBERS"},
		{tenant.ErrNameExists, http.StatusConflict, "TENANT_NAME_EXISTS"},
		{user.ErrEmailExists, http.StatusConflict, "EMAIL_EXISTS"},
		{user.ErrActiveMemberships, http.StatusConflict, "ACTIVE_MEMBERSHIPS"},
		{user.ErrInvalidPassword, http.StatusBadRequest, "INVALID_PASSWORD"},
		{user.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.code+"/"+tt.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			respondServiceError(rec, req, tt.err)

			assert.Equal(t, tt.status, rec.Code)

			var body errorEnvelope
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.code, body.Error.Code)
		})
	}
}

func TestRespondServiceError_WrappedErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	respondServiceError(rec, req, errors.Join(errors.New("context"), team.ErrTeamNotFound))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRespondData_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	respondData(rec, http.StatusCreated, map[string]string{"k": "v"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Success bool              `json:"success"`
		Data    map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "v", body.Data["k"])
}

func TestDecodeBody_RejectsUnknownFields(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", jsonBody(`{"email":"a@b.c","bogus":1}`))

	var dst loginRequest
	ok := decodeBody(rec, req, &dst)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
