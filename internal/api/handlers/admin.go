package handlers

import (
	"net/http"
	"time"

	"github.com/meet89coder/AthleteAnalyticsBackend/internal/audit"
)

// AdminHandler exposes the audit trail to global admins.
type AdminHandler struct {
	audit *audit.Service
}

func NewAdminHandler(audit *audit.Service) *AdminHandler {
	return &AdminHandler{audit: audit}
}

func (h *AdminHandler) AuditLogs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := audit.ListParams{
		Page:         queryInt(r, "page", 1),
		Limit:        queryInt(r, "limit", 50),
		UserID:       queryInt64Ptr(r, "user_id"),
		Action:       q.Get("action"),
		ResourceType: q.Get("resource_type"),
	}
	if v := q.Get("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			respondValidation(w, "Invalid from timestamp, expected RFC3339", nil)
			return
		}
		params.From = &t
	}
	if v := q.Get("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			respondValidation(w, "Invalid to timestamp, expected RFC3339", nil)
			return
		}
		params.To = &t
	}

	logs, pagination, err := h.audit.List(r.Context(), params)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{
		"audit_logs": logs,
		"pagination": pagination,
	})
}
