package handlers

import (
	"net/http"

	"github.com/meet89coder/AthleteAnalyticsBackend/internal/audit"
	"github.com/meet89coder/AthleteAnalyticsBackend/internal/auth"
	"github.com/meet89coder/AthleteAnalyticsBackend/internal/tenant"
)

type TenantHandler struct {
	tenants *tenant.Service
	audit   *audit.Service
}

func NewTenantHandler(tenants *tenant.Service, audit *audit.Service) *TenantHandler {
	return &TenantHandler{tenants: tenants, audit: audit}
}

func (h *TenantHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in tenant.CreateInput
	if !decodeBody(w, r, &in) {
		return
	}
	if in.Name == "" || in.City == "" || in.State == "" || in.Country == "" {
		respondValidation(w, "Name, city, state and country are required", nil)
		return
	}

	t, err := h.tenants.Create(r.Context(), in)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	if p, ok := auth.PrincipalFromContext(r.Context()); ok {
		h.audit.Record(r.Context(), audit.Entry{
			UserID:       &p.ID,
			Action:       "tenant.create",
			ResourceType: "tenant",
			ResourceID:   &t.ID,
		})
	}
	respondData(w, http.StatusCreated, t)
}

func (h *TenantHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "tenant ID")
	if !ok {
		return
	}
	t, err := h.tenants.GetByID(r.Context(), id)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, t)
}

// List applies the caller's visibility: non-admins only see active tenants
// unless they filter explicitly.
func (h *TenantHandler) List(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.PrincipalFromContext(r.Context())
	q := r.URL.Query()

	tenants, pagination, err := h.tenants.List(r.Context(), tenant.ListParams{
		Page:      queryInt(r, "page", 1),
		Limit:     queryInt(r, "limit", 20),
		City:      q.Get("city"),
		State:     q.Get("state"),
		Country:   q.Get("country"),
		Search:    q.Get("search"),
		IsActive:  queryBoolPtr(r, "is_active"),
		SortBy:    q.Get("sort_by"),
		SortOrder: q.Get("sort_order"),
	}, p.Role)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, map[string]any{
		"tenants":    tenants,
		"pagination": pagination,
	})
}

func (h *TenantHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "tenant ID")
	if !ok {
		return
	}
	var in tenant.UpdateInput
	if !decodeBody(w, r, &in) {
		return
	}
	t, err := h.tenants.Update(r.Context(), id, in)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, t)
}

type tenantStatusRequest struct {
	IsActive *bool `json:"is_active"`
}

func (h *TenantHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "tenant ID")
	if !ok {
		return
	}
	var req tenantStatusRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.IsActive == nil {
		respondValidation(w, "is_active is required", nil)
		return
	}

	if err := h.tenants.UpdateStatus(r.Context(), id, *req.IsActive); err != nil {
		respondServiceError(w, r, err)
		return
	}

	if p, ok := auth.PrincipalFromContext(r.Context()); ok {
		h.audit.Record(r.Context(), audit.Entry{
			UserID:       &p.ID,
			Action:       "tenant.status_change",
			ResourceType: "tenant",
			ResourceID:   &id,
			Details:      map[string]any{"is_active": *req.IsActive},
		})
	}
	respondMessage(w, http.StatusOK, "Tenant status updated successfully")
}

func (h *TenantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "tenant ID")
	if !ok {
		return
	}
	if err := h.tenants.Delete(r.Context(), id); err != nil {
		respondServiceError(w, r, err)
		return
	}

	if p, ok := auth.PrincipalFromContext(r.Context()); ok {
		h.audit.Record(r.Context(), audit.Entry{
			UserID:       &p.ID,
			Action:       "tenant.delete",
			ResourceType: "tenant",
			ResourceID:   &id,
		})
	}
	respondMessage(w, http.StatusOK, "Tenant deleted successfully")
}
