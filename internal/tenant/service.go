package tenant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/meet89coder/AthleteAnalyticsBackend/internal/database"
	"github.com/meet89coder/AthleteAnalyticsBackend/internal/models"
)

var (
	ErrNotFound   = errors.New("tenant not found")
	ErrNameExists = errors.New("tenant name already exists")
)

type Service struct {
	db database.Querier
}

func NewService(db database.Querier) *Service {
	return &Service{db: db}
}

type CreateInput struct {
	Name        string  `json:"name"`
	City        string  `json:"city"`
	State       string  `json:"state"`
	Country     string  `json:"country"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

type UpdateInput struct {
	Name        *string `json:"name,omitempty"`
	City        *string `json:"city,omitempty"`
	State       *string `json:"state,omitempty"`
	Country     *string `json:"country,omitempty"`
	Description *string `json:"description,omitempty"`
}

type ListParams struct {
	Page      int
	Limit     int
	City      string
	State     string
	Country   string
	Search    string
	IsActive  *bool
	SortBy    string
	SortOrder string
}

const tenantColumns = "id, name, city, state, country, description, is_active, created_at, updated_at"

func scanTenant(row pgx.Row) (*models.Tenant, error) {
	var t models.Tenant
	err := row.Scan(&t.ID, &t.Name, &t.City, &t.State, &t.Country, &t.Description, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan tenant: %w", err)
	}
	return &t, nil
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Tenant, error) {
	name := strings.TrimSpace(in.Name)

	exists, err := s.nameExists(ctx, name, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrNameExists
	}

	isActive := true
	if in.IsActive != nil {
		isActive = *in.IsActive
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO tenants (name, city, state, country, description, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+tenantColumns,
		name, in.City, in.State, in.Country, in.Description, isActive,
	)
	return scanTenant(row)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*models.Tenant, error) {
	row := s.db.QueryRow(ctx, "SELECT "+tenantColumns+" FROM tenants WHERE id = $1", id)
	return scanTenant(row)
}

func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (*models.Tenant, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name != existing.Name {
			exists, err := s.nameExists(ctx, name, id)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, ErrNameExists
			}
		}
		in.Name = &name
	}

	set := []string{"updated_at = now()"}
	args := []any{id}
	add := func(col string, v any) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if in.Name != nil {
		add("name", *in.Name)
	}
	if in.City != nil {
		add("city", *in.City)
	}
	if in.State != nil {
		add("state", *in.State)
	}
	if in.Country != nil {
		add("country", *in.Country)
	}
	if in.Description != nil {
		add("description", *in.Description)
	}

	query := fmt.Sprintf("UPDATE tenants SET %s WHERE id = $1 RETURNING %s", strings.Join(set, ", "), tenantColumns)
	return scanTenant(s.db.QueryRow(ctx, query, args...))
}

func (s *Service) UpdateStatus(ctx context.Context, id int64, isActive bool) error {
	tag, err := s.db.Exec(ctx, "UPDATE tenants SET is_active = $2, updated_at = now() WHERE id = $1", id, isActive)
	if err != nil {
		return fmt.Errorf("update tenant status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM tenants WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete tenant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// EffectiveActiveFilter resolves the is_active predicate a list query should
// carry. Admins see what they ask for. Non-admins get active-only by
// default; an explicit filter value is passed through unchanged.
func EffectiveActiveFilter(requested *bool, role models.UserRole) *bool {
	if role == models.RoleAdmin {
		return requested
	}
	if requested == nil {
		active := true
		return &active
	}
	return requested
}

func (s *Service) List(ctx context.Context, params ListParams, role models.UserRole) ([]models.Tenant, models.Pagination, error) {
	page := params.Page
	if page <= 0 {
		page = 1
	}
	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	where := []string{"true"}
	args := []any{}
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}

	if f := EffectiveActiveFilter(params.IsActive, role); f != nil {
		add("is_active = $%d", *f)
	}
	if params.City != "" {
		add("city ILIKE $%d", "%"+params.City+"%")
	}
	if params.State != "" {
		add("state ILIKE $%d", "%"+params.State+"%")
	}
	if params.Country != "" {
		add("country ILIKE $%d", "%"+params.Country+"%")
	}
	if params.Search != "" {
		args = append(args, "%"+params.Search+"%")
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", len(args), len(args)))
	}

	whereClause := strings.Join(where, " AND ")

	var total int
	if err := s.db.QueryRow(ctx, "SELECT count(*) FROM tenants WHERE "+whereClause, args...).Scan(&total); err != nil {
		return nil, models.Pagination{}, fmt.Errorf("count tenants: %w", err)
	}

	sortBy := "created_at"
	switch params.SortBy {
	case "name", "city", "state", "country", "created_at":
		sortBy = params.SortBy
	}
	order := "DESC"
	if strings.EqualFold(params.SortOrder, "asc") {
		order = "ASC"
	}

	args = append(args, limit, (page-1)*limit)
	query := fmt.Sprintf(
		"SELECT %s FROM tenants WHERE %s ORDER BY %s %s LIMIT $%d OFFSET $%d",
		tenantColumns, whereClause, sortBy, order, len(args)-1, len(args),
	)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, models.Pagination{}, fmt.Errorf("list tenants: %w", err)
	}
	defer rows.Close()

	var tenants []models.Tenant
	for rows.Next() {
		var t models.Tenant
		if err := rows.Scan(&t.ID, &t.Name, &t.City, &t.State, &t.Country, &t.Description, &t.IsActive, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, models.Pagination{}, fmt.Errorf("scan tenant: %w", err)
		}
		tenants = append(tenants, t)
	}
	if err := rows.Err(); err != nil {
		return nil, models.Pagination{}, fmt.Errorf("iterate tenants: %w", err)
	}

	return tenants, models.NewPagination(page, limit, total), nil
}

func (s *Service) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	if err := s.db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM tenants WHERE id = $1)", id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check tenant exists: %w", err)
	}
	return exists, nil
}

func (s *Service) nameExists(ctx context.Context, name string, excludeID int64) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM tenants WHERE name = $1 AND id <> $2)",
		name, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check tenant name: %w", err)
	}
	return exists, nil
}
