package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/meet89coder/AthleteAnalyticsBackend/internal/auth"
	"github.com/meet89coder/AthleteAnalyticsBackend/internal/database"
	"github.com/meet89coder/AthleteAnalyticsBackend/internal/models"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidPassword    = errors.New("current password is incorrect")
	ErrActiveMemberships  = errors.New("user has active team memberships")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type Service struct {
	db     database.Querier
	hasher *auth.Hasher
}

func NewService(db database.Querier, hasher *auth.Hasher) *Service {
	return &Service{db: db, hasher: hasher}
}

type CreateInput struct {
	Email                  string          `json:"email"`
	Password               string          `json:"password"`
	Role                   models.UserRole `json:"role"`
	FirstName              string          `json:"first_name"`
	LastName               string          `json:"last_name"`
	TenantUniqueID         string          `json:"tenant_unique_id,omitempty"`
	TenantID               *int64          `json:"tenant_id,omitempty"`
	DateOfBirth            *time.Time      `json:"date_of_birth,omitempty"`
	Height                 *float64        `json:"height,omitempty"`
	Weight                 *float64        `json:"weight,omitempty"`
	Phone                  *string         `json:"phone,omitempty"`
	EmergencyContactName   *string         `json:"emergency_contact_name,omitempty"`
	EmergencyContactNumber *string         `json:"emergency_contact_number,omitempty"`
}

type UpdateInput struct {
	FirstName              *string    `json:"first_name,omitempty"`
	LastName               *string    `json:"last_name,omitempty"`
	DateOfBirth            *time.Time `json:"date_of_birth,omitempty"`
	Height                 *float64   `json:"height,omitempty"`
	Weight                 *float64   `json:"weight,omitempty"`
	Phone                  *string    `json:"phone,omitempty"`
	EmergencyContactName   *string    `json:"emergency_contact_name,omitempty"`
	EmergencyContactNumber *string    `json:"emergency_contact_number,omitempty"`
}

type ListParams struct {
	Page     int
	Limit    int
	Role     string
	TenantID *int64
	Search   string
}

const userColumns = `id, email, password_hash, role, first_name, last_name,
	tenant_unique_id, tenant_id, date_of_birth, height, weight, phone,
	emergency_contact_name, emergency_contact_number, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.FirstName, &u.LastName,
		&u.TenantUniqueID, &u.TenantID, &u.DateOfBirth, &u.Height, &u.Weight, &u.Phone,
		&u.EmergencyContactName, &u.EmergencyContactNumber, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	exists, err := s.emailExists(ctx, email, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	tenantUID := in.TenantUniqueID
	if tenantUID == "" {
		tenantUID = uuid.NewString()
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO users (email, password_hash, role, first_name, last_name,
			tenant_unique_id, tenant_id, date_of_birth, height, weight, phone,
			emergency_contact_name, emergency_contact_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING `+userColumns,
		email, hash, in.Role, in.FirstName, in.LastName,
		tenantUID, in.TenantID, in.DateOfBirth, in.Height, in.Weight, in.Phone,
		in.EmergencyContactName, in.EmergencyContactNumber,
	)
	return scanUser(row)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*models.User, error) {
	row := s.db.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id)
	return scanUser(row)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row := s.db.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE email = $1",
		strings.ToLower(strings.TrimSpace(email)))
	return scanUser(row)
}

func (s *Service) GetByTenantUniqueID(ctx context.Context, tenantUID string) (*models.User, error) {
	row := s.db.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE tenant_unique_id = $1", tenantUID)
	return scanUser(row)
}

// Authenticate verifies credentials for login. It deliberately collapses
// unknown-email and wrong-password into the same error.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.GetByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !s.hasher.Check(password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (*models.User, error) {
	set := []string{"updated_at = now()"}
	args := []any{id}
	add := func(col string, v any) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if in.FirstName != nil {
		add("first_name", *in.FirstName)
	}
	if in.LastName != nil {
		add("last_name", *in.LastName)
	}
	if in.DateOfBirth != nil {
		add("date_of_birth", *in.DateOfBirth)
	}
	if in.Height != nil {
		add("height", *in.Height)
	}
	if in.Weight != nil {
		add("weight", *in.Weight)
	}
	if in.Phone != nil {
		add("phone", *in.Phone)
	}
	if in.EmergencyContactName != nil {
		add("emergency_contact_name", *in.EmergencyContactName)
	}
	if in.EmergencyContactNumber != nil {
		add("emergency_contact_number", *in.EmergencyContactNumber)
	}

	query := fmt.Sprintf("UPDATE users SET %s WHERE id = $1 RETURNING %s", strings.Join(set, ", "), userColumns)
	return scanUser(s.db.QueryRow(ctx, query, args...))
}

func (s *Service) UpdateRole(ctx context.Context, id int64, role models.UserRole) (*models.User, error) {
	row := s.db.QueryRow(ctx,
		"UPDATE users SET role = $2, updated_at = now() WHERE id = $1 RETURNING "+userColumns,
		id, role,
	)
	return scanUser(row)
}

// ChangePassword verifies the caller's current password before applying the
// new one. Admins changing another user's password skip verification.
func (s *Service) ChangePassword(ctx context.Context, id int64, currentPassword, newPassword string, verifyCurrent bool) error {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if verifyCurrent && !s.hasher.Check(currentPassword, u.PasswordHash) {
		return ErrInvalidPassword
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	_, err = s.db.Exec(ctx, "UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1", id, hash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// Delete removes a user unless they still hold active team memberships.
func (s *Service) Delete(ctx context.Context, id int64) error {
	var memberships int
	err := s.db.QueryRow(ctx,
		"SELECT count(*) FROM team_members WHERE user_id = $1 AND is_active = true", id,
	).Scan(&memberships)
	if err != nil {
		return fmt.Errorf("count memberships: %w", err)
	}
	if memberships > 0 {
		return ErrActiveMemberships
	}

	tag, err := s.db.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Service) List(ctx context.Context, params ListParams) ([]models.User, models.Pagination, error) {
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

	if params.Role != "" {
		add("role = $%d", params.Role)
	}
	if params.TenantID != nil {
		add("tenant_id = $%d", *params.TenantID)
	}
	if params.Search != "" {
		args = append(args, "%"+params.Search+"%")
		where = append(where, fmt.Sprintf(
			"(email ILIKE $%d OR first_name ILIKE $%d OR last_name ILIKE $%d)",
			len(args), len(args), len(args)))
	}

	whereClause := strings.Join(where, " AND ")

	var total int
	if err := s.db.QueryRow(ctx, "SELECT count(*) FROM users WHERE "+whereClause, args...).Scan(&total); err != nil {
		return nil, models.Pagination{}, fmt.Errorf("count users: %w", err)
	}

	args = append(args, limit, (page-1)*limit)
	query := fmt.Sprintf(
		"SELECT %s FROM users WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		userColumns, whereClause, len(args)-1, len(args),
	)

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, models.Pagination{}, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(
			&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.FirstName, &u.LastName,
			&u.TenantUniqueID, &u.TenantID, &u.DateOfBirth, &u.Height, &u.Weight, &u.Phone,
			&u.EmergencyContactName, &u.EmergencyContactNumber, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, models.Pagination{}, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, models.Pagination{}, fmt.Errorf("iterate users: %w", err)
	}

	return users, models.NewPagination(page, limit, total), nil
}

func (s *Service) emailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 AND id <> $2)",
		email, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return exists, nil
}
