package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/meet89coder/AthleteAnalyticsBackend/internal/database"
	"github.com/meet89coder/AthleteAnalyticsBackend/internal/models"
)

// Service records and queries the audit trail. Record is fire-and-forget
// from the caller's perspective; a failed insert is logged, never bubbled
// into the request path.
type Service struct {
	db database.Querier
}

func NewService(db database.Querier) *Service {
	return &Service{db: db}
}

type Entry struct {
	UserID       *int64
	Action       string
	ResourceType string
	ResourceID   *int64
	Details      any
	IPAddress    *string
}

func (s *Service) Record(ctx context.Context, e Entry) {
	var details json.RawMessage
	if e.Details != nil {
		b, err := json.Marshal(e.Details)
		if err != nil {
			slog.Warn("audit details not serializable", "action", e.Action, "error", err)
		} else {
			details = b
		}
	}

	_, err := s.db.Exec(ctx, `
		INSERT INTO audit_logs (user_id, action, resource_type, resource_id, details, ip_address)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		e.UserID, e.Action, e.ResourceType, e.ResourceID, details, e.IPAddress,
	)
	if err != nil {
		slog.Error("audit record failed", "action", e.Action, "error", err)
	}
}

type ListParams struct {
	Page         int
	Limit        int
	UserID       *int64
	Action       string
	ResourceType string
	From         *time.Time
	To           *time.Time
}

func (s *Service) List(ctx context.Context, params ListParams) ([]models.AuditLog, models.Pagination, error) {
	page := params.Page
	if page <= 0 {
		page = 1
	}
	limit := params.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	where := []string{"true"}
	args := []any{}
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if params.UserID != nil {
		add("user_id = $%d", *params.UserID)
	}
	if params.Action != "" {
		add("action = $%d", params.Action)
	}
	if params.ResourceType != "" {
		add("resource_type = $%d", params.ResourceType)
	}
	if params.From != nil {
		add("created_at >= $%d", *params.From)
	}
	if params.To != nil {
		add("created_at <= $%d", *params.To)
	}
	whereClause := strings.Join(where, " AND ")

	var total int
	if err := s.db.QueryRow(ctx, "SELECT count(*) FROM audit_logs WHERE "+whereClause, args...).Scan(&total); err != nil {
		return nil, models.Pagination{}, fmt.Errorf("count audit logs: %w", err)
	}

	args = append(args, limit, (page-1)*limit)
	query := fmt.Sprintf(`
		SELECT id, user_id, action, resource_type, resource_id, details, ip_address, created_at
		FROM audit_logs
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, whereClause, len(args)-1, len(args))

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, models.Pagination{}, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()

	var logs []models.AuditLog
	for rows.Next() {
		var l models.AuditLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.Action, &l.ResourceType, &l.ResourceID, &l.Details, &l.IPAddress, &l.CreatedAt); err != nil {
			return nil, models.Pagination{}, fmt.Errorf("scan audit log: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, models.Pagination{}, fmt.Errorf("iterate audit logs: %w", err)
	}
	return logs, models.NewPagination(page, limit, total), nil
}

// Prune deletes entries older than the retention window and reports how many
// went.
func (s *Service) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	tag, err := s.db.Exec(ctx,
		"DELETE FROM audit_logs WHERE created_at < $1",
		time.Now().Add(-retention),
	)
	if err != nil {
		return 0, fmt.Errorf("prune audit logs: %w", err)
	}
	return tag.RowsAffected(), nil
}
