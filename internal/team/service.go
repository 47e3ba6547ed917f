package team

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/meet89coder/AthleteAnalyticsBackend/internal/database"
	"github.com/meet89coder/AthleteAnalyticsBackend/internal/models"
)

var (
	ErrMemberExists     = errors.New("user is already an active member of this team")
	ErrMemberNotFound   = errors.New("team member not found")
	ErrDuplicateMembers = errors.New("duplicate members in request")
	ErrUserNotFound     = errors.New("user not found")
	ErrGameNotFound     = errors.New("game not found")
	ErrActivityNotFound = errors.New("activity not found")
	ErrScheduleNotFound = errors.New("schedule not found")
)

type Service struct {
	db       database.Querier
	resolver *PermissionResolver
}

func NewService(db database.Querier, resolver *PermissionResolver) *Service {
	return &Service{db: db, resolver: resolver}
}

type CreateInput struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	TenantID int64   `json:"tenant_id"`
	Goals    *string `json:"goals,omitempty"`
}

type UpdateInput struct {
	Name     *string `json:"name,omitempty"`
	Category *string `json:"category,omitempty"`
	Goals    *string `json:"goals,omitempty"`
}

type ListParams struct {
	Page     int
	Limit    int
	TenantID *int64
	Category string
	Search   string
}

type MemberInput struct {
	UserID int64                 `json:"user_id"`
	Role   models.TeamMemberRole `json:"role"`
}

type GameInput struct {
	Name          string            `json:"name"`
	PlayedOn      time.Time         `json:"played_on"`
	PlayedAgainst string            `json:"played_against"`
	Result        models.GameResult `json:"result"`
	Description   *string           `json:"description,omitempty"`
}

type ScheduleInput struct {
	Name        string              `json:"name"`
	Type        models.ScheduleType `json:"type"`
	Description *string             `json:"description,omitempty"`
	ScheduledAt time.Time           `json:"scheduled_at"`
	Location    *string             `json:"location,omitempty"`
}

const teamColumns = "id, name, category, tenant_id, goals, created_at, updated_at"

func scanTeam(row pgx.Row) (*models.Team, error) {
	var t models.Team
	err := row.Scan(&t.ID, &t.Name, &t.Category, &t.TenantID, &t.Goals, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrTeamNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan team: %w", err)
	}
	return &t, nil
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Team, error) {
	row := s.db.QueryRow(ctx, `
		INSERT INTO teams (name, category, tenant_id, goals)
		VALUES ($1, $2, $3, $4)
		RETURNING `+teamColumns,
		strings.TrimSpace(in.Name), in.Category, in.TenantID, in.Goals,
	)
	return scanTeam(row)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*models.Team, error) {
	t, err := scanTeam(s.db.QueryRow(ctx, "SELECT "+teamColumns+" FROM teams WHERE id = $1", id))
	if err != nil {
		return nil, err
	}
	if err := s.db.QueryRow(ctx,
		"SELECT count(*) FROM team_members WHERE team_id = $1 AND is_active = true", id,
	).Scan(&t.TotalMembers); err != nil {
		return nil, fmt.Errorf("count members: %w", err)
	}
	return t, nil
}

func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (*models.Team, error) {
	set := []string{"updated_at = now()"}
	args := []any{id}
	add := func(col string, v any) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if in.Name != nil {
		add("name", strings.TrimSpace(*in.Name))
	}
	if in.Category != nil {
		add("category", *in.Category)
	}
	if in.Goals != nil {
		add("goals", *in.Goals)
	}

	query := fmt.Sprintf("UPDATE teams SET %s WHERE id = $1 RETURNING %s", strings.Join(set, ", "), teamColumns)
	return scanTeam(s.db.QueryRow(ctx, query, args...))
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM teams WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTeamNotFound
	}
	return nil
}

func (s *Service) List(ctx context.Context, params ListParams) ([]models.Team, models.Pagination, error) {
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
	if params.TenantID != nil {
		add("t.tenant_id = $%d", *params.TenantID)
	}
	if params.Category != "" {
		add("t.category = $%d", params.Category)
	}
	if params.Search != "" {
		add("t.name ILIKE $%d", "%"+params.Search+"%")
	}
	whereClause := strings.Join(where, " AND ")

	var total int
	if err := s.db.QueryRow(ctx, "SELECT count(*) FROM teams t WHERE "+whereClause, args...).Scan(&total); err != nil {
		return nil, models.Pagination{}, fmt.Errorf("count teams: %w", err)
	}

	args = append(args, limit, (page-1)*limit)
	query := fmt.Sprintf(`
		SELECT t.id, t.name, t.category, t.tenant_id, t.goals,
			(SELECT count(*) FROM team_members m WHERE m.team_id = t.id AND m.is_active = true),
			t.created_at, t.updated_at
		FROM teams t
		WHERE %s
		ORDER BY t.created_at DESC
		LIMIT $%d OFFSET $%d`, whereClause, len(args)-1, len(args))

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, models.Pagination{}, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()

	var teams []models.Team
	for rows.Next() {
		var t models.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.Category, &t.TenantID, &t.Goals, &t.TotalMembers, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, models.Pagination{}, fmt.Errorf("scan team: %w", err)
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, models.Pagination{}, fmt.Errorf("iterate teams: %w", err)
	}
	return teams, models.NewPagination(page, limit, total), nil
}

// TeamsForUser lists teams the user is an active member of, with their role
// on each.
func (s *Service) TeamsForUser(ctx context.Context, userID int64) ([]models.TeamMember, error) {
	rows, err := s.db.Query(ctx, `
		SELECT m.id, m.team_id, m.user_id, m.role, m.is_active, m.joined_at
		FROM team_members m
		JOIN teams t ON t.id = m.team_id
		WHERE m.user_id = $1 AND m.is_active = true
		ORDER BY m.joined_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list user teams: %w", err)
	}
	defer rows.Close()

	var members []models.TeamMember
	for rows.Next() {
		var m models.TeamMember
		if err := rows.Scan(&m.ID, &m.TeamID, &m.UserID, &m.Role, &m.IsActive, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("scan membership: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// AddMembers adds a batch of users to a team in one transaction. The batch
// must not repeat a user, every user must exist, and none may already be an
// active member.
func (s *Service) AddMembers(ctx context.Context, teamID int64, members []MemberInput) ([]models.TeamMember, error) {
	seen := make(map[int64]struct{}, len(members))
	for _, m := range members {
		if _, ok := seen[m.UserID]; ok {
			return nil, ErrDuplicateMembers
		}
		seen[m.UserID] = struct{}{}
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	added := make([]models.TeamMember, 0, len(members))
	for _, in := range members {
		var userExists bool
		if err := tx.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)", in.UserID).Scan(&userExists); err != nil {
			return nil, fmt.Errorf("check user: %w", err)
		}
		if !userExists {
			return nil, fmt.Errorf("%w: %d", ErrUserNotFound, in.UserID)
		}

		var active bool
		err := tx.QueryRow(ctx,
			"SELECT EXISTS(SELECT 1 FROM team_members WHERE team_id = $1 AND user_id = $2 AND is_active = true)",
			teamID, in.UserID,
		).Scan(&active)
		if err != nil {
			return nil, fmt.Errorf("check membership: %w", err)
		}
		if active {
			return nil, ErrMemberExists
		}

		var m models.TeamMember
		err = tx.QueryRow(ctx, `
			INSERT INTO team_members (team_id, user_id, role, is_active)
			VALUES ($1, $2, $3, true)
			RETURNING id, team_id, user_id, role, is_active, joined_at`,
			teamID, in.UserID, in.Role,
		).Scan(&m.ID, &m.TeamID, &m.UserID, &m.Role, &m.IsActive, &m.JoinedAt)
		if err != nil {
			return nil, fmt.Errorf("insert member: %w", err)
		}
		added = append(added, m)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	for _, m := range added {
		s.resolver.InvalidateMembership(ctx, teamID, m.UserID)
	}
	return added, nil
}

func (s *Service) ListMembers(ctx context.Context, teamID int64, includeInactive bool) ([]models.TeamMember, error) {
	query := `
		SELECT m.id, m.team_id, m.user_id, m.role, m.is_active, m.joined_at,
			u.id, u.email, u.role, u.first_name, u.last_name, u.tenant_unique_id
		FROM team_members m
		JOIN users u ON u.id = m.user_id
		WHERE m.team_id = $1`
	if !includeInactive {
		query += " AND m.is_active = true"
	}
	query += " ORDER BY m.joined_at ASC"

	rows, err := s.db.Query(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	var members []models.TeamMember
	for rows.Next() {
		var m models.TeamMember
		var u models.User
		if err := rows.Scan(
			&m.ID, &m.TeamID, &m.UserID, &m.Role, &m.IsActive, &m.JoinedAt,
			&u.ID, &u.Email, &u.Role, &u.FirstName, &u.LastName, &u.TenantUniqueID,
		); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		m.User = &u
		members = append(members, m)
	}
	return members, rows.Err()
}

func (s *Service) UpdateMemberRole(ctx context.Context, teamID, userID int64, role models.TeamMemberRole) (*models.TeamMember, error) {
	var m models.TeamMember
	err := s.db.QueryRow(ctx, `
		UPDATE team_members SET role = $3
		WHERE team_id = $1 AND user_id = $2 AND is_active = true
		RETURNING id, team_id, user_id, role, is_active, joined_at`,
		teamID, userID, role,
	).Scan(&m.ID, &m.TeamID, &m.UserID, &m.Role, &m.IsActive, &m.JoinedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrMemberNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update member role: %w", err)
	}
	s.resolver.InvalidateMembership(ctx, teamID, userID)
	return &m, nil
}

// RemoveMember deactivates the membership rather than deleting the row, so
// join history survives.
func (s *Service) RemoveMember(ctx context.Context, teamID, userID int64) error {
	tag, err := s.db.Exec(ctx,
		"UPDATE team_members SET is_active = false WHERE team_id = $1 AND user_id = $2 AND is_active = true",
		teamID, userID,
	)
	if err != nil {
		return fmt.Errorf("remove member: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrMemberNotFound
	}
	s.resolver.InvalidateMembership(ctx, teamID, userID)
	return nil
}

const gameColumns = "id, team_id, name, played_on, played_against, result, description, created_at, updated_at"

func scanGame(row pgx.Row) (*models.TeamGame, error) {
	var g models.TeamGame
	err := row.Scan(&g.ID, &g.TeamID, &g.Name, &g.PlayedOn, &g.PlayedAgainst, &g.Result, &g.Description, &g.CreatedAt, &g.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan game: %w", err)
	}
	return &g, nil
}

func (s *Service) AddGame(ctx context.Context, teamID int64, in GameInput) (*models.TeamGame, error) {
	row := s.db.QueryRow(ctx, `
		INSERT INTO team_games (team_id, name, played_on, played_against, result, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+gameColumns,
		teamID, in.Name, in.PlayedOn, in.PlayedAgainst, in.Result, in.Description,
	)
	return scanGame(row)
}

func (s *Service) UpdateGame(ctx context.Context, teamID, gameID int64, in GameInput) (*models.TeamGame, error) {
	row := s.db.QueryRow(ctx, `
		UPDATE team_games
		SET name = $3, played_on = $4, played_against = $5, result = $6, description = $7, updated_at = now()
		WHERE id = $2 AND team_id = $1
		RETURNING `+gameColumns,
		teamID, gameID, in.Name, in.PlayedOn, in.PlayedAgainst, in.Result, in.Description,
	)
	return scanGame(row)
}

func (s *Service) DeleteGame(ctx context.Context, teamID, gameID int64) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM team_games WHERE id = $2 AND team_id = $1", teamID, gameID)
	if err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrGameNotFound
	}
	return nil
}

// ListGames returns a team's games newest first, with the win/loss aggregate
// computed over all of the team's games regardless of pagination.
func (s *Service) ListGames(ctx context.Context, teamID int64, page, limit int) ([]models.TeamGame, models.GameStatistics, models.Pagination, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var stats models.GameStatistics
	err := s.db.QueryRow(ctx, `
		SELECT count(*),
			count(*) FILTER (WHERE result = 'win'),
			count(*) FILTER (WHERE result = 'loss'),
			count(*) FILTER (WHERE result = 'draw')
		FROM team_games WHERE team_id = $1`, teamID,
	).Scan(&stats.TotalGames, &stats.Wins, &stats.Losses, &stats.Draws)
	if err != nil {
		return nil, stats, models.Pagination{}, fmt.Errorf("game statistics: %w", err)
	}

	rows, err := s.db.Query(ctx,
		"SELECT "+gameColumns+" FROM team_games WHERE team_id = $1 ORDER BY played_on DESC LIMIT $2 OFFSET $3",
		teamID, limit, (page-1)*limit,
	)
	if err != nil {
		return nil, stats, models.Pagination{}, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	var games []models.TeamGame
	for rows.Next() {
		var g models.TeamGame
		if err := rows.Scan(&g.ID, &g.TeamID, &g.Name, &g.PlayedOn, &g.PlayedAgainst, &g.Result, &g.Description, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, stats, models.Pagination{}, fmt.Errorf("scan game: %w", err)
		}
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, stats, models.Pagination{}, fmt.Errorf("iterate games: %w", err)
	}
	return games, stats, models.NewPagination(page, limit, stats.TotalGames), nil
}

func (s *Service) AddActivity(ctx context.Context, teamID int64, name string, description *string) (*models.TeamActivity, error) {
	var a models.TeamActivity
	err := s.db.QueryRow(ctx, `
		INSERT INTO team_activities (team_id, name, description)
		VALUES ($1, $2, $3)
		RETURNING id, team_id, name, description, created_at`,
		teamID, name, description,
	).Scan(&a.ID, &a.TeamID, &a.Name, &a.Description, &a.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert activity: %w", err)
	}
	return &a, nil
}

func (s *Service) ListActivities(ctx context.Context, teamID int64) ([]models.TeamActivity, error) {
	rows, err := s.db.Query(ctx,
		"SELECT id, team_id, name, description, created_at FROM team_activities WHERE team_id = $1 ORDER BY created_at DESC",
		teamID,
	)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	defer rows.Close()

	var activities []models.TeamActivity
	for rows.Next() {
		var a models.TeamActivity
		if err := rows.Scan(&a.ID, &a.TeamID, &a.Name, &a.Description, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

func (s *Service) DeleteActivity(ctx context.Context, teamID, activityID int64) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM team_activities WHERE id = $2 AND team_id = $1", teamID, activityID)
	if err != nil {
		return fmt.Errorf("delete activity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrActivityNotFound
	}
	return nil
}

const scheduleColumns = "id, team_id, name, type, description, scheduled_at, location, created_at, updated_at"

func scanSchedule(row pgx.Row) (*models.TeamSchedule, error) {
	var sc models.TeamSchedule
	err := row.Scan(&sc.ID, &sc.TeamID, &sc.Name, &sc.Type, &sc.Description, &sc.ScheduledAt, &sc.Location, &sc.CreatedAt, &sc.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan schedule: %w", err)
	}
	return &sc, nil
}

func (s *Service) AddSchedule(ctx context.Context, teamID int64, in ScheduleInput) (*models.TeamSchedule, error) {
	row := s.db.QueryRow(ctx, `
		INSERT INTO team_schedules (team_id, name, type, description, scheduled_at, location)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+scheduleColumns,
		teamID, in.Name, in.Type, in.Description, in.ScheduledAt, in.Location,
	)
	return scanSchedule(row)
}

func (s *Service) UpdateSchedule(ctx context.Context, teamID, scheduleID int64, in ScheduleInput) (*models.TeamSchedule, error) {
	row := s.db.QueryRow(ctx, `
		UPDATE team_schedules
		SET name = $3, type = $4, description = $5, scheduled_at = $6, location = $7, updated_at = now()
		WHERE id = $2 AND team_id = $1
		RETURNING `+scheduleColumns,
		teamID, scheduleID, in.Name, in.Type, in.Description, in.ScheduledAt, in.Location,
	)
	return scanSchedule(row)
}

func (s *Service) DeleteSchedule(ctx context.Context, teamID, scheduleID int64) error {
	tag, err := s.db.Exec(ctx, "DELETE FROM team_schedules WHERE id = $2 AND team_id = $1", teamID, scheduleID)
	if err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrScheduleNotFound
	}
	return nil
}

// ListSchedules returns a team's schedule entries, optionally only those at
// or after the given instant.
func (s *Service) ListSchedules(ctx context.Context, teamID int64, from *time.Time) ([]models.TeamSchedule, error) {
	query := "SELECT " + scheduleColumns + " FROM team_schedules WHERE team_id = $1"
	args := []any{teamID}
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND scheduled_at >= $%d", len(args))
	}
	query += " ORDER BY scheduled_at ASC"

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	defer rows.Close()

	var schedules []models.TeamSchedule
	for rows.Next() {
		var sc models.TeamSchedule
		if err := rows.Scan(&sc.ID, &sc.TeamID, &sc.Name, &sc.Type, &sc.Description, &sc.ScheduledAt, &sc.Location, &sc.CreatedAt, &sc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan schedule: %w", err)
		}
		schedules = append(schedules, sc)
	}
	return schedules, rows.Err()
}

// RoleCounts breaks the active roster down by team role.
func (s *Service) RoleCounts(ctx context.Context, teamID int64) (map[models.TeamMemberRole]int, error) {
	rows, err := s.db.Query(ctx,
		"SELECT role, count(*) FROM team_members WHERE team_id = $1 AND is_active = true GROUP BY role",
		teamID,
	)
	if err != nil {
		return nil, fmt.Errorf("role counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.TeamMemberRole]int)
	for rows.Next() {
		var role models.TeamMemberRole
		var n int
		if err := rows.Scan(&role, &n); err != nil {
			return nil, fmt.Errorf("scan role count: %w", err)
		}
		counts[role] = n
	}
	return counts, rows.Err()
}

// Dashboard is the aggregate view returned to any active team member.
type Dashboard struct {
	Team              *models.Team                  `json:"team"`
	GameStatistics    models.GameStatistics         `json:"game_statistics"`
	RoleCounts        map[models.TeamMemberRole]int `json:"role_counts"`
	RecentGames       []models.TeamGame             `json:"recent_games"`
	RecentActivities  []models.TeamActivity         `json:"recent_activities"`
	UpcomingSchedules []models.TeamSchedule         `json:"upcoming_schedules"`
	ActiveMembers     int                           `json:"active_members"`
}

func (s *Service) Dashboard(ctx context.Context, teamID int64, now time.Time) (*Dashboard, error) {
	t, err := s.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	recent, stats, _, err := s.ListGames(ctx, teamID, 1, 5)
	if err != nil {
		return nil, err
	}

	roleCounts, err := s.RoleCounts(ctx, teamID)
	if err != nil {
		return nil, err
	}

	activities, err := s.ListActivities(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if len(activities) > 5 {
		activities = activities[:5]
	}

	upcoming, err := s.ListSchedules(ctx, teamID, &now)
	if err != nil {
		return nil, err
	}
	if len(upcoming) > 5 {
		upcoming = upcoming[:5]
	}

	return &Dashboard{
		Team:              t,
		GameStatistics:    stats,
		RoleCounts:        roleCounts,
		RecentGames:       recent,
		RecentActivities:  activities,
		UpcomingSchedules: upcoming,
		ActiveMembers:     t.TotalMembers,
	}, nil
}

// Complete is the full team view: profile, roster, games, activities and
// schedules in one payload.
type Complete struct {
	Team       *models.Team          `json:"team"`
	Members    []models.TeamMember   `json:"members"`
	Games      []models.TeamGame     `json:"games"`
	Statistics models.GameStatistics `json:"statistics"`
	Activities []models.TeamActivity `json:"activities"`
	Schedules  []models.TeamSchedule `json:"schedules"`
}

func (s *Service) GetComplete(ctx context.Context, teamID int64) (*Complete, error) {
	t, err := s.GetByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	members, err := s.ListMembers(ctx, teamID, false)
	if err != nil {
		return nil, err
	}
	games, stats, _, err := s.ListGames(ctx, teamID, 1, 100)
	if err != nil {
		return nil, err
	}
	activities, err := s.ListActivities(ctx, teamID)
	if err != nil {
		return nil, err
	}
	schedules, err := s.ListSchedules(ctx, teamID, nil)
	if err != nil {
		return nil, err
	}
	return &Complete{
		Team:       t,
		Members:    members,
		Games:      games,
		Statistics: stats,
		Activities: activities,
		Schedules:  schedules,
	}, nil
}
