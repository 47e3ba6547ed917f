package team

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/meet89coder/AthleteAnalyticsBackend/internal/auth"
	"github.com/meet89coder/AthleteAnalyticsBackend/internal/cache"
	"github.com/meet89coder/AthleteAnalyticsBackend/internal/database"
	"github.com/meet89coder/AthleteAnalyticsBackend/internal/models"
)

var (
	ErrTeamNotFound = errors.New("team not found")
	ErrNotMember    = errors.New("not an active member of this team")
	ErrRoleDenied   = errors.New("team role does not permit this action")
)

// ManagingRoles are the team roles allowed to mutate team resources.
var ManagingRoles = []models.TeamMemberRole{models.TeamRoleCaptain, models.TeamRoleCoach}

// Membership is a user's resolved standing on a team.
type Membership struct {
	IsMember bool                  `json:"is_member"`
	Role     models.TeamMemberRole `json:"role,omitempty"`
}

const membershipCacheTTL = 5 * time.Minute

// PermissionResolver answers "may this user act on this team" questions.
// Lookups hit redis first and fall back to postgres; mutations to a team's
// roster must invalidate through InvalidateMembership.
type PermissionResolver struct {
	db    database.Querier
	cache *cache.Cache
}

func NewPermissionResolver(db database.Querier, c *cache.Cache) *PermissionResolver {
	return &PermissionResolver{db: db, cache: c}
}

func membershipCacheKey(teamID, userID int64) string {
	return fmt.Sprintf("team:%d:member:%d", teamID, userID)
}

// Lookup resolves the user's active membership on the team. A missing team
// is reported as ErrTeamNotFound so callers can 404 before any permission
// decision leaks resource existence the other way.
func (r *PermissionResolver) Lookup(ctx context.Context, teamID, userID int64) (Membership, error) {
	exists, err := r.teamExists(ctx, teamID)
	if err != nil {
		return Membership{}, err
	}
	if !exists {
		return Membership{}, ErrTeamNotFound
	}

	key := membershipCacheKey(teamID, userID)
	if r.cache != nil {
		var m Membership
		err := r.cache.Get(ctx, key, &m)
		if err == nil {
			return m, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			slog.Warn("membership cache read failed", "error", err, "team_id", teamID, "user_id", userID)
		}
	}

	var m Membership
	err = r.db.QueryRow(ctx,
		"SELECT role FROM team_members WHERE team_id = $1 AND user_id = $2 AND is_active = true",
		teamID, userID,
	).Scan(&m.Role)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		m = Membership{}
	case err != nil:
		return Membership{}, fmt.Errorf("lookup membership: %w", err)
	default:
		m.IsMember = true
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, key, m, membershipCacheTTL); err != nil {
			slog.Warn("membership cache write failed", "error", err, "team_id", teamID, "user_id", userID)
		}
	}
	return m, nil
}

// Check authorizes an action on a team. Global admins always pass. Otherwise
// the principal must be an active member, and when required is non-empty the
// membership role must be one of them. An empty required set means any active
// member may act.
func (r *PermissionResolver) Check(ctx context.Context, p *auth.Principal, teamID int64, required ...models.TeamMemberRole) error {
	if p == nil {
		return auth.ErrUnauthenticated
	}
	if p.IsAdmin() {
		// admins bypass membership, but the team must still exist
		exists, err := r.teamExists(ctx, teamID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrTeamNotFound
		}
		return nil
	}

	m, err := r.Lookup(ctx, teamID, p.ID)
	if err != nil {
		return err
	}
	if !m.IsMember {
		return ErrNotMember
	}
	if len(required) == 0 {
		return nil
	}
	for _, role := range required {
		if m.Role == role {
			return nil
		}
	}
	return ErrRoleDenied
}

// CheckManage is Check with the roster-mutation role set.
func (r *PermissionResolver) CheckManage(ctx context.Context, p *auth.Principal, teamID int64) error {
	return r.Check(ctx, p, teamID, ManagingRoles...)
}

// InvalidateMembership drops the cached standing for a user on a team. Call
// after any roster change.
func (r *PermissionResolver) InvalidateMembership(ctx context.Context, teamID, userID int64) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Delete(ctx, membershipCacheKey(teamID, userID)); err != nil {
		slog.Warn("membership cache invalidation failed", "error", err, "team_id", teamID, "user_id", userID)
	}
}

func (r *PermissionResolver) teamExists(ctx context.Context, teamID int64) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM teams WHERE id = $1)", teamID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check team exists: %w", err)
	}
	return exists, nil
}
