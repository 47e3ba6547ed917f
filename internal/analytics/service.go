package analytics

import (
	"context"
	"fmt"

	"github.com/meet89coder/AthleteAnalyticsBackend/internal/database"
)

// Service computes cross-team aggregates. Read only.
type Service struct {
	db database.Querier
}

func NewService(db database.Querier) *Service {
	return &Service{db: db}
}

// TenantSummary rolls a tenant's activity up for the admin overview.
type TenantSummary struct {
	TenantID      int64   `json:"tenant_id"`
	TeamCount     int     `json:"team_count"`
	MemberCount   int     `json:"member_count"`
	GamesPlayed   int     `json:"games_played"`
	WinPercentage float64 `json:"win_percentage"`
}

// TeamStanding is one row of a tenant's win-rate leaderboard.
type TeamStanding struct {
	TeamID        int64   `json:"team_id"`
	TeamName      string  `json:"team_name"`
	GamesPlayed   int     `json:"games_played"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Draws         int     `json:"draws"`
	WinPercentage float64 `json:"win_percentage"`
}

func (s *Service) TenantSummary(ctx context.Context, tenantID int64) (*TenantSummary, error) {
	sum := TenantSummary{TenantID: tenantID}
	var wins int
	err := s.db.QueryRow(ctx, `
		SELECT
			(SELECT count(*) FROM teams WHERE tenant_id = $1),
			(SELECT count(DISTINCT m.user_id)
			 FROM team_members m JOIN teams t ON t.id = m.team_id
			 WHERE t.tenant_id = $1 AND m.is_active = true),
			(SELECT count(*)
			 FROM team_games g JOIN teams t ON t.id = g.team_id
			 WHERE t.tenant_id = $1),
			(SELECT count(*)
			 FROM team_games g JOIN teams t ON t.id = g.team_id
			 WHERE t.tenant_id = $1 AND g.result = 'win')`,
		tenantID,
	).Scan(&sum.TeamCount, &sum.MemberCount, &sum.GamesPlayed, &wins)
	if err != nil {
		return nil, fmt.Errorf("tenant summary: %w", err)
	}
	if sum.GamesPlayed > 0 {
		sum.WinPercentage = float64(wins) / float64(sum.GamesPlayed) * 100
	}
	return &sum, nil
}

// Standings ranks a tenant's teams by win percentage, games played breaking
// ties.
func (s *Service) Standings(ctx context.Context, tenantID int64) ([]TeamStanding, error) {
	rows, err := s.db.Query(ctx, `
		SELECT t.id, t.name,
			count(g.id),
			count(g.id) FILTER (WHERE g.result = 'win'),
			count(g.id) FILTER (WHERE g.result = 'loss'),
			count(g.id) FILTER (WHERE g.result = 'draw')
		FROM teams t
		LEFT JOIN team_games g ON g.team_id = t.id
		WHERE t.tenant_id = $1
		GROUP BY t.id, t.name
		ORDER BY count(g.id) FILTER (WHERE g.result = 'win')::float / greatest(count(g.id), 1) DESC,
			count(g.id) DESC`,
		tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("standings: %w", err)
	}
	defer rows.Close()

	var standings []TeamStanding
	for rows.Next() {
		var st TeamStanding
		if err := rows.Scan(&st.TeamID, &st.TeamName, &st.GamesPlayed, &st.Wins, &st.Losses, &st.Draws); err != nil {
			return nil, fmt.Errorf("scan standing: %w", err)
		}
		if st.GamesPlayed > 0 {
			st.WinPercentage = float64(st.Wins) / float64(st.GamesPlayed) * 100
		}
		standings = append(standings, st)
	}
	return standings, rows.Err()
}
