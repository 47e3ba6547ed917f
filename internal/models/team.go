package models

import "time"

type TeamMemberRole string

const (
	TeamRoleCaptain   TeamMemberRole = "captain"
	TeamRoleCoCaptain TeamMemberRole = "co-captain"
	TeamRoleMember    TeamMemberRole = "member"
	TeamRoleCoach     TeamMemberRole = "coach"
	TeamRoleManager   TeamMemberRole = "manager"
)

func (r TeamMemberRole) Valid() bool {
	switch r {
	case TeamRoleCaptain, TeamRoleCoCaptain, TeamRoleMember, TeamRoleCoach, TeamRoleManager:
		return true
	}
	return false
}

type GameResult string

const (
	GameWin  GameResult = "win"
	GameLoss GameResult = "loss"
	GameDraw GameResult = "draw"
)

func (r GameResult) Valid() bool {
	return r == GameWin || r == GameLoss || r == GameDraw
}

type ScheduleType string

const (
	ScheduleGame     ScheduleType = "game"
	ScheduleActivity ScheduleType = "activity"
	ScheduleSession  ScheduleType = "session"
)

func (t ScheduleType) Valid() bool {
	return t == ScheduleGame || t == ScheduleActivity || t == ScheduleSession
}

type Team struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Category     string    `json:"category" db:"category"`
	TenantID     int64     `json:"tenant_id" db:"tenant_id"`
	Goals        *string   `json:"goals,omitempty" db:"goals"`
	TotalMembers int       `json:"total_members" db:"total_members"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

type TeamMember struct {
	ID       int64          `json:"id" db:"id"`
	TeamID   int64          `json:"team_id" db:"team_id"`
	UserID   int64          `json:"user_id" db:"user_id"`
	Role     TeamMemberRole `json:"role" db:"role"`
	IsActive bool           `json:"is_active" db:"is_active"`
	JoinedAt time.Time      `json:"joined_at" db:"joined_at"`
	User     *User          `json:"user,omitempty" db:"-"`
}

type TeamGame struct {
	ID            int64      `json:"id" db:"id"`
	TeamID        int64      `json:"team_id" db:"team_id"`
	Name          string     `json:"name" db:"name"`
	PlayedOn      time.Time  `json:"played_on" db:"played_on"`
	PlayedAgainst string     `json:"played_against" db:"played_against"`
	Result        GameResult `json:"result" db:"result"`
	Description   *string    `json:"description,omitempty" db:"description"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

type TeamActivity struct {
	ID          int64     `json:"id" db:"id"`
	TeamID      int64     `json:"team_id" db:"team_id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type TeamSchedule struct {
	ID          int64        `json:"id" db:"id"`
	TeamID      int64        `json:"team_id" db:"team_id"`
	Name        string       `json:"name" db:"name"`
	Type        ScheduleType `json:"type" db:"type"`
	Description *string      `json:"description,omitempty" db:"description"`
	ScheduledAt time.Time    `json:"scheduled_at" db:"scheduled_at"`
	Location    *string      `json:"location,omitempty" db:"location"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" db:"updated_at"`
}

// GameStatistics is the aggregate returned alongside a team's game list.
type GameStatistics struct {
	TotalGames int `json:"total_games"`
	Wins       int `json:"wins"`
	Losses     int `json:"losses"`
	Draws      int `json:"draws"`
}
