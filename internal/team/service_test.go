package team

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meet89coder/AthleteAnalyticsBackend/internal/models"
)

func newServiceMock(t *testing.T) (*Service, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	resolver := NewPermissionResolver(mock, nil)
	return NewService(mock, resolver), mock
}

func TestAddMembers_DuplicateInBatch(t *testing.T) {
	svc, mock := newServiceMock(t)

	_, err := svc.AddMembers(context.Background(), 1, []MemberInput{
		{UserID: 10, Role: models.TeamRoleMember},
		{UserID: 10, Role: models.TeamRoleCaptain},
	})
	assert.ErrorIs(t, err, ErrDuplicateMembers)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddMembers_UnknownUser(t *testing.T) {
	svc, mock := newServiceMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT EXISTS\\(SELECT 1 FROM users").
		WithArgs(int64(10)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectRollback()

	_, err := svc.AddMembers(context.Background(), 1, []MemberInput{
		{UserID: 10, Role: models.TeamRoleMember},
	})
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddMembers_AlreadyActiveMember(t *testing.T) {
	svc, mock := newServiceMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT EXISTS\\(SELECT 1 FROM users").
		WithArgs(int64(10)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery("SELECT EXISTS\\(SELECT 1 FROM team_members").
		WithArgs(int64(1), int64(10)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	_, err := svc.AddMembers(context.Background(), 1, []MemberInput{
		{UserID: 10, Role: models.TeamRoleMember},
	})
	assert.ErrorIs(t, err, ErrMemberExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddMembers_Success(t *testing.T) {
	svc, mock := newServiceMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT EXISTS\\(SELECT 1 FROM users").
		WithArgs(int64(10)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery("SELECT EXISTS\\(SELECT 1 FROM team_members").
		WithArgs(int64(1), int64(10)).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery("INSERT INTO team_members").
		WithArgs(int64(1), int64(10), models.TeamRoleCaptain).
		WillReturnRows(pgxmock.NewRows([]string{"id", "team_id", "user_id", "role", "is_active", "joined_at"}).
			AddRow(int64(100), int64(1), int64(10), models.TeamRoleCaptain, true, time.Now()))
	mock.ExpectCommit()

	added, err := svc.AddMembers(context.Background(), 1, []MemberInput{
		{UserID: 10, Role: models.TeamRoleCaptain},
	})
	require.NoError(t, err)
	require.Len(t, added, 1)
	assert.Equal(t, models.TeamRoleCaptain, added[0].Role)
	assert.True(t, added[0].IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveMember_NotFound(t *testing.T) {
	svc, mock := newServiceMock(t)

	mock.ExpectExec("UPDATE team_members SET is_active = false").
		WithArgs(int64(1), int64(10)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	assert.ErrorIs(t, svc.RemoveMember(context.Background(), 1, 10), ErrMemberNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListGames_Statistics(t *testing.T) {
	svc, mock := newServiceMock(t)

	mock.ExpectQuery("SELECT count\\(\\*\\)").
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"total", "wins", "losses", "draws"}).
			AddRow(3, 2, 0, 1))

	rows := pgxmock.NewRows([]string{
		"id", "team_id", "name", "played_on", "played_against", "result", "description", "created_at", "updated_at",
	}).
		AddRow(int64(1), int64(1), "Opener", time.Now(), "Rivals", models.GameWin, nil, time.Now(), time.Now()).
		AddRow(int64(2), int64(1), "Second", time.Now(), "Others", models.GameDraw, nil, time.Now(), time.Now())
	mock.ExpectQuery("SELECT id, team_id, name, played_on").
		WithArgs(int64(1), 20, 0).
		WillReturnRows(rows)

	games, stats, pagination, err := svc.ListGames(context.Background(), 1, 1, 20)
	require.NoError(t, err)
	assert.Len(t, games, 2)
	assert.Equal(t, models.GameStatistics{TotalGames: 3, Wins: 2, Losses: 0, Draws: 1}, stats)
	assert.Equal(t, 3, pagination.TotalCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteGame_Missing(t *testing.T) {
	svc, mock := newServiceMock(t)

	mock.ExpectExec("DELETE FROM team_games").
		WithArgs(int64(1), int64(99)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.ErrorIs(t, svc.DeleteGame(context.Background(), 1, 99), ErrGameNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
