package team

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meet89coder/AthleteAnalyticsBackend/internal/auth"
	"github.com/meet89coder/AthleteAnalyticsBackend/internal/models"
)

func newResolverMock(t *testing.T) (*PermissionResolver, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPermissionResolver(mock, nil), mock
}

func expectTeamExists(mock pgxmock.PgxPoolIface, teamID int64, exists bool) {
	mock.ExpectQuery("SELECT EXISTS\\(SELECT 1 FROM teams").
		WithArgs(teamID).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(exists))
}

func expectMembership(mock pgxmock.PgxPoolIface, teamID, userID int64, role *models.TeamMemberRole) {
	q := mock.ExpectQuery("SELECT role FROM team_members").WithArgs(teamID, userID)
	rows := pgxmock.NewRows([]string{"role"})
	if role != nil {
		rows.AddRow(*role)
	}
	q.WillReturnRows(rows)
}

func TestCheck_TeamNotFound(t *testing.T) {
	resolver, mock := newResolverMock(t)
	expectTeamExists(mock, 1, false)

	p := &auth.Principal{ID: 10, Role: models.RoleAthlete}
	err := resolver.Check(context.Background(), p, 1)
	assert.ErrorIs(t, err, ErrTeamNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheck_AdminBypassStillRequiresTeam(t *testing.T) {
	resolver, mock := newResolverMock(t)
	admin := &auth.Principal{ID: 1, Role: models.RoleAdmin}

	expectTeamExists(mock, 2, false)
	assert.ErrorIs(t, resolver.Check(context.Background(), admin, 2), ErrTeamNotFound)

	expectTeamExists(mock, 3, true)
	assert.NoError(t, resolver.Check(context.Background(), admin, 3, ManagingRoles...))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheck_NonMember(t *testing.T) {
	resolver, mock := newResolverMock(t)
	expectTeamExists(mock, 1, true)
	expectMembership(mock, 1, 10, nil)

	p := &auth.Principal{ID: 10, Role: models.RoleAthlete}
	err := resolver.Check(context.Background(), p, 1)
	assert.ErrorIs(t, err, ErrNotMember)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheck_MemberRoleNotSufficient(t *testing.T) {
	resolver, mock := newResolverMock(t)
	expectTeamExists(mock, 1, true)
	role := models.TeamRoleMember
	expectMembership(mock, 1, 10, &role)

	p := &auth.Principal{ID: 10, Role: models.RoleAthlete}
	err := resolver.CheckManage(context.Background(), p, 1)
	assert.ErrorIs(t, err, ErrRoleDenied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheck_ManagingRolePasses(t *testing.T) {
	for _, role := range ManagingRoles {
		resolver, mock := newResolverMock(t)
		expectTeamExists(mock, 1, true)
		r := role
		expectMembership(mock, 1, 10, &r)

		p := &auth.Principal{ID: 10, Role: models.RoleAthlete}
		assert.NoError(t, resolver.CheckManage(context.Background(), p, 1), "role %s", role)
		assert.NoError(t, mock.ExpectationsWereMet())
	}
}

func TestCheck_AnyActiveMemberWhenNoRolesRequired(t *testing.T) {
	resolver, mock := newResolverMock(t)
	expectTeamExists(mock, 1, true)
	role := models.TeamRoleMember
	expectMembership(mock, 1, 10, &role)

	p := &auth.Principal{ID: 10, Role: models.RoleAthlete}
	assert.NoError(t, resolver.Check(context.Background(), p, 1))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheck_NilPrincipal(t *testing.T) {
	resolver, _ := newResolverMock(t)
	err := resolver.Check(context.Background(), nil, 1)
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)
}

func TestLookup_ResolvesActiveMembership(t *testing.T) {
	resolver, mock := newResolverMock(t)
	expectTeamExists(mock, 4, true)
	role := models.TeamRoleCaptain
	expectMembership(mock, 4, 7, &role)

	m, err := resolver.Lookup(context.Background(), 4, 7)
	require.NoError(t, err)
	assert.True(t, m.IsMember)
	assert.Equal(t, models.TeamRoleCaptain, m.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}
