//go:build integration
// +build integration

package repository

import (
	"testing"
	"time"

	"teamup-backend/internal/database/models"
	"teamup-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// TeamRepositoryTestSuite tests the TeamRepository
type TeamRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *TeamRepository
	teams         *testutils.TeamFactory
	users         *testutils.UserFactory
	memberships   *testutils.MembershipFactory
}

// SetupSuite runs before all tests in the suite
func (suite *TeamRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())
	suite.repo = NewTeamRepository(suite.baseTestSuite.DB)
	suite.teams = testutils.NewTeamFactory()
	suite.users = testutils.NewUserFactory()
	suite.memberships = testutils.NewMembershipFactory()
}

// TearDownSuite runs after all tests in the suite
func (suite *TeamRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test
func (suite *TeamRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

// TearDownTest runs after each test
func (suite *TeamRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

func (suite *TeamRepositoryTestSuite) createTeam() *models.Team {
	team := suite.teams.Create()
	suite.Require().NoError(suite.baseTestSuite.DB.Create(team).Error)
	return team
}

func (suite *TeamRepositoryTestSuite) createUser() *models.User {
	user := suite.users.Create()
	suite.Require().NoError(suite.baseTestSuite.DB.Create(user).Error)
	return user
}

// TestCreateAndGetByID tests creating and retrieving a team
func (suite *TeamRepositoryTestSuite) TestCreateAndGetByID() {
	team := suite.teams.WithName("platform")
	err := suite.repo.Create(team)
	suite.NoError(err)

	retrieved, err := suite.repo.GetByID(team.ID)
	suite.NoError(err)
	suite.NotNil(retrieved)
	suite.Equal("platform", retrieved.Name)
	suite.Equal(team.Description, retrieved.Description)
}

// TestGetByIDNotFound tests retrieving a non-existent team
func (suite *TeamRepositoryTestSuite) TestGetByIDNotFound() {
	team, err := suite.repo.GetByID(uuid.New())
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
	suite.Nil(team)
}

// TestGetByName tests the exact-match name lookup
func (suite *TeamRepositoryTestSuite) TestGetByName() {
	team := suite.teams.WithName("search-squad")
	suite.NoError(suite.repo.Create(team))

	retrieved, err := suite.repo.GetByName("search-squad")
	suite.NoError(err)
	suite.Equal(team.ID, retrieved.ID)

	// Case-sensitive: a different casing does not match
	_, err = suite.repo.GetByName("Search-Squad")
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

// TestCreateDuplicateName tests the unique constraint on team names
func (suite *TeamRepositoryTestSuite) TestCreateDuplicateName() {
	suite.NoError(suite.repo.Create(suite.teams.WithName("platform")))

	err := suite.repo.Create(suite.teams.WithName("platform"))
	suite.Error(err)
}

// TestGetAllPagination tests listing with limit and offset
func (suite *TeamRepositoryTestSuite) TestGetAllPagination() {
	for i := 0; i < 5; i++ {
		suite.createTeam()
	}

	teams, total, err := suite.repo.GetAll(2, 0)
	suite.NoError(err)
	suite.Equal(int64(5), total)
	suite.Len(teams, 2)

	teams, total, err = suite.repo.GetAll(2, 4)
	suite.NoError(err)
	suite.Equal(int64(5), total)
	suite.Len(teams, 1)
}

// TestAddAndGetMembership tests inserting and fetching a membership row
func (suite *TeamRepositoryTestSuite) TestAddAndGetMembership() {
	team := suite.createTeam()
	user := suite.createUser()

	m := suite.memberships.WithRole(team.ID, user.ID, models.TeamRoleOwner)
	suite.NoError(suite.repo.AddMembership(m))

	retrieved, err := suite.repo.GetMembership(team.ID, user.ID)
	suite.NoError(err)
	suite.Equal(models.TeamRoleOwner, retrieved.Role)
	suite.Equal(user.ID, retrieved.UserID)
}

// TestAddMembershipDuplicatePair tests the unique (team, user) index
func (suite *TeamRepositoryTestSuite) TestAddMembershipDuplicatePair() {
	team := suite.createTeam()
	user := suite.createUser()

	suite.NoError(suite.repo.AddMembership(suite.memberships.Create(team.ID, user.ID)))

	err := suite.repo.AddMembership(suite.memberships.WithRole(team.ID, user.ID, models.TeamRoleAdmin))
	suite.Error(err)
}

// TestUpdateMembership tests a role change on an existing row
func (suite *TeamRepositoryTestSuite) TestUpdateMembership() {
	team := suite.createTeam()
	user := suite.createUser()

	m := suite.memberships.Create(team.ID, user.ID)
	suite.NoError(suite.repo.AddMembership(m))

	m.Role = models.TeamRoleAdmin
	suite.NoError(suite.repo.UpdateMembership(m))

	retrieved, err := suite.repo.GetMembership(team.ID, user.ID)
	suite.NoError(err)
	suite.Equal(models.TeamRoleAdmin, retrieved.Role)
}

// TestRemoveMembership tests deleting a membership row
func (suite *TeamRepositoryTestSuite) TestRemoveMembership() {
	team := suite.createTeam()
	user := suite.createUser()
	suite.NoError(suite.repo.AddMembership(suite.memberships.Create(team.ID, user.ID)))

	suite.NoError(suite.repo.RemoveMembership(team.ID, user.ID))

	_, err := suite.repo.GetMembership(team.ID, user.ID)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

// TestGetMembershipsByTeamOrdersByJoin tests oldest-first ordering with users preloaded
func (suite *TeamRepositoryTestSuite) TestGetMembershipsByTeamOrdersByJoin() {
	team := suite.createTeam()
	first := suite.createUser()
	second := suite.createUser()

	early := suite.memberships.WithRole(team.ID, first.ID, models.TeamRoleOwner)
	early.JoinedAt = time.Now().UTC().Add(-time.Hour)
	suite.NoError(suite.repo.AddMembership(early))

	late := suite.memberships.Create(team.ID, second.ID)
	suite.NoError(suite.repo.AddMembership(late))

	memberships, err := suite.repo.GetMembershipsByTeam(team.ID)
	suite.NoError(err)
	suite.Require().Len(memberships, 2)
	suite.Equal(first.ID, memberships[0].UserID)
	suite.Equal(second.ID, memberships[1].UserID)
	suite.Equal(first.Email, memberships[0].User.Email)
}

// TestGetMembershipsByUser tests listing a user's memberships across teams
func (suite *TeamRepositoryTestSuite) TestGetMembershipsByUser() {
	user := suite.createUser()
	teamA := suite.createTeam()
	teamB := suite.createTeam()

	suite.NoError(suite.repo.AddMembership(suite.memberships.Create(teamA.ID, user.ID)))
	suite.NoError(suite.repo.AddMembership(suite.memberships.WithRole(teamB.ID, user.ID, models.TeamRoleAdmin)))

	memberships, err := suite.repo.GetMembershipsByUser(user.ID)
	suite.NoError(err)
	suite.Len(memberships, 2)
}

// TestDeleteCascadesMemberships tests that team deletion removes membership rows
func (suite *TeamRepositoryTestSuite) TestDeleteCascadesMemberships() {
	team := suite.createTeam()
	user := suite.createUser()
	suite.NoError(suite.repo.AddMembership(suite.memberships.Create(team.ID, user.ID)))

	suite.NoError(suite.repo.Delete(team.ID))

	_, err := suite.repo.GetByID(team.ID)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)

	count, err := suite.repo.GetMemberCount(team.ID)
	suite.NoError(err)
	suite.Equal(int64(0), count)
}

// TestGetWithMemberships tests preloading membership rows and their users
func (suite *TeamRepositoryTestSuite) TestGetWithMemberships() {
	team := suite.createTeam()
	user := suite.createUser()
	suite.NoError(suite.repo.AddMembership(suite.memberships.WithRole(team.ID, user.ID, models.TeamRoleOwner)))

	retrieved, err := suite.repo.GetWithMemberships(team.ID)
	suite.NoError(err)
	suite.Require().Len(retrieved.Memberships, 1)
	suite.Equal(user.ID, retrieved.Memberships[0].UserID)
	suite.Equal(user.Email, retrieved.Memberships[0].User.Email)
}

// Run the test suite
func TestTeamRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(TeamRepositoryTestSuite))
}
