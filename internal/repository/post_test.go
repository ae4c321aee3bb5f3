//go:build integration
// +build integration

package repository

import (
	"encoding/json"
	"testing"
	"time"

	"teamup-backend/internal/database/models"
	"teamup-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// PostRepositoryTestSuite tests the PostRepository
type PostRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *PostRepository
	posts         *testutils.PostFactory
	teams         *testutils.TeamFactory
	users         *testutils.UserFactory
}

// SetupSuite runs before all tests in the suite
func (suite *PostRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())
	suite.repo = NewPostRepository(suite.baseTestSuite.DB)
	suite.posts = testutils.NewPostFactory()
	suite.teams = testutils.NewTeamFactory()
	suite.users = testutils.NewUserFactory()
}

// TearDownSuite runs after all tests in the suite
func (suite *PostRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test
func (suite *PostRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

// TearDownTest runs after each test
func (suite *PostRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

func (suite *PostRepositoryTestSuite) createUser() *models.User {
	user := suite.users.Create()
	suite.Require().NoError(suite.baseTestSuite.DB.Create(user).Error)
	return user
}

func (suite *PostRepositoryTestSuite) createTeam() *models.Team {
	team := suite.teams.Create()
	suite.Require().NoError(suite.baseTestSuite.DB.Create(team).Error)
	return team
}

// TestCreateAndGetByID tests creating and retrieving a post
func (suite *PostRepositoryTestSuite) TestCreateAndGetByID() {
	user := suite.createUser()
	post := suite.posts.Create(user.ID)

	suite.NoError(suite.repo.Create(post))

	retrieved, err := suite.repo.GetByID(post.ID)
	suite.NoError(err)
	suite.Equal(post.Text, retrieved.Text)
	suite.Nil(retrieved.TeamID)
	suite.JSONEq(`[]`, string(retrieved.Likes))
	suite.JSONEq(`[]`, string(retrieved.Comments))
}

// TestGetByIDNotFound tests retrieving a non-existent post
func (suite *PostRepositoryTestSuite) TestGetByIDNotFound() {
	post, err := suite.repo.GetByID(uuid.New())
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
	suite.Nil(post)
}

// TestGetByTeamIDNewestFirst tests the team feed ordering
func (suite *PostRepositoryTestSuite) TestGetByTeamIDNewestFirst() {
	user := suite.createUser()
	team := suite.createTeam()

	old := suite.posts.InTeam(user.ID, team.ID)
	old.CreatedAt = time.Now().Add(-time.Hour)
	old.Text = "older"
	suite.NoError(suite.repo.Create(old))

	recent := suite.posts.InTeam(user.ID, team.ID)
	recent.Text = "newer"
	suite.NoError(suite.repo.Create(recent))

	// Unattached post by the same author stays out of the feed
	suite.NoError(suite.repo.Create(suite.posts.Create(user.ID)))

	posts, err := suite.repo.GetByTeamID(team.ID)
	suite.NoError(err)
	suite.Require().Len(posts, 2)
	suite.Equal("newer", posts[0].Text)
	suite.Equal("older", posts[1].Text)
}

// TestGetByUserID tests listing a user's posts across attachment states
func (suite *PostRepositoryTestSuite) TestGetByUserID() {
	user := suite.createUser()
	other := suite.createUser()
	team := suite.createTeam()

	suite.NoError(suite.repo.Create(suite.posts.Create(user.ID)))
	suite.NoError(suite.repo.Create(suite.posts.InTeam(user.ID, team.ID)))
	suite.NoError(suite.repo.Create(suite.posts.Create(other.ID)))

	posts, err := suite.repo.GetByUserID(user.ID)
	suite.NoError(err)
	suite.Len(posts, 2)
}

// TestUpdateAttachesPost tests persisting a team attachment
func (suite *PostRepositoryTestSuite) TestUpdateAttachesPost() {
	user := suite.createUser()
	team := suite.createTeam()

	post := suite.posts.Create(user.ID)
	suite.NoError(suite.repo.Create(post))

	post.TeamID = &team.ID
	post.Likes = json.RawMessage(`[{"user_id":"` + user.ID.String() + `"}]`)
	suite.NoError(suite.repo.Update(post))

	retrieved, err := suite.repo.GetByID(post.ID)
	suite.NoError(err)
	suite.Require().NotNil(retrieved.TeamID)
	suite.Equal(team.ID, *retrieved.TeamID)
	suite.Contains(string(retrieved.Likes), user.ID.String())
}

// TestDelete tests removing a single post
func (suite *PostRepositoryTestSuite) TestDelete() {
	user := suite.createUser()
	post := suite.posts.Create(user.ID)
	suite.NoError(suite.repo.Create(post))

	suite.NoError(suite.repo.Delete(post.ID))

	_, err := suite.repo.GetByID(post.ID)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

// TestDeleteByTeamID tests bulk removal of a team's feed
func (suite *PostRepositoryTestSuite) TestDeleteByTeamID() {
	user := suite.createUser()
	team := suite.createTeam()

	suite.NoError(suite.repo.Create(suite.posts.InTeam(user.ID, team.ID)))
	suite.NoError(suite.repo.Create(suite.posts.InTeam(user.ID, team.ID)))
	unattached := suite.posts.Create(user.ID)
	suite.NoError(suite.repo.Create(unattached))

	suite.NoError(suite.repo.DeleteByTeamID(team.ID))

	posts, err := suite.repo.GetByTeamID(team.ID)
	suite.NoError(err)
	suite.Len(posts, 0)

	// Unattached posts survive
	_, err = suite.repo.GetByID(unattached.ID)
	suite.NoError(err)
}

// Run the test suite
func TestPostRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(PostRepositoryTestSuite))
}
