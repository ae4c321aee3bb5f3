//go:build integration
// +build integration

package service_test

import (
	"testing"

	apperrors "teamup-backend/internal/errors"
	"teamup-backend/internal/repository"
	"teamup-backend/internal/service"
	"teamup-backend/internal/testutils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// TeamFlowTestSuite runs the full collaboration flow against a real
// Postgres: registration, team creation, membership, post attachment,
// authorization rejections, and team deletion.
type TeamFlowTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	userService   *service.UserService
	profileSvc    *service.ProfileService
	teamService   *service.TeamService
	postService   *service.PostService
}

// SetupSuite runs before all tests in the suite
func (suite *TeamFlowTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())

	db := suite.baseTestSuite.DB
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	postRepo := repository.NewPostRepository(db)
	v := validator.New()

	suite.userService = service.NewUserService(userRepo, profileRepo, v)
	suite.profileSvc = service.NewProfileService(profileRepo, v)
	suite.teamService = service.NewTeamService(teamRepo, userRepo, profileRepo, postRepo, v)
	suite.postService = service.NewPostService(postRepo, teamRepo, userRepo, v)
}

// TearDownSuite runs after all tests in the suite
func (suite *TeamFlowTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test
func (suite *TeamFlowTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

// TearDownTest runs after each test
func (suite *TeamFlowTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

func (suite *TeamFlowTestSuite) register(first, last, email string) uuid.UUID {
	user, err := suite.userService.Register(&service.RegisterRequest{
		FirstName: first,
		LastName:  last,
		Email:     email,
		Password:  "s3cret-pass",
	})
	suite.Require().NoError(err)
	return user.ID
}

// TestFullCollaborationFlow walks a team through its whole lifecycle
func (suite *TeamFlowTestSuite) TestFullCollaborationFlow() {
	ownerID := suite.register("Omer", "Shalev", "omer.shalev@example.com")
	memberID := suite.register("Maya", "Bar", "maya.bar@example.com")
	outsiderID := suite.register("Xavier", "Roth", "xavier.roth@example.com")

	// Creating a team makes the creator its sole owner, admin and member
	team, err := suite.teamService.Create(ownerID, &service.CreateTeamRequest{Name: "Falcons"})
	suite.Require().NoError(err)
	suite.Require().Len(team.Owners, 1)
	suite.Equal(ownerID, team.Owners[0].UserID)
	suite.Require().Len(team.Admins, 1)
	suite.Require().Len(team.Members, 1)

	// The creator's profile gains the back-reference
	ownerProfile, err := suite.profileSvc.GetByUserID(ownerID)
	suite.Require().NoError(err)
	suite.Require().Len(ownerProfile.Teams, 1)
	suite.Equal(team.ID, ownerProfile.Teams[0].TeamID)
	suite.Equal("Falcons", ownerProfile.Teams[0].Name)

	// Adding members keeps both sides of the membership consistent
	_, err = suite.teamService.AddMember(ownerID, team.ID, memberID)
	suite.Require().NoError(err)
	_, err = suite.teamService.AddMember(ownerID, team.ID, outsiderID)
	suite.Require().NoError(err)

	memberProfile, err := suite.profileSvc.GetByUserID(memberID)
	suite.Require().NoError(err)
	suite.Require().Len(memberProfile.Teams, 1)
	suite.Equal(team.ID, memberProfile.Teams[0].TeamID)

	// A member attaches their own post to the team
	post, err := suite.postService.Create(memberID, &service.CreatePostRequest{Text: "first team update"})
	suite.Require().NoError(err)

	feed, err := suite.postService.Attach(memberID, team.ID, post.ID)
	suite.Require().NoError(err)
	suite.Require().Len(feed, 1)
	suite.Require().NotNil(feed[0].TeamID)
	suite.Equal(team.ID, *feed[0].TeamID)

	// A plain member who is not the author may not detach the post
	_, err = suite.postService.Detach(outsiderID, team.ID, post.ID)
	suite.Require().Error(err)
	suite.True(apperrors.IsAuthorization(err))

	// Only the owner can delete the team; deletion takes the feed with it
	err = suite.teamService.Delete(memberID, team.ID)
	suite.Require().Error(err)
	suite.True(apperrors.IsAuthorization(err))

	suite.Require().NoError(suite.teamService.Delete(ownerID, team.ID))

	_, err = suite.teamService.GetByID(team.ID)
	suite.ErrorIs(err, apperrors.ErrTeamNotFound)

	_, err = suite.postService.GetByID(post.ID)
	suite.ErrorIs(err, apperrors.ErrPostNotFound)
}

// TestMembershipRoundTrip verifies add then remove restores both stores
func (suite *TeamFlowTestSuite) TestMembershipRoundTrip() {
	ownerID := suite.register("Omer", "Shalev", "omer.roundtrip@example.com")
	memberID := suite.register("Maya", "Bar", "maya.roundtrip@example.com")

	team, err := suite.teamService.Create(ownerID, &service.CreateTeamRequest{Name: "Roundtrip"})
	suite.Require().NoError(err)

	_, err = suite.teamService.AddMember(ownerID, team.ID, memberID)
	suite.Require().NoError(err)

	resp, err := suite.teamService.RemoveMember(ownerID, team.ID, memberID)
	suite.Require().NoError(err)
	suite.Require().Len(resp.Members, 1)
	suite.Equal(ownerID, resp.Members[0].UserID)

	profile, err := suite.profileSvc.GetByUserID(memberID)
	suite.Require().NoError(err)
	suite.Empty(profile.Teams)
}

// Run the test suite
func TestTeamFlowTestSuite(t *testing.T) {
	suite.Run(t, new(TeamFlowTestSuite))
}
