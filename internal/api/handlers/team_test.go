package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"teamup-backend/internal/api/handlers"
	apperrors "teamup-backend/internal/errors"
	"teamup-backend/internal/mocks"
	"teamup-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// principalMiddleware injects an authenticated principal the way the auth
// middleware would
func principalMiddleware(userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID.String())
		c.Next()
	}
}

// TeamHandlerTestSuite defines the test suite for TeamHandler
type TeamHandlerTestSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockService *mocks.MockTeamServiceInterface
	handler     *handlers.TeamHandler
	router      *gin.Engine
	principalID uuid.UUID
}

// SetupTest sets up the test suite
func (suite *TeamHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.ctrl = gomock.NewController(suite.T())
	suite.mockService = mocks.NewMockTeamServiceInterface(suite.ctrl)
	suite.handler = handlers.NewTeamHandler(suite.mockService)
	suite.principalID = uuid.New()

	suite.router = gin.New()
	authed := suite.router.Group("", principalMiddleware(suite.principalID))
	authed.POST("/teams", suite.handler.Create)
	authed.DELETE("/teams/:id", suite.handler.Delete)
	authed.GET("/teams/:id", suite.handler.GetByID)
	authed.GET("/teams", suite.handler.List)
	authed.POST("/teams/:id/members/:userId", suite.handler.AddMember)
	authed.DELETE("/teams/:id/members/:userId", suite.handler.RemoveMember)
	authed.POST("/teams/:id/admins/:userId", suite.handler.AddAdmin)
	authed.DELETE("/teams/:id/admins/:userId", suite.handler.RemoveAdmin)
	authed.GET("/teams/:id/members", suite.handler.ListMembers)
	authed.GET("/teams/:id/members/:userId", suite.handler.GetMember)
}

// TearDownTest cleans up after each test
func (suite *TeamHandlerTestSuite) TearDownTest() {
	suite.ctrl.Finish()
}

func (suite *TeamHandlerTestSuite) doJSON(method, url string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// TestCreateTeam tests a successful team creation
func (suite *TeamHandlerTestSuite) TestCreateTeam() {
	req := &service.CreateTeamRequest{Name: "platform", Description: "Platform team"}
	resp := &service.TeamResponse{ID: uuid.New(), Name: "platform"}

	suite.mockService.EXPECT().
		Create(suite.principalID, gomock.Any()).
		Return(resp, nil)

	w := suite.doJSON(http.MethodPost, "/teams", req)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)
	var got service.TeamResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(suite.T(), "platform", got.Name)
}

// TestCreateTeamConflict tests the duplicate-name conflict mapping
func (suite *TeamHandlerTestSuite) TestCreateTeamConflict() {
	suite.mockService.EXPECT().
		Create(suite.principalID, gomock.Any()).
		Return(nil, apperrors.ErrTeamExists)

	w := suite.doJSON(http.MethodPost, "/teams", &service.CreateTeamRequest{Name: "platform"})

	assert.Equal(suite.T(), http.StatusConflict, w.Code)
}

// TestDeleteTeamStatusMapping tests the error-to-status mapping for delete
func (suite *TeamHandlerTestSuite) TestDeleteTeamStatusMapping() {
	teamID := uuid.New()

	testCases := []struct {
		name   string
		err    error
		status int
	}{
		{"success", nil, http.StatusOK},
		{"not an owner", apperrors.NewAuthorizationError("only a team owner can delete the team"), http.StatusForbidden},
		{"missing team", apperrors.ErrTeamNotFound, http.StatusNotFound},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			suite.mockService.EXPECT().
				Delete(suite.principalID, teamID).
				Return(tc.err)

			w := suite.doJSON(http.MethodDelete, "/teams/"+teamID.String(), nil)
			assert.Equal(t, tc.status, w.Code)
		})
	}
}

// TestDeleteTeamInvalidID tests the path parameter validation
func (suite *TeamHandlerTestSuite) TestDeleteTeamInvalidID() {
	w := suite.doJSON(http.MethodDelete, "/teams/not-a-uuid", nil)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestAddMemberStatusMapping tests the error-to-status mapping for member add
func (suite *TeamHandlerTestSuite) TestAddMemberStatusMapping() {
	teamID := uuid.New()
	targetID := uuid.New()
	url := "/teams/" + teamID.String() + "/members/" + targetID.String()

	testCases := []struct {
		name   string
		err    error
		status int
	}{
		{"forbidden", apperrors.NewAuthorizationError("only a team admin can add members"), http.StatusForbidden},
		{"team missing", apperrors.ErrTeamNotFound, http.StatusNotFound},
		{"user missing", apperrors.ErrUserNotFound, http.StatusNotFound},
		{"already a member", apperrors.ErrMembershipExists, http.StatusConflict},
	}

	for _, tc := range testCases {
		suite.T().Run(tc.name, func(t *testing.T) {
			suite.mockService.EXPECT().
				AddMember(suite.principalID, teamID, targetID).
				Return(nil, tc.err)

			w := suite.doJSON(http.MethodPost, url, nil)
			assert.Equal(t, tc.status, w.Code)
		})
	}
}

// TestAddMemberReturnsMemberList tests the success payload
func (suite *TeamHandlerTestSuite) TestAddMemberReturnsMemberList() {
	teamID := uuid.New()
	targetID := uuid.New()
	members := []service.MemberResponse{
		{UserID: suite.principalID, Role: "admin"},
		{UserID: targetID, Role: "member"},
	}

	suite.mockService.EXPECT().
		AddMember(suite.principalID, teamID, targetID).
		Return(members, nil)

	w := suite.doJSON(http.MethodPost, "/teams/"+teamID.String()+"/members/"+targetID.String(), nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	var got []service.MemberResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(suite.T(), got, 2)
}

// TestRemoveMemberResponses tests the asymmetric remove-member payloads
func (suite *TeamHandlerTestSuite) TestRemoveMemberResponses() {
	teamID := uuid.New()

	suite.T().Run("admin gets member list", func(t *testing.T) {
		targetID := uuid.New()
		suite.mockService.EXPECT().
			RemoveMember(suite.principalID, teamID, targetID).
			Return(&service.RemoveMemberResponse{
				Members: []service.MemberResponse{{UserID: suite.principalID, Role: "admin"}},
			}, nil)

		w := suite.doJSON(http.MethodDelete, "/teams/"+teamID.String()+"/members/"+targetID.String(), nil)

		assert.Equal(t, http.StatusOK, w.Code)
		var got service.RemoveMemberResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Len(t, got.Members, 1)
		assert.Empty(t, got.Message)
	})

	suite.T().Run("self-removal gets confirmation", func(t *testing.T) {
		suite.mockService.EXPECT().
			RemoveMember(suite.principalID, teamID, suite.principalID).
			Return(&service.RemoveMemberResponse{Message: "left team"}, nil)

		w := suite.doJSON(http.MethodDelete, "/teams/"+teamID.String()+"/members/"+suite.principalID.String(), nil)

		assert.Equal(t, http.StatusOK, w.Code)
		var got service.RemoveMemberResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "left team", got.Message)
		assert.Empty(t, got.Members)
	})
}

// TestAdminEndpointsStatusMapping tests promote/demote conflict mapping
func (suite *TeamHandlerTestSuite) TestAdminEndpointsStatusMapping() {
	teamID := uuid.New()
	targetID := uuid.New()

	suite.T().Run("promote non-member", func(t *testing.T) {
		suite.mockService.EXPECT().
			AddAdmin(suite.principalID, teamID, targetID).
			Return(nil, apperrors.ErrNotAMember)

		w := suite.doJSON(http.MethodPost, "/teams/"+teamID.String()+"/admins/"+targetID.String(), nil)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	suite.T().Run("promote existing admin", func(t *testing.T) {
		suite.mockService.EXPECT().
			AddAdmin(suite.principalID, teamID, targetID).
			Return(nil, apperrors.ErrAlreadyAdmin)

		w := suite.doJSON(http.MethodPost, "/teams/"+teamID.String()+"/admins/"+targetID.String(), nil)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	suite.T().Run("demote plain member", func(t *testing.T) {
		suite.mockService.EXPECT().
			RemoveAdmin(suite.principalID, teamID, targetID).
			Return(nil, apperrors.ErrNotAnAdmin)

		w := suite.doJSON(http.MethodDelete, "/teams/"+teamID.String()+"/admins/"+targetID.String(), nil)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	suite.T().Run("demote owner without owner rights", func(t *testing.T) {
		suite.mockService.EXPECT().
			RemoveAdmin(suite.principalID, teamID, targetID).
			Return(nil, apperrors.NewAuthorizationError("only a team owner can demote an owner-tier admin"))

		w := suite.doJSON(http.MethodDelete, "/teams/"+teamID.String()+"/admins/"+targetID.String(), nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	suite.T().Run("demote sole owner", func(t *testing.T) {
		suite.mockService.EXPECT().
			RemoveAdmin(suite.principalID, teamID, targetID).
			Return(nil, apperrors.ErrLastOwner)

		w := suite.doJSON(http.MethodDelete, "/teams/"+teamID.String()+"/admins/"+targetID.String(), nil)
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

// TestInternalErrorIsOpaque tests that backend failure detail stays server-side
func (suite *TeamHandlerTestSuite) TestInternalErrorIsOpaque() {
	teamID := uuid.New()

	suite.mockService.EXPECT().
		GetByID(teamID).
		Return(nil, errors.New("failed to get team: pq: connection refused"))

	w := suite.doJSON(http.MethodGet, "/teams/"+teamID.String(), nil)

	assert.Equal(suite.T(), http.StatusInternalServerError, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "internal server error")
	assert.NotContains(suite.T(), w.Body.String(), "connection refused")
}

// TestGetMemberNotFound tests fetching a missing membership
func (suite *TeamHandlerTestSuite) TestGetMemberNotFound() {
	teamID := uuid.New()
	targetID := uuid.New()

	suite.mockService.EXPECT().
		GetMember(teamID, targetID).
		Return(nil, apperrors.ErrMembershipNotFound)

	w := suite.doJSON(http.MethodGet, "/teams/"+teamID.String()+"/members/"+targetID.String(), nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestListPassesPagination tests the query parameter parsing
func (suite *TeamHandlerTestSuite) TestListPassesPagination() {
	suite.mockService.EXPECT().
		List(2, 10).
		Return(&service.TeamListResponse{Teams: []service.TeamResponse{}, Page: 2, PageSize: 10}, nil)

	w := suite.doJSON(http.MethodGet, "/teams?page=2&pageSize=10", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

// TestCreateTeamValidationMapsTo400 drives the real service behind the
// handler: a parseable body with an empty name must come back as a 400,
// not an internal error. No repository expectations are needed because
// validation rejects the request before any repository call.
func TestCreateTeamValidationMapsTo400(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	teamService := service.NewTeamService(
		mocks.NewMockTeamRepositoryInterface(ctrl),
		mocks.NewMockUserRepositoryInterface(ctrl),
		mocks.NewMockProfileRepositoryInterface(ctrl),
		mocks.NewMockPostRepositoryInterface(ctrl),
		validator.New(),
	)
	handler := handlers.NewTeamHandler(teamService)

	router := gin.New()
	router.POST("/teams", principalMiddleware(uuid.New()), handler.Create)

	req := httptest.NewRequest(http.MethodPost, "/teams", bytes.NewBufferString(`{"name":""}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation error")
}

// TestTeamHandlerTestSuite runs the test suite
func TestTeamHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TeamHandlerTestSuite))
}
