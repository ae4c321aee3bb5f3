//go:build integration
// +build integration

package repository

import (
	"testing"

	"teamup-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// UserRepositoryTestSuite tests the UserRepository
type UserRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *UserRepository
	users         *testutils.UserFactory
}

// SetupSuite runs before all tests in the suite
func (suite *UserRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())
	suite.repo = NewUserRepository(suite.baseTestSuite.DB)
	suite.users = testutils.NewUserFactory()
}

// TearDownSuite runs after all tests in the suite
func (suite *UserRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test
func (suite *UserRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

// TearDownTest runs after each test
func (suite *UserRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

// TestCreateAndGetByID tests creating and retrieving a user
func (suite *UserRepositoryTestSuite) TestCreateAndGetByID() {
	user := suite.users.WithName("Noa", "Levi")
	suite.NoError(suite.repo.Create(user))

	retrieved, err := suite.repo.GetByID(user.ID)
	suite.NoError(err)
	suite.Equal("Noa", retrieved.FirstName)
	suite.Equal("Levi", retrieved.LastName)
	suite.Equal(user.Email, retrieved.Email)
	suite.NotEmpty(retrieved.PasswordHash)
}

// TestGetByEmail tests the email lookup used by login
func (suite *UserRepositoryTestSuite) TestGetByEmail() {
	user := suite.users.WithEmail("noa.levi@example.com")
	suite.NoError(suite.repo.Create(user))

	retrieved, err := suite.repo.GetByEmail("noa.levi@example.com")
	suite.NoError(err)
	suite.Equal(user.ID, retrieved.ID)

	_, err = suite.repo.GetByEmail("nobody@example.com")
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

// TestCreateDuplicateEmail tests the unique constraint on emails
func (suite *UserRepositoryTestSuite) TestCreateDuplicateEmail() {
	suite.NoError(suite.repo.Create(suite.users.WithEmail("taken@example.com")))

	err := suite.repo.Create(suite.users.WithEmail("taken@example.com"))
	suite.Error(err)
}

// TestGetByIDs tests the batch lookup used for member hydration
func (suite *UserRepositoryTestSuite) TestGetByIDs() {
	a := suite.users.Create()
	b := suite.users.Create()
	c := suite.users.Create()
	suite.NoError(suite.repo.Create(a))
	suite.NoError(suite.repo.Create(b))
	suite.NoError(suite.repo.Create(c))

	users, err := suite.repo.GetByIDs([]uuid.UUID{a.ID, c.ID})
	suite.NoError(err)
	suite.Len(users, 2)
}

// TestUpdate tests persisting field changes
func (suite *UserRepositoryTestSuite) TestUpdate() {
	user := suite.users.Create()
	suite.NoError(suite.repo.Create(user))

	user.AvatarURL = "https://www.gravatar.com/avatar/changed?s=200"
	suite.NoError(suite.repo.Update(user))

	retrieved, err := suite.repo.GetByID(user.ID)
	suite.NoError(err)
	suite.Equal(user.AvatarURL, retrieved.AvatarURL)
}

// TestDelete tests removing a user
func (suite *UserRepositoryTestSuite) TestDelete() {
	user := suite.users.Create()
	suite.NoError(suite.repo.Create(user))

	suite.NoError(suite.repo.Delete(user.ID))

	_, err := suite.repo.GetByID(user.ID)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

// TestGetAllPagination tests listing users with limit and offset
func (suite *UserRepositoryTestSuite) TestGetAllPagination() {
	for i := 0; i < 3; i++ {
		suite.NoError(suite.repo.Create(suite.users.Create()))
	}

	users, total, err := suite.repo.GetAll(2, 0)
	suite.NoError(err)
	suite.Equal(int64(3), total)
	suite.Len(users, 2)
}

// Run the test suite
func TestUserRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(UserRepositoryTestSuite))
}
