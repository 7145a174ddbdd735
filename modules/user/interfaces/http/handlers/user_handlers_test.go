package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"scribe/server/modules/user/application/services"
	"scribe/server/modules/user/domain/entities"
	"scribe/server/modules/user/domain/repositories"
	infraRepos "scribe/server/modules/user/infrastructure/repositories"
	"scribe/server/modules/user/interfaces/http/dtos"
)

type UserHandlersTestSuite struct {
	suite.Suite
	db          *gorm.DB
	handlers    *UserHandlers
	userService *services.UserService
	userRepo    repositories.UserRepository
}

func (s *UserHandlersTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	s.Require().NoError(err)
	s.db = db
	s.Require().NoError(db.AutoMigrate(&entities.User{}))

	s.userRepo = infraRepos.NewGormUserRepositoryWithDB(db)
	s.userService = services.NewUserService(s.userRepo)
	s.handlers = NewUserHandlers(s.userService)
}

func (s *UserHandlersTestSuite) SetupTest() {
	s.db.Exec("DELETE FROM users")
}

func (s *UserHandlersTestSuite) createTestUser(name, email string) *entities.User {
	emailVO, err := entities.NewEmail(email)
	s.Require().NoError(err)
	user := entities.NewUser(uuid.NewString(), name, emailVO)
	s.Require().NoError(s.userRepo.Create(&user))
	return &user
}

func (s *UserHandlersTestSuite) TestGetCurrentUser() {
	user := s.createTestUser("Current User", "current@test.com")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/me", nil)
	c.Set("user", user)

	s.handlers.GetCurrentUser(c)

	s.Equal(http.StatusOK, w.Code)

	var response dtos.UserResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	s.Equal(user.GetID(), response.ID)
	s.Equal(user.GetName(), response.Name)
	s.Equal(user.GetEmail().String(), response.Email)
	s.Equal(entities.PlanFree, response.Plan)
}

func (s *UserHandlersTestSuite) TestGetCurrentUserUnauthenticated() {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/me", nil)

	s.handlers.GetCurrentUser(c)

	s.Require().NotEmpty(c.Errors)
}

func (s *UserHandlersTestSuite) TestUpdateCurrentUser() {
	user := s.createTestUser("Old Name", "rename@test.com")

	body, _ := json.Marshal(dtos.UpdateUserRequest{Name: strPtr("New Name")})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("PATCH", "/me", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("user", user)

	s.handlers.UpdateCurrentUser(c)

	s.Equal(http.StatusOK, w.Code)
	var response dtos.UserResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	s.Equal("New Name", response.Name)
}

func strPtr(s string) *string { return &s }

func TestUserHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(UserHandlersTestSuite))
}
