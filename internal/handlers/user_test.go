package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/vibevent/vibevent-api/internal/constants"
	"github.com/vibevent/vibevent-api/internal/database"
	"github.com/vibevent/vibevent-api/internal/dto"
	"github.com/vibevent/vibevent-api/internal/models"
	"github.com/vibevent/vibevent-api/internal/repository"
	"github.com/vibevent/vibevent-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type userTestEnv struct {
	db          *gorm.DB
	handler     *UserHandler
	userService *services.UserService
}

func setupUserTestEnv(t *testing.T) userTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), database.NewGormConfig(logger.Silent))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))

	userService := services.NewUserService(
		repository.NewUserRepository(db),
		services.NewTokenService(testSecret, time.Hour),
	)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return userTestEnv{
		db:          db,
		handler:     NewUserHandler(userService),
		userService: userService,
	}
}

func TestUserHandler_GetCurrentUser(t *testing.T) {
	env := setupUserTestEnv(t)

	user, err := env.userService.Signup(services.SignupUserInput{
		Username: "current-user",
		Email:    "current@campus.edu",
		Password: "supersecret",
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(constants.ContextKeyPrincipalKind, models.TargetUser)
	c.Set(constants.ContextKeyUserID, user.ID)

	env.handler.GetCurrentUser(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, user.ID, response.ID)
	require.Equal(t, "current-user", response.Username)
}

func TestUserHandler_GetCurrentUser_ClubPrincipal(t *testing.T) {
	env := setupUserTestEnv(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(constants.ContextKeyPrincipalKind, models.TargetClub)
	c.Set(constants.ContextKeyClubID, uint64(1))

	env.handler.GetCurrentUser(c)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUserHandler_GetUser_NotFound(t *testing.T) {
	env := setupUserTestEnv(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/users/42", nil)
	c.Params = gin.Params{{Key: "id", Value: "42"}}

	env.handler.GetUser(c)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserHandler_Logout_WithoutSessions(t *testing.T) {
	env := setupUserTestEnv(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/users/logout", nil)

	env.handler.Logout(c)

	require.Equal(t, http.StatusOK, w.Code)
}
