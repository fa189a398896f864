package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/vibevent/vibevent-api/internal/dto"
	apierrors "github.com/vibevent/vibevent-api/internal/errors"
	"github.com/vibevent/vibevent-api/internal/middleware"
	"github.com/vibevent/vibevent-api/internal/models"
	"github.com/vibevent/vibevent-api/internal/services"
	"github.com/vibevent/vibevent-api/internal/utils"
)

// UserHandler serves student accounts, login and the leaderboard.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// Signup registers a new user.
func (h *UserHandler) Signup(c *gin.Context) {
	type SignupRequest struct {
		Username string `json:"username" binding:"required,max=100"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
		Picture  string `json:"picture"`
	}

	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.Signup(services.SignupUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Picture:  req.Picture,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// Login checks credentials, returns a token and starts a session.
func (h *UserHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email"`
		Username string `json:"username"`
		Password string `json:"password" binding:"required"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	identifier := req.Email
	if identifier == "" {
		identifier = req.Username
	}
	if identifier == "" {
		apierrors.BadRequest(c, "email or username is required")
		return
	}

	result, err := h.userService.Authenticate(identifier, req.Password)
	if err != nil {
		respondUserError(c, err)
		return
	}

	if err := middleware.SavePrincipal(c, services.Principal{Kind: models.TargetUser, ID: result.Account.ID}); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.JSON(http.StatusOK, dto.UserAuthResponse{
		Token: result.Token,
		User:  dto.ToUserDTO(*result.Account),
	})
}

// Logout removes the authentication session.
func (h *UserHandler) Logout(c *gin.Context) {
	logout(c)
}

// GetCurrentUser returns the authenticated user.
func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated as a user")
		return
	}

	user, err := h.userService.Get(userID)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// ListUsers returns users filtered by q and paginated.
func (h *UserHandler) ListUsers(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	users, total, err := h.userService.List(services.ListUsersInput{
		Search:     c.Query("q"),
		Pagination: params,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users":      dto.ToUserDTOs(users),
		"pagination": params.Response(total),
	})
}

func (h *UserHandler) CountUsers(c *gin.Context) {
	count, err := h.userService.Count()
	if err != nil {
		respondUserError(c, err)
		return
	}
	respondCount(c, count)
}

// TopUsers returns the leaderboard.
func (h *UserHandler) TopUsers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	users, err := h.userService.Top(limit)
	if err != nil {
		respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": dto.ToUserDTOs(users)})
}

// UserExists answers whether a username or email is taken.
func (h *UserHandler) UserExists(c *gin.Context) {
	var (
		exists bool
		err    error
	)
	switch {
	case c.Query("username") != "":
		exists, err = h.userService.UsernameExists(c.Query("username"))
	case c.Query("email") != "":
		exists, err = h.userService.EmailExists(c.Query("email"))
	default:
		apierrors.BadRequest(c, "username or email is required")
		return
	}
	if err != nil {
		respondUserError(c, err)
		return
	}
	respondExists(c, exists)
}

// LookupUser finds a user by email or username.
func (h *UserHandler) LookupUser(c *gin.Context) {
	identifier := c.Query("identifier")
	if identifier == "" {
		apierrors.BadRequest(c, "identifier is required")
		return
	}

	user, err := h.userService.GetByIdentifier(identifier)
	if err != nil {
		respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.Get(id)
	if err != nil {
		respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// GetUserRank returns the user's leaderboard position.
func (h *UserHandler) GetUserRank(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	rank, err := h.userService.Rank(id)
	if err != nil {
		respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":   id,
		"rank": rank,
	})
}

// UpdateUser merges the non-empty fields of the request.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	type UpdateRequest struct {
		Username *string `json:"username"`
		Email    *string `json:"email" binding:"omitempty,email"`
		Password *string `json:"password"`
		Picture  *string `json:"picture"`
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.Update(id, services.UpdateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Picture:  req.Picture,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// UpdateUserPoints adds delta to the user's points.
func (h *UserHandler) UpdateUserPoints(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req pointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.UpdatePoints(id, *req.Delta)
	if err != nil {
		respondUserError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// DeleteUser removes the user and everything attached to it.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.userService.Delete(id); err != nil {
		respondUserError(c, err)
		return
	}
	respondDeleted(c, "User deleted successfully")
}

type pointsRequest struct {
	Delta *int64 `json:"delta" binding:"required"`
}

func logout(c *gin.Context) {
	if err := middleware.ClearPrincipal(c); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

func respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUsernameRequired),
		errors.Is(err, services.ErrUserEmailRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrUserExists):
		apierrors.Conflict(c, err.Error())
	default:
		respondCommonError(c, err)
	}
}
