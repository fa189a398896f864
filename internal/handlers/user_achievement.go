package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/vibevent/vibevent-api/internal/errors"
	"github.com/vibevent/vibevent-api/internal/repository"
	"github.com/vibevent/vibevent-api/internal/services"
)

// UserAchievementHandler serves the achievements users have earned.
type UserAchievementHandler struct {
	linkService *services.UserAchievementService
}

// NewUserAchievementHandler creates a new UserAchievementHandler.
func NewUserAchievementHandler(linkService *services.UserAchievementService) *UserAchievementHandler {
	return &UserAchievementHandler{
		linkService: linkService,
	}
}

// CreateUserAchievement awards an achievement to a user.
func (h *UserAchievementHandler) CreateUserAchievement(c *gin.Context) {
	type CreateRequest struct {
		UserID        uint64 `json:"user_id" binding:"required"`
		AchievementID uint64 `json:"ach_id" binding:"required"`
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	link, err := h.linkService.Create(req.UserID, req.AchievementID)
	if err != nil {
		respondUserAchievementError(c, err)
		return
	}
	c.JSON(http.StatusCreated, link)
}

func (h *UserAchievementHandler) filter(c *gin.Context) (repository.AchievementLinkFilter, bool) {
	userID, ok := queryUint(c, "user_id")
	if !ok {
		return repository.AchievementLinkFilter{}, false
	}
	achievementID, ok := queryUint(c, "ach_id")
	if !ok {
		return repository.AchievementLinkFilter{}, false
	}
	return repository.AchievementLinkFilter{OwnerID: userID, AchievementID: achievementID}, true
}

// ListUserAchievements returns links filtered by user_id and ach_id.
func (h *UserAchievementHandler) ListUserAchievements(c *gin.Context) {
	filter, ok := h.filter(c)
	if !ok {
		return
	}

	links, err := h.linkService.List(filter)
	if err != nil {
		respondUserAchievementError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_achievements": links})
}

func (h *UserAchievementHandler) CountUserAchievements(c *gin.Context) {
	filter, ok := h.filter(c)
	if !ok {
		return
	}

	count, err := h.linkService.Count(filter)
	if err != nil {
		respondUserAchievementError(c, err)
		return
	}
	respondCount(c, count)
}

func (h *UserAchievementHandler) UserAchievementExists(c *gin.Context) {
	filter, ok := h.filter(c)
	if !ok {
		return
	}
	if filter.OwnerID == nil || filter.AchievementID == nil {
		apierrors.BadRequest(c, "user_id and ach_id are required")
		return
	}

	exists, err := h.linkService.Exists(*filter.OwnerID, *filter.AchievementID)
	if err != nil {
		respondUserAchievementError(c, err)
		return
	}
	respondExists(c, exists)
}

func (h *UserAchievementHandler) GetUserAchievement(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	link, err := h.linkService.Get(id)
	if err != nil {
		respondUserAchievementError(c, err)
		return
	}
	c.JSON(http.StatusOK, link)
}

func (h *UserAchievementHandler) DeleteUserAchievement(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.linkService.Delete(id); err != nil {
		respondUserAchievementError(c, err)
		return
	}
	respondDeleted(c, "User achievement deleted successfully")
}

func (h *UserAchievementHandler) DeleteByUser(c *gin.Context) {
	userID, ok := pathID(c, "userid")
	if !ok {
		return
	}

	deleted, err := h.linkService.DeleteByUser(userID)
	if err != nil {
		respondUserAchievementError(c, err)
		return
	}
	respondBulkDeleted(c, deleted)
}

func (h *UserAchievementHandler) DeleteByAchievement(c *gin.Context) {
	achievementID, ok := pathID(c, "achid")
	if !ok {
		return
	}

	deleted, err := h.linkService.DeleteByAchievement(achievementID)
	if err != nil {
		respondUserAchievementError(c, err)
		return
	}
	respondBulkDeleted(c, deleted)
}

func respondUserAchievementError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserAchievementNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrUserAchievementExists):
		apierrors.Conflict(c, err.Error())
	default:
		respondCommonError(c, err)
	}
}
