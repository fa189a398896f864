package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/vibevent/vibevent-api/internal/errors"
	"github.com/vibevent/vibevent-api/internal/repository"
	"github.com/vibevent/vibevent-api/internal/services"
)

// ClubAchievementHandler serves the achievements clubs have earned.
type ClubAchievementHandler struct {
	linkService *services.ClubAchievementService
}

// NewClubAchievementHandler creates a new ClubAchievementHandler.
func NewClubAchievementHandler(linkService *services.ClubAchievementService) *ClubAchievementHandler {
	return &ClubAchievementHandler{
		linkService: linkService,
	}
}

// CreateClubAchievement awards an achievement to a club.
func (h *ClubAchievementHandler) CreateClubAchievement(c *gin.Context) {
	type CreateRequest struct {
		ClubID        uint64 `json:"club_id" binding:"required"`
		AchievementID uint64 `json:"ach_id" binding:"required"`
	}

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	link, err := h.linkService.Create(req.ClubID, req.AchievementID)
	if err != nil {
		respondClubAchievementError(c, err)
		return
	}
	c.JSON(http.StatusCreated, link)
}

func (h *ClubAchievementHandler) filter(c *gin.Context) (repository.AchievementLinkFilter, bool) {
	clubID, ok := queryUint(c, "club_id")
	if !ok {
		return repository.AchievementLinkFilter{}, false
	}
	achievementID, ok := queryUint(c, "ach_id")
	if !ok {
		return repository.AchievementLinkFilter{}, false
	}
	return repository.AchievementLinkFilter{OwnerID: clubID, AchievementID: achievementID}, true
}

// ListClubAchievements returns links filtered by club_id and ach_id.
func (h *ClubAchievementHandler) ListClubAchievements(c *gin.Context) {
	filter, ok := h.filter(c)
	if !ok {
		return
	}

	links, err := h.linkService.List(filter)
	if err != nil {
		respondClubAchievementError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"club_achievements": links})
}

func (h *ClubAchievementHandler) CountClubAchievements(c *gin.Context) {
	filter, ok := h.filter(c)
	if !ok {
		return
	}

	count, err := h.linkService.Count(filter)
	if err != nil {
		respondClubAchievementError(c, err)
		return
	}
	respondCount(c, count)
}

func (h *ClubAchievementHandler) ClubAchievementExists(c *gin.Context) {
	filter, ok := h.filter(c)
	if !ok {
		return
	}
	if filter.OwnerID == nil || filter.AchievementID == nil {
		apierrors.BadRequest(c, "club_id and ach_id are required")
		return
	}

	exists, err := h.linkService.Exists(*filter.OwnerID, *filter.AchievementID)
	if err != nil {
		respondClubAchievementError(c, err)
		return
	}
	respondExists(c, exists)
}

func (h *ClubAchievementHandler) GetClubAchievement(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	link, err := h.linkService.Get(id)
	if err != nil {
		respondClubAchievementError(c, err)
		return
	}
	c.JSON(http.StatusOK, link)
}

func (h *ClubAchievementHandler) DeleteClubAchievement(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.linkService.Delete(id); err != nil {
		respondClubAchievementError(c, err)
		return
	}
	respondDeleted(c, "Club achievement deleted successfully")
}

func (h *ClubAchievementHandler) DeleteByClub(c *gin.Context) {
	clubID, ok := pathID(c, "clubid")
	if !ok {
		return
	}

	deleted, err := h.linkService.DeleteByClub(clubID)
	if err != nil {
		respondClubAchievementError(c, err)
		return
	}
	respondBulkDeleted(c, deleted)
}

func (h *ClubAchievementHandler) DeleteByAchievement(c *gin.Context) {
	achievementID, ok := pathID(c, "achid")
	if !ok {
		return
	}

	deleted, err := h.linkService.DeleteByAchievement(achievementID)
	if err != nil {
		respondClubAchievementError(c, err)
		return
	}
	respondBulkDeleted(c, deleted)
}

func respondClubAchievementError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrClubAchievementNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrClubAchievementExists):
		apierrors.Conflict(c, err.Error())
	default:
		respondCommonError(c, err)
	}
}
