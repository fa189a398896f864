package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/vibevent/vibevent-api/internal/errors"
	"github.com/vibevent/vibevent-api/internal/repository"
	"github.com/vibevent/vibevent-api/internal/services"
	"github.com/vibevent/vibevent-api/internal/utils"
)

// AchievementHandler serves the achievement catalogue.
type AchievementHandler struct {
	achievementService *services.AchievementService
}

// NewAchievementHandler creates a new AchievementHandler.
func NewAchievementHandler(achievementService *services.AchievementService) *AchievementHandler {
	return &AchievementHandler{
		achievementService: achievementService,
	}
}

func (h *AchievementHandler) CreateAchievement(c *gin.Context) {
	type CreateAchievementRequest struct {
		Title          string `json:"title" binding:"required,max=255"`
		Description    string `json:"description"`
		Badge          string `json:"badge"`
		PointsRequired int64  `json:"points_required" binding:"min=0"`
	}

	var req CreateAchievementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	achievement, err := h.achievementService.Create(services.CreateAchievementInput{
		Title:          req.Title,
		Description:    req.Description,
		Badge:          req.Badge,
		PointsRequired: req.PointsRequired,
	})
	if err != nil {
		respondAchievementError(c, err)
		return
	}

	c.JSON(http.StatusCreated, achievement)
}

func (h *AchievementHandler) filter(c *gin.Context) (repository.AchievementFilter, bool) {
	points, err := utils.ParseOptionalInt(c, "points_required")
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return repository.AchievementFilter{}, false
	}
	return repository.AchievementFilter{
		Search:         c.Query("q"),
		PointsRequired: points,
	}, true
}

// ListAchievements returns achievements filtered by q and points_required.
func (h *AchievementHandler) ListAchievements(c *gin.Context) {
	filter, ok := h.filter(c)
	if !ok {
		return
	}

	achievements, err := h.achievementService.List(filter)
	if err != nil {
		respondAchievementError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"achievements": achievements})
}

func (h *AchievementHandler) CountAchievements(c *gin.Context) {
	filter, ok := h.filter(c)
	if !ok {
		return
	}

	count, err := h.achievementService.Count(filter)
	if err != nil {
		respondAchievementError(c, err)
		return
	}
	respondCount(c, count)
}

func (h *AchievementHandler) AchievementExists(c *gin.Context) {
	title := c.Query("title")
	if title == "" {
		apierrors.BadRequest(c, "title is required")
		return
	}

	exists, err := h.achievementService.ExistsByTitle(title)
	if err != nil {
		respondAchievementError(c, err)
		return
	}
	respondExists(c, exists)
}

func (h *AchievementHandler) GetAchievement(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	achievement, err := h.achievementService.Get(id)
	if err != nil {
		respondAchievementError(c, err)
		return
	}
	c.JSON(http.StatusOK, achievement)
}

func (h *AchievementHandler) UpdateAchievement(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	type UpdateAchievementRequest struct {
		Title          *string `json:"title" binding:"omitempty,max=255"`
		Description    *string `json:"description"`
		Badge          *string `json:"badge"`
		PointsRequired *int64  `json:"points_required"`
	}

	var req UpdateAchievementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	achievement, err := h.achievementService.Update(id, services.UpdateAchievementInput{
		Title:          req.Title,
		Description:    req.Description,
		Badge:          req.Badge,
		PointsRequired: req.PointsRequired,
	})
	if err != nil {
		respondAchievementError(c, err)
		return
	}
	c.JSON(http.StatusOK, achievement)
}

// UpdateAchievementPoints changes only the points threshold.
func (h *AchievementHandler) UpdateAchievementPoints(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	type UpdatePointsRequest struct {
		PointsRequired *int64 `json:"points_required" binding:"required"`
	}

	var req UpdatePointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	achievement, err := h.achievementService.UpdatePointsRequired(id, *req.PointsRequired)
	if err != nil {
		respondAchievementError(c, err)
		return
	}
	c.JSON(http.StatusOK, achievement)
}

func (h *AchievementHandler) DeleteAchievement(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.achievementService.Delete(id); err != nil {
		respondAchievementError(c, err)
		return
	}
	respondDeleted(c, "Achievement deleted successfully")
}

func respondAchievementError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAchievementTitleRequired),
		errors.Is(err, services.ErrNegativePointsRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrAchievementExists):
		apierrors.Conflict(c, err.Error())
	default:
		respondCommonError(c, err)
	}
}
