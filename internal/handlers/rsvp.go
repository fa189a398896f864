package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vibevent/vibevent-api/internal/dto"
	apierrors "github.com/vibevent/vibevent-api/internal/errors"
	"github.com/vibevent/vibevent-api/internal/middleware"
	"github.com/vibevent/vibevent-api/internal/models"
	"github.com/vibevent/vibevent-api/internal/services"
)

// RSVPHandler serves event responses.
type RSVPHandler struct {
	rsvpService *services.RSVPService
}

// NewRSVPHandler creates a new RSVPHandler.
func NewRSVPHandler(rsvpService *services.RSVPService) *RSVPHandler {
	return &RSVPHandler{
		rsvpService: rsvpService,
	}
}

// CreateRSVP records a response. A user caller that omits user_id responds for itself.
func (h *RSVPHandler) CreateRSVP(c *gin.Context) {
	type CreateRSVPRequest struct {
		EventID uint64            `json:"event_id" binding:"required"`
		UserID  uint64            `json:"user_id"`
		Status  models.RSVPStatus `json:"status" binding:"required"`
	}

	var req CreateRSVPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	if req.UserID == 0 {
		userID, ok := middleware.GetUserID(c)
		if !ok {
			apierrors.BadRequest(c, "user_id is required")
			return
		}
		req.UserID = userID
	}

	rsvp, err := h.rsvpService.Create(services.CreateRSVPInput{
		EventID: req.EventID,
		UserID:  req.UserID,
		Status:  req.Status,
	})
	if err != nil {
		respondRSVPError(c, err)
		return
	}

	c.JSON(http.StatusCreated, rsvp)
}

func (h *RSVPHandler) filter(c *gin.Context) (services.RSVPFilter, bool) {
	eventID, ok := queryUint(c, "event_id")
	if !ok {
		return services.RSVPFilter{}, false
	}
	userID, ok := queryUint(c, "user_id")
	if !ok {
		return services.RSVPFilter{}, false
	}
	return services.RSVPFilter{
		EventID: eventID,
		UserID:  userID,
		Status:  models.RSVPStatus(c.Query("status")),
	}, true
}

// ListRSVPs returns responses filtered by event, user and status.
func (h *RSVPHandler) ListRSVPs(c *gin.Context) {
	filter, ok := h.filter(c)
	if !ok {
		return
	}

	rsvps, err := h.rsvpService.List(filter)
	if err != nil {
		respondRSVPError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rsvps": rsvps})
}

func (h *RSVPHandler) CountRSVPs(c *gin.Context) {
	filter, ok := h.filter(c)
	if !ok {
		return
	}

	count, err := h.rsvpService.Count(filter)
	if err != nil {
		respondRSVPError(c, err)
		return
	}
	respondCount(c, count)
}

// RSVPExists answers whether the user responded to the event.
func (h *RSVPHandler) RSVPExists(c *gin.Context) {
	eventID, ok := queryUint(c, "event_id")
	if !ok {
		return
	}
	userID, ok := queryUint(c, "user_id")
	if !ok {
		return
	}
	if eventID == nil || userID == nil {
		apierrors.BadRequest(c, "event_id and user_id are required")
		return
	}

	exists, err := h.rsvpService.Exists(*eventID, *userID)
	if err != nil {
		respondRSVPError(c, err)
		return
	}
	respondExists(c, exists)
}

// ListEventUsers returns the users that gave a status for an event.
func (h *RSVPHandler) ListEventUsers(c *gin.Context) {
	eventID, ok := pathID(c, "eventid")
	if !ok {
		return
	}

	status := models.RSVPStatus(c.DefaultQuery("status", string(models.RSVPStatusYes)))
	users, err := h.rsvpService.UsersByStatus(eventID, status)
	if err != nil {
		respondRSVPError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": dto.ToUserDTOs(users)})
}

func (h *RSVPHandler) GetRSVP(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	rsvp, err := h.rsvpService.Get(id)
	if err != nil {
		respondRSVPError(c, err)
		return
	}
	c.JSON(http.StatusOK, rsvp)
}

// UpdateRSVPStatus changes a response while the event is still ahead.
func (h *RSVPHandler) UpdateRSVPStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	type UpdateStatusRequest struct {
		Status models.RSVPStatus `json:"status" binding:"required"`
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	rsvp, err := h.rsvpService.UpdateStatus(id, req.Status)
	if err != nil {
		respondRSVPError(c, err)
		return
	}
	c.JSON(http.StatusOK, rsvp)
}

func (h *RSVPHandler) DeleteRSVP(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.rsvpService.Delete(id); err != nil {
		respondRSVPError(c, err)
		return
	}
	respondDeleted(c, "RSVP deleted successfully")
}

func (h *RSVPHandler) DeleteEventRSVPs(c *gin.Context) {
	eventID, ok := pathID(c, "eventid")
	if !ok {
		return
	}

	deleted, err := h.rsvpService.DeleteByEvent(eventID)
	if err != nil {
		respondRSVPError(c, err)
		return
	}
	respondBulkDeleted(c, deleted)
}

func (h *RSVPHandler) DeleteUserRSVPs(c *gin.Context) {
	userID, ok := pathID(c, "userid")
	if !ok {
		return
	}

	deleted, err := h.rsvpService.DeleteByUser(userID)
	if err != nil {
		respondRSVPError(c, err)
		return
	}
	respondBulkDeleted(c, deleted)
}

func respondRSVPError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrRSVPNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrRSVPExists):
		apierrors.Conflict(c, err.Error())
	default:
		respondCommonError(c, err)
	}
}
