package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vibevent/vibevent-api/internal/services"
)

// AwardHandler pays points for finished events.
type AwardHandler struct {
	awardService *services.AwardService
}

// NewAwardHandler creates a new AwardHandler.
func NewAwardHandler(awardService *services.AwardService) *AwardHandler {
	return &AwardHandler{
		awardService: awardService,
	}
}

// AwardClubPoints pays the hosting club for an event's attendance.
func (h *AwardHandler) AwardClubPoints(c *gin.Context) {
	eventID, ok := pathID(c, "eventid")
	if !ok {
		return
	}

	result, err := h.awardService.AwardEventPoints(eventID)
	if err != nil {
		respondCommonError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// AwardAttendeePoints pays every confirmed attendee of an event.
func (h *AwardHandler) AwardAttendeePoints(c *gin.Context) {
	eventID, ok := pathID(c, "eventid")
	if !ok {
		return
	}

	result, err := h.awardService.AwardAttendancePoints(eventID)
	if err != nil {
		respondCommonError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListAwards returns the ledger rows recorded for an event.
func (h *AwardHandler) ListAwards(c *gin.Context) {
	eventID, ok := pathID(c, "id")
	if !ok {
		return
	}

	awards, err := h.awardService.Awards(eventID)
	if err != nil {
		respondCommonError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"awards": awards})
}
