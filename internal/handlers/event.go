package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vibevent/vibevent-api/internal/dto"
	apierrors "github.com/vibevent/vibevent-api/internal/errors"
	"github.com/vibevent/vibevent-api/internal/middleware"
	"github.com/vibevent/vibevent-api/internal/services"
	"github.com/vibevent/vibevent-api/internal/utils"
)

// EventHandler serves club events.
type EventHandler struct {
	eventService *services.EventService
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(eventService *services.EventService) *EventHandler {
	return &EventHandler{
		eventService: eventService,
	}
}

// CreateEvent creates an event. A club caller that omits club_id hosts it.
func (h *EventHandler) CreateEvent(c *gin.Context) {
	type CreateEventRequest struct {
		ClubID      uint64    `json:"club_id"`
		Title       string    `json:"title" binding:"required,max=255"`
		Description string    `json:"description"`
		Date        time.Time `json:"date" binding:"required"`
		Location    string    `json:"location" binding:"required,max=255"`
		Picture     string    `json:"picture"`
	}

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	if req.ClubID == 0 {
		if clubID, ok := middleware.GetClubID(c); ok {
			req.ClubID = clubID
		}
	}

	event, err := h.eventService.Create(services.CreateEventInput{
		ClubID:      req.ClubID,
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Location:    req.Location,
		Picture:     req.Picture,
		Origin:      middleware.ConnectionID(c),
	})
	if err != nil {
		respondEventError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToEventDTO(*event))
}

func (h *EventHandler) listInput(c *gin.Context) (services.ListEventsInput, bool) {
	clubID, ok := queryUint(c, "club_id")
	if !ok {
		return services.ListEventsInput{}, false
	}
	return services.ListEventsInput{
		ClubID:         clubID,
		Location:       c.Query("location"),
		LocationSearch: c.Query("location_q"),
		Search:         c.Query("q"),
		When:           c.Query("when"),
		Pagination:     utils.GetPaginationParams(c),
	}, true
}

// ListEvents returns events matching the query filters, soonest first.
func (h *EventHandler) ListEvents(c *gin.Context) {
	input, ok := h.listInput(c)
	if !ok {
		return
	}

	events, total, err := h.eventService.List(input)
	if err != nil {
		respondEventError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events":     dto.ToEventDTOs(events),
		"pagination": input.Pagination.Response(total),
	})
}

func (h *EventHandler) CountEvents(c *gin.Context) {
	input, ok := h.listInput(c)
	if !ok {
		return
	}

	count, err := h.eventService.Count(input)
	if err != nil {
		respondEventError(c, err)
		return
	}
	respondCount(c, count)
}

// EventExists answers whether the title is already used on the date.
func (h *EventHandler) EventExists(c *gin.Context) {
	title := c.Query("title")
	date, err := utils.ParseOptionalTime(c, "date")
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}
	if title == "" || date == nil {
		apierrors.BadRequest(c, "title and date are required")
		return
	}

	exists, err := h.eventService.ExistsByTitleAndDate(title, *date)
	if err != nil {
		respondEventError(c, err)
		return
	}
	respondExists(c, exists)
}

func (h *EventHandler) GetEvent(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	event, err := h.eventService.Get(id)
	if err != nil {
		respondEventError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEventDTO(*event))
}

// UpdateEvent merges the provided fields into the event.
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	type UpdateEventRequest struct {
		Title       *string    `json:"title" binding:"omitempty,max=255"`
		Description *string    `json:"description"`
		Date        *time.Time `json:"date"`
		Location    *string    `json:"location" binding:"omitempty,max=255"`
		Picture     *string    `json:"picture"`
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	event, err := h.eventService.Update(id, services.UpdateEventInput{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Location:    req.Location,
		Picture:     req.Picture,
		Origin:      middleware.ConnectionID(c),
	})
	if err != nil {
		respondEventError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEventDTO(*event))
}

// UpdateEventDate moves the event to a new date.
func (h *EventHandler) UpdateEventDate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	type UpdateDateRequest struct {
		Date time.Time `json:"date" binding:"required"`
	}

	var req UpdateDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	event, err := h.eventService.UpdateDate(id, req.Date, middleware.ConnectionID(c))
	if err != nil {
		respondEventError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToEventDTO(*event))
}

// DeleteEvent removes the event with its RSVPs and attendances.
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.eventService.Delete(id, middleware.ConnectionID(c)); err != nil {
		respondEventError(c, err)
		return
	}
	respondDeleted(c, "Event deleted successfully")
}

func respondEventError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEventTitleRequired),
		errors.Is(err, services.ErrEventLocationRequired),
		errors.Is(err, services.ErrEventDateRequired),
		errors.Is(err, services.ErrEventClubRequired),
		errors.Is(err, services.ErrInvalidEventWhen):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrEventExists):
		apierrors.Conflict(c, err.Error())
	default:
		respondCommonError(c, err)
	}
}
