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

// AttendanceHandler serves attendance marks.
type AttendanceHandler struct {
	attendanceService *services.AttendanceService
}

// NewAttendanceHandler creates a new AttendanceHandler.
func NewAttendanceHandler(attendanceService *services.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{
		attendanceService: attendanceService,
	}
}

// CreateAttendance marks a user present or absent. A user caller that omits user_id marks itself.
func (h *AttendanceHandler) CreateAttendance(c *gin.Context) {
	type CreateAttendanceRequest struct {
		EventID uint64                  `json:"event_id" binding:"required"`
		UserID  uint64                  `json:"user_id"`
		Status  models.AttendanceStatus `json:"status" binding:"required"`
		Method  string                  `json:"method"`
	}

	var req CreateAttendanceRequest
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

	attendance, err := h.attendanceService.Create(services.CreateAttendanceInput{
		EventID: req.EventID,
		UserID:  req.UserID,
		Status:  req.Status,
		Method:  req.Method,
	})
	if err != nil {
		respondAttendanceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, attendance)
}

func (h *AttendanceHandler) filter(c *gin.Context) (services.AttendanceFilter, bool) {
	eventID, ok := queryUint(c, "event_id")
	if !ok {
		return services.AttendanceFilter{}, false
	}
	userID, ok := queryUint(c, "user_id")
	if !ok {
		return services.AttendanceFilter{}, false
	}
	return services.AttendanceFilter{
		EventID: eventID,
		UserID:  userID,
		Status:  models.AttendanceStatus(c.Query("status")),
	}, true
}

// ListAttendances returns marks filtered by event, user and status.
func (h *AttendanceHandler) ListAttendances(c *gin.Context) {
	filter, ok := h.filter(c)
	if !ok {
		return
	}

	attendances, err := h.attendanceService.List(filter)
	if err != nil {
		respondAttendanceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"attendances": attendances})
}

func (h *AttendanceHandler) CountAttendances(c *gin.Context) {
	filter, ok := h.filter(c)
	if !ok {
		return
	}

	count, err := h.attendanceService.Count(filter)
	if err != nil {
		respondAttendanceError(c, err)
		return
	}
	respondCount(c, count)
}

// AttendanceExists answers whether the user was marked for the event.
func (h *AttendanceHandler) AttendanceExists(c *gin.Context) {
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

	exists, err := h.attendanceService.Exists(*eventID, *userID)
	if err != nil {
		respondAttendanceError(c, err)
		return
	}
	respondExists(c, exists)
}

// ListEventUsers returns the users marked with a status for an event.
func (h *AttendanceHandler) ListEventUsers(c *gin.Context) {
	eventID, ok := pathID(c, "eventid")
	if !ok {
		return
	}

	status := models.AttendanceStatus(c.DefaultQuery("status", string(models.AttendanceStatusYes)))
	users, err := h.attendanceService.UsersByStatus(eventID, status)
	if err != nil {
		respondAttendanceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": dto.ToUserDTOs(users)})
}

func (h *AttendanceHandler) GetAttendance(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	attendance, err := h.attendanceService.Get(id)
	if err != nil {
		respondAttendanceError(c, err)
		return
	}
	c.JSON(http.StatusOK, attendance)
}

// UpdateAttendanceStatus changes a mark while the event is still ahead.
func (h *AttendanceHandler) UpdateAttendanceStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	type UpdateStatusRequest struct {
		Status models.AttendanceStatus `json:"status" binding:"required"`
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	attendance, err := h.attendanceService.UpdateStatus(id, req.Status)
	if err != nil {
		respondAttendanceError(c, err)
		return
	}
	c.JSON(http.StatusOK, attendance)
}

func (h *AttendanceHandler) DeleteAttendance(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.attendanceService.Delete(id); err != nil {
		respondAttendanceError(c, err)
		return
	}
	respondDeleted(c, "Attendance deleted successfully")
}

func (h *AttendanceHandler) DeleteEventAttendances(c *gin.Context) {
	eventID, ok := pathID(c, "eventid")
	if !ok {
		return
	}

	deleted, err := h.attendanceService.DeleteByEvent(eventID)
	if err != nil {
		respondAttendanceError(c, err)
		return
	}
	respondBulkDeleted(c, deleted)
}

func (h *AttendanceHandler) DeleteUserAttendances(c *gin.Context) {
	userID, ok := pathID(c, "userid")
	if !ok {
		return
	}

	deleted, err := h.attendanceService.DeleteByUser(userID)
	if err != nil {
		respondAttendanceError(c, err)
		return
	}
	respondBulkDeleted(c, deleted)
}

func respondAttendanceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAttendanceNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAttendanceExists):
		apierrors.Conflict(c, err.Error())
	default:
		respondCommonError(c, err)
	}
}
