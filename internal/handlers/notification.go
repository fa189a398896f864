package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vibevent/vibevent-api/internal/dto"
	apierrors "github.com/vibevent/vibevent-api/internal/errors"
	"github.com/vibevent/vibevent-api/internal/models"
	"github.com/vibevent/vibevent-api/internal/services"
	"github.com/vibevent/vibevent-api/internal/utils"
)

// NotificationHandler serves the authenticated principal's inbox.
type NotificationHandler struct {
	notificationService *services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
	}
}

// CreateNotification stores and pushes a notification. The target defaults
// to the caller.
func (h *NotificationHandler) CreateNotification(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	type CreateNotificationRequest struct {
		TargetKind models.TargetKind `json:"target_kind"`
		TargetID   uint64            `json:"target_id"`
		Type       string            `json:"type" binding:"required,max=50"`
		Content    string            `json:"content" binding:"required"`
	}

	var req CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}
	if req.TargetKind == "" && req.TargetID == 0 {
		req.TargetKind, req.TargetID = principal.Kind, principal.ID
	}

	notification, err := h.notificationService.Create(services.CreateNotificationInput{
		TargetKind: req.TargetKind,
		TargetID:   req.TargetID,
		Type:       req.Type,
		Content:    req.Content,
	})
	if err != nil {
		respondNotificationError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToNotificationDTO(*notification))
}

func (h *NotificationHandler) query(c *gin.Context) (services.NotificationQuery, bool) {
	before, err := utils.ParseOptionalTime(c, "before")
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return services.NotificationQuery{}, false
	}
	after, err := utils.ParseOptionalTime(c, "after")
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return services.NotificationQuery{}, false
	}
	return services.NotificationQuery{
		Status:     models.NotificationStatus(c.Query("status")),
		Type:       c.Query("type"),
		Search:     c.Query("q"),
		Before:     before,
		After:      after,
		Pagination: utils.GetPaginationParams(c),
	}, true
}

// ListNotifications returns the caller's notifications, newest first.
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	query, ok := h.query(c)
	if !ok {
		return
	}

	notifications, total, err := h.notificationService.List(principal, query)
	if err != nil {
		respondNotificationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"notifications": dto.ToNotificationDTOs(notifications),
		"pagination":    query.Pagination.Response(total),
	})
}

func (h *NotificationHandler) CountNotifications(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	query, ok := h.query(c)
	if !ok {
		return
	}

	count, err := h.notificationService.Count(principal, query)
	if err != nil {
		respondNotificationError(c, err)
		return
	}
	respondCount(c, count)
}

func (h *NotificationHandler) NotificationExists(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	query, ok := h.query(c)
	if !ok {
		return
	}

	exists, err := h.notificationService.Exists(principal, query)
	if err != nil {
		respondNotificationError(c, err)
		return
	}
	respondExists(c, exists)
}

func (h *NotificationHandler) GetNotification(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	notification, err := h.notificationService.Get(principal, id)
	if err != nil {
		respondNotificationError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToNotificationDTO(*notification))
}

// UpdateNotificationStatus marks one notification read or unread.
func (h *NotificationHandler) UpdateNotificationStatus(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	type UpdateStatusRequest struct {
		Status models.NotificationStatus `json:"status" binding:"required"`
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	notification, err := h.notificationService.UpdateStatus(principal, id, req.Status)
	if err != nil {
		respondNotificationError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToNotificationDTO(*notification))
}

// MarkAllRead marks every unread notification of the caller read.
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}

	updated, err := h.notificationService.MarkAllRead(principal)
	if err != nil {
		respondNotificationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"updated": updated,
	})
}

func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.notificationService.Delete(principal, id); err != nil {
		respondNotificationError(c, err)
		return
	}
	respondDeleted(c, "Notification deleted successfully")
}

// DeleteNotifications removes the caller's notifications matching the
// query, or all of them when no filter is given.
func (h *NotificationHandler) DeleteNotifications(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	query, ok := h.query(c)
	if !ok {
		return
	}

	var (
		deleted int64
		err     error
	)
	if query.Status == "" && query.Type == "" && query.Search == "" && query.Before == nil && query.After == nil {
		deleted, err = h.notificationService.DeleteAllForTarget(principal)
	} else {
		deleted, err = h.notificationService.DeleteMatching(principal, query)
	}
	if err != nil {
		respondNotificationError(c, err)
		return
	}
	respondBulkDeleted(c, deleted)
}

func respondNotificationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotificationNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrNotificationTypeRequired),
		errors.Is(err, services.ErrNotificationContentRequired),
		errors.Is(err, services.ErrInvalidTimeRange):
		apierrors.BadRequest(c, err.Error())
	default:
		respondCommonError(c, err)
	}
}
