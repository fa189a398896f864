package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vibevent/vibevent-api/internal/constants"
	apierrors "github.com/vibevent/vibevent-api/internal/errors"
	"github.com/vibevent/vibevent-api/internal/middleware"
	"github.com/vibevent/vibevent-api/internal/services"
	"github.com/vibevent/vibevent-api/internal/utils"
)

// pathID reads a numeric path parameter, answering 400 when it is malformed.
func pathID(c *gin.Context, name string) (uint64, bool) {
	id, err := utils.ParseIDParam(c, name)
	if err != nil {
		apierrors.BadRequest(c, fmt.Sprintf("Invalid %s", name))
		return 0, false
	}
	return id, true
}

func queryUint(c *gin.Context, name string) (*uint64, bool) {
	value, err := utils.ParseOptionalUint(c, name)
	if err != nil {
		apierrors.BadRequestWithDetails(c, err.Error(), gin.H{"param": name, "value": c.Query(name)})
		return nil, false
	}
	return value, true
}

func requirePrincipal(c *gin.Context) (services.Principal, bool) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Unauthorized(c, "Not authenticated")
		return services.Principal{}, false
	}
	return principal, true
}

func respondCount(c *gin.Context, count int64) {
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func respondExists(c *gin.Context, exists bool) {
	c.JSON(http.StatusOK, gin.H{"exists": exists})
}

func respondDeleted(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
	})
}

func respondBulkDeleted(c *gin.Context, deleted int64) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"deleted": deleted,
	})
}

// respondCommonError handles errors shared by several services.
func respondCommonError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, fmt.Sprintf("Password must be at least %d characters", constants.MinPasswordLength))
	case errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidTargetKind):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrEventInPast),
		errors.Is(err, services.ErrWithinGraceWindow):
		apierrors.Unprocessable(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c, "")
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrClubNotFound),
		errors.Is(err, services.ErrEventNotFound),
		errors.Is(err, services.ErrAchievementNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
