package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/resourcio/resourcio/internal/apierrors"
	"github.com/resourcio/resourcio/internal/middleware"
	"github.com/resourcio/resourcio/internal/rbac"
	"github.com/resourcio/resourcio/internal/repository"
	"github.com/resourcio/resourcio/internal/service"
)

// sendSuccess writes the standard success envelope.
func sendSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"data": data})
}

// sendCreated writes the success envelope with a 201 status.
func sendCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{"data": data})
}

// handleServiceError maps service and repository errors onto registered
// API error codes. Unknown errors become internal errors.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		apierrors.Error(c, apierrors.CodeNotFound)
	case errors.Is(err, repository.ErrDuplicate):
		apierrors.Error(c, apierrors.CodeConflict)
	case errors.Is(err, service.ErrWeekLocked):
		apierrors.Error(c, apierrors.CodeWeekLocked)
	case errors.Is(err, service.ErrAlreadySubmitted):
		apierrors.Error(c, apierrors.CodeAlreadySubmitted)
	case errors.Is(err, service.ErrNotSubmitted):
		apierrors.Error(c, apierrors.CodeNotSubmitted)
	case errors.Is(err, service.ErrGracePeriodOver):
		apierrors.Error(c, apierrors.CodeGracePeriodOver)
	case errors.Is(err, service.ErrInvalidEntry):
		apierrors.Error(c, apierrors.CodeValidationFailed)
	default:
		apierrors.Error(c, apierrors.CodeInternalError)
	}
}

// callerResourceID resolves which resource's data the caller may touch.
// The caller's own linked resource is always allowed; other resources
// require the resource_management permission. An empty requested ID
// falls back to the caller's own resource.
func callerResourceID(c *gin.Context, requested string) (string, bool) {
	own := c.GetString(middleware.ContextResourceID)
	if requested == "" || requested == own {
		return own, own != ""
	}

	subject := middleware.SubjectFrom(c)
	if subject != nil && subject.HasPermission(rbac.PermResourceManagement) {
		return requested, true
	}
	return "", false
}
