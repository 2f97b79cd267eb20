package api

import (
	"github.com/gin-gonic/gin"

	"github.com/resourcio/resourcio/internal/apierrors"
	"github.com/resourcio/resourcio/internal/planning"
)

// weekAndResource resolves the week and target resource for the
// submission endpoints.
func (router *APIRouter) weekAndResource(c *gin.Context, weekKey, requested string) (string, string, bool) {
	if _, _, err := planning.ParseWeekKey(weekKey); err != nil {
		apierrors.Error(c, apierrors.CodeInvalidWeekKey)
		return "", "", false
	}
	resourceID, ok := callerResourceID(c, requested)
	if !ok {
		apierrors.Error(c, apierrors.CodeForbidden)
		return "", "", false
	}
	return weekKey, resourceID, true
}

// handleSubmissionStatus returns the submission state for a week.
func (router *APIRouter) handleSubmissionStatus(c *gin.Context) {
	weekKey, resourceID, ok := router.weekAndResource(c, c.Query("week"), c.Query("resource"))
	if !ok {
		return
	}

	sub, err := router.submissions.Status(c.Request.Context(), resourceID, weekKey)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccess(c, sub)
}

// handleSubmit transitions a week from draft to submitted.
func (router *APIRouter) handleSubmit(c *gin.Context) {
	var req struct {
		WeekKey    string `json:"weekKey" binding:"required"`
		ResourceID string `json:"resourceId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Error(c, apierrors.CodeInvalidRequest)
		return
	}

	weekKey, resourceID, ok := router.weekAndResource(c, req.WeekKey, req.ResourceID)
	if !ok {
		return
	}

	sub, err := router.submissions.Submit(c.Request.Context(), resourceID, weekKey)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccess(c, sub)
}

// handleUnsubmit reopens a submitted week, allowed only within the
// grace period.
func (router *APIRouter) handleUnsubmit(c *gin.Context) {
	var req struct {
		WeekKey    string `json:"weekKey" binding:"required"`
		ResourceID string `json:"resourceId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Error(c, apierrors.CodeInvalidRequest)
		return
	}

	weekKey, resourceID, ok := router.weekAndResource(c, req.WeekKey, req.ResourceID)
	if !ok {
		return
	}

	sub, err := router.submissions.Unsubmit(c.Request.Context(), resourceID, weekKey)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccess(c, sub)
}

// handleSubmissionOverview lists submission state for all active
// resources in a week.
func (router *APIRouter) handleSubmissionOverview(c *gin.Context) {
	weekKey := c.Query("week")
	if _, _, err := planning.ParseWeekKey(weekKey); err != nil {
		apierrors.Error(c, apierrors.CodeInvalidWeekKey)
		return
	}

	overview, err := router.submissions.Overview(c.Request.Context(), weekKey)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccess(c, gin.H{
		"week":      weekKey,
		"resources": overview,
	})
}
