package api

import (
	"github.com/gin-gonic/gin"

	"github.com/resourcio/resourcio/internal/apierrors"
	"github.com/resourcio/resourcio/internal/models"
	"github.com/resourcio/resourcio/internal/planning"
)

// handleListTimeEntries lists one resource's entries for a week.
// ?week= is required; ?resource= defaults to the caller's own resource
// and requires resource management rights for anyone else's.
func (router *APIRouter) handleListTimeEntries(c *gin.Context) {
	weekKey := c.Query("week")
	if _, _, err := planning.ParseWeekKey(weekKey); err != nil {
		apierrors.Error(c, apierrors.CodeInvalidWeekKey)
		return
	}

	resourceID, ok := callerResourceID(c, c.Query("resource"))
	if !ok {
		apierrors.Error(c, apierrors.CodeForbidden)
		return
	}

	entries, err := router.submissions.WeekEntries(c.Request.Context(), resourceID, weekKey)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	status, err := router.submissions.Status(c.Request.Context(), resourceID, weekKey)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	sendSuccess(c, gin.H{
		"entries":    entries,
		"submission": status,
	})
}

// handleSaveTimeEntry upserts one (allocation, week) entry. Writes into
// submitted weeks are refused with a conflict.
func (router *APIRouter) handleSaveTimeEntry(c *gin.Context) {
	var req struct {
		AllocationID string  `json:"allocationId" binding:"required"`
		ResourceID   string  `json:"resourceId"`
		WeekKey      string  `json:"weekKey" binding:"required"`
		Monday       float64 `json:"monday"`
		Tuesday      float64 `json:"tuesday"`
		Wednesday    float64 `json:"wednesday"`
		Thursday     float64 `json:"thursday"`
		Friday       float64 `json:"friday"`
		Saturday     float64 `json:"saturday"`
		Sunday       float64 `json:"sunday"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Error(c, apierrors.CodeInvalidRequest)
		return
	}

	resourceID, ok := callerResourceID(c, req.ResourceID)
	if !ok {
		apierrors.Error(c, apierrors.CodeForbidden)
		return
	}

	entry := &models.TimeEntry{
		AllocationID: req.AllocationID,
		ResourceID:   resourceID,
		WeekKey:      req.WeekKey,
		Monday:       req.Monday,
		Tuesday:      req.Tuesday,
		Wednesday:    req.Wednesday,
		Thursday:     req.Thursday,
		Friday:       req.Friday,
		Saturday:     req.Saturday,
		Sunday:       req.Sunday,
	}

	if err := router.submissions.SaveTimeEntry(c.Request.Context(), entry); err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccess(c, entry)
}
