package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/resourcio/resourcio/internal/apierrors"
	"github.com/resourcio/resourcio/internal/models"
	"github.com/resourcio/resourcio/internal/planning"
)

type allocationRequest struct {
	ResourceID        string             `json:"resourceId" binding:"required"`
	ProjectID         string             `json:"projectId" binding:"required"`
	AllocatedHours    float64            `json:"allocatedHours"`
	StartDate         time.Time          `json:"startDate" binding:"required"`
	EndDate           time.Time          `json:"endDate" binding:"required"`
	Status            string             `json:"status"`
	WeeklyAllocations map[string]float64 `json:"weeklyAllocations"`
}

func (req *allocationRequest) validate(c *gin.Context) bool {
	if req.EndDate.Before(req.StartDate) {
		apierrors.Error(c, apierrors.CodeInvalidDateRange)
		return false
	}
	if req.Status != "" && !models.ValidAllocationStatus(req.Status) {
		apierrors.ErrorWithMessage(c, apierrors.CodeValidationFailed, "unknown allocation status: "+req.Status)
		return false
	}
	if req.AllocatedHours < 0 {
		apierrors.ErrorWithMessage(c, apierrors.CodeValidationFailed, "allocatedHours must not be negative")
		return false
	}
	for key := range req.WeeklyAllocations {
		if _, _, err := planning.ParseWeekKey(key); err != nil {
			apierrors.ErrorWithMessage(c, apierrors.CodeInvalidWeekKey, "bad week key: "+key)
			return false
		}
	}
	return true
}

// handleListAllocations lists allocations. Optional start/end query
// parameters (YYYY-MM-DD) narrow the list to allocations overlapping
// the window; partial overlap counts in full.
func (router *APIRouter) handleListAllocations(c *gin.Context) {
	allocations, err := router.store.Allocations.ListAllocations(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	startStr, endStr := c.Query("start"), c.Query("end")
	if startStr != "" || endStr != "" {
		start, end, ok := parseWindow(c, startStr, endStr)
		if !ok {
			return
		}
		allocations = planning.FilterOverlapping(allocations, start, end)
	}

	sendSuccess(c, gin.H{"allocations": allocations})
}

// handleGetAllocation returns one allocation by ID.
func (router *APIRouter) handleGetAllocation(c *gin.Context) {
	a, err := router.store.Allocations.GetAllocation(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccess(c, a)
}

// handleCreateAllocation creates an allocation after checking that both
// referenced records exist.
func (router *APIRouter) handleCreateAllocation(c *gin.Context) {
	var req allocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Error(c, apierrors.CodeInvalidRequest)
		return
	}
	if !req.validate(c) {
		return
	}

	if _, err := router.store.Resources.GetResource(c.Request.Context(), req.ResourceID); err != nil {
		handleServiceError(c, err)
		return
	}
	if _, err := router.store.Projects.GetProject(c.Request.Context(), req.ProjectID); err != nil {
		handleServiceError(c, err)
		return
	}

	status := req.Status
	if status == "" {
		status = models.AllocationStatusPlanned
	}

	a := &models.Allocation{
		ID:                uuid.NewString(),
		ResourceID:        req.ResourceID,
		ProjectID:         req.ProjectID,
		AllocatedHours:    req.AllocatedHours,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
		Status:            status,
		WeeklyAllocations: req.WeeklyAllocations,
	}

	if err := router.store.Allocations.CreateAllocation(c.Request.Context(), a); err != nil {
		handleServiceError(c, err)
		return
	}
	sendCreated(c, a)
}

// handleUpdateAllocation updates an allocation.
func (router *APIRouter) handleUpdateAllocation(c *gin.Context) {
	var req allocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Error(c, apierrors.CodeInvalidRequest)
		return
	}
	if !req.validate(c) {
		return
	}

	a, err := router.store.Allocations.GetAllocation(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	a.ResourceID = req.ResourceID
	a.ProjectID = req.ProjectID
	a.AllocatedHours = req.AllocatedHours
	a.StartDate = req.StartDate
	a.EndDate = req.EndDate
	if req.Status != "" {
		a.Status = req.Status
	}
	a.WeeklyAllocations = req.WeeklyAllocations

	if err := router.store.Allocations.UpdateAllocation(c.Request.Context(), a); err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccess(c, a)
}

// handleDeleteAllocation removes an allocation.
func (router *APIRouter) handleDeleteAllocation(c *gin.Context) {
	if err := router.store.Allocations.DeleteAllocation(c.Request.Context(), c.Param("id")); err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccess(c, gin.H{"deleted": true})
}

// parseWindow parses start/end date query parameters. Both bounds are
// required together and start must not be after end.
func parseWindow(c *gin.Context, startStr, endStr string) (time.Time, time.Time, bool) {
	if startStr == "" || endStr == "" {
		apierrors.ErrorWithMessage(c, apierrors.CodeInvalidWindow, "start and end are both required")
		return time.Time{}, time.Time{}, false
	}
	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		apierrors.ErrorWithMessage(c, apierrors.CodeInvalidWindow, "bad start date: "+startStr)
		return time.Time{}, time.Time{}, false
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		apierrors.ErrorWithMessage(c, apierrors.CodeInvalidWindow, "bad end date: "+endStr)
		return time.Time{}, time.Time{}, false
	}
	if start.After(end) {
		apierrors.Error(c, apierrors.CodeInvalidWindow)
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}
