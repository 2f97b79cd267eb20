package api

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/resourcio/resourcio/internal/apierrors"
	"github.com/resourcio/resourcio/internal/models"
	"github.com/resourcio/resourcio/internal/repository"
)

type resourceRequest struct {
	Name           string  `json:"name" binding:"required"`
	Email          string  `json:"email" binding:"required,email"`
	Department     *string `json:"department"`
	WeeklyCapacity float64 `json:"weeklyCapacity"`
	Active         *bool   `json:"active"`
}

func (req *resourceRequest) validate(c *gin.Context) bool {
	if req.WeeklyCapacity < models.MinWeeklyCapacity || req.WeeklyCapacity > models.MaxWeeklyCapacity {
		apierrors.ErrorWithMessage(c, apierrors.CodeValidationFailed, "weeklyCapacity must be between 1 and 60")
		return false
	}
	return true
}

// handleListResources lists resources; ?includeDeleted=true includes
// soft-deleted rows.
func (router *APIRouter) handleListResources(c *gin.Context) {
	includeDeleted := c.Query("includeDeleted") == "true"
	resources, err := router.store.Resources.ListResources(c.Request.Context(), includeDeleted)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccess(c, gin.H{"resources": resources})
}

// handleGetResource returns one resource by ID.
func (router *APIRouter) handleGetResource(c *gin.Context) {
	res, err := router.store.Resources.GetResource(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccess(c, res)
}

// handleCreateResource creates a resource.
func (router *APIRouter) handleCreateResource(c *gin.Context) {
	var req resourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Error(c, apierrors.CodeInvalidRequest)
		return
	}
	if !req.validate(c) {
		return
	}

	res := &models.Resource{
		ID:             uuid.NewString(),
		Name:           req.Name,
		Email:          strings.ToLower(req.Email),
		Department:     req.Department,
		WeeklyCapacity: req.WeeklyCapacity,
		Active:         req.Active == nil || *req.Active,
	}

	if err := router.store.Resources.CreateResource(c.Request.Context(), res); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			apierrors.Error(c, apierrors.CodeDuplicateEmail)
			return
		}
		handleServiceError(c, err)
		return
	}
	sendCreated(c, res)
}

// handleUpdateResource updates a resource's mutable fields.
func (router *APIRouter) handleUpdateResource(c *gin.Context) {
	var req resourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Error(c, apierrors.CodeInvalidRequest)
		return
	}
	if !req.validate(c) {
		return
	}

	res, err := router.store.Resources.GetResource(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	res.Name = req.Name
	res.Email = strings.ToLower(req.Email)
	res.Department = req.Department
	res.WeeklyCapacity = req.WeeklyCapacity
	if req.Active != nil {
		res.Active = *req.Active
	}

	if err := router.store.Resources.UpdateResource(c.Request.Context(), res); err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccess(c, res)
}

// handleDeleteResource soft-deletes a resource. Deletion is refused
// while the resource still has active allocations.
func (router *APIRouter) handleDeleteResource(c *gin.Context) {
	id := c.Param("id")

	count, err := router.store.Allocations.CountActiveAllocationsByResource(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if count > 0 {
		apierrors.Error(c, apierrors.CodeResourceAllocated)
		return
	}

	if err := router.store.Resources.SoftDeleteResource(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccess(c, gin.H{"deleted": true})
}
