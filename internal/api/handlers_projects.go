package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/resourcio/resourcio/internal/apierrors"
	"github.com/resourcio/resourcio/internal/models"
)

type projectRequest struct {
	Name           string    `json:"name" binding:"required"`
	StartDate      time.Time `json:"startDate" binding:"required"`
	EndDate        time.Time `json:"endDate" binding:"required"`
	Status         string    `json:"status"`
	Priority       int       `json:"priority"`
	ProjectType    string    `json:"projectType" binding:"required"`
	DirectorID     *string   `json:"directorId"`
	ChangeLeadID   *string   `json:"changeLeadId"`
	BusinessLeadID *string   `json:"businessLeadId"`
}

func (req *projectRequest) validate(c *gin.Context) bool {
	if req.EndDate.Before(req.StartDate) {
		apierrors.Error(c, apierrors.CodeInvalidDateRange)
		return false
	}
	if req.Status != "" && !models.ValidProjectStatus(req.Status) {
		apierrors.ErrorWithMessage(c, apierrors.CodeValidationFailed, "unknown project status: "+req.Status)
		return false
	}
	if !models.ValidProjectType(req.ProjectType) {
		apierrors.ErrorWithMessage(c, apierrors.CodeValidationFailed, "unknown project type: "+req.ProjectType)
		return false
	}
	return true
}

// handleListProjects lists all projects.
func (router *APIRouter) handleListProjects(c *gin.Context) {
	projects, err := router.store.Projects.ListProjects(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccess(c, gin.H{"projects": projects})
}

// handleGetProject returns one project by ID.
func (router *APIRouter) handleGetProject(c *gin.Context) {
	p, err := router.store.Projects.GetProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccess(c, p)
}

// handleCreateProject creates a project. Status defaults to draft.
func (router *APIRouter) handleCreateProject(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Error(c, apierrors.CodeInvalidRequest)
		return
	}
	if !req.validate(c) {
		return
	}

	status := req.Status
	if status == "" {
		status = models.ProjectStatusDraft
	}

	p := &models.Project{
		ID:             uuid.NewString(),
		Name:           req.Name,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		Status:         status,
		Priority:       req.Priority,
		ProjectType:    req.ProjectType,
		DirectorID:     req.DirectorID,
		ChangeLeadID:   req.ChangeLeadID,
		BusinessLeadID: req.BusinessLeadID,
	}

	if err := router.store.Projects.CreateProject(c.Request.Context(), p); err != nil {
		handleServiceError(c, err)
		return
	}
	sendCreated(c, p)
}

// handleUpdateProject updates a project.
func (router *APIRouter) handleUpdateProject(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Error(c, apierrors.CodeInvalidRequest)
		return
	}
	if !req.validate(c) {
		return
	}

	p, err := router.store.Projects.GetProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	p.Name = req.Name
	p.StartDate = req.StartDate
	p.EndDate = req.EndDate
	if req.Status != "" {
		p.Status = req.Status
	}
	p.Priority = req.Priority
	p.ProjectType = req.ProjectType
	p.DirectorID = req.DirectorID
	p.ChangeLeadID = req.ChangeLeadID
	p.BusinessLeadID = req.BusinessLeadID

	if err := router.store.Projects.UpdateProject(c.Request.Context(), p); err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccess(c, p)
}

// handleDeleteProject removes a project.
func (router *APIRouter) handleDeleteProject(c *gin.Context) {
	if err := router.store.Projects.DeleteProject(c.Request.Context(), c.Param("id")); err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccess(c, gin.H{"deleted": true})
}
