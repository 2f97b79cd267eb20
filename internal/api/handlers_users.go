package api

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/resourcio/resourcio/internal/apierrors"
	"github.com/resourcio/resourcio/internal/models"
	"github.com/resourcio/resourcio/internal/rbac"
	"github.com/resourcio/resourcio/internal/repository"
	"github.com/resourcio/resourcio/internal/service"
)

// handleListUsers lists all users with their roles.
func (router *APIRouter) handleListUsers(c *gin.Context) {
	users, err := router.store.Users.ListUsers(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccess(c, gin.H{"users": users})
}

// handleCreateUser creates a user account, optionally linked to a
// resource.
func (router *APIRouter) handleCreateUser(c *gin.Context) {
	var req struct {
		Email      string   `json:"email" binding:"required,email"`
		Password   string   `json:"password" binding:"required,min=8"`
		ResourceID *string  `json:"resourceId"`
		Roles      []string `json:"roles"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Error(c, apierrors.CodeInvalidRequest)
		return
	}

	roles, ok := validRoles(c, req.Roles)
	if !ok {
		return
	}
	if len(roles) == 0 {
		roles = []string{string(rbac.RoleRegularUser)}
	}

	hash, err := service.HashPassword(req.Password)
	if err != nil {
		apierrors.Error(c, apierrors.CodeInternalError)
		return
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(req.Email),
		PasswordHash: hash,
		ResourceID:   req.ResourceID,
		Roles:        roles,
		Active:       true,
	}

	if err := router.store.Users.CreateUser(c.Request.Context(), user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			apierrors.Error(c, apierrors.CodeDuplicateEmail)
			return
		}
		handleServiceError(c, err)
		return
	}
	sendCreated(c, user)
}

// handleSetUserRoles replaces a user's role assignments.
func (router *APIRouter) handleSetUserRoles(c *gin.Context) {
	var req struct {
		Roles []string `json:"roles" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Error(c, apierrors.CodeInvalidRequest)
		return
	}

	roles, ok := validRoles(c, req.Roles)
	if !ok {
		return
	}

	userID := c.Param("id")
	if err := router.store.Users.SetUserRoles(c.Request.Context(), userID, roles); err != nil {
		handleServiceError(c, err)
		return
	}

	user, err := router.store.Users.GetUser(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccess(c, user)
}

// validRoles rejects unknown role names instead of silently dropping
// them on write paths.
func validRoles(c *gin.Context, roles []string) ([]string, bool) {
	for _, r := range roles {
		if !rbac.ValidRole(rbac.Role(r)) {
			apierrors.ErrorWithMessage(c, apierrors.CodeValidationFailed, "unknown role: "+r)
			return nil, false
		}
	}
	return roles, true
}
