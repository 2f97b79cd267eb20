package api

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/resourcio/resourcio/internal/apierrors"
	"github.com/resourcio/resourcio/internal/middleware"
	"github.com/resourcio/resourcio/internal/service"
)

// handleHealth returns API health status.
func (router *APIRouter) handleHealth(c *gin.Context) {
	sendSuccess(c, gin.H{
		"status":    "healthy",
		"service":   "resourcio-api",
		"timestamp": time.Now().UTC(),
	})
}

// handleLogin authenticates by email and password. The token is
// returned in the body and also set as a cookie for browser clients.
func (router *APIRouter) handleLogin(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.Error(c, apierrors.CodeInvalidRequest)
		return
	}

	user, token, err := router.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) || errors.Is(err, service.ErrInactiveUser) {
			apierrors.Error(c, apierrors.CodeUnauthorized)
			return
		}
		apierrors.Error(c, apierrors.CodeInternalError)
		return
	}

	c.SetCookie("auth_token", token, int((24 * time.Hour).Seconds()), "/", "", false, true)
	sendSuccess(c, gin.H{
		"token": token,
		"user":  user,
	})
}

// handleLogout clears the auth cookie. Tokens are stateless; the client
// discards its copy.
func (router *APIRouter) handleLogout(c *gin.Context) {
	c.SetCookie("auth_token", "", -1, "/", "", false, true)
	sendSuccess(c, gin.H{"loggedOut": true})
}

// handleCurrentUser returns the caller's identity with the derived
// permission set, so the UI can hide what the middleware would refuse.
func (router *APIRouter) handleCurrentUser(c *gin.Context) {
	subject := middleware.SubjectFrom(c)
	if subject == nil {
		apierrors.Error(c, apierrors.CodeUnauthorized)
		return
	}

	user, err := router.auth.GetUser(c.Request.Context(), subject.UserID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	sendSuccess(c, gin.H{
		"user":        user,
		"permissions": subject.Permissions(),
	})
}

// handleNavigation returns the route table filtered to entries the
// caller may access.
func (router *APIRouter) handleNavigation(c *gin.Context) {
	subject := middleware.SubjectFrom(c)
	if subject == nil {
		apierrors.Error(c, apierrors.CodeUnauthorized)
		return
	}
	sendSuccess(c, gin.H{"routes": subject.AccessibleRoutes()})
}

// handleDashboard returns the landing page summary counts.
func (router *APIRouter) handleDashboard(c *gin.Context) {
	summary, err := router.planning.Dashboard(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}
	sendSuccess(c, summary)
}
