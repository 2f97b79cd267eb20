// Package api wires the HTTP surface: one APIRouter struct holding the
// services, with handler methods grouped by entity. Route authorization
// is declared once in the rbac route table and enforced here through
// middleware.RequireRoute.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/resourcio/resourcio/internal/middleware"
	"github.com/resourcio/resourcio/internal/repository"
	"github.com/resourcio/resourcio/internal/service"
)

// APIRouter holds the services the handlers dispatch to.
type APIRouter struct {
	store       *repository.Store
	auth        *service.AuthService
	planning    *service.PlanningService
	submissions *service.SubmissionService
}

// NewAPIRouter creates the handler set over the given services.
func NewAPIRouter(store *repository.Store, auth *service.AuthService, planning *service.PlanningService, submissions *service.SubmissionService) *APIRouter {
	return &APIRouter{
		store:       store,
		auth:        auth,
		planning:    planning,
		submissions: submissions,
	}
}

// RegisterRoutes mounts all v1 endpoints on the engine. Paths match the
// rbac route table entries named in the RequireRoute calls.
func (router *APIRouter) RegisterRoutes(r *gin.Engine) {
	v1 := r.Group("/api/v1")

	v1.GET("/health", router.handleHealth)
	v1.POST("/auth/login", router.handleLogin)
	v1.POST("/auth/logout", router.handleLogout)

	authed := v1.Group("")
	authed.Use(middleware.Auth(router.auth))

	authed.GET("/auth/me", router.handleCurrentUser)
	authed.GET("/navigation", router.handleNavigation)

	authed.GET("/dashboard", middleware.RequireRoute("dashboard"), router.handleDashboard)

	resources := authed.Group("/resources", middleware.RequireRoute("resources"))
	{
		resources.GET("", router.handleListResources)
		resources.POST("", router.handleCreateResource)
		resources.GET("/:id", router.handleGetResource)
		resources.PUT("/:id", router.handleUpdateResource)
		resources.DELETE("/:id", router.handleDeleteResource)
	}

	projects := authed.Group("/projects", middleware.RequireRoute("projects"))
	{
		projects.GET("", router.handleListProjects)
		projects.POST("", router.handleCreateProject)
		projects.GET("/:id", router.handleGetProject)
		projects.PUT("/:id", router.handleUpdateProject)
		projects.DELETE("/:id", router.handleDeleteProject)
	}

	allocations := authed.Group("/allocations", middleware.RequireRoute("allocations"))
	{
		allocations.GET("", router.handleListAllocations)
		allocations.POST("", router.handleCreateAllocation)
		allocations.GET("/:id", router.handleGetAllocation)
		allocations.PUT("/:id", router.handleUpdateAllocation)
		allocations.DELETE("/:id", router.handleDeleteAllocation)
	}

	timeEntries := authed.Group("/time-entries", middleware.RequireRoute("time-entries"))
	{
		timeEntries.GET("", router.handleListTimeEntries)
		timeEntries.PUT("", router.handleSaveTimeEntry)
	}

	submissions := authed.Group("/submissions")
	{
		submissions.GET("/overview", middleware.RequireRoute("submission-overview"), router.handleSubmissionOverview)

		locked := submissions.Group("", middleware.RequireRoute("submissions"))
		locked.GET("", router.handleSubmissionStatus)
		locked.POST("/submit", router.handleSubmit)
		locked.POST("/unsubmit", router.handleUnsubmit)
	}

	reports := authed.Group("/reports", middleware.RequireRoute("reports"))
	{
		reports.GET("/utilization", router.handleUtilizationReport)
	}

	users := authed.Group("/users", middleware.RequireRoute("users"))
	{
		users.GET("", router.handleListUsers)
		users.POST("", router.handleCreateUser)
	}
	authed.PUT("/users/:id/roles", middleware.RequireRoute("roles"), router.handleSetUserRoles)
}
