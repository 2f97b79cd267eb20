package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/resourcio/resourcio/internal/apierrors"
	"github.com/resourcio/resourcio/internal/rbac"
)

// RequireRoute authorizes against the named entry of the shared route
// table. The same table backs the navigation endpoint, so the UI never
// links to a screen this middleware would refuse.
func RequireRoute(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject := SubjectFrom(c)
		if subject == nil {
			apierrors.Error(c, apierrors.CodeUnauthorized)
			c.Abort()
			return
		}
		if !subject.CanAccessRoute(name) {
			apierrors.Error(c, apierrors.CodeForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequirePermission authorizes a single permission, for endpoints that
// sit outside the route table.
func RequirePermission(perm rbac.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject := SubjectFrom(c)
		if subject == nil {
			apierrors.Error(c, apierrors.CodeUnauthorized)
			c.Abort()
			return
		}
		if !subject.HasPermission(perm) {
			apierrors.Error(c, apierrors.CodeForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole authorizes any of the given roles.
func RequireRole(roles ...rbac.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject := SubjectFrom(c)
		if subject == nil {
			apierrors.Error(c, apierrors.CodeUnauthorized)
			c.Abort()
			return
		}
		if !subject.HasAnyRole(roles...) {
			apierrors.Error(c, apierrors.CodeForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}
