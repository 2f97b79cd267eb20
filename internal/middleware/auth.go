// Package middleware provides the gin middleware chain: JWT
// authentication, route-table authorization and request metrics.
package middleware

import (
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/resourcio/resourcio/internal/apierrors"
	"github.com/resourcio/resourcio/internal/rbac"
	"github.com/resourcio/resourcio/internal/service"
)

// Context keys set by the auth middleware.
const (
	ContextUserID     = "user_id"
	ContextUserEmail  = "user_email"
	ContextUserRoles  = "user_roles"
	ContextResourceID = "resource_id"
	ContextSubject    = "subject"
)

// debugLog logs only when LOG_LEVEL=debug
func debugLog(format string, v ...interface{}) {
	if os.Getenv("LOG_LEVEL") == "debug" {
		log.Printf(format, v...)
	}
}

// TokenValidator validates an access token string. Satisfied by
// service.AuthService; the interface breaks the api/middleware cycle.
type TokenValidator interface {
	ValidateToken(token string) (*service.Claims, error)
}

// Auth authenticates the request from a bearer token or cookie and sets
// the user identity and an rbac subject on the context.
func Auth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			debugLog("DEBUG auth: no token on %s %s", c.Request.Method, c.Request.URL.Path)
			apierrors.Error(c, apierrors.CodeUnauthorized)
			c.Abort()
			return
		}

		claims, err := validator.ValidateToken(token)
		if err != nil {
			debugLog("DEBUG auth: token rejected: %v", err)
			apierrors.Error(c, apierrors.CodeInvalidToken)
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserEmail, claims.Email)
		c.Set(ContextUserRoles, claims.Roles)
		if claims.ResourceID != "" {
			c.Set(ContextResourceID, claims.ResourceID)
		}
		c.Set(ContextSubject, rbac.NewSubject(claims.UserID, claims.Roles))

		c.Next()
	}
}

// SubjectFrom returns the rbac subject set by Auth, or nil when the
// request is unauthenticated.
func SubjectFrom(c *gin.Context) *rbac.Subject {
	v, ok := c.Get(ContextSubject)
	if !ok {
		return nil
	}
	subject, _ := v.(*rbac.Subject)
	return subject
}

// extractToken pulls the token from the Authorization header, then the
// auth cookie.
func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			return parts[1]
		}
	}

	if cookie, err := c.Cookie("auth_token"); err == nil && cookie != "" {
		return cookie
	}

	return ""
}
