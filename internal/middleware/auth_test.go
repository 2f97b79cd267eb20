package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/resourcio/resourcio/internal/rbac"
	"github.com/resourcio/resourcio/internal/service"
)

type stubValidator struct {
	claims *service.Claims
	err    error
}

func (s *stubValidator) ValidateToken(string) (*service.Claims, error) {
	return s.claims, s.err
}

func authedClaims(roles ...string) *service.Claims {
	return &service.Claims{UserID: "user-1", Email: "alice@example.com", Roles: roles}
}

func newAuthRouter(v TokenValidator, handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	chain := append([]gin.HandlerFunc{Auth(v)}, handlers...)
	chain = append(chain, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/probe", chain...)
	return r
}

func TestAuthMissingToken(t *testing.T) {
	r := newAuthRouter(&stubValidator{claims: authedClaims("admin")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "core:unauthorized")
}

func TestAuthInvalidToken(t *testing.T) {
	r := newAuthRouter(&stubValidator{err: errors.New("bad signature")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer nope")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "core:invalid_token")
}

func TestAuthBearerHeader(t *testing.T) {
	r := newAuthRouter(&stubValidator{claims: authedClaims("regular_user")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer token")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthCookieFallback(t *testing.T) {
	r := newAuthRouter(&stubValidator{claims: authedClaims("regular_user")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: "token"})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRoute(t *testing.T) {
	tests := []struct {
		name   string
		roles  []string
		route  string
		status int
	}{
		{"admin reaches user management", []string{"admin"}, "users", http.StatusOK},
		{"regular user refused user management", []string{"regular_user"}, "users", http.StatusForbidden},
		{"manager reaches reports", []string{"manager_change"}, "reports", http.StatusOK},
		{"change lead reaches reports via own permission", []string{"change_lead"}, "reports", http.StatusOK},
		{"unknown route denies", []string{"admin"}, "no_such_route", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newAuthRouter(&stubValidator{claims: authedClaims(tt.roles...)}, RequireRoute(tt.route))

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/probe", nil)
			req.Header.Set("Authorization", "Bearer token")
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestRequirePermission(t *testing.T) {
	r := newAuthRouter(
		&stubValidator{claims: authedClaims("business_controller")},
		RequirePermission(rbac.PermTimeLogging),
	)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer token")
	r.ServeHTTP(w, req)

	// Business controllers view, they do not log time.
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSubjectFromUnauthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, SubjectFrom(c))
}
