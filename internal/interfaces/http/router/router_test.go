package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func okHandler(body string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, body)
	}
}

func denyGuard(c *gin.Context) {
	c.AbortWithStatus(http.StatusForbidden)
}

func TestRouterSections(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, SectionGuards{
		Portal: func(c *gin.Context) { c.Next() },
		Admin:  denyGuard,
	})

	r.Public(RegistrarFunc(func(rg *gin.RouterGroup) {
		rg.GET("/ping", okHandler("pong"))
	}))
	r.Portal(RegistrarFunc(func(rg *gin.RouterGroup) {
		rg.GET("/me", okHandler("me"))
	}))
	r.Admin(RegistrarFunc(func(rg *gin.RouterGroup) {
		rg.GET("/members", okHandler("members"))
	}))
	r.Setup()

	tests := []struct {
		path   string
		status int
		body   string
	}{
		{"/api/v1/ping", http.StatusOK, "pong"},
		{"/api/v1/portal/me", http.StatusOK, "me"},
		{"/api/v1/admin/members", http.StatusForbidden, ""},
		{"/api/v1/superadmin/none", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		req := httptest.NewRequest("GET", tt.path, nil)
		w := httptest.NewRecorder()
		engine.ServeHTTP(w, req)

		assert.Equal(t, tt.status, w.Code, tt.path)
		if tt.body != "" {
			assert.Equal(t, tt.body, w.Body.String(), tt.path)
		}
	}
}

func TestRouterAPIVersion(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, SectionGuards{}, WithAPIVersion("v2"))
	r.Public(RegistrarFunc(func(rg *gin.RouterGroup) {
		rg.GET("/ping", okHandler("pong"))
	}))
	r.Setup()

	req := httptest.NewRequest("GET", "/api/v2/ping", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouterUnguardedSectionStillRoutes(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, SectionGuards{})
	r.Portal(RegistrarFunc(func(rg *gin.RouterGroup) {
		rg.GET("/open", okHandler("open"))
	}))
	r.Setup()

	req := httptest.NewRequest("GET", "/api/v1/portal/open", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
