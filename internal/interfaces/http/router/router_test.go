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

func TestNewRouter(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	assert.NotNil(t, r)
	assert.Equal(t, "v1", r.apiVersion)
	assert.Empty(t, r.registrars)
}

func TestRouterWithAPIVersion(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v2"))

	assert.Equal(t, "v2", r.apiVersion)
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine, WithAPIVersion("v1"))

	group := NewGroup("/records")
	group.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	r.Register(group)
	r.Setup()

	req := httptest.NewRequest("GET", "/api/v1/records/ping", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func TestRouterMiddlewareAppliesToRegistrars(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	r.Use(func(c *gin.Context) {
		c.Header("X-Test", "applied")
		c.Next()
	})

	group := NewGroup("/records")
	group.GET("", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.Register(group).Setup()

	req := httptest.NewRequest("GET", "/api/v1/records", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "applied", w.Header().Get("X-Test"))
}

func TestGroupRoutes(t *testing.T) {
	engine := gin.New()
	g := NewGroup("/categories")
	g.GET("/:id", func(c *gin.Context) {
		c.String(http.StatusOK, c.Param("id"))
	})
	g.POST("", func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	g.DELETE("/:id", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	api := engine.Group("/api/v1")
	g.RegisterRoutes(api)

	req := httptest.NewRequest("GET", "/api/v1/categories/abc", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "abc", w.Body.String())

	req = httptest.NewRequest("POST", "/api/v1/categories", nil)
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	req = httptest.NewRequest("DELETE", "/api/v1/categories/abc", nil)
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestGroupScopedMiddleware(t *testing.T) {
	engine := gin.New()

	g := NewGroup("/users")
	g.Use(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusForbidden)
	})
	g.GET("", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	open := NewGroup("/records")
	open.GET("", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	api := engine.Group("/api/v1")
	g.RegisterRoutes(api)
	open.RegisterRoutes(api)

	req := httptest.NewRequest("GET", "/api/v1/users", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	req = httptest.NewRequest("GET", "/api/v1/records", nil)
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
