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

func pong(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
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

	r.Register(NewDomainGroup("shop", "/shop").GET("/ping", pong))
	r.Setup()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v2/shop/ping", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouterMountsGroupsUnderPrefix(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	shop := NewDomainGroup("shop", "/shop")
	shop.GET("/products", pong)
	shop.POST("/reviews", pong)

	admin := NewDomainGroup("admin", "/admin")
	admin.PUT("/products/:id", pong)
	admin.DELETE("/products/:id", pong)

	r.Register(shop).Register(admin)
	r.Setup()

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/shop/products"},
		{http.MethodPost, "/api/v1/shop/reviews"},
		{http.MethodPut, "/api/v1/admin/products/42"},
		{http.MethodDelete, "/api/v1/admin/products/42"},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(tc.method, tc.path, nil)
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, "%s %s", tc.method, tc.path)
	}

	// unknown path stays unrouted
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/shop/nope", nil)
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouterUseAppliesMiddlewareToAPIGroup(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	var seen bool
	r.Use(func(c *gin.Context) {
		seen = true
		c.Next()
	})
	r.Register(NewDomainGroup("shop", "/shop").GET("/ping", pong))
	r.Setup()

	// middleware does not leak onto routes outside the API prefix
	engine.GET("/health", pong)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, seen)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/shop/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, seen)
}

func TestDomainGroupMiddleware(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	admin := NewDomainGroup("admin", "/admin")
	admin.Use(func(c *gin.Context) {
		if c.GetHeader("X-Role") != "admin" {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	})
	admin.GET("/products", pong)

	shop := NewDomainGroup("shop", "/shop")
	shop.GET("/products", pong)

	r.Register(admin).Register(shop)
	r.Setup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/products", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/products", nil)
	req.Header.Set("X-Role", "admin")
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// group middleware stays scoped to its own prefix
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/shop/products", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDomainGroupSubgroups(t *testing.T) {
	engine := gin.New()
	r := NewRouter(engine)

	shop := NewDomainGroup("shop", "/shop")
	stats := shop.Group("stats", "/stats")
	stats.GET("/top-selling", pong)

	r.Register(shop)
	r.Setup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/shop/stats/top-selling", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDomainGroupAccessors(t *testing.T) {
	dg := NewDomainGroup("reviews", "/reviews")
	assert.Equal(t, "reviews", dg.Name())
	assert.Equal(t, "/reviews", dg.Prefix())
}
