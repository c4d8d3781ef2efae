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
	r := NewRouter(gin.New())

	assert.Equal(t, DefaultAPIPrefix, r.Prefix())
	assert.Empty(t, r.registrars)
}

func TestWithPrefix(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/api", "/api"},
		{"api/", "/api"},
		{"/v2/api/", "/v2/api"},
		{"", "/"},
		{"/", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NewRouter(gin.New(), WithPrefix(tt.in)).Prefix())
		})
	}
}

func TestRouterSetup(t *testing.T) {
	engine := gin.New()
	calls := 0
	r := NewRouter(engine, WithPrefix("/api"), WithGroupMiddleware(func(c *gin.Context) {
		calls++
		c.Next()
	}))

	group := NewDomainGroup("test", "/test")
	group.GET("/ping/", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.Register(group).Setup()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/test/ping/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
	assert.Equal(t, 1, calls)
}

func TestDomainGroup(t *testing.T) {
	t.Run("creates group with name and prefix", func(t *testing.T) {
		g := NewDomainGroup("items", "/items")
		assert.Equal(t, "items", g.Name())
		assert.Equal(t, "/items", g.Prefix())
	})

	t.Run("registers every method", func(t *testing.T) {
		engine := gin.New()
		ok := func(c *gin.Context) { c.String(http.StatusOK, c.Request.Method) }
		g := NewDomainGroup("test", "/test").
			GET("/r/", ok).
			POST("/r/", ok).
			PUT("/r/", ok).
			PATCH("/r/", ok).
			DELETE("/r/", ok)
		g.RegisterRoutes(engine.Group("/api"))

		for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete} {
			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(method, "/api/test/r/", nil))
			assert.Equal(t, http.StatusOK, w.Code, method)
			assert.Equal(t, method, w.Body.String())
		}
	})

	t.Run("applies group middleware", func(t *testing.T) {
		engine := gin.New()
		g := NewDomainGroup("test", "/test").
			Use(func(c *gin.Context) {
				c.Header("X-Group", "yes")
				c.Next()
			}).
			GET("/r/", func(c *gin.Context) { c.Status(http.StatusOK) })
		g.RegisterRoutes(engine.Group("/"))

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test/r/", nil))
		assert.Equal(t, "yes", w.Header().Get("X-Group"))
	})
}
