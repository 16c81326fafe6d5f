package demo

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

func newRouter(m *Middleware) *gin.Engine {
	router := gin.New()
	router.Use(m.InjectContext(), m.Handler())
	ok := func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	}
	router.GET("/api/environments", ok)
	router.POST("/api/import", ok)
	router.PUT("/api/environments/active", ok)
	router.PUT("/api/clipboard", ok)
	router.POST("/api/routes/:uuid/copy", ok)
	router.GET("/flag", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"demo": c.GetBool(ContextKeyDemoMode)})
	})
	return router
}

func request(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestNewMiddleware(t *testing.T) {
	assert.True(t, NewMiddleware(true).IsEnabled())
	assert.False(t, NewMiddleware(false).IsEnabled())
}

func TestMiddleware_Enabled(t *testing.T) {
	router := newRouter(NewMiddleware(true))

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/api/environments", http.StatusOK},
		{http.MethodPost, "/api/import", http.StatusForbidden},
		{http.MethodPut, "/api/environments/active", http.StatusForbidden},
		{http.MethodPut, "/api/clipboard", http.StatusOK},
		{http.MethodPost, "/api/routes/abc/copy", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := request(router, tt.method, tt.path)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestMiddleware_BlockedResponse(t *testing.T) {
	w := request(newRouter(NewMiddleware(true)), http.MethodPost, "/api/import")

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"error":"This action is disabled in demo mode","code":"demo_mode","demo_mode":true}`, w.Body.String())
}

func TestMiddleware_Disabled(t *testing.T) {
	router := newRouter(NewMiddleware(false))

	assert.Equal(t, http.StatusOK, request(router, http.MethodPost, "/api/import").Code)
	assert.Equal(t, http.StatusOK, request(router, http.MethodPut, "/api/environments/active").Code)
}

func TestMiddleware_InjectContext(t *testing.T) {
	w := request(newRouter(NewMiddleware(true)), http.MethodGet, "/flag")
	assert.JSONEq(t, `{"demo":true}`, w.Body.String())

	w = request(newRouter(NewMiddleware(false)), http.MethodGet, "/flag")
	assert.JSONEq(t, `{"demo":false}`, w.Body.String())
}
