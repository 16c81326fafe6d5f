// Package demo restricts a public demo server to read-only use.
package demo

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Middleware blocks write operations in read-only demo mode.
// Read-only operations (GET) are always allowed.
// Certain paths are allowlisted even for non-GET methods (clipboard copies).
type Middleware struct {
	enabled bool
}

// NewMiddleware creates a demo mode middleware.
func NewMiddleware(enabled bool) *Middleware {
	return &Middleware{enabled: enabled}
}

// IsEnabled returns whether demo mode is active.
func (m *Middleware) IsEnabled() bool {
	return m.enabled
}

// Handler returns a Gin middleware that blocks write operations.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.enabled {
			c.Next()
			return
		}

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		if m.isAllowedPath(c.Request.Method, c.Request.URL.Path) {
			c.Next()
			return
		}

		m.respondBlocked(c)
	}
}

// isAllowedPath reports whether a write request only touches the server
// clipboard, which never changes stored environments or local files.
func (m *Middleware) isAllowedPath(method, path string) bool {
	if method == http.MethodPut && path == "/api/clipboard" {
		return true
	}
	return method == http.MethodPost &&
		strings.HasPrefix(path, "/api/routes/") &&
		strings.HasSuffix(path, "/copy")
}

func (m *Middleware) respondBlocked(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
		"error":     "This action is disabled in demo mode",
		"code":      "demo_mode",
		"demo_mode": true,
	})
}

// ContextKeyDemoMode stores the demo mode flag in the gin context.
const ContextKeyDemoMode = "demo_mode"

// InjectContext adds the demo mode flag to the gin context so handlers can
// report it.
func (m *Middleware) InjectContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeyDemoMode, m.enabled)
		c.Next()
	}
}
