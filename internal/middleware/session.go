package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campusgate/student-portal/internal/app/session"
)

// sessionKey is the gin context key the resolved session is stored under.
const sessionKey = "portalSession"

// SessionMiddleware resolves the portal session cookie and guards
// authenticated routes.
type SessionMiddleware struct {
	registry   *session.Registry
	cookieName string
}

// NewSessionMiddleware creates the session middleware.
func NewSessionMiddleware(registry *session.Registry, cookieName string) *SessionMiddleware {
	return &SessionMiddleware{registry: registry, cookieName: cookieName}
}

// Resolve attaches the session matching the portal cookie, when one exists.
// It never blocks the request; RequireAuth does the gating.
func (m *SessionMiddleware) Resolve() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, err := c.Cookie(m.cookieName); err == nil {
			if s, ok := m.registry.Get(id); ok {
				c.Set(sessionKey, s)
			}
		}
		c.Next()
	}
}

// RequireAuth blocks requests without an authenticated session. Browsers get
// a redirect to the login page; JSON action calls get a 401 body.
func (m *SessionMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		s := SessionFrom(c)
		if s != nil && s.Stores.Auth.Authenticated() {
			c.Next()
			return
		}

		if wantsJSON(c) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  false,
				"message": "session expired, please log in again",
			})
			return
		}
		c.Redirect(http.StatusFound, "/login")
		c.Abort()
	}
}

// SessionFrom returns the session resolved for this request, nil when absent.
func SessionFrom(c *gin.Context) *session.Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(*session.Session); ok {
			return s
		}
	}
	return nil
}

// wantsJSON distinguishes the portal's JSON action endpoints from page loads.
func wantsJSON(c *gin.Context) bool {
	if strings.Contains(c.GetHeader("Accept"), "application/json") {
		return true
	}
	return strings.Contains(c.ContentType(), "application/json")
}
