package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-admin/internal/auth"
	"github.com/BruksfildServices01/clinic-admin/internal/httperr"
)

const (
	ContextAdminID  = "adminID"
	ContextUsername = "adminUsername"
)

var protectedPrefixes = []string{
	"/dashboard",
	"/patients",
	"/treatments",
	"/appointments",
	"/sessions",
	"/stocks",
	"/reporting",
}

func isProtectedPage(path string) bool {
	for _, prefix := range protectedPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}

// PageGuard protects the server-rendered pages. A signed-in admin visiting
// /login is sent to the dashboard; anyone else visiting a protected page is
// sent to /login, and a bad cookie is cleared on the way.
func PageGuard(iss *auth.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		if path == "/login" {
			claims, present, err := iss.FromRequest(c)
			if present && err == nil {
				setAdmin(c, claims)
				c.Redirect(http.StatusFound, "/dashboard")
				c.Abort()
				return
			}
			if present {
				iss.ClearCookie(c)
			}
			c.Next()
			return
		}

		if !isProtectedPage(path) {
			c.Next()
			return
		}

		claims, present, err := iss.FromRequest(c)
		if !present {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		if err != nil {
			iss.ClearCookie(c)
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		setAdmin(c, claims)
		c.Next()
	}
}

// APIGuard rejects JSON requests without a valid session cookie.
func APIGuard(iss *auth.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, present, err := iss.FromRequest(c)
		if !present || err != nil {
			httperr.Unauthorized(c, "unauthorized", "Unauthorized.")
			c.Abort()
			return
		}

		setAdmin(c, claims)
		c.Next()
	}
}

func setAdmin(c *gin.Context, claims *auth.Claims) {
	id, _ := claims.AdminID()
	c.Set(ContextAdminID, id)
	c.Set(ContextUsername, claims.Username)
}

// AdminID returns the signed-in admin, or nil outside guarded routes.
func AdminID(c *gin.Context) *uint {
	v, ok := c.Get(ContextAdminID)
	if !ok {
		return nil
	}
	id, ok := v.(uint)
	if !ok {
		return nil
	}
	return &id
}
