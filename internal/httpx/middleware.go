package httpx

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mercatto/storefront/internal/user"
)

// Context keys set by the middleware below.
const (
	KeyRequestID = "rid"
	KeyUserID    = "uid"
	KeyRole      = "role"
)

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(KeyRequestID, rid)
		c.Writer.Header().Set("X-Request-ID", rid)
		c.Next()
	}
}

func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		rid, _ := c.Get(KeyRequestID)
		log.Printf("[http] rid=%v %s %s status=%d dur=%s",
			rid, c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

// Auth validates the bearer token and stores the subject and role on the
// request context. User identity is never read from the request body.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c.GetHeader("Authorization"))
		if raw == "" {
			AbortFail(c, http.StatusUnauthorized, "not authorized, login again")
			return
		}
		claims, err := user.ParseToken(secret, raw)
		if err != nil {
			AbortFail(c, http.StatusUnauthorized, "not authorized, login again")
			return
		}
		c.Set(KeyUserID, claims.Subject)
		c.Set(KeyRole, claims.Role)
		c.Next()
	}
}

// AdminOnly runs after Auth and rejects non-admin tokens.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(KeyRole) != user.RoleAdmin {
			AbortFail(c, http.StatusForbidden, "admin access required")
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated subject set by Auth.
func UserID(c *gin.Context) string { return c.GetString(KeyUserID) }

func bearerToken(header string) string {
	const prefix = "Bearer "
	if strings.HasPrefix(header, prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}
