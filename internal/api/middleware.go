package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"inventory-service/internal/models"
	"inventory-service/internal/util"

	"github.com/gin-gonic/gin"
)

const sessionKey = "session"

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}

// authMiddleware resolves the bearer token to a session and aborts with 401
// when there is none.
func (h *Handler) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		session, err := h.authService.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Not authenticated",
			})
			return
		}

		c.Set(sessionKey, session)
		c.Next()
	}
}

// adminMiddleware restricts a route group to admin sessions. Must run after
// authMiddleware.
func (h *Handler) adminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessionFrom(c)
		if session == nil || session.Role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Admin access required",
			})
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

func sessionFrom(c *gin.Context) *models.Session {
	value, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	session, _ := value.(*models.Session)
	return session
}
