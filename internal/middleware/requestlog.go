package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Scetch/potw/internal/logger"
)

// RequestLog is a plain gin middleware, outside the interceptor chain,
// that tags every request with an id and logs the access line.
func RequestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Writer.Header().Set("X-Request-ID", id)

		start := time.Now()
		c.Next()

		logger.Info("request", map[string]any{
			"id":       id,
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		})
	}
}
