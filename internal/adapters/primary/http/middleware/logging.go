package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Logging emits one structured line per request after the handler chain has
// run. Server errors are logged at error level so they stand out in aggregate.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		entry := log.WithFields(log.Fields{
			"status":       status,
			"method":       c.Request.Method,
			"path":         c.Request.URL.Path,
			"latency_ms":   time.Since(start).Milliseconds(),
			"client_ip":    c.ClientIP(),
			"request_id":   c.GetString("request_id"),
			"workspace_id": c.GetHeader("Workspace-ID"),
		})

		switch {
		case status >= 500:
			entry.Error("request failed")
		case status >= 400:
			entry.Warn("request rejected")
		default:
			entry.Info("request completed")
		}
	}
}
