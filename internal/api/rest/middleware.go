package rest

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/perkhub/loyalty/internal/metrics"
)

// RequestLogger returns middleware that logs each request and records its
// duration metric, labeled by route template.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		elapsed := time.Since(start)
		operation := c.FullPath()
		if operation == "" {
			operation = "unmatched"
		}

		status := "success"
		if c.Writer.Status() >= http.StatusBadRequest {
			status = "failed"
		}
		metrics.RecordRequestDuration(operation, status, elapsed.Seconds())

		slog.Debug("request processed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", elapsed,
		)
	}
}

// RateLimit returns middleware that enforces a process-wide request rate.
func RateLimit(limiter *rate.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.Next()
	}
}
