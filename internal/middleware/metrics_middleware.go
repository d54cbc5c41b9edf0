package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"fitbuddy/backend/internal/metrics"
)

// Metrics records request count and latency per route template, so
// /api/exercises/:id is one series regardless of the id.
func Metrics(recorder metrics.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		recorder.IncRequestsTotal(route, c.Writer.Status())
		recorder.ObserveRequestDuration(route, time.Since(start))
	}
}
