package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cannaconnect/cannaconnect-api/internal/metrics"
)

// Metrics records count and latency of every request by route template.
func Metrics(recorder metrics.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		recorder.RecordRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
