package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campusforge/timetable/pkg/metrics"
)

// Metrics returns middleware that records HTTP request timing against rec.
func Metrics(rec *metrics.Recorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rec == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		rec.ObserveHTTPRequest(c.Request.Method, path, status, duration)
	}
}
