package metrics

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

// Middleware records HTTP request counts and durations for Prometheus
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		// Use the full route pattern so /orders/:id aggregates as one series
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		method := c.Request.Method
		status := fmt.Sprintf("%d", c.Writer.Status())
		HTTPRequestsTotal.WithLabelValues(path, method, status).Inc()
		HTTPRequestDuration.WithLabelValues(path, method).Observe(time.Since(start).Seconds())
	}
}
