package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/srisoftware/portal-api/internal/service"
)

// Metrics records the latency and status of every request. Unmatched routes
// share one label so that probing does not grow the series count.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(start))
	}
}
