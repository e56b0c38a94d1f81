package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Modeva-Ecommerce/modeva-storefront/metrics"
)

// metricsSkipPaths are operational endpoints excluded from request metrics.
var metricsSkipPaths = map[string]struct{}{
	"/metrics": {},
	"/healthz": {},
}

// Metrics records request duration and status by route template.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		if _, skip := metricsSkipPaths[path]; skip {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		status := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		metrics.HTTPRequestDuration.
			WithLabelValues(method, path, status).
			Observe(time.Since(start).Seconds())
		metrics.HTTPRequestsTotal.
			WithLabelValues(method, path, status).
			Inc()
	}
}
