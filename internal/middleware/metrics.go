package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/audit-mgmt-api/internal/service"
)

const unmatchedRoute = "unmatched"

// probeRoutes are scraped or polled continuously and stay out of the request histogram.
var probeRoutes = map[string]bool{
	"/metrics": true,
	"/health":  true,
	"/ready":   true,
}

// Metrics records one observation per request labelled by route template, so
// "/companies/:id" is a single series regardless of the id.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil || probeRoutes[c.Request.URL.Path] {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
