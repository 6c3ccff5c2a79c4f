package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"goal-board-api/internal/metrics"
)

// Metrics records method, route and status for every handled request.
// Health and scrape endpoints are left out so they do not drown the
// real traffic.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metrics.ShouldSkipEndpoint(c.Request.URL.Path) {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		// FullPath is the registered route pattern, so /boards/:id
		// produces one series instead of one per board
		m.RecordHTTPRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
