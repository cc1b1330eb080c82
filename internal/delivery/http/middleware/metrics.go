package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/caserne/backend/internal/platform/metrics"
)

// Metrics compte chaque requête par méthode, gabarit de chemin et statut.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.HTTPRequests.WithLabelValues(
			c.Request.Method,
			path,
			strconv.Itoa(c.Writer.Status()),
		).Inc()
	}
}
