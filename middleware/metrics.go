package middleware

import (
	"strconv"
	"time"

	"finlife/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics conta requisições e latência por rota registrada (c.FullPath),
// para que /deposit/:code não vire uma série por código.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		metrics.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.RequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}
