package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/filevault/pkg/metrics"
)

// PrometheusMiddleware Prometheus监控中间件. 以路由模板作为标签，未匹配的路由归入 "unmatched".
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		method := c.Request.Method
		metrics.RequestCounter.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.RequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}
