package middleware

import (
	"strconv"
	"time"

	"task-prompt-api/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// probePaths 探针与指标路径，不计入请求指标也不产生追踪
var probePaths = map[string]bool{
	"/health":  true,
	"/ready":   true,
	"/live":    true,
	"/metrics": true,
}

func isProbe(path string) bool {
	return probePaths[path]
}

// Metrics Prometheus 指标采集中间件
// 路径标签使用路由模板，未匹配路由统一记为 unmatched，避免标签基数随 URL 增长
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		if isProbe(c.Request.URL.Path) {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())

		metrics.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		if size := c.Writer.Size(); size > 0 {
			metrics.HTTPResponseSize.WithLabelValues(method, route).Observe(float64(size))
		}
	}
}
