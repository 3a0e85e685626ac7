package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shrey0196/beatcoders-dev/pkg/logger"
)

// Logger HTTP 요청 로깅 미들웨어
//
// Health probes are skipped; websocket upgrades are logged once at
// upgrade time, the connection lifetime is the hub's concern.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if path == "/health" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []interface{}{
			"method", c.Request.Method,
			"path", path,
			"query", c.Request.URL.RawQuery,
			"status", status,
			"latency", time.Since(start),
			"ip", c.ClientIP(),
		}

		if status >= 500 {
			logger.Error("HTTP Request", fields...)
			return
		}
		logger.Info("HTTP Request", fields...)
	}
}
