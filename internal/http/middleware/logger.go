package middleware

import (
	"time"

	"subite-backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// Logger emits one structured line per request including the request id
// when available.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		zl := logger.Get()
		zl.Info().
			Str("request_id", GetRequestID(c)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", latency).
			Str("ip", c.ClientIP()).
			Msg("http request")
	}
}
