package middleware

import (
	"strings"
	"time"

	"github.com/ifsp/cadastro/logger"

	"github.com/gin-gonic/gin"
)

// AccessLogMiddleware logs one line per request. Static assets are only
// logged at debug level.
func AccessLogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.Request.URL.Path
		status := c.Writer.Status()
		line := "[%s] %s %s %d %s %s"
		args := []any{GetRequestID(c), c.Request.Method, path, status, time.Since(start).Round(time.Microsecond), c.ClientIP()}

		switch {
		case status >= 500:
			logger.Warningf(line, args...)
		case strings.HasPrefix(path, "/assets/"):
			logger.Debugf(line, args...)
		default:
			logger.Infof(line, args...)
		}
	}
}
