package middleware

import (
	"github.com/ifsp/cadastro/logger"

	"github.com/gin-gonic/gin"
)

// RecoveryMiddleware turns a handler panic into onPanic, usually the 500 page.
func RecoveryMiddleware(onPanic gin.HandlerFunc) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, err any) {
		logger.Errorf("[%s] panic serving %s %s: %v", GetRequestID(c), c.Request.Method, c.Request.URL.Path, err)
		onPanic(c)
	})
}
