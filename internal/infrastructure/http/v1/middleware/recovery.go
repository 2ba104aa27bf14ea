// Package middleware provides HTTP middleware components.
package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"stockroom/pkg/logger"
)

// Recovery middleware recovers from panics and returns 500 error.
// Logs the stack trace but never exposes internal details to clients.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error(c.Request.Context(), "panic recovered",
					"error", err,
					"stack", string(debug.Stack()),
				)

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"isSuccess":    false,
					"errorMessage": "internal server error",
					"errorCode":    http.StatusInternalServerError,
				})
			}
		}()
		c.Next()
	}
}
