// internal/middleware/recovery_middleware.go
package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"mediahub-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecoveryMiddleware turns panics into generic 500s. The panic value and
// stack reach the response body only outside production.
func RecoveryMiddleware(logger *zap.Logger, production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic recovered",
					zap.Any("error", err),
					zap.String("path", c.Request.URL.Path),
					zap.ByteString("stack", debug.Stack()),
				)

				if production {
					response.Error(c, http.StatusInternalServerError, "Internal Server Error")
					return
				}

				c.Abort()
				c.JSON(http.StatusInternalServerError, gin.H{
					"message": "Internal Server Error",
					"stack":   fmt.Sprintf("%v\n%s", err, debug.Stack()),
				})
			}
		}()
		c.Next()
	}
}
