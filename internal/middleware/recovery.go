package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"goal-board-api/internal/response"
)

// Recovery turns handler panics into a 500 response instead of
// tearing down the connection.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			logger.Error("Panic recovered",
				zap.Any("error", r),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Stack("stacktrace"),
			)
			response.SendError(c, http.StatusInternalServerError, response.ErrCodeInternal, "Internal server error")
			c.Abort()
		}()

		c.Next()
	}
}
