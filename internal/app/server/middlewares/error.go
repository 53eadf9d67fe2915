package middlewares

import (
	"github.com/gin-gonic/gin"

	"github.com/anilpotu/aws-s3-service/internal/app/pkg/ginx"
	"github.com/anilpotu/aws-s3-service/internal/app/pkg/logger"
)

// ErrorHandler 统一错误处理中间件
// handler 通过 c.Error 上报且尚未写响应时，按错误类型渲染统一响应
func ErrorHandler(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err
		log.ErrorContext(c.Request.Context(), "Request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
		if c.Writer.Written() {
			return
		}
		ginx.Fail(c, err)
	}
}

// Recovery panic 恢复中间件，返回 500 统一响应
func Recovery(log logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.ErrorContext(c.Request.Context(), "Panic recovered",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"panic", recovered,
		)
		ginx.InternalError(c, "internal server error")
		c.Abort()
	})
}
