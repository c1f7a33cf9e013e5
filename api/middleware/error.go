package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/mirrorfish/notion-anki-bridge/api/model"
	"github.com/sirupsen/logrus"
)

// ErrorMiddleware 统一错误处理中间件
// 捕获处理器中的panic并转换为通用错误响应
// 工具调用本身的失败由处理器在响应体内表达，不经过这里
func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 捕获 panic
		defer func() {
			if err := recover(); err != nil {
				// 获取堆栈跟踪信息
				stack := string(debug.Stack())

				// 获取跟踪ID
				traceID := ""
				if traceIDValue, exists := c.Get("TraceID"); exists {
					traceID = traceIDValue.(string)
				}

				// 记录错误日志
				log.WithFields(logrus.Fields{
					"error":      err,
					"stack":      stack,
					FieldPath:    c.Request.URL.Path,
					FieldTraceID: traceID,
				}).Error("Panic recovered in API request")

				// 构造客户端响应
				errorResponse := model.NewErrorResponse("An unexpected error occurred")
				errorResponse.TraceID = traceID

				// 在开发环境中可以返回详细错误
				if gin.Mode() == gin.DebugMode {
					errorResponse.Message = fmt.Sprintf("Panic: %v", err)
				}

				// 中止请求处理并返回错误响应
				c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse)
			}
		}()

		// 处理请求
		c.Next()
	}
}
