package api

import (
	"github.com/gin-gonic/gin"
	"github.com/mirrorfish/notion-anki-bridge/api/handler"
	"github.com/mirrorfish/notion-anki-bridge/api/middleware"
	"github.com/mirrorfish/notion-anki-bridge/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter 设置API路由
// 配置所有的工具端点并应用中间件
func SetupRouter(
	pageHandler *handler.PageHandler,
	flashcardHandler *handler.FlashcardHandler,
	m *metrics.Metrics,
) *gin.Engine {
	// 创建默认的Gin路由引擎
	router := gin.Default()

	// 应用全局中间件
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorMiddleware())
	router.Use(middleware.SetTraceID())
	if m != nil {
		router.Use(middleware.Metrics(m))
	}

	// 在调试模式下记录请求体和响应体
	if gin.Mode() == gin.DebugMode {
		router.Use(middleware.RequestBodyLog())
		router.Use(middleware.ResponseLogger())
	}

	// 创建API分组
	api := router.Group("/api")
	{
		// 工具端点，调用结果以响应体内的状态表达
		tools := api.Group("/tools")
		{
			// 页面搜索 - POST /api/tools/search_page
			tools.POST("/search_page", pageHandler.SearchPage)

			// 数据库搜索 - POST /api/tools/search_database
			tools.POST("/search_database", pageHandler.SearchDatabase)

			// 页面内容提取 - POST /api/tools/extract_page_content
			tools.POST("/extract_page_content", pageHandler.ExtractPageContent)

			// 闪卡生成 - POST /api/tools/generate_flashcards
			tools.POST("/generate_flashcards", flashcardHandler.GenerateFlashcards)

			// 单张闪卡添加 - POST /api/tools/add_flashcard
			tools.POST("/add_flashcard", flashcardHandler.AddFlashcard)
		}

		// 健康检查API
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status": "ok",
			})
		})
	}

	// Prometheus指标暴露
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
