package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mirrorfish/notion-anki-bridge/api/middleware"
	"github.com/mirrorfish/notion-anki-bridge/api/model"
	"github.com/mirrorfish/notion-anki-bridge/internal/services"
	"github.com/sirupsen/logrus"
)

// PageHandler 处理Notion页面相关的工具请求
type PageHandler struct {
	flashcardService *services.FlashcardService // 闪卡流水线服务
	logger           *logrus.Logger             // 日志记录器
}

// NewPageHandler 创建新的页面工具处理器
func NewPageHandler(flashcardService *services.FlashcardService) *PageHandler {
	return &PageHandler{
		flashcardService: flashcardService,
		logger:           middleware.GetLogger(),
	}
}

// SearchPage 按标题搜索Notion页面
// POST /api/tools/search_page
func (h *PageHandler) SearchPage(c *gin.Context) {
	// 绑定请求参数
	var req model.SearchPageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Warn("Invalid search page request")

		c.JSON(http.StatusOK, model.SearchPageResponse{
			Status:  model.StatusError,
			Message: "Invalid request body.",
		})
		return
	}

	// 检查页面标题是否为空
	if strings.TrimSpace(req.PageName) == "" {
		h.logger.Warn("Empty page name provided")

		c.JSON(http.StatusOK, model.SearchPageResponse{
			Status:  model.StatusError,
			Message: "Page name cannot be empty.",
		})
		return
	}

	// 调用搜索服务
	page, err := h.flashcardService.FindPage(c.Request.Context(), strings.TrimSpace(req.PageName))
	if err != nil {
		h.logger.WithFields(logrus.Fields{
			"error":     err.Error(),
			"page_name": req.PageName,
		}).Error("Failed to search for page")

		c.JSON(http.StatusOK, model.SearchPageResponse{
			Status:   model.StatusError,
			PageName: req.PageName,
			Message:  fmt.Sprintf("Search failed: %v", err),
		})
		return
	}

	// 未找到匹配的页面
	if page == nil {
		c.JSON(http.StatusOK, model.SearchPageResponse{
			Status:   model.StatusError,
			PageName: req.PageName,
			Message:  "Page not found.",
		})
		return
	}

	c.JSON(http.StatusOK, model.SearchPageResponse{
		Status:   model.StatusSuccess,
		PageName: req.PageName,
		Result:   model.NewPageResult(page),
	})
}

// SearchDatabase 按标题搜索Notion数据库
// POST /api/tools/search_database
func (h *PageHandler) SearchDatabase(c *gin.Context) {
	// 绑定请求参数
	var req model.SearchDatabaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Warn("Invalid search database request")

		c.JSON(http.StatusOK, model.SearchDatabaseResponse{
			Status:  model.StatusError,
			Message: "Invalid request body.",
		})
		return
	}

	// 检查数据库标题是否为空
	if strings.TrimSpace(req.DatabaseName) == "" {
		h.logger.Warn("Empty database name provided")

		c.JSON(http.StatusOK, model.SearchDatabaseResponse{
			Status:  model.StatusError,
			Message: "Database name cannot be empty.",
		})
		return
	}

	// 调用搜索服务
	database, err := h.flashcardService.FindDatabase(c.Request.Context(), strings.TrimSpace(req.DatabaseName))
	if err != nil {
		h.logger.WithFields(logrus.Fields{
			"error":         err.Error(),
			"database_name": req.DatabaseName,
		}).Error("Failed to search for database")

		c.JSON(http.StatusOK, model.SearchDatabaseResponse{
			Status:       model.StatusError,
			DatabaseName: req.DatabaseName,
			Message:      fmt.Sprintf("Search failed: %v", err),
		})
		return
	}

	// 未找到匹配的数据库
	if database == nil {
		c.JSON(http.StatusOK, model.SearchDatabaseResponse{
			Status:       model.StatusError,
			DatabaseName: req.DatabaseName,
			Message:      "Database not found.",
		})
		return
	}

	c.JSON(http.StatusOK, model.SearchDatabaseResponse{
		Status:       model.StatusSuccess,
		DatabaseName: req.DatabaseName,
		Result:       model.NewDatabaseResult(database),
	})
}

// ExtractPageContent 提取页面的主题和问答内容
// POST /api/tools/extract_page_content
func (h *PageHandler) ExtractPageContent(c *gin.Context) {
	// 绑定请求参数
	var req model.ExtractPageContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Warn("Invalid extract page content request")

		c.JSON(http.StatusOK, model.ExtractPageContentResponse{
			Status:  model.StatusError,
			Topics:  []string{},
			Content: map[string]string{},
			Message: "Invalid request body.",
		})
		return
	}

	// 检查页面ID是否为空
	if strings.TrimSpace(req.PageID) == "" {
		h.logger.Warn("Empty page ID provided")

		c.JSON(http.StatusOK, model.ExtractPageContentResponse{
			Status:  model.StatusError,
			Topics:  []string{},
			Content: map[string]string{},
			Message: "Page ID cannot be empty.",
		})
		return
	}

	// 调用内容提取服务
	topics, content, err := h.flashcardService.ExtractContent(c.Request.Context(), strings.TrimSpace(req.PageID))
	if err != nil {
		h.logger.WithFields(logrus.Fields{
			"error":   err.Error(),
			"page_id": req.PageID,
		}).Error("Failed to extract page content")

		c.JSON(http.StatusOK, model.ExtractPageContentResponse{
			Status:  model.StatusError,
			Topics:  []string{},
			Content: map[string]string{},
			Message: fmt.Sprintf("Content extraction failed: %v", err),
		})
		return
	}

	// 页面中没有可提取的内容
	if len(topics) == 0 && len(content) == 0 {
		h.logger.WithField("page_id", req.PageID).Warn("No content extracted from page")

		c.JSON(http.StatusOK, model.ExtractPageContentResponse{
			Status:  model.StatusError,
			Topics:  []string{},
			Content: map[string]string{},
			Message: "No extractable content found in the page.",
		})
		return
	}

	c.JSON(http.StatusOK, model.ExtractPageContentResponse{
		Status:  model.StatusSuccess,
		Topics:  topics,
		Content: content,
		Message: fmt.Sprintf("Extracted topics and content from page ID: %s", req.PageID),
	})
}
