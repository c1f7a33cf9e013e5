package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mirrorfish/notion-anki-bridge/api/middleware"
	"github.com/mirrorfish/notion-anki-bridge/api/model"
	"github.com/mirrorfish/notion-anki-bridge/internal/anki"
	"github.com/mirrorfish/notion-anki-bridge/internal/services"
	"github.com/sirupsen/logrus"
)

// FlashcardHandler 处理闪卡生成与添加的工具请求
type FlashcardHandler struct {
	flashcardService *services.FlashcardService // 闪卡流水线服务
	logger           *logrus.Logger             // 日志记录器
}

// NewFlashcardHandler 创建新的闪卡工具处理器
func NewFlashcardHandler(flashcardService *services.FlashcardService) *FlashcardHandler {
	return &FlashcardHandler{
		flashcardService: flashcardService,
		logger:           middleware.GetLogger(),
	}
}

// GenerateFlashcards 根据页面内容生成闪卡并写入Anki
// POST /api/tools/generate_flashcards
func (h *FlashcardHandler) GenerateFlashcards(c *gin.Context) {
	// 绑定请求参数
	var req model.GenerateFlashcardsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Warn("Invalid generate flashcards request")

		c.JSON(http.StatusOK, model.GenerateFlashcardsResponse{
			Status:  model.StatusFailed,
			Cards:   []anki.Note{},
			Message: "Invalid request body.",
		})
		return
	}

	// 检查页面标题是否为空
	if strings.TrimSpace(req.PageName) == "" {
		h.logger.Warn("Empty page name provided for flashcard generation")

		c.JSON(http.StatusOK, model.GenerateFlashcardsResponse{
			Status:  model.StatusFailed,
			Cards:   []anki.Note{},
			Message: "Page name cannot be empty",
		})
		return
	}

	// 主题和内容至少要有一项
	if len(req.Topics) == 0 && len(req.Content) == 0 {
		h.logger.Warn("No topics or content provided for flashcard generation")

		c.JSON(http.StatusOK, model.GenerateFlashcardsResponse{
			Status:  model.StatusFailed,
			Cards:   []anki.Note{},
			Message: "No topics or content provided",
		})
		return
	}

	// 没有问答对时无法生成闪卡
	if len(req.Content) == 0 {
		h.logger.Warn("No question-answer pairs found for flashcard generation")

		c.JSON(http.StatusOK, model.GenerateFlashcardsResponse{
			Status:  model.StatusFailed,
			Cards:   []anki.Note{},
			Message: "No question-answer content found to generate flashcards",
		})
		return
	}

	// 调用大模型生成闪卡
	h.logger.WithFields(logrus.Fields{
		"page_name": req.PageName,
		"topics":    len(req.Topics),
		"pairs":     len(req.Content),
	}).Info("Generating flashcards")

	notes, err := h.flashcardService.GenerateNotes(c.Request.Context(), req.PageName, req.Topics, req.Content)
	if err != nil {
		h.logger.WithFields(logrus.Fields{
			"error":     err.Error(),
			"page_name": req.PageName,
		}).Error("Failed to generate flashcards")

		c.JSON(http.StatusOK, model.GenerateFlashcardsResponse{
			Status:  model.StatusFailed,
			Cards:   []anki.Note{},
			Message: fmt.Sprintf("Flashcard generation failed: %v", err),
		})
		return
	}

	// 大模型没有产出可用的闪卡
	if len(notes) == 0 {
		h.logger.Warn("No flashcards generated by LLM")

		c.JSON(http.StatusOK, model.GenerateFlashcardsResponse{
			Status:  model.StatusFailed,
			Cards:   []anki.Note{},
			Message: "No flashcards were generated",
		})
		return
	}

	// 写入Anki，页面标题作为牌组名
	publishResult := h.flashcardService.Publish(c.Request.Context(), req.PageName, notes)
	if publishResult.Status != services.PublishStatusAdded {
		c.JSON(http.StatusOK, model.GenerateFlashcardsResponse{
			Status:  model.StatusFailed,
			Cards:   notes,
			Message: fmt.Sprintf("Generated cards but failed to add to Anki: %s", publishResult.Message),
		})
		return
	}

	c.JSON(http.StatusOK, model.GenerateFlashcardsResponse{
		Status:  model.StatusCreated,
		Cards:   notes,
		Message: fmt.Sprintf("Created %d flashcards for '%s' in Anki", len(notes), req.PageName),
	})
}

// AddFlashcard 通过Anki图形界面添加单张闪卡
// POST /api/tools/add_flashcard
func (h *FlashcardHandler) AddFlashcard(c *gin.Context) {
	// 绑定请求参数
	var req model.AddFlashcardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Warn("Invalid add flashcard request")

		c.JSON(http.StatusOK, model.AddFlashcardResponse{
			Status:  model.StatusError,
			Message: "Invalid request body.",
		})
		return
	}

	// 牌组名和卡片正反面都不能为空
	if strings.TrimSpace(req.DeckName) == "" || strings.TrimSpace(req.Front) == "" || strings.TrimSpace(req.Back) == "" {
		h.logger.Warn("Missing required fields in add flashcard request")

		c.JSON(http.StatusOK, model.AddFlashcardResponse{
			Status:  model.StatusError,
			Message: "Deck name, front and back are all required.",
		})
		return
	}

	// 调用添加服务
	noteID, err := h.flashcardService.AddCard(c.Request.Context(), req.DeckName, req.Front, req.Back)
	if err != nil {
		h.logger.WithFields(logrus.Fields{
			"error":     err.Error(),
			"deck_name": req.DeckName,
		}).Error("Failed to add flashcard")

		c.JSON(http.StatusOK, model.AddFlashcardResponse{
			Status:  model.StatusError,
			Message: fmt.Sprintf("Failed to add flashcard: %v", err),
		})
		return
	}

	c.JSON(http.StatusOK, model.AddFlashcardResponse{
		Status:  model.StatusAdded,
		Result:  &noteID,
		Message: fmt.Sprintf("Added flashcard to Anki deck '%s'", req.DeckName),
	})
}
