package services

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/mirrorfish/notion-anki-bridge/internal/anki"
	"github.com/mirrorfish/notion-anki-bridge/internal/llm"
	"github.com/mirrorfish/notion-anki-bridge/internal/metrics"
	"github.com/mirrorfish/notion-anki-bridge/internal/notion"
)

// 发布操作的聚合状态
const (
	PublishStatusAdded = "added"
	PublishStatusError = "error"
)

// PublishResult 批量发布的聚合结果
// Result逐条对应提交的笔记，重复或被拒的位置为nil
type PublishResult struct {
	Status  string   `json:"status"`  // added或error
	Result  []*int64 `json:"result"`  // 逐条笔记ID
	Message string   `json:"message"` // 人类可读的结果描述
}

// FlashcardService 闪卡流水线服务
// 串联页面定位、内容提取、卡片生成和发布四个阶段，
// 每个阶段都是一次阻塞的外部调用，失败即整体失败，不做重试
type FlashcardService struct {
	notion    notion.Client    // 文档服务客户端
	walker    *notion.Walker   // 内容块遍历器
	generator *llm.Generator   // 卡片生成器
	anki      anki.Client      // 闪卡服务客户端
	logger    *logrus.Logger   // 日志记录器
	metrics   *metrics.Metrics // 指标收集器
}

// FlashcardOption 闪卡服务配置选项
type FlashcardOption func(*FlashcardService)

// NewFlashcardService 创建闪卡流水线服务实例
func NewFlashcardService(
	notionClient notion.Client,
	generator *llm.Generator,
	ankiClient anki.Client,
	opts ...FlashcardOption,
) *FlashcardService {
	service := &FlashcardService{
		notion:    notionClient,
		generator: generator,
		anki:      ankiClient,
		logger:    logrus.New(),
	}

	// 应用配置选项
	for _, opt := range opts {
		opt(service)
	}

	// 遍历器和默认指标在选项之后构造，以便使用最终的日志记录器
	service.walker = notion.NewWalker(notionClient, service.logger)
	if service.metrics == nil {
		service.metrics = metrics.NewMetrics(prometheus.NewRegistry())
	}

	return service
}

// WithFlashcardLogger 设置日志记录器
func WithFlashcardLogger(logger *logrus.Logger) FlashcardOption {
	return func(s *FlashcardService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithFlashcardMetrics 设置指标收集器
func WithFlashcardMetrics(m *metrics.Metrics) FlashcardOption {
	return func(s *FlashcardService) {
		s.metrics = m
	}
}

// FindPage 按标题精确查找页面
// 未命中返回nil而不是错误，由调用方区分未找到和查找失败
func (s *FlashcardService) FindPage(ctx context.Context, pageName string) (*notion.PageRef, error) {
	ref, err := notion.FindPage(ctx, s.notion, pageName)
	if err != nil {
		s.metrics.RecordPageSearch("error")
		return nil, err
	}

	if ref == nil {
		s.logger.WithField("page_name", pageName).Warn("Page not found")
		s.metrics.RecordPageSearch("not_found")
		return nil, nil
	}

	s.logger.WithFields(logrus.Fields{
		"page_name": pageName,
		"page_id":   ref.ID,
	}).Info("Found page")
	s.metrics.RecordPageSearch("found")

	return ref, nil
}

// FindDatabase 按标题精确查找数据库
func (s *FlashcardService) FindDatabase(ctx context.Context, name string) (*notion.DatabaseRef, error) {
	ref, err := notion.FindDatabase(ctx, s.notion, name)
	if err != nil {
		return nil, err
	}

	if ref == nil {
		s.logger.WithField("database_name", name).Warn("Database not found")
		return nil, nil
	}

	s.logger.WithFields(logrus.Fields{
		"database_name": name,
		"database_id":   ref.ID,
	}).Info("Found database")

	return ref, nil
}

// ExtractContent 提取页面的主题列表和问答映射
func (s *FlashcardService) ExtractContent(ctx context.Context, pageID string) ([]string, map[string]string, error) {
	topics, content, err := s.walker.AnalyzePage(ctx, pageID)
	if err != nil {
		s.metrics.RecordExtraction("error", 0, 0)
		return nil, nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"page_id":  pageID,
		"topics":   len(topics),
		"qa_pairs": len(content),
	}).Info("Extracted page content")
	s.metrics.RecordExtraction("success", len(topics), len(content))

	return topics, content, nil
}

// GenerateNotes 通过一次大模型调用生成闪卡笔记
// 生成的卡片以页面名为目标牌组包装成笔记；
// 模型没有产出可用卡片时返回空序列而不是错误
func (s *FlashcardService) GenerateNotes(ctx context.Context, pageName string, topics []string, content map[string]string) ([]anki.Note, error) {
	start := time.Now()
	cards, err := s.generator.GenerateCards(ctx, pageName, topics, content)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordGeneration(len(cards), time.Since(start))

	notes := make([]anki.Note, 0, len(cards))
	for _, card := range cards {
		notes = append(notes, anki.NewBasicNote(pageName, card.Front, card.Back))
	}

	s.logger.WithFields(logrus.Fields{
		"page_name": pageName,
		"cards":     len(notes),
	}).Info("Generated flashcards")

	return notes, nil
}

// Publish 把笔记批量发布到指定牌组
// 依次执行建组、批量提交和尽力而为的同步；同步失败只记录，
// 不影响发布结果；建组或提交失败折叠为error状态而不是上抛
func (s *FlashcardService) Publish(ctx context.Context, deckName string, notes []anki.Note) *PublishResult {
	// 1. 确保牌组存在
	s.logger.WithField("deck", deckName).Info("Creating deck")
	if _, err := s.anki.CreateDeck(ctx, deckName); err != nil {
		s.logger.WithError(err).Error("Failed to add flashcards to Anki")
		return &PublishResult{
			Status:  PublishStatusError,
			Result:  []*int64{},
			Message: fmt.Sprintf("Failed to add flashcards: %v", err),
		}
	}

	// 2. 批量提交笔记
	s.logger.WithField("count", len(notes)).Info("Adding notes to deck")
	result, err := s.anki.AddNotes(ctx, notes)
	if err != nil {
		s.logger.WithError(err).Error("Failed to add flashcards to Anki")
		return &PublishResult{
			Status:  PublishStatusError,
			Result:  []*int64{},
			Message: fmt.Sprintf("Failed to add flashcards: %v", err),
		}
	}

	added := 0
	for _, id := range result {
		if id != nil {
			added++
		}
	}
	s.metrics.RecordPublish(added, len(result)-added)

	// 3. 尽力而为的同步，失败不影响发布结果
	s.logger.Info("Syncing Anki decks")
	if err := s.anki.Sync(ctx); err != nil {
		s.logger.WithError(err).Warn("Anki sync failed")
		s.metrics.RecordSyncFailure()
	}

	s.logger.WithFields(logrus.Fields{
		"deck":  deckName,
		"count": len(notes),
	}).Info("Flashcards added to Anki deck")

	return &PublishResult{
		Status:  PublishStatusAdded,
		Result:  result,
		Message: fmt.Sprintf("Added %d flashcards to Anki deck '%s'", len(notes), deckName),
	}
}

// AddCard 通过Anki图形界面向已有牌组添加单张卡片
func (s *FlashcardService) AddCard(ctx context.Context, deck, front, back string) (int64, error) {
	noteID, err := s.anki.AddCard(ctx, deck, front, back)
	if err != nil {
		return 0, err
	}

	s.logger.WithFields(logrus.Fields{
		"deck":    deck,
		"note_id": noteID,
	}).Info("Added single card")

	return noteID, nil
}

// CheckAnkiConnection 启动自检，确认AnkiConnect可达
func (s *FlashcardService) CheckAnkiConnection(ctx context.Context) (int, error) {
	version, err := s.anki.Version(ctx)
	if err != nil {
		return 0, fmt.Errorf("anki connection check failed: %w", err)
	}
	return version, nil
}
