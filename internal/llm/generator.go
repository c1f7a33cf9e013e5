package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"
)

// DefaultCardTemplate 默认闪卡生成提示词模板
// 包含变量：
// {{.PageName}} - 页面名称
// {{.Topics}} - 主题列表
// {{.Content}} - 问答内容
const DefaultCardTemplate = `You are a flashcard author. Create spaced-repetition flashcards from the study notes below.

Page: {{.PageName}}
Topics: {{.Topics}}

Question and answer material:
{{.Content}}

Rules:
- Each flashcard has a "front" (question) and a "back" (answer).
- Keep the front short and specific; put the full answer on the back.
- Cover all of the question/answer material above.
- Respond with ONLY a JSON array of objects, each with "front" and "back" string fields. No prose, no markdown.`

// ConciseCardTemplate 精简模式提示词模板
// 要求模型合并相近问答，生成更少但更概括的卡片
const ConciseCardTemplate = `You are a flashcard author. Create a MINIMAL set of spaced-repetition flashcards from the study notes below, merging closely related questions into single cards.

Page: {{.PageName}}
Topics: {{.Topics}}

Question and answer material:
{{.Content}}

Respond with ONLY a JSON array of objects, each with "front" and "back" string fields. No prose, no markdown.`

// 匹配```json ... ```形式的代码块包装
var codeBlockRe = regexp.MustCompile("(?s)^```(?:json)?\\s*(.*?)\\s*```$")

// GeneratorConfig 闪卡生成配置
type GeneratorConfig struct {
	// 提示词模板
	Template string
	// 最大Token数
	MaxTokens int
	// 温度参数
	Temperature float32
	// 超时时间
	Timeout time.Duration
}

// DefaultGeneratorConfig 默认闪卡生成配置
func DefaultGeneratorConfig() *GeneratorConfig {
	return &GeneratorConfig{
		Template:    DefaultCardTemplate,
		MaxTokens:   2048,
		Temperature: 0.7,
		Timeout:     60 * time.Second,
	}
}

// Generator 实现闪卡内容生成服务
// 对问答内容做一次补全调用，解析并过滤模型返回的卡片列表
type Generator struct {
	Client Client           // 大模型客户端
	config *GeneratorConfig // 配置
	mu     sync.RWMutex     // 配置互斥锁
}

// NewGenerator 创建新的闪卡生成服务
func NewGenerator(client Client, opts ...GeneratorOption) *Generator {
	cfg := DefaultGeneratorConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return &Generator{
		Client: client,
		config: cfg,
	}
}

// GeneratorOption 生成配置选项函数类型
type GeneratorOption func(*GeneratorConfig)

// WithCardTemplate 设置提示词模板
func WithCardTemplate(template string) GeneratorOption {
	return func(c *GeneratorConfig) {
		c.Template = template
	}
}

// WithConciseCards 启用精简卡片模式
func WithConciseCards() GeneratorOption {
	return func(c *GeneratorConfig) {
		c.Template = ConciseCardTemplate
	}
}

// WithGeneratorMaxTokens 设置最大Token数
func WithGeneratorMaxTokens(tokens int) GeneratorOption {
	return func(c *GeneratorConfig) {
		c.MaxTokens = tokens
	}
}

// WithGeneratorTemperature 设置温度参数
func WithGeneratorTemperature(temp float32) GeneratorOption {
	return func(c *GeneratorConfig) {
		c.Temperature = temp
	}
}

// WithGeneratorTimeout 设置请求超时时间
func WithGeneratorTimeout(timeout time.Duration) GeneratorOption {
	return func(c *GeneratorConfig) {
		c.Timeout = timeout
	}
}

// GenerateCards 根据页面问答内容生成闪卡
// 单次补全调用；模型返回不可解析时返回空列表而不报错，由调用方按失败状态处理
func (g *Generator) GenerateCards(ctx context.Context, pageName string, topics []string, content map[string]string) ([]Card, error) {
	if len(content) == 0 {
		return nil, NewLLMError(ErrCodeEmptyPrompt, "content cannot be empty")
	}

	g.mu.RLock()
	cfg := g.config
	g.mu.RUnlock()

	// 创建带超时的上下文
	ctxWithTimeout, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	// 构建提示词
	prompt := g.buildPrompt(pageName, topics, content)

	// 调用大模型生成卡片
	response, err := g.Client.Generate(
		ctxWithTimeout,
		prompt,
		WithGenerateMaxTokens(cfg.MaxTokens),
		WithGenerateTemperature(cfg.Temperature),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to generate flashcards: %v", err)
	}

	return parseCards(response.Text), nil
}

// buildPrompt 构建闪卡生成提示词
func (g *Generator) buildPrompt(pageName string, topics []string, content map[string]string) string {
	g.mu.RLock()
	template := g.config.Template
	g.mu.RUnlock()

	// 简单的模板替换
	prompt := template
	prompt = strings.ReplaceAll(prompt, "{{.PageName}}", pageName)
	prompt = strings.ReplaceAll(prompt, "{{.Topics}}", strings.Join(topics, ", "))
	prompt = strings.ReplaceAll(prompt, "{{.Content}}", formatContent(content))

	return prompt
}

// SetTemplate 设置自定义提示词模板
func (g *Generator) SetTemplate(template string) *Generator {
	g.mu.Lock()
	g.config.Template = template
	g.mu.Unlock()
	return g
}

// formatContent 格式化问答内容
// 按问题排序，保证同样的输入生成同样的提示词
func formatContent(content map[string]string) string {
	questions := make([]string, 0, len(content))
	for question := range content {
		questions = append(questions, question)
	}
	sort.Strings(questions)

	var formatted strings.Builder
	for _, question := range questions {
		fmt.Fprintf(&formatted, "Q: %s\nA: %s\n\n", question, content[question])
	}
	return formatted.String()
}

// stripCodeBlock 去掉模型返回中可能包裹的markdown代码块标记
func stripCodeBlock(s string) string {
	s = strings.TrimSpace(s)
	if m := codeBlockRe.FindStringSubmatch(s); len(m) == 2 {
		return m[1]
	}
	return s
}

// parseCards 解析模型返回的卡片JSON
// 兼容裸数组和{"cards": [...]}两种格式；正反面去空白后为空的卡片会被丢弃
func parseCards(text string) []Card {
	raw := stripCodeBlock(text)

	var cards []Card
	if err := json.Unmarshal([]byte(raw), &cards); err != nil {
		var wrapped cardList
		if err := json.Unmarshal([]byte(raw), &wrapped); err != nil {
			return nil
		}
		cards = wrapped.Cards
	}

	result := make([]Card, 0, len(cards))
	for _, card := range cards {
		if strings.TrimSpace(card.Front) == "" || strings.TrimSpace(card.Back) == "" {
			continue
		}
		result = append(result, card)
	}
	return result
}
