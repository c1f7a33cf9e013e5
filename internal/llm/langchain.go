package llm

import (
	"context"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
)

// LangChainClient 基于langchaingo的大模型客户端实现
// 适用于OpenRouter、Ollama等OpenAI兼容网关，通过BaseURL切换
type LangChainClient struct {
	llm         *openai.LLM // langchaingo客户端
	model       string      // 模型名称
	maxTokens   int         // 最大生成Token数
	temperature float32     // 温度参数
	topP        float32     // topP参数
	timeout     time.Duration
}

// NewLangChainClient 创建新的langchaingo客户端
func NewLangChainClient(opts ...Option) (Client, error) {
	cfg := NewConfig(opts...)

	// 验证API密钥
	if cfg.APIKey == "" {
		return nil, NewLLMError(ErrCodeInvalidAPIKey, ErrMsgInvalidAPIKey)
	}

	// 构建langchaingo选项
	llmOpts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
	}

	// BaseURL仅在指向非官方端点时传入
	// 注意：langchaingo期望的是基础URL（如http://localhost:11434/v1），不含chat/completions路径
	if cfg.BaseURL != "" && cfg.BaseURL != defaultOpenAIEndpoint {
		llmOpts = append(llmOpts, openai.WithBaseURL(cfg.BaseURL))
	}

	llm, err := openai.New(llmOpts...)
	if err != nil {
		return nil, WrapError(err, ErrCodeInvalidRequest)
	}

	client := &LangChainClient{
		llm:         llm,
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		topP:        cfg.TopP,
		timeout:     cfg.Timeout,
	}

	return client, nil
}

// Name 返回模型名称
func (c *LangChainClient) Name() string {
	return c.model
}

// Generate 根据提示词生成回答
func (c *LangChainClient) Generate(ctx context.Context, prompt string, options ...GenerateOption) (*Response, error) {
	if prompt == "" {
		return nil, NewLLMError(ErrCodeEmptyPrompt, ErrMsgEmptyPrompt)
	}

	opts := &GenerateOptions{}
	for _, opt := range options {
		opt(opts)
	}

	text, err := llms.GenerateFromSinglePrompt(ctx, c.llm, prompt, c.callOptions(opts.MaxTokens, opts.Temperature, opts.TopP)...)
	if err != nil {
		return nil, WrapError(err, ErrCodeServerError)
	}

	return &Response{
		Text:       text,
		ModelName:  c.model,
		FinishTime: time.Now(),
	}, nil
}

// Chat 进行多轮对话
func (c *LangChainClient) Chat(ctx context.Context, messages []Message, options ...ChatOption) (*Response, error) {
	if len(messages) == 0 {
		return nil, NewLLMError(ErrCodeInvalidRequest, "messages cannot be empty")
	}

	opts := &ChatOptions{}
	for _, opt := range options {
		opt(opts)
	}

	// 转换为langchaingo的消息格式
	content := make([]llms.MessageContent, 0, len(messages))
	for _, msg := range messages {
		content = append(content, llms.MessageContent{
			Role:  chatMessageType(msg.Role),
			Parts: []llms.ContentPart{llms.TextContent{Text: msg.Content}},
		})
	}

	resp, err := c.llm.GenerateContent(ctx, content, c.callOptions(opts.MaxTokens, opts.Temperature, opts.TopP)...)
	if err != nil {
		return nil, WrapError(err, ErrCodeServerError)
	}

	if len(resp.Choices) == 0 {
		return nil, NewLLMError(ErrCodeServerError, "empty response from API")
	}

	text := resp.Choices[0].Content
	result := &Response{
		Text: text,
		Messages: []Message{
			{Role: RoleAssistant, Content: text},
		},
		ModelName:  c.model,
		FinishTime: time.Now(),
	}

	return result, nil
}

// callOptions 将请求选项转换为langchaingo的调用选项
// 未显式提供时回退到客户端配置
func (c *LangChainClient) callOptions(maxTokens *int, temperature *float32, topP *float32) []llms.CallOption {
	var callOpts []llms.CallOption

	if maxTokens != nil {
		callOpts = append(callOpts, llms.WithMaxTokens(*maxTokens))
	} else if c.maxTokens > 0 {
		callOpts = append(callOpts, llms.WithMaxTokens(c.maxTokens))
	}

	if temperature != nil {
		callOpts = append(callOpts, llms.WithTemperature(float64(*temperature)))
	} else if c.temperature > 0 {
		callOpts = append(callOpts, llms.WithTemperature(float64(c.temperature)))
	}

	if topP != nil {
		callOpts = append(callOpts, llms.WithTopP(float64(*topP)))
	} else if c.topP > 0 {
		callOpts = append(callOpts, llms.WithTopP(float64(c.topP)))
	}

	return callOpts
}

// chatMessageType 将内部角色映射为langchaingo的消息类型
func chatMessageType(role MessageRole) schema.ChatMessageType {
	switch role {
	case RoleSystem:
		return schema.ChatMessageTypeSystem
	case RoleAssistant:
		return schema.ChatMessageTypeAI
	default:
		return schema.ChatMessageTypeHuman
	}
}

// 在包初始化时注册langchaingo客户端
func init() {
	RegisterClient("langchain", NewLangChainClient)
}
