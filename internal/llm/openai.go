package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// OpenAI聊天补全API端点
	defaultOpenAIEndpoint = "https://api.openai.com/v1/chat/completions"
)

// OpenAIClient OpenAI兼容的大模型客户端实现
// 任何兼容chat/completions协议的服务（OpenAI、DeepSeek、本地vLLM等）均可使用
type OpenAIClient struct {
	apiKey      string       // API密钥
	baseURL     string       // API端点
	model       string       // 模型名称
	httpClient  *http.Client // HTTP客户端
	maxTokens   int          // 最大生成Token数
	temperature float32      // 温度参数
	topP        float32      // topP参数
}

// NewOpenAIClient 创建新的OpenAI兼容客户端
func NewOpenAIClient(opts ...Option) (Client, error) {
	// 创建配置
	cfg := NewConfig(opts...)

	// 验证API密钥
	if cfg.APIKey == "" {
		return nil, NewLLMError(ErrCodeInvalidAPIKey, ErrMsgInvalidAPIKey)
	}

	// 确定API端点
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenAIEndpoint
	}

	// 创建HTTP客户端，设置超时
	httpClient := &http.Client{
		Timeout: cfg.Timeout,
	}

	client := &OpenAIClient{
		apiKey:      cfg.APIKey,
		baseURL:     baseURL,
		model:       cfg.Model,
		httpClient:  httpClient,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		topP:        cfg.TopP,
	}

	return client, nil
}

// Name 返回模型名称
func (c *OpenAIClient) Name() string {
	return c.model
}

// Generate 根据提示词生成回答
func (c *OpenAIClient) Generate(ctx context.Context, prompt string, options ...GenerateOption) (*Response, error) {
	if prompt == "" {
		return nil, NewLLMError(ErrCodeEmptyPrompt, ErrMsgEmptyPrompt)
	}

	// 将单个提示转换为消息格式进行调用
	messages := []Message{
		{
			Role:    RoleUser,
			Content: prompt,
		},
	}

	// 转换GenerateOptions为ChatOptions
	var chatOpts []ChatOption
	opts := &GenerateOptions{}
	for _, opt := range options {
		opt(opts)
	}

	if opts.MaxTokens != nil {
		chatOpts = append(chatOpts, WithChatMaxTokens(*opts.MaxTokens))
	}
	if opts.Temperature != nil {
		chatOpts = append(chatOpts, WithChatTemperature(*opts.Temperature))
	}
	if opts.TopP != nil {
		chatOpts = append(chatOpts, WithChatTopP(*opts.TopP))
	}

	// 复用Chat方法
	return c.Chat(ctx, messages, chatOpts...)
}

// Chat 进行多轮对话
func (c *OpenAIClient) Chat(ctx context.Context, messages []Message, options ...ChatOption) (*Response, error) {
	if len(messages) == 0 {
		return nil, NewLLMError(ErrCodeInvalidRequest, "messages cannot be empty")
	}

	// 应用选项
	opts := &ChatOptions{}
	for _, opt := range options {
		opt(opts)
	}

	// 准备请求参数
	req := &ChatRequest{
		Model:    c.model,
		Messages: messages,
	}

	// 如果提供了选项，则使用；否则回退到客户端配置
	if opts.MaxTokens != nil {
		req.MaxTokens = opts.MaxTokens
	} else if c.maxTokens > 0 {
		maxTokens := c.maxTokens
		req.MaxTokens = &maxTokens
	}

	if opts.Temperature != nil {
		req.Temperature = opts.Temperature
	} else if c.temperature > 0 {
		temp := c.temperature
		req.Temperature = &temp
	}

	if opts.TopP != nil {
		req.TopP = opts.TopP
	} else if c.topP > 0 {
		topP := c.topP
		req.TopP = &topP
	}

	// 发送请求
	resp, err := c.sendRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	// 解析响应
	return c.processResponse(resp)
}

// sendRequest 发送API请求并解析响应
// 不做重试：调用失败直接上抛，由调用方决定整体操作是否失败
func (c *OpenAIClient) sendRequest(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	// 将请求数据转换为JSON
	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, NewLLMError(ErrCodeInvalidRequest, fmt.Sprintf("failed to marshal request: %v", err))
	}

	// 创建HTTP请求
	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL,
		bytes.NewBuffer(jsonData),
	)
	if err != nil {
		return nil, NewLLMError(ErrCodeInvalidRequest, fmt.Sprintf("failed to create request: %v", err))
	}

	// 设置请求头
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, NewLLMError(ErrCodeTimeout, ctx.Err().Error())
		}
		return nil, NewLLMError(ErrCodeNetworkError, fmt.Sprintf("request failed: %v", err))
	}
	defer resp.Body.Close()

	// 读取响应体
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewLLMError(ErrCodeServerError, fmt.Sprintf("failed to read response: %v", err))
	}

	// 检查HTTP状态码
	if resp.StatusCode != http.StatusOK {
		code := ErrCodeServerError
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			code = ErrCodeInvalidAPIKey
		case http.StatusTooManyRequests:
			code = ErrCodeRateLimited
		}

		// 尝试解析错误响应
		var errResp struct {
			Error *APIError `json:"error"`
		}
		if jsonErr := json.Unmarshal(body, &errResp); jsonErr == nil && errResp.Error != nil {
			return nil, NewLLMError(code,
				fmt.Sprintf("API error: %s (%s)", errResp.Error.Message, errResp.Error.Type))
		}

		// 如果无法解析，返回原始错误
		return nil, NewLLMError(code,
			fmt.Sprintf("API error (status %d): %s", resp.StatusCode, string(body)))
	}

	// 解析JSON响应
	var chatResp ChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return nil, NewLLMError(ErrCodeServerError,
			fmt.Sprintf("failed to parse response: %v", err))
	}

	// 检查API返回的错误
	if chatResp.Error != nil {
		return nil, NewLLMError(ErrCodeServerError,
			fmt.Sprintf("API error: %s (%s)", chatResp.Error.Message, chatResp.Error.Type))
	}

	return &chatResp, nil
}

// processResponse 处理聊天补全响应
func (c *OpenAIClient) processResponse(resp *ChatResponse) (*Response, error) {
	if len(resp.Choices) == 0 {
		return nil, NewLLMError(ErrCodeServerError, "empty response from API")
	}

	choice := resp.Choices[0]
	result := &Response{
		Text:       choice.Message.Content,
		Messages:   []Message{choice.Message},
		ModelName:  c.model,
		TokenCount: resp.Usage.TotalTokens,
		FinishTime: time.Now(),
	}

	return result, nil
}

// 在包初始化时注册OpenAI客户端
func init() {
	RegisterClient("openai", NewOpenAIClient)
}
