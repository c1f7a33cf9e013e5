package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// Notion API基础地址
	defaultBaseURL = "https://api.notion.com/v1"
	// Notion API版本头的值
	APIVersion = "2022-06-28"
)

// Client Notion文档服务客户端接口
type Client interface {
	// SearchPages 按标题关键词搜索页面
	SearchPages(ctx context.Context, query string) ([]Page, error)

	// SearchDatabases 按标题关键词搜索数据库
	SearchDatabases(ctx context.Context, query string) ([]Database, error)

	// ListBlockChildren 列出块的直接子块（页面也是块）
	ListBlockChildren(ctx context.Context, blockID string) ([]Block, error)
}

// Config 客户端配置
type Config struct {
	APIKey  string         // API密钥（必填）
	BaseURL string         // API基础地址
	Version string         // API版本头
	Timeout time.Duration  // 请求超时时间
	Logger  *logrus.Logger // 日志记录器
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		BaseURL: defaultBaseURL,
		Version: APIVersion,
		Timeout: 30 * time.Second,
	}
}

// Option 客户端配置选项函数类型
type Option func(*Config)

// WithAPIKey 设置API密钥
func WithAPIKey(apiKey string) Option {
	return func(c *Config) {
		c.APIKey = apiKey
	}
}

// WithBaseURL 设置API基础地址
func WithBaseURL(url string) Option {
	return func(c *Config) {
		c.BaseURL = url
	}
}

// WithVersion 设置API版本头
func WithVersion(version string) Option {
	return func(c *Config) {
		c.Version = version
	}
}

// WithTimeout 设置请求超时时间
func WithTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.Timeout = timeout
	}
}

// WithLogger 设置日志记录器
func WithLogger(logger *logrus.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// HTTPClient 基于HTTP的Notion客户端实现
type HTTPClient struct {
	apiKey     string
	baseURL    string
	version    string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewHTTPClient 创建新的Notion客户端
// API密钥缺失是致命错误：文档服务是整条流水线的入口
func NewHTTPClient(opts ...Option) (Client, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("notion API key is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logrus.New()
	}

	client := &HTTPClient{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		version: cfg.Version,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}

	return client, nil
}

// SearchPages 按标题关键词搜索页面
func (c *HTTPClient) SearchPages(ctx context.Context, query string) ([]Page, error) {
	req := &searchRequest{
		Query: query,
		Filter: &searchFilter{
			Property: "object",
			Value:    "page",
		},
	}

	var resp pageSearchResponse
	if err := c.post(ctx, "/search", req, &resp); err != nil {
		return nil, err
	}

	return resp.Results, nil
}

// SearchDatabases 按标题关键词搜索数据库
func (c *HTTPClient) SearchDatabases(ctx context.Context, query string) ([]Database, error) {
	req := &searchRequest{
		Query: query,
		Filter: &searchFilter{
			Property: "object",
			Value:    "database",
		},
	}

	var resp databaseSearchResponse
	if err := c.post(ctx, "/search", req, &resp); err != nil {
		return nil, err
	}

	return resp.Results, nil
}

// ListBlockChildren 列出块的直接子块
// 逐块解码，畸形块记录警告后跳过，不中断整个列表
func (c *HTTPClient) ListBlockChildren(ctx context.Context, blockID string) ([]Block, error) {
	var resp blockChildrenResponse
	if err := c.get(ctx, "/blocks/"+blockID+"/children", &resp); err != nil {
		return nil, err
	}

	blocks := make([]Block, 0, len(resp.Results))
	for _, raw := range resp.Results {
		block, err := decodeBlock(raw)
		if err != nil {
			c.logger.WithFields(logrus.Fields{
				"block_id": blockID,
				"error":    err.Error(),
			}).Warn("Skipping malformed block")
			continue
		}
		blocks = append(blocks, block)
	}

	return blocks, nil
}

// post 发送POST请求并解析响应
func (c *HTTPClient) post(ctx context.Context, path string, body interface{}, out interface{}) error {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	return c.do(req, out)
}

// get 发送GET请求并解析响应
func (c *HTTPClient) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	return c.do(req, out)
}

// do 执行HTTP请求，处理认证头和错误响应
// 不做重试：失败直接上抛，由调用方决定整体操作是否失败
func (c *HTTPClient) do(req *http.Request, out interface{}) error {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Notion-Version", c.version)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("notion request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read notion response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		// Notion错误响应格式: {"object":"error","status":400,"code":"...","message":"..."}
		var apiErr struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if jsonErr := json.Unmarshal(body, &apiErr); jsonErr == nil && apiErr.Message != "" {
			return fmt.Errorf("notion API error: %s (%s)", apiErr.Message, apiErr.Code)
		}
		return fmt.Errorf("notion API error (status %d): %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse notion response: %w", err)
	}

	return nil
}
