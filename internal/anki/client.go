package anki

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// DefaultEndpoint AnkiConnect的本地固定地址
	DefaultEndpoint = "http://127.0.0.1:8765"
	// apiVersion AnkiConnect协议版本
	apiVersion = 6
)

// Client AnkiConnect闪卡服务客户端接口
type Client interface {
	// CreateDeck 确保牌组存在，返回牌组ID（已存在时幂等）
	CreateDeck(ctx context.Context, name string) (int64, error)

	// AddNotes 批量提交笔记，逐条返回笔记ID，重复或被拒的位置为nil
	// 结构不完整的笔记在提交前被剔除；没有有效笔记时不发起网络调用
	AddNotes(ctx context.Context, notes []Note) ([]*int64, error)

	// AddCard 通过Anki图形界面添加单张卡片，返回笔记ID
	AddCard(ctx context.Context, deck, front, back string) (int64, error)

	// Sync 触发与AnkiWeb的同步
	Sync(ctx context.Context) error

	// Version 查询AnkiConnect插件版本，用于启动自检
	Version(ctx context.Context) (int, error)
}

// Config 客户端配置
type Config struct {
	Endpoint string         // AnkiConnect地址
	Timeout  time.Duration  // 请求超时时间
	Logger   *logrus.Logger // 日志记录器
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		Endpoint: DefaultEndpoint,
		Timeout:  30 * time.Second,
	}
}

// Option 客户端配置选项函数类型
type Option func(*Config)

// WithEndpoint 设置AnkiConnect地址
func WithEndpoint(endpoint string) Option {
	return func(c *Config) {
		c.Endpoint = endpoint
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

// HTTPClient 基于HTTP的AnkiConnect客户端实现
type HTTPClient struct {
	endpoint   string
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewHTTPClient 创建新的AnkiConnect客户端
func NewHTTPClient(opts ...Option) Client {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logrus.New()
	}

	return &HTTPClient{
		endpoint: cfg.Endpoint,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// CreateDeck 确保牌组存在，返回牌组ID
func (c *HTTPClient) CreateDeck(ctx context.Context, name string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fmt.Errorf("deck name cannot be empty")
	}

	c.logger.WithField("deck", name).Info("Ensuring Anki deck exists")

	var deckID int64
	if err := c.invoke(ctx, "createDeck", createDeckParams{Deck: name}, &deckID); err != nil {
		return 0, fmt.Errorf("failed to create deck '%s': %w", name, err)
	}

	return deckID, nil
}

// AddNotes 批量提交笔记
// 先做结构校验剔除无效笔记，全部无效时直接返回空结果
func (c *HTTPClient) AddNotes(ctx context.Context, notes []Note) ([]*int64, error) {
	if len(notes) == 0 {
		c.logger.Warn("No notes provided to AddNotes")
		return []*int64{}, nil
	}

	valid := make([]Note, 0, len(notes))
	for i, note := range notes {
		if err := note.Validate(); err != nil {
			c.logger.WithFields(logrus.Fields{
				"index": i,
				"error": err.Error(),
			}).Warn("Skipping invalid note")
			continue
		}
		valid = append(valid, note)
	}

	if len(valid) == 0 {
		c.logger.Error("No valid notes to add")
		return []*int64{}, nil
	}

	c.logger.WithField("count", len(valid)).Info("Adding notes to Anki")

	var result []*int64
	if err := c.invoke(ctx, "addNotes", addNotesParams{Notes: valid}, &result); err != nil {
		return nil, err
	}

	added := 0
	for _, id := range result {
		if id != nil {
			added++
		}
	}
	c.logger.WithFields(logrus.Fields{
		"added":     added,
		"submitted": len(valid),
	}).Info("Notes added to Anki")

	return result, nil
}

// AddCard 通过Anki图形界面添加单张卡片
func (c *HTTPClient) AddCard(ctx context.Context, deck, front, back string) (int64, error) {
	if strings.TrimSpace(deck) == "" || strings.TrimSpace(front) == "" || strings.TrimSpace(back) == "" {
		return 0, fmt.Errorf("deck name, front and back are all required")
	}

	note := NewBasicNote(deck, strings.TrimSpace(front), strings.TrimSpace(back))

	c.logger.WithField("deck", note.DeckName).Info("Adding single card via Anki GUI")

	var noteID int64
	if err := c.invoke(ctx, "guiAddCards", addCardParams{Note: note}, &noteID); err != nil {
		return 0, err
	}

	return noteID, nil
}

// Sync 触发与AnkiWeb的同步
// 是否容忍同步失败由调用方决定，客户端只如实上报
func (c *HTTPClient) Sync(ctx context.Context) error {
	c.logger.Info("Synchronizing Anki collection")

	if err := c.invoke(ctx, "sync", struct{}{}, nil); err != nil {
		return err
	}

	c.logger.Info("Anki sync completed")
	return nil
}

// Version 查询AnkiConnect插件版本
func (c *HTTPClient) Version(ctx context.Context) (int, error) {
	var version int
	if err := c.invoke(ctx, "version", struct{}{}, &version); err != nil {
		return 0, err
	}
	return version, nil
}

// invoke 执行一次AnkiConnect调用并解析结果
// 响应必须是恰好包含result和error两个字段的对象，否则视为协议异常
func (c *HTTPClient) invoke(ctx context.Context, action string, params interface{}, out interface{}) error {
	payload := connectRequest{
		Action:  action,
		Version: apiVersion,
		Params:  params,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal AnkiConnect request: %w", err)
	}

	c.logger.WithField("action", action).Debug("AnkiConnect request")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WithField("error", err.Error()).Error("Failed to connect to AnkiConnect")
		return fmt.Errorf("cannot connect to Anki, please ensure Anki is running with AnkiConnect installed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read AnkiConnect response: %w", err)
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		c.logger.WithField("error", err.Error()).Error("Invalid JSON response from AnkiConnect")
		return fmt.Errorf("invalid response from AnkiConnect: %w", err)
	}

	if len(envelope) != 2 {
		return fmt.Errorf("invalid AnkiConnect response structure: expected 2 fields, got %d", len(envelope))
	}

	rawError, ok := envelope["error"]
	if !ok {
		return fmt.Errorf("AnkiConnect response missing required error field")
	}
	rawResult, ok := envelope["result"]
	if !ok {
		return fmt.Errorf("AnkiConnect response missing required result field")
	}

	var apiError *string
	if err := json.Unmarshal(rawError, &apiError); err != nil {
		return fmt.Errorf("invalid AnkiConnect error field: %w", err)
	}
	if apiError != nil {
		return fmt.Errorf("AnkiConnect error: %s", *apiError)
	}

	if out != nil {
		if err := json.Unmarshal(rawResult, out); err != nil {
			return fmt.Errorf("failed to parse AnkiConnect result: %w", err)
		}
	}

	return nil
}
