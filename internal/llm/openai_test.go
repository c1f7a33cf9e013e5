package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newChatStubServer 创建返回固定文本的聊天补全桩服务器
func newChatStubServer(t *testing.T, text string, capture *ChatRequest) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 验证请求基本结构
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		if capture != nil {
			err := json.NewDecoder(r.Body).Decode(capture)
			require.NoError(t, err)
		}

		resp := ChatResponse{
			ID:     "chatcmpl-test",
			Object: "chat.completion",
			Model:  "gpt-4o-mini",
			Choices: []ChatChoice{
				{
					Index:        0,
					FinishReason: "stop",
					Message:      Message{Role: RoleAssistant, Content: text},
				},
			},
			Usage: ChatUsage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

// TestOpenAIClientGenerate 测试文本生成的请求与响应处理
func TestOpenAIClientGenerate(t *testing.T) {
	var captured ChatRequest
	server := newChatStubServer(t, "generated text", &captured)
	defer server.Close()

	client, err := NewOpenAIClient(
		WithAPIKey("test-key"),
		WithBaseURL(server.URL),
		WithModel(ModelGPT4oMini),
	)
	require.NoError(t, err)

	ctx := context.Background()
	resp, err := client.Generate(ctx, "test prompt", WithGenerateMaxTokens(64), WithGenerateTemperature(0.3))
	require.NoError(t, err)

	// 验证响应
	assert.Equal(t, "generated text", resp.Text)
	assert.Equal(t, 15, resp.TokenCount)
	assert.Equal(t, ModelGPT4oMini, resp.ModelName)

	// 验证请求体
	assert.Equal(t, ModelGPT4oMini, captured.Model)
	require.Len(t, captured.Messages, 1)
	assert.Equal(t, RoleUser, captured.Messages[0].Role)
	assert.Equal(t, "test prompt", captured.Messages[0].Content)
	require.NotNil(t, captured.MaxTokens)
	assert.Equal(t, 64, *captured.MaxTokens)
	require.NotNil(t, captured.Temperature)
	assert.Equal(t, float32(0.3), *captured.Temperature)
}

// TestOpenAIClientChat 测试多轮对话
func TestOpenAIClientChat(t *testing.T) {
	var captured ChatRequest
	server := newChatStubServer(t, "chat reply", &captured)
	defer server.Close()

	client, err := NewOpenAIClient(
		WithAPIKey("test-key"),
		WithBaseURL(server.URL),
	)
	require.NoError(t, err)

	messages := []Message{
		{Role: RoleSystem, Content: "you are a helper"},
		{Role: RoleUser, Content: "hello"},
	}

	ctx := context.Background()
	resp, err := client.Chat(ctx, messages)
	require.NoError(t, err)

	assert.Equal(t, "chat reply", resp.Text)
	require.Len(t, resp.Messages, 1)
	assert.Equal(t, RoleAssistant, resp.Messages[0].Role)
	assert.Len(t, captured.Messages, 2)

	// 未显式传选项时应回退到客户端默认配置
	require.NotNil(t, captured.MaxTokens)
	assert.Equal(t, DefaultConfig().MaxTokens, *captured.MaxTokens)
}

// TestOpenAIClientEmptyInput 测试空输入校验
func TestOpenAIClientEmptyInput(t *testing.T) {
	client, err := NewOpenAIClient(WithAPIKey("test-key"))
	require.NoError(t, err)

	ctx := context.Background()

	_, err = client.Generate(ctx, "")
	var llmErr LLMError
	assert.ErrorAs(t, err, &llmErr)
	assert.Equal(t, ErrCodeEmptyPrompt, llmErr.Code)

	_, err = client.Chat(ctx, nil)
	assert.ErrorAs(t, err, &llmErr)
	assert.Equal(t, ErrCodeInvalidRequest, llmErr.Code)
}

// TestOpenAIClientMissingAPIKey 测试缺少API密钥时的构造错误
func TestOpenAIClientMissingAPIKey(t *testing.T) {
	_, err := NewOpenAIClient()
	assert.Error(t, err)
	var llmErr LLMError
	assert.ErrorAs(t, err, &llmErr)
	assert.Equal(t, ErrCodeInvalidAPIKey, llmErr.Code)
}

// TestOpenAIClientAPIError 测试API错误响应的错误码映射
func TestOpenAIClientAPIError(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		body       string
		wantCode   int
		wantMsg    string
	}{
		{
			name:       "unauthorized",
			statusCode: http.StatusUnauthorized,
			body:       `{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`,
			wantCode:   ErrCodeInvalidAPIKey,
			wantMsg:    "Incorrect API key provided",
		},
		{
			name:       "rate limited",
			statusCode: http.StatusTooManyRequests,
			body:       `{"error":{"message":"Rate limit reached","type":"rate_limit_error"}}`,
			wantCode:   ErrCodeRateLimited,
			wantMsg:    "Rate limit reached",
		},
		{
			name:       "server error without envelope",
			statusCode: http.StatusInternalServerError,
			body:       `oops`,
			wantCode:   ErrCodeServerError,
			wantMsg:    "status 500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.statusCode)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client, err := NewOpenAIClient(
				WithAPIKey("test-key"),
				WithBaseURL(server.URL),
			)
			require.NoError(t, err)

			_, err = client.Generate(context.Background(), "prompt")
			require.Error(t, err)
			var llmErr LLMError
			require.ErrorAs(t, err, &llmErr)
			assert.Equal(t, tt.wantCode, llmErr.Code)
			assert.Contains(t, llmErr.Message, tt.wantMsg)
		})
	}
}

// TestOpenAIClientEmptyChoices 测试空choices响应
func TestOpenAIClientEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"x","object":"chat.completion","choices":[],"usage":{"total_tokens":1}}`))
	}))
	defer server.Close()

	client, err := NewOpenAIClient(
		WithAPIKey("test-key"),
		WithBaseURL(server.URL),
	)
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty response")
}

// TestOpenAIClientNetworkError 测试网络连接失败
func TestOpenAIClientNetworkError(t *testing.T) {
	// 指向已关闭的服务器地址
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client, err := NewOpenAIClient(
		WithAPIKey("test-key"),
		WithBaseURL(url),
		WithTimeout(2*time.Second),
	)
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), "prompt")
	require.Error(t, err)
	var llmErr LLMError
	require.ErrorAs(t, err, &llmErr)
	assert.Equal(t, ErrCodeNetworkError, llmErr.Code)
}
