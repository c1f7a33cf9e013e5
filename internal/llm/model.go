package llm

import "time"

// MessageRole 消息角色类型
type MessageRole string

const (
	// RoleSystem 系统角色
	RoleSystem MessageRole = "system"
	// RoleUser 用户角色
	RoleUser MessageRole = "user"
	// RoleAssistant 助手角色
	RoleAssistant MessageRole = "assistant"
)

// Message 对话消息结构
type Message struct {
	Role    MessageRole `json:"role"`           // 角色
	Content string      `json:"content"`        // 内容
	Name    string      `json:"name,omitempty"` // 可选名称标识
}

// ChatRequest OpenAI兼容的聊天补全请求结构
type ChatRequest struct {
	Model       string    `json:"model"`                 // 模型名称
	Messages    []Message `json:"messages"`              // 消息列表
	MaxTokens   *int      `json:"max_tokens,omitempty"`  // 最大生成Token数
	Temperature *float32  `json:"temperature,omitempty"` // 采样温度
	TopP        *float32  `json:"top_p,omitempty"`       // 核采样概率阈值
}

// ChatResponse OpenAI兼容的聊天补全响应结构
type ChatResponse struct {
	ID      string       `json:"id"`              // 响应ID
	Object  string       `json:"object"`          // 对象类型
	Model   string       `json:"model"`           // 模型名称
	Choices []ChatChoice `json:"choices"`         // 选择列表
	Usage   ChatUsage    `json:"usage"`           // 资源使用情况
	Error   *APIError    `json:"error,omitempty"` // 错误信息(如果有)
}

// ChatChoice 输出选择
type ChatChoice struct {
	Index        int     `json:"index"`         // 选择索引
	FinishReason string  `json:"finish_reason"` // 结束原因
	Message      Message `json:"message"`       // 消息内容
}

// ChatUsage 资源使用情况
type ChatUsage struct {
	PromptTokens     int `json:"prompt_tokens"`     // 输入token数
	CompletionTokens int `json:"completion_tokens"` // 输出token数
	TotalTokens      int `json:"total_tokens"`      // 总token数
}

// APIError API错误响应体
type APIError struct {
	Message string `json:"message"`        // 错误消息
	Type    string `json:"type"`           // 错误类型
	Code    string `json:"code,omitempty"` // 错误码
}

// Response 统一的响应结构
type Response struct {
	Text       string    // 生成的文本
	Messages   []Message // 消息列表（如果是对话）
	TokenCount int       // 使用的token数
	ModelName  string    // 使用的模型名称
	FinishTime time.Time // 完成时间
}

// Card 大模型生成的闪卡内容
// front为卡片正面（问题），back为卡片背面（答案）
type Card struct {
	Front string `json:"front"` // 卡片正面
	Back  string `json:"back"`  // 卡片背面
}

// cardList 带cards包装的响应格式
// 部分模型会返回{"cards": [...]}而不是裸数组
type cardList struct {
	Cards []Card `json:"cards"`
}

// Model 常用模型名称
const (
	ModelGPT4oMini = "gpt-4o-mini"   // GPT-4o mini模型（较快，成本低）
	ModelGPT4o     = "gpt-4o"        // GPT-4o模型（平衡速度和性能）
	ModelGPT4Turbo = "gpt-4-turbo"   // GPT-4 Turbo模型
	ModelGPT35     = "gpt-3.5-turbo" // GPT-3.5 Turbo模型
)
