package model

import (
	"github.com/mirrorfish/notion-anki-bridge/internal/anki"
	"github.com/mirrorfish/notion-anki-bridge/internal/notion"
)

// 工具响应状态常量
// 状态承载在响应体内，所有工具端点统一返回HTTP 200
const (
	StatusSuccess = "success" // 操作成功
	StatusError   = "error"   // 输入无效、目标不存在或上游调用失败
	StatusCreated = "created" // 闪卡已生成并写入Anki
	StatusFailed  = "failed"  // 闪卡生成或写入未完成
	StatusAdded   = "added"   // 单张闪卡已添加
)

// PageResult 页面定位结果
type PageResult struct {
	Result string `json:"result"`  // 固定为Found
	PageID string `json:"page_id"` // 页面ID
	Link   string `json:"link"`    // 页面链接
}

// NewPageResult 从页面引用构造定位结果
func NewPageResult(ref *notion.PageRef) *PageResult {
	return &PageResult{
		Result: "Found",
		PageID: ref.ID,
		Link:   ref.URL,
	}
}

// DatabaseResult 数据库定位结果
type DatabaseResult struct {
	Result     string `json:"result"`      // 固定为Found
	DatabaseID string `json:"database_id"` // 数据库ID
	Link       string `json:"link"`        // 数据库链接
}

// NewDatabaseResult 从数据库引用构造定位结果
func NewDatabaseResult(ref *notion.DatabaseRef) *DatabaseResult {
	return &DatabaseResult{
		Result:     "Found",
		DatabaseID: ref.ID,
		Link:       ref.URL,
	}
}

// SearchPageResponse 页面搜索响应
// 搜索成功时没有message，校验失败时没有page_name
type SearchPageResponse struct {
	Status   string      `json:"status"`              // success或error
	PageName string      `json:"page_name,omitempty"` // 回显的页面标题
	Result   *PageResult `json:"result,omitempty"`    // 定位结果，仅成功时存在
	Message  string      `json:"message,omitempty"`   // 错误说明
}

// SearchDatabaseResponse 数据库搜索响应
type SearchDatabaseResponse struct {
	Status       string          `json:"status"`                  // success或error
	DatabaseName string          `json:"database_name,omitempty"` // 回显的数据库标题
	Result       *DatabaseResult `json:"result,omitempty"`        // 定位结果，仅成功时存在
	Message      string          `json:"message,omitempty"`       // 错误说明
}

// ExtractPageContentResponse 页面内容提取响应
// topics和content在所有分支中都存在，失败时为空集合
type ExtractPageContentResponse struct {
	Status  string            `json:"status"`  // success或error
	Topics  []string          `json:"topics"`  // 页面主题列表
	Content map[string]string `json:"content"` // 问答对集合
	Message string            `json:"message"` // 结果说明
}

// GenerateFlashcardsResponse 闪卡生成响应
// 写入Anki失败时cards仍携带已生成的闪卡，便于调用方重试
type GenerateFlashcardsResponse struct {
	Status  string      `json:"status"`  // created或failed
	Cards   []anki.Note `json:"cards"`   // 生成的闪卡列表
	Message string      `json:"message"` // 结果说明
}

// AddFlashcardResponse 单张闪卡添加响应
type AddFlashcardResponse struct {
	Status  string `json:"status"`            // added或error
	Result  *int64 `json:"result,omitempty"`  // AnkiConnect返回的笔记ID
	Message string `json:"message,omitempty"` // 结果说明
}

// ErrorResponse 中间件层使用的通用错误响应
type ErrorResponse struct {
	Status  string `json:"status"`             // 固定为error
	Message string `json:"message"`            // 错误说明
	TraceID string `json:"trace_id,omitempty"` // 调用链追踪ID
}

// NewErrorResponse 创建通用错误响应
func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{
		Status:  StatusError,
		Message: message,
	}
}
