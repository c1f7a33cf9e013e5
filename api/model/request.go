package model

// 工具请求参数不使用binding校验标签
// 工具约定要求校验失败以响应体内的状态表达，而不是HTTP错误码

// SearchPageRequest 页面搜索请求
type SearchPageRequest struct {
	PageName string `json:"page_name"` // 页面标题，精确匹配
}

// SearchDatabaseRequest 数据库搜索请求
type SearchDatabaseRequest struct {
	DatabaseName string `json:"database_name"` // 数据库标题，精确匹配
}

// ExtractPageContentRequest 页面内容提取请求
type ExtractPageContentRequest struct {
	PageID string `json:"page_id"` // Notion页面ID
}

// GenerateFlashcardsRequest 闪卡生成请求
// topics和content通常来自此前extract_page_content的结果
type GenerateFlashcardsRequest struct {
	PageName string            `json:"page_name"` // 页面标题，同时作为Anki牌组名
	Topics   []string          `json:"topics"`    // 页面主题列表
	Content  map[string]string `json:"content"`   // 问答对，问题到答案的映射
}

// AddFlashcardRequest 单张闪卡添加请求
type AddFlashcardRequest struct {
	DeckName string `json:"deck_name"` // 目标牌组名
	Front    string `json:"front"`     // 卡片正面
	Back     string `json:"back"`      // 卡片背面
}
