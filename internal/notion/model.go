package notion

import "encoding/json"

// RichText 行内富文本片段
type RichText struct {
	Type      string       `json:"type"`                 // 片段类型(text/mention/equation)
	Text      *TextPayload `json:"text,omitempty"`       // text负载，非text片段为nil
	PlainText string       `json:"plain_text,omitempty"` // API提供的纯文本
}

// TextPayload 富文本片段的text负载
type TextPayload struct {
	Content string `json:"content"` // 文本内容
}

// PageProperty 页面属性
// 标题类属性的内容在Title数组中
type PageProperty struct {
	ID    string     `json:"id"`              // 属性ID
	Type  string     `json:"type"`            // 属性类型
	Title []RichText `json:"title,omitempty"` // 标题富文本(仅title类型属性)
}

// Page Notion页面对象
type Page struct {
	Object     string                  `json:"object"`     // 对象类型，固定为page
	ID         string                  `json:"id"`         // 页面ID
	URL        string                  `json:"url"`        // 页面链接
	Properties map[string]PageProperty `json:"properties"` // 页面属性
}

// TitleText 返回页面标题的首个文本片段内容
// 已知两种标题属性形态：属性名为"title"（普通页面）或"Name"（数据库子页面），
// 依次检查，取首个存在且非空的
func (p Page) TitleText() (string, bool) {
	for _, name := range []string{"title", "Name"} {
		prop, ok := p.Properties[name]
		if !ok {
			continue
		}
		if len(prop.Title) > 0 && prop.Title[0].Text != nil {
			return prop.Title[0].Text.Content, true
		}
	}
	return "", false
}

// Database Notion数据库对象
// 与页面不同，数据库标题直接在顶层title数组中
type Database struct {
	Object string     `json:"object"` // 对象类型，固定为database
	ID     string     `json:"id"`     // 数据库ID
	URL    string     `json:"url"`    // 数据库链接
	Title  []RichText `json:"title"`  // 标题富文本
}

// TitleText 返回数据库标题的首个文本片段内容
func (d Database) TitleText() (string, bool) {
	if len(d.Title) == 0 || d.Title[0].Text == nil {
		return "", false
	}
	return d.Title[0].Text.Content, true
}

// PageRef 定位到的页面引用
// 一经解析即不可变
type PageRef struct {
	ID  string // 页面ID
	URL string // 页面链接
}

// DatabaseRef 定位到的数据库引用
type DatabaseRef struct {
	ID  string // 数据库ID
	URL string // 数据库链接
}

// searchRequest 搜索请求体
type searchRequest struct {
	Query  string        `json:"query"`            // 搜索关键词
	Filter *searchFilter `json:"filter,omitempty"` // 对象类型过滤
}

// searchFilter 搜索对象类型过滤
type searchFilter struct {
	Property string `json:"property"` // 过滤属性，固定为object
	Value    string `json:"value"`    // page或database
}

// pageSearchResponse 页面搜索响应
type pageSearchResponse struct {
	Object     string  `json:"object"`
	Results    []Page  `json:"results"`
	HasMore    bool    `json:"has_more"`
	NextCursor *string `json:"next_cursor"`
}

// databaseSearchResponse 数据库搜索响应
type databaseSearchResponse struct {
	Object     string     `json:"object"`
	Results    []Database `json:"results"`
	HasMore    bool       `json:"has_more"`
	NextCursor *string    `json:"next_cursor"`
}

// blockChildrenResponse 子块列表响应
// 结果保留原始JSON，逐块解码以便跳过畸形块
type blockChildrenResponse struct {
	Object     string            `json:"object"`
	Results    []json.RawMessage `json:"results"`
	HasMore    bool              `json:"has_more"`
	NextCursor *string           `json:"next_cursor"`
}
