package notion

import (
	"context"
	"fmt"
)

// FindPage 按标题精确查找页面
// 搜索结果按API自身排序依次检查，取首个标题与输入完全相等（区分大小写）的页面；
// 无精确匹配时返回nil而不是错误，只查第一页搜索结果
func FindPage(ctx context.Context, client Client, title string) (*PageRef, error) {
	pages, err := client.SearchPages(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("failed to search pages: %w", err)
	}

	for _, page := range pages {
		name, ok := page.TitleText()
		if !ok {
			continue
		}
		if name == title {
			return &PageRef{ID: page.ID, URL: page.URL}, nil
		}
	}

	return nil, nil
}

// FindDatabase 按标题精确查找数据库
// 匹配规则与FindPage一致
func FindDatabase(ctx context.Context, client Client, name string) (*DatabaseRef, error) {
	databases, err := client.SearchDatabases(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to search databases: %w", err)
	}

	for _, database := range databases {
		title, ok := database.TitleText()
		if !ok {
			continue
		}
		if title == name {
			return &DatabaseRef{ID: database.ID, URL: database.URL}, nil
		}
	}

	return nil, nil
}
