package notion

import (
	"encoding/json"
	"fmt"
	"strings"
)

// BlockKind 归一后的块类型标签
// API返回的松散block字典在数据入口处归一为封闭的类型集合，
// 遍历逻辑只面向这些类型做穷举匹配
type BlockKind string

const (
	KindHeading   BlockKind = "heading"            // heading_1/2/3统一归为heading
	KindToggle    BlockKind = "toggle"             // 折叠块，问答内容的载体
	KindParagraph BlockKind = "paragraph"          // 段落
	KindBulleted  BlockKind = "bulleted_list_item" // 无序列表项
	KindNumbered  BlockKind = "numbered_list_item" // 有序列表项
	KindOther     BlockKind = "other"              // 其他类型，遍历时忽略
)

// Block 内容块
// 只保留遍历所需的字段；原始类型标签保留在Type中便于日志排查
type Block struct {
	ID          string     // 块ID
	Kind        BlockKind  // 归一后的类型
	Type        string     // API原始类型标签
	RichText    []RichText // 行内富文本片段
	HasChildren bool       // 是否有子块
}

// PlainText 拼接所有带text负载的行内片段
// mention、equation等没有text负载的片段被跳过
func (b Block) PlainText() string {
	var sb strings.Builder
	for _, rt := range b.RichText {
		if rt.Text != nil {
			sb.WriteString(rt.Text.Content)
		}
	}
	return sb.String()
}

// FirstText 返回首个行内片段的text内容
// 片段为空或首片段没有text负载时视为无内容
func (b Block) FirstText() (string, bool) {
	if len(b.RichText) == 0 || b.RichText[0].Text == nil {
		return "", false
	}
	return b.RichText[0].Text.Content, true
}

// classifyBlockType 将API类型标签归一为BlockKind
func classifyBlockType(t string) BlockKind {
	switch {
	case strings.Contains(t, "heading"):
		return KindHeading
	case t == "toggle":
		return KindToggle
	case t == "paragraph":
		return KindParagraph
	case t == "bulleted_list_item":
		return KindBulleted
	case t == "numbered_list_item":
		return KindNumbered
	default:
		return KindOther
	}
}

// decodeBlock 把原始块JSON解码为Block
// 类型对应的负载对象缺失时保留空片段；负载结构异常时返回错误，
// 由调用方跳过该块并继续处理兄弟块
func decodeBlock(raw json.RawMessage) (Block, error) {
	var envelope struct {
		ID          string `json:"id"`
		Type        string `json:"type"`
		HasChildren bool   `json:"has_children"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return Block{}, fmt.Errorf("failed to decode block envelope: %w", err)
	}

	block := Block{
		ID:          envelope.ID,
		Kind:        classifyBlockType(envelope.Type),
		Type:        envelope.Type,
		HasChildren: envelope.HasChildren,
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Block{}, fmt.Errorf("failed to decode block fields: %w", err)
	}

	payload, ok := fields[envelope.Type]
	if !ok {
		return block, nil
	}

	var body struct {
		RichText []RichText `json:"rich_text"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return Block{}, fmt.Errorf("malformed %s payload: %w", envelope.Type, err)
	}
	block.RichText = body.RichText

	return block, nil
}
